package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/kubev2v/profit-planner/internal/config"
	"github.com/mattn/go-sqlite3"
	"github.com/ngrok/sqlmw"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	instrumentedPostgresDriver = "pgx-instrumented"
	instrumentedSqliteDriver   = "sqlite3-instrumented"
)

var registerDrivers sync.Once

// instrumentDrivers registers sql drivers wrapped with the metric interceptor.
func instrumentDrivers() {
	registerDrivers.Do(func() {
		sql.Register(instrumentedPostgresDriver, sqlmw.Driver(stdlib.GetDefaultDriver(), new(metricInterceptor)))
		sql.Register(instrumentedSqliteDriver, sqlmw.Driver(&sqlite3.SQLiteDriver{}, new(metricInterceptor)))
	})
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dia gorm.Dialector

	instrumentDrivers()

	if cfg.Database.IsPostgres() {
		dsn := fmt.Sprintf("host=%s user=%s password=%s port=%s",
			cfg.Database.Hostname,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Port,
		)
		if cfg.Database.Name != "" {
			dsn = fmt.Sprintf("%s dbname=%s", dsn, cfg.Database.Name)
		}
		dia = postgres.New(postgres.Config{DriverName: instrumentedPostgresDriver, DSN: dsn})
	} else {
		dia = sqlite.New(sqlite.Config{DriverName: instrumentedSqliteDriver, DSN: cfg.Database.Name})
	}

	newLogger := logger.New(
		logrus.New(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	newDB, err := gorm.Open(dia, &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		zap.S().Named("gorm").Errorf("failed to connect database: %v", err)
		return nil, err
	}

	sqlDB, err := newDB.DB()
	if err != nil {
		zap.S().Named("gorm").Errorf("failed to configure connections: %v", err)
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if cfg.Database.IsPostgres() {
		var version string
		if result := newDB.Raw("SELECT version()").Scan(&version); result.Error != nil {
			zap.S().Named("gorm").Infoln(result.Error.Error())
			return nil, result.Error
		}
		zap.S().Named("gorm").Infof("PostgreSQL information: '%s'", version)
	} else {
		var version string
		if result := newDB.Raw("SELECT sqlite_version()").Scan(&version); result.Error == nil {
			zap.S().Named("gorm").Infof("SQLite information: '%s' (%s)", version, cfg.Database.Name)
		}
	}

	return newDB, nil
}
