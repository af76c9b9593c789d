package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed sql
var embedded embed.FS

// MigrateStore brings the schema up to date. Migrations come from migrationFolder when set,
// otherwise from the SQL embedded for dialect ("postgres" or "sqlite3").
func MigrateStore(db *gorm.DB, dialect string, migrationFolder string) error {
	goose.SetLogger(&logger{})

	migrations, dir, err := source(dialect, migrationFolder)
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return goose.Up(sqlDB, dir)
}

// Version returns the current schema version.
func Version(db *gorm.DB, dialect string) (int64, error) {
	if err := goose.SetDialect(dialect); err != nil {
		return 0, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersion(sqlDB)
}

func source(dialect, migrationFolder string) (fs.FS, string, error) {
	if migrationFolder == "" {
		dir := path.Join("sql", dialect)
		if _, err := fs.Stat(embedded, dir); err != nil {
			return nil, "", fmt.Errorf("no migrations for dialect %q", dialect)
		}
		return embedded, dir, nil
	}

	fi, err := os.Stat(migrationFolder)
	if err != nil {
		return nil, "", err
	}
	if !fi.Mode().IsDir() {
		return nil, "", fmt.Errorf("failed to open migration folder: %s is not a folder", migrationFolder)
	}
	return os.DirFS(migrationFolder), ".", nil
}

/*
logger implements goose.Logger interface

	type Logger interface {
		Fatalf(format string, v ...interface{})
		Printf(format string, v ...interface{})
	}
*/
type logger struct{}

func (m *logger) Printf(format string, v ...interface{}) {
	zap.S().Named("migrations").Infof(format, v...)
}
func (m *logger) Fatalf(format string, v ...interface{}) {
	zap.S().Named("migrations").Fatalf(format, v...)
}
