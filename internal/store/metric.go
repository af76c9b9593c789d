package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/ngrok/sqlmw"
	"github.com/prometheus/client_golang/prometheus"
)

const metricSubsystem = "profit_planner"

var (
	keywordRegex = regexp.MustCompile(`^\w+`)

	dbOpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: metricSubsystem,
		Name:      "db_op_duration_milliseconds",
		Help:      "Time spent on a database operation",
		Buckets:   []float64{1, 5, 25, 100, 500, 1000},
	}, []string{"op", "statement"})

	dbOpTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: metricSubsystem,
		Name:      "db_op_total",
		Help:      "Number of database operations",
	}, []string{"op"})

	dbOpErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: metricSubsystem,
		Name:      "db_op_errors_total",
		Help:      "Number of database operations that returned an error",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(dbOpLatency, dbOpTotal, dbOpErrors)
}

// metricInterceptor times the driver calls made by the sales store.
type metricInterceptor struct {
	sqlmw.NullInterceptor
}

func (mi *metricInterceptor) ConnBeginTx(ctx context.Context, conn driver.ConnBeginTx, opts driver.TxOptions) (context.Context, driver.Tx, error) {
	start := time.Now()
	tx, err := conn.BeginTx(ctx, opts)
	observe("begin", "", start, err)
	return ctx, tx, err
}

func (mi *metricInterceptor) ConnPrepareContext(ctx context.Context, conn driver.ConnPrepareContext, query string) (context.Context, driver.Stmt, error) {
	start := time.Now()
	stmt, err := conn.PrepareContext(ctx, query)
	observe("prepare", query, start, err)
	return ctx, stmt, err
}

func (mi *metricInterceptor) ConnPing(ctx context.Context, conn driver.Pinger) error {
	start := time.Now()
	err := conn.Ping(ctx)
	observe("ping", "", start, err)
	return err
}

func (mi *metricInterceptor) ConnExecContext(ctx context.Context, conn driver.ExecerContext, query string, args []driver.NamedValue) (driver.Result, error) {
	start := time.Now()
	res, err := conn.ExecContext(ctx, query, args)
	observe("exec", query, start, err)
	return res, err
}

func (mi *metricInterceptor) ConnQueryContext(ctx context.Context, conn driver.QueryerContext, query string, args []driver.NamedValue) (context.Context, driver.Rows, error) {
	start := time.Now()
	rows, err := conn.QueryContext(ctx, query, args)
	observe("query", query, start, err)
	return ctx, rows, err
}

func (mi *metricInterceptor) StmtExecContext(ctx context.Context, conn driver.StmtExecContext, query string, args []driver.NamedValue) (driver.Result, error) {
	start := time.Now()
	res, err := conn.ExecContext(ctx, args)
	observe("stmt_exec", query, start, err)
	return res, err
}

func (mi *metricInterceptor) StmtQueryContext(ctx context.Context, conn driver.StmtQueryContext, query string, args []driver.NamedValue) (context.Context, driver.Rows, error) {
	start := time.Now()
	rows, err := conn.QueryContext(ctx, args)
	observe("stmt_query", query, start, err)
	return ctx, rows, err
}

func (mi *metricInterceptor) TxCommit(ctx context.Context, conn driver.Tx) error {
	start := time.Now()
	err := conn.Commit()
	observe("commit", "", start, err)
	return err
}

func (mi *metricInterceptor) TxRollback(ctx context.Context, conn driver.Tx) error {
	start := time.Now()
	err := conn.Rollback()
	observe("rollback", "", start, err)
	return err
}

// observe records one driver call. driver.ErrSkip only asks database/sql to
// retry another way and is not counted as a failure.
func observe(op, query string, start time.Time, err error) {
	dbOpTotal.WithLabelValues(op).Inc()
	dbOpLatency.WithLabelValues(op, statementKeyword(query, op)).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil && !errors.Is(err, driver.ErrSkip) {
		dbOpErrors.WithLabelValues(op).Inc()
	}
}

// statementKeyword returns the leading SQL keyword of query (select, insert, ...) or fallback.
func statementKeyword(query, fallback string) string {
	match := keywordRegex.FindString(strings.TrimSpace(query))
	if match == "" {
		return fallback
	}
	return strings.ToLower(match)
}
