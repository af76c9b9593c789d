package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contextKey int

const transactionKey contextKey = iota

// Tx is the transaction carried through a context by NewTransactionContext.
type Tx struct {
	id  int64
	db  *gorm.DB
	log *zap.SugaredLogger
}

// InTransaction runs fn inside a transaction of s. fn's error rolls the
// transaction back; a panic does too before it is re-raised. Inside an
// already open transaction fn simply joins it: the outermost caller decides
// whether it commits.
func InTransaction(ctx context.Context, s Store, fn func(ctx context.Context) error) (err error) {
	if FromContext(ctx) != nil {
		return fn(ctx)
	}

	txCtx, err := s.NewTransactionContext(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_, _ = Rollback(txCtx)
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if _, rerr := Rollback(txCtx); rerr != nil {
			zap.S().Named("store").Warnw("rollback failed", "error", rerr)
		}
		return err
	}

	if _, err := Commit(txCtx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func Commit(ctx context.Context) (context.Context, error) {
	tx, ok := ctx.Value(transactionKey).(*Tx)
	if !ok {
		return ctx, nil
	}
	return context.WithValue(ctx, transactionKey, nil), tx.Commit()
}

func Rollback(ctx context.Context) (context.Context, error) {
	tx, ok := ctx.Value(transactionKey).(*Tx)
	if !ok {
		return ctx, nil
	}
	return context.WithValue(ctx, transactionKey, nil), tx.Rollback()
}

// FromContext returns the open transaction carried by ctx, or nil.
func FromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(transactionKey).(*Tx); ok && tx.db != nil {
		return tx.db
	}
	return nil
}

func newTransactionContext(ctx context.Context, db *gorm.DB) (context.Context, error) {
	// nested calls join the outer transaction while it is still open
	if FromContext(ctx) != nil {
		return ctx, nil
	}

	tx := db.Session(&gorm.Session{Context: ctx}).Begin()
	if tx.Error != nil {
		return ctx, tx.Error
	}

	t := &Tx{db: tx, log: zap.S().Named("store")}
	// txid_current only exists on postgres
	if tx.Dialector.Name() == "postgres" {
		var row struct{ ID int64 }
		tx.Raw("select txid_current() as id").Scan(&row)
		t.id = row.ID
	}

	return context.WithValue(ctx, transactionKey, t), nil
}

func (t *Tx) Commit() error {
	return t.end("commit", func(db *gorm.DB) error { return db.Commit().Error })
}

func (t *Tx) Rollback() error {
	return t.end("rollback", func(db *gorm.DB) error { return db.Rollback().Error })
}

func (t *Tx) end(action string, fn func(*gorm.DB) error) error {
	if t.db == nil {
		return ErrNoTransaction
	}
	if err := fn(t.db); err != nil {
		t.log.Errorw("transaction "+action+" failed", "tx_id", t.id, "error", err)
		return err
	}
	t.log.Debugw("transaction "+action, "tx_id", t.id)
	t.db = nil
	return nil
}
