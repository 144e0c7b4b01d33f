package database

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor runs units of work inside a single database transaction.
type Transactor struct {
	db *gorm.DB
}

// NewTransactor builds a Transactor on top of db.
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// Within runs fn in a transaction that commits when fn returns nil and rolls back on error or panic.
// Nested calls join the outer transaction.
func (t *Transactor) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	if err != nil {
		slog.Debug("transaction rolled back", slog.Any("error", err))
	}
	return err
}

// Conn returns the transaction carried by ctx, or fallback bound to ctx.
func Conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
