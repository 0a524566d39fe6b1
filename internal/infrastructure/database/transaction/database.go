package transaction

import (
	"context"

	"gorm.io/gorm"

	"promptory-server/internal/domain"
)

type transactionContextKey struct{}

// WithTx stores a transaction handle in the context.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, transactionContextKey{}, tx)
}

// Database hands repositories the right *gorm.DB: the transaction bound to the
// context when present, the base connection otherwise.
type Database struct {
	db *gorm.DB
}

var _ domain.Transactor = (*Database)(nil)

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db}
}

func (t *Database) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(transactionContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return t.db
}

// WithinTransaction runs fn inside a database transaction. Repository calls
// made with the callback context join the transaction; any error rolls the
// whole unit back.
func (t *Database) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.GetTx(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
