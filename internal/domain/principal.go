package domain

import "context"

// Principal captures the authenticated caller identity for a request.
type Principal struct {
	UserID uint
	Email  string
}

// Transactor groups multiple store mutations into one atomic unit. The callback
// receives a context carrying the transaction; repository calls made with it
// join the same transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
