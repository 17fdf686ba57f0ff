// Package database declares the transaction boundary shared by every
// mutating use case.
package database

import "context"

// Transactor runs fn inside one transaction. The transaction travels in the
// context handed to fn; repositories pick it up from there. A nested call on
// a context that already carries a transaction joins it instead of opening a
// new one, so sub-steps compose into a single commit.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
