package repositories

import "context"

// TxFn runs within a transaction; the transaction travels in the context.
type TxFn func(ctx context.Context) error

// TransactionManager scopes a function to a single database transaction.
// The folder cascade uses it so the descendant set it collects and the rows
// it deletes are the same snapshot.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
