package repositories

import "context"

// TxFn is the unit of work run by ExecTx. Repositories called with the ctx
// it receives join the transaction.
type TxFn func(ctx context.Context) error

// TransactionManager runs read-check-write sequences atomically, such as
// "the folder exists, then store the document that references it".
type TransactionManager interface {
	// ExecTx commits when fn returns nil and rolls back otherwise. A ctx
	// that already carries a transaction is reused.
	ExecTx(ctx context.Context, fn TxFn) error
}
