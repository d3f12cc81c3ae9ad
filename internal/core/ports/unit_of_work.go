package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	TxManager
	OrderRepoFactory
	PrintJobRepoFactory
}

// Narrow views of a unit of work, so that handlers depend only on the
// repositories they use.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides an order repository bound to the transaction.
	OrderRepoFactory interface {
		OrderRepository() OrderRepository
	}

	// PrintJobRepoFactory provides a print job repository bound to the transaction.
	PrintJobRepoFactory interface {
		PrintJobRepository() PrintJobRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order units of work.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PrintJobUoW manages transactions for print-job-only operations.
	PrintJobUoW interface {
		TxManager
		PrintJobRepoFactory
	}

	// PrintJobUoWFactory creates print job units of work.
	PrintJobUoWFactory interface {
		Create() PrintJobUoW
	}
)
