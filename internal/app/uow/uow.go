package uow

import (
	"context"

	domainreservation "autorent/internal/domain/reservation"
)

// UnitOfWork scopes repository access to one transaction boundary.
type UnitOfWork interface {
	Reservations() domainreservation.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
