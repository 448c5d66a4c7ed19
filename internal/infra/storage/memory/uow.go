package memory

import (
	"context"
	"errors"

	"autorent/internal/app/uow"
	"autorent/internal/domain/reservation"
)

// ErrFactoryMisconfigured indicates a missing repository wiring.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	ReservationRepo reservation.Repository
}

// Begin starts a lightweight transaction boundary. No isolation is provided
// but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.ReservationRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{reservations: f.ReservationRepo}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	reservations reservation.Repository
}

func (u *Unit) Reservations() reservation.Repository {
	return u.reservations
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}

var _ uow.UoWFactory = Factory{}
