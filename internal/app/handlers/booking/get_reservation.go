package booking

import (
	"context"

	"autorent/internal/app/dto"
	"autorent/internal/app/queries"
	"autorent/internal/app/uow"
	"autorent/internal/domain/reservation"
)

const getReservationKey = "reservation.get"

type GetReservationQuery struct {
	ReservationID string
}

func (q GetReservationQuery) Key() string { return getReservationKey }

type GetReservationHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetReservationHandler) Handle(ctx context.Context, q GetReservationQuery) (dto.Reservation, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Reservation{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Reservation{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}
	r, err := unit.Reservations().ByID(ctx, reservation.ReservationID(q.ReservationID))
	if err != nil {
		return dto.Reservation{}, err
	}
	return dto.MapReservation(r), nil
}

var _ queries.Handler[GetReservationQuery, dto.Reservation] = (*GetReservationHandler)(nil)
