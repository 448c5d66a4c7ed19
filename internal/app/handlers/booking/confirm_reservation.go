package booking

import (
	"context"
	"log/slog"
	"time"

	"autorent/internal/app/dto"
	"autorent/internal/app/outbox"
	"autorent/internal/app/uow"
	"autorent/internal/domain/reservation"
)

const confirmReservationKey = "reservation.confirm"

type ConfirmReservationCommand struct {
	ReservationID string
	Idempotency   string
}

func (c ConfirmReservationCommand) Key() string { return confirmReservationKey }

func (c ConfirmReservationCommand) IdempotencyKey() string { return c.Idempotency }

func (c ConfirmReservationCommand) ResultPrototype() any { return &dto.Reservation{} }

type ConfirmReservationHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Clock   func() time.Time
	Logger  *slog.Logger
}

func (h *ConfirmReservationHandler) Handle(ctx context.Context, cmd ConfirmReservationCommand) (*dto.Reservation, error) {
	unit, err := uow.Require(ctx)
	if err != nil {
		return nil, err
	}
	r, err := unit.Reservations().ByID(ctx, reservation.ReservationID(cmd.ReservationID))
	if err != nil {
		return nil, err
	}
	if err := r.Confirm(h.now()); err != nil {
		return nil, err
	}
	if err := unit.Reservations().Save(ctx, r); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, r.PendingEvents()); err != nil {
		return nil, err
	}
	r.ClearEvents()

	h.logger().Info("reservation confirmed", "reservation_id", r.ID, "vehicle_id", r.VehicleID)
	res := dto.MapReservation(r)
	return &res, nil
}

func (h *ConfirmReservationHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now().UTC()
}

func (h *ConfirmReservationHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
