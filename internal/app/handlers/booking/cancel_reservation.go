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

const cancelReservationKey = "reservation.cancel"

type CancelReservationCommand struct {
	ReservationID string
	Reason        string
	Idempotency   string
}

func (c CancelReservationCommand) Key() string { return cancelReservationKey }

func (c CancelReservationCommand) IdempotencyKey() string { return c.Idempotency }

func (c CancelReservationCommand) ResultPrototype() any { return &dto.Reservation{} }

type CancelReservationHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Clock   func() time.Time
	Logger  *slog.Logger
}

func (h *CancelReservationHandler) Handle(ctx context.Context, cmd CancelReservationCommand) (*dto.Reservation, error) {
	unit, err := uow.Require(ctx)
	if err != nil {
		return nil, err
	}
	r, err := unit.Reservations().ByID(ctx, reservation.ReservationID(cmd.ReservationID))
	if err != nil {
		return nil, err
	}
	if err := r.Cancel(cmd.Reason, h.now()); err != nil {
		return nil, err
	}
	if err := unit.Reservations().Save(ctx, r); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, r.PendingEvents()); err != nil {
		return nil, err
	}
	r.ClearEvents()

	h.logger().Info("reservation cancelled",
		"reservation_id", r.ID, "vehicle_id", r.VehicleID, "reason", cmd.Reason)
	res := dto.MapReservation(r)
	return &res, nil
}

func (h *CancelReservationHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now().UTC()
}

func (h *CancelReservationHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
