package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"autorent/internal/app/dto"
	"autorent/internal/app/outbox"
	"autorent/internal/app/uow"
	"autorent/internal/domain/availability"
	"autorent/internal/domain/reservation"
	"autorent/internal/domain/shared/daterange"
)

const submitReservationKey = "reservation.submit"

var (
	// ErrDatesUnavailable fires on the write-time overlap re-check. The
	// calendar is advisory; this check is what actually prevents two holds
	// on the same days.
	ErrDatesUnavailable = errors.New("booking: requested dates are no longer available")
	ErrStayTooShort     = errors.New("booking: rental is shorter than the minimum stay")
	ErrPickupTooSoon    = errors.New("booking: same-day pickup needs more notice")
)

type SubmitReservationCommand struct {
	CommandID     string
	VehicleID     string
	StartDate     time.Time
	EndDate       time.Time
	StartTime     string
	EndTime       string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Idempotency   string
}

func (c SubmitReservationCommand) Key() string { return submitReservationKey }

func (c SubmitReservationCommand) IdempotencyKey() string { return c.Idempotency }

func (c SubmitReservationCommand) ResultPrototype() any { return &dto.Reservation{} }

type SubmitReservationHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Rules   availability.Rules
	Lead    time.Duration
	Clock   func() time.Time
	Logger  *slog.Logger
}

func (h *SubmitReservationHandler) Handle(ctx context.Context, cmd SubmitReservationCommand) (*dto.Reservation, error) {
	unit, err := uow.Require(ctx)
	if err != nil {
		return nil, err
	}
	now := h.now()

	id := reservation.ReservationID(cmd.CommandID)
	if id == "" {
		id = reservation.ReservationID(uuid.NewString())
	}
	r, err := reservation.New(reservation.CreateParams{
		ID:        id,
		VehicleID: reservation.VehicleID(cmd.VehicleID),
		StartDate: cmd.StartDate,
		EndDate:   cmd.EndDate,
		StartTime: cmd.StartTime,
		EndTime:   cmd.EndTime,
		Customer: reservation.Customer{
			Name:  cmd.CustomerName,
			Email: cmd.CustomerEmail,
			Phone: cmd.CustomerPhone,
		},
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if err := h.checkPolicy(r, now); err != nil {
		return nil, err
	}
	if err := h.checkOverlap(ctx, unit, r); err != nil {
		return nil, err
	}

	if err := unit.Reservations().Save(ctx, r); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, r.PendingEvents()); err != nil {
		return nil, err
	}
	r.ClearEvents()

	h.logger().Info("reservation hold placed",
		"reservation_id", r.ID, "vehicle_id", r.VehicleID,
		"start", r.StartDate.Format(time.DateOnly), "end", r.EndDate.Format(time.DateOnly))
	res := dto.MapReservation(r)
	return &res, nil
}

// checkPolicy enforces the minimum stay and the same-day lead time. These are
// advisory on the calendar but hard rules at submission.
func (h *SubmitReservationHandler) checkPolicy(r *reservation.Reservation, now time.Time) error {
	rules := h.Rules
	minStay := rules.MinStayDays
	if minStay <= 0 {
		minStay = availability.DefaultMinStayDays
	}
	stay := int(r.EndDate.Sub(r.StartDate).Hours() / 24)
	if stay < minStay {
		return ErrStayTooShort
	}

	if daterange.SameDay(r.StartDate, now) {
		interval, err := r.Interval()
		if err != nil {
			return err
		}
		lead := h.Lead
		if lead <= 0 {
			lead = availability.SameDayPickupLead
		}
		if interval.Start.Before(now.Add(lead)) {
			return ErrPickupTooSoon
		}
	} else if r.StartDate.Before(daterange.DayStart(now)) {
		return reservation.ErrInvalidDates
	}
	return nil
}

func (h *SubmitReservationHandler) checkOverlap(ctx context.Context, unit uow.UnitOfWork, r *reservation.Reservation) error {
	snapshot, err := unit.Reservations().ListByVehicle(ctx, r.VehicleID)
	if err != nil {
		return err
	}
	requested, err := r.Interval()
	if err != nil {
		return err
	}
	buffer := h.Rules.MaintenanceBuffer
	if buffer <= 0 {
		buffer = availability.DefaultMaintenanceBuffer
	}
	intervals := reservation.BuildIntervals(r.VehicleID, snapshot, h.logger())
	windows := availability.BuildMaintenanceWindows(intervals, buffer)
	for day := requested.Start; day.Before(requested.End); day = day.AddDate(0, 0, 1) {
		if availability.MaintenanceBlocksDay(day, windows) {
			return ErrDatesUnavailable
		}
	}
	for _, iv := range intervals {
		if iv.Overlaps(requested) {
			return ErrDatesUnavailable
		}
	}
	return nil
}

func (h *SubmitReservationHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now().UTC()
}

func (h *SubmitReservationHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
