package reservation

import (
	"context"
	"errors"
	"time"

	"autorent/internal/domain/shared/daterange"
	"autorent/internal/domain/shared/events"
)

var (
	ErrInvalidDates        = errors.New("reservation: end date must not precede start date")
	ErrVehicleRequired     = errors.New("reservation: vehicle id required")
	ErrInvalidState        = errors.New("reservation: invalid state transition")
	ErrReservationNotFound = errors.New("reservation: not found")
	ErrInvalidTimeOfDay    = errors.New("reservation: time of day must be HH:MM")
)

type ReservationID string

type VehicleID string

// Status tracks the reservation lifecycle. PendingHold and Confirmed both
// block the vehicle's calendar; Cancelled and Expired do not.
type Status string

const (
	StatusPendingHold Status = "PENDING_HOLD"
	StatusConfirmed   Status = "CONFIRMED"
	StatusCancelled   Status = "CANCELLED"
	StatusExpired     Status = "EXPIRED"
)

// Reservation is a rental of one vehicle over a closed range of calendar
// days. StartDate and EndDate are midnight-anchored UTC days; StartTime and
// EndTime optionally narrow the endpoints to an hour of day ("15:04").
type Reservation struct {
	ID        ReservationID
	VehicleID VehicleID
	StartDate time.Time
	EndDate   time.Time
	StartTime string
	EndTime   string
	Customer  Customer
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	// ListByVehicle returns the full reservation snapshot for a vehicle,
	// including records that no longer block the calendar.
	ListByVehicle(ctx context.Context, vehicleID VehicleID) ([]*Reservation, error)
	// PendingCreatedBefore lists pending holds older than the cutoff, for expiry sweeps.
	PendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
}

type CreateParams struct {
	ID        ReservationID
	VehicleID VehicleID
	StartDate time.Time
	EndDate   time.Time
	StartTime string
	EndTime   string
	Customer  Customer
	CreatedAt time.Time
}

func New(params CreateParams) (*Reservation, error) {
	if params.VehicleID == "" {
		return nil, ErrVehicleRequired
	}
	start := daterange.DayStart(params.StartDate)
	end := daterange.DayStart(params.EndDate)
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, ErrInvalidDates
	}
	for _, tod := range []string{params.StartTime, params.EndTime} {
		if tod == "" {
			continue
		}
		if _, err := ParseTimeOfDay(tod); err != nil {
			return nil, err
		}
	}
	now := params.CreatedAt.UTC()
	r := &Reservation{
		ID:        params.ID,
		VehicleID: params.VehicleID,
		StartDate: start,
		EndDate:   end,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		Customer:  params.Customer,
		Status:    StatusPendingHold,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.Record(ReservationCreated{
		ReservationID: r.ID,
		VehicleID:     r.VehicleID,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		At:            now,
	})
	return r, nil
}

// Blocks reports whether the reservation still occupies calendar days.
func (r *Reservation) Blocks() bool {
	return r.Status == StatusPendingHold || r.Status == StatusConfirmed
}

func (r *Reservation) Confirm(now time.Time) error {
	if r.Status != StatusPendingHold {
		return ErrInvalidState
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = now.UTC()
	r.Record(ReservationConfirmed{ReservationID: r.ID, VehicleID: r.VehicleID, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	switch r.Status {
	case StatusPendingHold, StatusConfirmed:
	default:
		return ErrInvalidState
	}
	r.Status = StatusCancelled
	r.UpdatedAt = now.UTC()
	r.Record(ReservationCancelled{ReservationID: r.ID, VehicleID: r.VehicleID, Reason: reason, At: r.UpdatedAt})
	return nil
}

// Expire releases an abandoned hold so its days stop blocking the calendar.
func (r *Reservation) Expire(now time.Time) error {
	if r.Status != StatusPendingHold {
		return ErrInvalidState
	}
	r.Status = StatusExpired
	r.UpdatedAt = now.UTC()
	r.Record(ReservationExpired{ReservationID: r.ID, VehicleID: r.VehicleID, At: r.UpdatedAt})
	return nil
}

// ParseTimeOfDay parses an "HH:MM" wall-clock value into an offset from midnight.
func ParseTimeOfDay(value string) (time.Duration, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}
