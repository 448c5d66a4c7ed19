package availability

import (
	"context"
	"log/slog"
	"time"

	"autorent/internal/app/dto"
	"autorent/internal/app/queries"
	"autorent/internal/app/uow"
	domainavailability "autorent/internal/domain/availability"
	domainreservation "autorent/internal/domain/reservation"
)

const daySlotsKey = "availability.day_slots"

// DaySlotsQuery lists the hour choices offered for a day once it has been
// picked as an endpoint. Same-day pickups lose the hours inside the lead time.
type DaySlotsQuery struct {
	VehicleID string
	Date      time.Time
	Endpoint  string
	OpenHour  int
	CloseHour int
}

func (q DaySlotsQuery) Key() string { return daySlotsKey }

type DaySlotsHandler struct {
	UoWFactory uow.UoWFactory
	Rules      domainavailability.Rules
	Clock      func() time.Time
	Logger     *slog.Logger
}

func (h *DaySlotsHandler) Handle(ctx context.Context, q DaySlotsQuery) (dto.DaySlots, error) {
	if q.VehicleID == "" {
		return dto.DaySlots{}, domainreservation.ErrVehicleRequired
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.DaySlots{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.DaySlots{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	now := h.now()
	eval := BuildEvaluator(ctx, unit, domainreservation.VehicleID(q.VehicleID), now, h.Rules, h.Logger)
	slots := eval.HourSlots(q.Date, endpointRole(q.Endpoint), now, q.OpenHour, q.CloseHour)

	out := dto.DaySlots{
		VehicleID: q.VehicleID,
		Slots:     dto.MapHourSlots(slots),
	}
	if !q.Date.IsZero() {
		out.Date = q.Date.Format(time.DateOnly)
	}
	return out, nil
}

func (h *DaySlotsHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now().UTC()
}

var _ queries.Handler[DaySlotsQuery, dto.DaySlots] = (*DaySlotsHandler)(nil)
