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

const getCalendarKey = "availability.calendar"

// GetCalendarQuery evaluates every day of one month for a vehicle. When
// AutoAdvance is set and the requested month is fully blocked, the result
// moves forward to the first month with a selectable day (bounded search).
type GetCalendarQuery struct {
	VehicleID   string
	Year        int
	Month       time.Month
	Endpoint    string
	Pickup      time.Time
	Return      time.Time
	AutoAdvance bool
	AdvanceCap  int
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	UoWFactory uow.UoWFactory
	Rules      domainavailability.Rules
	Clock      func() time.Time
	Logger     *slog.Logger
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	if q.VehicleID == "" {
		return dto.Calendar{}, domainreservation.ErrVehicleRequired
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Calendar{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Calendar{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	today := h.now()
	eval := BuildEvaluator(ctx, unit, domainreservation.VehicleID(q.VehicleID), today, h.Rules, h.Logger)
	role := endpointRole(q.Endpoint)
	sel := domainavailability.Selected{Pickup: q.Pickup, Return: q.Return}

	year, month := q.Year, q.Month
	if year == 0 || month == 0 {
		year, month = today.Year(), today.Month()
	}
	advanced := false
	if q.AutoAdvance {
		newYear, newMonth := eval.AdvanceToOpenMonth(year, month, role, sel, q.AdvanceCap)
		advanced = newYear != year || newMonth != month
		year, month = newYear, newMonth
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make([]dto.Day, 0, 31)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		days = append(days, dto.MapDay(eval.Evaluate(day, role, sel)))
	}

	return dto.Calendar{
		VehicleID: q.VehicleID,
		Year:      year,
		Month:     int(month),
		Advanced:  advanced,
		Days:      days,
	}, nil
}

func (h *GetCalendarHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now().UTC()
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
