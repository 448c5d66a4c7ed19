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

const evaluateDayKey = "availability.day"

// EvaluateDayQuery resolves the state of a single calendar day. A zero Date
// (unparseable input at the edge) comes back blocked with a generic reason.
type EvaluateDayQuery struct {
	VehicleID string
	Date      time.Time
	Endpoint  string
	Pickup    time.Time
	Return    time.Time
}

func (q EvaluateDayQuery) Key() string { return evaluateDayKey }

type EvaluateDayHandler struct {
	UoWFactory uow.UoWFactory
	Rules      domainavailability.Rules
	Clock      func() time.Time
	Logger     *slog.Logger
}

func (h *EvaluateDayHandler) Handle(ctx context.Context, q EvaluateDayQuery) (dto.Day, error) {
	if q.VehicleID == "" {
		return dto.Day{}, domainreservation.ErrVehicleRequired
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Day{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Day{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	today := h.now()
	eval := BuildEvaluator(ctx, unit, domainreservation.VehicleID(q.VehicleID), today, h.Rules, h.Logger)
	sel := domainavailability.Selected{Pickup: q.Pickup, Return: q.Return}
	state := eval.Evaluate(q.Date, endpointRole(q.Endpoint), sel)
	return dto.MapDay(state), nil
}

func (h *EvaluateDayHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now().UTC()
}

var _ queries.Handler[EvaluateDayQuery, dto.Day] = (*EvaluateDayHandler)(nil)
