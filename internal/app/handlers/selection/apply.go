package selection

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"autorent/internal/app/dto"
	availabilityhandlers "autorent/internal/app/handlers/availability"
	"autorent/internal/app/queries"
	"autorent/internal/app/uow"
	domainavailability "autorent/internal/domain/availability"
	domainreservation "autorent/internal/domain/reservation"
	domainselection "autorent/internal/domain/selection"
)

const (
	applyPickupKey = "selection.apply_pickup"
	applyReturnKey = "selection.apply_return"
)

// ApplyPickupQuery attempts to set the pickup endpoint of a selection. The
// transition is stateless: the caller sends its current selection and gets
// the next one back, or the same one plus a rejection reason.
type ApplyPickupQuery struct {
	VehicleID string
	Current   domainselection.Selection
	Date      time.Time
	TimeOfDay string
}

func (q ApplyPickupQuery) Key() string { return applyPickupKey }

// ApplyReturnQuery attempts to set the return endpoint of a selection.
type ApplyReturnQuery struct {
	VehicleID string
	Current   domainselection.Selection
	Date      time.Time
	TimeOfDay string
}

func (q ApplyReturnQuery) Key() string { return applyReturnKey }

type ApplyHandler struct {
	UoWFactory uow.UoWFactory
	Rules      domainavailability.Rules
	Clock      func() time.Time
	Logger     *slog.Logger
}

func (h *ApplyHandler) HandlePickup(ctx context.Context, q ApplyPickupQuery) (dto.SelectionResult, error) {
	ctrl, cleanup, err := h.controller(ctx, q.VehicleID)
	if err != nil {
		return dto.SelectionResult{}, err
	}
	defer cleanup()

	current := q.Current
	current.VehicleID = domainreservation.VehicleID(q.VehicleID)
	next, err := ctrl.SelectPickup(current, q.Date, q.TimeOfDay, h.now())
	return mapOutcome(current, next, err)
}

func (h *ApplyHandler) HandleReturn(ctx context.Context, q ApplyReturnQuery) (dto.SelectionResult, error) {
	ctrl, cleanup, err := h.controller(ctx, q.VehicleID)
	if err != nil {
		return dto.SelectionResult{}, err
	}
	defer cleanup()

	current := q.Current
	current.VehicleID = domainreservation.VehicleID(q.VehicleID)
	next, err := ctrl.SelectReturn(current, q.Date, q.TimeOfDay)
	return mapOutcome(current, next, err)
}

func (h *ApplyHandler) controller(ctx context.Context, vehicleID string) (*domainselection.Controller, func(), error) {
	if vehicleID == "" {
		return nil, nil, domainreservation.ErrVehicleRequired
	}
	cleanup := func() {}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return nil, nil, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return nil, nil, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		cleanup = func() { unit.Rollback(ctx) }
	}
	eval := availabilityhandlers.BuildEvaluator(ctx, unit, domainreservation.VehicleID(vehicleID), h.now(), h.Rules, h.logger())
	return domainselection.NewController(eval), cleanup, nil
}

// mapOutcome folds domain-level rejections into the result payload so the
// edge can answer 200 with an explanation instead of an error status.
func mapOutcome(current, next domainselection.Selection, err error) (dto.SelectionResult, error) {
	if err == nil {
		return dto.SelectionResult{Selection: dto.MapSelection(next)}, nil
	}
	var rejected *domainselection.Rejected
	switch {
	case errors.As(err, &rejected):
		return dto.SelectionResult{
			Selection: dto.MapSelection(current),
			Rejected:  string(rejected.Reason),
			Message:   rejected.Reason.Message(),
		}, nil
	case errors.Is(err, domainselection.ErrPickupRequired):
		return dto.SelectionResult{
			Selection: dto.MapSelection(current),
			Rejected:  "PICKUP_REQUIRED",
			Message:   "Choose a pickup date first.",
		}, nil
	case errors.Is(err, domainselection.ErrPickupTooSoon):
		return dto.SelectionResult{
			Selection: dto.MapSelection(current),
			Rejected:  "PICKUP_TOO_SOON",
			Message:   "Same-day pickup needs at least two hours of notice.",
		}, nil
	}
	return dto.SelectionResult{}, err
}

func (h *ApplyHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now().UTC()
}

func (h *ApplyHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// pickupFunc and returnFunc adapt the two entry points onto the query bus.
type pickupFunc struct{ h *ApplyHandler }

func (f pickupFunc) Handle(ctx context.Context, q ApplyPickupQuery) (dto.SelectionResult, error) {
	return f.h.HandlePickup(ctx, q)
}

type returnFunc struct{ h *ApplyHandler }

func (f returnFunc) Handle(ctx context.Context, q ApplyReturnQuery) (dto.SelectionResult, error) {
	return f.h.HandleReturn(ctx, q)
}

// PickupHandler returns the bus-registrable form of HandlePickup.
func (h *ApplyHandler) PickupHandler() queries.Handler[ApplyPickupQuery, dto.SelectionResult] {
	return pickupFunc{h: h}
}

// ReturnHandler returns the bus-registrable form of HandleReturn.
func (h *ApplyHandler) ReturnHandler() queries.Handler[ApplyReturnQuery, dto.SelectionResult] {
	return returnFunc{h: h}
}
