package availability

import (
	"context"
	"log/slog"
	"time"

	"autorent/internal/app/uow"
	domainavailability "autorent/internal/domain/availability"
	domainreservation "autorent/internal/domain/reservation"
)

// endpointRole maps the wire value onto an evaluator role, defaulting to pickup.
func endpointRole(value string) domainavailability.EndpointRole {
	if value == "return" {
		return domainavailability.RoleReturn
	}
	return domainavailability.RolePickup
}

// BuildEvaluator fetches the reservation snapshot inside the current unit of
// work and normalizes it into an evaluator. A failed fetch degrades to an
// empty snapshot: the calendar renders open and the error is logged. Failing
// open here mirrors how the booking form historically behaved; the write-time
// overlap check is what actually protects against double-booking.
func BuildEvaluator(
	ctx context.Context,
	unit uow.UnitOfWork,
	vehicleID domainreservation.VehicleID,
	today time.Time,
	rules domainavailability.Rules,
	logger *slog.Logger,
) *domainavailability.Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	snapshot, err := unit.Reservations().ListByVehicle(ctx, vehicleID)
	if err != nil {
		logger.Error("reservation snapshot fetch failed, rendering open calendar",
			"vehicle_id", vehicleID, "error", err)
		snapshot = nil
	}
	intervals := domainreservation.BuildIntervals(vehicleID, snapshot, logger)
	return domainavailability.NewEvaluator(vehicleID, intervals, today, rules)
}
