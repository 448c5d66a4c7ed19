package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autorent/internal/app/uow"
	domainreservation "autorent/internal/domain/reservation"
	"autorent/internal/infra/storage/memory"
)

func testContext(t *testing.T, repo *memory.ReservationRepository) context.Context {
	t.Helper()
	unit, err := memory.Factory{ReservationRepo: repo}.Begin(context.Background(), uow.TxOptions{})
	require.NoError(t, err)
	return uow.ContextWithUnitOfWork(context.Background(), unit)
}

func seedConfirmed(t *testing.T, repo *memory.ReservationRepository, id, vehicle string, start, end time.Time) {
	t.Helper()
	r, err := domainreservation.New(domainreservation.CreateParams{
		ID:        domainreservation.ReservationID(id),
		VehicleID: domainreservation.VehicleID(vehicle),
		StartDate: start,
		EndDate:   end,
		Customer:  domainreservation.Customer{Name: "Ada"},
		CreatedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, r.Confirm(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)))
	r.ClearEvents()
	require.NoError(t, repo.Save(context.Background(), r))
}

func submitHandler(box *memory.Outbox) *SubmitReservationHandler {
	return &SubmitReservationHandler{
		Outbox: box,
		Clock:  func() time.Time { return time.Date(2026, 6, 5, 10, 0, 0, 0, time.UTC) },
	}
}

func TestSubmitPlacesHoldAndRecordsEvent(t *testing.T) {
	repo := memory.NewReservationRepository()
	box := memory.NewOutbox()
	ctx := testContext(t, repo)

	result, err := submitHandler(box).Handle(ctx, SubmitReservationCommand{
		CommandID:    "res-1",
		VehicleID:    "veh-1",
		StartDate:    time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
		CustomerName: "Ada",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "res-1", result.ID)
	assert.Equal(t, string(domainreservation.StatusPendingHold), result.Status)

	stored, err := repo.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, domainreservation.StatusPendingHold, stored.Status)

	pending := box.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "reservation.created", pending[0].Name)
}

func TestSubmitRejectsOverlap(t *testing.T) {
	repo := memory.NewReservationRepository()
	seedConfirmed(t, repo, "r1", "veh-1",
		time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC))
	ctx := testContext(t, repo)

	_, err := submitHandler(memory.NewOutbox()).Handle(ctx, SubmitReservationCommand{
		CommandID: "res-2",
		VehicleID: "veh-1",
		StartDate: time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDatesUnavailable)
}

func TestSubmitRejectsMaintenanceDay(t *testing.T) {
	repo := memory.NewReservationRepository()
	seedConfirmed(t, repo, "r1", "veh-1",
		time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC))
	ctx := testContext(t, repo)

	_, err := submitHandler(memory.NewOutbox()).Handle(ctx, SubmitReservationCommand{
		CommandID: "res-2",
		VehicleID: "veh-1",
		StartDate: time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDatesUnavailable)

	_, err = submitHandler(memory.NewOutbox()).Handle(ctx, SubmitReservationCommand{
		CommandID: "res-3",
		VehicleID: "veh-1",
		StartDate: time.Date(2026, 7, 17, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 19, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestSubmitEnforcesMinimumStay(t *testing.T) {
	repo := memory.NewReservationRepository()
	ctx := testContext(t, repo)

	_, err := submitHandler(memory.NewOutbox()).Handle(ctx, SubmitReservationCommand{
		CommandID: "res-1",
		VehicleID: "veh-1",
		StartDate: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrStayTooShort)

	// One night is still under the two day minimum.
	_, err = submitHandler(memory.NewOutbox()).Handle(ctx, SubmitReservationCommand{
		CommandID: "res-2",
		VehicleID: "veh-1",
		StartDate: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 11, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrStayTooShort)

	_, err = submitHandler(memory.NewOutbox()).Handle(ctx, SubmitReservationCommand{
		CommandID: "res-3",
		VehicleID: "veh-1",
		StartDate: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestSubmitRejectsPastStart(t *testing.T) {
	repo := memory.NewReservationRepository()
	ctx := testContext(t, repo)

	_, err := submitHandler(memory.NewOutbox()).Handle(ctx, SubmitReservationCommand{
		CommandID: "res-1",
		VehicleID: "veh-1",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domainreservation.ErrInvalidDates)
}

func TestSubmitSameDayNeedsLeadTime(t *testing.T) {
	repo := memory.NewReservationRepository()
	ctx := testContext(t, repo)

	// Clock is 10:00; an 11:00 same-day pickup is inside the two hour lead.
	_, err := submitHandler(memory.NewOutbox()).Handle(ctx, SubmitReservationCommand{
		CommandID: "res-1",
		VehicleID: "veh-1",
		StartDate: time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime: "11:00",
	})
	assert.ErrorIs(t, err, ErrPickupTooSoon)

	_, err = submitHandler(memory.NewOutbox()).Handle(ctx, SubmitReservationCommand{
		CommandID: "res-2",
		VehicleID: "veh-1",
		StartDate: time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime: "13:00",
	})
	assert.NoError(t, err)
}

func TestSubmitRequiresUnitOfWork(t *testing.T) {
	_, err := submitHandler(memory.NewOutbox()).Handle(context.Background(), SubmitReservationCommand{
		CommandID: "res-1",
		VehicleID: "veh-1",
		StartDate: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, uow.ErrUnitOfWorkMissing)
}
