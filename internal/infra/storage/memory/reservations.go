package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"autorent/internal/domain/reservation"
	"autorent/internal/domain/shared/events"
)

// ReservationRepository is an in-memory store used in tests and single-node
// deployments. Returned aggregates are shallow copies so callers cannot
// mutate stored state without going through Save.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[reservation.ReservationID]*reservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		items: make(map[reservation.ReservationID]*reservation.Reservation),
	}
}

func (r *ReservationRepository) ByID(ctx context.Context, id reservation.ReservationID) (*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return clone(stored), nil
}

func (r *ReservationRepository) ListByVehicle(ctx context.Context, vehicleID reservation.VehicleID) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*reservation.Reservation, 0)
	for _, stored := range r.items {
		if stored.VehicleID == vehicleID {
			matches = append(matches, clone(stored))
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].StartDate.Before(matches[j].StartDate)
	})
	return matches, nil
}

func (r *ReservationRepository) PendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*reservation.Reservation, 0)
	for _, stored := range r.items {
		if stored.Status == reservation.StatusPendingHold && stored.CreatedAt.Before(cutoff) {
			matches = append(matches, clone(stored))
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	return matches, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res.Version++
	r.items[res.ID] = clone(res)
	return nil
}

func clone(r *reservation.Reservation) *reservation.Reservation {
	copied := *r
	// Pending events stay with the live aggregate, not the stored copy.
	copied.EventRecorder = events.EventRecorder{}
	return &copied
}

var _ reservation.Repository = (*ReservationRepository)(nil)
