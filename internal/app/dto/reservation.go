package dto

import (
	"time"

	"autorent/internal/domain/reservation"
)

type Reservation struct {
	ID         string    `json:"id"`
	VehicleID  string    `json:"vehicle_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	StartTime  string    `json:"start_time,omitempty"`
	EndTime    string    `json:"end_time,omitempty"`
	Status     string    `json:"status"`
	Customer   string    `json:"customer,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

func MapReservation(r *reservation.Reservation) Reservation {
	if r == nil {
		return Reservation{}
	}
	return Reservation{
		ID:         string(r.ID),
		VehicleID:  string(r.VehicleID),
		StartDate:  r.StartDate.Format(time.DateOnly),
		EndDate:    r.EndDate.Format(time.DateOnly),
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Status:     string(r.Status),
		Customer:   r.Customer.Name,
		CreatedAt:  r.CreatedAt,
		ModifiedAt: r.UpdatedAt,
	}
}
