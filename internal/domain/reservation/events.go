package reservation

import "time"

type ReservationCreated struct {
	ReservationID ReservationID `json:"reservation_id"`
	VehicleID     VehicleID     `json:"vehicle_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	At            time.Time     `json:"at"`
}

func (e ReservationCreated) EventName() string     { return "reservation.created" }
func (e ReservationCreated) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCreated) OccurredAt() time.Time { return e.At }

type ReservationConfirmed struct {
	ReservationID ReservationID `json:"reservation_id"`
	VehicleID     VehicleID     `json:"vehicle_id"`
	At            time.Time     `json:"at"`
}

func (e ReservationConfirmed) EventName() string     { return "reservation.confirmed" }
func (e ReservationConfirmed) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationConfirmed) OccurredAt() time.Time { return e.At }

type ReservationCancelled struct {
	ReservationID ReservationID `json:"reservation_id"`
	VehicleID     VehicleID     `json:"vehicle_id"`
	Reason        string        `json:"reason,omitempty"`
	At            time.Time     `json:"at"`
}

func (e ReservationCancelled) EventName() string     { return "reservation.cancelled" }
func (e ReservationCancelled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCancelled) OccurredAt() time.Time { return e.At }

type ReservationExpired struct {
	ReservationID ReservationID `json:"reservation_id"`
	VehicleID     VehicleID     `json:"vehicle_id"`
	At            time.Time     `json:"at"`
}

func (e ReservationExpired) EventName() string     { return "reservation.expired" }
func (e ReservationExpired) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationExpired) OccurredAt() time.Time { return e.At }
