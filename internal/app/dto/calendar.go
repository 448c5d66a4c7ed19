package dto

import (
	"time"

	"autorent/internal/domain/availability"
)

// Day mirrors one evaluated calendar cell. Reason and Message are empty for
// selectable days; a disabled cell always ships an explanation.
type Day struct {
	Date            string `json:"date"`
	Blocked         bool   `json:"blocked"`
	AlreadyReserved bool   `json:"already_reserved"`
	InSelectedRange bool   `json:"in_selected_range"`
	PickupEndpoint  bool   `json:"pickup_endpoint"`
	ReturnEndpoint  bool   `json:"return_endpoint"`
	ViolatesMinStay bool   `json:"violates_min_stay"`
	Reason          string `json:"reason,omitempty"`
	Message         string `json:"message,omitempty"`
}

type Calendar struct {
	VehicleID string `json:"vehicle_id"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Advanced  bool   `json:"advanced"`
	Days      []Day  `json:"days"`
}

type HourSlot struct {
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

type DaySlots struct {
	VehicleID string     `json:"vehicle_id"`
	Date      string     `json:"date"`
	Slots     []HourSlot `json:"slots"`
}

func MapDay(state availability.DayState) Day {
	d := Day{
		Blocked:         state.Blocked,
		AlreadyReserved: state.AlreadyReserved,
		InSelectedRange: state.InSelectedRange,
		PickupEndpoint:  state.PickupEndpoint,
		ReturnEndpoint:  state.ReturnEndpoint,
		ViolatesMinStay: state.ViolatesMinStay,
	}
	if !state.Date.IsZero() {
		d.Date = state.Date.Format(time.DateOnly)
	}
	if state.Reason != "" {
		d.Reason = string(state.Reason)
		d.Message = state.Reason.Message()
	}
	return d
}

func MapHourSlots(slots []availability.HourSlot) []HourSlot {
	out := make([]HourSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, HourSlot{Label: s.Label, Available: s.Available})
	}
	return out
}
