package dto

import (
	"time"

	"autorent/internal/domain/selection"
)

// Selection is the wire form of a partial pickup/return choice. Empty date
// strings mean "not chosen".
type Selection struct {
	VehicleID  string `json:"vehicle_id"`
	PickupDate string `json:"pickup_date,omitempty"`
	PickupTime string `json:"pickup_time,omitempty"`
	ReturnDate string `json:"return_date,omitempty"`
	ReturnTime string `json:"return_time,omitempty"`
}

// SelectionResult carries the outcome of applying one endpoint choice. When
// the choice was refused, Selection is the unchanged input and Rejected
// explains why.
type SelectionResult struct {
	Selection Selection `json:"selection"`
	Rejected  string    `json:"rejected,omitempty"`
	Message   string    `json:"message,omitempty"`
}

func MapSelection(sel selection.Selection) Selection {
	out := Selection{
		VehicleID:  string(sel.VehicleID),
		PickupTime: sel.PickupTime,
		ReturnTime: sel.ReturnTime,
	}
	if sel.HasPickup() {
		out.PickupDate = sel.PickupDate.Format(time.DateOnly)
	}
	if sel.HasReturn() {
		out.ReturnDate = sel.ReturnDate.Format(time.DateOnly)
	}
	return out
}
