package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"autorent/internal/app/dto"
	selectionapp "autorent/internal/app/handlers/selection"
	"autorent/internal/app/queries"
	"autorent/internal/domain/reservation"
	domainselection "autorent/internal/domain/selection"
)

type SelectionHandler struct {
	Queries queries.Bus
}

type selectEndpointRequest struct {
	Date      string        `json:"date"`
	Time      string        `json:"time,omitempty"`
	Selection dto.Selection `json:"selection"`
}

func (h SelectionHandler) Pickup(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	var req selectEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q := selectionapp.ApplyPickupQuery{
		VehicleID: c.Param("id"),
		Current:   toDomainSelection(c.Param("id"), req.Selection),
		Date:      parseDate(req.Date),
		TimeOfDay: req.Time,
	}
	result, err := queries.Ask[selectionapp.ApplyPickupQuery, dto.SelectionResult](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h SelectionHandler) Return(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	var req selectEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q := selectionapp.ApplyReturnQuery{
		VehicleID: c.Param("id"),
		Current:   toDomainSelection(c.Param("id"), req.Selection),
		Date:      parseDate(req.Date),
		TimeOfDay: req.Time,
	}
	result, err := queries.Ask[selectionapp.ApplyReturnQuery, dto.SelectionResult](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func toDomainSelection(vehicleID string, sel dto.Selection) domainselection.Selection {
	return domainselection.Selection{
		VehicleID:  reservation.VehicleID(vehicleID),
		PickupDate: parseDate(sel.PickupDate),
		PickupTime: sel.PickupTime,
		ReturnDate: parseDate(sel.ReturnDate),
		ReturnTime: sel.ReturnTime,
	}
}

var _ SelectionHTTP = SelectionHandler{}
