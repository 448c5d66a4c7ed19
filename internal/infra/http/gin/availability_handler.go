package ginserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"autorent/internal/app/dto"
	availabilityapp "autorent/internal/app/handlers/availability"
	"autorent/internal/app/queries"
	"autorent/internal/domain/reservation"
)

type AvailabilityHandler struct {
	Queries   queries.Bus
	OpenHour  int
	CloseHour int
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	q := availabilityapp.GetCalendarQuery{
		VehicleID:   c.Param("id"),
		Endpoint:    c.Query("endpoint"),
		Pickup:      parseDate(c.Query("pickup")),
		Return:      parseDate(c.Query("return")),
		AutoAdvance: c.Query("auto_advance") != "false",
	}
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		q.Year = year
	}
	if month, err := strconv.Atoi(c.Query("month")); err == nil && month >= 1 && month <= 12 {
		q.Month = time.Month(month)
	}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) Day(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	q := availabilityapp.EvaluateDayQuery{
		VehicleID: c.Param("id"),
		Date:      parseDate(c.Param("date")),
		Endpoint:  c.Query("endpoint"),
		Pickup:    parseDate(c.Query("pickup")),
		Return:    parseDate(c.Query("return")),
	}
	result, err := queries.Ask[availabilityapp.EvaluateDayQuery, dto.Day](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) DaySlots(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	q := availabilityapp.DaySlotsQuery{
		VehicleID: c.Param("id"),
		Date:      parseDate(c.Param("date")),
		Endpoint:  c.Query("endpoint"),
		OpenHour:  h.OpenHour,
		CloseHour: h.CloseHour,
	}
	result, err := queries.Ask[availabilityapp.DaySlotsQuery, dto.DaySlots](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// parseDate yields the zero time for anything that is not YYYY-MM-DD. The
// evaluator treats a zero date as an invalid day and fails it closed.
func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func writeQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrVehicleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, reservation.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

var _ AvailabilityHTTP = AvailabilityHandler{}
