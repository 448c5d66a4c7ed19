package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"autorent/internal/app/commands"
	"autorent/internal/app/dto"
	bookingapp "autorent/internal/app/handlers/booking"
	"autorent/internal/app/queries"
	"autorent/internal/domain/reservation"
)

type ReservationHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createReservationRequest struct {
	VehicleID     string `json:"vehicle_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	StartTime     string `json:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone,omitempty"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.SubmitReservationCommand{
		CommandID:     uuid.NewString(),
		VehicleID:     req.VehicleID,
		StartDate:     parseDate(req.StartDate),
		EndDate:       parseDate(req.EndDate),
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Idempotency:   c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.SubmitReservationCommand, *dto.Reservation](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeCommandError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

func (h ReservationHandler) Confirm(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	cmd := bookingapp.ConfirmReservationCommand{
		ReservationID: c.Param("id"),
		Idempotency:   c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.ConfirmReservationCommand, *dto.Reservation](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type cancelReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req cancelReservationRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	cmd := bookingapp.CancelReservationCommand{
		ReservationID: c.Param("id"),
		Reason:        req.Reason,
		Idempotency:   c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.CancelReservationCommand, *dto.Reservation](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	q := bookingapp.GetReservationQuery{ReservationID: c.Param("id")}
	result, err := queries.Ask[bookingapp.GetReservationQuery, dto.Reservation](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bookingapp.ErrDatesUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, bookingapp.ErrStayTooShort),
		errors.Is(err, bookingapp.ErrPickupTooSoon),
		errors.Is(err, reservation.ErrInvalidDates),
		errors.Is(err, reservation.ErrInvalidTimeOfDay),
		errors.Is(err, reservation.ErrVehicleRequired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, reservation.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, reservation.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

var _ ReservationHTTP = ReservationHandler{}
