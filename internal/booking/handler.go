package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trainercal/internal/api"
	"trainercal/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      List booking requests of a trainer
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Param        from query string false "YYYY-MM-DD"
// @Param        to query string false "YYYY-MM-DD"
// @Success      200 {array} booking.Request
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /trainers/{trainerID}/booking-requests [get]
func (h *Handler) ListRequests(c *gin.Context) {
	trainerID, err := api.IntParam(c, "trainerID")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	window, err := api.WindowQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	requests, err := h.service.ListRequests(c.Request.Context(), trainerID, window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch booking requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// @Summary      List booking requests awaiting approval
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Success      200 {array} calendar.Booking
// @Router       /trainers/{trainerID}/booking-requests/pending [get]
func (h *Handler) ListPending(c *gin.Context) {
	trainerID, err := api.IntParam(c, "trainerID")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	pending, err := h.service.PendingRequests(c.Request.Context(), trainerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch pending requests"})
		return
	}

	c.JSON(http.StatusOK, pending)
}

// @Summary      List events scheduled for a trainer
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Success      200 {array} booking.Event
// @Router       /trainers/{trainerID}/events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	trainerID, err := api.IntParam(c, "trainerID")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	window, err := api.WindowQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	events, err := h.service.ListEvents(c.Request.Context(), trainerID, window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// @Summary      Change the status of a booking request
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        requestID path int true "Booking request ID"
// @Param        request body booking.UpdateStatusRequest true "New status"
// @Success      200 {object} booking.Request
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /booking-requests/{requestID}/status [post]
func (h *Handler) UpdateStatus(c *gin.Context) {
	requestID, err := api.IntParam(c, "requestID")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request ID"})
		return
	}

	var req UpdateStatusRequest
	if !api.BindJSON(c, &req) {
		return
	}

	claims, ok := auth.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	current, err := h.service.GetRequest(ctx, requestID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if !claims.CanAccessTrainer(current.TrainerID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Insufficient permissions"})
		return
	}

	updated, err := h.service.UpdateStatus(ctx, requestID, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking request not found"})
	case errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Status change not allowed"})
	case errors.Is(err, ErrRequestNotFoundOrChanged):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Booking request was changed concurrently"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update booking request"})
	}
}
