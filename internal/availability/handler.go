package availability

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trainercal/internal/api"
	"trainercal/internal/calendar"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      List availability records of a trainer
// @Tags         availability
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Param        from query string false "YYYY-MM-DD"
// @Param        to query string false "YYYY-MM-DD"
// @Success      200 {array} calendar.Availability
// @Router       /trainers/{trainerID}/availability [get]
func (h *Handler) List(c *gin.Context) {
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

	records, err := h.service.List(c.Request.Context(), trainerID, window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch availability"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// @Summary      Set availability for one date
// @Tags         availability
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Param        request body availability.SetRequest true "Availability"
// @Success      200 {object} calendar.Availability
// @Failure      400 {object} api.ErrorResponse
// @Router       /trainers/{trainerID}/availability [put]
func (h *Handler) Set(c *gin.Context) {
	trainerID, err := api.IntParam(c, "trainerID")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	var req SetRequest
	if !api.BindJSON(c, &req) {
		return
	}

	saved, err := h.service.Set(c.Request.Context(), trainerID, req)
	if err != nil {
		writeError(c, err, "Failed to save availability")
		return
	}

	c.JSON(http.StatusOK, saved)
}

// @Summary      Set availability for a date range
// @Tags         availability
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Param        request body availability.BulkRequest true "Availability range"
// @Success      200 {object} availability.BulkResponse
// @Failure      400 {object} api.ErrorResponse
// @Router       /trainers/{trainerID}/availability/bulk [put]
func (h *Handler) BulkSet(c *gin.Context) {
	trainerID, err := api.IntParam(c, "trainerID")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	var req BulkRequest
	if !api.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.BulkSet(c.Request.Context(), trainerID, req)
	if err != nil {
		writeError(c, err, "Failed to save availability")
		return
	}

	c.JSON(http.StatusOK, BulkResponse{Updated: updated})
}

// @Summary      Get blocked weekdays
// @Tags         availability
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Success      200 {object} api.WeekdaysResponse
// @Router       /trainers/{trainerID}/blocked-weekdays [get]
func (h *Handler) BlockedWeekdays(c *gin.Context) {
	trainerID, err := api.IntParam(c, "trainerID")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	weekdays, err := h.service.BlockedWeekdays(c.Request.Context(), trainerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch blocked weekdays"})
		return
	}

	c.JSON(http.StatusOK, api.WeekdaysResponse{Weekdays: weekdays})
}

// @Summary      Replace blocked weekdays
// @Tags         availability
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Param        request body availability.BlockedWeekdaysRequest true "Weekdays, 0 = Sunday"
// @Success      200 {object} api.WeekdaysResponse
// @Failure      400 {object} api.ErrorResponse
// @Router       /trainers/{trainerID}/blocked-weekdays [put]
func (h *Handler) SetBlockedWeekdays(c *gin.Context) {
	trainerID, err := api.IntParam(c, "trainerID")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	var req BlockedWeekdaysRequest
	if !api.BindJSON(c, &req) {
		return
	}

	weekdays, err := h.service.SetBlockedWeekdays(c.Request.Context(), trainerID, req.Weekdays)
	if err != nil {
		writeError(c, err, "Failed to save blocked weekdays")
		return
	}

	c.JSON(http.StatusOK, api.WeekdaysResponse{Weekdays: weekdays})
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrRangeTooLong),
		errors.Is(err, calendar.ErrMalformedDate),
		errors.Is(err, calendar.ErrInvalidWindow),
		errors.Is(err, calendar.ErrInvalidWeekday):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
