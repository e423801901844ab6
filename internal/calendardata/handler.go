package calendardata

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trainercal/internal/api"
	"trainercal/internal/calendar"
)

type Handler struct {
	loader *Loader
}

func NewHandler(loader *Loader) *Handler {
	return &Handler{
		loader: loader,
	}
}

// @Summary      Get a trainer's month calendar
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Param        month query string false "YYYY-MM, defaults to the current month"
// @Param        filter query string false "all, available, not_available, blocked, tentative or booked"
// @Success      200 {object} calendardata.Snapshot
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /trainers/{trainerID}/calendar [get]
func (h *Handler) GetCalendar(c *gin.Context) {
	trainerID, err := api.IntParam(c, "trainerID")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if s := c.Query("month"); s != "" {
		year, month, err = calendar.ParseMonth(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid month, expected YYYY-MM"})
			return
		}
	}

	filter := c.DefaultQuery("filter", calendar.FilterAll)
	if !calendar.ValidFilter(filter) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: ErrInvalidFilter.Error()})
		return
	}

	snapshot, err := h.loader.Load(c.Request.Context(), trainerID, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load calendar"})
		return
	}

	c.JSON(http.StatusOK, snapshot.Filtered(filter))
}

// @Summary      Expand blocked weekdays into dates
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Param        from query string false "YYYY-MM-DD"
// @Param        to query string false "YYYY-MM-DD"
// @Success      200 {object} api.DatesResponse
// @Failure      400 {object} api.ErrorResponse
// @Router       /trainers/{trainerID}/calendar/blocked-dates [get]
func (h *Handler) BlockedDates(c *gin.Context) {
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

	dates, err := h.loader.BlockedDates(c.Request.Context(), trainerID, window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load blocked dates"})
		return
	}

	c.JSON(http.StatusOK, api.DatesResponse{Dates: dates})
}
