package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"trainercal/internal/calendar"
)

var ErrInvalidID = errors.New("invalid id")

// IntParam reads a positive integer path parameter.
func IntParam(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// WindowQuery reads the from/to query parameters. A missing from defaults
// to the first day of the current month, a missing to to the last day of
// from's month.
func WindowQuery(c *gin.Context) (calendar.Window, error) {
	now := time.Now()
	from := calendar.MonthWindow(now.Year(), now.Month()).From

	if s := c.Query("from"); s != "" {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return calendar.Window{}, err
		}
		from = d
	}

	to := calendar.MonthWindow(from.Year(), from.Month()).To
	if s := c.Query("to"); s != "" {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return calendar.Window{}, err
		}
		to = d
	}

	w := calendar.Window{From: from, To: to}
	if err := w.Validate(); err != nil {
		return calendar.Window{}, err
	}
	return w, nil
}
