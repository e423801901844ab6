package cli

import (
	"context"
	"fmt"

	"trainercal/internal/calendar"
)

type BookingStatusCmd struct {
	ID     int    `arg:"" help:"Booking request ID."`
	Status string `arg:"" help:"New status." enum:"approved,denied,confirmed,cancelled"`
}

func (c *BookingStatusCmd) Run(ctx *Context) error {
	stop := ctx.WatchSession()
	defer stop()

	req, err := ctx.Client.UpdateBookingStatus(context.Background(), c.ID, c.Status)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Request %d is now %s\n", req.ID, statusStyle(statusOf(req.Status)).Render(req.Status))
	return nil
}

// statusOf maps an upstream status onto the day status it colours as.
func statusOf(s string) calendar.Status {
	return calendar.Status(calendar.NormalizeStatus(s))
}
