package cli

import (
	"context"
	"fmt"

	"trainercal/internal/availability"
)

type AvailabilitySetCmd struct {
	Trainer int    `help:"Trainer ID." required:""`
	Date    string `arg:"" help:"Date (YYYY-MM-DD)."`
	Status  string `arg:"" help:"Availability status." enum:"available,not_available,tentative,booked"`
	Start   string `help:"Start time (HH:MM)."`
	End     string `help:"End time (HH:MM)."`
}

func (c *AvailabilitySetCmd) Run(ctx *Context) error {
	stop := ctx.WatchSession()
	defer stop()

	record, err := ctx.Client.SetAvailability(context.Background(), c.Trainer, availability.SetRequest{
		Date:      c.Date,
		Status:    c.Status,
		StartTime: optional(c.Start),
		EndTime:   optional(c.End),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "%s is now %s\n", record.Date, statusStyle(statusOf(record.Status)).Render(record.Status))
	return nil
}

type AvailabilityBulkCmd struct {
	Trainer int    `help:"Trainer ID." required:""`
	From    string `help:"First date (YYYY-MM-DD)." required:""`
	To      string `help:"Last date (YYYY-MM-DD)." required:""`
	Status  string `arg:"" help:"Availability status." enum:"available,not_available,tentative,booked"`
	Start   string `help:"Start time (HH:MM)."`
	End     string `help:"End time (HH:MM)."`
}

func (c *AvailabilityBulkCmd) Run(ctx *Context) error {
	stop := ctx.WatchSession()
	defer stop()

	updated, err := ctx.Client.BulkSetAvailability(context.Background(), c.Trainer, availability.BulkRequest{
		StartDate: c.From,
		EndDate:   c.To,
		Status:    c.Status,
		StartTime: optional(c.Start),
		EndTime:   optional(c.End),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Updated %d days from %s to %s\n", updated, c.From, c.To)
	return nil
}
