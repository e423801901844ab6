package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"trainercal/internal/apiclient"
	"trainercal/internal/calendar"
	"trainercal/internal/calendardata"
	"trainercal/internal/events"
)

type MonthCmd struct {
	Trainer int    `help:"Trainer ID." required:""`
	Month   string `help:"Month to show (YYYY-MM). Defaults to the current month."`
	Filter  string `help:"Only show days with this status." default:"all" enum:"all,available,not_available,blocked,tentative,booked"`
	Watch   bool   `help:"Redraw whenever the calendar changes, until interrupted."`
}

func (c *MonthCmd) Run(ctx *Context) error {
	year, month := time.Now().Year(), time.Now().Month()
	if c.Month != "" {
		var err error
		year, month, err = calendar.ParseMonth(c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q, use YYYY-MM", c.Month)
		}
	}

	stop := ctx.WatchSession()
	defer stop()

	bg, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Watching redraws after each refetch, so it drives the view itself.
	var bus *events.Bus
	if !c.Watch {
		bus = ctx.Bus
	}
	view := calendardata.NewView(bg, calendardata.NewLoader(ctx.Client), bus, c.Trainer, year, month)
	defer view.Close()

	if err := view.Filter(c.Filter); err != nil {
		return err
	}
	if err := view.Navigate(bg, year, month); err != nil {
		return err
	}
	fmt.Fprint(ctx.Out, RenderMonth(view.Snapshot(), view.CurrentFilter()))

	if !c.Watch {
		return nil
	}
	return c.watch(bg, ctx, view)
}

func (c *MonthCmd) watch(bg context.Context, ctx *Context, view *calendardata.View) error {
	refresh := make(chan struct{}, 1)
	unsubscribe := events.Subscribe(ctx.Bus, func(e events.CalendarChanged) {
		if e.TrainerID != c.Trainer {
			return
		}
		select {
		case refresh <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	streamErr := make(chan error, 1)
	go func() {
		streamErr <- ctx.Client.WatchChanges(bg, c.Trainer)
	}()

	redraw := func() error {
		if err := view.Retry(bg); err != nil {
			return err
		}
		fmt.Fprint(ctx.Out, RenderMonth(view.Snapshot(), view.CurrentFilter()))
		return nil
	}

	for {
		select {
		case <-refresh:
			if err := redraw(); err != nil {
				return err
			}
		case err := <-streamErr:
			select {
			case <-refresh:
				if err := redraw(); err != nil {
					return err
				}
			default:
			}
			switch {
			case errors.Is(err, context.Canceled):
				return nil
			case errors.Is(err, apiclient.ErrStreamClosed):
				fmt.Fprintln(ctx.Err, "Change stream closed.")
				return nil
			default:
				return err
			}
		}
	}
}
