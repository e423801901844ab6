package cli

import (
	"context"
	"fmt"
	"strings"

	"trainercal/internal/calendar"
)

type BlockedShowCmd struct {
	Trainer int `help:"Trainer ID." required:""`
}

func (c *BlockedShowCmd) Run(ctx *Context) error {
	stop := ctx.WatchSession()
	defer stop()

	weekdays, err := ctx.Client.BlockedWeekdays(context.Background(), c.Trainer)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, formatWeekdays(weekdays))
	return nil
}

type BlockedSetCmd struct {
	Trainer  int    `help:"Trainer ID." required:""`
	Weekdays string `arg:"" help:"Comma separated weekdays (sun,mon,... or 0-6), or 'none' to clear."`
}

func (c *BlockedSetCmd) Run(ctx *Context) error {
	weekdays, err := parseWeekdays(c.Weekdays)
	if err != nil {
		return err
	}

	stop := ctx.WatchSession()
	defer stop()

	saved, err := ctx.Client.SetBlockedWeekdays(context.Background(), c.Trainer, calendar.NewWeekdaySet(weekdays).Sorted())
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Blocked weekdays: %s\n", formatWeekdays(saved))
	return nil
}

func formatWeekdays(weekdays []int) string {
	if len(weekdays) == 0 {
		return "none"
	}

	names := make([]string, 0, len(weekdays))
	for _, wd := range calendar.NewWeekdaySet(weekdays).Sorted() {
		if wd < 0 || wd >= len(weekdayHeaders) {
			names = append(names, fmt.Sprint(wd))
			continue
		}
		names = append(names, weekdayHeaders[wd])
	}
	return strings.Join(names, ",")
}
