package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"trainercal/internal/cli"
	"trainercal/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	URL      string `help:"TrainerCal API base URL." env:"TRAINERCAL_URL" default:"http://localhost:8080"`
	Token    string `help:"Bearer token." env:"TRAINERCAL_TOKEN"`
	LogLevel string `help:"Log level." env:"LOG_LEVEL" default:"warn"`

	Month        cli.MonthCmd `cmd:"" help:"Show a trainer's month calendar."`
	Availability struct {
		Set  cli.AvailabilitySetCmd  `cmd:"" help:"Set the availability of one date."`
		Bulk cli.AvailabilityBulkCmd `cmd:"" help:"Set the availability of a date range."`
	} `cmd:"" help:"Manage availability."`
	Blocked struct {
		Show cli.BlockedShowCmd `cmd:"" help:"Show blocked weekdays."`
		Set  cli.BlockedSetCmd  `cmd:"" help:"Replace blocked weekdays."`
	} `cmd:"" help:"Manage recurring blocked weekdays."`
	Booking struct {
		Status cli.BookingStatusCmd `cmd:"" help:"Change the status of a booking request."`
	} `cmd:"" help:"Manage booking requests."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("calctl"),
		kong.Description("Trainer calendar companion"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	logger.InitWithWriter(os.Stderr, CLI.LogLevel)

	appCtx := cli.NewContext(CLI.URL, CLI.Token, nil, os.Stdout, os.Stderr)

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
