package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	cli "github.com/jawher/mow.cli"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/geniass/price-tracker/pkg/config"
	"github.com/geniass/price-tracker/pkg/console"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "WARNING:", err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "WARNING: ignoring environment:", err)
		cfg = config.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg, os.Args, console.NewStdout)
	stop()
	os.Exit(code)
}

// run executes the command line in args and returns the process exit status:
// 0 for every command that ran, 2 for a command line that could not be parsed.
func run(ctx context.Context, defaults config.Config, args []string, newConsole func(noColor bool) *console.Console) int {
	app := newApp(ctx, defaults, newConsole)
	if err := app.Run(joinNegativeValues(args, "--drop")); err != nil {
		log.Debug().Err(err).Strs("args", args).Msg("invalid command line")
		return 2
	}
	return 0
}

// joinNegativeValues rewrites "--opt -5" as "--opt=-5" for the named options,
// since mow.cli reads a value starting with "-" as the next option.
func joinNegativeValues(args []string, opts ...string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if i+1 < len(args) && isOneOf(arg, opts) && strings.HasPrefix(args[i+1], "-") {
			if _, err := strconv.ParseFloat(args[i+1], 64); err == nil {
				out = append(out, arg+"="+args[i+1])
				i++
				continue
			}
		}
		out = append(out, arg)
	}
	return out
}

func isOneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

func setupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

func newApp(ctx context.Context, defaults config.Config, newConsole func(noColor bool) *console.Console) *cli.Cli {
	app := cli.App("pricetracker", "Track prices from e-commerce sites with historical data, trends, and alerts")
	// subcommands copy this when they are declared
	app.ErrorHandling = flag.ContinueOnError

	var (
		dataFile = app.String(cli.StringOpt{
			Name:   "f file",
			Value:  defaults.DataFile,
			Desc:   "JSON file holding the tracked products",
			EnvVar: config.EnvDataFile,
		})
		userAgent = app.String(cli.StringOpt{
			Name:      "user-agent",
			Value:     defaults.UserAgent,
			Desc:      "User-Agent header sent with every request",
			EnvVar:    config.EnvUserAgent,
			HideValue: true,
		})
		timeout = app.String(cli.StringOpt{
			Name:   "timeout",
			Value:  defaults.Timeout.String(),
			Desc:   "per-request timeout",
			EnvVar: config.EnvTimeout,
		})
		// NO_COLOR disables colour whatever its value, which a bool EnvVar
		// cannot express, so it only arrives through defaults
		noColor = app.Bool(cli.BoolOpt{
			Name:  "no-color",
			Value: defaults.NoColor,
			Desc:  "disable coloured output (" + config.EnvNoColor + ")",
		})
		verbose = app.Bool(cli.BoolOpt{
			Name:   "v verbose",
			Value:  defaults.Verbose,
			Desc:   "log every request to stderr",
			EnvVar: config.EnvVerbose,
		})
	)

	var e *env
	app.Before = func() {
		setupLogging(*verbose)

		cfg := config.Config{
			DataFile:  *dataFile,
			UserAgent: *userAgent,
			Timeout:   defaults.Timeout,
			NoColor:   *noColor,
			Verbose:   *verbose,
		}
		if d, err := time.ParseDuration(*timeout); err != nil {
			log.Warn().Err(err).Str("timeout", *timeout).Msg("invalid timeout, using default")
		} else {
			cfg.Timeout = d
		}
		e = newEnv(ctx, cfg, newConsole(cfg.NoColor))
	}

	// no command: show usage and exit normally
	app.Action = func() {
		app.PrintLongHelp()
	}

	app.Command("add", "Add a product to track", func(cmd *cli.Cmd) {
		cmd.Spec = "URL NAME"
		url := cmd.StringArg("URL", "", "product URL")
		name := cmd.StringArg("NAME", "", "product name")
		cmd.Action = func() { e.add(*url, *name) }
	})

	app.Command("check", "Update prices for all tracked products", func(cmd *cli.Cmd) {
		cmd.Action = func() { e.check() }
	})

	app.Command("list", "List all tracked products", func(cmd *cli.Cmd) {
		cmd.Action = func() { e.list() }
	})

	app.Command("history", "Show price history for a product", func(cmd *cli.Cmd) {
		cmd.Spec = "NAME"
		name := cmd.StringArg("NAME", "", "product name")
		cmd.Action = func() { e.history(*name) }
	})

	app.Command("stats", "Show detailed statistics", func(cmd *cli.Cmd) {
		cmd.Spec = "[NAME]"
		name := cmd.StringArg("NAME", "", "product name (all products when omitted)")
		cmd.Action = func() { e.stats(*name) }
	})

	app.Command("alert", "Check for price drop alerts", func(cmd *cli.Cmd) {
		cmd.Spec = "--drop"
		drop := cmd.Float64(cli.Float64Opt{
			Name: "drop",
			Desc: "alert when the latest price dropped by at least this percentage (may be negative)",
		})
		cmd.Action = func() { e.alert(*drop) }
	})

	app.Command("report", "Write an HTML report of all tracked products", func(cmd *cli.Cmd) {
		out := cmd.String(cli.StringOpt{Name: "o out", Value: "report.html", Desc: "output file"})
		cmd.Action = func() { e.report(*out) }
	})

	app.Command("help", "Show detailed help and usage examples", func(cmd *cli.Cmd) {
		cmd.Action = func() { e.help() }
	})

	return app
}
