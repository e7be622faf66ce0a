package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/casualjim/spindle/internal/config"
	"github.com/casualjim/spindle/pkg/slogx"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
)

var log zerolog.Logger

func setupLogging(w io.Writer, level slog.Level) {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Stamp}
	log = zerolog.New(output).With().Timestamp().Logger()
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: level}),
	))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("spindle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		envFile  = fs.String("env", "", "load settings from this .env file (default .env when present)")
		logLevel = fs.String("log-level", "", "log level: debug, info, warn or error (overrides SPINDLE_LOG_LEVEL)")
		asJSON   = fs.Bool("json", false, "print the report as JSON")
		dump     = fs.Bool("dump", false, "dump the running threads while the contention scenario runs")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if *logLevel != "" {
		if cfg.LogLevel, err = config.ParseLevel(*logLevel); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}
	setupLogging(stderr, cfg.LogLevel)

	slog.Info("running scenarios", slog.Int64("max_threads", cfg.MaxThreads))
	r := newRunner(cfg)
	if *dump {
		r.dump = stderr
	}
	report := r.runAll()

	if *asJSON {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			slog.Error("failed to encode report", slogx.Error(err))
			return 1
		}
		fmt.Fprintln(stdout, string(b))
	} else {
		printReport(stdout, report)
	}

	if !report.Passed() {
		return 1
	}
	return 0
}

func printReport(w io.Writer, report *Report) {
	for pair := report.Scenarios.Oldest(); pair != nil; pair = pair.Next() {
		res := pair.Value
		status := color.GreenString("PASS")
		if !res.OK {
			status = color.RedString("FAIL")
		}
		fmt.Fprintf(w, "%s %-12s %8s  %s\n", status, pair.Key, res.Elapsed.Round(time.Microsecond), res.Detail)
	}
}
