// Package main is the entry point for the propbrowser terminal demo.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/propbrowser/internal/app"
	"github.com/dshills/propbrowser/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	app     app.Options
	logFile string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logOut := io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	opts.app.LogOutput = logOut
	opts.app.Watch = opts.app.ConfigPath != ""

	session, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := session.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	ui, err := newUI(session)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := ui.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write log output to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "propbrowser - terminal property browser\n\n")
		fmt.Fprintf(os.Stderr, "Usage: propbrowser [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Up/Down      move the current row\n")
		fmt.Fprintf(os.Stderr, "  Left/Right   collapse/expand\n")
		fmt.Fprintf(os.Stderr, "  + / -        step integer values\n")
		fmt.Fprintf(os.Stderr, "  Space        toggle booleans\n")
		fmt.Fprintf(os.Stderr, "  q            quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("propbrowser %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.app.LogLevel != "" {
		if _, ok := logging.ParseLevel(opts.app.LogLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.app.LogLevel)
			os.Exit(1)
		}
	}

	return opts
}
