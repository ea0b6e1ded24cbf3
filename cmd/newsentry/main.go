package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pevans/newsentry/config"
	"github.com/pevans/newsentry/logger"
	"go.uber.org/zap"
)

// errUsage marks argument errors; the usage text has already been printed.
var errUsage = errors.New("invalid usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes one subcommand and returns the process exit code. Handlers
// return errors instead of exiting so the deferred logger flush always runs.
func run(args []string, stdout io.Writer) int {
	if len(args) < 1 {
		printUsage(stdout)
		return 1
	}

	// Get subcommand
	subcommand := args[0]

	var handler func(*config.FileConfig, *zap.Logger, []string, io.Writer) error
	switch subcommand {
	case "scan":
		handler = handleScan
	case "import":
		handler = handleImport
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage(os.Stderr)
		return 1
	}

	cfg, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Sync()

	if err := handler(cfg, log, args[1:], stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// setup loads the config file and builds the logger, applying environment
// overrides.
func setup() (*config.FileConfig, *zap.Logger, error) {
	cfg, err := config.LoadConfigFile(getEnv("NEWSENTRY_CONFIG", ""))
	if err != nil {
		return nil, nil, err
	}
	cfg.Log.Level = getEnv("NEWSENTRY_LOG_LEVEL", cfg.Log.Level)

	log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "newsentry - Collect news entries declared in site pages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  newsentry <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  scan       Scan HTML pages for news entries")
	fmt.Fprintln(w, "  import     Convert an RSS or Atom file into news entries")
	fmt.Fprintln(w, "  help       Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment Variables:")
	fmt.Fprintln(w, "  NEWSENTRY_CONFIG     Path to config file (default: ~/.newsentry/config.yaml)")
	fmt.Fprintln(w, "  NEWSENTRY_LOG_LEVEL  Log level: debug, info, warn, error")
}
