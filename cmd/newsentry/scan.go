package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pevans/newsentry/config"
	"github.com/pevans/newsentry/discovery"
	"go.uber.org/zap"
)

// handleScan prints the news entries declared in the given HTML files.
// Skipped elements are reported by the scanner's warn-level log lines.
func handleScan(cfg *config.FileConfig, log *zap.Logger, args []string, stdout io.Writer) error {
	// Parse flags for scan command
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	root := fs.String("root", "", "Site root; page paths are relative to it")
	domain := fs.String("domain", cfg.Scan.Domain, "Domain of the scanned pages")
	book := fs.String("book", cfg.Scan.Book, "Book of the scanned pages")
	format := fs.String("format", "table", "Output format: table, json")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one HTML file is required\n")
		fmt.Fprintf(os.Stderr, "Usage: newsentry scan [flags] <file>...\n")
		return errUsage
	}

	scanCfg := cfg.Scan
	scanCfg.Domain = *domain
	scanCfg.Book = *book

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scanner := discovery.NewScanner(scanCfg, log)
	result, err := scanner.ScanFiles(ctx, *root, fs.Args())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	return printEntries(stdout, result.Entries, *format)
}
