package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pevans/newsentry"
	"github.com/pevans/newsentry/config"
	"github.com/pevans/newsentry/news"
	"go.uber.org/zap"
)

func handleImport(cfg *config.FileConfig, log *zap.Logger, args []string, stdout io.Writer) error {
	// Parse flags for import command
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	page := fs.String("page", "/", "Path of the page hosting the imported entries")
	domain := fs.String("domain", cfg.Scan.Domain, "Domain of the hosting page")
	book := fs.String("book", cfg.Scan.Book, "Book of the hosting page")
	format := fs.String("format", "table", "Output format: table, json")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: exactly one feed file is required\n")
		fmt.Fprintf(os.Stderr, "Usage: newsentry import [flags] <feed-file>\n")
		return errUsage
	}
	path := fs.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.Close()

	feed, err := newsentry.ParseFeed(f)
	if err != nil {
		return err
	}

	host := news.PageRef{Domain: *domain, Book: *book, Path: *page}
	result, err := newsentry.FeedToEntries(feed, host)
	if err != nil {
		return err
	}

	log.Info("imported feed",
		zap.String("file", path),
		zap.String("feed", feed.Title),
		zap.String("format", feed.FeedType),
		zap.Int("entries", len(result.Entries)),
		zap.Int("skipped", len(result.Errors)))

	for i := range result.Errors {
		log.Warn("skipped feed item", zap.Error(&result.Errors[i]))
	}

	return printEntries(stdout, result.Entries, *format)
}
