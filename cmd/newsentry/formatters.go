package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pevans/newsentry/news"
)

// printEntries writes entries in the requested format
func printEntries(w io.Writer, entries []*news.Entry, format string) error {
	switch format {
	case "table":
		printEntriesTable(w, entries)
		return nil
	case "json":
		return printEntriesJSON(w, entries)
	default:
		return fmt.Errorf("unknown format %q (use table or json)", format)
	}
}

// printEntriesTable prints entries in human-readable form
func printEntriesTable(w io.Writer, entries []*news.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No news entries found.")
		return
	}

	for _, e := range entries {
		// Untitled entries show their target instead
		label := e.Label()
		if label == "" {
			label = "(" + e.Target().String() + ")"
		}
		label = truncate(label, 70)
		description := truncate(e.Description(), 150)

		fmt.Fprintf(w, "%s  %s\n", e.PubDate().Format("2006-01-02 15:04"), label)
		fmt.Fprintf(w, "   Page: %s | Target: %s | Robots: %s\n", e.Page(), e.Target(), e.AllowRobots())
		if description != "" {
			fmt.Fprintf(w, "   %s\n", description)
		}
		fmt.Fprintf(w, "   ID: %s | GUID: %s\n", e.ID(), e.GUID())
		fmt.Fprintln(w)
	}
}

// printEntriesJSON prints entries as an indented JSON array
func printEntriesJSON(w io.Writer, entries []*news.Entry) error {
	if entries == nil {
		entries = []*news.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	return nil
}
