// Package newsentry turns syndicated RSS and Atom items into frozen news
// entries hosted by a page of the site.
package newsentry

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/pevans/newsentry/news"
)

// ItemError describes a feed item that could not become a news entry.
type ItemError struct {
	Index int
	Title string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d (%q): %v", e.Index, e.Title, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// ImportResult contains the entries converted from a feed, in feed order
// (newest first), and the items that were skipped.
type ImportResult struct {
	Entries []*news.Entry
	Errors  []ItemError
}

// ParseFeed parses an RSS or Atom document. The gofeed library detects the
// format; nothing is fetched over the network.
func ParseFeed(r io.Reader) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	feed, err := fp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}

// FeedItemToEntry converts a feed item into a news entry hosted by host.
// gofeed normalizes RSS and Atom into the same item fields:
//   - Title -> title
//   - Description (<description> or <summary>) -> description, markup removed
//   - Published, else Updated -> publish date (required)
//   - Link host -> target domain, when it differs from the host's domain
//   - Link path -> target page, link fragment -> element
func FeedItemToEntry(item *gofeed.Item, host news.PageRef, ids *news.IDAssigner) (*news.Entry, error) {
	b := news.NewBuilder(host)

	if err := b.SetTitle(strings.TrimSpace(item.Title)); err != nil {
		return nil, err
	}

	description, err := plainText(item.Description)
	if err != nil {
		return nil, err
	}
	if err := b.SetDescription(description); err != nil {
		return nil, err
	}

	// A missing date is not replaced by "now": the publish date drives feed
	// order and must come from the source.
	switch {
	case item.PublishedParsed != nil:
		err = b.SetPubDate(*item.PublishedParsed)
	case item.UpdatedParsed != nil:
		err = b.SetPubDate(*item.UpdatedParsed)
	default:
		err = &news.ValidationError{Field: "pubDate", Message: "item has no published or updated date"}
	}
	if err != nil {
		return nil, err
	}

	if item.Link != "" {
		link, err := url.Parse(item.Link)
		if err != nil {
			return nil, fmt.Errorf("invalid link %q: %w", item.Link, err)
		}
		if h := link.Hostname(); h != "" && h != host.Domain {
			if err := b.SetDomain(h); err != nil {
				return nil, err
			}
		}
		if err := b.SetTargetPage(link.Path); err != nil {
			return nil, err
		}
		if err := b.SetElement(link.Fragment); err != nil {
			return nil, err
		}
	}

	if ids != nil {
		if err := b.AssignID(ids); err != nil {
			return nil, err
		}
	}

	return b.Freeze()
}

// FeedToEntries converts every item of a feed. Items that cannot be
// converted are reported in the result instead of aborting the import.
func FeedToEntries(feed *gofeed.Feed, host news.PageRef) (*ImportResult, error) {
	ids := news.NewIDAssigner()
	result := &ImportResult{}

	for i, item := range feed.Items {
		entry, err := FeedItemToEntry(item, host, ids)
		if err != nil {
			result.Errors = append(result.Errors, ItemError{
				Index: i,
				Title: item.Title,
				Err:   err,
			})
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	if err := news.Sort(result.Entries); err != nil {
		return nil, fmt.Errorf("failed to sort entries: %w", err)
	}
	return result, nil
}

// plainText strips markup from an HTML fragment and collapses whitespace.
func plainText(fragment string) (string, error) {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " "), nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse description: %w", err)
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
