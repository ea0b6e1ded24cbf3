// Package discovery finds news entries declared in page HTML and freezes
// them for feed consumers.
package discovery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/pevans/newsentry/news"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ScanError describes a news element (or whole file) that was skipped.
// Index is the element's position among matches on the page, or -1 when the
// page itself could not be read.
type ScanError struct {
	Page  news.PageRef
	Index int
	Err   error
}

func (e *ScanError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("%s: news element %d: %v", e.Page, e.Index, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ScanResult contains the frozen entries found on one or more pages, along
// with any elements that had to be skipped.
type ScanResult struct {
	Entries []*news.Entry
	Errors  []ScanError
}

// Scanner extracts news entries from HTML pages.
type Scanner struct {
	cfg ScanConfig
	log *zap.Logger
}

// NewScanner creates a scanner. A nil logger discards output.
func NewScanner(cfg ScanConfig, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{
		cfg: cfg.withDefaults(),
		log: log,
	}
}

// pending is a populated builder waiting for id assignment and freezing.
type pending struct {
	index   int
	builder *news.Builder
}

// Scan reads one page and returns its news entries in document order.
// Elements are read from the attributes id, domain, book, page, element,
// view, title, description, pubdate and allowrobots; when description is
// absent the element's text content is used. Malformed elements are
// reported in the result rather than failing the scan.
func (s *Scanner) Scan(page news.PageRef, r io.Reader) (*ScanResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &ScanResult{}
	skip := func(index int, err error) {
		s.log.Warn("skipping news element",
			zap.Stringer("page", page),
			zap.Int("index", index),
			zap.Error(err))
		result.Errors = append(result.Errors, ScanError{Page: page, Index: index, Err: err})
	}

	var populated []pending
	doc.Find(s.cfg.Selector).Each(func(i int, sel *goquery.Selection) {
		b, err := s.populate(page, sel)
		if err != nil {
			skip(i, err)
			return
		}
		populated = append(populated, pending{index: i, builder: b})
	})

	// Explicit ids are reserved before any are generated so that a declared
	// "news" later on the page still wins over a generated one.
	ids := news.NewIDAssigner()
	assigned := make([]pending, 0, len(populated))
	for _, explicit := range []bool{true, false} {
		for _, p := range populated {
			if (p.builder.ID() != "") != explicit {
				continue
			}
			if err := p.builder.AssignID(ids); err != nil {
				skip(p.index, err)
				continue
			}
			assigned = append(assigned, p)
		}
	}

	// Restore document order before freezing
	byIndex := make(map[int]*news.Builder, len(assigned))
	for _, p := range assigned {
		byIndex[p.index] = p.builder
	}
	for _, p := range populated {
		b, ok := byIndex[p.index]
		if !ok {
			continue
		}
		entry, err := b.Freeze()
		if err != nil {
			skip(p.index, err)
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	s.log.Debug("scanned page",
		zap.Stringer("page", page),
		zap.Int("entries", len(result.Entries)),
		zap.Int("skipped", len(result.Errors)))

	return result, nil
}

// populate copies a news element's attributes into a new builder.
func (s *Scanner) populate(page news.PageRef, sel *goquery.Selection) (*news.Builder, error) {
	b := news.NewBuilder(page)

	attr := func(name string) string {
		v, _ := sel.Attr(name)
		return strings.TrimSpace(v)
	}

	setters := []struct {
		attr string
		set  func(string) error
	}{
		{"id", b.SetID},
		{"domain", b.SetDomain},
		{"book", b.SetBook},
		{"page", b.SetTargetPage},
		{"element", b.SetElement},
		{"view", b.SetView},
		{"title", b.SetTitle},
	}
	for _, st := range setters {
		if err := st.set(attr(st.attr)); err != nil {
			return nil, err
		}
	}

	// Description is plain text; collapse the whitespace of the body text
	description := attr("description")
	if description == "" {
		description = strings.Join(strings.Fields(sel.Text()), " ")
	}
	if err := b.SetDescription(description); err != nil {
		return nil, err
	}

	if raw := attr("pubdate"); raw != "" {
		pubDate, err := s.parseDate(raw)
		if err != nil {
			return nil, err
		}
		if err := b.SetPubDate(pubDate); err != nil {
			return nil, err
		}
	}

	robots, err := news.ParseRobots(attr("allowrobots"))
	if err != nil {
		return nil, err
	}
	if err := b.SetAllowRobots(robots); err != nil {
		return nil, err
	}

	return b, nil
}

// parseDate uses the configured layout when set and otherwise lets
// dateparse detect the format. Dates without a zone are taken as UTC.
func (s *Scanner) parseDate(raw string) (time.Time, error) {
	if s.cfg.DateLayout != "" {
		t, err := time.Parse(s.cfg.DateLayout, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid pubdate %q: %w", raw, err)
		}
		return t, nil
	}

	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pubdate %q: %w", raw, err)
	}
	return t, nil
}

// PageRefForFile maps a file below root to the page it renders. The page
// path is the slash-separated path relative to root with a leading slash.
func (s *Scanner) PageRefForFile(root, path string) (news.PageRef, error) {
	rel := path
	if root != "" {
		var err error
		rel, err = filepath.Rel(root, path)
		if err != nil {
			return news.PageRef{}, fmt.Errorf("failed to resolve %s against %s: %w", path, root, err)
		}
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return news.PageRef{}, fmt.Errorf("%s is outside %s", path, root)
		}
	}

	return news.PageRef{
		Domain: s.cfg.Domain,
		Book:   s.cfg.Book,
		Path:   "/" + strings.TrimPrefix(filepath.ToSlash(rel), "/"),
	}, nil
}

// ScanFiles scans several files concurrently and returns all entries in feed
// order. Files that cannot be read are reported in the result; only context
// cancellation aborts the scan.
func (s *Scanner) ScanFiles(ctx context.Context, root string, paths []string) (*ScanResult, error) {
	results := make([]*ScanResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.scanFile(root, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &ScanResult{}
	for _, r := range results {
		merged.Entries = append(merged.Entries, r.Entries...)
		merged.Errors = append(merged.Errors, r.Errors...)
	}
	if err := news.Sort(merged.Entries); err != nil {
		return nil, fmt.Errorf("failed to sort entries: %w", err)
	}

	s.log.Info("scan complete",
		zap.Int("files", len(paths)),
		zap.Int("entries", len(merged.Entries)),
		zap.Int("skipped", len(merged.Errors)))

	return merged, nil
}

func (s *Scanner) scanFile(root, path string) *ScanResult {
	page, err := s.PageRefForFile(root, path)
	if err != nil {
		page = news.PageRef{Path: path}
		return s.fileError(page, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return s.fileError(page, fmt.Errorf("failed to open page: %w", err))
	}
	defer f.Close()

	res, err := s.Scan(page, f)
	if err != nil {
		return s.fileError(page, err)
	}
	return res
}

func (s *Scanner) fileError(page news.PageRef, err error) *ScanResult {
	s.log.Warn("skipping page", zap.Stringer("page", page), zap.Error(err))
	return &ScanResult{Errors: []ScanError{{Page: page, Index: -1, Err: err}}}
}
