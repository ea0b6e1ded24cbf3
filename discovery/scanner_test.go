package discovery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pevans/newsentry/news"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: a scanner with default config and no logging
func newTestScanner(t *testing.T, cfg ScanConfig) *Scanner {
	t.Helper()
	return NewScanner(cfg, nil)
}

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Downloads</title></head>
<body>
  <h1>Downloads</h1>
  <news title="Release 2.0" pubdate="2024-01-10T00:00:00Z" page="/downloads" element="v2"
        description="Second major release."></news>
  <news pubdate="2023-12-01" allowrobots="false">
    Security   fix
    for &lt;b&gt; tags.
  </news>
  <p>Unrelated content</p>
</body>
</html>`

// TestScan_SamplePage verifies attributes and body text are mapped to entries
func TestScan_SamplePage(t *testing.T) {
	s := newTestScanner(t, DefaultScanConfig())
	page := news.PageRef{Domain: "example", Book: "/docs", Path: "/index"}

	result, err := s.Scan(page, strings.NewReader(samplePage))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Entries, 2)

	first := result.Entries[0]
	assert.Equal(t, "news", first.ID())
	assert.Equal(t, "Release 2.0", first.Title())
	assert.Equal(t, "/downloads", first.TargetPage())
	assert.Equal(t, "v2", first.Element())
	assert.Equal(t, "Second major release.", first.Description())
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), first.PubDate().UTC())
	assert.Equal(t, page, first.Page())
	assert.Equal(t, news.RobotsUnset, first.AllowRobots())

	second := result.Entries[1]
	assert.Equal(t, "news-2", second.ID())
	assert.Empty(t, second.Title())
	assert.Equal(t, "Security fix for <b> tags.", second.Description(), "body text is kept as plain text")
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), second.PubDate())
	assert.Equal(t, news.RobotsDeny, second.AllowRobots())
	assert.True(t, second.Hidden())
}

// TestScan_Targets verifies resolved targets across a page
func TestScan_Targets(t *testing.T) {
	s := newTestScanner(t, DefaultScanConfig())
	html := `<div>
  <news pubdate="2024-01-01"></news>
  <news pubdate="2024-01-01" book="/blog" page="/post" view="print"></news>
  <news pubdate="2024-01-01" domain="other" element="top"></news>
</div>`

	result, err := s.Scan(news.PageRef{Domain: "example", Book: "/docs", Path: "/index"}, strings.NewReader(html))
	require.NoError(t, err)

	var targets []news.Target
	for _, e := range result.Entries {
		targets = append(targets, e.Target())
	}

	expected := []news.Target{
		{Domain: "example", Book: "/docs", Page: "/index"},
		{Domain: "example", Book: "/blog", Page: "/post", View: "print"},
		{Domain: "other", Book: "/docs", Page: "/index", Element: "top"},
	}
	if diff := cmp.Diff(expected, targets); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

// TestScan_ExplicitIDsReservedFirst verifies declared ids win over generated
func TestScan_ExplicitIDsReservedFirst(t *testing.T) {
	s := newTestScanner(t, DefaultScanConfig())
	html := `<news pubdate="2024-01-01"></news>
<news id="news" pubdate="2024-01-02"></news>
<news pubdate="2024-01-03"></news>`

	result, err := s.Scan(news.PageRef{Path: "/p"}, strings.NewReader(html))
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)

	assert.Equal(t, "news-2", result.Entries[0].ID())
	assert.Equal(t, "news", result.Entries[1].ID())
	assert.Equal(t, "news-3", result.Entries[2].ID())
}

// TestScan_SkipsInvalidElements verifies element errors are collected
func TestScan_SkipsInvalidElements(t *testing.T) {
	s := newTestScanner(t, DefaultScanConfig())
	html := `<news title="no date"></news>
<news pubdate="not a date"></news>
<news pubdate="2024-01-01" allowrobots="sometimes"></news>
<news id="dup" pubdate="2024-01-01"></news>
<news id="dup" pubdate="2024-01-02"></news>
<news title="ok" pubdate="2024-01-01"></news>`

	page := news.PageRef{Path: "/p"}
	result, err := s.Scan(page, strings.NewReader(html))
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, "dup", result.Entries[0].ID())
	assert.Equal(t, "ok", result.Entries[1].Title())

	require.Len(t, result.Errors, 4)
	indexes := make(map[int]error)
	for _, e := range result.Errors {
		assert.Equal(t, page, e.Page)
		indexes[e.Index] = e.Err
	}
	assert.ErrorIs(t, indexes[0], news.ErrIncomplete)
	assert.Contains(t, indexes[1].Error(), "invalid pubdate")
	assert.Contains(t, indexes[2].Error(), "allowRobots")
	assert.ErrorIs(t, indexes[4], news.ErrDuplicateID)
}

// TestScan_DateLayoutAndSelector verifies configured layout and selector
func TestScan_DateLayoutAndSelector(t *testing.T) {
	cfg := DefaultScanConfig()
	cfg.Selector = "div.news"
	cfg.DateLayout = "02/01/2006"
	s := newTestScanner(t, cfg)

	html := `<div class="news" pubdate="10/01/2024" title="A"></div>
<news pubdate="2024-01-01" title="ignored"></news>`

	result, err := s.Scan(news.PageRef{Path: "/p"}, strings.NewReader(html))
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "A", result.Entries[0].Title())
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), result.Entries[0].PubDate())
}

// TestPageRefForFile verifies file paths map to page paths below root
func TestPageRefForFile(t *testing.T) {
	s := newTestScanner(t, ScanConfig{Domain: "example", Book: "/docs"})
	root := filepath.Join("site", "content")

	ref, err := s.PageRefForFile(root, filepath.Join(root, "news", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, news.PageRef{Domain: "example", Book: "/docs", Path: "/news/index.html"}, ref)

	_, err = s.PageRefForFile(root, filepath.Join("site", "other.html"))
	assert.Error(t, err)

	ref, err = s.PageRefForFile("", "page.html")
	require.NoError(t, err)
	assert.Equal(t, "/page.html", ref.Path)
}

// TestScanFiles verifies concurrent scanning merges and orders entries
func TestScanFiles(t *testing.T) {
	root := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	paths := []string{
		write("b.html", `<news title="b-old" pubdate="2024-01-01"></news>`),
		write("a.html", `<news title="a-old" pubdate="2024-01-01"></news>`),
		write(filepath.Join("blog", "c.html"), `<news title="c-new" pubdate="2024-03-01"></news><news title="bad"></news>`),
		filepath.Join(root, "missing.html"),
	}

	s := newTestScanner(t, ScanConfig{Concurrency: 2, Book: "/site"})
	result, err := s.ScanFiles(context.Background(), root, paths)
	require.NoError(t, err)

	var titles []string
	for _, e := range result.Entries {
		titles = append(titles, e.Title())
	}
	assert.Equal(t, []string{"c-new", "a-old", "b-old"}, titles)
	assert.Equal(t, "/blog/c.html", result.Entries[0].Page().Path)
	assert.Equal(t, "/site", result.Entries[0].Page().Book)

	require.Len(t, result.Errors, 2)
	var fileErrors int
	for _, e := range result.Errors {
		if e.Index < 0 {
			fileErrors++
			assert.Equal(t, "/missing.html", e.Page.Path)
		}
	}
	assert.Equal(t, 1, fileErrors)
}

// TestScanFiles_Cancelled verifies a cancelled context aborts the scan
func TestScanFiles_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(t, DefaultScanConfig())
	_, err := s.ScanFiles(ctx, "", []string{"a.html"})
	assert.ErrorIs(t, err, context.Canceled)
}

// TestScanError_Message verifies element and file error formatting
func TestScanError_Message(t *testing.T) {
	page := news.PageRef{Book: "/docs", Path: "/p"}
	elem := &ScanError{Page: page, Index: 3, Err: news.ErrIncomplete}
	file := &ScanError{Page: page, Index: -1, Err: os.ErrNotExist}

	assert.Equal(t, "/docs:/p: news element 3: news entry is incomplete", elem.Error())
	assert.Equal(t, "/docs:/p: file does not exist", file.Error())
	assert.ErrorIs(t, file, os.ErrNotExist)
}
