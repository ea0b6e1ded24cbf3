// Package news defines the news entry: an announceable item anchored to a
// location in a site's content tree. Entries are populated through a Builder
// and published as immutable Entry values.
package news

import (
	"cmp"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PageRef identifies the page hosting a news entry.
type PageRef struct {
	Domain string `json:"domain,omitempty"`
	Book   string `json:"book,omitempty"`
	Path   string `json:"path"`
}

// IsZero reports whether the reference points nowhere.
func (p PageRef) IsZero() bool {
	return p.Path == ""
}

// Compare orders page references by domain, book, then path.
func (p PageRef) Compare(o PageRef) int {
	if c := cmp.Compare(p.Domain, o.Domain); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Book, o.Book); c != 0 {
		return c
	}
	return cmp.Compare(p.Path, o.Path)
}

// String renders the reference for display and logs. Empty parts are
// omitted, so it is not an identifier.
func (p PageRef) String() string {
	return joinNonEmpty(":", p.Domain, p.Book, p.Path)
}

// Target is the resolved location a news entry announces.
type Target struct {
	Domain  string `json:"domain,omitempty"`
	Book    string `json:"book,omitempty"`
	Page    string `json:"page"`
	Element string `json:"element,omitempty"`
	View    string `json:"view,omitempty"`
}

// String renders the target for display. Use GUID to identify a target.
func (t Target) String() string {
	var sb strings.Builder
	sb.WriteString(joinNonEmpty(":", t.Domain, t.Book, t.Page))
	if t.Element != "" {
		sb.WriteString("#")
		sb.WriteString(t.Element)
	}
	if t.View != "" {
		sb.WriteString("?view=")
		sb.WriteString(t.View)
	}
	return sb.String()
}

// Entry is a frozen news entry. It has no setters and may be shared freely
// between goroutines. Entries are obtained from Builder.Freeze.
type Entry struct {
	id   string
	page PageRef

	// Target reference; empty means "same as the hosting page" (or, for
	// element and view, the page as a whole and its default view).
	domain     string
	book       string
	targetPage string
	element    string
	view       string

	title       string
	description string // plain text, never markup
	pubDate     time.Time
	allowRobots Robots
}

// ID is the element id, unique within the hosting page.
func (e *Entry) ID() string { return e.id }

// Page is the page that declared the entry.
func (e *Entry) Page() PageRef { return e.page }

// Domain is the target domain; empty means the hosting page's domain.
func (e *Entry) Domain() string { return e.domain }

// Book is the target book; empty means the hosting page's book.
func (e *Entry) Book() string { return e.book }

// TargetPage is the target page path; empty means the hosting page.
func (e *Entry) TargetPage() string { return e.targetPage }

// Element is the targeted element id; empty means the page as a whole.
func (e *Entry) Element() string { return e.element }

// View is the named view of the target; empty means the default view.
func (e *Entry) View() string { return e.view }

// Title is the display title, possibly empty.
func (e *Entry) Title() string { return e.title }

// Description is the plain-text summary, possibly empty.
func (e *Entry) Description() string { return e.description }

// PubDate is the publication time. It is never zero on a frozen entry.
func (e *Entry) PubDate() time.Time { return e.pubDate }

// AllowRobots is the entry's indexing setting.
func (e *Entry) AllowRobots() Robots { return e.allowRobots }

// Label returns the title. An empty label means the caller should fall back
// to the target's own title.
func (e *Entry) Label() string {
	return e.title
}

// Hidden is always true: news entries are not part of the page content and
// are only reached through feed traversal.
func (e *Entry) Hidden() bool {
	return true
}

// Target resolves the announced location against the hosting page.
func (e *Entry) Target() Target {
	return resolveTarget(e.page, e.domain, e.book, e.targetPage, e.element, e.view)
}

// GUID is a stable identifier derived from the resolved target. It hashes
// every target field by position, so targets that only differ in which field
// holds a value still get distinct guids.
func (e *Entry) GUID() uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, e.Target().key())
}

// entryJSON is the serialized form of an Entry.
type entryJSON struct {
	ID          string    `json:"id"`
	GUID        string    `json:"guid"`
	Page        PageRef   `json:"page"`
	Target      Target    `json:"target"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	PubDate     time.Time `json:"pub_date"`
	AllowRobots Robots    `json:"allow_robots"`
}

func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		ID:          e.id,
		GUID:        e.GUID().String(),
		Page:        e.page,
		Target:      e.Target(),
		Title:       e.title,
		Description: e.description,
		PubDate:     e.pubDate,
		AllowRobots: e.allowRobots,
	})
}

// key encodes all five fields as a JSON array. Unlike String, empty fields
// keep their position.
func (t Target) key() []byte {
	data, _ := json.Marshal([]string{t.Domain, t.Book, t.Page, t.Element, t.View})
	return data
}

func resolveTarget(page PageRef, domain, book, targetPage, element, view string) Target {
	t := Target{
		Domain:  domain,
		Book:    book,
		Page:    targetPage,
		Element: element,
		View:    view,
	}
	if t.Domain == "" {
		t.Domain = page.Domain
	}
	if t.Book == "" {
		t.Book = page.Book
	}
	if t.Page == "" {
		t.Page = page.Path
	}
	return t
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
