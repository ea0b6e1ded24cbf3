package news

import (
	"errors"
	"sync"
	"time"
)

// Builder holds a news entry while its declaring page is being built. All
// access goes through a single mutex; once Freeze succeeds every setter is
// rejected with a *FrozenError and the published *Entry never changes.
type Builder struct {
	mu     sync.Mutex
	e      Entry
	frozen *Entry
}

// NewBuilder starts an entry hosted by the given page.
func NewBuilder(page PageRef) *Builder {
	return &Builder{e: Entry{page: page}}
}

// set runs fn under the lock unless the builder is frozen.
func (b *Builder) set(field string, fn func(e *Entry)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen != nil {
		return &FrozenError{Field: field}
	}
	fn(&b.e)
	return nil
}

// get returns a snapshot of the current values.
func (b *Builder) get() *Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := b.e
	return &e
}

// SetID sets an explicit element id. Empty leaves the id to AssignID.
func (b *Builder) SetID(id string) error {
	return b.set("id", func(e *Entry) { e.id = id })
}

// SetDomain sets the target domain. Empty means the hosting page's domain.
func (b *Builder) SetDomain(domain string) error {
	return b.set("domain", func(e *Entry) { e.domain = domain })
}

// SetBook sets the target book. Empty means the hosting page's book.
func (b *Builder) SetBook(book string) error {
	return b.set("book", func(e *Entry) { e.book = book })
}

// SetTargetPage sets the target page path. Empty means the hosting page.
func (b *Builder) SetTargetPage(targetPage string) error {
	return b.set("targetPage", func(e *Entry) { e.targetPage = targetPage })
}

// SetElement sets the targeted element id. Empty means the whole page.
func (b *Builder) SetElement(element string) error {
	return b.set("element", func(e *Entry) { e.element = element })
}

// SetView sets the named view of the target. Empty means the default view.
func (b *Builder) SetView(view string) error {
	return b.set("view", func(e *Entry) { e.view = view })
}

// SetTitle sets the display title. Empty leaves the fallback to the caller.
func (b *Builder) SetTitle(title string) error {
	return b.set("title", func(e *Entry) { e.title = title })
}

// SetDescription stores a plain-text summary. Markup is kept as literal text;
// escaping it is up to the renderer.
func (b *Builder) SetDescription(description string) error {
	return b.set("description", func(e *Entry) { e.description = description })
}

// SetPubDate stores the publication time. The zero time clears it.
func (b *Builder) SetPubDate(pubDate time.Time) error {
	return b.set("pubDate", func(e *Entry) { e.pubDate = pubDate })
}

// SetAllowRobots sets the indexing setting; RobotsUnset inherits from the page.
func (b *Builder) SetAllowRobots(allow Robots) error {
	return b.set("allowRobots", func(e *Entry) { e.allowRobots = allow })
}

// AssignID gives the entry an id from a, using DefaultIDPrefix when none was
// set. An explicit id is reserved so later generated ids avoid it.
func (b *Builder) AssignID(a *IDAssigner) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen != nil {
		return &FrozenError{Field: "id"}
	}
	if a == nil {
		return errors.New("news: nil id assigner")
	}
	if b.e.id != "" {
		return a.Reserve(b.e.id)
	}
	b.e.id = a.Next(DefaultIDPrefix)
	return nil
}

// ID returns the current element id.
func (b *Builder) ID() string { return b.get().ID() }

// Page returns the hosting page.
func (b *Builder) Page() PageRef { return b.get().Page() }

// Domain returns the target domain as set.
func (b *Builder) Domain() string { return b.get().Domain() }

// Book returns the target book as set.
func (b *Builder) Book() string { return b.get().Book() }

// TargetPage returns the target page path as set.
func (b *Builder) TargetPage() string { return b.get().TargetPage() }

// Element returns the targeted element id.
func (b *Builder) Element() string { return b.get().Element() }

// View returns the target view.
func (b *Builder) View() string { return b.get().View() }

// Title returns the display title.
func (b *Builder) Title() string { return b.get().Title() }

// Description returns the summary text.
func (b *Builder) Description() string { return b.get().Description() }

// PubDate returns the publish date, zero until set.
func (b *Builder) PubDate() time.Time { return b.get().PubDate() }

// AllowRobots returns the indexing setting.
func (b *Builder) AllowRobots() Robots { return b.get().AllowRobots() }

// Label is the navigation label, the same as Title.
func (b *Builder) Label() string { return b.get().Label() }

// Hidden is always true: news entries never appear in navigation.
func (b *Builder) Hidden() bool { return true }

// Frozen reports whether Freeze has succeeded.
func (b *Builder) Frozen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frozen != nil
}

// Entry returns the frozen entry, or nil while the builder is still mutable.
func (b *Builder) Entry() *Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frozen
}

// Freeze publishes the entry. The publish date and hosting page are required;
// when either is missing the builder stays mutable and a *ValidationError is
// returned. Calling Freeze again returns the same entry.
func (b *Builder) Freeze() (*Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen != nil {
		return b.frozen, nil
	}
	if err := validate(&b.e); err != nil {
		return nil, err
	}

	e := b.e
	b.frozen = &e
	return b.frozen, nil
}

func validate(e *Entry) error {
	if e.pubDate.IsZero() {
		return &ValidationError{Field: "pubDate", Message: "publish date is required"}
	}
	if e.page.IsZero() {
		return &ValidationError{Field: "page", Message: "hosting page is required"}
	}
	return nil
}
