package news

import (
	"fmt"
	"slices"
)

// Compare orders entries newest first, breaking ties by hosting page. It
// returns an error instead of an ordering when either entry is nil or lacks
// a publish date or hosting page.
func Compare(a, b *Entry) (int, error) {
	if err := checkComparable(a); err != nil {
		return 0, err
	}
	if err := checkComparable(b); err != nil {
		return 0, err
	}
	return compare(a, b), nil
}

// Sort orders entries in place by Compare. The slice is left untouched if any
// entry is not comparable.
func Sort(entries []*Entry) error {
	for i, e := range entries {
		if err := checkComparable(e); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	slices.SortStableFunc(entries, compare)
	return nil
}

func compare(a, b *Entry) int {
	if c := b.pubDate.Compare(a.pubDate); c != 0 {
		return c
	}
	return a.page.Compare(b.page)
}

func checkComparable(e *Entry) error {
	if e == nil {
		return &ValidationError{Field: "entry", Message: "entry is nil"}
	}
	return validate(e)
}
