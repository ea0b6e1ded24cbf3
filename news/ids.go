package news

import (
	"fmt"
	"strconv"
)

// DefaultIDPrefix is the prefix used when a news entry was declared without
// an explicit id.
const DefaultIDPrefix = "news"

// IDAssigner hands out element ids that are unique within one page. It is
// owned by the page being built and is not safe for concurrent use. The zero
// value is ready to use.
type IDAssigner struct {
	used map[string]struct{}
}

// NewIDAssigner creates an assigner with no ids taken.
func NewIDAssigner() *IDAssigner {
	return &IDAssigner{used: make(map[string]struct{})}
}

// Reserve records an explicitly declared id.
func (a *IDAssigner) Reserve(id string) error {
	a.init()
	if _, ok := a.used[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	a.used[id] = struct{}{}
	return nil
}

// Next returns the first free id of the form prefix, prefix-2, prefix-3...
// and marks it as used.
func (a *IDAssigner) Next(prefix string) string {
	a.init()
	id := prefix
	for n := 2; ; n++ {
		if _, ok := a.used[id]; !ok {
			break
		}
		id = prefix + "-" + strconv.Itoa(n)
	}
	a.used[id] = struct{}{}
	return id
}

func (a *IDAssigner) init() {
	if a.used == nil {
		a.used = make(map[string]struct{})
	}
}
