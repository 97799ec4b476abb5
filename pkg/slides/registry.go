// Package slides holds the ordered slide registry and the deck content
// rendered for each slide.
//
// The registry is the single source of slide order. Index 0 is the
// loading sentinel and the last index is the ending sentinel; neither is
// reachable through dot navigation.
package slides

import "fmt"

// ID identifies one slide of the report.
type ID string

// Well-known slide ids.
const (
	Loading ID = "loading"
	Cover   ID = "cover"
	Ending  ID = "ending"
)

// ContentPages is the number of content slides between cover and ending.
const ContentPages = 11

// Page returns the id of the n-th content slide (1-based).
func Page(n int) ID {
	return ID(fmt.Sprintf("page%d", n))
}

// Registry is an immutable ordered list of slide ids.
type Registry struct {
	ids   []ID
	index map[ID]int
}

// NewRegistry builds a registry from ids in order. It panics when ids
// contains fewer than three entries or a duplicate, since a registry
// without both sentinels and a cover cannot be navigated.
func NewRegistry(ids ...ID) *Registry {
	if len(ids) < 3 {
		panic(fmt.Sprintf("slides: registry needs at least 3 slides, got %d", len(ids)))
	}
	r := &Registry{
		ids:   make([]ID, len(ids)),
		index: make(map[ID]int, len(ids)),
	}
	copy(r.ids, ids)
	for i, id := range r.ids {
		if _, dup := r.index[id]; dup {
			panic(fmt.Sprintf("slides: duplicate slide id %q", id))
		}
		r.index[id] = i
	}
	return r
}

// DefaultRegistry returns loading, cover, page1..page11, ending.
func DefaultRegistry() *Registry {
	ids := []ID{Loading, Cover}
	for n := 1; n <= ContentPages; n++ {
		ids = append(ids, Page(n))
	}
	ids = append(ids, Ending)
	return NewRegistry(ids...)
}

// Count returns the number of slides, sentinels included.
func (r *Registry) Count() int {
	return len(r.ids)
}

// IDAt returns the id at index. An out-of-range index is a programming
// error and panics.
func (r *Registry) IDAt(index int) ID {
	if index < 0 || index >= len(r.ids) {
		panic(fmt.Sprintf("slides: index %d out of range [0,%d)", index, len(r.ids)))
	}
	return r.ids[index]
}

// IndexOf returns the index of id. An unregistered id panics.
func (r *Registry) IndexOf(id ID) int {
	i, ok := r.index[id]
	if !ok {
		panic(fmt.Sprintf("slides: unknown slide id %q", id))
	}
	return i
}

// Lookup is the non-panicking form of IndexOf, for ids that come from
// user-edited content.
func (r *Registry) Lookup(id ID) (int, bool) {
	i, ok := r.index[id]
	return i, ok
}

// IDs returns a copy of the ordered ids.
func (r *Registry) IDs() []ID {
	out := make([]ID, len(r.ids))
	copy(out, r.ids)
	return out
}

// IsSentinel reports whether index is the loading or ending slide.
func (r *Registry) IsSentinel(index int) bool {
	return index == 0 || index == len(r.ids)-1
}

// CoverIndex is the index of the first directly reachable slide.
func (r *Registry) CoverIndex() int { return 1 }

// LastIndex is the index of the ending sentinel.
func (r *Registry) LastIndex() int { return len(r.ids) - 1 }
