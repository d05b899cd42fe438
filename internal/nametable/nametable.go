// Package nametable interns path components so that every occurrence of,
// say, "etc" across the whole hierarchical DB shares one canonical entry
// instead of allocating a fresh string each time a directory is loaded.
//
// Each entry also carries a pointer to its lowercase twin, computed once at
// insertion time, so the DB's case-insensitive comparator never has to
// lowercase a string on every comparison.
package nametable

import "strings"

// Handle is a stable index into a Table's arena. The zero Table never hands
// out NullHandle, so it's safe to use as a "no entry" sentinel in callers
// that embed a Handle field.
type Handle int32

// NullHandle represents the absence of a name-table entry.
const NullHandle Handle = -1

type entry struct {
	text  string
	lower Handle
}

// Table is the process- or database-scoped name table. Unlike the original
// design's process-wide singleton, a Table here is owned explicitly by
// whatever database opened it (see spec's note on making global state
// explicit). It has no internal locking and is not safe for concurrent use.
type Table struct {
	heap    *GrowHeap
	entries []entry
	index   map[string]Handle
}

// New creates an empty name table backed by a fresh grow-heap.
func New() *Table {
	return &Table{
		heap:  NewGrowHeap(0),
		index: make(map[string]Handle),
	}
}

// Intern returns the canonical Handle for s, creating a new entry (and its
// lowercase twin, if s isn't already all lowercase) if this is the first
// time s has been seen.
func (t *Table) Intern(s string) Handle {
	if h, ok := t.index[s]; ok {
		return h
	}
	return t.insert(s)
}

// insert allocates a new arena entry for s. Callers must have already
// confirmed s isn't present in t.index.
func (t *Table) insert(s string) Handle {
	buf := t.heap.Alloc(len(s))
	copy(buf, s)
	owned := string(buf)

	h := Handle(len(t.entries))
	t.entries = append(t.entries, entry{text: owned})
	t.index[s] = h

	lower := strings.ToLower(s)
	if lower == s {
		t.entries[h].lower = h
		return h
	}

	lh, ok := t.index[lower]
	if !ok {
		lh = t.insert(lower)
	}
	t.entries[h].lower = lh
	return h
}

// Text returns the interned string for h.
func (t *Table) Text(h Handle) string {
	if h == NullHandle || int(h) >= len(t.entries) {
		return ""
	}
	return t.entries[h].text
}

// Lower returns the Handle of h's lowercase twin. A handle whose text is
// already all-lowercase is its own twin.
func (t *Table) Lower(h Handle) Handle {
	if h == NullHandle || int(h) >= len(t.entries) {
		return NullHandle
	}
	return t.entries[h].lower
}

// LowerText is a convenience for Text(Lower(h)).
func (t *Table) LowerText(h Handle) string {
	return t.Text(t.Lower(h))
}

// Len reports how many distinct strings are currently interned.
func (t *Table) Len() int {
	return len(t.entries)
}

// Clear releases every interned entry and the backing heap. Every Handle
// previously returned by this table becomes invalid.
func (t *Table) Clear() {
	t.entries = nil
	t.index = make(map[string]Handle)
	t.heap.Clear()
}
