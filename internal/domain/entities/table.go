package entities

import (
	"maps"
	"slices"
)

// RawTable is one decoded, not yet validated namespace table as produced by
// a loader.
type RawTable struct {
	Namespace string
	Entries   map[string]any
}

// Table is an immutable flat key -> string mapping for one namespace.
type Table struct {
	entries map[string]string
}

// NewTable copies entries into a Table.
func NewTable(entries map[string]string) Table {
	return Table{entries: maps.Clone(entries)}
}

// Get returns the value stored for key.
func (t Table) Get(key string) (string, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Len returns the number of keys.
func (t Table) Len() int { return len(t.entries) }

// Keys returns the keys in sorted order.
func (t Table) Keys() []string {
	return slices.Sorted(maps.Keys(t.entries))
}

// Map returns a copy of the table contents. Callers may modify the result.
func (t Table) Map() map[string]string {
	out := make(map[string]string, len(t.entries))
	maps.Copy(out, t.entries)
	return out
}
