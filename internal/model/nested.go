package model

import "slices"

type entry interface {
	EntryID() string
}

// prepend returns a new slice with e at the head; items is left untouched.
func prepend[T any](items []T, e T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, e)
	return append(out, items...)
}

// removeByID drops the first entry with the id. When no entry matches the
// original slice is returned unchanged.
func removeByID[T entry](items []T, id string) ([]T, bool) {
	idx := slices.IndexFunc(items, func(e T) bool { return e.EntryID() == id })
	if idx < 0 {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...), true
}
