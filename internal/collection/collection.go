// Package collection implements the ordered sub-collection operations shared by
// likes, comments, experience and education entries. Sequences are kept most
// recent first: new entries always go to index 0.
package collection

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("collection: entry not found")

// NewID returns a fresh identifier for an independently addressable entry.
func NewID() string {
	return uuid.NewString()
}

// Prepend inserts item at the front and returns the new sequence.
func Prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// IndexOf returns the index of the first entry matching, or -1.
func IndexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

func Contains[T any](items []T, match func(T) bool) bool {
	return IndexOf(items, match) >= 0
}

// RemoveAt removes the entry at i, preserving the order of the rest.
// The input slice is not modified.
func RemoveAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// RemoveFunc locates the first matching entry and removes exactly that entry.
func RemoveFunc[T any](items []T, match func(T) bool) ([]T, error) {
	i := IndexOf(items, match)
	if i < 0 {
		return items, ErrNotFound
	}
	return RemoveAt(items, i), nil
}
