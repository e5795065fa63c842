// Package model defines the todo record and the pure list transitions.
//
// Every transition takes the current list and returns a fresh one; the
// input slice is never mutated. Entries keep their insertion order.
package model

import (
	"strings"

	"github.com/google/uuid"
)

// Todo is the domain model for a single task.
type Todo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// IDFunc generates opaque unique ids for new todos.
type IDFunc func() string

// NewID returns a random UUID v4 string, the default id generator.
func NewID() string {
	return uuid.New().String()
}

// ValidTitle reports whether a title is acceptable: non-empty after
// trimming surrounding whitespace. Callers validate before Add or Rename.
func ValidTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}

// Add returns a new list with a fresh todo appended at the end. The
// title is stored trimmed, the id comes from genID, and the entry starts
// uncompleted. Add never fails; empty titles are the caller's problem.
func Add(list []Todo, title string, genID IDFunc) []Todo {
	if genID == nil {
		genID = NewID
	}
	out := make([]Todo, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, Todo{
		ID:    genID(),
		Title: strings.TrimSpace(title),
	})
	return out
}

// Remove returns a new list without the entry matching id. An absent id
// yields an equivalent copy of the input.
func Remove(list []Todo, id string) []Todo {
	out := make([]Todo, 0, len(list))
	for _, t := range list {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Toggle returns a new list with the matching entry's Completed flag
// flipped. All other entries, and the order, are untouched.
func Toggle(list []Todo, id string) []Todo {
	out := make([]Todo, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
		}
	}
	return out
}

// Rename returns a new list with the matching entry's title replaced by
// the trimmed newTitle. Id and completion state are preserved.
func Rename(list []Todo, id, newTitle string) []Todo {
	out := make([]Todo, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].Title = strings.TrimSpace(newTitle)
		}
	}
	return out
}

// Stats counts completed and pending entries.
func Stats(list []Todo) (done, pending int) {
	for _, t := range list {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
