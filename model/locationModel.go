package model

import (
	"fmt"
	"strings"
)

// ShelfLocation places a resource in the stacks. A zero field means the
// backend did not record that coordinate.
type ShelfLocation struct {
	Shelf  int `json:"shelf_number,omitempty"`
	Column int `json:"shelf_column,omitempty"`
	Row    int `json:"shelf_row,omitempty"`
}

// Format renders the human-readable shelf label shared by books and research
// papers: "Shelf {n}, Column {c}, Row {r}" with absent coordinates skipped.
func (l ShelfLocation) Format() string {
	var b strings.Builder
	if l.Shelf != 0 {
		fmt.Fprintf(&b, "Shelf %d", l.Shelf)
	}
	if l.Column != 0 {
		fmt.Fprintf(&b, ", Column %d", l.Column)
	}
	if l.Row != 0 {
		fmt.Fprintf(&b, ", Row %d", l.Row)
	}
	s := strings.TrimSpace(strings.TrimPrefix(b.String(), ", "))
	if s == "" {
		return "Location not specified"
	}
	return s
}
