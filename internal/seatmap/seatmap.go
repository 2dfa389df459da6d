// Package seatmap builds the deterministic cabin grid shown on the
// flights page and tracks the per-flight seat selection.
package seatmap

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// SeatsPerRow is the cabin width; each row splits into a window
	// group and an aisle group of three.
	SeatsPerRow = 6
	groupSize   = 3

	// MaxDisplaySeats caps the rendered grid regardless of the
	// flight's real capacity.
	MaxDisplaySeats = 48
)

// SeatID formats the 1-based seat identifier used across the app and
// the backend ("seat-1", "seat-2", ...).
func SeatID(n int) string {
	return fmt.Sprintf("seat-%d", n)
}

// Seat is one cell of the grid.
type Seat struct {
	ID       string
	Number   int
	Reserved bool
	Selected bool
}

// Row is one cabin row: window group, aisle corridor, aisle group.
type Row struct {
	Window []Seat
	Aisle  []Seat
}

// Grid is the rendered seat layout for one flight.
type Grid struct {
	Rows       []Row
	Displayed  int
	Selectable int
	Reserved   int
}

// Build lays out the grid for a flight with totalSeats, marking the
// reserved set as disabled and the selected set as active. A seat in
// both sets stays reserved; the backend's seat map wins.
func Build(totalSeats int, reserved map[string]bool, selected []string) Grid {
	displayed := totalSeats
	if displayed > MaxDisplaySeats {
		displayed = MaxDisplaySeats
	}
	if displayed < 0 {
		displayed = 0
	}

	selectedSet := make(map[string]bool, len(selected))
	for _, id := range selected {
		selectedSet[id] = true
	}

	grid := Grid{}
	for n := 1; n <= displayed; {
		row := Row{}
		for col := 0; col < SeatsPerRow && n <= displayed; col++ {
			id := SeatID(n)
			seat := Seat{
				ID:       id,
				Number:   n,
				Reserved: reserved[id],
				Selected: !reserved[id] && selectedSet[id],
			}
			if col < groupSize {
				row.Window = append(row.Window, seat)
			} else {
				row.Aisle = append(row.Aisle, seat)
			}
			if seat.Reserved {
				grid.Reserved++
			} else {
				grid.Selectable++
			}
			n++
		}
		grid.Rows = append(grid.Rows, row)
	}
	grid.Displayed = displayed
	return grid
}

// Selection is an ordered seat set for one flight. Toggling an
// already-selected seat removes it.
type Selection struct {
	order   []string
	members map[string]bool
}

func NewSelection() *Selection {
	return &Selection{members: make(map[string]bool)}
}

// Toggle flips membership of a seat.
func (s *Selection) Toggle(id string) {
	if s.members[id] {
		delete(s.members, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.members[id] = true
	s.order = append(s.order, id)
}

// Seats returns the selected seats in selection order.
func (s *Selection) Seats() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Selection) Len() int { return len(s.order) }

// Clear empties the selection. Done after every reservation attempt,
// successful or not, so the same seats cannot be double-submitted.
func (s *Selection) Clear() {
	s.order = nil
	s.members = make(map[string]bool)
}

// ParseSelection validates seat IDs submitted from the seat-map form
// against the flight's state: unknown, out-of-range and reserved seats
// are rejected, duplicates collapse.
func ParseSelection(ids []string, totalSeats int, reserved map[string]bool) ([]string, error) {
	displayed := totalSeats
	if displayed > MaxDisplaySeats {
		displayed = MaxDisplaySeats
	}

	sel := NewSelection()
	for _, id := range ids {
		numStr, ok := strings.CutPrefix(id, "seat-")
		if !ok {
			return nil, fmt.Errorf("invalid seat %q", id)
		}
		n, err := strconv.Atoi(numStr)
		if err != nil || n < 1 || n > displayed {
			return nil, fmt.Errorf("invalid seat %q", id)
		}
		if reserved[id] {
			return nil, fmt.Errorf("seat %q is already reserved", id)
		}
		if !sel.members[id] {
			sel.Toggle(id)
		}
	}
	return sel.Seats(), nil
}
