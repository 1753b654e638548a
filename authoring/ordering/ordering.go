// Package ordering assigns and repairs the 1..N order of a sibling
// collection: modules within a course, lessons within a module.
//
// Every function is pure. Inputs are never mutated and calling a function
// twice with the same input yields the same output.
package ordering

import (
	"fmt"
	"sort"
	"strings"
)

// Sibling is the ordering view of a module or lesson.
type Sibling struct {
	ID    uint
	Order int
}

// Direction of a single-step move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts "up" or "down" in any case.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Up:
		return Up, nil
	case Down:
		return Down, nil
	}
	return "", fmt.Errorf("invalid direction %q: must be up or down", s)
}

// Outcome reports what Move did.
type Outcome int

const (
	// Moved means the item swapped places with its neighbour.
	Moved Outcome = iota
	// AtBoundary means the item is already first (up) or last (down).
	AtBoundary
	// Missing means the item is not part of the collection.
	Missing
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case AtBoundary:
		return "at_boundary"
	case Missing:
		return "missing"
	}
	return "unknown"
}

// Renumber assigns order 1..N following slice position.
func Renumber(siblings []Sibling) []Sibling {
	out := make([]Sibling, len(siblings))
	for i, s := range siblings {
		out[i] = Sibling{ID: s.ID, Order: i + 1}
	}
	return out
}

// Sort returns a copy ordered by the explicit order field. Ties keep their
// relative slice position.
func Sort(siblings []Sibling) []Sibling {
	out := append([]Sibling(nil), siblings...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Normalize sorts by order and then renumbers, repairing gaps and duplicates.
func Normalize(siblings []Sibling) []Sibling {
	return Renumber(Sort(siblings))
}

// NextOrder is one greater than the highest order present.
func NextOrder(siblings []Sibling) int {
	max := 0
	for _, s := range siblings {
		if s.Order > max {
			max = s.Order
		}
	}
	return max + 1
}

// IndexOf returns the slice position of id, or -1.
func IndexOf(siblings []Sibling, id uint) int {
	for i, s := range siblings {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Move swaps id with its immediate neighbour in the given direction and
// renumbers. Moving the first item up or the last item down returns the
// renumbered input and AtBoundary.
func Move(siblings []Sibling, id uint, dir Direction) ([]Sibling, Outcome) {
	out := Renumber(siblings)
	idx := IndexOf(out, id)
	if idx < 0 {
		return out, Missing
	}

	target := idx - 1
	if dir == Down {
		target = idx + 1
	}
	if target < 0 || target >= len(out) {
		return out, AtBoundary
	}

	out[idx], out[target] = out[target], out[idx]
	return Renumber(out), Moved
}

// Insert adds item to the collection. An item with Order <= 0 is appended
// with order N+1; an explicit order inserts at that position (clamped to
// 1..N+1) and the rest shift down.
func Insert(siblings []Sibling, item Sibling) []Sibling {
	base := Renumber(siblings)
	if item.Order <= 0 || item.Order > len(base) {
		return append(base, Sibling{ID: item.ID, Order: len(base) + 1})
	}

	pos := item.Order - 1
	out := make([]Sibling, 0, len(base)+1)
	out = append(out, base[:pos]...)
	out = append(out, item)
	out = append(out, base[pos:]...)
	return Renumber(out)
}

// Remove drops id and renumbers the rest. Removing an absent id only
// renumbers.
func Remove(siblings []Sibling, id uint) []Sibling {
	out := make([]Sibling, 0, len(siblings))
	for _, s := range siblings {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return Renumber(out)
}

// Contiguous reports whether the orders are exactly {1..N} with no
// duplicates, in any slice order.
func Contiguous(siblings []Sibling) bool {
	seen := make([]bool, len(siblings)+1)
	for _, s := range siblings {
		if s.Order < 1 || s.Order > len(siblings) || seen[s.Order] {
			return false
		}
		seen[s.Order] = true
	}
	return true
}
