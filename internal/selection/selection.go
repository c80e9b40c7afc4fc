// Package selection defines the anchor/head selection record mutated by the
// editing engine. A selection stores its endpoints ordered (Start ≤ End) with
// a Reversed flag marking which end the cursor occupies, so motions and
// operation adjusters never deal with unordered anchor/head pairs.
package selection

import (
	"sort"

	"github.com/zjrosen/plume/internal/display"
)

// Selection is one cursor's state. Start and End stay ordered after every
// mutation; Reversed is true when the head (the end the cursor moves) is
// Start. An empty selection is a plain caret and is never reversed.
type Selection struct {
	ID       int
	Start    display.Point
	End      display.Point
	Reversed bool

	// Goal is the display column the user last deliberately targeted.
	// Vertical motions aim at it so the cursor snaps back out of short
	// lines.
	Goal int
}

// New returns a caret selection at p.
func New(id int, p display.Point) *Selection {
	return &Selection{ID: id, Start: p, End: p, Goal: p.Col}
}

// IsEmpty reports whether the selection is a plain caret.
func (s *Selection) IsEmpty() bool {
	return s.Start == s.End
}

// Head returns the moving end — where the cursor sits.
func (s *Selection) Head() display.Point {
	if s.Reversed {
		return s.Start
	}
	return s.End
}

// Tail returns the anchored end.
func (s *Selection) Tail() display.Point {
	if s.Reversed {
		return s.End
	}
	return s.Start
}

// SetHead moves the head to p, re-deriving the endpoint order and the
// Reversed flag. Moving the head across the tail flips the selection.
func (s *Selection) SetHead(p display.Point, goal int) {
	if p.Before(s.Tail()) {
		if !s.Reversed {
			s.End = s.Start
			s.Reversed = true
		}
		s.Start = p
	} else {
		if s.Reversed {
			s.Start = s.End
			s.Reversed = false
		}
		s.End = p
	}
	s.Goal = goal
}

// CollapseTo reduces the selection to a caret at p.
func (s *Selection) CollapseTo(p display.Point, goal int) {
	s.Start = p
	s.End = p
	s.Reversed = false
	s.Goal = goal
}

// Range returns the selection's span as a half-open display range.
func (s *Selection) Range() display.Range {
	return display.Range{Start: s.Start, End: s.End}
}

// Clone returns an independent copy.
func (s *Selection) Clone() *Selection {
	c := *s
	return &c
}

// Sort orders selections by Start, then End.
func Sort(sels []*Selection) {
	sort.SliceStable(sels, func(i, j int) bool {
		if c := sels[i].Start.Cmp(sels[j].Start); c != 0 {
			return c < 0
		}
		return sels[i].End.Before(sels[j].End)
	})
}

// Merge sorts the batch and folds together selections that intersect: a
// later selection starting strictly inside an earlier one, or sharing its
// Start. The earlier selection keeps its identity, direction, and goal;
// its End grows to cover the merged span. Touching at an exclusive
// boundary does not merge — two carets only fold when they coincide.
func Merge(sels []*Selection) []*Selection {
	if len(sels) <= 1 {
		return sels
	}
	Sort(sels)

	out := sels[:1]
	for _, s := range sels[1:] {
		last := out[len(out)-1]
		if s.Start == last.Start || s.Start.Before(last.End) {
			if last.End.Before(s.End) {
				last.End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	return out
}
