package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/plume/internal/display"
)

func TestNew_IsCaret(t *testing.T) {
	s := New(1, display.Point{Row: 2, Col: 5})

	require.True(t, s.IsEmpty())
	require.False(t, s.Reversed)
	require.Equal(t, display.Point{Row: 2, Col: 5}, s.Head())
	require.Equal(t, display.Point{Row: 2, Col: 5}, s.Tail())
	require.Equal(t, 5, s.Goal)
}

func TestSetHead_ExtendsForward(t *testing.T) {
	s := New(1, display.Point{Row: 0, Col: 4})

	s.SetHead(display.Point{Row: 0, Col: 7}, 7)

	require.False(t, s.Reversed)
	require.Equal(t, display.Point{Row: 0, Col: 4}, s.Start)
	require.Equal(t, display.Point{Row: 0, Col: 7}, s.End)
	require.Equal(t, display.Point{Row: 0, Col: 7}, s.Head())
	require.Equal(t, display.Point{Row: 0, Col: 4}, s.Tail())
}

func TestSetHead_ExtendsBackward(t *testing.T) {
	s := New(1, display.Point{Row: 0, Col: 4})

	s.SetHead(display.Point{Row: 0, Col: 1}, 1)

	require.True(t, s.Reversed)
	require.Equal(t, display.Point{Row: 0, Col: 1}, s.Start)
	require.Equal(t, display.Point{Row: 0, Col: 4}, s.End)
	require.Equal(t, display.Point{Row: 0, Col: 1}, s.Head())
	require.Equal(t, display.Point{Row: 0, Col: 4}, s.Tail())
}

func TestSetHead_FlipAcrossTail(t *testing.T) {
	s := New(1, display.Point{Row: 0, Col: 4})
	s.SetHead(display.Point{Row: 0, Col: 7}, 7)

	// Head crosses back over the anchor.
	s.SetHead(display.Point{Row: 0, Col: 2}, 2)

	require.True(t, s.Reversed)
	require.Equal(t, display.Point{Row: 0, Col: 2}, s.Start)
	require.Equal(t, display.Point{Row: 0, Col: 4}, s.End)
}

func TestSetHead_OntoTailCollapses(t *testing.T) {
	s := New(1, display.Point{Row: 0, Col: 4})
	s.SetHead(display.Point{Row: 0, Col: 7}, 7)

	s.SetHead(display.Point{Row: 0, Col: 4}, 4)

	require.True(t, s.IsEmpty())
	require.False(t, s.Reversed)
}

func TestCollapseTo(t *testing.T) {
	s := New(1, display.Point{Row: 0, Col: 4})
	s.SetHead(display.Point{Row: 2, Col: 1}, 1)

	s.CollapseTo(display.Point{Row: 1, Col: 3}, 9)

	require.True(t, s.IsEmpty())
	require.False(t, s.Reversed)
	require.Equal(t, display.Point{Row: 1, Col: 3}, s.Head())
	require.Equal(t, 9, s.Goal)
}

func TestSort_OrdersByStartThenEnd(t *testing.T) {
	a := &Selection{ID: 1, Start: display.Point{Row: 1, Col: 0}, End: display.Point{Row: 1, Col: 4}}
	b := &Selection{ID: 2, Start: display.Point{Row: 0, Col: 2}, End: display.Point{Row: 0, Col: 3}}
	c := &Selection{ID: 3, Start: display.Point{Row: 0, Col: 2}, End: display.Point{Row: 0, Col: 2}}

	sels := []*Selection{a, b, c}
	Sort(sels)

	require.Equal(t, []int{3, 2, 1}, []int{sels[0].ID, sels[1].ID, sels[2].ID})
}

func TestMerge_FoldsOverlapping(t *testing.T) {
	a := &Selection{ID: 1, Start: display.Point{Row: 0, Col: 2}, End: display.Point{Row: 0, Col: 8}}
	b := &Selection{ID: 2, Start: display.Point{Row: 0, Col: 5}, End: display.Point{Row: 0, Col: 11}}

	out := Merge([]*Selection{a, b})

	require.Len(t, out, 1)
	require.Equal(t, 1, out[0].ID)
	require.Equal(t, display.Point{Row: 0, Col: 2}, out[0].Start)
	require.Equal(t, display.Point{Row: 0, Col: 11}, out[0].End)
}

func TestMerge_CoincidingCaretsFold(t *testing.T) {
	a := New(1, display.Point{Row: 1, Col: 3})
	b := New(2, display.Point{Row: 1, Col: 3})

	out := Merge([]*Selection{a, b})

	require.Len(t, out, 1)
	require.Equal(t, 1, out[0].ID)
}

func TestMerge_TouchingRangesStaySeparate(t *testing.T) {
	a := &Selection{ID: 1, Start: display.Point{Row: 0, Col: 2}, End: display.Point{Row: 0, Col: 5}}
	b := &Selection{ID: 2, Start: display.Point{Row: 0, Col: 5}, End: display.Point{Row: 0, Col: 9}}

	out := Merge([]*Selection{a, b})

	require.Len(t, out, 2)
}

func TestSetHead_OrderingInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		point := func(label string) display.Point {
			return display.Point{
				Row: rapid.IntRange(0, 5).Draw(t, label+"Row"),
				Col: rapid.IntRange(0, 20).Draw(t, label+"Col"),
			}
		}

		s := New(1, point("origin"))
		for i := 0; i < rapid.IntRange(1, 8).Draw(t, "moves"); i++ {
			p := point("head")
			s.SetHead(p, p.Col)

			require.False(t, s.End.Before(s.Start), "start must not exceed end")
			require.Equal(t, p, s.Head())
			if s.IsEmpty() {
				require.False(t, s.Reversed, "caret must not be reversed")
			} else {
				require.Equal(t, s.Reversed, s.Head() == s.Start)
			}
		}
	})
}
