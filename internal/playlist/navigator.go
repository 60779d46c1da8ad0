package playlist

import (
	"math/rand"
	"time"
)

// NoPosition marks that nothing is selected
const NoPosition = -1

// Navigator tracks playback position over an optionally shuffled ordering.
//
// Items are addressed by their index in API order. The shuffled ordering is
// a permutation of those indices; positions are always expressed in the
// active ordering. Shuffle and Unshuffle keep the current item selected by
// re-locating its index in the new ordering.
type Navigator struct {
	n     int   // number of items
	order []int // shuffled ordering, nil when original order is active
	pos   int   // position in the active ordering, NoPosition if none
	rng   *rand.Rand
}

// NewNavigator creates an empty navigator. A nil rng seeds from the clock.
func NewNavigator(rng *rand.Rand) *Navigator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Navigator{pos: NoPosition, rng: rng}
}

// Len returns the number of items in the active ordering
func (n *Navigator) Len() int { return n.n }

// IsShuffled reports whether the shuffled ordering is active
func (n *Navigator) IsShuffled() bool { return n.order != nil }

// CurrentPosition returns the current position in the active ordering or NoPosition
func (n *Navigator) CurrentPosition() int { return n.pos }

// HasCurrent reports whether an item is selected
func (n *Navigator) HasCurrent() bool { return n.pos != NoPosition }

// IndexAt maps a position in the active ordering to an item index
func (n *Navigator) IndexAt(pos int) int {
	if pos < 0 || pos >= n.n {
		return NoPosition
	}
	if n.order != nil {
		return n.order[pos]
	}
	return pos
}

// CurrentIndex returns the item index of the current item or NoPosition
func (n *Navigator) CurrentIndex() int {
	return n.IndexAt(n.pos)
}

// Order returns the item indices in active order
func (n *Navigator) Order() []int {
	out := make([]int, n.n)
	for i := range out {
		out[i] = n.IndexAt(i)
	}
	return out
}

// Append grows the item count as new pages arrive.
// While shuffled, the new indices join the end of the shuffled ordering.
func (n *Navigator) Append(count int) {
	if count <= 0 {
		return
	}
	if n.order != nil {
		for i := n.n; i < n.n+count; i++ {
			n.order = append(n.order, i)
		}
	}
	n.n += count
}

// Reset drops all items and the selection
func (n *Navigator) Reset() {
	n.n = 0
	n.order = nil
	n.pos = NoPosition
}

// Select makes pos the current position. Out of range positions are ignored.
func (n *Navigator) Select(pos int) bool {
	if pos < 0 || pos >= n.n {
		return false
	}
	n.pos = pos
	return true
}

// Next moves to the following position; no-op at the end or without a selection
func (n *Navigator) Next() bool {
	if n.pos == NoPosition || n.pos >= n.n-1 {
		return false
	}
	n.pos++
	return true
}

// Prev moves to the preceding position; no-op at the start or without a selection
func (n *Navigator) Prev() bool {
	if n.pos == NoPosition || n.pos <= 0 {
		return false
	}
	n.pos--
	return true
}

// Shuffle builds a new uniform permutation of all items (Fisher-Yates)
// and makes it the active ordering.
func (n *Navigator) Shuffle() {
	current := n.CurrentIndex()

	order := make([]int, n.n)
	for i := range order {
		order[i] = i
	}
	for i := len(order) - 1; i > 0; i-- {
		j := n.rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	n.order = order

	n.relocate(current)
}

// Unshuffle reverts to the original ordering
func (n *Navigator) Unshuffle() {
	if n.order == nil {
		return
	}
	current := n.CurrentIndex()
	n.order = nil
	n.relocate(current)
}

// PlayRandom selects a uniformly random position and returns it
func (n *Navigator) PlayRandom() (int, bool) {
	if n.n == 0 {
		return NoPosition, false
	}
	n.pos = n.rng.Intn(n.n)
	return n.pos, true
}

// relocate points pos at the given item index in the active ordering
func (n *Navigator) relocate(index int) {
	if index == NoPosition {
		n.pos = NoPosition
		return
	}
	if n.order == nil {
		n.pos = index
		return
	}
	for pos, idx := range n.order {
		if idx == index {
			n.pos = pos
			return
		}
	}
	n.pos = NoPosition
}
