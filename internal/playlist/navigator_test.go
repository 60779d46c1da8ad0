package playlist

import (
	"math/rand"
	"sort"
	"testing"
)

func newNav(n int, seed int64) *Navigator {
	nav := NewNavigator(rand.New(rand.NewSource(seed)))
	nav.Append(n)
	return nav
}

func TestNavigator_NextPrevBounds(t *testing.T) {
	nav := newNav(3, 1)

	if nav.Next() || nav.Prev() {
		t.Error("Next/Prev moved without a selection")
	}
	if nav.CurrentPosition() != NoPosition {
		t.Errorf("CurrentPosition() = %d, want NoPosition", nav.CurrentPosition())
	}

	nav.Select(0)
	if nav.Prev() {
		t.Error("Prev() at start returned true")
	}
	if nav.CurrentPosition() != 0 {
		t.Errorf("CurrentPosition() = %d, want 0", nav.CurrentPosition())
	}

	for i := 0; i < 10; i++ {
		nav.Next()
		if p := nav.CurrentPosition(); p < 0 || p > 2 {
			t.Fatalf("position %d out of bounds", p)
		}
	}
	if nav.CurrentPosition() != 2 {
		t.Errorf("CurrentPosition() = %d, want 2", nav.CurrentPosition())
	}

	for i := 0; i < 10; i++ {
		nav.Prev()
		if p := nav.CurrentPosition(); p < 0 || p > 2 {
			t.Fatalf("position %d out of bounds", p)
		}
	}
	if nav.CurrentPosition() != 0 {
		t.Errorf("CurrentPosition() = %d, want 0", nav.CurrentPosition())
	}
}

func TestNavigator_SelectOutOfRange(t *testing.T) {
	nav := newNav(2, 1)

	for _, pos := range []int{-1, 2, 100} {
		if nav.Select(pos) {
			t.Errorf("Select(%d) = true", pos)
		}
	}
	if nav.HasCurrent() {
		t.Error("HasCurrent() = true after invalid selects")
	}
}

func TestNavigator_ShuffleIsPermutation(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10, 60} {
		nav := newNav(n, int64(n))
		nav.Shuffle()

		order := nav.Order()
		if len(order) != n {
			t.Fatalf("n=%d: len(order) = %d", n, len(order))
		}
		sorted := append([]int(nil), order...)
		sort.Ints(sorted)
		for i, v := range sorted {
			if v != i {
				t.Fatalf("n=%d: order %v is not a permutation", n, order)
			}
		}
		if !nav.IsShuffled() {
			t.Errorf("n=%d: IsShuffled() = false", n)
		}
	}
}

func TestNavigator_ShuffleChangesOrder(t *testing.T) {
	nav := newNav(60, 42)
	nav.Shuffle()

	identity := true
	for i, idx := range nav.Order() {
		if idx != i {
			identity = false
			break
		}
	}
	if identity {
		t.Error("shuffle of 60 items left identity order")
	}
}

func TestNavigator_ShufflePreservesCurrentItem(t *testing.T) {
	nav := newNav(20, 7)
	nav.Select(5)

	nav.Shuffle()
	if nav.CurrentIndex() != 5 {
		t.Errorf("after Shuffle CurrentIndex() = %d, want 5", nav.CurrentIndex())
	}
	if nav.IndexAt(nav.CurrentPosition()) != 5 {
		t.Error("position does not point at item 5")
	}

	nav.Shuffle()
	if nav.CurrentIndex() != 5 {
		t.Errorf("after second Shuffle CurrentIndex() = %d, want 5", nav.CurrentIndex())
	}

	nav.Unshuffle()
	if nav.CurrentPosition() != 5 || nav.IsShuffled() {
		t.Errorf("after Unshuffle position = %d, shuffled = %v", nav.CurrentPosition(), nav.IsShuffled())
	}
}

func TestNavigator_ShuffleWithoutSelection(t *testing.T) {
	nav := newNav(5, 3)
	nav.Shuffle()
	if nav.HasCurrent() {
		t.Error("Shuffle selected an item")
	}
	nav.Unshuffle()
	if nav.HasCurrent() {
		t.Error("Unshuffle selected an item")
	}
}

func TestNavigator_AppendWhileShuffled(t *testing.T) {
	nav := newNav(50, 9)
	nav.Shuffle()
	nav.Append(10)

	order := nav.Order()
	if len(order) != 60 {
		t.Fatalf("len(order) = %d, want 60", len(order))
	}
	seen := make(map[int]bool)
	for _, idx := range order {
		if idx < 0 || idx >= 60 || seen[idx] {
			t.Fatalf("order %v is not a permutation", order)
		}
		seen[idx] = true
	}
	for i := 50; i < 60; i++ {
		if order[i] != i {
			t.Errorf("order[%d] = %d, want appended index", i, order[i])
		}
	}
}

func TestNavigator_PlayRandom(t *testing.T) {
	empty := newNav(0, 1)
	if _, ok := empty.PlayRandom(); ok {
		t.Error("PlayRandom() on empty navigator returned ok")
	}

	nav := newNav(10, 11)
	hits := make(map[int]bool)
	for i := 0; i < 200; i++ {
		pos, ok := nav.PlayRandom()
		if !ok || pos < 0 || pos >= 10 {
			t.Fatalf("PlayRandom() = %d, %v", pos, ok)
		}
		if nav.CurrentPosition() != pos {
			t.Fatalf("CurrentPosition() = %d, want %d", nav.CurrentPosition(), pos)
		}
		hits[pos] = true
	}
	if len(hits) != 10 {
		t.Errorf("PlayRandom hit %d of 10 positions in 200 draws", len(hits))
	}
}

func TestNavigator_Reset(t *testing.T) {
	nav := newNav(4, 1)
	nav.Shuffle()
	nav.Select(2)
	nav.Reset()

	if nav.Len() != 0 || nav.IsShuffled() || nav.HasCurrent() {
		t.Errorf("Reset left state: len=%d shuffled=%v current=%v", nav.Len(), nav.IsShuffled(), nav.HasCurrent())
	}
}
