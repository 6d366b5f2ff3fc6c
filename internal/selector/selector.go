// Package selector decides which slot indices are permitted to hold an
// engine. It is a pure function of viewport geometry: it holds no state and
// no ownership, and its output is advisory input to the slot controllers.
package selector

import (
	"github.com/nikitachicherindev/playerpool/internal/domain"
)

type candidate struct {
	distance float64
	index    int
}

// SelectActive returns the indices of the at most maxActive visible items
// whose centers are nearest to the viewport's center.
//
// Single pass over visible with a fixed-size working buffer of maxActive
// entries; no allocation scales with the visible-item count. Once the buffer
// fills, its first entry always holds the largest distance among members, so
// each remaining item needs one comparison against the current worst.
// Complexity is O(len(visible) × maxActive), effectively linear for the
// intended small constant maxActive.
//
// Tie-breaking is deterministic: replacement requires a strictly smaller
// distance, so of two equidistant items the earlier one in visible order
// (the lower index, for an in-order visible list) wins.
//
// An empty result is returned when maxActive ≤ 0 or no items are visible;
// every visible index is returned when maxActive ≥ len(visible).
func SelectActive(visible []domain.VisibleItem, vp domain.Viewport, maxActive int) []int {
	if maxActive <= 0 || len(visible) == 0 {
		return nil
	}

	center := vp.Center()
	buffer := make([]candidate, 0, maxActive)

	for _, item := range visible {
		distance := item.Center() - center
		if distance < 0 {
			distance = -distance
		}

		if len(buffer) < maxActive {
			buffer = append(buffer, candidate{distance: distance, index: item.Index})
			if len(buffer) == maxActive {
				worstToFront(buffer)
			}
			continue
		}

		if distance < buffer[0].distance {
			buffer[0] = candidate{distance: distance, index: item.Index}
			worstToFront(buffer)
		}
	}

	indices := make([]int, len(buffer))
	for i, c := range buffer {
		indices[i] = c.index
	}
	return indices
}

// worstToFront re-establishes the buffer invariant by swapping the entry with
// the largest distance into position 0. Cost is bounded by the buffer's fixed
// capacity, independent of the visible-item count.
func worstToFront(buffer []candidate) {
	worst := 0
	for i := 1; i < len(buffer); i++ {
		if buffer[i].distance > buffer[worst].distance {
			worst = i
		}
	}
	buffer[0], buffer[worst] = buffer[worst], buffer[0]
}
