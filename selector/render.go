// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package selector

import "math"

// Item is the presentation of one option. Scale and opacity fall off with
// distance from the selected row and never feed back into selection.
type Item[T comparable] struct {
	Value    T
	Selected bool
	Scale    float64
	Opacity  float64
}

// Items returns every option with its presentation attributes
func (s *Selector[T]) Items() []Item[T] {
	items := make([]Item[T], len(s.options))
	for i, o := range s.options {
		d := float64(abs(i - s.selected))
		item := Item[T]{
			Value:   o,
			Scale:   math.Max(0.6, 1-d*0.15),
			Opacity: math.Max(0.3, 1-d*0.25),
		}
		if i == s.selected {
			item.Selected = true
			item.Scale = 1.1
			item.Opacity = 1
		}
		items[i] = item
	}
	return items
}

// ContainerHeight is the pixel height of the visible window
func (s *Selector[T]) ContainerHeight() float64 {
	return s.layout.itemHeight * float64(s.layout.visibleItems)
}

// TranslateY is the vertical shift that centers the current offset in the
// container.
func (s *Selector[T]) TranslateY() float64 {
	return s.ContainerHeight()/2 - s.layout.itemHeight/2 + s.offset
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
