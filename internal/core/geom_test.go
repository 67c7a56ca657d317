package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"inside", Point{15, 15}, true},
		{"top-left corner", Point{10, 10}, true},
		{"bottom-right edge (exclusive)", Point{30, 25}, false},
		{"outside left", Point{5, 15}, false},
		{"outside right", Point{35, 15}, false},
		{"outside top", Point{15, 5}, false},
		{"outside bottom", Point{15, 30}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{-3, -3, 3, -3},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestTokenColor(t *testing.T) {
	if TokenColor(0) != ColorGray {
		t.Error("empty cells should be gray")
	}
	if TokenColor(2) == TokenColor(32) {
		t.Error("small and large tokens should differ in color")
	}
}

func TestInputFrame(t *testing.T) {
	f := ActionFrame(ActionInteract)
	if !f.Has(ActionInteract) || f.Has(ActionNorth) {
		t.Errorf("ActionFrame() = %+v", f)
	}

	c := ClickFrame(3, 4)
	if len(c.Clicks) != 1 || c.Clicks[0] != (Point{3, 4}) {
		t.Errorf("ClickFrame() clicks = %v", c.Clicks)
	}

	var zero InputFrame
	if zero.Has(ActionQuit) {
		t.Error("zero frame should have no actions")
	}
}
