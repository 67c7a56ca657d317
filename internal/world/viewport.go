package world

// WindowFor returns every coordinate within Chebyshev distance radius of
// center: a square of side 2*radius+1, rows north to south, columns west to
// east. A negative radius yields an empty window.
func WindowFor(center Coord, radius int) []Coord {
	if radius < 0 {
		return nil
	}
	side := 2*radius + 1
	coords := make([]Coord, 0, side*side)
	for i := center.I + radius; i >= center.I-radius; i-- {
		for j := center.J - radius; j <= center.J+radius; j++ {
			coords = append(coords, Coord{I: i, J: j})
		}
	}
	return coords
}

// Viewport keeps the registry in sync with the square window around a center.
type Viewport struct {
	cells  *CellRegistry
	radius int
	center Coord
	window map[Coord]struct{}
}

// NewViewport creates a viewport with an empty window.
func NewViewport(cells *CellRegistry, radius int) *Viewport {
	return &Viewport{
		cells:  cells,
		radius: radius,
		window: make(map[Coord]struct{}),
	}
}

// Contains reports whether c is inside the current window.
func (v *Viewport) Contains(c Coord) bool {
	_, ok := v.window[c]
	return ok
}

// Recenter recomputes the window around center and diffs it against the
// previous one: cells that left are evicted, cells that entered are
// materialized. Evictions complete before any materialization.
func (v *Viewport) Recenter(center Coord) (evicted []Coord, materialized []Cell) {
	next := WindowFor(center, v.radius)
	nextSet := make(map[Coord]struct{}, len(next))
	for _, c := range next {
		nextSet[c] = struct{}{}
	}

	// Walk the previous window in layout order so events are stable.
	for _, c := range WindowFor(v.center, v.radius) {
		if _, inOld := v.window[c]; !inOld {
			continue
		}
		if _, keep := nextSet[c]; keep {
			continue
		}
		if v.cells.Evict(c) {
			evicted = append(evicted, c)
		}
	}

	for _, c := range next {
		if _, inOld := v.window[c]; inOld {
			continue
		}
		if cell, created := v.cells.GetOrCreate(c); created {
			materialized = append(materialized, cell)
		}
	}

	v.center = center
	v.window = nextSet
	return evicted, materialized
}
