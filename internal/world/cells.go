package world

import (
	"fmt"
	"sort"
)

// Cell is a materialized grid location.
type Cell struct {
	Coord Coord
	Value int // 0 = empty, otherwise a power of two
}

// Empty reports whether the cell holds no token.
func (c Cell) Empty() bool {
	return c.Value == 0
}

// ReentryPolicy decides what a cell looks like when it comes back into view.
type ReentryPolicy string

const (
	// ReentryKeep remembers pickups and crafts for the lifetime of the
	// registry; a revisited cell shows its mutated value.
	ReentryKeep ReentryPolicy = "keep"

	// ReentryRegenerate forgets evicted cells entirely; a revisited cell is
	// re-rolled from the generator and mutations are lost.
	ReentryRegenerate ReentryPolicy = "regenerate"
)

// ParseReentryPolicy validates a policy name. Empty means ReentryKeep.
func ParseReentryPolicy(s string) (ReentryPolicy, error) {
	switch ReentryPolicy(s) {
	case "", ReentryKeep:
		return ReentryKeep, nil
	case ReentryRegenerate:
		return ReentryRegenerate, nil
	}
	return "", fmt.Errorf("world: unknown reentry policy %q", s)
}

// CellRegistry owns every materialized cell.
type CellRegistry struct {
	gen     Generator
	policy  ReentryPolicy
	live    map[Coord]int
	mutated map[Coord]int // only used with ReentryKeep
}

// NewCellRegistry creates an empty registry backed by gen.
func NewCellRegistry(gen Generator, policy ReentryPolicy) *CellRegistry {
	if policy == "" {
		policy = ReentryKeep
	}
	return &CellRegistry{
		gen:     gen,
		policy:  policy,
		live:    make(map[Coord]int),
		mutated: make(map[Coord]int),
	}
}

// Policy returns the registry's reentry policy.
func (r *CellRegistry) Policy() ReentryPolicy {
	return r.policy
}

// GetOrCreate returns the live cell at c, materializing it first if needed.
// The second result is true when this call materialized the cell.
func (r *CellRegistry) GetOrCreate(c Coord) (Cell, bool) {
	if v, ok := r.live[c]; ok {
		return Cell{Coord: c, Value: v}, false
	}

	v, ok := r.mutated[c]
	if !ok {
		v = r.gen(c)
	}
	r.live[c] = v
	return Cell{Coord: c, Value: v}, true
}

// Get returns the live cell at c without materializing it.
func (r *CellRegistry) Get(c Coord) (Cell, bool) {
	v, ok := r.live[c]
	return Cell{Coord: c, Value: v}, ok
}

// SetValue changes the token value of a live cell.
// Returns false if the cell is not materialized.
func (r *CellRegistry) SetValue(c Coord, v int) bool {
	if _, ok := r.live[c]; !ok {
		return false
	}
	r.live[c] = v
	if r.policy == ReentryKeep {
		r.mutated[c] = v
	}
	return true
}

// Evict removes a live cell. Returns false if it was not materialized.
func (r *CellRegistry) Evict(c Coord) bool {
	if _, ok := r.live[c]; !ok {
		return false
	}
	delete(r.live, c)
	return true
}

// Len returns the number of live cells.
func (r *CellRegistry) Len() int {
	return len(r.live)
}

// Mutated returns how many cells carry a remembered mutation.
func (r *CellRegistry) Mutated() int {
	return len(r.mutated)
}

// All returns every live cell, rows north to south, columns west to east.
func (r *CellRegistry) All() []Cell {
	cells := make([]Cell, 0, len(r.live))
	for c, v := range r.live {
		cells = append(cells, Cell{Coord: c, Value: v})
	}
	sort.Slice(cells, func(a, b int) bool {
		return coordLess(cells[a].Coord, cells[b].Coord)
	})
	return cells
}

// coordLess orders coordinates the way the window is laid out on screen.
func coordLess(a, b Coord) bool {
	if a.I != b.I {
		return a.I > b.I
	}
	return a.J < b.J
}
