// Package world implements the grid/session core of the token game:
// deterministic cell generation, the held-token state machine, interaction
// range gating and the windowed cell lifecycle.
//
// The package has no UI dependencies. Commands go in through Session and
// outcomes come back as a slice of Event values for the presentation layer.
package world

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord is a cell address on the infinite grid.
// I grows northward, J grows eastward.
type Coord struct {
	I int
	J int
}

// C is a convenience constructor for Coord.
func C(i, j int) Coord {
	return Coord{I: i, J: j}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.I, c.J)
}

// Add returns a new Coord offset by (di, dj).
func (c Coord) Add(di, dj int) Coord {
	return Coord{I: c.I + di, J: c.J + dj}
}

// Step returns the neighbouring Coord in the given direction.
func (c Coord) Step(d Direction) Coord {
	di, dj := d.Delta()
	return c.Add(di, dj)
}

// Chebyshev returns the chessboard distance to another coordinate.
func (c Coord) Chebyshev(other Coord) int {
	di := abs(c.I - other.I)
	dj := abs(c.J - other.J)
	if di > dj {
		return di
	}
	return dj
}

// ParseCoord parses "i,j" (spaces allowed around the numbers).
func ParseCoord(s string) (Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coord{}, fmt.Errorf("world: coordinate %q must look like i,j", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coord{}, fmt.Errorf("world: bad row in %q: %w", s, err)
	}
	j, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coord{}, fmt.Errorf("world: bad column in %q: %w", s, err)
	}
	return C(i, j), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is one of the four move commands.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Delta returns the (di, dj) offset for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 1, 0
	case South:
		return -1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}
