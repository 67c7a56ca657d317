package world

import (
	"strconv"

	"github.com/twmb/murmur3"
)

// Salts for the two independent streams derived from a coordinate.
const (
	SaltSpawn = "spawn"
	SaltValue = "value"
)

// Luck maps a key to a reproducible value in [0, 1).
//
// The world content is defined by this function plus the spawn constants, so
// the hash (32-bit murmur3, seed 0) and the key layout must never change.
func Luck(key string) float64 {
	return float64(murmur3.Sum32([]byte(key))) / (1 << 32)
}

// LuckKey builds the "i,j,salt" key for a coordinate.
func LuckKey(c Coord, salt string) string {
	buf := make([]byte, 0, 24+len(salt))
	buf = strconv.AppendInt(buf, int64(c.I), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(c.J), 10)
	buf = append(buf, ',')
	buf = append(buf, salt...)
	return string(buf)
}

// SpawnRules holds the constants of the generation pass.
type SpawnRules struct {
	Probability float64 // Chance that a cell starts with a token
	MaxExponent int     // Largest spawned token is 2^MaxExponent
}

// DefaultSpawnRules returns the stock generation constants.
func DefaultSpawnRules() SpawnRules {
	return SpawnRules{
		Probability: 0.25,
		MaxExponent: 3,
	}
}

// ValueAt returns the generated token value for a coordinate: 0 for an empty
// cell, otherwise 2^e with e in [1, MaxExponent].
func (r SpawnRules) ValueAt(c Coord) int {
	if Luck(LuckKey(c, SaltSpawn)) >= r.Probability {
		return 0
	}
	exponent := 1 + int(Luck(LuckKey(c, SaltValue))*float64(r.MaxExponent))
	return 1 << exponent
}

// Generator produces the initial token value of a cell.
type Generator func(Coord) int

// Generator returns ValueAt as a Generator.
func (r SpawnRules) Generator() Generator {
	return r.ValueAt
}

// IsToken reports whether v is a valid token value (a power of two >= 2).
func IsToken(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
