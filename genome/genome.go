// Package genome defines the fixed-length gene vector that fully determines
// a combatant's derived stats, plus the shared numeric primitives that
// operate on it (clamping, soft cap, costs, mastery curves).
package genome

import (
	"fmt"
	"math"
	"math/rand"
)

// Count is the fixed genome length. Every genome in the system has exactly
// this many genes; shorter or longer vectors are a caller contract violation.
const Count = 10

// Gene indices. Each position has fixed semantic meaning.
const (
	GeneAttack     = iota // power-law attack scaling
	GeneSpeed             // higher = faster actions
	GeneElement           // threshold-selected element
	GeneSpecial           // threshold-selected special ability
	GeneMaxHP             // maximum hit points
	GeneAggression        // AI weight: attack preference
	GeneDefense           // AI weight: defend preference, also defense stat
	GeneTactics           // AI weight: skill preference, also crit scaling
	GeneFireResist        // stored fire resistance
	GeneIceResist         // stored ice resistance
)

// Genome is an ordered vector of Count genes, each in [0,1].
// Lightning resistance is derived, never stored: raising fire and ice
// resistance suppresses it (a zero-sum tradeoff).
type Genome [Count]float64

// Clamp clamps a single gene value to [0,1].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamped returns a copy of the genome with every gene clamped to [0,1].
func (g Genome) Clamped() Genome {
	for i := range g {
		g[i] = Clamp(g[i])
	}
	return g
}

// Sum returns the total of all genes.
func (g Genome) Sum() float64 {
	var sum float64
	for _, v := range g {
		sum += v
	}
	return sum
}

// Average returns the mean gene value.
func (g Genome) Average() float64 {
	return g.Sum() / Count
}

// LightningResist derives the lightning resistance from the two stored
// resistance genes.
func (g Genome) LightningResist() float64 {
	return math.Max(0, 1-(g[GeneFireResist]+g[GeneIceResist])*0.6)
}

// Slice copies the genome into a plain float slice for the save layer.
func (g Genome) Slice() []float64 {
	out := make([]float64, Count)
	copy(out, g[:])
	return out
}

// FromSlice validates and converts a stored gene slice. The length must be
// exactly Count; values are clamped so repaired or defaulted save data is
// always usable.
func FromSlice(vals []float64) (Genome, error) {
	var g Genome
	if len(vals) != Count {
		return g, fmt.Errorf("genome: expected %d genes, got %d", Count, len(vals))
	}
	copy(g[:], vals)
	return g.Clamped(), nil
}

// New generates a uniformly random genome.
func New(rng *rand.Rand) Genome {
	var g Genome
	for i := range g {
		g[i] = rng.Float64()
	}
	return g
}
