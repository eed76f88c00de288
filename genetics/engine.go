// Package genetics implements the breeding engine: uniform crossover,
// generation-biased mutation, fitness-proportional parent selection, and the
// atomic Breed transaction that composes pedigree, traits, and genome math
// into one child.
package genetics

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/item"
)

// Engine owns the RNG for all breeding randomness. One engine per session;
// a seeded source replays any breeding outcome exactly.
type Engine struct {
	rng *rand.Rand
}

// New creates a breeding engine around the given random source.
func New(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Crossover performs uniform crossover: each gene independently picks one
// parent with equal probability.
func (e *Engine) Crossover(a, b genome.Genome) genome.Genome {
	var child genome.Genome
	for i := range child {
		if e.rng.Float64() < 0.5 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}

// Mutate applies per-gene independent mutation at the given rate. A mutating
// gene either fully randomizes (30%) or perturbs by a signed magnitude whose
// sign biases negative as generation rises - an explicit entropy mechanic
// that makes deep lineages decay without fresh blood. Locked gene indices
// are always skipped.
func (e *Engine) Mutate(g genome.Genome, rate float64, generation int, locked map[int]bool) genome.Genome {
	if rate <= 0 {
		return g
	}
	negBias := 0.5 + math.Min(0.3, 0.02*float64(generation))
	for i := range g {
		if locked[i] {
			continue
		}
		if e.rng.Float64() >= rate {
			continue
		}
		if e.rng.Float64() < 0.3 {
			g[i] = e.rng.Float64()
			continue
		}
		delta := e.rng.Float64() * 0.15
		if e.rng.Float64() < negBias {
			delta = -delta
		}
		g[i] = genome.Clamp(g[i] + delta)
	}
	return g
}

// SelectParent picks an item from the population with probability
// proportional to fitness, floored at 0.01 so zero-fitness items never
// starve. An empty population is a caller contract violation and panics:
// silently defaulting here would corrupt lineage.
func (e *Engine) SelectParent(population []*item.Item) *item.Item {
	if len(population) == 0 {
		panic("genetics: SelectParent on empty population")
	}
	var total float64
	for _, it := range population {
		total += math.Max(it.Fitness, 0.01)
	}
	pick := e.rng.Float64() * total
	for _, it := range population {
		pick -= math.Max(it.Fitness, 0.01)
		if pick <= 0 {
			return it
		}
	}
	return population[len(population)-1]
}
