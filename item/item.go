// Package item defines the evolvable unit records the core exchanges with
// the enclosing game: active items (weapons, captured enemies) and the
// immutable crystallized legacy records they collapse into. Everything here
// is plain, versionable data; the save layer round-trips it without
// understanding trait or disease internals.
package item

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/traits"
)

const (
	// MaxAncestors bounds the visible lineage, most recent first.
	MaxAncestors = 14
	// MaxBreeds caps how many times an item may act as a parent.
	MaxBreeds = 3
)

// Item is one evolvable unit. Lifecycle: created as a starter seed, spawned
// enemy capture, or breed output; destroyed by decomposition (resource
// yield) or crystallization (permanent legacy record).
type Item struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`

	Genome     genome.Genome `yaml:"genome"`
	Fitness    float64       `yaml:"fitness"`
	Generation int           `yaml:"generation"`

	ParentIDs []string `yaml:"parent_ids,omitempty"` // empty or exactly two
	Ancestors []string `yaml:"ancestors,omitempty"`  // capped at MaxAncestors, most recent first

	BreedCount int               `yaml:"breed_count"`
	Disease    traits.ID         `yaml:"disease,omitempty"` // at most one active
	Mastery    float64           `yaml:"mastery"`           // 0-100, monotonically non-decreasing
	Traits     []traits.Instance `yaml:"traits,omitempty"`

	// Locked exempts the item from bulk destructive operations.
	Locked bool `yaml:"locked,omitempty"`
}

// NewStarter creates the fixed first-generation seed item.
func NewStarter(id string) *Item {
	return &Item{
		ID:         id,
		Generation: 1,
		Genome: genome.Genome{
			0.5, 0.5, 0.2, 0.3, 0.5,
			0.4, 0.3, 0.3, 0.1, 0.1,
		},
	}
}

// NewCaptured wraps a defeated enemy genome as an active item.
func NewCaptured(rng *rand.Rand, g genome.Genome, generation int) *Item {
	if generation < 1 {
		generation = 1
	}
	return &Item{
		ID:         NewID(rng),
		Genome:     g.Clamped(),
		Generation: generation,
	}
}

// NewID generates a short random item identity.
func NewID(rng *rand.Rand) string {
	return fmt.Sprintf("itm-%08x", rng.Uint32())
}

// Rating returns the item's letter tier. This defers to the genome package,
// the only ranking authority.
func (it *Item) Rating() genome.Grade {
	return genome.Rating(it.Genome)
}

// CanBreed reports whether the item still has breeding uses left and meets
// the mastery floor for its generation. Resource costs stay with the caller.
func (it *Item) CanBreed() bool {
	return it.BreedCount < MaxBreeds && it.Mastery >= genome.RequiredMastery(it.Generation)
}

// AddMastery raises mastery by delta, capped at 100. Mastery never
// decreases; negative deltas are ignored.
func (it *Item) AddMastery(delta float64) {
	if delta <= 0 {
		return
	}
	it.Mastery += delta
	if it.Mastery > 100 {
		it.Mastery = 100
	}
}

// DecomposeYield is the resource currency returned for destroying the item.
// Better genomes and higher generations decompose into more.
func (it *Item) DecomposeYield() int {
	rankBonus := map[genome.Grade]float64{
		genome.GradeD: 1.0, genome.GradeC: 1.2, genome.GradeB: 1.5,
		genome.GradeA: 2.0, genome.GradeS: 3.0, genome.GradeSS: 4.0,
	}
	base := 5.0 + float64(it.Generation)*3 + it.Genome.Average()*20
	return int(base * rankBonus[it.Rating()])
}

// Crystal is the immutable record produced when an exhausted item is
// crystallized. Never mutated after creation.
type Crystal struct {
	ID       string `yaml:"id"`
	SourceID string `yaml:"source_id"`
	Name     string `yaml:"name,omitempty"`

	Genome     genome.Genome `yaml:"genome"`
	Generation int           `yaml:"generation"`
	Ancestors  []string      `yaml:"ancestors,omitempty"`

	// Legacy is a partial gene-boost vector descendants inherit when this
	// crystal's source appears in their lineage.
	Legacy [genome.Count]float64 `yaml:"legacy"`
	Yield  int                   `yaml:"yield"`
}
