package pedigree

import (
	"fmt"

	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/item"
)

// Legacy extraction: genes above a mastery-dependent threshold contribute a
// fraction of their value to descendants.
const (
	legacyBaseThreshold = 0.80
	legacyMasteryRelief = 0.20 // full mastery lowers the threshold by this much
	legacyFraction      = 0.25
)

// Crystallize converts an exhausted item into its permanent legacy record.
// The active item is gone after this; the crystal is never mutated again.
// Fully deterministic: the same item always yields the same crystal.
func Crystallize(it *item.Item) item.Crystal {
	ancestors := make([]string, len(it.Ancestors))
	copy(ancestors, it.Ancestors)

	c := item.Crystal{
		ID:         fmt.Sprintf("cry-%s", it.ID),
		SourceID:   it.ID,
		Name:       it.Name,
		Genome:     it.Genome,
		Generation: it.Generation,
		Ancestors:  ancestors,
		Yield:      crystalYield(it),
	}

	threshold := legacyBaseThreshold - it.Mastery/100*legacyMasteryRelief
	for i, v := range it.Genome {
		if v > threshold {
			c.Legacy[i] = v * legacyFraction
		}
	}
	return c
}

// crystalYield computes the one-time resource return: generation, average
// gene quality, mastery, and breeding use all contribute.
func crystalYield(it *item.Item) int {
	yield := float64(it.Generation)*10 +
		it.Genome.Average()*50 +
		it.Mastery*0.5 +
		float64(it.BreedCount)*5
	return int(yield)
}

// ApplyLegacy adds the legacy gene vectors of any crystallized ancestors in
// the child's lineage, clamped per gene. Crystals whose source is not in the
// lineage are ignored.
func ApplyLegacy(child genome.Genome, ancestors []string, crystals []item.Crystal) genome.Genome {
	if len(crystals) == 0 {
		return child
	}
	inLineage := make(map[string]bool, len(ancestors))
	for _, id := range ancestors {
		inLineage[id] = true
	}
	for _, c := range crystals {
		if !inLineage[c.SourceID] {
			continue
		}
		for i, boost := range c.Legacy {
			if boost > 0 {
				child[i] = genome.Clamp(child[i] + boost)
			}
		}
	}
	return child
}
