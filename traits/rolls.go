package traits

import (
	"math/rand"

	"github.com/pthm-cable/crucible/genome"
)

// RollMutationTrait draws a random non-disease trait with the given overall
// chance, weighted by each definition's Weight. Returns false when the roll
// misses.
func RollMutationTrait(rng *rand.Rand, chance float64) (Instance, bool) {
	if rng.Float64() >= chance {
		return Instance{}, false
	}

	pool := All()
	var totalWeight float64
	for _, def := range pool {
		totalWeight += def.Weight
	}
	if totalWeight <= 0 {
		return Instance{}, false
	}

	pick := rng.Float64() * totalWeight
	for _, def := range pool {
		pick -= def.Weight
		if pick <= 0 {
			return Instance{ID: def.ID, Rank: 1, Source: SourceMutation}, true
		}
	}
	last := pool[len(pool)-1]
	return Instance{ID: last.ID, Rank: 1, Source: SourceMutation}, true
}

// RollDisease picks one of the four disease kinds uniformly at random.
func RollDisease(rng *rand.Rand) ID {
	return DiseaseIDs[rng.Intn(len(DiseaseIDs))]
}

// ApplyDiseasePerturbation applies a disease's gene perturbation directly to
// the genome, so the damage persists through future breeding. Unknown IDs
// leave the genome untouched.
func ApplyDiseasePerturbation(g genome.Genome, disease ID) genome.Genome {
	def, ok := Get(disease)
	if !ok {
		return g
	}
	for idx, delta := range def.GenePerturb {
		if idx >= 0 && idx < genome.Count {
			g[idx] = genome.Clamp(g[idx] + delta)
		}
	}
	return g
}

// inheritChance returns the per-category probability that a parent trait
// passes to the child. Inbreeding raises every category; pure-positive
// traits benefit most, and diseases are the stickiest overall.
func inheritChance(cat Category, coefficient float64) float64 {
	var base, coiScale float64
	switch cat {
	case CategoryPositive:
		base, coiScale = 0.50, 0.35
	case CategoryDisease:
		base, coiScale = 0.60, 0.30
	case CategoryMutation:
		base, coiScale = 0.35, 0.15
	default: // elemental, stat-skew
		base, coiScale = 0.45, 0.15
	}
	p := base + coefficient*coiScale
	if p > 0.95 {
		p = 0.95
	}
	return p
}

// ResolveInheritance merges both parents' trait lists into the child's,
// rolling each candidate against its category's inheritance probability.
// Duplicates are deduplicated by definition ID (the higher rank wins) and
// the result is trimmed to the capacity budget.
func ResolveInheritance(parentA, parentB []Instance, coefficient float64, rng *rand.Rand) []Instance {
	candidates := make([]Instance, 0, len(parentA)+len(parentB))
	candidates = append(candidates, parentA...)
	candidates = append(candidates, parentB...)

	rolled := make(map[ID]bool)
	won := make(map[ID]int) // definition ID -> best rank
	order := make([]ID, 0, len(candidates))

	for _, inst := range candidates {
		def, ok := Get(inst.ID)
		if !ok {
			continue
		}
		if rolled[inst.ID] {
			// One roll per definition; a duplicate only improves the rank.
			if rank, ok := won[inst.ID]; ok && inst.Rank > rank {
				won[inst.ID] = inst.Rank
			}
			continue
		}
		rolled[inst.ID] = true
		if rng.Float64() < inheritChance(def.Category, coefficient) {
			won[inst.ID] = inst.Rank
			order = append(order, inst.ID)
		}
	}

	inherited := make([]Instance, 0, len(order))
	for _, id := range order {
		inherited = append(inherited, Instance{ID: id, Rank: won[id], Source: SourceInherited})
	}

	kept, _ := EnforceCapacity(inherited)
	if len(kept) > MaxActive {
		kept = kept[:MaxActive]
	}
	return kept
}
