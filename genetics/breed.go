package genetics

import (
	"math"

	"github.com/pthm-cable/crucible/config"
	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/item"
	"github.com/pthm-cable/crucible/pedigree"
	"github.com/pthm-cable/crucible/traits"
)

// Breed is the single orchestrating transaction that produces one child
// from two parents. It always returns a complete child: preconditions
// (mastery gates, resource costs, breed-count limits) are the caller's
// responsibility and are not re-checked here.
//
// crystals are the caller's crystallized legacy records; any whose source
// appears in the child's lineage contributes its partial gene boost.
func (e *Engine) Breed(parentA, parentB *item.Item, mutationRate float64, lockedGenes []int, crystals []item.Crystal) *item.Item {
	cfg := config.Cfg()

	generation := parentA.Generation
	if parentB.Generation > generation {
		generation = parentB.Generation
	}
	generation++

	locked := make(map[int]bool, len(lockedGenes))
	for _, idx := range lockedGenes {
		if idx >= 0 && idx < genome.Count {
			locked[idx] = true
		}
	}

	childGenome := e.Crossover(parentA.Genome, parentB.Genome)

	// Manually locked genes inherit the parents' average instead of a coin
	// flip, then stay untouched by mutation.
	for idx := range locked {
		childGenome[idx] = (parentA.Genome[idx] + parentB.Genome[idx]) / 2
	}

	inbreed := pedigree.DetectInbreeding(parentA, parentB, e.rng)
	if inbreed.IsInbred {
		childGenome = pedigree.ApplyInbreeding(childGenome, inbreed, parentA, parentB, generation)
		for _, idx := range inbreed.FixedGenes {
			locked[idx] = true
		}
	}

	// Entropy escalates with generation on top of the requested rate.
	entropyRate := mutationRate * (1 + cfg.Breeding.MutationEscalation*float64(generation))
	childGenome = e.Mutate(childGenome, entropyRate, generation, locked)

	ancestors := pedigree.BuildAncestors(parentA, parentB)
	childGenome = pedigree.ApplyLegacy(childGenome, ancestors, crystals)
	childGenome = genome.ApplySoftCap(childGenome, cfg.Genome.SoftCapTotal, cfg.Genome.SoftCapRate)

	child := &item.Item{
		ID:         item.NewID(e.rng),
		Genome:     childGenome,
		Generation: generation,
		ParentIDs:  []string{parentA.ID, parentB.ID},
		Ancestors:  ancestors,
		BreedCount: 0,
	}

	child.Traits = traits.ResolveInheritance(parentA.Traits, parentB.Traits, inbreed.Coefficient, e.rng)
	if inst, ok := traits.RollMutationTrait(e.rng, cfg.Breeding.TraitMutationRoll); ok {
		child.Traits, _ = traits.EnforceCapacity(append(child.Traits, inst))
	}

	avgMastery := (parentA.Mastery + parentB.Mastery) / 2
	highMastery := avgMastery >= cfg.Breeding.HighMastery

	child.Disease = e.resolveDisease(parentA, parentB, inbreed, highMastery, cfg)

	if highMastery {
		for i := range child.Traits {
			if child.Traits[i].Rank < traits.MaxRank && e.rng.Float64() < cfg.Breeding.RankUpChance {
				child.Traits[i].Rank++
			}
		}
	}

	parentA.BreedCount++
	parentB.BreedCount++

	// Name last: it depends on the final genome and generation.
	child.Name = pedigree.GenerateName(child.ID, child.Genome, child.Generation)
	return child
}

// resolveDisease works out the child's single disease slot: an inbreeding
// roll wins outright, then parent diseases may carry over, then genetic
// fatigue from overused parents rolls an independent one. High average
// parent mastery softens fatigue and may cure an inherited disease.
func (e *Engine) resolveDisease(parentA, parentB *item.Item, inbreed pedigree.InbreedResult, highMastery bool, cfg *config.Config) traits.ID {
	disease := inbreed.Disease

	if disease == "" {
		inherited := parentA.Disease
		if inherited == "" {
			inherited = parentB.Disease
		}
		if inherited != "" {
			p := cfg.Breeding.InheritDisease + inbreed.Coefficient*0.3
			if e.rng.Float64() < p {
				disease = inherited
			}
		}
	}

	// Genetic fatigue: probability grows with the most-used parent.
	if disease == "" {
		maxUses := parentA.BreedCount
		if parentB.BreedCount > maxUses {
			maxUses = parentB.BreedCount
		}
		fatigue := math.Pow(float64(maxUses)*cfg.Breeding.FatigueBase, cfg.Breeding.FatigueExponent)
		if highMastery {
			fatigue *= 1 - cfg.Breeding.FatigueRelief
		}
		if e.rng.Float64() < fatigue {
			disease = traits.RollDisease(e.rng)
		}
	}

	if disease != "" && highMastery && e.rng.Float64() < cfg.Breeding.CureChance {
		disease = ""
	}
	return disease
}
