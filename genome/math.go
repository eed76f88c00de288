package genome

import (
	"math"
	"math/rand"
)

// Soft cap defaults. With rate 1.0 the compressed total lands exactly on the
// cap, which makes a second pass a no-op.
const (
	DefaultSoftCapTotal = 7.5
	DefaultSoftCapRate  = 1.0
)

// ApplySoftCap proportionally compresses the genome when its total exceeds
// cap, preserving the relative gene shape instead of hard-clipping. The
// reduction never exceeds what the excess implies; genomes already under the
// cap pass through unchanged.
func ApplySoftCap(g Genome, cap, rate float64) Genome {
	sum := g.Sum()
	if sum <= cap || sum <= 0 {
		return g
	}
	excess := sum - cap
	factor := 1 - (excess/sum)*rate
	if factor < 0 {
		factor = 0
	}
	for i := range g {
		g[i] = Clamp(g[i] * factor)
	}
	return g
}

// BoostResistance raises the genome's resistance against the given element
// by amount. Fire and ice map to their stored genes. Lightning resistance is
// derived from the other two, so boosting it lowers fire and ice by half the
// amount each.
func BoostResistance(g Genome, el Element, amount float64) Genome {
	switch el {
	case ElementFire:
		g[GeneFireResist] = Clamp(g[GeneFireResist] + amount)
	case ElementIce:
		g[GeneIceResist] = Clamp(g[GeneIceResist] + amount)
	case ElementLightning:
		g[GeneFireResist] = Clamp(g[GeneFireResist] - amount/2)
		g[GeneIceResist] = Clamp(g[GeneIceResist] - amount/2)
	}
	return g
}

// Rank multipliers for breeding cost, keyed by Grade.
var rankCostMultiplier = map[Grade]float64{
	GradeD:  1.0,
	GradeC:  1.0,
	GradeB:  1.5,
	GradeA:  2.0,
	GradeS:  3.0,
	GradeSS: 5.0,
}

// Cost breaks down the resource price of one breeding.
type Cost struct {
	Base           int
	RankMultiplier float64
	LockSurcharge  int
	Total          int
}

// BreedingCost computes the resource cost of breeding at the given child
// generation. Cost grows as generation^2.5 times the best parent's rank
// multiplier, plus a flat surcharge per manually locked gene. This is the
// core resource-pressure mechanic: high-generation breeding is exponentially
// expensive.
func BreedingCost(generation int, bestParentRank Grade, lockedGeneCount int) Cost {
	const (
		baseScale     = 10.0
		perLockCharge = 25
	)
	if generation < 1 {
		generation = 1
	}
	mult, ok := rankCostMultiplier[bestParentRank]
	if !ok {
		mult = 1.0
	}
	base := int(math.Ceil(baseScale * math.Pow(float64(generation), 2.5)))
	surcharge := lockedGeneCount * perLockCharge
	return Cost{
		Base:           base,
		RankMultiplier: mult,
		LockSurcharge:  surcharge,
		Total:          int(math.Ceil(float64(base)*mult)) + surcharge,
	}
}

// RequiredMastery is the mastery floor an item must reach before it may act
// as a breeding parent at the given generation.
func RequiredMastery(generation int) float64 {
	if generation < 1 {
		generation = 1
	}
	req := 15 + float64(generation)*5
	if req > 100 {
		req = 100
	}
	return req
}

// MasterySynchroBoost converts accumulated mastery into a small attack
// multiplier. Monotonic, capped at mastery 100.
func MasterySynchroBoost(mastery float64) float64 {
	if mastery > 100 {
		mastery = 100
	}
	if mastery < 0 {
		mastery = 0
	}
	return 1 + mastery/100*0.25
}

// MasteryCritBonus converts accumulated mastery into an additive critical
// chance bonus. Monotonic, capped at mastery 100.
func MasteryCritBonus(mastery float64) float64 {
	if mastery > 100 {
		mastery = 100
	}
	if mastery < 0 {
		mastery = 0
	}
	return mastery / 100 * 0.15
}

// StageQuality is the expected gene magnitude for enemies at the given
// stage. It grows logarithmically: fast early progression that flattens
// later. This curve is the difficulty curve's sole source of truth.
func StageQuality(stage int) float64 {
	if stage < 1 {
		stage = 1
	}
	q := 0.18 + 0.16*math.Log(1+float64(stage))
	if q > 0.92 {
		q = 0.92
	}
	return q
}

// NewStageGenome generates a genome whose expected magnitude follows
// StageQuality for the given stage, with per-gene variation.
func NewStageGenome(rng *rand.Rand, stage int) Genome {
	quality := StageQuality(stage)
	var g Genome
	for i := range g {
		g[i] = Clamp(quality * (0.7 + rng.Float64()*0.6))
	}
	return ApplySoftCap(g, DefaultSoftCapTotal, DefaultSoftCapRate)
}
