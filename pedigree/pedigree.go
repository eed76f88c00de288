// Package pedigree tracks ancestry and resolves its genetic consequences:
// inbreeding coefficients, gene fixing, disease risk, crystallization of
// exhausted items into legacy records, and deterministic bloodline naming.
package pedigree

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/item"
	"github.com/pthm-cable/crucible/traits"
)

// Gene-fixing parameters: genes where the parents nearly agree can be fixed
// (averaged and locked against mutation) by inbreeding.
const (
	fixSimilarity = 0.15 // max parent difference for a fixable gene
	maxFixedGenes = 3
)

// Disease gating: risk only activates above this coefficient.
const diseaseRiskFloor = 0.25

// BuildAncestors assembles a child's lineage from its two parents: both
// parent IDs first, then their ancestor lists interleaved, capped at
// item.MaxAncestors and deduplicated most-recent-first.
func BuildAncestors(parentA, parentB *item.Item) []string {
	out := make([]string, 0, item.MaxAncestors)
	seen := make(map[string]bool, item.MaxAncestors)

	push := func(id string) {
		if id == "" || seen[id] || len(out) >= item.MaxAncestors {
			return
		}
		seen[id] = true
		out = append(out, id)
	}

	push(parentA.ID)
	push(parentB.ID)
	for i := 0; i < len(parentA.Ancestors) || i < len(parentB.Ancestors); i++ {
		if i < len(parentA.Ancestors) {
			push(parentA.Ancestors[i])
		}
		if i < len(parentB.Ancestors) {
			push(parentB.Ancestors[i])
		}
	}
	return out
}

// InbreedResult describes the consequences of shared ancestry between two
// prospective parents. Transient: computed per breeding, never persisted.
type InbreedResult struct {
	IsInbred        bool
	Coefficient     float64 // [0,1]
	SharedAncestors []string
	FixedGenes      []int     // indices locked against mutation, averaged
	Disease         traits.ID // "" when no disease was rolled
}

// DetectInbreeding computes the inbreeding coefficient between two parents
// as |shared| / max(set sizes, 1) over their lineage sets (each parent's
// ancestors plus its own ID), clamped to [0,1]. Any shared ancestry at all
// marks the pairing as inbred. The disease roll is stochastic; everything
// else is deterministic.
func DetectInbreeding(parentA, parentB *item.Item, rng *rand.Rand) InbreedResult {
	setA := lineageSet(parentA)
	setB := lineageSet(parentB)

	var shared []string
	for id := range setA {
		if setB[id] {
			shared = append(shared, id)
		}
	}

	denom := len(setA)
	if len(setB) > denom {
		denom = len(setB)
	}
	if denom < 1 {
		denom = 1
	}
	coef := float64(len(shared)) / float64(denom)
	if coef > 1 {
		coef = 1
	}

	res := InbreedResult{
		IsInbred:        len(shared) > 0,
		Coefficient:     coef,
		SharedAncestors: shared,
	}
	if !res.IsInbred {
		return res
	}

	res.FixedGenes = fixableGenes(parentA.Genome, parentB.Genome, coef)

	if coef > diseaseRiskFloor {
		p := coef * 0.3
		if coef > 0.5 {
			p = 0.5
		}
		if rng.Float64() < p {
			res.Disease = traits.RollDisease(rng)
		}
	}
	return res
}

func lineageSet(it *item.Item) map[string]bool {
	set := make(map[string]bool, len(it.Ancestors)+1)
	set[it.ID] = true
	for _, id := range it.Ancestors {
		set[id] = true
	}
	return set
}

// fixableGenes selects up to ceil(coef*4) genes (capped at maxFixedGenes)
// where the parents differ by less than fixSimilarity, most similar first.
func fixableGenes(a, b genome.Genome, coef float64) []int {
	type candidate struct {
		idx  int
		diff float64
	}
	var cands []candidate
	for i := 0; i < genome.Count; i++ {
		d := math.Abs(a[i] - b[i])
		if d < fixSimilarity {
			cands = append(cands, candidate{i, d})
		}
	}
	// Most similar first; index breaks ties for determinism.
	for i := 1; i < len(cands); i++ {
		for j := i; j > 0; j-- {
			if cands[j].diff < cands[j-1].diff ||
				(cands[j].diff == cands[j-1].diff && cands[j].idx < cands[j-1].idx) {
				cands[j], cands[j-1] = cands[j-1], cands[j]
			} else {
				break
			}
		}
	}

	n := int(math.Ceil(coef * 4))
	if n > maxFixedGenes {
		n = maxFixedGenes
	}
	if n > len(cands) {
		n = len(cands)
	}
	out := make([]int, 0, n)
	for _, c := range cands[:n] {
		out = append(out, c.idx)
	}
	return out
}

// ApplyInbreeding applies an inbreeding result to a freshly crossed-over
// child genome: fixed genes are averaged between the parents, a rolled
// disease perturbs the genome directly, and deep inbreeding (coefficient
// above 0.5) grants a one-time, generation-diminishing boost to every gene.
func ApplyInbreeding(child genome.Genome, res InbreedResult, parentA, parentB *item.Item, childGeneration int) genome.Genome {
	if !res.IsInbred {
		return child
	}

	for _, idx := range res.FixedGenes {
		child[idx] = (parentA.Genome[idx] + parentB.Genome[idx]) / 2
	}

	if res.Disease != "" {
		child = traits.ApplyDiseasePerturbation(child, res.Disease)
	}

	if res.Coefficient > 0.5 {
		boost := 0.08 * math.Pow(0.85, float64(childGeneration))
		for i := range child {
			child[i] = genome.Clamp(child[i] + boost)
		}
	}
	return child
}
