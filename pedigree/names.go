package pedigree

import (
	"fmt"

	"github.com/pthm-cable/crucible/genome"
)

// Title pools. Priority: special ability > high stat > deep generation >
// element. A proper name follows the title; both lookups are driven by the
// same deterministic string hash, so identical IDs always yield identical
// names.

var specialTitles = map[genome.Special][]string{
	genome.SpecialPowerStrike:    {"Crushing", "Unyielding", "Warborn"},
	genome.SpecialElementalBurst: {"Radiant", "Stormforged", "Prismatic"},
	genome.SpecialOverdrive:      {"Transcendent", "Apex", "Limitless"},
}

var highStatTitles = map[int][]string{
	genome.GeneAttack:  {"Savage", "Bladed", "Ruinous"},
	genome.GeneSpeed:   {"Swift", "Flickering", "Untouchable"},
	genome.GeneMaxHP:   {"Enduring", "Titanic", "Deathless"},
	genome.GeneDefense: {"Bastion", "Adamant", "Stalwart"},
}

var generationTitles = []string{"Elder", "Ancient", "Primordial"}

var elementTitles = map[genome.Element][]string{
	genome.ElementFire:      {"Ember", "Cinder", "Blazing"},
	genome.ElementIce:       {"Frost", "Glacial", "Winter's"},
	genome.ElementLightning: {"Storm", "Thunder", "Arc"},
}

var properNames = []string{
	"Fang", "Vex", "Karn", "Sable", "Orim",
	"Thesh", "Riven", "Null", "Kessa", "Dray",
	"Morrow", "Ixal", "Brand", "Sever", "Quill",
	"Ashen", "Torvald", "Nyx", "Garrick", "Lune",
}

// hashString sums shifted character codes. Cheap but stable: the whole
// naming scheme depends on this never changing.
func hashString(s string) int {
	h := 0
	for i, r := range s {
		h += int(r) << uint(i%5)
	}
	if h < 0 {
		h = -h
	}
	return h
}

// highStatGene returns the first title-bearing gene above 0.85, in fixed
// index order, or -1.
func highStatGene(g genome.Genome) int {
	for _, idx := range []int{genome.GeneAttack, genome.GeneSpeed, genome.GeneMaxHP, genome.GeneDefense} {
		if g[idx] > 0.85 {
			return idx
		}
	}
	return -1
}

// GenerateName produces the deterministic bloodline name for an item:
// a title chosen by priority, then a proper name, both indexed by the ID
// hash. Identical IDs and genomes always produce identical names.
func GenerateName(id string, g genome.Genome, generation int) string {
	h := hashString(id)
	stats := genome.Decode(g, genome.DefaultStageBase)

	var pool []string
	switch {
	case stats.Special != genome.SpecialNone:
		pool = specialTitles[stats.Special]
	case highStatGene(g) >= 0:
		pool = highStatTitles[highStatGene(g)]
	case generation >= 5:
		pool = generationTitles
	default:
		pool = elementTitles[stats.Element]
	}

	title := pool[h%len(pool)]
	proper := properNames[(h/7)%len(properNames)]
	return fmt.Sprintf("%s %s", title, proper)
}
