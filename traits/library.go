package traits

import "github.com/pthm-cable/crucible/genome"

// Disease IDs. Exactly these four kinds can be rolled from inbreeding or
// genetic fatigue.
const (
	DiseaseBrittleGenes   ID = "brittle_genes"
	DiseaseMetabolicBurn  ID = "metabolic_burn"
	DiseaseDullEdge       ID = "dull_edge"
	DiseaseChaoticStrands ID = "chaotic_strands"
)

// DiseaseIDs lists the rollable diseases in a fixed order for uniform draws.
var DiseaseIDs = []ID{
	DiseaseBrittleGenes,
	DiseaseMetabolicBurn,
	DiseaseDullEdge,
	DiseaseChaoticStrands,
}

// definitions is the static trait library, grouped by category. Built once
// at startup and never mutated.
var definitions = []Definition{
	// Element-linked
	{
		ID: "flame_affinity", Name: "Flame Affinity", Category: CategoryElemental, Capacity: 2,
		Bonuses:   map[Stat]float64{StatAttack: 0.12, StatFireResist: 0.10},
		Penalties: map[Stat]float64{StatIceResist: 0.08},
		Weight:    1.0,
	},
	{
		ID: "frost_veins", Name: "Frost Veins", Category: CategoryElemental, Capacity: 2,
		Bonuses:   map[Stat]float64{StatDefense: 0.15, StatIceResist: 0.10},
		Penalties: map[Stat]float64{StatFireResist: 0.08},
		Weight:    1.0,
	},
	{
		ID: "storm_heart", Name: "Storm Heart", Category: CategoryElemental, Capacity: 2,
		Bonuses:   map[Stat]float64{StatAttackSpeed: 0.10, StatLightningResist: 0.10},
		Penalties: map[Stat]float64{StatMaxHP: 0.05},
		Weight:    1.0,
	},

	// Stat-skewed (bonus traded against penalty)
	{
		ID: "glass_edge", Name: "Glass Edge", Category: CategoryStatSkew, Capacity: 3,
		Bonuses:   map[Stat]float64{StatAttack: 0.25},
		Penalties: map[Stat]float64{StatMaxHP: 0.15},
		Weight:    0.8,
	},
	{
		ID: "heavy_plating", Name: "Heavy Plating", Category: CategoryStatSkew, Capacity: 3,
		Bonuses:   map[Stat]float64{StatDefense: 0.30, StatMaxHP: 0.10},
		Penalties: map[Stat]float64{StatAttackSpeed: 0.15},
		Weight:    0.8,
	},
	{
		ID: "berserk_core", Name: "Berserk Core", Category: CategoryStatSkew, Capacity: 4,
		Bonuses:          map[Stat]float64{StatAttack: 0.10},
		Penalties:        map[Stat]float64{StatDefense: 0.10},
		BerserkThreshold: 0.3,
		Weight:           0.5,
	},

	// Mutation (battle side effects)
	{
		ID: "leech_fibers", Name: "Leech Fibers", Category: CategoryMutation, Capacity: 3,
		Bonuses: map[Stat]float64{StatLifesteal: 0.12},
		Weight:  0.6,
	},
	{
		ID: "thorn_hide", Name: "Thorn Hide", Category: CategoryMutation, Capacity: 2,
		Bonuses: map[Stat]float64{StatThornDamage: 0.15},
		Weight:  0.7,
	},
	{
		ID: "venom_coating", Name: "Venom Coating", Category: CategoryMutation, Capacity: 3,
		Bonuses: map[Stat]float64{StatDotOnHit: 0.10},
		Weight:  0.6,
	},
	{
		ID: "unstable_core", Name: "Unstable Core", Category: CategoryMutation, Capacity: 4,
		Bonuses:            map[Stat]float64{StatAttack: 0.18},
		SelfDestructChance: 0.04,
		Weight:             0.3,
	},

	// Pure-positive
	{
		ID: "keen_instinct", Name: "Keen Instinct", Category: CategoryPositive, Capacity: 2,
		Bonuses: map[Stat]float64{StatAttack: 0.08, StatAttackSpeed: 0.05},
		Weight:  0.5,
	},
	{
		ID: "iron_constitution", Name: "Iron Constitution", Category: CategoryPositive, Capacity: 2,
		Bonuses: map[Stat]float64{StatMaxHP: 0.12, StatDefense: 0.08},
		Weight:  0.5,
	},
	{
		ID: "prism_scales", Name: "Prism Scales", Category: CategoryPositive, Capacity: 3,
		Bonuses: map[Stat]float64{StatFireResist: 0.08, StatIceResist: 0.08, StatLightningResist: 0.08},
		Weight:  0.4,
	},

	// Genetic diseases. Capacity 0: diseases occupy no trait budget, they
	// are a separate single slot on the item.
	{
		ID: DiseaseBrittleGenes, Name: "Brittle Genes", Category: CategoryDisease, Capacity: 0,
		Penalties:   map[Stat]float64{StatMaxHP: 0.20},
		GenePerturb: map[int]float64{genome.GeneMaxHP: -0.10},
	},
	{
		ID: DiseaseMetabolicBurn, Name: "Metabolic Burn", Category: CategoryDisease, Capacity: 0,
		Bonuses:     map[Stat]float64{StatHPDecay: 0.01},
		GenePerturb: map[int]float64{genome.GeneSpeed: -0.08},
	},
	{
		ID: DiseaseDullEdge, Name: "Dull Edge", Category: CategoryDisease, Capacity: 0,
		Penalties:   map[Stat]float64{StatAttack: 0.18},
		GenePerturb: map[int]float64{genome.GeneAttack: -0.10},
	},
	{
		ID: DiseaseChaoticStrands, Name: "Chaotic Strands", Category: CategoryDisease, Capacity: 0,
		Penalties:   map[Stat]float64{StatDefense: 0.15},
		GenePerturb: map[int]float64{genome.GeneDefense: -0.08, genome.GeneTactics: -0.05},
	},
}

// library indexes definitions by ID.
var library = func() map[ID]*Definition {
	m := make(map[ID]*Definition, len(definitions))
	for i := range definitions {
		m[definitions[i].ID] = &definitions[i]
	}
	return m
}()

// Get looks up a trait definition. Unknown IDs are non-fatal; callers skip
// unresolvable traits so removed definitions in live data never crash.
func Get(id ID) (*Definition, bool) {
	def, ok := library[id]
	return def, ok
}

// All returns every non-disease definition, in declaration order.
func All() []Definition {
	out := make([]Definition, 0, len(definitions))
	for _, def := range definitions {
		if def.Category != CategoryDisease {
			out = append(out, def)
		}
	}
	return out
}

// Synergy is an extra named bonus unlocked when two specific traits are
// co-present.
type Synergy struct {
	Name    string
	A, B    ID
	Bonuses map[Stat]float64
}

// synergies lists the fixed synergy pairs.
var synergies = []Synergy{
	{
		Name: "Inferno Rage", A: "flame_affinity", B: "berserk_core",
		Bonuses: map[Stat]float64{StatAttack: 0.15},
	},
	{
		Name: "Frozen Bulwark", A: "frost_veins", B: "heavy_plating",
		Bonuses: map[Stat]float64{StatDefense: 0.20, StatMaxHP: 0.10},
	},
}

// ActiveSynergies returns the synergies unlocked by the given trait list.
func ActiveSynergies(instances []Instance) []Synergy {
	present := make(map[ID]bool, len(instances))
	for _, inst := range instances {
		present[inst.ID] = true
	}
	var out []Synergy
	for _, syn := range synergies {
		if present[syn.A] && present[syn.B] {
			out = append(out, syn)
		}
	}
	return out
}
