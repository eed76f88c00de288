package genome

import "math"

// Element is a combatant's damage element.
type Element uint8

const (
	ElementFire Element = iota
	ElementIce
	ElementLightning
)

// String returns the element name.
func (e Element) String() string {
	switch e {
	case ElementFire:
		return "fire"
	case ElementIce:
		return "ice"
	case ElementLightning:
		return "lightning"
	default:
		return "unknown"
	}
}

// Elements lists all elements in index order.
var Elements = []Element{ElementFire, ElementIce, ElementLightning}

// Special is a threshold-selected special ability. SpecialNone disables
// mutation skill procs in battle.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialPowerStrike
	SpecialElementalBurst
	SpecialOverdrive
)

// String returns the special ability name.
func (s Special) String() string {
	switch s {
	case SpecialPowerStrike:
		return "power strike"
	case SpecialElementalBurst:
		return "elemental burst"
	case SpecialOverdrive:
		return "overdrive"
	default:
		return "none"
	}
}

// Attack speed interpolation bounds, in seconds per action.
const (
	fastestAction = 0.5
	slowestAction = 2.0
)

// DefaultStageBase is the stage scalar used when rating items outside a
// specific stage context.
const DefaultStageBase = 10.0

// CombatStats is derived from a genome plus a stage base scalar. It is never
// mutated in place; recompute whenever the genome or stage changes.
type CombatStats struct {
	Attack      float64
	AttackSpeed float64 // seconds per action, lower = faster
	MaxHP       float64
	Defense     float64
	CritChance  float64
	EvadeChance float64

	Element Element
	Special Special

	// AI personality weights, normalized to sum ~1.
	Aggression float64
	Caution    float64
	Tactics    float64

	FireResist      float64
	IceResist       float64
	LightningResist float64
}

// Resist returns the resistance against the given damage element.
func (s CombatStats) Resist(el Element) float64 {
	switch el {
	case ElementFire:
		return s.FireResist
	case ElementIce:
		return s.IceResist
	default:
		return s.LightningResist
	}
}

// Decode maps a genome to combat stats at the given stage base. Pure and
// total: identical inputs always yield identical stats.
func Decode(g Genome, stageBase float64) CombatStats {
	// Power-law attack curve: high-end genomes disproportionately reward
	// investment.
	attack := math.Pow(g[GeneAttack], 1.4) * stageBase

	// Linear interpolation from fast floor to slow ceiling as the speed
	// gene falls.
	speed := slowestAction - g[GeneSpeed]*(slowestAction-fastestAction)

	maxHP := (50 + g[GeneMaxHP]*150) * stageBase / DefaultStageBase
	defense := g[GeneDefense] * stageBase * 0.4

	// Small epsilon keeps normalization total, even for an all-zero genome.
	const eps = 0.01
	wa := g[GeneAggression] + eps
	wd := g[GeneDefense] + eps
	wt := g[GeneTactics] + eps
	wTotal := wa + wd + wt

	var el Element
	switch {
	case g[GeneElement] < 1.0/3:
		el = ElementFire
	case g[GeneElement] < 2.0/3:
		el = ElementIce
	default:
		el = ElementLightning
	}

	// Highest threshold wins.
	var sp Special
	switch {
	case g[GeneSpecial] >= 0.85:
		sp = SpecialOverdrive
	case g[GeneSpecial] >= 0.65:
		sp = SpecialElementalBurst
	case g[GeneSpecial] >= 0.40:
		sp = SpecialPowerStrike
	default:
		sp = SpecialNone
	}

	return CombatStats{
		Attack:          attack,
		AttackSpeed:     speed,
		MaxHP:           maxHP,
		Defense:         defense,
		CritChance:      0.10 + g[GeneTactics]*0.15,
		EvadeChance:     0.03 + g[GeneSpeed]*0.12,
		Element:         el,
		Special:         sp,
		Aggression:      wa / wTotal,
		Caution:         wd / wTotal,
		Tactics:         wt / wTotal,
		FireResist:      g[GeneFireResist],
		IceResist:       g[GeneIceResist],
		LightningResist: g.LightningResist(),
	}
}

// Grade is a letter tier for an item's combat potential. This is the only
// ranking authority; all displays defer to it.
type Grade uint8

const (
	GradeD Grade = iota
	GradeC
	GradeB
	GradeA
	GradeS
	GradeSS
)

// String returns the grade letter.
func (r Grade) String() string {
	switch r {
	case GradeC:
		return "C"
	case GradeB:
		return "B"
	case GradeA:
		return "A"
	case GradeS:
		return "S"
	case GradeSS:
		return "SS"
	default:
		return "D"
	}
}

// Rating maps a genome's derived score (DPS plus a weighted defensive score)
// to a letter tier across six bands.
func Rating(g Genome) Grade {
	stats := Decode(g, DefaultStageBase)
	dps := stats.Attack / stats.AttackSpeed
	defScore := stats.MaxHP*0.05 + stats.Defense*0.8 +
		(stats.FireResist+stats.IceResist+stats.LightningResist)*5
	score := dps + defScore

	switch {
	case score < 12:
		return GradeD
	case score < 17:
		return GradeC
	case score < 22:
		return GradeB
	case score < 28:
		return GradeA
	case score < 34:
		return GradeS
	default:
		return GradeSS
	}
}
