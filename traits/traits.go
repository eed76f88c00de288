// Package traits defines the static trait library and the pure functions
// that turn trait lists into modified combat stats: diminishing-returns
// stacking, capacity-limited selection, mutation and disease rolls, and
// inheritance resolution.
package traits

import (
	"github.com/pthm-cable/crucible/genome"
)

// Capacity model: an item holds at most MaxActive traits and a summed
// capacity of MaxCapacity. Excess traits are evicted, never silently dropped.
const (
	MaxActive   = 5
	MaxCapacity = 12
)

// Category groups trait definitions. Inheritance probability is
// category-specific.
type Category uint8

const (
	CategoryElemental Category = iota // element-linked bonuses
	CategoryStatSkew                  // bonus on one stat, penalty on another
	CategoryMutation                  // battle side effects (lifesteal, thorns...)
	CategoryPositive                  // pure-positive, no penalty
	CategoryDisease                   // genetic diseases
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryElemental:
		return "elemental"
	case CategoryStatSkew:
		return "stat-skew"
	case CategoryMutation:
		return "mutation"
	case CategoryPositive:
		return "positive"
	case CategoryDisease:
		return "disease"
	default:
		return "unknown"
	}
}

// Stat enumerates every stat a trait can modify. A tagged enum instead of
// string keys so new stats force exhaustive handling at compile time.
type Stat uint8

const (
	StatAttack Stat = iota
	StatDefense
	StatMaxHP
	StatAttackSpeed // bonus = faster (shorter action interval)
	StatFireResist
	StatIceResist
	StatLightningResist
	StatLifesteal
	StatThornDamage
	StatDotOnHit
	StatHPDecay           // fraction of max HP lost per second in battle
	StatMaxHPDecayPerWave // fraction of max HP lost per wave, applied by the caller
)

// ID identifies a trait definition.
type ID string

// Source records how an item acquired a trait instance.
type Source uint8

const (
	SourceInherited Source = iota
	SourceMutation
	SourceCrystal
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceMutation:
		return "mutation"
	case SourceCrystal:
		return "crystal"
	default:
		return "inherited"
	}
}

// Instance is one acquired trait on an item: a reference to a definition
// plus the rank it was acquired at and where it came from.
type Instance struct {
	ID     ID     `yaml:"id"`
	Rank   int    `yaml:"rank"`
	Source Source `yaml:"source"`
}

// Definition is an immutable, globally shared trait description. Bonuses
// and penalties are fractional effect magnitudes (0.15 = 15%).
type Definition struct {
	ID       ID
	Name     string
	Category Category
	Capacity int

	Bonuses   map[Stat]float64
	Penalties map[Stat]float64

	// Conditional activation: when HP ratio falls below BerserkThreshold,
	// attack doubles and defense drops to zero for the rest of the battle.
	BerserkThreshold float64
	// SelfDestructChance triggers when the holder takes a hit.
	SelfDestructChance float64

	// GenePerturb is applied directly to the genome when a disease is
	// contracted, so its effect persists through future breeding.
	GenePerturb map[int]float64

	// Weight biases random draws (mutation rolls); higher = more common.
	Weight float64
}

// MaxRank is the highest rank a trait instance can be upgraded to.
const MaxRank = 3

// rankScale returns the effect multiplier for an instance rank.
func rankScale(rank int) float64 {
	if rank < 1 {
		rank = 1
	}
	if rank > MaxRank {
		rank = MaxRank
	}
	return 1 + 0.2*float64(rank-1)
}

// Loadout is the single authoritative result of applying a trait list to
// decoded combat stats: the modified stats plus battle side effects.
type Loadout struct {
	Stats genome.CombatStats

	Lifesteal          float64
	ThornDamage        float64
	DotOnHit           float64
	HPDecayPerSec      float64
	MaxHPDecayPerWave  float64
	BerserkThreshold   float64
	SelfDestructChance float64

	// Synergy bonus names unlocked by co-present trait pairs.
	ActiveSynergies []string
}
