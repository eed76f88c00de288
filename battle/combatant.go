package battle

import (
	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/item"
	"github.com/pthm-cable/crucible/traits"
)

// Actor tags which side a log entry or combatant belongs to.
type Actor uint8

const (
	ActorWeapon Actor = iota
	ActorEnemy
)

// String returns the actor name.
func (a Actor) String() string {
	if a == ActorEnemy {
		return "enemy"
	}
	return "weapon"
}

// combatant is the per-battle mutable state for one side. Stats are copied
// out of the loadout so conditional effects (berserk) can rewrite them
// without touching the caller's data.
type combatant struct {
	actor Actor
	stats genome.CombatStats

	hp       float64
	cooldown float64

	lifesteal          float64
	thornDamage        float64
	dotOnHit           float64
	hpDecayPerSec      float64
	berserkThreshold   float64
	selfDestructChance float64

	berserkActive bool

	// Incoming damage-over-time applied by the opponent's traits.
	dotDPS  float64
	dotTime float64
}

func newCombatant(actor Actor, lo traits.Loadout) *combatant {
	return &combatant{
		actor:              actor,
		stats:              lo.Stats,
		hp:                 lo.Stats.MaxHP,
		cooldown:           lo.Stats.AttackSpeed,
		lifesteal:          lo.Lifesteal,
		thornDamage:        lo.ThornDamage,
		dotOnHit:           lo.DotOnHit,
		hpDecayPerSec:      lo.HPDecayPerSec,
		berserkThreshold:   lo.BerserkThreshold,
		selfDestructChance: lo.SelfDestructChance,
	}
}

func (c *combatant) hpRatio() float64 {
	if c.stats.MaxHP <= 0 {
		return 0
	}
	return c.hp / c.stats.MaxHP
}

func (c *combatant) heal(amount float64) {
	c.hp += amount
	if c.hp > c.stats.MaxHP {
		c.hp = c.stats.MaxHP
	}
}

// LoadoutForItem builds a battle loadout from an item: decoded stats,
// mastery bonuses, traits, and any active disease's combat penalty.
func LoadoutForItem(it *item.Item, stageBase float64) traits.Loadout {
	stats := genome.Decode(it.Genome, stageBase)
	stats.Attack *= genome.MasterySynchroBoost(it.Mastery)
	stats.CritChance += genome.MasteryCritBonus(it.Mastery)

	instances := it.Traits
	if it.Disease != "" {
		instances = make([]traits.Instance, 0, len(it.Traits)+1)
		instances = append(instances, it.Traits...)
		instances = append(instances, traits.Instance{ID: it.Disease, Rank: 1})
	}
	return traits.Apply(stats, instances)
}

// LoadoutForGenome builds a plain loadout from a bare genome (spawned
// enemies carry no traits or mastery).
func LoadoutForGenome(g genome.Genome, stageBase float64) traits.Loadout {
	return traits.Apply(genome.Decode(g, stageBase), nil)
}
