package traits

import (
	"math"
	"sort"

	"github.com/pthm-cable/crucible/genome"
)

// StackedEffect combines count stacked instances of an individual effect
// magnitude with diminishing returns: 1 - (1-|e|)^count. Always below 1 for
// any finite count, strictly increasing in count, so no stat can be pushed
// to +/-100% by stacking.
func StackedEffect(effect float64, count int) float64 {
	if count < 1 {
		return 0
	}
	e := math.Abs(effect)
	if e >= 1 {
		e = 0.99
	}
	return 1 - math.Pow(1-e, float64(count))
}

// combine folds individual effect magnitudes into one diminishing-returns
// total: 1 - prod(1-e_i). For equal magnitudes this reduces to StackedEffect.
func combine(effects []float64) float64 {
	remaining := 1.0
	for _, e := range effects {
		e = math.Abs(e)
		if e >= 1 {
			e = 0.99
		}
		remaining *= 1 - e
	}
	return 1 - remaining
}

// accumulator gathers per-stat bonus and penalty magnitudes. Bonuses and
// penalties stack independently, each with its own diminishing-returns pass.
type accumulator struct {
	bonuses   map[Stat][]float64
	penalties map[Stat][]float64
}

func newAccumulator() *accumulator {
	return &accumulator{
		bonuses:   make(map[Stat][]float64),
		penalties: make(map[Stat][]float64),
	}
}

func (a *accumulator) add(def *Definition, scale float64) {
	for stat, e := range def.Bonuses {
		a.bonuses[stat] = append(a.bonuses[stat], e*scale)
	}
	for stat, e := range def.Penalties {
		a.penalties[stat] = append(a.penalties[stat], e*scale)
	}
}

func (a *accumulator) net(stat Stat) (bonus, penalty float64) {
	return combine(a.bonuses[stat]), combine(a.penalties[stat])
}

// Apply is the single authority for turning a trait list into a battle
// loadout. Unknown trait IDs are skipped. Stat floors are enforced after all
// modifiers: attack >= 1, defense >= 0, maxHP >= 10, attack speed clamped to
// [0.1, 3.0].
func Apply(stats genome.CombatStats, instances []Instance) Loadout {
	acc := newAccumulator()
	var berserk, selfDestruct float64
	var synNames []string

	for _, inst := range instances {
		def, ok := Get(inst.ID)
		if !ok {
			continue
		}
		acc.add(def, rankScale(inst.Rank))
		if def.BerserkThreshold > berserk {
			berserk = def.BerserkThreshold
		}
		if def.SelfDestructChance > 0 {
			selfDestruct = 1 - (1-selfDestruct)*(1-def.SelfDestructChance)
		}
	}

	for _, syn := range ActiveSynergies(instances) {
		for stat, e := range syn.Bonuses {
			acc.bonuses[stat] = append(acc.bonuses[stat], e)
		}
		synNames = append(synNames, syn.Name)
	}

	apply := func(v float64, stat Stat) float64 {
		bonus, penalty := acc.net(stat)
		return v * (1 + bonus) * (1 - penalty)
	}
	resist := func(v float64, stat Stat) float64 {
		bonus, penalty := acc.net(stat)
		return clampResist(v + bonus - penalty)
	}
	side := func(stat Stat) float64 {
		bonus, penalty := acc.net(stat)
		v := bonus - penalty
		if v < 0 {
			v = 0
		}
		return v
	}

	stats.Attack = apply(stats.Attack, StatAttack)
	stats.Defense = apply(stats.Defense, StatDefense)
	stats.MaxHP = apply(stats.MaxHP, StatMaxHP)

	// AttackSpeed is seconds per action: a bonus shortens it.
	speedBonus, speedPenalty := acc.net(StatAttackSpeed)
	stats.AttackSpeed = stats.AttackSpeed * (1 - speedBonus) * (1 + speedPenalty)

	stats.FireResist = resist(stats.FireResist, StatFireResist)
	stats.IceResist = resist(stats.IceResist, StatIceResist)
	stats.LightningResist = resist(stats.LightningResist, StatLightningResist)

	// Floors.
	if stats.Attack < 1 {
		stats.Attack = 1
	}
	if stats.Defense < 0 {
		stats.Defense = 0
	}
	if stats.MaxHP < 10 {
		stats.MaxHP = 10
	}
	if stats.AttackSpeed < 0.1 {
		stats.AttackSpeed = 0.1
	}
	if stats.AttackSpeed > 3.0 {
		stats.AttackSpeed = 3.0
	}

	return Loadout{
		Stats:              stats,
		Lifesteal:          side(StatLifesteal),
		ThornDamage:        side(StatThornDamage),
		DotOnHit:           side(StatDotOnHit),
		HPDecayPerSec:      side(StatHPDecay),
		MaxHPDecayPerWave:  side(StatMaxHPDecayPerWave),
		BerserkThreshold:   berserk,
		SelfDestructChance: selfDestruct,
		ActiveSynergies:    synNames,
	}
}

func clampResist(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 0.95 {
		return 0.95
	}
	return v
}

// EnforceCapacity trims a trait list to the MaxActive and MaxCapacity
// budgets, evicting lowest-capacity traits first. Evicted IDs are returned
// so callers can surface them instead of losing traits silently.
func EnforceCapacity(instances []Instance) (kept []Instance, evicted []ID) {
	kept = make([]Instance, len(instances))
	copy(kept, instances)

	// Stable order: lowest capacity first, unknown defs first (they carry
	// no budget and are the first to go).
	sort.SliceStable(kept, func(i, j int) bool {
		return capacityOf(kept[i].ID) < capacityOf(kept[j].ID)
	})

	total := 0
	for _, inst := range kept {
		total += capacityOf(inst.ID)
	}

	for (len(kept) > MaxActive || total > MaxCapacity) && len(kept) > 0 {
		victim := kept[0]
		kept = kept[1:]
		total -= capacityOf(victim.ID)
		evicted = append(evicted, victim.ID)
	}
	return kept, evicted
}

func capacityOf(id ID) int {
	if def, ok := Get(id); ok {
		return def.Capacity
	}
	return 0
}
