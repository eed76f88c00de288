// Package battle simulates one tick-based battle between two decoded
// combatants: deterministic intervals, stochastic outcomes, structured log.
package battle

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/crucible/config"
	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/traits"
)

// Engine runs battles. One engine per session; a seeded RNG replays any
// battle exactly given identical loadouts.
type Engine struct {
	rng     *rand.Rand
	logging bool
}

// New creates a battle engine with logging enabled.
func New(rng *rand.Rand) *Engine {
	return &Engine{rng: rng, logging: true}
}

// NewSilent creates an engine that skips log entries. Used by the fast
// simulator where only aggregates matter.
func NewSilent(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// battleState carries the per-run accumulation that ends up in Result.
type battleState struct {
	weapon *combatant
	enemy  *combatant

	log []LogEntry

	dealt float64
	taken float64

	// Adaptation tracking: raw attempted weapon damage vs what survived
	// resistance, accumulated across the whole battle.
	attemptedRaw  float64
	throughResist float64

	over      bool
	endReason EndReason
}

// Run simulates one battle to completion within this call. The weapon acts
// first each tick. Always returns within Derived.MaxTicks ticks.
func (e *Engine) Run(weapon, enemy traits.Loadout) *Result {
	cfg := config.Cfg()
	dt := cfg.Battle.TickInterval

	st := &battleState{
		weapon: newCombatant(ActorWeapon, weapon),
		enemy:  newCombatant(ActorEnemy, enemy),
	}

	var t float64
	for tick := 0; tick < cfg.Derived.MaxTicks && !st.over; tick++ {
		t = float64(tick) * dt

		e.upkeep(st, st.weapon, t, dt)
		e.upkeep(st, st.enemy, t, dt)
		e.checkDeath(st, t)
		if st.over {
			break
		}

		st.weapon.cooldown -= dt
		st.enemy.cooldown -= dt

		if st.weapon.cooldown <= 0 {
			st.weapon.cooldown = st.weapon.stats.AttackSpeed
			e.act(st, st.weapon, st.enemy, t)
			e.checkDeath(st, t)
			if st.over {
				break
			}
		}
		if st.enemy.cooldown <= 0 {
			st.enemy.cooldown = st.enemy.stats.AttackSpeed
			e.act(st, st.enemy, st.weapon, t)
			e.checkDeath(st, t)
		}
	}

	if !st.over {
		st.endReason = EndTimeout
		t = cfg.Battle.MaxDuration
	}

	return e.result(st, t)
}

// upkeep applies per-tick trait effects before anyone acts: incoming DoT,
// HP decay, and berserk activation.
func (e *Engine) upkeep(st *battleState, c *combatant, t, dt float64) {
	if c.dotTime > 0 {
		c.hp -= c.dotDPS * dt
		c.dotTime -= dt
		if c.actor == ActorEnemy {
			st.dealt += c.dotDPS * dt
		} else {
			st.taken += c.dotDPS * dt
		}
	}

	if c.hpDecayPerSec > 0 {
		c.hp -= c.stats.MaxHP * c.hpDecayPerSec * dt
	}

	if c.berserkThreshold > 0 && !c.berserkActive && c.hpRatio() < c.berserkThreshold {
		c.berserkActive = true
		c.stats.Attack *= 2
		c.stats.Defense = 0
		e.log(st, LogEntry{
			Time: t, Actor: c.actor, Action: ActionEffect,
			Message: fmt.Sprintf("%s goes berserk: attack doubled, defense shattered", c.actor),
		})
	}
}

// act selects and performs one action via the combatant's AI weights.
// Defense weight amplifies up to PanicDefenseMax as HP drops below the
// panic threshold.
func (e *Engine) act(st *battleState, actor, target *combatant, t float64) {
	cfg := config.Cfg()

	wAttack := actor.stats.Aggression
	wDefend := actor.stats.Caution
	wSkill := actor.stats.Tactics

	if ratio := actor.hpRatio(); ratio < cfg.Battle.PanicThreshold {
		amp := 1 + (cfg.Battle.PanicDefenseMax-1)*(cfg.Battle.PanicThreshold-ratio)/cfg.Battle.PanicThreshold
		wDefend *= amp
	}

	pick := e.rng.Float64() * (wAttack + wDefend + wSkill)
	switch {
	case pick < wAttack:
		e.strike(st, actor, target, t, 1.0, actor.stats.Element, ActionAttack, "")
	case pick < wAttack+wSkill:
		e.skill(st, actor, target, t)
	default:
		e.defend(st, actor, t)
	}
}

// skill resolves a skill action: a boosted strike that can upgrade into one
// of the fixed mutation skills when the actor has a special ability.
func (e *Engine) skill(st *battleState, actor, target *combatant, t float64) {
	cfg := config.Cfg()
	mult := cfg.Battle.SkillMultiplier
	element := actor.stats.Element
	name := ""

	if actor.stats.Special != genome.SpecialNone && e.rng.Float64() < cfg.Battle.SkillProcChance {
		ms := mutationSkills[e.rng.Intn(len(mutationSkills))]
		mult = ms.multiplier
		name = ms.name
		if ms.forced {
			element = ms.element
		}
	}
	e.strike(st, actor, target, t, mult, element, ActionSkill, name)
}

// strike resolves one damaging action: evade roll, variance, crit roll,
// resistance, defense, then trait side effects around the hit.
func (e *Engine) strike(st *battleState, actor, target *combatant, t, mult float64, element genome.Element, action Action, skillName string) {
	cfg := config.Cfg()

	if e.rng.Float64() < target.stats.EvadeChance {
		e.log(st, LogEntry{
			Time: t, Actor: actor.actor, Action: action, Evaded: true, Element: element,
			Message: fmt.Sprintf("%s evades the %s", target.actor, action),
		})
		return
	}

	raw := actor.stats.Attack * mult * (0.9 + e.rng.Float64()*0.2)
	crit := e.rng.Float64() < actor.stats.CritChance
	if crit {
		raw *= 2
	}

	resist := target.stats.Resist(element)
	afterResist := raw * (1 - resist*cfg.Battle.ResistFactor)
	damage := afterResist - target.stats.Defense*0.3
	if damage < 1 {
		damage = 1
	}
	target.hp -= damage

	if actor.actor == ActorWeapon {
		st.dealt += damage
		st.attemptedRaw += raw
		st.throughResist += afterResist
	} else {
		st.taken += damage
	}

	msg := fmt.Sprintf("%s hits %s for %.1f %s damage", actor.actor, target.actor, damage, element)
	if skillName != "" {
		msg = fmt.Sprintf("%s unleashes %s on %s for %.1f %s damage", actor.actor, skillName, target.actor, damage, element)
	}
	if crit {
		msg += " (critical)"
	}
	e.log(st, LogEntry{
		Time: t, Actor: actor.actor, Action: action,
		Damage: damage, Crit: crit, Element: element, Message: msg,
	})

	// Trait side effects around the core hit.
	if actor.actor == ActorWeapon {
		e.afterWeaponHit(st, actor, target, t, damage)
	} else {
		e.afterWeaponStruck(st, target, actor, t, damage)
	}
}

// afterWeaponHit triggers the weapon's on-hit traits: lifesteal and
// damage-over-time applied to the enemy.
func (e *Engine) afterWeaponHit(st *battleState, weapon, enemy *combatant, t, damage float64) {
	cfg := config.Cfg()

	if weapon.lifesteal > 0 {
		heal := damage * weapon.lifesteal
		weapon.heal(heal)
		e.log(st, LogEntry{
			Time: t, Actor: ActorWeapon, Action: ActionEffect, Damage: heal,
			Message: fmt.Sprintf("weapon drains %.1f HP", heal),
		})
	}
	if weapon.dotOnHit > 0 {
		enemy.dotDPS = weapon.stats.Attack * weapon.dotOnHit
		enemy.dotTime = cfg.Battle.DotDuration
		e.log(st, LogEntry{
			Time: t, Actor: ActorWeapon, Action: ActionEffect,
			Message: fmt.Sprintf("enemy is poisoned for %.1f damage per second", enemy.dotDPS),
		})
	}
}

// afterWeaponStruck triggers the weapon's on-hit-taken traits: thorn
// reflection and the self-destruct gamble.
func (e *Engine) afterWeaponStruck(st *battleState, weapon, enemy *combatant, t, damage float64) {
	if weapon.thornDamage > 0 {
		reflected := damage * weapon.thornDamage
		enemy.hp -= reflected
		st.dealt += reflected
		e.log(st, LogEntry{
			Time: t, Actor: ActorWeapon, Action: ActionEffect, Damage: reflected,
			Message: fmt.Sprintf("thorns reflect %.1f damage", reflected),
		})
	}

	if weapon.selfDestructChance > 0 && e.rng.Float64() < weapon.selfDestructChance {
		burst := weapon.stats.Attack * 3
		enemy.hp -= burst
		st.dealt += burst
		weapon.hp = 0
		e.log(st, LogEntry{
			Time: t, Actor: ActorWeapon, Action: ActionEffect, Damage: burst,
			Message: fmt.Sprintf("weapon core detonates for %.1f damage", burst),
		})
		// Death checks settle who the detonation favored: if the burst
		// killed the enemy first, the kill stands.
		if !st.over && !dead(enemy) {
			st.over = true
			st.endReason = EndWeaponSelfDestructed
		}
	}
}

// defend heals a fraction of max HP.
func (e *Engine) defend(st *battleState, actor *combatant, t float64) {
	cfg := config.Cfg()
	heal := actor.stats.MaxHP * cfg.Battle.DefendHeal
	actor.heal(heal)
	e.log(st, LogEntry{
		Time: t, Actor: actor.actor, Action: ActionDefend, Damage: heal,
		Message: fmt.Sprintf("%s braces and recovers %.1f HP", actor.actor, heal),
	})
}

// dead uses an epsilon threshold rather than exact zero so floating-point
// drift can never leave a corpse standing.
func dead(c *combatant) bool {
	return c.hp < config.Cfg().Battle.DeathEpsilon
}

// checkDeath is the single idempotent death check, run after every
// stat-affecting event. The first side found below the threshold ends the
// battle; there is no simultaneous-death special case beyond check order.
func (e *Engine) checkDeath(st *battleState, t float64) {
	if st.over {
		return
	}
	if dead(st.enemy) {
		st.enemy.hp = 0
		st.over = true
		st.endReason = EndEnemyKilled
		e.log(st, LogEntry{Time: t, Actor: ActorEnemy, Action: ActionEffect, Message: "enemy destroyed"})
		return
	}
	if dead(st.weapon) {
		st.weapon.hp = 0
		st.over = true
		st.endReason = EndWeaponDestroyed
		e.log(st, LogEntry{Time: t, Actor: ActorWeapon, Action: ActionEffect, Message: "weapon destroyed"})
	}
}

// result assembles the aggregate output.
func (e *Engine) result(st *battleState, duration float64) *Result {
	ratio := st.dealt
	if st.taken > 0 {
		ratio = st.dealt / st.taken
	}

	adaptation := 0.0
	if st.attemptedRaw > 0 {
		adaptation = st.throughResist / st.attemptedRaw
	}

	if st.weapon.hp < 0 {
		st.weapon.hp = 0
	}
	if st.enemy.hp < 0 {
		st.enemy.hp = 0
	}

	return &Result{
		Won:             st.endReason == EndEnemyKilled,
		EndReason:       st.endReason,
		Duration:        duration,
		Log:             st.log,
		DamageDealt:     st.dealt,
		DamageTaken:     st.taken,
		DamageRatio:     ratio,
		AdaptationScore: adaptation,
		WeaponHP:        st.weapon.hp,
		WeaponMaxHP:     st.weapon.stats.MaxHP,
		EnemyHP:         st.enemy.hp,
		EnemyMaxHP:      st.enemy.stats.MaxHP,
	}
}

func (e *Engine) log(st *battleState, entry LogEntry) {
	if !e.logging {
		return
	}
	st.log = append(st.log, entry)
}
