package battle

import "github.com/pthm-cable/crucible/genome"

// EndReason is the terminal state of a battle. Exactly one applies.
type EndReason uint8

const (
	EndEnemyKilled EndReason = iota
	EndWeaponDestroyed
	EndWeaponSelfDestructed
	EndTimeout
)

// String returns the end reason tag.
func (r EndReason) String() string {
	switch r {
	case EndEnemyKilled:
		return "enemy_killed"
	case EndWeaponDestroyed:
		return "weapon_destroyed"
	case EndWeaponSelfDestructed:
		return "weapon_self_destructed"
	default:
		return "timeout"
	}
}

// Action tags what a log entry records.
type Action uint8

const (
	ActionAttack Action = iota
	ActionSkill
	ActionDefend
	ActionEffect // trait side effects: berserk, thorns, decay, self-destruct
)

// String returns the action tag.
func (a Action) String() string {
	switch a {
	case ActionSkill:
		return "skill"
	case ActionDefend:
		return "defend"
	case ActionEffect:
		return "effect"
	default:
		return "attack"
	}
}

// LogEntry is one time-stamped battle event, intended for incremental
// display. Programmatic consumers should branch on Result.Won and
// Result.EndReason, not on log contents.
type LogEntry struct {
	Time    float64
	Actor   Actor
	Action  Action
	Message string

	Damage  float64
	Crit    bool
	Evaded  bool
	Element genome.Element
}

// Result aggregates one battle. Transient output: the caller persists or
// displays it but the engine never reads it back.
type Result struct {
	Won       bool
	EndReason EndReason
	Duration  float64

	Log []LogEntry

	DamageDealt float64 // weapon -> enemy
	DamageTaken float64 // enemy -> weapon
	DamageRatio float64

	// AdaptationScore is the fraction of the weapon's raw potential damage
	// that was not blocked by enemy resistance, accumulated over the whole
	// battle.
	AdaptationScore float64

	WeaponHP    float64
	WeaponMaxHP float64
	EnemyHP     float64
	EnemyMaxHP  float64
}
