package sim

import (
	"math"

	"github.com/pthm-cable/crucible/battle"
)

// Fitness axis weights. Fixed: kill speed dominates, survival and
// efficiency follow, adaptation is a minor signal.
const (
	weightKillTime   = 0.35
	weightEfficiency = 0.30
	weightAdaptation = 0.15
	weightSurvival   = 0.20
)

// FitnessBreakdown scores one battle result on four axes, each in [0,100],
// plus the weighted total.
type FitnessBreakdown struct {
	KillTime   float64
	Efficiency float64
	Adaptation float64
	Survival   float64
	Total      float64
}

// Score rates a single battle result. Pure: depends only on the result's
// aggregate fields.
func Score(res *battle.Result) FitnessBreakdown {
	var b FitnessBreakdown

	if res.Won {
		// Inverse of kill time; a zero-duration kill pins to the cap
		// instead of dividing by zero.
		if res.Duration <= 0 {
			b.KillTime = 100
		} else {
			b.KillTime = math.Min(100, 300/res.Duration)
		}

		if res.WeaponMaxHP > 0 {
			b.Survival = clamp100(res.WeaponHP / res.WeaponMaxHP * 100)
		}
	}

	b.Efficiency = math.Min(100, res.DamageRatio*20)
	b.Adaptation = math.Min(100, res.AdaptationScore*100)

	b.Total = b.KillTime*weightKillTime +
		b.Efficiency*weightEfficiency +
		b.Adaptation*weightAdaptation +
		b.Survival*weightSurvival
	return b
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// MasteryGain converts a fitness total into a mastery delta: strong
// performances teach, mediocre ones do not.
func MasteryGain(total float64) float64 {
	switch {
	case total >= 80:
		return 3
	case total >= 50:
		return 2
	default:
		return 0
	}
}
