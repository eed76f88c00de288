// Package sim provides decision-support statistics on top of the battle
// engine: fast N-battle aggregation without logging, survival prediction,
// and single-battle fitness scoring.
package sim

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/crucible/battle"
	"github.com/pthm-cable/crucible/evolution"
	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/traits"
)

// Summary aggregates a batch of silent battles. Kill-time statistics cover
// wins only; with zero wins they are all zero.
type Summary struct {
	Battles int
	Wins    int
	Losses  int
	WinRate float64

	AvgKillTime   float64
	BestKillTime  float64
	WorstKillTime float64
	KillTimeStdev float64

	AvgDamageRatio float64
	AvgAdaptation  float64
}

// Simulate runs count battles between the two genomes at the given stage
// base, with logging disabled, and aggregates the outcomes. It mutates no
// persistent state. count below 1 returns an explicit zero-valued summary
// rather than propagating NaN.
func Simulate(rng *rand.Rand, weaponGenome, enemyGenome genome.Genome, stageBase float64, count int) Summary {
	enemy := battle.LoadoutForGenome(enemyGenome, stageBase)
	return runBatch(rng, battle.LoadoutForGenome(weaponGenome, stageBase), count,
		func(int) traits.Loadout { return enemy })
}

// PredictSurvival estimates the weapon's odds against what the adaptive
// generator would actually send at the given stage. Spawning reads the
// archive without mutating it, so repeated predictions are side-effect
// free.
func PredictSurvival(rng *rand.Rand, weaponGenome genome.Genome, ev *evolution.Evolution, stage int, stageBase float64, count int) Summary {
	return runBatch(rng, battle.LoadoutForGenome(weaponGenome, stageBase), count,
		func(int) traits.Loadout {
			return battle.LoadoutForGenome(ev.SpawnEnemy(stage).Genome, stageBase)
		})
}

// runBatch executes count silent battles, drawing each opponent from
// nextEnemy, and folds the results into a Summary.
func runBatch(rng *rand.Rand, weapon traits.Loadout, count int, nextEnemy func(i int) traits.Loadout) Summary {
	if count < 1 {
		return Summary{}
	}

	engine := battle.NewSilent(rng)

	var killTimes []float64
	ratios := make([]float64, 0, count)
	adapts := make([]float64, 0, count)
	wins := 0

	for i := 0; i < count; i++ {
		res := engine.Run(weapon, nextEnemy(i))
		if res.Won {
			wins++
			killTimes = append(killTimes, res.Duration)
		}
		ratios = append(ratios, res.DamageRatio)
		adapts = append(adapts, res.AdaptationScore)
	}

	s := Summary{
		Battles:        count,
		Wins:           wins,
		Losses:         count - wins,
		WinRate:        float64(wins) / float64(count),
		AvgDamageRatio: stat.Mean(ratios, nil),
		AvgAdaptation:  stat.Mean(adapts, nil),
	}
	if len(killTimes) > 0 {
		s.AvgKillTime = stat.Mean(killTimes, nil)
		s.BestKillTime = killTimes[0]
		s.WorstKillTime = killTimes[0]
		for _, t := range killTimes {
			if t < s.BestKillTime {
				s.BestKillTime = t
			}
			if t > s.WorstKillTime {
				s.WorstKillTime = t
			}
		}
		if len(killTimes) > 1 {
			s.KillTimeStdev = stat.StdDev(killTimes, nil)
		}
	}
	return s
}
