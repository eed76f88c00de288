// Package main runs one fully logged exhibition battle: it breeds a weapon
// from two stage-seeded parents, spawns an adapted enemy, prints the battle
// log, and scores the outcome.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/pthm-cable/crucible/battle"
	"github.com/pthm-cable/crucible/config"
	"github.com/pthm-cable/crucible/evolution"
	"github.com/pthm-cable/crucible/genetics"
	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/item"
	"github.com/pthm-cable/crucible/sim"
)

func main() {
	configPath := flag.String("config", "", "Balance config YAML file (empty = use defaults)")
	seed := flag.Int64("seed", 1, "RNG seed; identical seeds replay identical battles")
	stage := flag.Int("stage", 5, "Stage to fight at")
	boss := flag.Bool("boss", false, "Fight the stage boss instead of a regular spawn")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	rng := rand.New(rand.NewSource(*seed))
	engine := genetics.New(rng)
	ev := evolution.New(rng)

	parentA := item.NewStarter("starter-a")
	parentB := item.NewCaptured(rng, genome.NewStageGenome(rng, *stage), 1)
	child := engine.Breed(parentA, parentB, 0.1, nil, nil)

	var spawn evolution.Spawn
	if *boss {
		spawn = ev.SpawnBoss(*stage)
	} else {
		spawn = ev.SpawnEnemy(*stage)
	}

	fmt.Printf("weapon: %s (gen %d, rating %s)\n", child.Name, child.Generation, child.Rating())
	if spawn.Name != "" {
		fmt.Printf("enemy:  %s", spawn.Name)
		if spawn.Title != "" {
			fmt.Printf(", %s", spawn.Title)
		}
		fmt.Printf(" [%s]\n", spawn.Species)
	} else {
		fmt.Printf("enemy:  stage %d %s\n", *stage, spawn.Species)
	}
	fmt.Println()

	weapon := battle.LoadoutForItem(child, cfg.Genome.StageBase)
	enemy := battle.LoadoutForGenome(spawn.Genome, cfg.Genome.StageBase)

	res := battle.New(rng).Run(weapon, enemy)
	for _, entry := range res.Log {
		fmt.Printf("[%5.1fs] %s\n", entry.Time, entry.Message)
	}

	fmt.Printf("\nresult: %s (%.1fs)\n", res.EndReason, res.Duration)
	fmt.Printf("damage dealt %.1f / taken %.1f (ratio %.2f, adaptation %.2f)\n",
		res.DamageDealt, res.DamageTaken, res.DamageRatio, res.AdaptationScore)

	score := sim.Score(res)
	fmt.Printf("fitness: total %.1f (kill %.1f, efficiency %.1f, adaptation %.1f, survival %.1f)\n",
		score.Total, score.KillTime, score.Efficiency, score.Adaptation, score.Survival)
	if gain := sim.MasteryGain(score.Total); gain > 0 {
		fmt.Printf("mastery gained: +%.0f\n", gain)
	}
}
