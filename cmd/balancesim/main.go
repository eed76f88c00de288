// Package main provides a headless balance sweep: it simulates batches of
// battles across a stage range and writes per-stage win-rate statistics to
// CSV for tuning the difficulty curve.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/crucible/config"
	"github.com/pthm-cable/crucible/evolution"
	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/sim"
	"github.com/pthm-cable/crucible/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Balance config YAML file (empty = use defaults)")
	seed := flag.Int64("seed", 1, "Base RNG seed; each stage derives its own")
	stages := flag.Int("stages", 30, "Number of stages to sweep")
	battles := flag.Int("battles", 0, "Battles per stage (0 = config default)")
	outputDir := flag.String("output", "", "Output directory for results.csv (empty = stdout only)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	count := *battles
	if count <= 0 {
		count = cfg.Sim.DefaultBattles
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("failed to create output: %v", err)
	}
	defer om.Close()

	rows := make([]telemetry.BatchRow, *stages)

	// Stages are independent: each gets its own RNG and adaptive generator,
	// so the sweep parallelizes cleanly.
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < *stages; i++ {
		stage := i + 1
		g.Go(func() error {
			rng := rand.New(rand.NewSource(*seed + int64(stage)))
			ev := evolution.New(rng)

			weapon := genome.NewStageGenome(rng, stage)
			spawn := ev.SpawnEnemy(stage)

			summary := sim.Simulate(rng, weapon, spawn.Genome, cfg.Genome.StageBase, count)

			row := telemetry.RowFromSummary(stage, summary)
			row.WeaponRating = genome.Rating(weapon).String()
			row.EnemySpecies = spawn.Species.String()
			rows[stage-1] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("sweep failed: %v", err)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Stage < rows[j].Stage })
	if err := om.WriteRows(rows); err != nil {
		log.Fatalf("failed to write results: %v", err)
	}

	fmt.Printf("%-6s %-8s %-9s %-13s %-8s %-8s\n",
		"stage", "rating", "win_rate", "avg_kill_time", "ratio", "species")
	for _, r := range rows {
		fmt.Printf("%-6d %-8s %-9.2f %-13.2f %-8.2f %-8s\n",
			r.Stage, r.WeaponRating, r.WinRate, r.AvgKillTime, r.AvgDamageRatio, r.EnemySpecies)
	}

	p25, p50, p75 := telemetry.WinRateQuartiles(rows)
	fmt.Printf("\nwin rate quartiles: p25=%.2f p50=%.2f p75=%.2f\n", p25, p50, p75)
	if dir := om.Dir(); dir != "" {
		fmt.Printf("results written to %s/results.csv\n", dir)
	}
}
