package evolution

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/crucible/config"
	"github.com/pthm-cable/crucible/genome"
)

// bossName pairs a milestone boss's proper name with its title.
type bossName struct {
	Name  string
	Title string
}

// Named bosses appear at every 10th stage. Stages without an entry get a
// generic guardian.
var bossTable = map[int]bossName{
	10: {"Vyrkolath", "Warden of the First Gate"},
	20: {"Ignis Maw", "Furnace of the Deep"},
	30: {"Seraphine", "Mirror of Blades"},
	40: {"Hollow King", "Crown of Ruin"},
	50: {"Ouroboros Prime", "The Final Helix"},
}

// SpawnBoss generates a stage boss: same archive lineage as regular spawns
// but with lower mutation, multiplied attack and HP genes, and a stronger
// counter-resistance against the player's dominant element.
func (ev *Evolution) SpawnBoss(stage int) Spawn {
	cfg := config.Cfg()

	var g genome.Genome
	evolved := len(ev.archive) >= 2
	if evolved {
		g = ev.evolveGenome(stage, cfg.Evolution.BossMutation)
	} else {
		g = genome.NewStageGenome(ev.rng, stage)
	}

	mult := cfg.Evolution.BossMultiplier
	if stage >= cfg.Evolution.FinalStage {
		mult = cfg.Evolution.FinalMultiplier
	}
	g[genome.GeneAttack] = genome.Clamp(g[genome.GeneAttack] * mult)
	g[genome.GeneMaxHP] = genome.Clamp(g[genome.GeneMaxHP] * mult)

	g = ev.counterResist(g, cfg.Evolution.BossResistBoost)

	sp := Spawn{Genome: g, Boss: true, Evolved: evolved}
	if named, ok := bossTable[stage]; ok {
		sp.Name = named.Name
		sp.Title = named.Title
	} else {
		sp.Name = fmt.Sprintf("Stage %d Guardian", stage)
	}

	slog.Debug("boss spawned", "stage", stage, "name", sp.Name, "evolved", evolved)
	return sp
}
