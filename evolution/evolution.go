// Package evolution adapts the opponent population to observed player
// behavior. It keeps a bounded archive of the fittest defeated enemies and a
// cumulative per-element damage map, and breeds new enemies biased against
// the player's dominant strategy.
package evolution

import (
	"log/slog"
	"math/rand"
	"sort"

	"github.com/pthm-cable/crucible/config"
	"github.com/pthm-cable/crucible/genetics"
	"github.com/pthm-cable/crucible/genome"
)

// ArchiveEntry is one defeated enemy kept for future breeding.
type ArchiveEntry struct {
	Genome  genome.Genome `yaml:"genome"`
	Fitness float64       `yaml:"fitness"`
}

// Species is the post-hoc speciation role assigned to a spawned enemy,
// independent of lineage.
type Species uint8

const (
	SpeciesStandard Species = iota
	SpeciesTank
	SpeciesAttacker
)

// String returns the species name.
func (s Species) String() string {
	switch s {
	case SpeciesTank:
		return "tank"
	case SpeciesAttacker:
		return "attacker"
	default:
		return "standard"
	}
}

// Spawn is one generated opponent.
type Spawn struct {
	Genome  genome.Genome
	Species Species
	Boss    bool
	Name    string
	Title   string
	Evolved bool // bred from the archive rather than stage-generated
}

// Evolution owns the per-session adaptive state. Single-owner mutable
// struct: one instance per play session, never shared across concurrent
// battles.
type Evolution struct {
	rng     *rand.Rand
	engine  *genetics.Engine
	archive []ArchiveEntry // sorted descending by fitness, bounded
	damage  map[genome.Element]float64
}

// New creates an adaptive generator around the given random source.
func New(rng *rand.Rand) *Evolution {
	return &Evolution{
		rng:    rng,
		engine: genetics.New(rng),
		damage: make(map[genome.Element]float64),
	}
}

// RecordPlayerDamage accumulates the player's elemental damage output. This
// feeds the dominant-element computation every spawn consults.
func (ev *Evolution) RecordPlayerDamage(el genome.Element, amount float64) {
	if amount > 0 {
		ev.damage[el] += amount
	}
}

// RecordDefeatedEnemy considers a dead enemy for the archive. The archive
// stays sorted descending by fitness and bounded at the configured size;
// a full archive admits only entries that beat its weakest member.
func (ev *Evolution) RecordDefeatedEnemy(g genome.Genome, fitness float64) {
	maxSize := config.Cfg().Evolution.ArchiveSize

	idx := sort.Search(len(ev.archive), func(i int) bool {
		return ev.archive[i].Fitness < fitness
	})
	if len(ev.archive) >= maxSize && idx >= maxSize {
		return
	}

	ev.archive = append(ev.archive, ArchiveEntry{})
	copy(ev.archive[idx+1:], ev.archive[idx:])
	ev.archive[idx] = ArchiveEntry{Genome: g, Fitness: fitness}

	if len(ev.archive) > maxSize {
		ev.archive = ev.archive[:maxSize]
	}
	slog.Debug("enemy archived", "fitness", fitness, "archive_size", len(ev.archive))
}

// ArchiveSize returns the number of archived genomes.
func (ev *Evolution) ArchiveSize() int {
	return len(ev.archive)
}

// Archive returns a copy of the archive for the save layer.
func (ev *Evolution) Archive() []ArchiveEntry {
	out := make([]ArchiveEntry, len(ev.archive))
	copy(out, ev.archive)
	return out
}

// RestoreArchive replaces the archive from saved data, re-sorting and
// re-bounding so repaired saves cannot corrupt the invariants.
func (ev *Evolution) RestoreArchive(entries []ArchiveEntry) {
	maxSize := config.Cfg().Evolution.ArchiveSize
	ev.archive = make([]ArchiveEntry, len(entries))
	copy(ev.archive, entries)
	sort.SliceStable(ev.archive, func(i, j int) bool {
		return ev.archive[i].Fitness > ev.archive[j].Fitness
	})
	if len(ev.archive) > maxSize {
		ev.archive = ev.archive[:maxSize]
	}
}

// DominantElement returns the element the player has dealt the most
// cumulative damage with. ok is false before any damage was recorded.
func (ev *Evolution) DominantElement() (el genome.Element, total float64, ok bool) {
	for _, e := range genome.Elements {
		if ev.damage[e] > total {
			el = e
			total = ev.damage[e]
			ok = true
		}
	}
	return el, total, ok
}

// selectArchived roulette-selects one archive entry by fitness.
func (ev *Evolution) selectArchived() ArchiveEntry {
	var total float64
	for _, entry := range ev.archive {
		total += entry.Fitness + 0.01
	}
	pick := ev.rng.Float64() * total
	for _, entry := range ev.archive {
		pick -= entry.Fitness + 0.01
		if pick <= 0 {
			return entry
		}
	}
	return ev.archive[len(ev.archive)-1]
}

// evolveGenome breeds two archive members and pulls weak genes up toward the
// stage quality floor, so archive lineage never lags the difficulty curve.
func (ev *Evolution) evolveGenome(stage int, mutationRate float64) genome.Genome {
	cfg := config.Cfg()

	a := ev.selectArchived()
	b := ev.selectArchived()
	g := ev.engine.Crossover(a.Genome, b.Genome)
	g = ev.engine.Mutate(g, mutationRate, stage, nil)

	floor := genome.StageQuality(stage) * cfg.Evolution.QualityPull
	for i := range g {
		if g[i] < floor {
			g[i] = floor
		}
	}
	return g
}

// counterResist boosts the spawn's resistance against the player's dominant
// element. No-op until damage has been observed.
func (ev *Evolution) counterResist(g genome.Genome, amount float64) genome.Genome {
	el, _, ok := ev.DominantElement()
	if !ok {
		return g
	}
	return genome.BoostResistance(g, el, amount)
}

// SpawnEnemy generates one opponent for the stage. With at least two
// archived genomes the enemy is bred from the archive; otherwise it is pure
// stage-generated. A speciation roll then reshapes the genome independent
// of lineage.
func (ev *Evolution) SpawnEnemy(stage int) Spawn {
	cfg := config.Cfg()

	var g genome.Genome
	evolved := len(ev.archive) >= 2
	if evolved {
		g = ev.evolveGenome(stage, cfg.Evolution.MutationRate)
		g = ev.counterResist(g, cfg.Evolution.ResistBoost)
	} else {
		g = genome.NewStageGenome(ev.rng, stage)
	}

	sp := Spawn{Genome: g, Evolved: evolved}
	ev.speciate(&sp)
	return sp
}

// speciate applies the post-hoc species roll: tank, attacker, or standard.
func (ev *Evolution) speciate(sp *Spawn) {
	cfg := config.Cfg()
	roll := ev.rng.Float64()
	g := sp.Genome

	switch {
	case roll < cfg.Evolution.TankChance:
		sp.Species = SpeciesTank
		g[genome.GeneMaxHP] = genome.Clamp(g[genome.GeneMaxHP] * 1.8)
		g[genome.GeneAttack] = genome.Clamp(g[genome.GeneAttack] * 0.5)
		g[genome.GeneDefense] = genome.Clamp(g[genome.GeneDefense] + 0.3)
		g[genome.GeneFireResist] = genome.Clamp(g[genome.GeneFireResist] + 0.1)
		g[genome.GeneIceResist] = genome.Clamp(g[genome.GeneIceResist] + 0.1)
	case roll < cfg.Evolution.TankChance+cfg.Evolution.AttackerChance:
		sp.Species = SpeciesAttacker
		g[genome.GeneMaxHP] = genome.Clamp(g[genome.GeneMaxHP] * 0.5)
		g[genome.GeneAttack] = genome.Clamp(g[genome.GeneAttack] * 2.0)
		g[genome.GeneSpeed] = genome.Clamp(g[genome.GeneSpeed] + 0.2)
		g[genome.GeneAggression] = genome.Clamp(g[genome.GeneAggression] + 0.3)
	default:
		sp.Species = SpeciesStandard
	}
	sp.Genome = g
}
