package evolution

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/crucible/config"
	"github.com/pthm-cable/crucible/genome"
)

// CounterReport summarizes how the opponent population is adapting. It is
// derived from the same dominant-element computation the spawners use, so
// it always describes what they actually did.
type CounterReport struct {
	Stage           int
	Adapting        bool
	DominantElement genome.Element
	DominantDamage  float64
	ElementDamage   map[genome.Element]float64
	ResistBoost     float64
	ArchiveSize     int
}

// GenerateCounterReport produces the current adaptation summary for a stage.
func (ev *Evolution) GenerateCounterReport(stage int) CounterReport {
	cfg := config.Cfg()

	dmg := make(map[genome.Element]float64, len(genome.Elements))
	for _, el := range genome.Elements {
		dmg[el] = ev.damage[el]
	}

	rep := CounterReport{
		Stage:         stage,
		ElementDamage: dmg,
		ArchiveSize:   len(ev.archive),
	}
	if el, total, ok := ev.DominantElement(); ok {
		rep.Adapting = true
		rep.DominantElement = el
		rep.DominantDamage = total
		rep.ResistBoost = cfg.Evolution.ResistBoost
	}
	return rep
}

// String renders the report for display.
func (r CounterReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stage %d threat assessment\n", r.Stage)
	if !r.Adapting {
		b.WriteString("  No combat data observed yet; enemies follow the baseline curve.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  Dominant player element: %s (%.0f total damage)\n", r.DominantElement, r.DominantDamage)
	fmt.Fprintf(&b, "  Enemy %s resistance reinforced by %.0f%%\n", r.DominantElement, r.ResistBoost*100)
	fmt.Fprintf(&b, "  Archive lineage: %d defeated champions\n", r.ArchiveSize)
	return b.String()
}
