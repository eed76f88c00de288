package battle

import "github.com/pthm-cable/crucible/genome"

// mutationSkill is one of five fixed skills a combatant with a non-none
// special ability can trigger in place of a plain skill strike.
type mutationSkill struct {
	name       string
	multiplier float64
	element    genome.Element
	forced     bool // true: damage resolves against element above, not the actor's
}

var mutationSkills = []mutationSkill{
	{name: "Void Rend", multiplier: 2.2},
	{name: "Pyroclasm", multiplier: 1.8, element: genome.ElementFire, forced: true},
	{name: "Glacial Spike", multiplier: 1.7, element: genome.ElementIce, forced: true},
	{name: "Storm Surge", multiplier: 1.9, element: genome.ElementLightning, forced: true},
	{name: "Gene Burst", multiplier: 2.5},
}
