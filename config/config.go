// Package config provides configuration loading and access for the
// simulation core. All tunable balance knobs live here; formula shapes stay
// in their packages.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation balance parameters.
type Config struct {
	Battle    BattleConfig    `yaml:"battle"`
	Genome    GenomeConfig    `yaml:"genome"`
	Breeding  BreedingConfig  `yaml:"breeding"`
	Traits    TraitsConfig    `yaml:"traits"`
	Evolution EvolutionConfig `yaml:"evolution"`
	Sim       SimConfig       `yaml:"sim"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// BattleConfig holds tick-loop and combat resolution parameters.
type BattleConfig struct {
	TickInterval    float64 `yaml:"tick_interval"`     // seconds per tick
	MaxDuration     float64 `yaml:"max_duration"`      // battle timeout in seconds
	SkillMultiplier float64 `yaml:"skill_multiplier"`  // skill damage vs plain attack
	SkillProcChance float64 `yaml:"skill_proc_chance"` // mutation-skill trigger chance
	DefendHeal      float64 `yaml:"defend_heal"`       // fraction of max HP healed per defend
	ResistFactor    float64 `yaml:"resist_factor"`     // how much of resistance applies to damage
	PanicThreshold  float64 `yaml:"panic_threshold"`   // HP ratio below which defense weight amplifies
	PanicDefenseMax float64 `yaml:"panic_defense_max"` // max defense-weight amplification
	DeathEpsilon    float64 `yaml:"death_epsilon"`     // HP below this counts as dead
	DotDuration     float64 `yaml:"dot_duration"`      // seconds a trait DoT persists
}

// GenomeConfig holds genome-wide numeric parameters.
type GenomeConfig struct {
	SoftCapTotal float64 `yaml:"soft_cap_total"` // gene sum above which compression starts
	SoftCapRate  float64 `yaml:"soft_cap_rate"`  // 1.0 lands exactly on the cap (idempotent)
	StageBase    float64 `yaml:"stage_base"`     // stat scalar per stage unit
}

// BreedingConfig holds the breed transaction's stochastic parameters.
type BreedingConfig struct {
	MutationEscalation float64 `yaml:"mutation_escalation"` // per-generation mutation rate growth
	TraitMutationRoll  float64 `yaml:"trait_mutation_roll"` // chance of a fresh mutation trait
	FatigueBase        float64 `yaml:"fatigue_base"`        // per-breed-use fatigue factor
	FatigueExponent    float64 `yaml:"fatigue_exponent"`
	HighMastery        float64 `yaml:"high_mastery"`     // mastery floor for breeding perks
	FatigueRelief      float64 `yaml:"fatigue_relief"`   // fatigue reduction at high mastery
	CureChance         float64 `yaml:"cure_chance"`      // disease cure odds at high mastery
	RankUpChance       float64 `yaml:"rank_up_chance"`   // per-trait rank upgrade odds
	InheritDisease     float64 `yaml:"inherit_disease"`  // base odds a parent disease carries over
}

// TraitsConfig holds trait system tunables that are not structural caps.
type TraitsConfig struct {
	MutationChance float64 `yaml:"mutation_chance"` // standalone mutation roll chance
}

// EvolutionConfig holds the adaptive opponent generator's parameters.
type EvolutionConfig struct {
	ArchiveSize     int     `yaml:"archive_size"`      // fittest defeated enemies kept
	MutationRate    float64 `yaml:"mutation_rate"`     // regular enemy mutation
	BossMutation    float64 `yaml:"boss_mutation"`     // boss mutation (lower = more faithful)
	ResistBoost     float64 `yaml:"resist_boost"`      // counter-resistance per spawn
	BossResistBoost float64 `yaml:"boss_resist_boost"`
	BossMultiplier  float64 `yaml:"boss_multiplier"`       // attack/HP gene multiplier
	FinalMultiplier float64 `yaml:"final_boss_multiplier"` // multiplier at the final stage
	FinalStage      int     `yaml:"final_stage"`
	QualityPull     float64 `yaml:"quality_pull"` // weak genes pulled to this share of stage floor
	TankChance      float64 `yaml:"tank_chance"`
	AttackerChance  float64 `yaml:"attacker_chance"`
}

// SimConfig holds fast-simulation defaults.
type SimConfig struct {
	DefaultBattles int `yaml:"default_battles"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxTicks int // bounded tick count per battle
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Battle.TickInterval <= 0 {
		c.Battle.TickInterval = 0.1
	}
	if c.Battle.MaxDuration <= 0 {
		c.Battle.MaxDuration = 30
	}
	c.Derived.MaxTicks = int(c.Battle.MaxDuration/c.Battle.TickInterval) + 1
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
