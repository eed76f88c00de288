// Package telemetry collects batch simulation statistics and writes them as
// structured CSV for offline balance analysis.
package telemetry

import (
	"sort"

	"github.com/pthm-cable/crucible/sim"
)

// BatchRow is one stage's aggregated simulation outcome, CSV-tagged for
// export.
type BatchRow struct {
	Stage   int     `csv:"stage"`
	Battles int     `csv:"battles"`
	Wins    int     `csv:"wins"`
	Losses  int     `csv:"losses"`
	WinRate float64 `csv:"win_rate"`

	AvgKillTime   float64 `csv:"avg_kill_time"`
	BestKillTime  float64 `csv:"best_kill_time"`
	WorstKillTime float64 `csv:"worst_kill_time"`
	KillTimeStdev float64 `csv:"kill_time_stdev"`

	AvgDamageRatio float64 `csv:"avg_damage_ratio"`
	AvgAdaptation  float64 `csv:"avg_adaptation"`

	WeaponRating string `csv:"weapon_rating"`
	EnemySpecies string `csv:"enemy_species"`
}

// RowFromSummary converts a simulation summary into a CSV row.
func RowFromSummary(stage int, s sim.Summary) BatchRow {
	return BatchRow{
		Stage:          stage,
		Battles:        s.Battles,
		Wins:           s.Wins,
		Losses:         s.Losses,
		WinRate:        s.WinRate,
		AvgKillTime:    s.AvgKillTime,
		BestKillTime:   s.BestKillTime,
		WorstKillTime:  s.WorstKillTime,
		KillTimeStdev:  s.KillTimeStdev,
		AvgDamageRatio: s.AvgDamageRatio,
		AvgAdaptation:  s.AvgAdaptation,
	}
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// WinRateQuartiles summarizes a set of per-stage win rates.
func WinRateQuartiles(rows []BatchRow) (p25, p50, p75 float64) {
	if len(rows) == 0 {
		return 0, 0, 0
	}
	rates := make([]float64, 0, len(rows))
	for _, r := range rows {
		rates = append(rates, r.WinRate)
	}
	sort.Float64s(rates)
	return Percentile(rates, 0.25), Percentile(rates, 0.50), Percentile(rates, 0.75)
}
