package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/crucible/sim"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p25", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.25, 3.25},
		{"p75", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.75, 7.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestRowFromSummary(t *testing.T) {
	s := sim.Summary{
		Battles: 100, Wins: 64, Losses: 36, WinRate: 0.64,
		AvgKillTime: 8.2, BestKillTime: 3.1, WorstKillTime: 22.5,
		AvgDamageRatio: 2.4, AvgAdaptation: 0.7,
	}
	row := RowFromSummary(7, s)
	if row.Stage != 7 {
		t.Errorf("stage = %d, want 7", row.Stage)
	}
	if row.Wins != 64 || row.Losses != 36 || row.WinRate != 0.64 {
		t.Errorf("outcome fields wrong: %+v", row)
	}
	if row.AvgKillTime != 8.2 || row.BestKillTime != 3.1 {
		t.Errorf("kill-time fields wrong: %+v", row)
	}
}

func TestWinRateQuartiles(t *testing.T) {
	if p25, p50, p75 := WinRateQuartiles(nil); p25 != 0 || p50 != 0 || p75 != 0 {
		t.Error("empty input should return all zeros")
	}

	rows := []BatchRow{
		{WinRate: 0.9}, {WinRate: 0.1}, {WinRate: 0.5},
		{WinRate: 0.7}, {WinRate: 0.3},
	}
	p25, p50, p75 := WinRateQuartiles(rows)
	if math.Abs(p50-0.5) > 0.001 {
		t.Errorf("median = %v, want 0.5", p50)
	}
	if p25 >= p50 || p50 >= p75 {
		t.Errorf("quartiles out of order: %v %v %v", p25, p50, p75)
	}
}
