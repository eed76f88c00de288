package genetics

import (
	"math"
	"math/rand"
	"os"
	"testing"

	"github.com/pthm-cable/crucible/config"
	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/item"
)

func TestMain(m *testing.M) {
	config.MustInit("")
	os.Exit(m.Run())
}

func TestCrossover(t *testing.T) {
	e := New(rand.New(rand.NewSource(1)))
	a := genome.Genome{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}
	b := genome.Genome{0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9}

	sawA, sawB := false, false
	for trial := 0; trial < 50; trial++ {
		child := e.Crossover(a, b)
		for i, v := range child {
			switch v {
			case a[i]:
				sawA = true
			case b[i]:
				sawB = true
			default:
				t.Fatalf("gene %d is neither parent's: %f", i, v)
			}
		}
	}
	if !sawA || !sawB {
		t.Error("uniform crossover should draw from both parents")
	}
}

func TestMutateZeroRate(t *testing.T) {
	e := New(rand.New(rand.NewSource(2)))
	g := genome.Genome{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	if got := e.Mutate(g, 0, 1, nil); got != g {
		t.Error("zero rate must not mutate")
	}
}

func TestMutateRespectsLocks(t *testing.T) {
	e := New(rand.New(rand.NewSource(3)))
	g := genome.Genome{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	locked := map[int]bool{0: true, 4: true}

	for trial := 0; trial < 100; trial++ {
		out := e.Mutate(g, 1.0, 3, locked)
		if out[0] != g[0] || out[4] != g[4] {
			t.Fatal("locked gene mutated")
		}
		for i, v := range out {
			if v < 0 || v > 1 {
				t.Fatalf("gene %d out of range after mutation: %f", i, v)
			}
		}
	}
}

func TestMutateNegativeBias(t *testing.T) {
	// At high generation, perturbations should trend downward. Fully
	// randomized genes dilute but do not erase the bias for a mid-value
	// genome.
	e := New(rand.New(rand.NewSource(4)))
	g := genome.Genome{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}

	var sum float64
	const trials = 2000
	for i := 0; i < trials; i++ {
		sum += e.Mutate(g, 1.0, 20, nil).Sum()
	}
	if avg := sum / trials; avg >= g.Sum() {
		t.Errorf("deep-generation mutation should decay genomes on average: %f >= %f", avg, g.Sum())
	}
}

func TestSelectParent(t *testing.T) {
	e := New(rand.New(rand.NewSource(5)))
	strong := &item.Item{ID: "strong", Fitness: 90}
	weak := &item.Item{ID: "weak", Fitness: 0}
	pop := []*item.Item{strong, weak}

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		counts[e.SelectParent(pop).ID]++
	}
	if counts["strong"] <= counts["weak"] {
		t.Errorf("selection should favor fitness: strong %d, weak %d", counts["strong"], counts["weak"])
	}
	// The 0.01 floor keeps zero-fitness items alive.
	if counts["weak"] == 0 {
		t.Error("zero-fitness item never selected; floor not working")
	}
}

func TestSelectParentEmptyPanics(t *testing.T) {
	e := New(rand.New(rand.NewSource(6)))
	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty population")
		}
	}()
	e.SelectParent(nil)
}

func TestBreed(t *testing.T) {
	e := New(rand.New(rand.NewSource(7)))
	parentA := &item.Item{
		ID:         "pa",
		Genome:     genome.Genome{0.2, 0.3, 0.4, 0.2, 0.6, 0.4, 0.3, 0.3, 0.1, 0.1},
		Generation: 1,
	}
	parentB := &item.Item{
		ID:         "pb",
		Genome:     genome.Genome{0.8, 0.6, 0.1, 0.3, 0.4, 0.5, 0.6, 0.2, 0.3, 0.2},
		Generation: 1,
	}

	child := e.Breed(parentA, parentB, 0, nil, nil)

	if child.Generation != 2 {
		t.Errorf("expected generation 2, got %d", child.Generation)
	}
	if len(child.ParentIDs) != 2 || child.ParentIDs[0] != "pa" || child.ParentIDs[1] != "pb" {
		t.Errorf("parent IDs wrong: %v", child.ParentIDs)
	}
	if len(child.Ancestors) == 0 || child.Ancestors[0] != "pa" {
		t.Errorf("ancestors wrong: %v", child.Ancestors)
	}
	if child.Name == "" {
		t.Error("child has no name")
	}
	if child.BreedCount != 0 {
		t.Error("newborn child has breed uses spent")
	}

	// Unrelated parents, zero mutation, no locks or legacy: every gene comes
	// straight from one parent.
	for i, v := range child.Genome {
		if v != parentA.Genome[i] && v != parentB.Genome[i] {
			t.Errorf("gene %d is neither parent's: %f", i, v)
		}
	}

	// Breeding spends a use on both parents.
	if parentA.BreedCount != 1 || parentB.BreedCount != 1 {
		t.Errorf("parents not charged a breed use: %d, %d", parentA.BreedCount, parentB.BreedCount)
	}
}

func TestBreedManualLocks(t *testing.T) {
	e := New(rand.New(rand.NewSource(8)))
	parentA := &item.Item{ID: "pa", Genome: genome.Genome{0.2, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.1, 0.1}, Generation: 1}
	parentB := &item.Item{ID: "pb", Genome: genome.Genome{0.8, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.1, 0.1}, Generation: 1}

	child := e.Breed(parentA, parentB, 0, []int{0}, nil)
	if math.Abs(child.Genome[0]-0.5) > 1e-9 {
		t.Errorf("locked gene should be the parents' average: %f", child.Genome[0])
	}

	// Out-of-range lock indices are ignored, not fatal.
	child = e.Breed(parentA, parentB, 0, []int{-1, 99}, nil)
	if child == nil {
		t.Fatal("breed with bad lock indices returned nil")
	}
}

func TestBreedGenerationFromOlderParent(t *testing.T) {
	e := New(rand.New(rand.NewSource(9)))
	young := &item.Item{ID: "y", Generation: 1, Genome: genome.Genome{0.5, 0.5, 0.2, 0.3, 0.5, 0.4, 0.3, 0.3, 0.1, 0.1}}
	old := &item.Item{ID: "o", Generation: 5, Genome: genome.Genome{0.5, 0.5, 0.2, 0.3, 0.5, 0.4, 0.3, 0.3, 0.1, 0.1}}

	child := e.Breed(young, old, 0.1, nil, nil)
	if child.Generation != 6 {
		t.Errorf("generation should follow the older parent: got %d", child.Generation)
	}
}

func TestBreedGenomeInvariants(t *testing.T) {
	e := New(rand.New(rand.NewSource(10)))
	cfg := config.Cfg()

	parentA := &item.Item{ID: "pa", Genome: genome.Genome{0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9}, Generation: 3}
	parentB := &item.Item{ID: "pb", Genome: genome.Genome{0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9}, Generation: 3}

	for trial := 0; trial < 50; trial++ {
		a, b := *parentA, *parentB
		child := e.Breed(&a, &b, 0.3, nil, nil)
		for i, v := range child.Genome {
			if v < 0 || v > 1 {
				t.Fatalf("gene %d out of range: %f", i, v)
			}
		}
		if sum := child.Genome.Sum(); sum > cfg.Genome.SoftCapTotal+1e-9 {
			t.Fatalf("child genome escapes the soft cap: %f", sum)
		}
	}
}

func TestBreedLegacyApplies(t *testing.T) {
	e := New(rand.New(rand.NewSource(11)))
	parentA := &item.Item{
		ID:         "pa",
		Genome:     genome.Genome{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
		Generation: 1,
		Ancestors:  []string{"legend"},
	}
	parentB := &item.Item{
		ID:         "pb",
		Genome:     genome.Genome{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
		Generation: 1,
	}
	crystal := item.Crystal{SourceID: "legend"}
	crystal.Legacy[genome.GeneAttack] = 0.2

	child := e.Breed(parentA, parentB, 0, nil, []item.Crystal{crystal})
	if math.Abs(child.Genome[genome.GeneAttack]-0.3) > 1e-9 {
		t.Errorf("legacy boost missing: attack gene %f", child.Genome[genome.GeneAttack])
	}
}
