package pedigree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/crucible/genome"
	"github.com/pthm-cable/crucible/item"
)

func TestBuildAncestors(t *testing.T) {
	a := &item.Item{ID: "a", Ancestors: []string{"g1", "g2"}}
	b := &item.Item{ID: "b", Ancestors: []string{"g3", "g2"}}

	anc := BuildAncestors(a, b)
	if anc[0] != "a" || anc[1] != "b" {
		t.Errorf("parents must come first, got %v", anc)
	}

	seen := make(map[string]bool)
	for _, id := range anc {
		if seen[id] {
			t.Fatalf("duplicate ancestor %s in %v", id, anc)
		}
		seen[id] = true
	}
	if !seen["g2"] {
		t.Error("shared grandparent missing from lineage")
	}
	if len(anc) != 5 {
		t.Errorf("expected 5 lineage entries, got %d: %v", len(anc), anc)
	}
}

func TestBuildAncestorsCap(t *testing.T) {
	deep := make([]string, 20)
	for i := range deep {
		deep[i] = string(rune('a' + i))
	}
	a := &item.Item{ID: "pa", Ancestors: deep}
	b := &item.Item{ID: "pb", Ancestors: deep}

	anc := BuildAncestors(a, b)
	if len(anc) > item.MaxAncestors {
		t.Errorf("lineage exceeds cap: %d > %d", len(anc), item.MaxAncestors)
	}
}

func TestDetectInbreedingUnrelated(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := &item.Item{ID: "a", Ancestors: []string{"x", "y"}}
	b := &item.Item{ID: "b", Ancestors: []string{"p", "q"}}

	res := DetectInbreeding(a, b, rng)
	if res.IsInbred {
		t.Error("unrelated parents flagged as inbred")
	}
	if res.Coefficient != 0 {
		t.Errorf("expected coefficient 0, got %f", res.Coefficient)
	}
	if res.Disease != "" || len(res.FixedGenes) != 0 {
		t.Error("unrelated pairing must carry no consequences")
	}
}

func TestDetectInbreedingShared(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := &item.Item{ID: "a", Ancestors: []string{"s1", "s2", "x"}}
	b := &item.Item{ID: "b", Ancestors: []string{"s1", "s2", "y"}}

	res := DetectInbreeding(a, b, rng)
	if !res.IsInbred {
		t.Fatal("shared ancestors not detected")
	}
	// 2 shared out of lineage sets of size 4.
	if math.Abs(res.Coefficient-0.5) > 1e-9 {
		t.Errorf("expected coefficient 0.5, got %f", res.Coefficient)
	}
	if len(res.SharedAncestors) != 2 {
		t.Errorf("expected 2 shared ancestors, got %v", res.SharedAncestors)
	}
	if res.Coefficient < 0 || res.Coefficient > 1 {
		t.Errorf("coefficient out of range: %f", res.Coefficient)
	}
}

func TestDetectInbreedingSiblingPairing(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	// Full siblings share their entire ancestor list.
	shared := []string{"pa", "pb", "g1", "g2"}
	a := &item.Item{ID: "a", Ancestors: shared}
	b := &item.Item{ID: "b", Ancestors: shared}

	res := DetectInbreeding(a, b, rng)
	if !res.IsInbred {
		t.Fatal("sibling pairing not detected")
	}
	// 4 shared of 5-element sets.
	if math.Abs(res.Coefficient-0.8) > 1e-9 {
		t.Errorf("expected coefficient 0.8, got %f", res.Coefficient)
	}
	if len(res.FixedGenes) > 3 {
		t.Errorf("fixed genes exceed cap: %v", res.FixedGenes)
	}
}

func TestFixableGenes(t *testing.T) {
	a := genome.Genome{0.50, 0.10, 0.90, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50}
	b := genome.Genome{0.50, 0.90, 0.10, 0.52, 0.60, 0.50, 0.50, 0.50, 0.50, 0.50}

	fixed := fixableGenes(a, b, 1.0)
	if len(fixed) != 3 {
		t.Fatalf("expected 3 fixed genes at max coefficient, got %v", fixed)
	}
	// Most similar first: genes 0 and 5 tie at diff 0, lower index wins.
	if fixed[0] != 0 || fixed[1] != 5 {
		t.Errorf("expected most-similar ordering starting 0,5, got %v", fixed)
	}
	for _, idx := range fixed {
		if math.Abs(a[idx]-b[idx]) >= fixSimilarity {
			t.Errorf("gene %d fixed despite diff %f", idx, math.Abs(a[idx]-b[idx]))
		}
	}

	// Low coefficient fixes fewer genes.
	if got := fixableGenes(a, b, 0.25); len(got) != 1 {
		t.Errorf("coefficient 0.25 should fix 1 gene, got %v", got)
	}
}

func TestApplyInbreeding(t *testing.T) {
	a := &item.Item{Genome: genome.Genome{0.4, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}}
	b := &item.Item{Genome: genome.Genome{0.6, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}}
	child := genome.Genome{0.9, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}

	res := InbreedResult{IsInbred: true, Coefficient: 0.3, FixedGenes: []int{0}}
	out := ApplyInbreeding(child, res, a, b, 2)
	if math.Abs(out[0]-0.5) > 1e-9 {
		t.Errorf("fixed gene should average parents: %f", out[0])
	}

	// Not inbred: untouched.
	if got := ApplyInbreeding(child, InbreedResult{}, a, b, 2); got != child {
		t.Error("non-inbred result must not modify the genome")
	}

	// Deep inbreeding grants a uniform boost.
	deep := InbreedResult{IsInbred: true, Coefficient: 0.8}
	boosted := ApplyInbreeding(child, deep, a, b, 2)
	for i := range child {
		if boosted[i] <= child[i] && child[i] < 1.0 {
			t.Errorf("gene %d not boosted: %f <= %f", i, boosted[i], child[i])
		}
	}
}

func TestCrystallizeDeterministic(t *testing.T) {
	it := &item.Item{
		ID:         "itm-cafebabe",
		Name:       "Ember Vex",
		Genome:     genome.Genome{0.9, 0.3, 0.2, 0.3, 0.85, 0.4, 0.3, 0.3, 0.1, 0.1},
		Generation: 4,
		Mastery:    60,
		BreedCount: 3,
		Ancestors:  []string{"pa", "pb"},
	}

	c1 := Crystallize(it)
	c2 := Crystallize(it)
	if c1.ID != c2.ID || c1.Yield != c2.Yield || c1.Legacy != c2.Legacy {
		t.Error("crystallization must be deterministic")
	}
	if c1.SourceID != it.ID {
		t.Errorf("source ID mismatch: %s", c1.SourceID)
	}
	if c1.Yield <= 0 {
		t.Errorf("expected positive yield, got %d", c1.Yield)
	}
}

func TestCrystallizeLegacyThreshold(t *testing.T) {
	it := &item.Item{
		ID:         "itm-1",
		Genome:     genome.Genome{0.9, 0.75, 0.2, 0.3, 0.5, 0.4, 0.3, 0.3, 0.1, 0.1},
		Generation: 2,
	}

	// At mastery 0 the threshold is 0.80: only gene 0 qualifies.
	c := Crystallize(it)
	if c.Legacy[0] != 0.9*legacyFraction {
		t.Errorf("gene 0 legacy expected %f, got %f", 0.9*legacyFraction, c.Legacy[0])
	}
	if c.Legacy[1] != 0 {
		t.Errorf("gene 1 below threshold should contribute nothing, got %f", c.Legacy[1])
	}

	// Full mastery lowers the threshold to 0.60: gene 1 now qualifies too.
	it.Mastery = 100
	c = Crystallize(it)
	if c.Legacy[1] == 0 {
		t.Error("mastery relief should admit gene 1 into the legacy")
	}
}

func TestApplyLegacy(t *testing.T) {
	child := genome.Genome{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	crystal := item.Crystal{SourceID: "anc-1"}
	crystal.Legacy[0] = 0.1

	// Crystal source in lineage: boost applies.
	out := ApplyLegacy(child, []string{"anc-1", "anc-2"}, []item.Crystal{crystal})
	if math.Abs(out[0]-0.6) > 1e-9 {
		t.Errorf("expected boosted gene 0.6, got %f", out[0])
	}

	// Source outside lineage: ignored.
	out = ApplyLegacy(child, []string{"anc-2"}, []item.Crystal{crystal})
	if out != child {
		t.Error("out-of-lineage crystal must not apply")
	}

	// Clamped at 1.
	high := child
	high[0] = 0.95
	out = ApplyLegacy(high, []string{"anc-1"}, []item.Crystal{crystal})
	if out[0] > 1 {
		t.Errorf("legacy boost exceeded gene cap: %f", out[0])
	}
}

func TestGenerateNameDeterministic(t *testing.T) {
	g := genome.Genome{0.5, 0.5, 0.2, 0.3, 0.5, 0.4, 0.3, 0.3, 0.1, 0.1}
	n1 := GenerateName("itm-0001", g, 2)
	n2 := GenerateName("itm-0001", g, 2)
	if n1 != n2 {
		t.Errorf("naming must be deterministic: %q != %q", n1, n2)
	}
	if n1 == "" {
		t.Error("empty name")
	}
	if GenerateName("itm-0002", g, 2) == n1 && GenerateName("itm-0003", g, 2) == n1 {
		t.Error("distinct IDs collapsing to one name suggests a broken hash")
	}
}

func TestGenerateNamePriority(t *testing.T) {
	// A special ability outranks everything else.
	var special genome.Genome
	special[genome.GeneSpecial] = 0.9
	name := GenerateName("itm-x", special, 10)
	found := false
	for _, title := range specialTitles[genome.SpecialOverdrive] {
		if len(name) > len(title) && name[:len(title)] == title {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an overdrive title, got %q", name)
	}

	// Deep generation falls back to generation titles when nothing else fires.
	var plain genome.Genome
	plain[genome.GeneElement] = 0.1
	name = GenerateName("itm-y", plain, 7)
	found = false
	for _, title := range generationTitles {
		if len(name) > len(title) && name[:len(title)] == title {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a generation title, got %q", name)
	}
}
