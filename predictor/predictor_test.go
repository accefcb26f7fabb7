package predictor

import (
	"testing"

	"github.com/bebop/intarna/accessibility"
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/output"
	"github.com/bebop/intarna/rna"
	"github.com/bebop/intarna/seed"
)

func newEnergyFixture(t *testing.T, s1, s2 string) *energy.BasePairModel {
	t.Helper()
	seq1, err := rna.NewSequence("s1", s1, 1)
	if err != nil {
		t.Fatal(err)
	}
	seq2, err := rna.NewSequence("s2", s2, 1)
	if err != nil {
		t.Fatal(err)
	}
	acc1, err := accessibility.NewAccessibility(seq1, 0, nil, accessibility.SourceDisabled, nil)
	if err != nil {
		t.Fatal(err)
	}
	acc2, err := accessibility.NewAccessibility(seq2, 0, nil, accessibility.SourceDisabled, nil)
	if err != nil {
		t.Fatal(err)
	}
	return energy.NewBasePairModel(seq1, seq2, acc1, acc2, nil, nil, -1, 0, 1, false, seq1.Size(), seq2.Size())
}

func fullRange(n int) idxrange.IndexRange { return idxrange.IndexRange{From: 0, To: n - 1} }

// TestMfe2dFindsFullStack matches spec.md §8-S1: over GG/CC, the full
// double-stack interaction (both bp) at energy -2 is the unique optimum.
func TestMfe2dFindsFullStack(t *testing.T) {
	m := newEnergyFixture(t, "GG", "CC")
	p := NewMfe2d(m, false)
	out := output.NewInteractionList(5)
	if err := p.Predict(fullRange(m.Size1()), fullRange(m.Size2()), out); err != nil {
		t.Fatal(err)
	}
	results := out.Sorted()
	if len(results) != 1 {
		t.Fatalf("expected 1 reported interaction, got %d", len(results))
	}
	if results[0].Energy != -2 {
		t.Fatalf("energy = %v, want -2", results[0].Energy)
	}
	if len(results[0].BasePairs) != 2 {
		t.Fatalf("expected 2 base pairs, got %d: %+v", len(results[0].BasePairs), results[0].BasePairs)
	}
}

// TestMfe2dThreeStack matches spec.md §8-S2: GGG/CCC, mfe energy -3.
func TestMfe2dThreeStack(t *testing.T) {
	m := newEnergyFixture(t, "GGG", "CCC")
	p := NewMfe2d(m, false)
	out := output.NewInteractionList(5)
	if err := p.Predict(fullRange(m.Size1()), fullRange(m.Size2()), out); err != nil {
		t.Fatal(err)
	}
	results := out.Sorted()
	if len(results) != 1 || results[0].Energy != -3 {
		t.Fatalf("expected single interaction at -3, got %+v", results)
	}
}

// TestMfe2dNoLPRequiresImmediateStack checks that with no-LP mode on, the
// GG/CC full stack (whose left bp has a complementary right neighbour) is
// still reported at -2.
func TestMfe2dNoLPRequiresImmediateStack(t *testing.T) {
	m := newEnergyFixture(t, "GG", "CC")
	p := NewMfe2d(m, true)
	out := output.NewInteractionList(5)
	if err := p.Predict(fullRange(m.Size1()), fullRange(m.Size2()), out); err != nil {
		t.Fatal(err)
	}
	results := out.Sorted()
	if len(results) != 1 || results[0].Energy != -2 {
		t.Fatalf("expected the full stack to still satisfy no-LP, got %+v", results)
	}
}

// TestMfe2dHeuristicMatchesExactOnFullStack: for a homogeneous run where
// the only feasible structure is the full stack, the heuristic and exact
// predictors must agree (spec.md §8-6's E_heuristic >= E_exact becomes
// equality here since there is only one candidate structure).
func TestMfe2dHeuristicMatchesExactOnFullStack(t *testing.T) {
	m := newEnergyFixture(t, "GGGG", "CCCC")

	exact := NewMfe2d(m, false)
	exactOut := output.NewInteractionList(5)
	if err := exact.Predict(fullRange(m.Size1()), fullRange(m.Size2()), exactOut); err != nil {
		t.Fatal(err)
	}

	heuristic := NewMfe2dHeuristic(m, nil)
	heurOut := output.NewInteractionList(5)
	if err := heuristic.Predict(fullRange(m.Size1()), fullRange(m.Size2()), 1, heurOut); err != nil {
		t.Fatal(err)
	}

	exactBest := exactOut.Sorted()[0]
	heurBest := heurOut.Sorted()[0]
	if heurBest.Energy < exactBest.Energy {
		t.Fatalf("heuristic energy %v is better than exact %v, violating spec.md §8-6", heurBest.Energy, exactBest.Energy)
	}
	if heurBest.Energy != exactBest.Energy {
		t.Fatalf("expected heuristic to match exact on this trivial case: heuristic=%v exact=%v", heurBest.Energy, exactBest.Energy)
	}
}

// TestMfeEns2dReportsSameMfeAsMfe2d checks the partition-function
// predictor's ReportMfe mode agrees with Mfe2d's own optimum.
func TestMfeEns2dReportsSameMfeAsMfe2d(t *testing.T) {
	m := newEnergyFixture(t, "GGG", "CCC")

	exact := NewMfe2d(m, false)
	exactOut := output.NewInteractionList(5)
	if err := exact.Predict(fullRange(m.Size1()), fullRange(m.Size2()), exactOut); err != nil {
		t.Fatal(err)
	}

	ens := NewMfeEns2d(m, ReportMfe)
	ensOut := output.NewInteractionList(5)
	if err := ens.Predict(fullRange(m.Size1()), fullRange(m.Size2()), ensOut, nil); err != nil {
		t.Fatal(err)
	}

	if ens.ZAll() <= 0 {
		t.Fatal("expected a positive Zall")
	}
	exactBest := exactOut.Sorted()[0]
	ensBest := ensOut.Sorted()[0]
	if ensBest.Energy != exactBest.Energy {
		t.Fatalf("MfeEns2d mfe report %v disagrees with Mfe2d %v", ensBest.Energy, exactBest.Energy)
	}
}

// TestMfeEnsSeedOnlyReportsFeasibleSeed checks the seed-only ensemble
// predictor accumulates a positive Zall and reports a valid seed
// interaction when the whole window is one feasible seed.
func TestMfeEnsSeedOnlyReportsFeasibleSeed(t *testing.T) {
	m := newEnergyFixture(t, "GGG", "CCC")
	c := seed.NewConstraint(3)
	sh := seed.NewSeedHandlerNoBulge(m, c)

	p := NewMfeEnsSeedOnly(m, sh)
	out := output.NewInteractionList(5)
	if err := p.Predict(fullRange(m.Size1()), fullRange(m.Size2()), out, nil); err != nil {
		t.Fatal(err)
	}
	if p.ZAll() <= 0 {
		t.Fatal("expected positive Zall")
	}
	results := out.Sorted()
	if len(results) != 1 {
		t.Fatalf("expected 1 reported interaction, got %d", len(results))
	}
	if len(results[0].BasePairs) != 3 {
		t.Fatalf("expected 3 bp seed interaction, got %d", len(results[0].BasePairs))
	}
}
