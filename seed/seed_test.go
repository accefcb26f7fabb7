package seed

import (
	"strings"
	"testing"

	"github.com/bebop/intarna/accessibility"
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
	"github.com/bebop/intarna/rna"
	"github.com/sergi/go-diff/diffmatchpatch"
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

// TestMfeAndNoBulgeAgreeForZeroUnpaired matches spec.md §8-5: for the
// base-pair model, SeedHandlerNoBulge and SeedHandlerMfe under
// u1max=u2max=0 yield identical (i1,i2,SeedE,len1,len2) tuples.
func TestMfeAndNoBulgeAgreeForZeroUnpaired(t *testing.T) {
	m := newEnergyFixture(t, "GGGG", "CCCC")
	c := NewConstraint(3)
	c.U1Max, c.U2Max = 0, 0

	mfe := NewSeedHandlerMfe(m, c)
	if _, err := mfe.FillSeed(idxrange.IndexRange{From: 0, To: m.Size1() - 1}, idxrange.IndexRange{From: 0, To: m.Size2() - 1}); err != nil {
		t.Fatal(err)
	}
	nb := NewSeedHandlerNoBulge(m, c)
	if _, err := nb.FillSeed(idxrange.IndexRange{From: 0, To: m.Size1() - 1}, idxrange.IndexRange{From: 0, To: m.Size2() - 1}); err != nil {
		t.Fatal(err)
	}

	for i1 := 0; i1 < m.Size1(); i1++ {
		for i2 := 0; i2 < m.Size2(); i2++ {
			if mfe.IsSeedBound(i1, i2) != nb.IsSeedBound(i1, i2) {
				t.Fatalf("feasibility mismatch at (%d,%d): mfe=%v nobulge=%v", i1, i2, mfe.IsSeedBound(i1, i2), nb.IsSeedBound(i1, i2))
			}
			if !mfe.IsSeedBound(i1, i2) {
				continue
			}
			eMfe, _ := mfe.GetSeedE(i1, i2)
			eNb, _ := nb.GetSeedE(i1, i2)
			if eMfe != eNb {
				t.Fatalf("energy mismatch at (%d,%d): mfe=%v nobulge=%v", i1, i2, eMfe, eNb)
			}
			l1Mfe, _ := mfe.GetSeedLength1(i1, i2)
			l1Nb, _ := nb.GetSeedLength1(i1, i2)
			if l1Mfe != l1Nb {
				t.Fatalf("length1 mismatch at (%d,%d): mfe=%v nobulge=%v", i1, i2, l1Mfe, l1Nb)
			}
		}
	}
}

func TestSeedHandlerMfeTraceBackExcludesRightmost(t *testing.T) {
	m := newEnergyFixture(t, "GGG", "CCC")
	c := NewConstraint(3)
	c.U1Max, c.U2Max = 0, 0
	h := NewSeedHandlerMfe(m, c)
	if _, err := h.FillSeed(idxrange.IndexRange{From: 0, To: 2}, idxrange.IndexRange{From: 0, To: 2}); err != nil {
		t.Fatal(err)
	}
	if !h.IsSeedBound(0, 0) {
		t.Fatal("expected seed bound at (0,0)")
	}
	ia := &interaction.Interaction{}
	if err := h.TraceBackSeed(ia, 0, 0); err != nil {
		t.Fatal(err)
	}
	if len(ia.BasePairs) != 2 {
		t.Fatalf("expected 2 inner bp (bp=3 total, rightmost excluded), got %d: %+v", len(ia.BasePairs), ia.BasePairs)
	}
	if ia.BasePairs[0] != (interaction.BasePair{I1: 0, I2: 0}) {
		t.Fatalf("unexpected first bp: %+v", ia.BasePairs[0])
	}
}

func TestSeedHandlerNoBulgeRejectsTooFewBP(t *testing.T) {
	m := newEnergyFixture(t, "GG", "CC")
	c := NewConstraint(1)
	h := NewSeedHandlerNoBulge(m, c)
	if _, err := h.FillSeed(idxrange.IndexRange{From: 0, To: 1}, idxrange.IndexRange{From: 0, To: 1}); err == nil {
		t.Fatal("expected error for bp < 2")
	}
}

func TestUpdateToNextSeedColumnMajorOrder(t *testing.T) {
	m := newEnergyFixture(t, "GGGG", "CCCC")
	c := NewConstraint(2)
	h := NewSeedHandlerNoBulge(m, c)
	full := idxrange.IndexRange{From: 0, To: 3}
	if _, err := h.FillSeed(full, full); err != nil {
		t.Fatal(err)
	}
	i1, i2, ok := h.UpdateToNextSeed(-1, -1, full, full)
	if !ok {
		t.Fatal("expected at least one seed")
	}
	prev1, prev2 := i1, i2
	for {
		n1, n2, ok := h.UpdateToNextSeed(prev1, prev2, full, full)
		if !ok {
			break
		}
		if n1 < prev1 || (n1 == prev1 && n2 <= prev2) {
			t.Fatalf("enumeration order violated: (%d,%d) after (%d,%d)", n1, n2, prev1, prev2)
		}
		prev1, prev2 = n1, n2
	}
}

func TestAreLoopOverlapping(t *testing.T) {
	if !AreLoopOverlapping(0, 5, 3, 8) {
		t.Fatal("expected overlap")
	}
	if AreLoopOverlapping(0, 2, 3, 5) {
		t.Fatal("expected no overlap")
	}
}

func TestExplicitSeedParsesAndComputesEnergy(t *testing.T) {
	m := newEnergyFixture(t, "GGG", "CCC")
	c := NewConstraint(3)
	identity := func(i int) int { return i }
	h, err := NewSeedHandlerExplicit(m, c, "0 ||| & 0 |||", identity, identity)
	if err != nil {
		t.Fatal(err)
	}
	full := idxrange.IndexRange{From: 0, To: 2}
	count, err := h.FillSeed(full, full)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 explicit seed filled, got %d", count)
	}
	if !h.IsSeedBound(0, 0) {
		t.Fatal("expected explicit seed bound at (0,0)")
	}
	e, err := h.GetSeedE(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if e != -2 {
		t.Fatalf("GetSeedE = %v, want -2 (two stacking steps at Ebp=-1)", e)
	}
}

func TestExplicitSeedRejectsUnbalancedDotbar(t *testing.T) {
	m := newEnergyFixture(t, "GGG", "CCC")
	c := NewConstraint(3)
	identity := func(i int) int { return i }
	_, err := NewSeedHandlerExplicit(m, c, "0 ||| & 0 ||", identity, identity)
	if err == nil {
		t.Fatal("expected error for unequal bp counts")
	}
	want := `explicit seed entry "0 ||| & 0 ||" has unequal bp counts between strands`
	if got := err.Error(); !strings.Contains(got, want) {
		t.Fatalf("error message mismatch:\n%s", diffStrings(t, got, want))
	}
}

// diffStrings renders a readable diff between a parse failure's actual
// message and the expected one, the same clearer-test-failure concern
// the teacher's own parser tests care about (see dot_bracket_parser).
func diffStrings(t *testing.T, got, want string) string {
	t.Helper()
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	return dmp.DiffPrettyText(diffs)
}

func TestIdxOffsetForwardsSeedQueries(t *testing.T) {
	m := newEnergyFixture(t, "GGGG", "CCCC")
	c := NewConstraint(2)
	inner := NewSeedHandlerNoBulge(m, c)
	full := idxrange.IndexRange{From: 0, To: 3}
	if _, err := inner.FillSeed(full, full); err != nil {
		t.Fatal(err)
	}
	w := NewIdxOffset(inner)
	w.SetOffset1(1)
	w.SetOffset2(1)
	if got, want := w.IsSeedBound(0, 0), inner.IsSeedBound(1, 1); got != want {
		t.Fatalf("IsSeedBound forwarding mismatch: got %v want %v", got, want)
	}
}
