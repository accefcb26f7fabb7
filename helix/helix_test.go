package helix

import (
	"testing"

	"github.com/bebop/intarna/accessibility"
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
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

func TestFillHelixFindsStackedRun(t *testing.T) {
	m := newEnergyFixture(t, "GGGG", "CCCC")
	c := NewConstraint(2, 4)
	h := NewHandlerNoBulgeMfe(m, c, nil)
	full := idxrange.IndexRange{From: 0, To: 3}
	count, err := h.FillHelix(full, full)
	if err != nil {
		t.Fatal(err)
	}
	if count == 0 {
		t.Fatal("expected at least one helix")
	}
	if !h.best[[2]int{0, 0}].hasSeed && c.RequireSeed {
		t.Fatal("unexpected seed requirement state")
	}
	e, err := h.GetHelixE(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if e != -3 {
		t.Fatalf("GetHelixE(0,0) = %v, want -3 (3 stacking steps at Ebp=-1)", e)
	}
	l1, _ := h.GetHelixLength1(0, 0)
	if l1 != 4 {
		t.Fatalf("GetHelixLength1(0,0) = %v, want 4", l1)
	}
}

func TestFillHelixRequiresEmbeddedSeedWhenConfigured(t *testing.T) {
	m := newEnergyFixture(t, "GGGG", "CCCC")
	sc := seed.NewConstraint(2)
	sh := seed.NewSeedHandlerNoBulge(m, sc)
	full := idxrange.IndexRange{From: 0, To: 3}
	if _, err := sh.FillSeed(full, full); err != nil {
		t.Fatal(err)
	}

	c := NewConstraint(2, 4)
	c.RequireSeed = true
	h := NewHandlerNoBulgeMfe(m, c, sh)
	count, err := h.FillHelix(full, full)
	if err != nil {
		t.Fatal(err)
	}
	if count == 0 {
		t.Fatal("expected helices with embedded seeds")
	}
	if !h.best[[2]int{0, 0}].hasSeed {
		t.Fatal("expected embedded seed annotation at (0,0)")
	}
}

func TestFillHelixRejectsTooSmallMinBP(t *testing.T) {
	m := newEnergyFixture(t, "GG", "CC")
	c := NewConstraint(1, 2)
	h := NewHandlerNoBulgeMfe(m, c, nil)
	full := idxrange.IndexRange{From: 0, To: 1}
	if _, err := h.FillHelix(full, full); err == nil {
		t.Fatal("expected error for minBP < 2")
	}
}

func TestTraceBackHelixExcludesRightmost(t *testing.T) {
	m := newEnergyFixture(t, "GGG", "CCC")
	c := NewConstraint(2, 3)
	h := NewHandlerNoBulgeMfe(m, c, nil)
	full := idxrange.IndexRange{From: 0, To: 2}
	if _, err := h.FillHelix(full, full); err != nil {
		t.Fatal(err)
	}
	ia := &interaction.Interaction{}
	if err := h.TraceBackHelix(ia, 0, 0); err != nil {
		t.Fatal(err)
	}
	if len(ia.BasePairs) == 0 {
		t.Fatal("expected at least one traced bp")
	}
	entry := h.best[[2]int{0, 0}]
	if len(ia.BasePairs) != entry.bp-1 {
		t.Fatalf("expected bp-1=%d traced pairs, got %d", entry.bp-1, len(ia.BasePairs))
	}
}

func TestIdxOffsetForwardsHelixQueries(t *testing.T) {
	m := newEnergyFixture(t, "GGGG", "CCCC")
	c := NewConstraint(2, 4)
	inner := NewHandlerNoBulgeMfe(m, c, nil)
	full := idxrange.IndexRange{From: 0, To: 3}
	if _, err := inner.FillHelix(full, full); err != nil {
		t.Fatal(err)
	}
	w := NewIdxOffset(inner)
	w.SetOffset1(1)
	w.SetOffset2(1)
	got, err := w.GetHelixE(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	want, err := inner.GetHelixE(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("GetHelixE forwarding mismatch: got %v want %v", got, want)
	}
}
