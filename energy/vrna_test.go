package energy

import (
	"testing"

	"github.com/bebop/intarna/accessibility"
	"github.com/bebop/intarna/rna"
)

func newVrnaFixture(t *testing.T, s1, s2 string, params VrnaParams, allowGU bool) *VrnaModel {
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
	return NewVrnaModel(seq1, seq2, acc1, acc2, params, allowGU, seq1.Size(), seq2.Size())
}

func TestVrnaEInterLeftStackVsLoop(t *testing.T) {
	params := DefaultVrnaParams()
	m := newVrnaFixture(t, "GGGG", "CCCC", params, false)

	if e := m.EInterLeft(0, 1, 0, 1); e != params.StackingBonus {
		t.Fatalf("immediate stack = %v, want %v", e, params.StackingBonus)
	}
	// i1=0,k1=3,i2=0,k2=3: seq1 unpaired positions 1,2 (2 bases); seq2
	// reversed index far endpoint k2=3 -> real index 0 -> 'C', near pair at
	// i1=0 'G' complementary with i2=0 real index 3 -> 'C'. Far endpoint
	// (k1=3,k2=3) real index2 = 0 -> seq2[0]='C', seq1[3]='G': complementary.
	e := m.EInterLeft(0, 3, 0, 3)
	want := float64(2+2) * params.LoopPenaltyPerUnpaired
	if e != want {
		t.Fatalf("loop energy = %v, want %v", e, want)
	}
}

func TestVrnaEInterLeftRejectsEnclosedGUWhenDisallowed(t *testing.T) {
	params := DefaultVrnaParams()
	// seq1[1]='G' pairs (GU) with seq2's real index at p2=1 (size-1-1=2 -> 'U').
	m := newVrnaFixture(t, "GGUG", "CAUC", params, false)
	if e := m.EInterLeft(0, 3, 0, 3); e != Infinity {
		t.Fatalf("expected Infinity for enclosed GU pair, got %v", e)
	}
}

func TestVrnaEndPenaltyChargedForGU(t *testing.T) {
	params := DefaultVrnaParams()
	m := newVrnaFixture(t, "GGGG", "UCCC", params, true)
	// i1=0 'G', i2=0 real index = seq2.Size()-1-0 = 3 -> seq2[3]='C':
	// complementary, not GU, so no penalty.
	if e := m.EEndLeft(0, 0); e != 0 {
		t.Fatalf("EEndLeft = %v, want 0 for GC pair", e)
	}
	// i2=3 real index = 0 -> seq2[0]='U': a G-U end, charged the penalty.
	if e := m.EEndLeft(0, 3); e != params.AUGUEndPenalty {
		t.Fatalf("EEndLeft = %v, want %v for GU pair", e, params.AUGUEndPenalty)
	}
}

func TestVrnaDanglingZeroAtBoundary(t *testing.T) {
	params := DefaultVrnaParams()
	m := newVrnaFixture(t, "GGGG", "CCCC", params, false)
	if e := m.EDanglingLeft(0, 0); e != 0 {
		t.Fatalf("EDanglingLeft at boundary = %v, want 0", e)
	}
	if e := m.EDanglingRight(m.Size1()-1, m.Size2()-1); e != 0 {
		t.Fatalf("EDanglingRight at boundary = %v, want 0", e)
	}
	if e := m.EDanglingLeft(1, 1); e != params.DanglingBonus {
		t.Fatalf("EDanglingLeft interior = %v, want %v", e, params.DanglingBonus)
	}
}

func TestVrnaGetEAggregatesEndAndDangle(t *testing.T) {
	params := DefaultVrnaParams()
	m := newVrnaFixture(t, "GGGG", "CCCC", params, false)
	e, err := m.GetE(0, 3, 0, 3, m.EInit()+params.StackingBonus)
	if err != nil {
		t.Fatal(err)
	}
	want := m.EInit() + params.StackingBonus // no ED/end/dangle contribution at full-span boundary
	if e != want {
		t.Fatalf("GetE = %v, want %v", e, want)
	}
}

func TestVrnaMultiLoopTerms(t *testing.T) {
	params := DefaultVrnaParams()
	m := newVrnaFixture(t, "GG", "CC", params, false)
	if m.EMultiHelix() != params.StackingBonus {
		t.Fatalf("EMultiHelix = %v, want %v", m.EMultiHelix(), params.StackingBonus)
	}
	if m.EMultiClosing() != params.EInit {
		t.Fatalf("EMultiClosing = %v, want %v", m.EMultiClosing(), params.EInit)
	}
	if m.EMultiUnpaired() != 0 {
		t.Fatalf("EMultiUnpaired = %v, want 0", m.EMultiUnpaired())
	}
}
