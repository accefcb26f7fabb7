package energy

import (
	"testing"

	"github.com/bebop/intarna/accessibility"
	"github.com/bebop/intarna/rna"
)

func TestIdxOffsetForwardsShiftedQueries(t *testing.T) {
	seq1, _ := rna.NewSequence("s1", "GGGG", 1)
	seq2, _ := rna.NewSequence("s2", "CCCC", 1)
	acc1, _ := accessibility.NewAccessibility(seq1, 0, nil, accessibility.SourceDisabled, nil)
	acc2, _ := accessibility.NewAccessibility(seq2, 0, nil, accessibility.SourceDisabled, nil)
	inner := NewBasePairModel(seq1, seq2, acc1, acc2, nil, nil, -1, 0, 1, false, 4, 4)

	w := NewIdxOffset(inner)
	if err := w.SetOffset1(1); err != nil {
		t.Fatal(err)
	}
	if err := w.SetOffset2(1); err != nil {
		t.Fatal(err)
	}
	if w.Size1() != inner.Size1()-1 || w.Size2() != inner.Size2()-1 {
		t.Fatalf("windowed sizes wrong: %d,%d", w.Size1(), w.Size2())
	}
	if got, want := w.AreComplementary(0, 0), inner.AreComplementary(1, 1); got != want {
		t.Fatalf("AreComplementary forwarding mismatch: got %v want %v", got, want)
	}
	bp := w.GetBasePair(0, 0)
	if w.GetIndex1(bp) != 0 || w.GetIndex2(bp) != 0 {
		t.Fatalf("round-trip through offset space failed: %+v", bp)
	}
}

func TestIdxOffsetRejectsOutOfRange(t *testing.T) {
	seq1, _ := rna.NewSequence("s1", "GG", 1)
	seq2, _ := rna.NewSequence("s2", "CC", 1)
	acc1, _ := accessibility.NewAccessibility(seq1, 0, nil, accessibility.SourceDisabled, nil)
	acc2, _ := accessibility.NewAccessibility(seq2, 0, nil, accessibility.SourceDisabled, nil)
	inner := NewBasePairModel(seq1, seq2, acc1, acc2, nil, nil, -1, 0, 1, false, 2, 2)

	w := NewIdxOffset(inner)
	if err := w.SetOffset1(2); err == nil {
		t.Fatal("expected error for offset1 == size")
	}
	if err := w.SetOffset1(-1); err == nil {
		t.Fatal("expected error for negative offset1")
	}
}
