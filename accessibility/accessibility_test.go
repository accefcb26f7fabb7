package accessibility

import (
	"testing"

	"github.com/bebop/intarna/rna"
)

// TestParseConstraintScenarioS6 matches spec.md §8 scenario S6.
func TestParseConstraintScenarioS6(t *testing.T) {
	c, err := ParseConstraint("xxxbbbxxx", 9)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.accessible.String(); got != "1-3,7-9" {
		t.Fatalf("accessible = %q, want 1-3,7-9", got)
	}
	if got := c.blocked.String(); got != "4-6" {
		t.Fatalf("blocked = %q, want 4-6", got)
	}
	if c.IsAccessible(4) {
		t.Fatal("position 4 (0-based) should not be accessible (blocked)")
	}
	if !c.IsMarkedAccessible(7) {
		t.Fatal("position 7 (0-based) should be marked accessible")
	}
}

func TestParseConstraintRejectsInvalidChar(t *testing.T) {
	if _, err := ParseConstraint("..z..", 5); err == nil {
		t.Fatal("expected error for invalid character")
	}
}

func TestGetVrnaDotBracketMapping(t *testing.T) {
	c, err := ParseConstraint(".x|b", 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'.', 'x', '|', 'x'}
	for i, w := range want {
		if got := c.GetVrnaDotBracket(i); got != w {
			t.Fatalf("position %d: got %q, want %q", i, got, w)
		}
	}
}

func TestGetEDOutOfBounds(t *testing.T) {
	seq, _ := rna.NewSequence("s", "ACGU", 1)
	acc, err := NewAccessibility(seq, 0, nil, SourceDisabled, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := acc.GetED(-1, 2); err == nil {
		t.Fatal("expected error for negative i")
	}
	if _, err := acc.GetED(0, 4); err == nil {
		t.Fatal("expected error for j >= size")
	}
	if _, err := acc.GetED(2, 1); err == nil {
		t.Fatal("expected error for j < i")
	}
}

func TestGetEDRespectsMaxLengthAndBlocked(t *testing.T) {
	seq, _ := rna.NewSequence("s", "ACGUACGU", 1)
	constraint, err := ParseConstraint("..bb....", 8)
	if err != nil {
		t.Fatal(err)
	}
	acc, err := NewAccessibility(seq, 3, constraint, SourceDisabled, nil)
	if err != nil {
		t.Fatal(err)
	}
	ed, err := acc.GetED(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ed != 0 {
		t.Fatalf("expected 0 ED for a short unblocked region, got %v", ed)
	}
	if ed, err := acc.GetED(0, 3); err != nil || ed != Infinity {
		t.Fatalf("expected Infinity for region exceeding maxLength, got %v, %v", ed, err)
	}
	if ed, err := acc.GetED(1, 2); err != nil || ed != Infinity {
		t.Fatalf("expected Infinity for region overlapping blocked positions, got %v, %v", ed, err)
	}
}

func TestReverseAccessibilityIsInvolutive(t *testing.T) {
	seq, _ := rna.NewSequence("s", "ACGUACGU", 1)
	acc, err := NewAccessibility(seq, 0, nil, SourceDisabled, nil)
	if err != nil {
		t.Fatal(err)
	}
	rev := NewReverseAccessibility(acc)
	revTwice := NewReverseAccessibility(NewReverseAccessibility(rev.Unreverse()).Unreverse())
	_ = revTwice
	for i := 0; i < seq.Size(); i++ {
		for j := i; j < seq.Size(); j++ {
			direct, err1 := acc.GetED(i, j)
			doubled, err2 := rev.GetED(seq.Size()-1-j, seq.Size()-1-i)
			if err1 != nil || err2 != nil {
				t.Fatal(err1, err2)
			}
			if direct != doubled {
				t.Fatalf("double reversal mismatch at (%d,%d): %v vs %v", i, j, direct, doubled)
			}
		}
	}
}

func TestNussinovScenarioS1(t *testing.T) {
	// spec.md §8 S1: r1=GG, r2=CC, Ebp=-1, RT=1, minLoopLen=3.
	// Intramolecular Nussinov on a 2-base sequence can never pair (needs
	// minLoopLen=3 unpaired bases between partners), so Q(0,1) == 1 and
	// Pu(0,1) == 1, giving ED == 0 for the whole region.
	seq, _ := rna.NewSequence("s", "GG", 1)
	h := NewNussinovHandler(seq, -1, 1, 3, false)
	if q := h.Q(0, 1); q != 1 {
		t.Fatalf("expected Q(0,1) == 1 for a too-short sequence, got %v", q)
	}
	if pu := h.Pu(0, 1); pu != 1 {
		t.Fatalf("expected Pu(0,1) == 1, got %v", pu)
	}
}
