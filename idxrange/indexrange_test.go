package idxrange

import (
	"errors"
	"testing"

	"github.com/bebop/intarna"
)

func TestStringRoundTrip(t *testing.T) {
	cases := []string{"1-3", "1-3,5-9", "2-2,4-4,10-20"}
	for _, c := range cases {
		list, err := FromString(c, true)
		if err != nil {
			t.Fatalf("FromString(%q): %v", c, err)
		}
		if got := list.String(); got != c {
			t.Fatalf("round trip mismatch: got %q, want %q", got, c)
		}
	}
}

func TestFromStringRejectsMalformed(t *testing.T) {
	cases := []string{"", "abc", "1-", "-3", "3-1", "0-2", "1-2,bad"}
	for _, c := range cases {
		if c == "" {
			continue // empty string is a valid empty list
		}
		if _, err := FromString(c, true); !errors.Is(err, intarna.ErrBadConstraint) {
			t.Fatalf("FromString(%q): expected ErrBadConstraint, got %v", c, err)
		}
	}
}

func TestCoversAndOverlaps(t *testing.T) {
	list, err := FromString("3-5,8-8", true)
	if err != nil {
		t.Fatal(err)
	}
	if !list.Covers(2) || list.Covers(1) {
		t.Fatal("Covers mismatch")
	}
	if !list.Overlaps(IndexRange{From: 4, To: 10}) {
		t.Fatal("expected overlap")
	}
	if list.Overlaps(IndexRange{From: 9, To: 20}) {
		t.Fatal("expected no overlap")
	}
}

func TestShiftDropsAndTruncates(t *testing.T) {
	list, _ := FromString("1-3,8-10", true)
	shifted := list.Shift(-3, 5) // internal ranges are 0-2, 7-9
	// 0-2 shifted by -3 -> -3..-1, entirely out of bounds, dropped
	// 7-9 shifted by -3 -> 4..6, straddles indexMax 5, truncated to 4..5
	if shifted.Len() != 1 {
		t.Fatalf("expected exactly 1 surviving range, got %d: %v", shifted.Len(), shifted.All())
	}
	if got := shifted.At(0); got != (IndexRange{From: 4, To: 5}) {
		t.Fatalf("unexpected shifted range: %v", got)
	}
}

func TestReverseIsInvolutive(t *testing.T) {
	list, _ := FromString("1-3,5-6", true)
	seqLen := 10
	twice := list.Reverse(seqLen).Reverse(seqLen)
	if twice.String() != list.String() {
		t.Fatalf("reverse not involutive: got %q, want %q", twice.String(), list.String())
	}
}

func TestInsertRejectsOverlapWhenDisallowed(t *testing.T) {
	list := NewList(false)
	if err := list.Insert(IndexRange{From: 0, To: 5}); err != nil {
		t.Fatal(err)
	}
	if err := list.Insert(IndexRange{From: 3, To: 8}); !errors.Is(err, intarna.ErrBadIndex) {
		t.Fatalf("expected overlap rejection, got %v", err)
	}
}
