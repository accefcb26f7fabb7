package accessibility

import (
	"fmt"
	"math"

	"github.com/bebop/intarna"
	"github.com/bebop/intarna/rna"
)

// Infinity is the sentinel ED value returned for a region that cannot be
// made accessible (too long, overlapping a blocked or paired position, or
// with zero unpaired probability).
const Infinity = math.MaxFloat64 / 4

// Source distinguishes how ED(i,j) values are produced.
type Source int

const (
	// SourceBasePair computes ED from a NussinovHandler over the sequence.
	SourceBasePair Source = iota
	// SourceDisabled returns 0 for every accessible region (accessibility
	// penalties switched off).
	SourceDisabled
)

// Accessibility owns a sequence reference, an optional maximum region
// length (0 means "full sequence length"), and a constraint. getED(i,j)
// returns an energy penalty >= 0 for region [i,j] being unpaired, or
// Infinity if the region is too long, overlaps a blocked or paired
// position, or has zero unpaired probability.
type Accessibility struct {
	seq        *rna.Sequence
	maxLength  int
	constraint *Constraint
	source     Source
	nussinov   *NussinovHandler
}

// NewAccessibility constructs an Accessibility over seq. maxLength == 0
// means no length cap beyond the sequence length itself. If constraint is
// nil, an unconstrained Constraint is used.
func NewAccessibility(seq *rna.Sequence, maxLength int, constraint *Constraint, source Source, nussinov *NussinovHandler) (*Accessibility, error) {
	if maxLength < 0 {
		return nil, fmt.Errorf("%w: negative maxLength %d", intarna.ErrBadIndex, maxLength)
	}
	if constraint == nil {
		constraint = NewUnconstrained(seq.Size(), seq.Size())
	}
	if constraint.Length() != seq.Size() {
		return nil, fmt.Errorf("%w: constraint length %d does not match sequence length %d", intarna.ErrBadConstraint, constraint.Length(), seq.Size())
	}
	return &Accessibility{seq: seq, maxLength: maxLength, constraint: constraint, source: source, nussinov: nussinov}, nil
}

// Sequence returns the wrapped sequence.
func (a *Accessibility) Sequence() *rna.Sequence { return a.seq }

// Size returns the length of the wrapped sequence.
func (a *Accessibility) Size() int { return a.seq.Size() }

// Constraint returns the accessibility constraint in effect.
func (a *Accessibility) Constraint() *Constraint { return a.constraint }

func (a *Accessibility) effectiveMaxLength() int {
	if a.maxLength == 0 {
		return a.seq.Size()
	}
	return a.maxLength
}

// GetED returns the energy penalty for region [i,j] being unpaired.
// Requires 0 <= i <= j < Size(), otherwise returns ErrBadIndex.
func (a *Accessibility) GetED(i, j int) (float64, error) {
	if i < 0 || j < i || j >= a.Size() {
		return 0, fmt.Errorf("%w: getED(%d,%d) out of bounds for size %d", intarna.ErrBadIndex, i, j, a.Size())
	}
	if j-i+1 > a.effectiveMaxLength() {
		return Infinity, nil
	}
	for p := i; p <= j; p++ {
		if a.constraint.IsMarkedBlocked(p) || a.constraint.IsMarkedPaired(p) {
			return Infinity, nil
		}
	}
	switch a.source {
	case SourceDisabled:
		return 0, nil
	case SourceBasePair:
		if a.nussinov == nil {
			return 0, nil
		}
		pu := a.nussinov.Pu(i, j)
		if pu <= 0 {
			return Infinity, nil
		}
		// ED is the free-energy cost of forcing [i,j] unpaired:
		// -RT * ln(Pu), the standard accessibility-penalty definition.
		return -a.nussinov.rt * math.Log(pu), nil
	default:
		return 0, nil
	}
}

// ReverseAccessibility wraps another Accessibility and exposes its indices
// mirrored end-to-end: a region query [i,j] on the reversed view maps to
// [size-1-j, size-1-i] on the underlying view. Used to present seq2 (which
// runs 3' to 5' relative to seq1 in an interaction) in the same ascending
// orientation the DP expects.
type ReverseAccessibility struct {
	inner *Accessibility
}

// NewReverseAccessibility wraps inner.
func NewReverseAccessibility(inner *Accessibility) *ReverseAccessibility {
	return &ReverseAccessibility{inner: inner}
}

// Size returns the length of the underlying sequence.
func (r *ReverseAccessibility) Size() int { return r.inner.Size() }

// GetED maps [i,j] to the underlying accessibility's coordinates and
// delegates. ReverseAccessibility(ReverseAccessibility(a)).GetED(i,j) ==
// a.GetED(i,j) for all valid i,j (reversal is involutive).
func (r *ReverseAccessibility) GetED(i, j int) (float64, error) {
	n := r.Size()
	return r.inner.GetED(n-1-j, n-1-i)
}

// Unreverse returns the wrapped, non-reversed Accessibility, undoing one
// level of reversal; wrapping the result in a new ReverseAccessibility
// gives a view equivalent to r again.
func (r *ReverseAccessibility) Unreverse() *Accessibility { return r.inner }
