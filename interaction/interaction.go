/*
Package interaction represents a predicted RNA-RNA hybrid as an ordered
list of intermolecular base pairs plus optional seed annotations, and
renders it as dot-bar/dot-bracket text. The struct shape — a flat value
type wrapping two sequence references and a derived pair list, with
pretty-printers living as methods rather than a separate visitor — is
grounded on the teacher's secondary_structure package, generalized from
one sequence's intramolecular structure to two sequences' intermolecular
one.
*/
package interaction

import (
	"fmt"
	"strings"

	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/rna"
)

// BasePair is an intermolecular base pair (i1 in seq1, i2 in seq2), both
// 0-based internal indices.
type BasePair struct {
	I1, I2 int
}

// Seed annotates a contiguous sub-region of an Interaction that satisfies
// a seed constraint: its leftmost and rightmost base pair and its own
// energy contribution.
type Seed struct {
	Left, Right BasePair
	Energy      float64
}

// EnergyBreakdown decomposes a reported interaction energy into the
// terms the text output format names (spec.md §6): Init, Loops
// (sum of E_interLeft over consecutive bp), DangleLeft/Right,
// EndLeft/Right, Hybrid (Init+Loops), ED1/ED2, Pu1/Pu2 (unpaired
// probabilities derived from ED1/ED2 and RT), and an optional flat
// energyAdd contributed by callers outside the façade (e.g. a
// concentration correction).
type EnergyBreakdown struct {
	Init        float64
	Loops       float64
	DangleLeft  float64
	DangleRight float64
	EndLeft     float64
	EndRight    float64
	Hybrid      float64
	ED1         float64
	ED2         float64
	Pu1         float64
	Pu2         float64
	EnergyAdd   float64
	Total       float64
}

// Interaction is an ordered, non-empty list of base pairs between seq1
// and seq2 plus an overall energy and optional seed annotations. Base
// pairs are strictly increasing in i1 (and, except in the degenerate
// single-bp boundary form, in i2 as well).
type Interaction struct {
	Seq1, Seq2 *rna.Sequence
	BasePairs  []BasePair
	Energy     float64
	Breakdown  EnergyBreakdown
	Seeds      []Seed
}

// NewEmpty returns the "no favorable interaction" sentinel value: zero
// base pairs, zero energy. This is the NoFeasibleSeed/no-hit case from
// spec.md §7, which is informational rather than an error.
func NewEmpty(seq1, seq2 *rna.Sequence) *Interaction {
	return &Interaction{Seq1: seq1, Seq2: seq2, BasePairs: nil, Energy: 0}
}

// IsEmpty reports whether this is the "no favorable interaction" value.
func (ia *Interaction) IsEmpty() bool { return len(ia.BasePairs) == 0 }

// IsValid checks the invariant from spec.md §3/§8-1: non-empty (unless
// explicitly the empty sentinel), strictly monotone in both coordinates,
// and every base pair complementary under e.
func (ia *Interaction) IsValid(e energy.InteractionEnergy) error {
	if ia.IsEmpty() {
		return nil
	}
	for k, bp := range ia.BasePairs {
		if !e.AreComplementary(bp.I1, bp.I2) && !e.IsGU(bp.I1, bp.I2) {
			return fmt.Errorf("interaction: base pair (%d,%d) is not complementary", bp.I1, bp.I2)
		}
		if k == 0 {
			continue
		}
		prev := ia.BasePairs[k-1]
		if bp.I1 <= prev.I1 || bp.I2 <= prev.I2 {
			return fmt.Errorf("interaction: base pairs not strictly monotone at index %d: (%d,%d) after (%d,%d)", k, bp.I1, bp.I2, prev.I1, prev.I2)
		}
	}
	return nil
}

// Leftmost and Rightmost return the first and last base pair of the
// interaction. Both panic if the interaction is empty; callers must
// check IsEmpty first.
func (ia *Interaction) Leftmost() BasePair  { return ia.BasePairs[0] }
func (ia *Interaction) Rightmost() BasePair { return ia.BasePairs[len(ia.BasePairs)-1] }

// IsSeedBasePair reports whether bp lies within any annotated seed.
func (ia *Interaction) IsSeedBasePair(bp BasePair) bool {
	for _, s := range ia.Seeds {
		if bp.I1 >= s.Left.I1 && bp.I1 <= s.Right.I1 && bp.I2 >= s.Left.I2 && bp.I2 <= s.Right.I2 {
			return true
		}
	}
	return false
}

// DotBar renders strand (1 or 2) as a string of '|' at paired positions
// and '.' elsewhere, spanning the interaction's own range on that
// strand. Seed base pairs render as '+' instead of '|' (spec.md §6).
func (ia *Interaction) DotBar(strand int) string {
	if ia.IsEmpty() {
		return ""
	}
	var lo, hi int
	if strand == 1 {
		lo, hi = ia.Leftmost().I1, ia.Rightmost().I1
	} else {
		lo, hi = ia.Leftmost().I2, ia.Rightmost().I2
		if lo > hi {
			lo, hi = hi, lo
		}
	}
	buf := make([]byte, hi-lo+1)
	for i := range buf {
		buf[i] = '.'
	}
	for _, bp := range ia.BasePairs {
		var pos int
		if strand == 1 {
			pos = bp.I1 - lo
		} else {
			pos = bp.I2 - lo
		}
		if ia.IsSeedBasePair(bp) {
			buf[pos] = '+'
		} else {
			buf[pos] = '|'
		}
	}
	return string(buf)
}

// DotBracket renders strand (1 or 2) in dot-bracket notation: '(' for
// seq1 paired positions, ')' for seq2 paired positions, '.' elsewhere.
func (ia *Interaction) DotBracket(strand int) string {
	if ia.IsEmpty() {
		return ""
	}
	var lo, hi int
	var open byte
	if strand == 1 {
		lo, hi, open = ia.Leftmost().I1, ia.Rightmost().I1, '('
	} else {
		lo, hi, open = ia.Leftmost().I2, ia.Rightmost().I2, ')'
		if lo > hi {
			lo, hi = hi, lo
		}
	}
	buf := make([]byte, hi-lo+1)
	for i := range buf {
		buf[i] = '.'
	}
	for _, bp := range ia.BasePairs {
		var pos int
		if strand == 1 {
			pos = bp.I1 - lo
		} else {
			pos = bp.I2 - lo
		}
		buf[pos] = open
	}
	return string(buf)
}

// PairingLine renders the classic IntaRNA-style connector line between
// two dot-bars: '|' for a Watson-Crick pair, ':' for a GU wobble pair,
// and ' ' elsewhere. Both strands must have been rendered over the same
// [lo,hi] span already captured in basePairs; PairingLine recomputes
// from the base pair list directly so it stays correct regardless of
// rendering width.
func (ia *Interaction) PairingLine(e energy.InteractionEnergy) string {
	if ia.IsEmpty() {
		return ""
	}
	lo, hi := ia.Leftmost().I1, ia.Rightmost().I1
	buf := make([]byte, hi-lo+1)
	for i := range buf {
		buf[i] = ' '
	}
	for _, bp := range ia.BasePairs {
		if e.IsGU(bp.I1, bp.I2) {
			buf[bp.I1-lo] = ':'
		} else {
			buf[bp.I1-lo] = '|'
		}
	}
	return string(buf)
}

// Text renders the multi-line ASCII diagram named in spec.md §6: a
// dot-bar of each strand and the decomposed energy contributions. The
// connector line PairingLine produces is not part of this output.
func (ia *Interaction) Text() string {
	if ia.IsEmpty() {
		return "no favorable interaction found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "seq1 %s\n", ia.DotBar(1))
	fmt.Fprintf(&b, "seq2 %s\n", ia.DotBar(2))
	fmt.Fprintf(&b, "energy: %.2f kcal/mol\n", ia.Energy)
	fmt.Fprintf(&b, "  init=%.2f loops=%.2f hybrid=%.2f\n", ia.Breakdown.Init, ia.Breakdown.Loops, ia.Breakdown.Hybrid)
	fmt.Fprintf(&b, "  dangleLeft=%.2f dangleRight=%.2f endLeft=%.2f endRight=%.2f\n",
		ia.Breakdown.DangleLeft, ia.Breakdown.DangleRight, ia.Breakdown.EndLeft, ia.Breakdown.EndRight)
	fmt.Fprintf(&b, "  ED1=%.2f ED2=%.2f Pu1=%.4f Pu2=%.4f\n", ia.Breakdown.ED1, ia.Breakdown.ED2, ia.Breakdown.Pu1, ia.Breakdown.Pu2)
	if ia.Breakdown.EnergyAdd != 0 {
		fmt.Fprintf(&b, "  energyAdd=%.2f\n", ia.Breakdown.EnergyAdd)
	}
	if len(ia.Seeds) > 0 {
		fmt.Fprintf(&b, "seed: %d region(s)\n", len(ia.Seeds))
	}
	return b.String()
}
