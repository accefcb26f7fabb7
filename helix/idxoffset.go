package helix

import (
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
)

// IdxOffset forwards every query to an inner Handler after adding a
// fixed per-strand offset, mirroring seed.IdxOffset.
type IdxOffset struct {
	inner   Handler
	offset1 int
	offset2 int
}

// NewIdxOffset wraps inner with zero offsets.
func NewIdxOffset(inner Handler) *IdxOffset { return &IdxOffset{inner: inner} }

func (w *IdxOffset) SetOffset1(offset int) { w.offset1 = offset }
func (w *IdxOffset) SetOffset2(offset int) { w.offset2 = offset }

func (w *IdxOffset) GetHelixE(i1, i2 int) (float64, error) {
	return w.inner.GetHelixE(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) GetHelixLength1(i1, i2 int) (int, error) {
	return w.inner.GetHelixLength1(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) GetHelixLength2(i1, i2 int) (int, error) {
	return w.inner.GetHelixLength2(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) GetHelixSeedE(i1, i2 int) (float64, error) {
	return w.inner.GetHelixSeedE(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) GetHelixSeedLength1(i1, i2 int) (int, error) {
	return w.inner.GetHelixSeedLength1(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) GetHelixSeedLength2(i1, i2 int) (int, error) {
	return w.inner.GetHelixSeedLength2(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) FillHelix(r1, r2 idxrange.IndexRange) (int, error) {
	shiftedR1 := idxrange.IndexRange{From: r1.From + w.offset1, To: r1.To + w.offset1}
	shiftedR2 := idxrange.IndexRange{From: r2.From + w.offset2, To: r2.To + w.offset2}
	return w.inner.FillHelix(shiftedR1, shiftedR2)
}

func (w *IdxOffset) TraceBackHelix(ia *interaction.Interaction, i1, i2 int) error {
	shifted := &interaction.Interaction{Seq1: ia.Seq1, Seq2: ia.Seq2}
	if err := w.inner.TraceBackHelix(shifted, i1+w.offset1, i2+w.offset2); err != nil {
		return err
	}
	for _, bp := range shifted.BasePairs {
		ia.BasePairs = append(ia.BasePairs, interaction.BasePair{I1: bp.I1 - w.offset1, I2: bp.I2 - w.offset2})
	}
	return nil
}
