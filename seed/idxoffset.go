package seed

import (
	"fmt"

	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
)

// IdxOffset forwards every query to an inner Handler after adding a
// fixed per-strand offset to input indices and subtracting it from
// returned index-typed outputs, mirroring energy.IdxOffset (spec.md
// §4.2: "Both InteractionEnergyIdxOffset and SeedHandlerIdxOffset
// forward every query..."). Used by local-window predictors so the
// seed-filling code stays offset-oblivious.
type IdxOffset struct {
	inner          Handler
	offset1        int
	offset2        int
}

// NewIdxOffset wraps inner with zero offsets.
func NewIdxOffset(inner Handler) *IdxOffset { return &IdxOffset{inner: inner} }

// SetOffset1/2 set the per-strand offset. Callers are responsible for
// keeping them within the inner handler's valid coordinate space.
func (w *IdxOffset) SetOffset1(offset int) { w.offset1 = offset }
func (w *IdxOffset) SetOffset2(offset int) { w.offset2 = offset }

func (w *IdxOffset) IsSeedBound(i1, i2 int) bool {
	return w.inner.IsSeedBound(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) GetSeedE(i1, i2 int) (float64, error) {
	return w.inner.GetSeedE(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) GetSeedLength1(i1, i2 int) (int, error) {
	return w.inner.GetSeedLength1(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) GetSeedLength2(i1, i2 int) (int, error) {
	return w.inner.GetSeedLength2(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) TraceBackSeed(ia *interaction.Interaction, i1, i2 int) error {
	shifted := &interaction.Interaction{Seq1: ia.Seq1, Seq2: ia.Seq2}
	if err := w.inner.TraceBackSeed(shifted, i1+w.offset1, i2+w.offset2); err != nil {
		return fmt.Errorf("seed idxoffset: %w", err)
	}
	for _, bp := range shifted.BasePairs {
		ia.BasePairs = append(ia.BasePairs, interaction.BasePair{I1: bp.I1 - w.offset1, I2: bp.I2 - w.offset2})
	}
	return nil
}

func (w *IdxOffset) UpdateToNextSeed(i1, i2 int, r1, r2 idxrange.IndexRange) (int, int, bool) {
	shiftedR1 := idxrange.IndexRange{From: r1.From + w.offset1, To: r1.To + w.offset1}
	shiftedR2 := idxrange.IndexRange{From: r2.From + w.offset2, To: r2.To + w.offset2}
	nextI1, nextI2, ok := w.inner.UpdateToNextSeed(i1+w.offset1, i2+w.offset2, shiftedR1, shiftedR2)
	if !ok {
		return 0, 0, false
	}
	return nextI1 - w.offset1, nextI2 - w.offset2, true
}

func (w *IdxOffset) FillSeed(r1, r2 idxrange.IndexRange) (int, error) {
	shiftedR1 := idxrange.IndexRange{From: r1.From + w.offset1, To: r1.To + w.offset1}
	shiftedR2 := idxrange.IndexRange{From: r2.From + w.offset2, To: r2.To + w.offset2}
	return w.inner.FillSeed(shiftedR1, shiftedR2)
}

func (w *IdxOffset) AddSeeds(ia *interaction.Interaction) error {
	shifted := &interaction.Interaction{Seq1: ia.Seq1, Seq2: ia.Seq2, BasePairs: make([]interaction.BasePair, len(ia.BasePairs))}
	for i, bp := range ia.BasePairs {
		shifted.BasePairs[i] = interaction.BasePair{I1: bp.I1 + w.offset1, I2: bp.I2 + w.offset2}
	}
	if err := w.inner.AddSeeds(shifted); err != nil {
		return err
	}
	for _, s := range shifted.Seeds {
		ia.Seeds = append(ia.Seeds, interaction.Seed{
			Left:   interaction.BasePair{I1: s.Left.I1 - w.offset1, I2: s.Left.I2 - w.offset2},
			Right:  interaction.BasePair{I1: s.Right.I1 - w.offset1, I2: s.Right.I2 - w.offset2},
			Energy: s.Energy,
		})
	}
	return nil
}

func (w *IdxOffset) AreLoopOverlapping(i, j, k, l int) bool {
	return w.inner.AreLoopOverlapping(i+w.offset1, j+w.offset1, k+w.offset1, l+w.offset1)
}
