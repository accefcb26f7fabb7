package energy

import (
	"fmt"

	"github.com/bebop/intarna/rna"
)

// IdxOffset transparently forwards every query to an inner
// InteractionEnergy after adding a fixed per-strand offset to every input
// index and subtracting the same offset from returned index-typed
// outputs. Local-window predictors use this so their inner DP code stays
// offset-oblivious: predict() calls SetOffset1/SetOffset2 once per
// invocation and the rest of the recursion never has to know about the
// window it was handed.
type IdxOffset struct {
	inner          InteractionEnergy
	offset1        int
	offset2        int
}

// NewIdxOffset wraps inner with zero offsets.
func NewIdxOffset(inner InteractionEnergy) *IdxOffset {
	return &IdxOffset{inner: inner}
}

// SetOffset1 sets the seq1 offset. Must satisfy 0 <= offset < inner.Size1().
func (w *IdxOffset) SetOffset1(offset int) error {
	if offset < 0 || offset >= w.inner.Size1() {
		return fmt.Errorf("idxoffset: offset1 %d out of range [0,%d)", offset, w.inner.Size1())
	}
	w.offset1 = offset
	return nil
}

// SetOffset2 sets the seq2 offset. Must satisfy 0 <= offset < inner.Size2().
func (w *IdxOffset) SetOffset2(offset int) error {
	if offset < 0 || offset >= w.inner.Size2() {
		return fmt.Errorf("idxoffset: offset2 %d out of range [0,%d)", offset, w.inner.Size2())
	}
	w.offset2 = offset
	return nil
}

// Offset1 returns the current seq1 offset.
func (w *IdxOffset) Offset1() int { return w.offset1 }

// Offset2 returns the current seq2 offset.
func (w *IdxOffset) Offset2() int { return w.offset2 }

// Inner returns the wrapped InteractionEnergy.
func (w *IdxOffset) Inner() InteractionEnergy { return w.inner }

func (w *IdxOffset) Size1() int { return w.inner.Size1() - w.offset1 }
func (w *IdxOffset) Size2() int { return w.inner.Size2() - w.offset2 }

func (w *IdxOffset) Seq1() *rna.Sequence { return w.inner.Seq1() }
func (w *IdxOffset) Seq2() *rna.Sequence { return w.inner.Seq2() }

func (w *IdxOffset) AreComplementary(i1, i2 int) bool {
	return w.inner.AreComplementary(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) IsGU(i1, i2 int) bool {
	return w.inner.IsGU(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) IsAccessible1(i int) bool { return w.inner.IsAccessible1(i + w.offset1) }
func (w *IdxOffset) IsAccessible2(i int) bool { return w.inner.IsAccessible2(i + w.offset2) }

func (w *IdxOffset) GetBasePair(i1, i2 int) BasePair {
	return w.inner.GetBasePair(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) GetIndex1(bp BasePair) int { return w.inner.GetIndex1(bp) - w.offset1 }
func (w *IdxOffset) GetIndex2(bp BasePair) int { return w.inner.GetIndex2(bp) - w.offset2 }

func (w *IdxOffset) EInit() float64 { return w.inner.EInit() }

func (w *IdxOffset) EInterLeft(i1, k1, i2, k2 int) float64 {
	return w.inner.EInterLeft(i1+w.offset1, k1+w.offset1, i2+w.offset2, k2+w.offset2)
}

func (w *IdxOffset) EDanglingLeft(i1, i2 int) float64 {
	return w.inner.EDanglingLeft(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) EDanglingRight(j1, j2 int) float64 {
	return w.inner.EDanglingRight(j1+w.offset1, j2+w.offset2)
}

func (w *IdxOffset) EEndLeft(i1, i2 int) float64 {
	return w.inner.EEndLeft(i1+w.offset1, i2+w.offset2)
}

func (w *IdxOffset) EEndRight(j1, j2 int) float64 {
	return w.inner.EEndRight(j1+w.offset1, j2+w.offset2)
}

func (w *IdxOffset) EMultiUnpaired() float64 { return w.inner.EMultiUnpaired() }
func (w *IdxOffset) EMultiHelix() float64    { return w.inner.EMultiHelix() }
func (w *IdxOffset) EMultiClosing() float64  { return w.inner.EMultiClosing() }

func (w *IdxOffset) ED1(i, j int) (float64, error) { return w.inner.ED1(i+w.offset1, j+w.offset1) }
func (w *IdxOffset) ED2(i, j int) (float64, error) { return w.inner.ED2(i+w.offset2, j+w.offset2) }

func (w *IdxOffset) ES1(i, j int) float64 { return w.inner.ES1(i+w.offset1, j+w.offset1) }
func (w *IdxOffset) ES2(i, j int) float64 { return w.inner.ES2(i+w.offset2, j+w.offset2) }

func (w *IdxOffset) GetEBasePair() float64 { return w.inner.GetEBasePair() }
func (w *IdxOffset) GetRT() float64        { return w.inner.GetRT() }

func (w *IdxOffset) GetBoltzmannWeight(e float64) float64 { return w.inner.GetBoltzmannWeight(e) }

func (w *IdxOffset) GetE(i1, j1, i2, j2 int, eHybrid float64) (float64, error) {
	return w.inner.GetE(i1+w.offset1, j1+w.offset1, i2+w.offset2, j2+w.offset2, eHybrid)
}
