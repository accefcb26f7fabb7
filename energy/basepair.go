package energy

import (
	"math"

	"github.com/bebop/intarna/accessibility"
	"github.com/bebop/intarna/rna"
)

// BasePairModel is the toy base-pair-count energy model from spec.md
// §4.1: assigns a constant bonus Ebp < 0 per intermolecular base pair and
// zeroes every dangle/multi-loop/end contribution. Internally it uses a
// NussinovHandler per strand for ES1/ES2 and accessibility.Accessibility
// for ED1/ED2, mirroring the teacher's foldCompound (bundle sequence +
// params behind pure scalar queries).
//
// seq2's DP coordinate runs reversed relative to its own 5'-to-3' order
// (see accessibility.ReverseAccessibility doc comment), so every seq2
// index this type accepts is in that reversed space; realIndex2 converts
// back to seq2's native coordinate.
type BasePairModel struct {
	seq1, seq2 *rna.Sequence
	acc1       *accessibility.Accessibility
	acc2       *accessibility.ReverseAccessibility
	nuss1      *accessibility.NussinovHandler
	nuss2      *accessibility.NussinovHandler

	eBasePair      float64
	eInit          float64
	rt             float64
	allowGU        bool
	maxIL1, maxIL2 int
}

// NewBasePairModel builds a BasePairModel. acc2 must wrap seq2 in its
// native (non-reversed) orientation; NewBasePairModel reverses it
// internally.
func NewBasePairModel(seq1, seq2 *rna.Sequence, acc1, acc2 *accessibility.Accessibility, nuss1, nuss2 *accessibility.NussinovHandler, eBasePair, eInit, rt float64, allowGU bool, maxIL1, maxIL2 int) *BasePairModel {
	return &BasePairModel{
		seq1: seq1, seq2: seq2,
		acc1: acc1, acc2: accessibility.NewReverseAccessibility(acc2),
		nuss1: nuss1, nuss2: nuss2,
		eBasePair: eBasePair, eInit: eInit, rt: rt,
		allowGU: allowGU, maxIL1: maxIL1, maxIL2: maxIL2,
	}
}

func (m *BasePairModel) realIndex2(i int) int { return m.seq2.Size() - 1 - i }

func (m *BasePairModel) Size1() int { return m.seq1.Size() }
func (m *BasePairModel) Size2() int { return m.seq2.Size() }

func (m *BasePairModel) Seq1() *rna.Sequence { return m.seq1 }
func (m *BasePairModel) Seq2() *rna.Sequence { return m.seq2 }

func (m *BasePairModel) AreComplementary(i1, i2 int) bool {
	return rna.AreComplementary(m.seq1, m.seq2, i1, m.realIndex2(i2))
}

func (m *BasePairModel) IsGU(i1, i2 int) bool {
	return rna.IsGU(m.seq1, m.seq2, i1, m.realIndex2(i2))
}

func (m *BasePairModel) isAdmissiblePair(i1, i2 int) bool {
	if m.AreComplementary(i1, i2) {
		return true
	}
	return m.allowGU && m.IsGU(i1, i2)
}

func (m *BasePairModel) IsAccessible1(i int) bool {
	return m.acc1.Constraint().IsAccessible(i)
}

func (m *BasePairModel) IsAccessible2(i int) bool {
	return m.acc2.Unreverse().Constraint().IsAccessible(m.realIndex2(i))
}

func (m *BasePairModel) GetBasePair(i1, i2 int) BasePair { return BasePair{I1: i1, I2: i2} }
func (m *BasePairModel) GetIndex1(bp BasePair) int       { return bp.I1 }
func (m *BasePairModel) GetIndex2(bp BasePair) int       { return bp.I2 }

// EInit returns the per-interaction initiation energy. In this toy model
// E_init is not independently tunable: it equals the per-base-pair bonus
// (original_source/src/IntaRNA/InteractionEnergyBasePair.h's
// getE_init() returning basePairEnergy), so every base pair — including
// the closing one counted via EInit — contributes eBasePair.
func (m *BasePairModel) EInit() float64 { return m.eBasePair }

// EInterLeft admits the loop between (i1,i2) and (k1,k2) when both strands
// stay within the configured maximum internal-loop size, both endpoints
// are admissible pairs, and (unless GU pairs are allowed) no enclosed
// position forms a GU pair; the toy model assigns no loop-size energy,
// only the per-base-pair bonus for forming (k1,k2).
func (m *BasePairModel) EInterLeft(i1, k1, i2, k2 int) float64 {
	if i1 < 0 || i2 < 0 || i1 >= k1 || i2 >= k2 {
		return Infinity
	}
	u1, u2 := k1-i1-1, k2-i2-1
	if u1 > m.maxIL1 || u2 > m.maxIL2 {
		return Infinity
	}
	if !m.isAdmissiblePair(i1, i2) || !m.isAdmissiblePair(k1, k2) {
		return Infinity
	}
	if !m.allowGU {
		for p1 := i1 + 1; p1 < k1; p1++ {
			for p2 := i2 + 1; p2 < k2; p2++ {
				if m.IsGU(p1, p2) {
					return Infinity
				}
			}
		}
	}
	return m.eBasePair
}

func (m *BasePairModel) EDanglingLeft(i1, i2 int) float64  { return 0 }
func (m *BasePairModel) EDanglingRight(j1, j2 int) float64 { return 0 }
func (m *BasePairModel) EEndLeft(i1, i2 int) float64       { return 0 }
func (m *BasePairModel) EEndRight(j1, j2 int) float64      { return 0 }
func (m *BasePairModel) EMultiUnpaired() float64           { return 0 }
func (m *BasePairModel) EMultiHelix() float64              { return 0 }
func (m *BasePairModel) EMultiClosing() float64            { return 0 }

func (m *BasePairModel) ED1(i, j int) (float64, error) { return m.acc1.GetED(i, j) }
func (m *BasePairModel) ED2(i, j int) (float64, error) { return m.acc2.GetED(i, j) }

func (m *BasePairModel) ES1(i, j int) float64 {
	if m.nuss1 == nil || i > j {
		return 0
	}
	q := m.nuss1.Q(i, j)
	if q <= 0 {
		return Infinity
	}
	return -m.rt * math.Log(q)
}

func (m *BasePairModel) ES2(i, j int) float64 {
	if m.nuss2 == nil || i > j {
		return 0
	}
	realI, realJ := m.realIndex2(j), m.realIndex2(i)
	q := m.nuss2.Q(realI, realJ)
	if q <= 0 {
		return Infinity
	}
	return -m.rt * math.Log(q)
}

func (m *BasePairModel) GetEBasePair() float64 { return m.eBasePair }
func (m *BasePairModel) GetRT() float64        { return m.rt }

func (m *BasePairModel) GetBoltzmannWeight(e float64) float64 { return boltzmannWeight(e, m.rt) }

func (m *BasePairModel) GetE(i1, j1, i2, j2 int, eHybrid float64) (float64, error) {
	return GetE(m, i1, j1, i2, j2, eHybrid)
}
