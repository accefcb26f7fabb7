package energy

import (
	"math"

	"github.com/bebop/intarna/accessibility"
	"github.com/bebop/intarna/rna"
)

// VrnaParams bundles the scalar nearest-neighbor parameters the
// Vienna-style adapter needs. Values are illustrative defaults in the
// spirit of the Turner model the teacher's mfe/energy_params package
// tabulates in full; this adapter is explicitly not required to be
// byte-accurate (spec.md §4.1 treats the external fold library as
// opaque and out of scope for parameter fidelity).
type VrnaParams struct {
	// EInit is the duplex initiation penalty (kcal/mol), added once per
	// interaction.
	EInit float64
	// StackingBonus is the energy contributed per stacked base pair
	// beyond the first (a coarse stand-in for the full 7x7 stacking
	// table energy_params.StackingPair tabulates).
	StackingBonus float64
	// LoopPenaltyPerUnpaired is charged per unpaired base inside an
	// internal loop/bulge (a coarse stand-in for energy_params' length-
	// indexed interiorLoop/bulge tables).
	LoopPenaltyPerUnpaired float64
	// AUGUEndPenalty is charged at a helix end formed by an A-U or G-U
	// pair instead of a G-C pair.
	AUGUEndPenalty float64
	// DanglingBonus is the (negative) contribution of a single dangling
	// base adjacent to a helix end.
	DanglingBonus float64
	// RT is the gas-constant*temperature product.
	RT float64
}

// DefaultVrnaParams returns illustrative parameters at 37C.
func DefaultVrnaParams() VrnaParams {
	return VrnaParams{
		EInit:                  4.1,
		StackingBonus:          -2.1,
		LoopPenaltyPerUnpaired: 0.5,
		AUGUEndPenalty:         0.5,
		DanglingBonus:          -0.3,
		RT:                     0.61632, // kcal/mol at 37C, matches Turner-model convention
	}
}

// VrnaModel adapts a Vienna-style nearest-neighbor energy model to the
// InteractionEnergy façade. It is the second of the two mandatory
// implementations named in spec.md §4.1; unlike BasePairModel it assigns
// non-zero dangling-end, helix-end, and loop-size contributions.
type VrnaModel struct {
	seq1, seq2     *rna.Sequence
	acc1           *accessibility.Accessibility
	acc2           *accessibility.ReverseAccessibility
	params         VrnaParams
	allowGU        bool
	maxIL1, maxIL2 int
}

// NewVrnaModel builds a VrnaModel. acc2 must wrap seq2 in its native
// (non-reversed) orientation.
func NewVrnaModel(seq1, seq2 *rna.Sequence, acc1, acc2 *accessibility.Accessibility, params VrnaParams, allowGU bool, maxIL1, maxIL2 int) *VrnaModel {
	return &VrnaModel{
		seq1: seq1, seq2: seq2,
		acc1: acc1, acc2: accessibility.NewReverseAccessibility(acc2),
		params: params, allowGU: allowGU, maxIL1: maxIL1, maxIL2: maxIL2,
	}
}

func (m *VrnaModel) realIndex2(i int) int { return m.seq2.Size() - 1 - i }

func (m *VrnaModel) Size1() int { return m.seq1.Size() }
func (m *VrnaModel) Size2() int { return m.seq2.Size() }

func (m *VrnaModel) Seq1() *rna.Sequence { return m.seq1 }
func (m *VrnaModel) Seq2() *rna.Sequence { return m.seq2 }

func (m *VrnaModel) AreComplementary(i1, i2 int) bool {
	return rna.AreComplementary(m.seq1, m.seq2, i1, m.realIndex2(i2))
}

func (m *VrnaModel) IsGU(i1, i2 int) bool {
	return rna.IsGU(m.seq1, m.seq2, i1, m.realIndex2(i2))
}

func (m *VrnaModel) isAdmissiblePair(i1, i2 int) bool {
	if m.AreComplementary(i1, i2) {
		return true
	}
	return m.allowGU && m.IsGU(i1, i2)
}

func (m *VrnaModel) IsAccessible1(i int) bool {
	return m.acc1.Constraint().IsAccessible(i)
}

func (m *VrnaModel) IsAccessible2(i int) bool {
	return m.acc2.Unreverse().Constraint().IsAccessible(m.realIndex2(i))
}

func (m *VrnaModel) GetBasePair(i1, i2 int) BasePair { return BasePair{I1: i1, I2: i2} }
func (m *VrnaModel) GetIndex1(bp BasePair) int       { return bp.I1 }
func (m *VrnaModel) GetIndex2(bp BasePair) int       { return bp.I2 }

func (m *VrnaModel) EInit() float64 { return m.params.EInit }

// EInterLeft charges a stacking bonus for an immediate stack (no unpaired
// bases on either strand) and a length-proportional loop penalty
// otherwise, within the configured maximum internal-loop size.
func (m *VrnaModel) EInterLeft(i1, k1, i2, k2 int) float64 {
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
		// no enclosed position may form a GU pair.
		for p1 := i1 + 1; p1 < k1; p1++ {
			for p2 := i2 + 1; p2 < k2; p2++ {
				if m.IsGU(p1, p2) {
					return Infinity
				}
			}
		}
	}
	if u1 == 0 && u2 == 0 {
		return m.params.StackingBonus
	}
	return float64(u1+u2) * m.params.LoopPenaltyPerUnpaired
}

func (m *VrnaModel) endPenalty(i1, i2 int) float64 {
	if m.IsGU(i1, i2) {
		return m.params.AUGUEndPenalty
	}
	a, b := m.seq1.CodeAt(i1), m.seq2.CodeAt(m.realIndex2(i2))
	if (a == rna.CodeA && b == rna.CodeU) || (a == rna.CodeU && b == rna.CodeA) {
		return m.params.AUGUEndPenalty
	}
	return 0
}

func (m *VrnaModel) EDanglingLeft(i1, i2 int) float64 {
	if i1 > 0 && i2 > 0 {
		return m.params.DanglingBonus
	}
	return 0
}

func (m *VrnaModel) EDanglingRight(j1, j2 int) float64 {
	if j1 < m.Size1()-1 && j2 < m.Size2()-1 {
		return m.params.DanglingBonus
	}
	return 0
}

func (m *VrnaModel) EEndLeft(i1, i2 int) float64  { return m.endPenalty(i1, i2) }
func (m *VrnaModel) EEndRight(j1, j2 int) float64 { return m.endPenalty(j1, j2) }

func (m *VrnaModel) EMultiUnpaired() float64 { return 0 }
func (m *VrnaModel) EMultiHelix() float64    { return m.params.StackingBonus }
func (m *VrnaModel) EMultiClosing() float64  { return m.params.EInit }

func (m *VrnaModel) ED1(i, j int) (float64, error) { return m.acc1.GetED(i, j) }
func (m *VrnaModel) ED2(i, j int) (float64, error) { return m.acc2.GetED(i, j) }

// ES1/ES2 approximate the ensemble energy of intramolecular structure
// within [i,j] as proportional to region length; a full multi-loop
// composition is out of scope (spec.md §1 non-goals).
func (m *VrnaModel) ES1(i, j int) float64 {
	if i > j {
		return 0
	}
	return -float64(j-i+1) * math.Abs(m.params.StackingBonus) / 10
}

func (m *VrnaModel) ES2(i, j int) float64 {
	if i > j {
		return 0
	}
	return -float64(j-i+1) * math.Abs(m.params.StackingBonus) / 10
}

func (m *VrnaModel) GetEBasePair() float64 { return 0 }
func (m *VrnaModel) GetRT() float64        { return m.params.RT }

func (m *VrnaModel) GetBoltzmannWeight(e float64) float64 { return boltzmannWeight(e, m.params.RT) }

func (m *VrnaModel) GetE(i1, j1, i2, j2 int, eHybrid float64) (float64, error) {
	return GetE(m, i1, j1, i2, j2, eHybrid)
}
