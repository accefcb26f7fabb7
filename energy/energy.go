/*
Package energy implements the InteractionEnergy façade that every
predictor, seed handler, and helix handler consumes: pure scalar energy
queries over a pair of RNA sequences, two mandatory implementations
(a toy base-pair-count model and an opaque Vienna-style adapter), and a
transparent index-offset wrapper used by local-window predictors.

The façade shape — a struct bundling sequence + parameters behind
side-effect-free scalar-query methods — is grounded on the teacher's
mfe.foldCompound / energyParams pairing (mfe/mfe.go), generalized from
one sequence folding against itself to two sequences hybridizing.
*/
package energy

import (
	"math"

	"github.com/bebop/intarna/rna"
)

// Infinity is the +∞ sentinel returned when a loop configuration is
// inadmissible (too large, non-complementary endpoints, or disallowed GU).
const Infinity = math.MaxFloat64 / 4

// BasePair is the encoded representation of an intermolecular base pair
// (i1 in seq1, i2 in seq2).
type BasePair struct {
	I1, I2 int
}

// InteractionEnergy is the pure-functional energy façade every predictor,
// seed handler, and helix handler is built against. Implementations must
// be safe to share read-only across goroutines (see spec.md §5): all
// state is fixed at construction time aside from the offsets an
// IdxOffset wrapper applies per predict() call.
type InteractionEnergy interface {
	// Size1 and Size2 return the lengths of seq1 and seq2 respectively.
	Size1() int
	Size2() int

	// Seq1 and Seq2 return the underlying sequences, used by callers that
	// need a stable identity (e.g. output's deduplication key, or a log
	// line's sequence fingerprint) rather than another energy query.
	Seq1() *rna.Sequence
	Seq2() *rna.Sequence

	// AreComplementary reports whether (i1,i2) is a Watson-Crick pair.
	AreComplementary(i1, i2 int) bool
	// IsGU reports whether (i1,i2) is a wobble G-U pair.
	IsGU(i1, i2 int) bool

	// IsAccessible1/2 report whether position i may participate in an
	// intermolecular interaction (not blocked, not intramolecularly paired).
	IsAccessible1(i int) bool
	IsAccessible2(i int) bool

	// GetBasePair encodes (i1,i2) as a BasePair value.
	GetBasePair(i1, i2 int) BasePair
	// GetIndex1/2 decode a BasePair back to its seq1/seq2 coordinate.
	GetIndex1(bp BasePair) int
	GetIndex2(bp BasePair) int

	// EInit is the constant duplex-initiation penalty, added once per
	// interaction.
	EInit() float64

	// EInterLeft is the energy of the internal loop/bulge/stack between
	// closing pair (i1,i2) and the next pair (k1,k2): defined only when
	// i1<k1, i2<k2, the unpaired spans are within the configured
	// maxInternalLoopSize{1,2}, both endpoints are complementary, and —
	// unless AllowGU is set — no enclosed position forms a GU pair.
	// Returns Infinity otherwise.
	EInterLeft(i1, k1, i2, k2 int) float64

	// EDanglingLeft/Right are the single-stranded dangling-end
	// contributions adjacent to the leftmost/rightmost base pair.
	EDanglingLeft(i1, i2 int) float64
	EDanglingRight(j1, j2 int) float64

	// EEndLeft/Right are the helix-end contributions (e.g. AU/GU end
	// penalties) at the leftmost/rightmost base pair.
	EEndLeft(i1, i2 int) float64
	EEndRight(j1, j2 int) float64

	// EMultiUnpaired/Helix/Closing are the multi-loop composition terms
	// used by the ES queries below.
	EMultiUnpaired() float64
	EMultiHelix() float64
	EMultiClosing() float64

	// ED1/ED2 are the accessibility penalties for unpairing [i,j] in
	// seq1/seq2.
	ED1(i, j int) (float64, error)
	ED2(i, j int) (float64, error)

	// ES1/ES2 are the ensemble energies of intramolecular substructures
	// of [i,j] in seq1/seq2, used inside multi-loop composition.
	ES1(i, j int) float64
	ES2(i, j int) float64

	// GetEBasePair returns the per-base-pair bonus used by the toy
	// base-pair-count model (meaningless for a Vienna-style model, which
	// returns 0).
	GetEBasePair() float64

	// GetRT returns the gas-constant*temperature product used to convert
	// between energies and Boltzmann weights.
	GetRT() float64

	// GetBoltzmannWeight returns exp(-E/RT).
	GetBoltzmannWeight(e float64) float64

	// GetE aggregates a hybridization-only energy Ehybrid (the sum of
	// EInterLeft over consecutive base pairs plus EInit) together with
	// accessibility and end/dangle contributions into the reported
	// interaction energy.
	GetE(i1, j1, i2, j2 int, eHybrid float64) (float64, error)
}

// GetE is shared by every InteractionEnergy implementation: it is defined
// purely in terms of the other façade methods, so it lives as a free
// function the concrete types delegate to rather than being duplicated.
func GetE(e InteractionEnergy, i1, j1, i2, j2 int, eHybrid float64) (float64, error) {
	ed1, err := e.ED1(i1, j1)
	if err != nil {
		return 0, err
	}
	ed2, err := e.ED2(i2, j2)
	if err != nil {
		return 0, err
	}
	total := eHybrid + ed1 + ed2 +
		e.EEndLeft(i1, i2) + e.EEndRight(j1, j2) +
		e.EDanglingLeft(i1, i2) + e.EDanglingRight(j1, j2)
	return total, nil
}

func boltzmannWeight(e, rt float64) float64 {
	if e >= Infinity {
		return 0
	}
	return math.Exp(-e / rt)
}
