/*
Package seed implements the seed subsystem from spec.md §4.4: a shared
Constraint type, a Handler contract every seed implementation satisfies,
and three concrete handlers (SeedHandlerMfe's 5-D DP, SeedHandlerNoBulge's
fixed-window fast path, and SeedHandlerExplicit's user-supplied seed
parser) plus an IdxOffset delegation wrapper. There is no teacher
equivalent for the DP itself — it is grounded directly on spec.md's
recurrences — but the loop/table style (explicit nested loops filling a
table left-to-right, matrix-fill-then-traceback rather than building the
whole DP through recursion alone) follows the teacher's align package
(NeedlemanWunsch/SmithWaterman), and the explicit-seed parser follows the
teacher's dot_bracket_parser character-by-character validating style.
*/
package seed

import (
	"fmt"

	"github.com/bebop/intarna"
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
)

// Constraint carries the parameters a seed must satisfy (spec.md §3).
type Constraint struct {
	// BP is the required number of base pairs in the seed (>= 2).
	BP int
	// U1Max, U2Max cap unpaired positions per strand; UMax caps the total
	// across both strands (0 means "use U1Max+U2Max").
	U1Max, U2Max, UMax int
	// MaxE is the maximum admissible seed energy (E_init + hybridization
	// + ED1 + ED2).
	MaxE float64
	// MaxED is the maximum ED1/ED2 permitted over the seed's unpaired span.
	MaxED float64
	// Range1, Range2 optionally restrict candidate left-bp positions; nil
	// means unrestricted.
	Range1, Range2 *idxrange.List
	// AllowGU permits GU pairs anywhere in the seed; AllowGUEnd additionally
	// permits them at the seed's own two end positions.
	AllowGU, AllowGUEnd bool
	// NoLP records the caller's no-lonely-pairs setting alongside the
	// seed constraint; no Handler in this package reads it, so setting it
	// rejects no seed.
	NoLP bool
}

// NewConstraint returns a Constraint requiring bp base pairs with no
// further restriction (MaxE/MaxED unbounded, GU allowed everywhere).
func NewConstraint(bp int) *Constraint {
	return &Constraint{
		BP: bp, MaxE: energy.Infinity, MaxED: energy.Infinity,
		AllowGU: true, AllowGUEnd: true,
	}
}

// Handler is the seed subsystem's contract (spec.md §4.4): for every
// candidate left-most intermolecular base pair within a filled region it
// reports feasibility, energy, span, and traceback/enumeration support.
type Handler interface {
	// IsSeedBound reports whether (i1,i2) is the left-most bp of a
	// feasible, already-filled seed.
	IsSeedBound(i1, i2 int) bool
	// GetSeedE returns the seed's hybridization-only energy (excluding
	// E_init and the right-most bp's own further E_interLeft step).
	GetSeedE(i1, i2 int) (float64, error)
	// GetSeedLength1/2 return the inclusive bp span on each strand.
	GetSeedLength1(i1, i2 int) (int, error)
	GetSeedLength2(i1, i2 int) (int, error)
	// TraceBackSeed appends the base pairs of the seed rooted at (i1,i2)
	// to ia, starting with (i1,i2) itself and excluding the seed's
	// right-most bp.
	TraceBackSeed(ia *interaction.Interaction, i1, i2 int) error
	// UpdateToNextSeed returns the next feasible seed left-end strictly
	// after (i1,i2) in column-major order within [r1,r2], or ok=false if
	// none remains.
	UpdateToNextSeed(i1, i2 int, r1, r2 idxrange.IndexRange) (nextI1, nextI2 int, ok bool)
	// FillSeed precomputes every feasible seed with left-end in r1 x r2
	// and returns the count found.
	FillSeed(r1, r2 idxrange.IndexRange) (int, error)
	// AddSeeds scans ia's base pairs for runs that satisfy this handler's
	// constraint and attaches interaction.Seed annotations.
	AddSeeds(ia *interaction.Interaction) error
	// AreLoopOverlapping reports whether loop [i,j] and loop [k,l] share
	// any position.
	AreLoopOverlapping(i, j, k, l int) bool
}

// AreLoopOverlapping is the shared implementation every Handler exposes:
// two inclusive ranges overlap iff neither lies wholly before the other.
func AreLoopOverlapping(i, j, k, l int) bool {
	return i <= l && k <= j
}

// feasible reports whether (i1,i2) may anchor a seed: both positions
// accessible, complementary (or GU when allowed), within maxED, and
// inside any configured per-strand range restriction.
func feasible(e energy.InteractionEnergy, c *Constraint, i1, i2 int) bool {
	if i1 < 0 || i2 < 0 || i1 >= e.Size1() || i2 >= e.Size2() {
		return false
	}
	if !e.IsAccessible1(i1) || !e.IsAccessible2(i2) {
		return false
	}
	if !e.AreComplementary(i1, i2) {
		if !(c.AllowGU && e.IsGU(i1, i2)) {
			return false
		}
		if !c.AllowGUEnd {
			return false
		}
	}
	if ed1, err := e.ED1(i1, i1); err != nil || ed1 > c.MaxED {
		return false
	}
	if ed2, err := e.ED2(i2, i2); err != nil || ed2 > c.MaxED {
		return false
	}
	if c.Range1 != nil && !c.Range1.Covers(i1) {
		return false
	}
	if c.Range2 != nil && !c.Range2.Covers(i2) {
		return false
	}
	return true
}

// errNoSeed is returned by GetSeedE/GetSeedLength{1,2} when no seed was
// filled at the queried left-end.
func errNoSeed(i1, i2 int) error {
	return fmt.Errorf("%w: no seed filled at (%d,%d)", intarna.ErrBadIndex, i1, i2)
}
