/*
Package helix implements the helix subsystem from spec.md §4.5: a
Constraint type and a Handler family symmetric in shape to the seed
subsystem, but bounded by a minimum/maximum base pair count and a
maximum internal-loop size rather than a fixed bp target, and optionally
requiring an embedded seed. Grounded on the same DP shape as
seed.SeedHandlerNoBulge (spec.md explicitly calls helices "analogous in
shape to seeds"), reusing its fixed-window-extension technique
generalized to a length range instead of one fixed length.
*/
package helix

import (
	"fmt"

	"github.com/bebop/intarna"
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
	"github.com/bebop/intarna/seed"
)

// Constraint carries the parameters a helix must satisfy (spec.md §3).
type Constraint struct {
	// MinBP, MaxBP bound the number of base pairs in the helix.
	MinBP, MaxBP int
	// MaxIL is the maximum internal-loop size permitted within the helix.
	MaxIL int
	// RequireSeed, when set, requires every filled helix to contain an
	// embedded seed (fillHelixSeed semantics from spec.md §4.5).
	RequireSeed bool
}

// NewConstraint returns a Constraint requiring between minBP and maxBP
// base pairs with no internal loops permitted.
func NewConstraint(minBP, maxBP int) *Constraint {
	return &Constraint{MinBP: minBP, MaxBP: maxBP, MaxIL: 0}
}

// Handler is the helix subsystem's contract (spec.md §4.5).
type Handler interface {
	// GetHelixE returns the best (minimum) helix energy rooted at
	// left-most bp (i1,i2).
	GetHelixE(i1, i2 int) (float64, error)
	// GetHelixLength1/2 return the inclusive bp span on each strand.
	GetHelixLength1(i1, i2 int) (int, error)
	GetHelixLength2(i1, i2 int) (int, error)
	// GetHelixSeedE/GetHelixSeedLength1/2 report the embedded seed's own
	// contribution when the handler requires one; error otherwise.
	GetHelixSeedE(i1, i2 int) (float64, error)
	GetHelixSeedLength1(i1, i2 int) (int, error)
	GetHelixSeedLength2(i1, i2 int) (int, error)
	// FillHelix precomputes the best helix ending at every left bp in
	// r1 x r2 and returns the count found.
	FillHelix(r1, r2 idxrange.IndexRange) (int, error)
	// TraceBackHelix appends every inner bp of the helix rooted at
	// (i1,i2) to ia, excluding the right-most one (mirroring seed's
	// TraceBackSeed convention).
	TraceBackHelix(ia *interaction.Interaction, i1, i2 int) error
}

// helixEntry is the best helix found for a given left-end.
type helixEntry struct {
	e              float64
	l1, l2         int
	bp             int
	seedE          float64
	seedL1, seedL2 int
	hasSeed        bool
}

// HandlerNoBulgeMfe fills the best helix (MinBP..MaxBP stacked/internal-
// loop bp, each consecutive step within MaxIL) ending at every feasible
// left bp, optionally requiring an embedded seed from sh.
type HandlerNoBulgeMfe struct {
	e    energy.InteractionEnergy
	c    *Constraint
	sh   seed.Handler // nil when RequireSeed is false
	best map[[2]int]helixEntry
}

// NewHandlerNoBulgeMfe builds a HandlerNoBulgeMfe. sh may be nil unless
// c.RequireSeed is set.
func NewHandlerNoBulgeMfe(e energy.InteractionEnergy, c *Constraint, sh seed.Handler) *HandlerNoBulgeMfe {
	return &HandlerNoBulgeMfe{e: e, c: c, sh: sh, best: make(map[[2]int]helixEntry)}
}

// FillHelix extends a helix outward from every feasible left bp one step
// at a time (admitting internal loops up to c.MaxIL per step) and keeps,
// for that left-end, the single configuration with the lowest total
// energy among those with between MinBP and MaxBP base pairs.
func (h *HandlerNoBulgeMfe) FillHelix(r1, r2 idxrange.IndexRange) (int, error) {
	if h.c.MinBP < 2 {
		return 0, fmt.Errorf("%w: helix minBP must be >= 2, got %d", intarna.ErrBadConstraint, h.c.MinBP)
	}
	if h.c.RequireSeed && h.sh == nil {
		return 0, fmt.Errorf("%w: helix constraint requires an embedded seed but no seed handler was supplied", intarna.ErrBadConstraint)
	}
	count := 0
	for i1 := r1.From; i1 <= r1.To; i1++ {
		for i2 := r2.From; i2 <= r2.To; i2++ {
			if i1 >= h.e.Size1() || i2 >= h.e.Size2() {
				continue
			}
			if !h.e.IsAccessible1(i1) || !h.e.IsAccessible2(i2) {
				continue
			}
			if !h.e.AreComplementary(i1, i2) && !h.e.IsGU(i1, i2) {
				continue
			}
			entry, ok := h.extend(i1, i2)
			if !ok {
				continue
			}
			if h.c.RequireSeed {
				seedE, l1, l2, hasSeed := h.embeddedSeed(i1, i2, entry.l1, entry.l2)
				if !hasSeed {
					continue
				}
				entry.hasSeed, entry.seedE, entry.seedL1, entry.seedL2 = true, seedE, l1, l2
			}
			h.best[[2]int{i1, i2}] = entry
			count++
		}
	}
	return count, nil
}

// extend greedily walks outward from (i1,i2), at each step choosing the
// admissible next bp within c.MaxIL that minimizes EInterLeft, stopping
// once MaxBP is reached or no further admissible pair exists. It reports
// the best configuration with bp count in [MinBP,MaxBP], if any.
func (h *HandlerNoBulgeMfe) extend(i1, i2 int) (helixEntry, bool) {
	curI1, curI2 := i1, i2
	total := 0.0
	bestEntry := helixEntry{}
	found := false
	for bp := 1; bp < h.c.MaxBP; bp++ {
		nextI1, nextI2, step, ok := h.bestNextPair(curI1, curI2)
		if !ok {
			break
		}
		total += step
		curI1, curI2 = nextI1, nextI2
		if bp+1 >= h.c.MinBP {
			if !found || total < bestEntry.e {
				bestEntry = helixEntry{e: total, l1: curI1 - i1 + 1, l2: curI2 - i2 + 1, bp: bp + 1}
				found = true
			}
		}
	}
	return bestEntry, found
}

// bestNextPair scans every admissible next bp within c.MaxIL unpaired
// positions on each strand and returns the one minimizing EInterLeft.
func (h *HandlerNoBulgeMfe) bestNextPair(i1, i2 int) (int, int, float64, bool) {
	bestStep := energy.Infinity
	var bestI1, bestI2 int
	found := false
	for u1 := 0; u1 <= h.c.MaxIL; u1++ {
		for u2 := 0; u2 <= h.c.MaxIL; u2++ {
			k1, k2 := i1+1+u1, i2+1+u2
			if k1 >= h.e.Size1() || k2 >= h.e.Size2() {
				continue
			}
			step := h.e.EInterLeft(i1, k1, i2, k2)
			if step >= energy.Infinity {
				continue
			}
			if step < bestStep {
				bestStep, bestI1, bestI2, found = step, k1, k2, true
			}
		}
	}
	return bestI1, bestI2, bestStep, found
}

// embeddedSeed reports whether sh has a seed fully contained within the
// helix span [i1,i1+l1-1] x [i2,i2+l2-1].
func (h *HandlerNoBulgeMfe) embeddedSeed(i1, i2, l1, l2 int) (float64, int, int, bool) {
	if !h.sh.IsSeedBound(i1, i2) {
		return 0, 0, 0, false
	}
	sl1, err := h.sh.GetSeedLength1(i1, i2)
	if err != nil || sl1 > l1 {
		return 0, 0, 0, false
	}
	sl2, err := h.sh.GetSeedLength2(i1, i2)
	if err != nil || sl2 > l2 {
		return 0, 0, 0, false
	}
	e, err := h.sh.GetSeedE(i1, i2)
	if err != nil {
		return 0, 0, 0, false
	}
	return e, sl1, sl2, true
}

func (h *HandlerNoBulgeMfe) GetHelixE(i1, i2 int) (float64, error) {
	v, ok := h.best[[2]int{i1, i2}]
	if !ok {
		return 0, errNoHelix(i1, i2)
	}
	return v.e, nil
}

func (h *HandlerNoBulgeMfe) GetHelixLength1(i1, i2 int) (int, error) {
	v, ok := h.best[[2]int{i1, i2}]
	if !ok {
		return 0, errNoHelix(i1, i2)
	}
	return v.l1, nil
}

func (h *HandlerNoBulgeMfe) GetHelixLength2(i1, i2 int) (int, error) {
	v, ok := h.best[[2]int{i1, i2}]
	if !ok {
		return 0, errNoHelix(i1, i2)
	}
	return v.l2, nil
}

func (h *HandlerNoBulgeMfe) GetHelixSeedE(i1, i2 int) (float64, error) {
	v, ok := h.best[[2]int{i1, i2}]
	if !ok || !v.hasSeed {
		return 0, errNoHelix(i1, i2)
	}
	return v.seedE, nil
}

func (h *HandlerNoBulgeMfe) GetHelixSeedLength1(i1, i2 int) (int, error) {
	v, ok := h.best[[2]int{i1, i2}]
	if !ok || !v.hasSeed {
		return 0, errNoHelix(i1, i2)
	}
	return v.seedL1, nil
}

func (h *HandlerNoBulgeMfe) GetHelixSeedLength2(i1, i2 int) (int, error) {
	v, ok := h.best[[2]int{i1, i2}]
	if !ok || !v.hasSeed {
		return 0, errNoHelix(i1, i2)
	}
	return v.seedL2, nil
}

// TraceBackHelix re-walks the extension from (i1,i2) and appends every
// bp except the right-most.
func (h *HandlerNoBulgeMfe) TraceBackHelix(ia *interaction.Interaction, i1, i2 int) error {
	entry, ok := h.best[[2]int{i1, i2}]
	if !ok {
		return errNoHelix(i1, i2)
	}
	curI1, curI2 := i1, i2
	for bp := 1; bp < entry.bp; bp++ {
		ia.BasePairs = append(ia.BasePairs, interaction.BasePair{I1: curI1, I2: curI2})
		nextI1, nextI2, _, ok := h.bestNextPair(curI1, curI2)
		if !ok {
			return fmt.Errorf("%w: helix traceback could not re-derive extension step at (%d,%d)", intarna.ErrBadIndex, curI1, curI2)
		}
		curI1, curI2 = nextI1, nextI2
	}
	return nil
}

func errNoHelix(i1, i2 int) error {
	return fmt.Errorf("%w: no helix filled at (%d,%d)", intarna.ErrBadIndex, i1, i2)
}
