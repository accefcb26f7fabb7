package seed

import (
	"fmt"
	"sort"

	"github.com/bebop/intarna"
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
)

// dpKey indexes the 5-D DP table S[i1,i2,bp,u1,u2] from spec.md §4.4.
type dpKey struct{ i1, i2, bp, u1, u2 int }

// dpResult is one memoized DP cell: its energy, the coordinates of the
// next bp reached by the chosen step, and the unpaired span that step
// consumed (needed to reconstruct the remaining (u1,u2) budget during
// traceback).
type dpResult struct {
	e              float64
	nextI1, nextI2 int
	u1p, u2p       int
}

// seedEntry is the best full seed found for a given left-end.
type seedEntry struct {
	e      float64
	l1, l2 int
	u1, u2 int
}

// SeedHandlerMfe implements the full 5-D DP from spec.md §4.4:
// S[i1,i2,bpInner,u1,u2] is the minimum hybridization energy of a seed
// whose left bp is (i1,i2), containing bpInner+2 base pairs total, and
// using up to u1/u2 extra unpaired positions per strand. The reference
// recurrence's ring-buffer memory bound (O(n²·bp·umax²) touching only the
// last O(u1max+u2max) i1/i2 slices) is not reproduced here — this
// implementation memoizes the full table in a map keyed by (i1,i2,bp,u1,u2)
// for simplicity, since seed windows are small (bp and umax are both
// single-digit in practice) and correctness, not memory-boundedness, is
// what predictors depend on.
type SeedHandlerMfe struct {
	e     energy.InteractionEnergy
	c     *Constraint
	memo  map[dpKey]dpResult
	best  map[[2]int]seedEntry
	order [][2]int
}

// NewSeedHandlerMfe builds a SeedHandlerMfe over e under constraint c.
func NewSeedHandlerMfe(e energy.InteractionEnergy, c *Constraint) *SeedHandlerMfe {
	return &SeedHandlerMfe{
		e: e, c: c,
		memo: make(map[dpKey]dpResult),
		best: make(map[[2]int]seedEntry),
	}
}

func (h *SeedHandlerMfe) u1MaxEffective() int {
	if h.c.UMax > 0 && h.c.UMax < h.c.U1Max {
		return h.c.UMax
	}
	return h.c.U1Max
}

// s computes (and memoizes) S[i1,i2,bp,u1,u2].
func (h *SeedHandlerMfe) s(i1, i2, bp, u1, u2 int) dpResult {
	key := dpKey{i1, i2, bp, u1, u2}
	if v, ok := h.memo[key]; ok {
		return v
	}
	var result dpResult
	if bp == 0 {
		k1, k2 := i1+1+u1, i2+1+u2
		if k1 >= h.e.Size1() || k2 >= h.e.Size2() {
			result = dpResult{e: energy.Infinity}
		} else {
			result = dpResult{e: h.e.EInterLeft(i1, k1, i2, k2), nextI1: k1, nextI2: k2}
		}
	} else {
		result = dpResult{e: energy.Infinity}
		for u1p := 0; u1p <= u1; u1p++ {
			for u2p := 0; u2p <= u2; u2p++ {
				k1, k2 := i1+1+u1p, i2+1+u2p
				if k1 >= h.e.Size1() || k2 >= h.e.Size2() {
					continue
				}
				step := h.e.EInterLeft(i1, k1, i2, k2)
				if step >= energy.Infinity {
					continue
				}
				rest := h.s(k1, k2, bp-1, u1-u1p, u2-u2p)
				if rest.e >= energy.Infinity {
					continue
				}
				if total := step + rest.e; total < result.e {
					result = dpResult{e: total, nextI1: k1, nextI2: k2, u1p: u1p, u2p: u2p}
				}
			}
		}
	}
	h.memo[key] = result
	return result
}

// FillSeed precomputes the best seed rooted at every feasible left-end
// in r1 x r2 and returns how many were found.
func (h *SeedHandlerMfe) FillSeed(r1, r2 idxrange.IndexRange) (int, error) {
	if h.c.BP < 2 {
		return 0, fmt.Errorf("%w: seed bp must be >= 2, got %d", intarna.ErrBadConstraint, h.c.BP)
	}
	bpInner := h.c.BP - 2
	count := 0
	for i1 := r1.From; i1 <= r1.To; i1++ {
		for i2 := r2.From; i2 <= r2.To; i2++ {
			if !feasible(h.e, h.c, i1, i2) {
				continue
			}
			best := seedEntry{e: energy.Infinity}
			for u1 := 0; u1 <= h.u1MaxEffective(); u1++ {
				for u2 := 0; u2 <= h.c.U2Max; u2++ {
					if h.c.UMax > 0 && u1+u2 > h.c.UMax {
						continue
					}
					res := h.s(i1, i2, bpInner, u1, u2)
					if res.e >= energy.Infinity {
						continue
					}
					rightI1, rightI2 := h.rightmost(i1, i2, bpInner, u1, u2)
					ed1, err := h.e.ED1(i1, rightI1)
					if err != nil {
						return count, err
					}
					ed2, err := h.e.ED2(i2, rightI2)
					if err != nil {
						return count, err
					}
					if ed1 > h.c.MaxED || ed2 > h.c.MaxED {
						continue
					}
					full := h.e.EInit() + res.e + ed1 + ed2
					if full > h.c.MaxE {
						continue
					}
					if res.e < best.e {
						best = seedEntry{e: res.e, l1: rightI1 - i1 + 1, l2: rightI2 - i2 + 1, u1: u1, u2: u2}
					}
				}
			}
			if best.e < energy.Infinity {
				h.best[[2]int{i1, i2}] = best
				h.order = append(h.order, [2]int{i1, i2})
				count++
			}
		}
	}
	sort.Slice(h.order, func(a, b int) bool {
		if h.order[a][0] != h.order[b][0] {
			return h.order[a][0] < h.order[b][0]
		}
		return h.order[a][1] < h.order[b][1]
	})
	return count, nil
}

// rightmost returns the coordinates of the seed's right-most bp.
func (h *SeedHandlerMfe) rightmost(i1, i2, bp, u1, u2 int) (int, int) {
	curI1, curI2, curBp, curU1, curU2 := i1, i2, bp, u1, u2
	for {
		res := h.memo[dpKey{curI1, curI2, curBp, curU1, curU2}]
		if curBp == 0 {
			return res.nextI1, res.nextI2
		}
		curU1, curU2 = curU1-res.u1p, curU2-res.u2p
		curI1, curI2 = res.nextI1, res.nextI2
		curBp--
	}
}

func (h *SeedHandlerMfe) IsSeedBound(i1, i2 int) bool {
	_, ok := h.best[[2]int{i1, i2}]
	return ok
}

func (h *SeedHandlerMfe) GetSeedE(i1, i2 int) (float64, error) {
	v, ok := h.best[[2]int{i1, i2}]
	if !ok {
		return 0, errNoSeed(i1, i2)
	}
	return v.e, nil
}

func (h *SeedHandlerMfe) GetSeedLength1(i1, i2 int) (int, error) {
	v, ok := h.best[[2]int{i1, i2}]
	if !ok {
		return 0, errNoSeed(i1, i2)
	}
	return v.l1, nil
}

func (h *SeedHandlerMfe) GetSeedLength2(i1, i2 int) (int, error) {
	v, ok := h.best[[2]int{i1, i2}]
	if !ok {
		return 0, errNoSeed(i1, i2)
	}
	return v.l2, nil
}

// TraceBackSeed appends every bp of the seed rooted at (i1,i2) except
// its right-most one, per spec.md §4.4's TraceBackSeed contract.
func (h *SeedHandlerMfe) TraceBackSeed(ia *interaction.Interaction, i1, i2 int) error {
	entry, ok := h.best[[2]int{i1, i2}]
	if !ok {
		return errNoSeed(i1, i2)
	}
	bpInner := h.c.BP - 2
	curI1, curI2, curBp, curU1, curU2 := i1, i2, bpInner, entry.u1, entry.u2
	for {
		ia.BasePairs = append(ia.BasePairs, interaction.BasePair{I1: curI1, I2: curI2})
		res := h.memo[dpKey{curI1, curI2, curBp, curU1, curU2}]
		if curBp == 0 {
			break
		}
		curU1, curU2 = curU1-res.u1p, curU2-res.u2p
		curI1, curI2 = res.nextI1, res.nextI2
		curBp--
	}
	return nil
}

// UpdateToNextSeed returns the next filled seed left-end strictly after
// (i1,i2) in column-major (i1 outer, i2 inner) order within [r1,r2].
func (h *SeedHandlerMfe) UpdateToNextSeed(i1, i2 int, r1, r2 idxrange.IndexRange) (int, int, bool) {
	for _, k := range h.order {
		if k[0] < r1.From || k[0] > r1.To || k[1] < r2.From || k[1] > r2.To {
			continue
		}
		if k[0] > i1 || (k[0] == i1 && k[1] > i2) {
			return k[0], k[1], true
		}
	}
	return 0, 0, false
}

// AddSeeds scans ia's base pairs for any run matching a filled seed and
// attaches annotations.
func (h *SeedHandlerMfe) AddSeeds(ia *interaction.Interaction) error {
	for _, k := range h.order {
		entry := h.best[k]
		right := interaction.BasePair{}
		found := false
		for _, bp := range ia.BasePairs {
			if bp.I1 == k[0]+entry.l1-1 && bp.I2 == k[1]+entry.l2-1 {
				right = bp
				found = true
				break
			}
		}
		if !found {
			continue
		}
		hasLeft := false
		for _, bp := range ia.BasePairs {
			if bp.I1 == k[0] && bp.I2 == k[1] {
				hasLeft = true
				break
			}
		}
		if !hasLeft {
			continue
		}
		ia.Seeds = append(ia.Seeds, interaction.Seed{
			Left:   interaction.BasePair{I1: k[0], I2: k[1]},
			Right:  right,
			Energy: entry.e,
		})
	}
	return nil
}

func (h *SeedHandlerMfe) AreLoopOverlapping(i, j, k, l int) bool {
	return AreLoopOverlapping(i, j, k, l)
}
