package seed

import (
	"fmt"
	"sort"

	"github.com/bebop/intarna"
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
)

// SeedHandlerNoBulge implements seeds restricted to u1=u2=0 (spec.md
// §4.4): a fixed-length window of c.BP consecutive stacked base pairs,
// slid across the filled region. O(n²·bp) time, O(n²) space, used as the
// faster default when bulges inside seeds are not permitted.
type SeedHandlerNoBulge struct {
	e     energy.InteractionEnergy
	c     *Constraint
	best  map[[2]int]float64
	order [][2]int
}

// NewSeedHandlerNoBulge builds a SeedHandlerNoBulge over e under c.
func NewSeedHandlerNoBulge(e energy.InteractionEnergy, c *Constraint) *SeedHandlerNoBulge {
	return &SeedHandlerNoBulge{e: e, c: c, best: make(map[[2]int]float64)}
}

// FillSeed slides a fixed window of c.BP stacked pairs starting at every
// feasible left-end in r1 x r2.
func (h *SeedHandlerNoBulge) FillSeed(r1, r2 idxrange.IndexRange) (int, error) {
	if h.c.BP < 2 {
		return 0, fmt.Errorf("%w: seed bp must be >= 2, got %d", intarna.ErrBadConstraint, h.c.BP)
	}
	count := 0
	for i1 := r1.From; i1 <= r1.To; i1++ {
		for i2 := r2.From; i2 <= r2.To; i2++ {
			if !feasible(h.e, h.c, i1, i2) {
				continue
			}
			rightI1, rightI2 := i1+h.c.BP-1, i2+h.c.BP-1
			if rightI1 >= h.e.Size1() || rightI2 >= h.e.Size2() {
				continue
			}
			total := 0.0
			ok := true
			for k := 0; k < h.c.BP-1; k++ {
				step := h.e.EInterLeft(i1+k, i1+k+1, i2+k, i2+k+1)
				if step >= energy.Infinity {
					ok = false
					break
				}
				total += step
			}
			if !ok {
				continue
			}
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
			if h.e.EInit()+total+ed1+ed2 > h.c.MaxE {
				continue
			}
			h.best[[2]int{i1, i2}] = total
			h.order = append(h.order, [2]int{i1, i2})
			count++
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

func (h *SeedHandlerNoBulge) IsSeedBound(i1, i2 int) bool {
	_, ok := h.best[[2]int{i1, i2}]
	return ok
}

func (h *SeedHandlerNoBulge) GetSeedE(i1, i2 int) (float64, error) {
	v, ok := h.best[[2]int{i1, i2}]
	if !ok {
		return 0, errNoSeed(i1, i2)
	}
	return v, nil
}

func (h *SeedHandlerNoBulge) GetSeedLength1(i1, i2 int) (int, error) {
	if !h.IsSeedBound(i1, i2) {
		return 0, errNoSeed(i1, i2)
	}
	return h.c.BP, nil
}

func (h *SeedHandlerNoBulge) GetSeedLength2(i1, i2 int) (int, error) {
	return h.GetSeedLength1(i1, i2)
}

// TraceBackSeed appends the BP-1 inner bp of the window, excluding the
// right-most one.
func (h *SeedHandlerNoBulge) TraceBackSeed(ia *interaction.Interaction, i1, i2 int) error {
	if !h.IsSeedBound(i1, i2) {
		return errNoSeed(i1, i2)
	}
	for k := 0; k < h.c.BP-1; k++ {
		ia.BasePairs = append(ia.BasePairs, interaction.BasePair{I1: i1 + k, I2: i2 + k})
	}
	return nil
}

func (h *SeedHandlerNoBulge) UpdateToNextSeed(i1, i2 int, r1, r2 idxrange.IndexRange) (int, int, bool) {
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

func (h *SeedHandlerNoBulge) AddSeeds(ia *interaction.Interaction) error {
	for _, k := range h.order {
		rightI1, rightI2 := k[0]+h.c.BP-1, k[1]+h.c.BP-1
		hasLeft, hasRight := false, false
		var right interaction.BasePair
		for _, bp := range ia.BasePairs {
			if bp.I1 == k[0] && bp.I2 == k[1] {
				hasLeft = true
			}
			if bp.I1 == rightI1 && bp.I2 == rightI2 {
				hasRight, right = true, bp
			}
		}
		if !hasLeft || !hasRight {
			continue
		}
		ia.Seeds = append(ia.Seeds, interaction.Seed{
			Left:   interaction.BasePair{I1: k[0], I2: k[1]},
			Right:  right,
			Energy: h.best[k],
		})
	}
	return nil
}

func (h *SeedHandlerNoBulge) AreLoopOverlapping(i, j, k, l int) bool {
	return AreLoopOverlapping(i, j, k, l)
}
