package predictor

import (
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
	"github.com/bebop/intarna/output"
)

// Mfe2d computes the exact minimum free energy interaction within a
// fixed target/query window in O(range²) space per right-end frame
// (spec.md §4.7).
type Mfe2d struct {
	e    energy.InteractionEnergy
	noLP bool
}

// NewMfe2d returns an Mfe2d predictor over the given energy façade.
// noLP enables the no-lonely-pairs filter: a cell (i1,i2) other than the
// frame's right end is filled only when (i1+1,i2+1) also lies in the
// frame and forms a complementary or GU pair. The cell's chosen next
// pair is not required to be (i1+1,i2+1), so a reported structure can
// still contain a base pair that stacks with neither neighbour.
func NewMfe2d(e energy.InteractionEnergy, noLP bool) *Mfe2d {
	return &Mfe2d{e: e, noLP: noLP}
}

// fillFrame fills H[i1,i2] for the frame closed by right bp (j1,j2):
// H[j1,j2] = EInit, and for every other feasible (i1,i2) with i1<j1,
// i2<j2, H[i1,i2] = min over (k1,k2) with i1<k1<=j1, i2<k2<=j2 of
// EInterLeft(i1,k1,i2,k2) + H[k1,k2] (spec.md §4.7).
func (p *Mfe2d) fillFrame(w *energy.IdxOffset, r1, r2 idxrange.IndexRange, j1, j2 int) map[cellKey]float64 {
	h := map[cellKey]float64{{j1, j2}: w.EInit()}
	for i1 := j1; i1 >= 0; i1-- {
		for i2 := j2; i2 >= 0; i2-- {
			if i1 == j1 && i2 == j2 {
				continue
			}
			if !w.IsAccessible1(i1) || !w.IsAccessible2(i2) {
				continue
			}
			if !w.AreComplementary(i1, i2) && !w.IsGU(i1, i2) {
				continue
			}
			if p.noLP && (i1 >= j1 || i2 >= j2 || (!w.AreComplementary(i1+1, i2+1) && !w.IsGU(i1+1, i2+1))) {
				continue
			}
			best := energy.Infinity
			for k1 := i1 + 1; k1 <= j1; k1++ {
				for k2 := i2 + 1; k2 <= j2; k2++ {
					hk, ok := h[cellKey{k1, k2}]
					if !ok {
						continue
					}
					step := w.EInterLeft(i1, k1, i2, k2)
					if step >= energy.Infinity {
						continue
					}
					if v := step + hk; v < best {
						best = v
					}
				}
			}
			if best < energy.Infinity {
				h[cellKey{i1, i2}] = best
			}
		}
	}
	return h
}

// traceBack recomputes the (j1,j2) frame and walks from (i1,i2) to
// (j1,j2), at each step picking the first (innermost-first: smallest
// k1 then k2) admissible split matching the recorded cell value
// (spec.md §4.7 "ties are broken by innermost-first").
func (p *Mfe2d) traceBack(w *energy.IdxOffset, h map[cellKey]float64, i1, i2, j1, j2 int) []interaction.BasePair {
	var bps []interaction.BasePair
	for i1 < j1 || i2 < j2 {
		bps = append(bps, interaction.BasePair{I1: i1, I2: i2})
		cur := h[cellKey{i1, i2}]
		found := false
		for k1 := i1 + 1; k1 <= j1 && !found; k1++ {
			for k2 := i2 + 1; k2 <= j2 && !found; k2++ {
				hk, ok := h[cellKey{k1, k2}]
				if !ok {
					continue
				}
				step := w.EInterLeft(i1, k1, i2, k2)
				if step >= energy.Infinity {
					continue
				}
				if step+hk == cur {
					i1, i2 = k1, k2
					found = true
				}
			}
		}
		if !found {
			break
		}
	}
	return bps
}

// Predict fills every right-end frame within r1 x r2, keeps the global
// optimum, and reports it (or the empty sentinel if no interaction is
// feasible) through out.
func (p *Mfe2d) Predict(r1, r2 idxrange.IndexRange, out output.Handler) error {
	if err := checkRange(p.e, r1, r2); err != nil {
		return err
	}
	w, err := offsetEnergy(p.e, r1, r2)
	if err != nil {
		return err
	}

	bestE := energy.Infinity
	var bestI1, bestI2, bestJ1, bestJ2 int
	n1, n2 := r1.To-r1.From, r2.To-r2.From

	for j1 := n1; j1 >= 0; j1-- {
		if !w.IsAccessible1(j1) {
			continue
		}
		for j2 := n2; j2 >= 0; j2-- {
			if !w.IsAccessible2(j2) || (!w.AreComplementary(j1, j2) && !w.IsGU(j1, j2)) {
				continue
			}
			h := p.fillFrame(w, r1, r2, j1, j2)
			for i1 := 0; i1 <= j1; i1++ {
				for i2 := 0; i2 <= j2; i2++ {
					hv, ok := h[cellKey{i1, i2}]
					if !ok {
						continue
					}
					total, err := w.GetE(i1, j1, i2, j2, hv)
					if err != nil {
						continue
					}
					if total < bestE {
						bestE, bestI1, bestI2, bestJ1, bestJ2 = total, i1, i2, j1, j2
					}
				}
			}
		}
	}

	if bestE >= energy.Infinity {
		return reportEmpty(out)
	}
	h := p.fillFrame(w, r1, r2, bestJ1, bestJ2)
	bps := p.traceBack(w, h, bestI1, bestI2, bestJ1, bestJ2)
	bps = append(bps, interaction.BasePair{I1: bestJ1, I2: bestJ2})
	ia := buildInteraction(w, bps, bestE)
	return out.Add(ia)
}
