package predictor

import (
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
	"github.com/bebop/intarna/output"
	"github.com/bebop/intarna/seed"
)

// Mfe2dSeed is Mfe2d extended to require at least one embedded seed
// (spec.md §4.8): alongside the unconstrained H table it fills Hs, the
// best hybridization energy of a structure rooted at (i1,i2) that
// contains a seed.
type Mfe2dSeed struct {
	base *Mfe2d
	sh   seed.Handler
}

// NewMfe2dSeed returns an Mfe2dSeed predictor using sh to locate
// embedded seeds; sh must already be filled (or fillable) over the
// predicted window.
func NewMfe2dSeed(e energy.InteractionEnergy, noLP bool, sh seed.Handler) *Mfe2dSeed {
	return &Mfe2dSeed{base: NewMfe2d(e, noLP), sh: sh}
}

// fillSeedFrame fills Hs[i1,i2] for the frame closed by (j1,j2), given
// the already-filled unconstrained H table for the same frame:
// Hs[i1,i2] = min(base case via an embedded seed ending within the
// frame, min over (k1,k2) of EInterLeft(i1,k1,i2,k2) + Hs[k1,k2])
// (spec.md §4.8).
func (p *Mfe2dSeed) fillSeedFrame(w *energy.IdxOffset, h map[cellKey]float64, j1, j2 int) map[cellKey]float64 {
	hs := make(map[cellKey]float64)
	for i1 := j1; i1 >= 0; i1-- {
		for i2 := j2; i2 >= 0; i2-- {
			best := energy.Infinity

			if p.sh.IsSeedBound(i1, i2) {
				seedE, errE := p.sh.GetSeedE(i1, i2)
				l1, err1 := p.sh.GetSeedLength1(i1, i2)
				l2, err2 := p.sh.GetSeedLength2(i1, i2)
				if errE == nil && err1 == nil && err2 == nil {
					s1, s2 := i1+l1-1, i2+l2-1
					if s1 == j1 && s2 == j2 {
						if v := seedE + w.EInit(); v < best {
							best = v
						}
					} else if hv, ok := h[cellKey{s1, s2}]; ok && s1 <= j1 && s2 <= j2 {
						if v := seedE + hv; v < best {
							best = v
						}
					}
				}
			}

			for k1 := i1 + 1; k1 <= j1; k1++ {
				for k2 := i2 + 1; k2 <= j2; k2++ {
					hk, ok := hs[cellKey{k1, k2}]
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
				hs[cellKey{i1, i2}] = best
			}
		}
	}
	return hs
}

// traceBackSeed mirrors Mfe2d.traceBack but first tries to locate the
// seed at the current cell before falling back to an EInterLeft split
// against the Hs table (spec.md §4.8). As with Mfe2d.traceBack, the
// frame's final (j1,j2) bp is appended by the caller, not here.
func (p *Mfe2dSeed) traceBackSeed(w *energy.IdxOffset, h, hs map[cellKey]float64, i1, i2, j1, j2 int) []interaction.BasePair {
	var bps []interaction.BasePair
	for i1 < j1 || i2 < j2 {
		bps = append(bps, interaction.BasePair{I1: i1, I2: i2})
		cur := hs[cellKey{i1, i2}]

		if p.sh.IsSeedBound(i1, i2) {
			seedE, errE := p.sh.GetSeedE(i1, i2)
			l1, err1 := p.sh.GetSeedLength1(i1, i2)
			l2, err2 := p.sh.GetSeedLength2(i1, i2)
			if errE == nil && err1 == nil && err2 == nil {
				s1, s2 := i1+l1-1, i2+l2-1
				if (s1 == j1 && s2 == j2 && seedE+w.EInit() == cur) ||
					func() bool { hv, ok := h[cellKey{s1, s2}]; return ok && seedE+hv == cur }() {
					innerIA := &interaction.Interaction{}
					_ = p.sh.TraceBackSeed(innerIA, i1, i2)
					// innerIA starts with (i1,i2) itself, already appended above.
					bps = append(bps[:len(bps)-1], innerIA.BasePairs...)
					if s1 == j1 && s2 == j2 {
						return bps
					}
					rest := p.base.traceBack(w, h, s1, s2, j1, j2)
					bps = append(bps, rest...)
					return bps
				}
			}
		}

		found := false
		for k1 := i1 + 1; k1 <= j1 && !found; k1++ {
			for k2 := i2 + 1; k2 <= j2 && !found; k2++ {
				hk, ok := hs[cellKey{k1, k2}]
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

// Predict mirrors Mfe2d.Predict but requires the optimum to pass through
// Hs (i.e. to contain a seed); if no such interaction exists it reports
// the empty sentinel.
func (p *Mfe2dSeed) Predict(r1, r2 idxrange.IndexRange, out output.Handler) error {
	if err := checkRange(p.base.e, r1, r2); err != nil {
		return err
	}
	w, err := offsetEnergy(p.base.e, r1, r2)
	if err != nil {
		return err
	}

	bestE := energy.Infinity
	var bestI1, bestI2, bestJ1, bestJ2 int
	var bestH, bestHs map[cellKey]float64
	n1, n2 := r1.To-r1.From, r2.To-r2.From

	for j1 := n1; j1 >= 0; j1-- {
		if !w.IsAccessible1(j1) {
			continue
		}
		for j2 := n2; j2 >= 0; j2-- {
			if !w.IsAccessible2(j2) || (!w.AreComplementary(j1, j2) && !w.IsGU(j1, j2)) {
				continue
			}
			h := p.base.fillFrame(w, r1, r2, j1, j2)
			hs := p.fillSeedFrame(w, h, j1, j2)
			for i1 := 0; i1 <= j1; i1++ {
				for i2 := 0; i2 <= j2; i2++ {
					hv, ok := hs[cellKey{i1, i2}]
					if !ok {
						continue
					}
					total, err := w.GetE(i1, j1, i2, j2, hv)
					if err != nil {
						continue
					}
					if total < bestE {
						bestE, bestI1, bestI2, bestJ1, bestJ2 = total, i1, i2, j1, j2
						bestH, bestHs = h, hs
					}
				}
			}
		}
	}

	if bestE >= energy.Infinity {
		return reportEmpty(out)
	}
	bps := p.traceBackSeed(w, bestH, bestHs, bestI1, bestI2, bestJ1, bestJ2)
	bps = append(bps, interaction.BasePair{I1: bestJ1, I2: bestJ2})
	ia := buildInteraction(w, bps, bestE)
	if err := p.sh.AddSeeds(ia); err != nil {
		return err
	}
	return out.Add(ia)
}
