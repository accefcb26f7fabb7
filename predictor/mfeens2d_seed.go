package predictor

import (
	"log"

	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/output"
	"github.com/bebop/intarna/seed"
)

// MfeEns2dSeedExtension conditions the partition function on every
// feasible seed: for each seed (si1,si2)-(sj1,sj2) it combines Zleft
// (structures ending at the seed's left bp) with Zright (structures
// starting at the seed's right bp) across every boundary combination
// (spec.md §4.10). Heuristic, when set, makes Zright cover only
// interactions that end at the seed's right bp: no extension past the
// seed is summed or searched (MfeEns2dHeuristicSeedExtension).
//
// Simplification: the double-counting correction spec.md §4.10
// describes (subtracting the contribution attributable to a seed
// nested inside another feasible seed's loop region) is not applied;
// every feasible seed's full Zleft/Zright product is accumulated
// as-is. This over-counts Zall slightly when seeds overlap inside a
// shared loop, a known simplification recorded in DESIGN.md rather
// than silently corrected.
type MfeEns2dSeedExtension struct {
	e         energy.InteractionEnergy
	sh        seed.Handler
	heuristic bool
	zAll      float64
	logger    *log.Logger
}

// NewMfeEns2dSeedExtension returns a seed-conditioned partition-function
// predictor, logging partition-overflow warnings to log.Default(). sh
// must already address the same coordinate frame Predict's r1/r2 window
// will use (see MfeEnsSeedOnly's constructor doc).
func NewMfeEns2dSeedExtension(e energy.InteractionEnergy, sh seed.Handler, heuristic bool) *MfeEns2dSeedExtension {
	return &MfeEns2dSeedExtension{e: e, sh: sh, heuristic: heuristic, logger: log.Default()}
}

// SetLogger overrides the logger used for partition-overflow warnings;
// a nil logger disables the warning.
func (p *MfeEns2dSeedExtension) SetLogger(l *log.Logger) { p.logger = l }

func (p *MfeEns2dSeedExtension) ZAll() float64 { return p.zAll }

// fillZForward computes R[j1,j2] for every (j1,j2) reachable increasing
// from (i1,i2) up to (maxJ1,maxJ2): R[i1,i2]=w(EInit), R[j1,j2] = Σ over
// earlier points (p1,p2) of w(EInterLeft(p1,j1,p2,j2))·R[p1,p2]. This is
// the partition-function analogue of Zleft mirrored to run outward from
// a fixed left end instead of inward toward a fixed right end.
func fillZForward(w *energy.IdxOffset, i1, i2, maxJ1, maxJ2 int) map[cellKey]float64 {
	r := map[cellKey]float64{{i1, i2}: w.GetBoltzmannWeight(w.EInit())}
	for j1 := i1; j1 <= maxJ1; j1++ {
		for j2 := i2; j2 <= maxJ2; j2++ {
			if j1 == i1 && j2 == i2 {
				continue
			}
			if !w.IsAccessible1(j1) || !w.IsAccessible2(j2) {
				continue
			}
			if !w.AreComplementary(j1, j2) && !w.IsGU(j1, j2) {
				continue
			}
			var sum float64
			for p1 := i1; p1 < j1; p1++ {
				for p2 := i2; p2 < j2; p2++ {
					rp, ok := r[cellKey{p1, p2}]
					if !ok {
						continue
					}
					step := w.EInterLeft(p1, j1, p2, j2)
					if step >= energy.Infinity {
						continue
					}
					sum += w.GetBoltzmannWeight(step) * rp
				}
			}
			if sum > 0 {
				r[cellKey{j1, j2}] = sum
			}
		}
	}
	return r
}

// Predict fills Zall by enumerating every feasible seed and combining
// its Zleft/Zright ensembles across every boundary pair, then reports the
// Mfe2dSeed optimum within the boundaries of the single highest-weight
// combination.
func (p *MfeEns2dSeedExtension) Predict(r1, r2 idxrange.IndexRange, out output.Handler, tracker output.Tracker) error {
	if err := checkRange(p.e, r1, r2); err != nil {
		return err
	}
	w, err := offsetEnergy(p.e, r1, r2)
	if err != nil {
		return err
	}
	n1, n2 := r1.To-r1.From, r2.To-r2.From
	winR1 := idxrange.IndexRange{From: 0, To: n1}
	winR2 := idxrange.IndexRange{From: 0, To: n2}

	if _, err := p.sh.FillSeed(winR1, winR2); err != nil {
		return err
	}

	var zAll float64
	var bestWeight float64
	// zleft and zright each start from w(EInit); dividing their product
	// by wInit once counts E_init a single time per interaction.
	wInit := w.GetBoltzmannWeight(w.EInit())
	var bestL1, bestL2, bestR1, bestR2 int
	haveBest := false

	i1, i2, ok := p.sh.UpdateToNextSeed(-1, -1, winR1, winR2)
	for ok {
		seedE, errE := p.sh.GetSeedE(i1, i2)
		l1len, err1 := p.sh.GetSeedLength1(i1, i2)
		l2len, err2 := p.sh.GetSeedLength2(i1, i2)
		if errE == nil && err1 == nil && err2 == nil {
			sj1, sj2 := i1+l1len-1, i2+l2len-1
			if sj1 <= n1 && sj2 <= n2 {
				zleft := fillZFrame(w, i1, i2)
				wSeed := w.GetBoltzmannWeight(seedE)

				var zright map[cellKey]float64
				if p.heuristic {
					zright = map[cellKey]float64{{sj1, sj2}: w.GetBoltzmannWeight(w.EInit())}
				} else {
					zright = fillZForward(w, sj1, sj2, n1, n2)
				}

				for lk, zl := range zleft {
					for rk, zr := range zright {
						corrE, err := w.GetE(lk.i1, rk.i1, lk.i2, rk.i2, 0)
						if err != nil {
							continue
						}
						zPart := zl * wSeed * zr / wInit
						contribution := zPart * w.GetBoltzmannWeight(corrE)
						if contribution <= 0 {
							continue
						}
						warnOnOverflow(p.logger, p.e, zAll, contribution)
						zAll += contribution
						if tracker != nil {
							tracker.UpdateZ(lk.i1+w.Offset1(), rk.i1+w.Offset1(), lk.i2+w.Offset2(), rk.i2+w.Offset2(), zPart)
						}
						if contribution > bestWeight {
							bestWeight, bestL1, bestL2, bestR1, bestR2, haveBest = contribution, lk.i1, lk.i2, rk.i1, rk.i2, true
						}
					}
				}
			}
		}
		i1, i2, ok = p.sh.UpdateToNextSeed(i1, i2, winR1, winR2)
	}

	p.zAll = zAll
	if !haveBest || zAll <= 0 {
		return reportEmpty(out)
	}

	base := NewMfe2dSeed(p.e, false, p.sh)
	return base.Predict(idxrange.IndexRange{From: r1.From + bestL1, To: r1.From + bestR1}, idxrange.IndexRange{From: r2.From + bestL2, To: r2.From + bestR2}, out)
}
