package predictor

import (
	"log"

	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
	"github.com/bebop/intarna/output"
)

// MfeEns2d computes the partition function Zall over a window by
// replacing Mfe2d's min with + and every energy with its Boltzmann
// weight (spec.md §4.10). It reports either the minimum-energy
// interaction (ReportMfe, delegating to Mfe2d's own fill/traceback for
// the reported structure) or the maximum-probability single component
// (ReportMaxProb, the PredictorMaxProb variant supplemented from
// original_source/src/IntaRNA/PredictorMaxProb.h).
type MfeEns2d struct {
	e          energy.InteractionEnergy
	reportMode ReportMode
	zAll       float64
	logger     *log.Logger
}

// NewMfeEns2d returns a partition-function predictor reporting under
// mode, logging partition-overflow warnings to log.Default().
func NewMfeEns2d(e energy.InteractionEnergy, mode ReportMode) *MfeEns2d {
	return &MfeEns2d{e: e, reportMode: mode, logger: log.Default()}
}

// SetLogger overrides the logger used for partition-overflow warnings;
// a nil logger disables the warning.
func (p *MfeEns2d) SetLogger(l *log.Logger) { p.logger = l }

// ZAll returns the total partition function computed by the most recent
// Predict call.
func (p *MfeEns2d) ZAll() float64 { return p.zAll }

// fillZFrame is Mfe2d.fillFrame with + replacing min and Boltzmann
// weights replacing raw energies (spec.md §4.10).
func fillZFrame(w *energy.IdxOffset, j1, j2 int) map[cellKey]float64 {
	z := map[cellKey]float64{{j1, j2}: w.GetBoltzmannWeight(w.EInit())}
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
			var sum float64
			for k1 := i1 + 1; k1 <= j1; k1++ {
				for k2 := i2 + 1; k2 <= j2; k2++ {
					zk, ok := z[cellKey{k1, k2}]
					if !ok {
						continue
					}
					step := w.EInterLeft(i1, k1, i2, k2)
					if step >= energy.Infinity {
						continue
					}
					sum += w.GetBoltzmannWeight(step) * zk
				}
			}
			if sum > 0 {
				z[cellKey{i1, i2}] = sum
			}
		}
	}
	return z
}

// Predict fills Zall over r1 x r2, optionally driving tracker with every
// sub-partition it visits, and reports the interaction selected by
// reportMode.
func (p *MfeEns2d) Predict(r1, r2 idxrange.IndexRange, out output.Handler, tracker output.Tracker) error {
	if err := checkRange(p.e, r1, r2); err != nil {
		return err
	}
	w, err := offsetEnergy(p.e, r1, r2)
	if err != nil {
		return err
	}
	n1, n2 := r1.To-r1.From, r2.To-r2.From

	var zAll float64
	var bestWeight float64
	var bestI1, bestI2, bestJ1, bestJ2 int
	haveBest := false

	for j1 := n1; j1 >= 0; j1-- {
		if !w.IsAccessible1(j1) {
			continue
		}
		for j2 := n2; j2 >= 0; j2-- {
			if !w.IsAccessible2(j2) || (!w.AreComplementary(j1, j2) && !w.IsGU(j1, j2)) {
				continue
			}
			z := fillZFrame(w, j1, j2)
			for i1 := 0; i1 <= j1; i1++ {
				for i2 := 0; i2 <= j2; i2++ {
					zv, ok := z[cellKey{i1, i2}]
					if !ok {
						continue
					}
					corrE, err := w.GetE(i1, j1, i2, j2, 0)
					if err != nil {
						continue
					}
					weight := w.GetBoltzmannWeight(corrE)
					contribution := zv * weight
					warnOnOverflow(p.logger, p.e, zAll, contribution)
					zAll += contribution
					if tracker != nil {
						tracker.UpdateZ(i1+w.Offset1(), j1+w.Offset1(), i2+w.Offset2(), j2+w.Offset2(), zv)
					}
					if contribution > bestWeight {
						bestWeight, bestI1, bestI2, bestJ1, bestJ2, haveBest = contribution, i1, i2, j1, j2, true
					}
				}
			}
		}
	}
	p.zAll = zAll

	if !haveBest || zAll <= 0 {
		return reportEmpty(out)
	}

	if p.reportMode == ReportMaxProb {
		base := NewMfe2d(p.e, false)
		h := base.fillFrame(w, r1, r2, bestJ1, bestJ2)
		bps := base.traceBack(w, h, bestI1, bestI2, bestJ1, bestJ2)
		bps = append(bps, interaction.BasePair{I1: bestJ1, I2: bestJ2})
		total, err := w.GetE(bestI1, bestJ1, bestI2, bestJ2, h[cellKey{bestI1, bestI2}])
		if err != nil {
			return err
		}
		ia := buildInteraction(w, bps, total)
		return out.Add(ia)
	}

	base := NewMfe2d(p.e, false)
	return base.Predict(r1, r2, out)
}
