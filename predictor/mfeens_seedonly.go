package predictor

import (
	"log"

	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
	"github.com/bebop/intarna/output"
	"github.com/bebop/intarna/seed"
)

// MfeEnsSeedOnly enumerates only seeds (no extension): for every
// feasible seed it contributes w(SeedE+EInit)·w(extra ED/end/dangle
// terms) to Zall and reports the minimum-energy seed as the mfe
// interaction (spec.md §4.10).
type MfeEnsSeedOnly struct {
	e      energy.InteractionEnergy
	sh     seed.Handler
	zAll   float64
	logger *log.Logger
}

// NewMfeEnsSeedOnly returns a seed-only partition-function predictor,
// logging partition-overflow warnings to log.Default(). sh must already
// address the same coordinate frame Predict's r1/r2 window will use
// (e.g. a seed.IdxOffset positioned at r1.From/r2.From, mirroring how
// the energy façade itself is offset per spec.md §4.6 step 1: "handlers
// likewise").
func NewMfeEnsSeedOnly(e energy.InteractionEnergy, sh seed.Handler) *MfeEnsSeedOnly {
	return &MfeEnsSeedOnly{e: e, sh: sh, logger: log.Default()}
}

// SetLogger overrides the logger used for partition-overflow warnings;
// a nil logger disables the warning.
func (p *MfeEnsSeedOnly) SetLogger(l *log.Logger) { p.logger = l }

func (p *MfeEnsSeedOnly) ZAll() float64 { return p.zAll }

// Predict enumerates every feasible seed in r1 x r2, accumulates Zall,
// and reports the minimum-energy seed (trimmed of its own right-most
// bp per TraceBackSeed's convention, then closed with that bp) as the
// mfe interaction.
func (p *MfeEnsSeedOnly) Predict(r1, r2 idxrange.IndexRange, out output.Handler, tracker output.Tracker) error {
	if err := checkRange(p.e, r1, r2); err != nil {
		return err
	}
	w, err := offsetEnergy(p.e, r1, r2)
	if err != nil {
		return err
	}
	n1, n2 := r1.To-r1.From, r2.To-r2.From
	win1 := idxrange.IndexRange{From: 0, To: n1}
	win2 := idxrange.IndexRange{From: 0, To: n2}
	if _, err := p.sh.FillSeed(win1, win2); err != nil {
		return err
	}

	var zAll float64
	bestE := energy.Infinity
	var bestI1, bestI2 int
	haveBest := false

	i1, i2, ok := p.sh.UpdateToNextSeed(-1, -1, win1, win2)
	for ok {
		seedE, errE := p.sh.GetSeedE(i1, i2)
		l1, err1 := p.sh.GetSeedLength1(i1, i2)
		l2, err2 := p.sh.GetSeedLength2(i1, i2)
		if errE == nil && err1 == nil && err2 == nil {
			j1, j2 := i1+l1-1, i2+l2-1
			hybrid := seedE + w.EInit()
			total, err := w.GetE(i1, j1, i2, j2, hybrid)
			if err == nil {
				contribution := w.GetBoltzmannWeight(total)
				warnOnOverflow(p.logger, p.e, zAll, contribution)
				zAll += contribution
				if tracker != nil {
					tracker.UpdateZ(i1+w.Offset1(), j1+w.Offset1(), i2+w.Offset2(), j2+w.Offset2(), w.GetBoltzmannWeight(hybrid))
				}
				if total < bestE {
					bestE, bestI1, bestI2, haveBest = total, i1, i2, true
				}
			}
		}
		i1, i2, ok = p.sh.UpdateToNextSeed(i1, i2, win1, win2)
	}
	p.zAll = zAll

	if !haveBest || zAll <= 0 {
		return reportEmpty(out)
	}

	l1, _ := p.sh.GetSeedLength1(bestI1, bestI2)
	l2, _ := p.sh.GetSeedLength2(bestI1, bestI2)
	j1, j2 := bestI1+l1-1, bestI2+l2-1
	inner := &interaction.Interaction{}
	if err := p.sh.TraceBackSeed(inner, bestI1, bestI2); err != nil {
		return err
	}
	bps := append(inner.BasePairs, interaction.BasePair{I1: j1, I2: j2})
	ia := buildInteraction(w, bps, bestE)
	if err := p.sh.AddSeeds(ia); err != nil {
		return err
	}
	return out.Add(ia)
}
