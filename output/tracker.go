package output

import "github.com/bebop/intarna/energy"

// Tracker is notified of every sub-partition Z(i1,j1,i2,j2) a
// partition-function predictor computes (spec.md §4.11's
// PredictionTracker.updateZ). It is the extension point
// PredictionTrackerBasePairProb is built from.
type Tracker interface {
	UpdateZ(i1, j1, i2, j2 int, zPart float64)
}

// bpKey identifies one intermolecular base pair for tallying.
type bpKey struct{ i1, i2 int }

// BasePairProbTracker accumulates per-base-pair probability tallies
// across every reported sub-partition: for a sub-interaction
// (i1,j1,i2,j2) with partition zPart, it adds
// zPart*w(getE(i1,j1,i2,j2,0))/Zall to the tally of its left-most bp
// (i1,i2) only; the other bps the sub-interaction contains, including
// (j1,j2), receive nothing from that call.
// Grounded on original_source/src/IntaRNA/PredictionTrackerBasePairProb.cpp's
// per-bp tally-then-normalize pattern.
type BasePairProbTracker struct {
	e     energy.InteractionEnergy
	zAll  float64
	tally map[bpKey]float64
}

// NewBasePairProbTracker returns a tracker reading zAll (the predictor's
// total partition function) to normalize its tallies.
func NewBasePairProbTracker(e energy.InteractionEnergy, zAll float64) *BasePairProbTracker {
	return &BasePairProbTracker{e: e, zAll: zAll, tally: make(map[bpKey]float64)}
}

// UpdateZ adds the frame's contribution to the tally of its left-most bp
// (i1,i2) alone; callers invoke this once per sub-partition frame as the
// predictor fills it, so each bp accumulates contributions only from the
// sub-partitions whose left end it is.
func (t *BasePairProbTracker) UpdateZ(i1, j1, i2, j2 int, zPart float64) {
	eTotal, err := t.e.GetE(i1, j1, i2, j2, 0)
	if err != nil || t.zAll <= 0 {
		return
	}
	w := t.e.GetBoltzmannWeight(eTotal)
	t.tally[bpKey{i1, i2}] += zPart * w / t.zAll
}

// Prob returns the accumulated marginal probability of base pair
// (i1,i2), clamped to [0,1] per spec.md §8-8.
func (t *BasePairProbTracker) Prob(i1, i2 int) float64 {
	p := t.tally[bpKey{i1, i2}]
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// All returns every tracked base pair's probability.
func (t *BasePairProbTracker) All() map[[2]int]float64 {
	out := make(map[[2]int]float64, len(t.tally))
	for k, v := range t.tally {
		out[[2]int{k.i1, k.i2}] = v
	}
	return out
}
