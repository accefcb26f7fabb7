/*
Package predictor implements the DP predictor family from spec.md
§4.6–§4.12: Mfe2d (exact mfe), Mfe2dSeed (mandatory seed), Mfe2dHeuristic
(+Seed), the partition-function MfeEns2d family, and MfeEnsSeedOnly.
Every predictor shares the common shape of spec.md §4.6: set the energy
façade's window offsets, fill a per-right-end-frame DP table, and report
through an output.Handler. The explicit nested-loop matrix-fill followed
by a traceback-by-recomputation (rather than retaining parent pointers)
is grounded on the teacher's align package (NeedlemanWunsch/
SmithWaterman): both recompute the fill matrix during traceback and walk
it by re-testing which recurrence branch produced each cell's value.
*/
package predictor

import (
	"fmt"
	"log"
	"math"

	"github.com/bebop/intarna"
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
	"github.com/bebop/intarna/output"
)

// OverlapMode controls which previously reported interactions a next-best
// enumeration pass is permitted to overlap (spec.md §4.12).
type OverlapMode int

const (
	// OverlapNeither forbids overlap with any previously reported site on
	// either strand.
	OverlapNeither OverlapMode = iota
	// OverlapBoth permits full overlap; the only mode exact (non-
	// heuristic) predictors support for reportMax > 1.
	OverlapBoth
)

// ReportMode selects which cell a partition-function predictor reports
// as "the" interaction (spec.md §7 supplement: PredictorMaxProb).
type ReportMode int

const (
	// ReportMfe reports the minimum-energy cell.
	ReportMfe ReportMode = iota
	// ReportMaxProb reports the cell with maximal Z(i1,i2)/Zall.
	ReportMaxProb
)

// cellKey addresses one DP cell within a right-end frame.
type cellKey struct{ i1, i2 int }

// checkRange validates a predict() range against spec.md §7's BadIndex
// class: ascending, within the façade's bounds.
func checkRange(e energy.InteractionEnergy, r1, r2 idxrange.IndexRange) error {
	if !r1.IsAscending() || !r2.IsAscending() {
		return fmt.Errorf("%w: predict ranges must be ascending, got %+v and %+v", intarna.ErrBadIndex, r1, r2)
	}
	if r1.From < 0 || r1.To >= e.Size1() || r2.From < 0 || r2.To >= e.Size2() {
		return fmt.Errorf("%w: predict ranges out of bounds for sizes (%d,%d)", intarna.ErrBadIndex, e.Size1(), e.Size2())
	}
	return nil
}

// offsetEnergy wraps e in an energy.IdxOffset positioned at r1.From/
// r2.From, so inner DP code can address cells relative to the window
// (spec.md §4.6 step 1).
func offsetEnergy(e energy.InteractionEnergy, r1, r2 idxrange.IndexRange) (*energy.IdxOffset, error) {
	w := energy.NewIdxOffset(e)
	if err := w.SetOffset1(r1.From); err != nil {
		return nil, err
	}
	if err := w.SetOffset2(r2.From); err != nil {
		return nil, err
	}
	return w, nil
}

// reportEmpty reports the "no favorable interaction" sentinel through
// out, matching spec.md §7's NoFeasibleSeed convention: informational,
// not an error.
func reportEmpty(out output.Handler) error {
	return out.Add(interaction.NewEmpty(nil, nil))
}

// buildInteraction assembles a reported Interaction from a base pair
// list (leftmost to rightmost, both endpoints inclusive) and its total
// energy, translating window-local coordinates back to absolute ones
// via the offsets carried by w.
func buildInteraction(w *energy.IdxOffset, bps []interaction.BasePair, total float64) *interaction.Interaction {
	abs := make([]interaction.BasePair, len(bps))
	for i, bp := range bps {
		abs[i] = interaction.BasePair{I1: bp.I1 + w.Offset1(), I2: bp.I2 + w.Offset2()}
	}
	return &interaction.Interaction{BasePairs: abs, Energy: total}
}

// warnOnOverflow logs a warning wrapping ErrPartitionOverflow when adding
// contribution to zAll would overflow float64, mirroring
// original_source/src/IntaRNA/PredictorMfeEns.cpp's updateZ() overflow
// check. ErrPartitionOverflow is informational (spec.md §7): it is
// logged, not returned, so a near-overflow run still completes. The log
// line is tagged with both sequences' ShortID so a long-running batch's
// warnings can be traced back to the offending pair.
func warnOnOverflow(logger *log.Logger, e energy.InteractionEnergy, zAll, contribution float64) {
	if logger == nil {
		return
	}
	if math.MaxFloat64-contribution <= zAll {
		logger.Printf("%s: seq1=%s seq2=%s", intarna.ErrPartitionOverflow, e.Seq1().ShortID(), e.Seq2().ShortID())
	}
}
