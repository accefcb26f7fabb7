package intarna

import "errors"

// The error taxonomy is flat and recoverable only at call boundaries: a
// predict() call discards its internal state on failure and returns one of
// these sentinels (wrapped with fmt.Errorf("...: %w", ...) at the raise
// site) rather than panicking. Use errors.Is to discriminate.
var (
	// ErrBadSequence signals an IUPAC-invalid character, an empty sequence,
	// or a mismatched sequence identifier.
	ErrBadSequence = errors.New("bad sequence")

	// ErrBadConstraint signals an AccessibilityConstraint parsing failure,
	// an IndexRangeList parsing failure, or an explicit-seed parse failure.
	ErrBadConstraint = errors.New("bad constraint")

	// ErrBadIndex signals predict(r1, r2) called with non-ascending or
	// out-of-bounds ranges, or getED(i,j) called outside 0 <= i <= j < size.
	ErrBadIndex = errors.New("bad index")

	// ErrNotImplemented signals an unsupported combination, such as
	// sub-optimal non-overlap enumeration in a partition-function
	// predictor, or no-LP mode in MfeEns2dSeedExtension.
	ErrNotImplemented = errors.New("not implemented")

	// ErrPartitionOverflow is informational, not a predict()-failing
	// error (mirrors original_source/src/IntaRNA/PredictorMfeEns.cpp's
	// updateZ() overflow check): a partition-function predictor logs a
	// warning wrapping this sentinel when an accumulation step would
	// overflow float64 rather than aborting the run.
	ErrPartitionOverflow = errors.New("partition function overflow")
)

// NoFeasibleSeed is informational, not a Go error: a predictor facing no
// feasible seed reports the empty interaction (energy 0, no base pairs)
// through the normal OutputHandler path rather than failing predict().
// It is kept here only as a named constant for callers that want to
// recognize that case explicitly.
const NoFeasibleSeedEnergy float64 = 0
