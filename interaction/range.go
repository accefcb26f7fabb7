package interaction

import "github.com/bebop/intarna/idxrange"

// Range summarizes an Interaction by its endpoints in each sequence
// (seq1 ascending, seq2 descending, matching the reversed DP coordinate
// convention) plus the interaction's overall energy. It is the
// lightweight value predictors compare and sort by without carrying the
// full base pair list, grounded on spec.md §3's InteractionRange.
type Range struct {
	Seq1   idxrange.IndexRange
	Seq2   idxrange.IndexRange
	Energy float64
}

// FromInteraction builds a Range from ia's leftmost and rightmost base
// pairs. Panics if ia is empty; callers must check IsEmpty first.
func FromInteraction(ia *Interaction) Range {
	left, right := ia.Leftmost(), ia.Rightmost()
	return Range{
		Seq1:   idxrange.IndexRange{From: left.I1, To: right.I1},
		Seq2:   idxrange.IndexRange{From: left.I2, To: right.I2},
		Energy: ia.Energy,
	}
}

// IsSane reports whether Seq1 is ascending and Seq2 is descending, the
// invariant spec.md §3 requires of every InteractionRange.
func (r Range) IsSane() bool {
	return r.Seq1.IsAscending() && r.Seq2.IsDescending()
}
