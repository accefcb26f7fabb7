/*
Package idxrange implements IndexRange and IndexRangeList: ascending
[from,to] intervals over 0-based internal positions, and a sorted list of
such intervals used throughout this module to describe accessibility
constraints, seed/helix windows, and already-reported interaction sites.

The string codec matches spec.md's regex `^(\d+-\d+,)*\d+-\d+$` with
1-based I/O, parsed with the same strict, explicit-loop style as the
teacher's secondary_structure/dot_bracket.go pairTable parser: reject on
the first malformed token rather than trying to recover.
*/
package idxrange

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bebop/intarna"
)

// IndexRange is an ascending, inclusive [From,To] interval over 0-based
// internal positions.
type IndexRange struct {
	From, To int
}

// IsAscending reports whether From <= To.
func (r IndexRange) IsAscending() bool { return r.From <= r.To }

// IsDescending reports whether From >= To (used by InteractionRange's
// seq2 endpoint, which runs 3' to 5' relative to seq1).
func (r IndexRange) IsDescending() bool { return r.From >= r.To }

// Covers reports whether i falls within the range.
func (r IndexRange) Covers(i int) bool { return i >= r.From && i <= r.To }

// CoversRange reports whether [from,to] is fully contained in the range.
func (r IndexRange) CoversRange(from, to int) bool {
	return from >= r.From && to <= r.To
}

// Overlaps reports whether the two ranges share at least one position.
func (r IndexRange) Overlaps(other IndexRange) bool {
	return r.From <= other.To && other.From <= r.To
}

// Less provides the lexicographic total order on (From,To), used to keep
// an IndexRangeList sorted.
func (r IndexRange) Less(other IndexRange) bool {
	if r.From != other.From {
		return r.From < other.From
	}
	return r.To < other.To
}

// List is a sorted, optionally-overlap-permitting container of
// IndexRanges.
type List struct {
	ranges        []IndexRange
	allowOverlaps bool
}

// NewList returns an empty list. When allowOverlaps is false, Insert
// rejects a range that overlaps an existing member.
func NewList(allowOverlaps bool) *List {
	return &List{allowOverlaps: allowOverlaps}
}

// Len returns the number of ranges in the list.
func (l *List) Len() int { return len(l.ranges) }

// At returns the range at sorted position i.
func (l *List) At(i int) IndexRange { return l.ranges[i] }

// All returns the ranges in sorted order. The returned slice must not be
// mutated by the caller.
func (l *List) All() []IndexRange { return l.ranges }

// PushBack appends r, which must sort at or after the current last element;
// this preserves order in O(1) for already-sorted input instead of
// resorting on every insertion.
func (l *List) PushBack(r IndexRange) error {
	if n := len(l.ranges); n > 0 && r.Less(l.ranges[n-1]) {
		return fmt.Errorf("%w: pushed range %v is out of order after %v", intarna.ErrBadIndex, r, l.ranges[n-1])
	}
	if !l.allowOverlaps && l.overlapsAny(r) {
		return fmt.Errorf("%w: range %v overlaps an existing range", intarna.ErrBadIndex, r)
	}
	l.ranges = append(l.ranges, r)
	return nil
}

// Insert places r at its sorted position, regardless of the order ranges
// were added in.
func (l *List) Insert(r IndexRange) error {
	if !l.allowOverlaps && l.overlapsAny(r) {
		return fmt.Errorf("%w: range %v overlaps an existing range", intarna.ErrBadIndex, r)
	}
	i := sort.Search(len(l.ranges), func(i int) bool { return r.Less(l.ranges[i]) })
	l.ranges = append(l.ranges, IndexRange{})
	copy(l.ranges[i+1:], l.ranges[i:])
	l.ranges[i] = r
	return nil
}

func (l *List) overlapsAny(r IndexRange) bool {
	for _, existing := range l.ranges {
		if existing.Overlaps(r) {
			return true
		}
	}
	return false
}

// Covers reports whether position i is covered by any range in the list.
func (l *List) Covers(i int) bool {
	for _, r := range l.ranges {
		if r.Covers(i) {
			return true
		}
	}
	return false
}

// CoversRange reports whether some single range in the list fully covers
// [from,to].
func (l *List) CoversRange(from, to int) bool {
	for _, r := range l.ranges {
		if r.CoversRange(from, to) {
			return true
		}
	}
	return false
}

// Overlaps reports whether any range in the list overlaps other.
func (l *List) Overlaps(other IndexRange) bool {
	return l.overlapsAny(other)
}

// Shift translates every range by delta, dropping or truncating ranges
// that cross the [0,indexMax] boundary: a range entirely outside the
// boundary is dropped, a range straddling it is truncated to the
// in-bounds portion.
func (l *List) Shift(delta, indexMax int) *List {
	shifted := NewList(l.allowOverlaps)
	for _, r := range l.ranges {
		from, to := r.From+delta, r.To+delta
		if to < 0 || from > indexMax {
			continue
		}
		if from < 0 {
			from = 0
		}
		if to > indexMax {
			to = indexMax
		}
		_ = shifted.PushBack(IndexRange{From: from, To: to})
	}
	return shifted
}

// Reverse mirrors every range end-to-end within a sequence of length
// seqLen: newIdx = seqLen-1-oldIdx. The resulting list is re-sorted since
// mirroring reverses relative order.
func (l *List) Reverse(seqLen int) *List {
	reversed := NewList(l.allowOverlaps)
	for _, r := range l.ranges {
		newFrom := seqLen - 1 - r.To
		newTo := seqLen - 1 - r.From
		_ = reversed.Insert(IndexRange{From: newFrom, To: newTo})
	}
	return reversed
}

// String encodes the list as 1-based inclusive "from-to(,from-to)*",
// matching spec.md's IndexRangeList string codec.
func (l *List) String() string {
	parts := make([]string, len(l.ranges))
	for i, r := range l.ranges {
		parts[i] = fmt.Sprintf("%d-%d", r.From+1, r.To+1)
	}
	return strings.Join(parts, ",")
}

// FromString parses the "from-to(,from-to)*" 1-based codec into a List.
// Parsing is strict: any malformed token is rejected with ErrBadConstraint.
func FromString(s string, allowOverlaps bool) (*List, error) {
	list := NewList(allowOverlaps)
	if s == "" {
		return list, nil
	}
	for _, token := range strings.Split(s, ",") {
		parts := strings.SplitN(token, "-", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: malformed range token %q", intarna.ErrBadConstraint, token)
		}
		from, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%w: malformed range start %q: %v", intarna.ErrBadConstraint, parts[0], err)
		}
		to, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: malformed range end %q: %v", intarna.ErrBadConstraint, parts[1], err)
		}
		if from < 1 || to < from {
			return nil, fmt.Errorf("%w: range %q is not a valid ascending 1-based interval", intarna.ErrBadConstraint, token)
		}
		if err := list.PushBack(IndexRange{From: from - 1, To: to - 1}); err != nil {
			return nil, fmt.Errorf("%w: %v", intarna.ErrBadConstraint, err)
		}
	}
	return list, nil
}
