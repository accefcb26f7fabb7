/*
Package accessibility holds the per-position accessibility constraint
model, the ED (unpaired-region) penalty abstraction predictors consume,
and the classic Nussinov partition helper that backs the lightweight
base-pair energy model's ED/ES queries.

The constraint parser follows the same strict, single-pass-over-bytes
style as the teacher's dot_bracket_parser: reject on the first character
outside the accepted alphabet instead of collecting multiple errors.
*/
package accessibility

import (
	"fmt"

	"github.com/bebop/intarna"
	"github.com/bebop/intarna/idxrange"
)

// Mark is the per-position classification produced by parsing a
// dot-bracket-like accessibility constraint string.
type Mark int

const (
	Unconstrained Mark = iota
	Blocked
	Accessible
	Paired
)

// Constraint annotates each position of a sequence of length N as
// unconstrained, blocked, forced-accessible, or intramolecularly paired,
// plus the maximum base-pair span permitted for intramolecular structure.
type Constraint struct {
	length     int
	maxBPSpan  int
	blocked    *idxrange.List
	accessible *idxrange.List
	paired     *idxrange.List
}

// NewUnconstrained returns a Constraint with no positional restrictions.
func NewUnconstrained(length, maxBPSpan int) *Constraint {
	return &Constraint{
		length:     length,
		maxBPSpan:  maxBPSpan,
		blocked:    idxrange.NewList(false),
		accessible: idxrange.NewList(false),
		paired:     idxrange.NewList(false),
	}
}

// ParseConstraint parses a dot-bracket-like string over the alphabet
// `. ( ) x b |` where `b`=blocked, `x`=forced accessible, `|`=intramolecularly
// paired, and `( )` are reserved (treated as unconstrained by the core).
func ParseConstraint(s string, maxBPSpan int) (*Constraint, error) {
	c := NewUnconstrained(len(s), maxBPSpan)
	blockedStart, accessibleStart, pairedStart := -1, -1, -1

	flush := func(start, i int, list *idxrange.List) error {
		if start < 0 {
			return nil
		}
		return list.PushBack(idxrange.IndexRange{From: start, To: i - 1})
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		isBlocked := ch == 'b'
		isAccessible := ch == 'x'
		isPaired := ch == '|'
		switch ch {
		case '.', '(', ')', 'x', 'b', '|':
			// accepted alphabet
		default:
			return nil, fmt.Errorf("%w: invalid accessibility constraint character %q at position %d", intarna.ErrBadConstraint, ch, i)
		}

		if !isBlocked && blockedStart >= 0 {
			if err := flush(blockedStart, i, c.blocked); err != nil {
				return nil, fmt.Errorf("%w: %v", intarna.ErrBadConstraint, err)
			}
			blockedStart = -1
		}
		if !isAccessible && accessibleStart >= 0 {
			if err := flush(accessibleStart, i, c.accessible); err != nil {
				return nil, fmt.Errorf("%w: %v", intarna.ErrBadConstraint, err)
			}
			accessibleStart = -1
		}
		if !isPaired && pairedStart >= 0 {
			if err := flush(pairedStart, i, c.paired); err != nil {
				return nil, fmt.Errorf("%w: %v", intarna.ErrBadConstraint, err)
			}
			pairedStart = -1
		}

		if isBlocked && blockedStart < 0 {
			blockedStart = i
		}
		if isAccessible && accessibleStart < 0 {
			accessibleStart = i
		}
		if isPaired && pairedStart < 0 {
			pairedStart = i
		}
	}
	if err := flush(blockedStart, len(s), c.blocked); err != nil {
		return nil, fmt.Errorf("%w: %v", intarna.ErrBadConstraint, err)
	}
	if err := flush(accessibleStart, len(s), c.accessible); err != nil {
		return nil, fmt.Errorf("%w: %v", intarna.ErrBadConstraint, err)
	}
	if err := flush(pairedStart, len(s), c.paired); err != nil {
		return nil, fmt.Errorf("%w: %v", intarna.ErrBadConstraint, err)
	}
	return c, nil
}

// Length returns the length of the constrained sequence.
func (c *Constraint) Length() int { return c.length }

// MaxBPSpan returns the configured maximum intramolecular base-pair span.
func (c *Constraint) MaxBPSpan() int { return c.maxBPSpan }

// IsMarkedBlocked reports whether position i is blocked.
func (c *Constraint) IsMarkedBlocked(i int) bool { return c.blocked.Covers(i) }

// IsMarkedAccessible reports whether position i is forced-accessible.
func (c *Constraint) IsMarkedAccessible(i int) bool { return c.accessible.Covers(i) }

// IsMarkedPaired reports whether position i is marked intramolecularly
// paired.
func (c *Constraint) IsMarkedPaired(i int) bool { return c.paired.Covers(i) }

// IsUnconstrained reports whether position i carries no annotation at all.
func (c *Constraint) IsUnconstrained(i int) bool {
	return !c.IsMarkedBlocked(i) && !c.IsMarkedAccessible(i) && !c.IsMarkedPaired(i)
}

// IsAccessible reports whether position i may participate in an
// intermolecular interaction: not blocked and not intramolecularly paired.
func (c *Constraint) IsAccessible(i int) bool {
	return !c.IsMarkedBlocked(i) && !c.IsMarkedPaired(i)
}

// GetVrnaDotBracket maps position i to the character the energy back-end
// should see: both `x` and `b` are rendered as `x` (forced unpaired from
// the back-end's perspective), `|` remains `|`, anything else is `.`.
func (c *Constraint) GetVrnaDotBracket(i int) byte {
	switch {
	case c.IsMarkedBlocked(i), c.IsMarkedAccessible(i):
		return 'x'
	case c.IsMarkedPaired(i):
		return '|'
	default:
		return '.'
	}
}
