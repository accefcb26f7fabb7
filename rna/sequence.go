/*
Package rna holds the IUPAC-encoded RNA sequence type shared by every
other package in this module: complementarity and GU-pair tests,
user-facing index translation, and reversed-index arithmetic.

The encode/validate pass follows the same shape as the teacher's single-
molecule folding engine (encodeSequence / ensureValidRNA in the upstream
mfe package): normalize to upper case, reject anything outside ACGU/N,
and keep both the string and a numeric code vector so the energy façade
never has to re-derive one from the other.
*/
package rna

import (
	"fmt"
	"strings"

	"github.com/bebop/intarna"
	"lukechampine.com/blake3"

	"golang.org/x/crypto/blake2b"
)

// code values used throughout this module's nearest-neighbor tables.
// 0 is reserved for "no base" so a zero-valued code vector is never
// mistaken for a valid sequence.
const (
	CodeA = 1
	CodeC = 2
	CodeG = 3
	CodeU = 4
	CodeN = 5
)

var nucleotideCode = map[byte]int{
	'A': CodeA,
	'C': CodeC,
	'G': CodeG,
	'U': CodeU,
	'N': CodeN,
}

// Sequence is an IUPAC-encoded, upper-cased RNA sequence together with an
// integer code vector and a caller-chosen 1-based (or custom-origin) index
// offset. Only ACGU/N survive normalization; all internal indices are
// 0-based, translated from and to the caller's origin at the boundary.
type Sequence struct {
	id     string
	seq    string
	codes  []int
	origin int // the user-visible index of internal position 0
}

// NewSequence validates and encodes sequence under identifier id. origin is
// the user-visible index that corresponds to internal position 0 (1 for the
// conventional 1-based convention).
func NewSequence(id, sequence string, origin int) (*Sequence, error) {
	if len(sequence) == 0 {
		return nil, fmt.Errorf("%w: sequence %q is empty", intarna.ErrBadSequence, id)
	}
	upper := strings.ToUpper(sequence)
	codes := make([]int, len(upper))
	for i := 0; i < len(upper); i++ {
		code, ok := nucleotideCode[upper[i]]
		if !ok {
			return nil, fmt.Errorf("%w: sequence %q contains invalid character %q at position %d (only ACGU/N allowed)", intarna.ErrBadSequence, id, upper[i], i)
		}
		codes[i] = code
	}
	return &Sequence{id: id, seq: upper, codes: codes, origin: origin}, nil
}

// ID returns the sequence identifier.
func (s *Sequence) ID() string { return s.id }

// Size returns the number of nucleotides in the sequence.
func (s *Sequence) Size() int { return len(s.seq) }

// At returns the upper-cased base at 0-based internal position i.
func (s *Sequence) At(i int) byte { return s.seq[i] }

// CodeAt returns the numeric code (CodeA..CodeN) at 0-based internal
// position i.
func (s *Sequence) CodeAt(i int) int { return s.codes[i] }

// String returns the full normalized sequence.
func (s *Sequence) String() string { return s.seq }

// ToUserIndex maps a 0-based internal position to the caller's origin
// (getInOutIndex in the spec).
func (s *Sequence) ToUserIndex(i int) int { return i + s.origin }

// FromUserIndex maps a caller-origin position back to a 0-based internal
// position (getIndex in the spec). ToUserIndex and FromUserIndex are
// mutual inverses: s.FromUserIndex(s.ToUserIndex(i)) == i for all valid i.
func (s *Sequence) FromUserIndex(i int) int { return i - s.origin }

// ReversedIndex returns the position mirrored end-to-end: newIdx =
// size-1-oldIdx. Applying it twice is the identity.
func (s *Sequence) ReversedIndex(i int) int { return s.Size() - 1 - i }

// AreComplementary reports whether the base at i in s and the base at j in
// other form a Watson-Crick pair (A-U or C-G).
func AreComplementary(s *Sequence, other *Sequence, i, j int) bool {
	a, b := s.CodeAt(i), other.CodeAt(j)
	switch {
	case a == CodeA && b == CodeU, a == CodeU && b == CodeA:
		return true
	case a == CodeC && b == CodeG, a == CodeG && b == CodeC:
		return true
	}
	return false
}

// IsGU reports whether the base at i in s and the base at j in other form a
// wobble G-U pair.
func IsGU(s *Sequence, other *Sequence, i, j int) bool {
	a, b := s.CodeAt(i), other.CodeAt(j)
	return (a == CodeG && b == CodeU) || (a == CodeU && b == CodeG)
}

// IsPair reports whether the two positions form either a Watson-Crick or a
// wobble pair; this is the "complementary" test used when the energy model
// has GU pairs enabled.
func IsPair(s *Sequence, other *Sequence, i, j int, allowGU bool) bool {
	if AreComplementary(s, other, i, j) {
		return true
	}
	return allowGU && IsGU(s, other, i, j)
}

// Digest returns a BLAKE3 digest of the normalized sequence, used as a
// cheap identity check ahead of full structural comparisons (see
// output.interactionKey, the deduplication key of output.InteractionList).
func (s *Sequence) Digest() [32]byte {
	return blake3.Sum256([]byte(s.seq))
}

// ShortID returns a short, stable hex identifier for the sequence derived
// from BLAKE2b-256, suitable for log lines and report headers where a full
// BLAKE3 digest would be noisy.
func (s *Sequence) ShortID() string {
	sum := blake2b.Sum256([]byte(s.seq))
	return fmt.Sprintf("%x", sum[:6])
}
