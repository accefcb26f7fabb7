package accessibility

import (
	"math"

	"github.com/bebop/intarna/rna"
)

// unfilled marks a Nussinov DP cell that has not yet been computed, in the
// same lazy-memoization-by-sentinel style the teacher's energyParams
// construction uses (build once, read many).
const unfilled = -1.0

// NussinovHandler computes classic Nussinov partition functions Q(i,j)
// (unconstrained) and Qb(i,j) (base-paired at i-j) for a single sequence,
// plus the derived unpaired/base-paired marginal probabilities Pu/Pbp.
// These feed the base-pair energy model's ED and ES computations.
type NussinovHandler struct {
	seq        *rna.Sequence
	basePairE  float64 // Ebp, a negative bonus per base pair
	rt         float64
	minLoopLen int
	allowGU    bool

	q, qb [][]float64
}

// NewNussinovHandler constructs a handler over seq with per-base-pair bonus
// energy basePairE (kcal/mol, negative), gas constant RT, minimum hairpin
// loop length minLoopLen, and whether GU pairs are permitted.
func NewNussinovHandler(seq *rna.Sequence, basePairE, rt float64, minLoopLen int, allowGU bool) *NussinovHandler {
	n := seq.Size()
	h := &NussinovHandler{seq: seq, basePairE: basePairE, rt: rt, minLoopLen: minLoopLen, allowGU: allowGU}
	h.q = newFilledMatrix(n, unfilled)
	h.qb = newFilledMatrix(n, unfilled)
	return h
}

func newFilledMatrix(n int, fill float64) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = fill
		}
	}
	return m
}

func (h *NussinovHandler) weight(e float64) float64 {
	return math.Exp(-e / h.rt)
}

func (h *NussinovHandler) pairs(i, j int) bool {
	if rna.AreComplementary(h.seq, h.seq, i, j) {
		return true
	}
	return h.allowGU && rna.IsGU(h.seq, h.seq, i, j)
}

// Qb returns the partition function restricted to structures where i and j
// form a base pair. Returns 0 if i and j cannot pair or are too close.
func (h *NussinovHandler) Qb(i, j int) float64 {
	if i < 0 || j >= h.seq.Size() || i >= j {
		return 0
	}
	if h.qb[i][j] != unfilled {
		return h.qb[i][j]
	}
	var result float64
	if j <= i+h.minLoopLen {
		result = 0
	} else if h.pairs(i, j) {
		result = h.Q(i+1, j-1) * h.weight(h.basePairE)
	}
	h.qb[i][j] = result
	return result
}

// Q returns the unconstrained Nussinov partition function for region
// [i,j].
func (h *NussinovHandler) Q(i, j int) float64 {
	if i > j {
		return 1
	}
	if h.q[i][j] != unfilled {
		return h.q[i][j]
	}
	var result float64
	if j <= i+h.minLoopLen {
		result = 1
	} else {
		result = h.Q(i, j-1)
		for k := i + h.minLoopLen + 1; k <= j; k++ {
			result += h.Q(i, k-1) * h.Qb(k, j)
		}
	}
	h.q[i][j] = result
	return result
}

// Pu returns the probability that region [i,j] is entirely unpaired,
// computed as the standard outside/inside factorization: the partition of
// the full sequence with [i,j] forced unpaired, divided by the partition
// of the full sequence.
func (h *NussinovHandler) Pu(i, j int) float64 {
	n := h.seq.Size()
	total := h.Q(0, n-1)
	if total == 0 {
		return 0
	}
	left := h.Q(0, i-1)
	right := h.Q(j+1, n-1)
	return (left * right) / total
}

// Pbp returns the probability that i and j form a base pair within the
// full ensemble, via the outside contribution of Qb(i,j).
func (h *NussinovHandler) Pbp(i, j int) float64 {
	n := h.seq.Size()
	total := h.Q(0, n-1)
	if total == 0 {
		return 0
	}
	left := h.Q(0, i-1)
	right := h.Q(j+1, n-1)
	return (left * h.Qb(i, j) * right) / total
}
