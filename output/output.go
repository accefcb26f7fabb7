/*
Package output implements the reporting side of spec.md §4.11: a
Handler callback contract every predictor reports through, a bounded
sorted deduplicating container (InteractionList), and a Hub that fans
a single report out to several handlers at once. The bounded-container
shape is grounded on the teacher's container/heap usage in
linearfold.go (PairHeap: a max-heap used for beam pruning), adapted
here into a max-heap over reported interactions keyed by energy so the
worst-scoring entry can be evicted in O(log n) once the list is full.
*/
package output

import (
	"container/heap"
	"fmt"

	"github.com/bebop/intarna/interaction"
)

// Handler is the reporting callback contract every predictor reports
// through (spec.md's OutputHandler). Add is called once per reported
// interaction; Finish flushes any buffered state once prediction ends.
type Handler interface {
	Add(ia *interaction.Interaction) error
	Finish() error
}

// entry is one slot of the bounded max-heap backing InteractionList.
type entry struct {
	ia  *interaction.Interaction
	key string
}

// entryHeap is a max-heap by energy: the worst (highest-energy) entry
// sits at the root so it can be evicted first once the list is full.
// Mirrors linearfold.go's PairHeap shape (Len/Less/Swap/Push/Pop over a
// plain slice).
type entryHeap []entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].ia.Energy > h[j].ia.Energy }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// interactionKey renders a duplicate-detection key: a cheap BLAKE3
// sequence-identity prefix (Seq1.Digest()/Seq2.Digest(), so interactions
// over different sequence pairs never collide) followed by the exact
// base-pair list, which catches energy-rounding-independent duplicates
// within the same pair.
func interactionKey(ia *interaction.Interaction) string {
	var d1, d2 [32]byte
	if ia.Seq1 != nil {
		d1 = ia.Seq1.Digest()
	}
	if ia.Seq2 != nil {
		d2 = ia.Seq2.Digest()
	}
	buf := []byte(fmt.Sprintf("%x.%x;", d1[:8], d2[:8]))
	for _, bp := range ia.BasePairs {
		buf = append(buf, []byte(fmt.Sprintf("%d.%d;", bp.I1, bp.I2))...)
	}
	return string(buf)
}

// InteractionList is a bounded, deduplicated, energy-sorted container of
// reported interactions (spec.md §4.11: "stores at most maxToStore
// interactions and deduplicates exact matches").
type InteractionList struct {
	maxToStore int
	seen       map[string]bool
	h          entryHeap
}

// NewInteractionList returns a list that retains at most maxToStore
// interactions, keeping the lowest-energy ones.
func NewInteractionList(maxToStore int) *InteractionList {
	return &InteractionList{maxToStore: maxToStore, seen: make(map[string]bool)}
}

// Add inserts ia unless it duplicates an already-stored interaction
// exactly; once the list is at capacity the worst (highest-energy)
// entry is evicted to make room, discarding ia instead if ia is itself
// the worst.
func (l *InteractionList) Add(ia *interaction.Interaction) error {
	key := interactionKey(ia)
	if l.seen[key] {
		return nil
	}
	if l.maxToStore <= 0 {
		return fmt.Errorf("output: maxToStore must be positive, got %d", l.maxToStore)
	}
	if len(l.h) < l.maxToStore {
		heap.Push(&l.h, entry{ia: ia, key: key})
		l.seen[key] = true
		return nil
	}
	if ia.Energy >= l.h[0].ia.Energy {
		return nil
	}
	evicted := heap.Pop(&l.h).(entry)
	delete(l.seen, evicted.key)
	heap.Push(&l.h, entry{ia: ia, key: key})
	l.seen[key] = true
	return nil
}

// Finish is a no-op; InteractionList has nothing to flush.
func (l *InteractionList) Finish() error { return nil }

// Sorted returns the stored interactions ordered by increasing energy,
// then lexicographic base-pair order as a tiebreak (spec.md §4.11).
func (l *InteractionList) Sorted() []*interaction.Interaction {
	out := make([]*interaction.Interaction, len(l.h))
	copy(out, interactionsOf(l.h))
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if less(out[j], out[i]) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

func interactionsOf(h entryHeap) []*interaction.Interaction {
	out := make([]*interaction.Interaction, len(h))
	for i, e := range h {
		out[i] = e.ia
	}
	return out
}

func less(a, b *interaction.Interaction) bool {
	if a.Energy != b.Energy {
		return a.Energy < b.Energy
	}
	for k := 0; k < len(a.BasePairs) && k < len(b.BasePairs); k++ {
		if a.BasePairs[k].I1 != b.BasePairs[k].I1 {
			return a.BasePairs[k].I1 < b.BasePairs[k].I1
		}
		if a.BasePairs[k].I2 != b.BasePairs[k].I2 {
			return a.BasePairs[k].I2 < b.BasePairs[k].I2
		}
	}
	return len(a.BasePairs) < len(b.BasePairs)
}

// Hub forwards every Add/Finish call to each of its member handlers in
// order, stopping at the first error.
type Hub struct {
	members []Handler
}

// NewHub returns a Hub fanning reports out to members.
func NewHub(members ...Handler) *Hub { return &Hub{members: members} }

func (h *Hub) Add(ia *interaction.Interaction) error {
	for _, m := range h.members {
		if err := m.Add(ia); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hub) Finish() error {
	for _, m := range h.members {
		if err := m.Finish(); err != nil {
			return err
		}
	}
	return nil
}
