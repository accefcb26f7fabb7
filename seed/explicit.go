package seed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bebop/intarna"
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
)

// explicitSeed is one user-supplied seed: its left-end in each strand's
// internal 0-based coordinate and the bp positions of the dotbar.
type explicitSeed struct {
	i1, i2     int
	positions1 []int // internal seq1 indices of every '|' in dotbar1
	positions2 []int // internal seq2 indices of every '|' in dotbar2, reverse-mapped
	e          float64
}

// SeedHandlerExplicit implements the `start1 dotbar1 & start2 dotbar2`
// seed encoding from spec.md §6: each comma-separated entry names its own
// seed explicitly rather than being discovered by a DP fill. Grounded on
// the teacher's dot_bracket_parser character-by-character validating
// parser idiom (reject on the first malformed token).
type SeedHandlerExplicit struct {
	e      energy.InteractionEnergy
	c      *Constraint
	seeds  []explicitSeed
	byLeft map[[2]int]int // (i1,i2) -> index into seeds
	order  [][2]int
}

// NewSeedHandlerExplicit parses spec, a comma-separated list of
// `start1 dotbar1 & start2 dotbar2` entries, and builds a handler that
// reports exactly those seeds. start1/start2 are in the sequences'
// user-origin coordinates; toInternal1/toInternal2 translate them to
// internal 0-based indices.
func NewSeedHandlerExplicit(e energy.InteractionEnergy, c *Constraint, spec string, toInternal1, toInternal2 func(int) int) (*SeedHandlerExplicit, error) {
	h := &SeedHandlerExplicit{e: e, c: c, byLeft: make(map[[2]int]int)}
	if strings.TrimSpace(spec) != spec || strings.HasSuffix(spec, ",") {
		return nil, fmt.Errorf("%w: explicit seed spec must not have leading/trailing whitespace or a trailing comma", intarna.ErrBadConstraint)
	}
	for _, entry := range strings.Split(spec, ",") {
		es, err := parseExplicitSeed(entry, toInternal1, toInternal2, e.Size2())
		if err != nil {
			return nil, err
		}
		h.seeds = append(h.seeds, es)
	}
	return h, nil
}

func parseExplicitSeed(entry string, toInternal1, toInternal2 func(int) int, size2 int) (explicitSeed, error) {
	halves := strings.Split(entry, "&")
	if len(halves) != 2 {
		return explicitSeed{}, fmt.Errorf("%w: explicit seed entry %q must contain exactly one '&'", intarna.ErrBadConstraint, entry)
	}
	start1, dotbar1, err := parseSeedHalf(halves[0])
	if err != nil {
		return explicitSeed{}, err
	}
	start2, dotbar2, err := parseSeedHalf(halves[1])
	if err != nil {
		return explicitSeed{}, err
	}
	if strings.Count(dotbar1, "|") != strings.Count(dotbar2, "|") {
		return explicitSeed{}, fmt.Errorf("%w: explicit seed entry %q has unequal bp counts between strands", intarna.ErrBadConstraint, entry)
	}
	i1 := toInternal1(start1)
	positions1 := dotbarPositions(dotbar1, i1)
	// seq2's start is measured from its own 5' end; the handler
	// reverse-maps it internally to the DP's reversed coordinate space,
	// where seq1's k-th '|' pairs with seq2's k-th '|' from the 3' end.
	native2 := dotbarPositions(dotbar2, toInternal2(start2))
	positions2 := make([]int, len(native2))
	for k, p := range native2 {
		positions2[len(native2)-1-k] = size2 - 1 - p
	}
	return explicitSeed{i1: i1, i2: positions2[0], positions1: positions1, positions2: positions2}, nil
}

func parseSeedHalf(s string) (int, string, error) {
	s = strings.TrimSpace(s)
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, "", fmt.Errorf("%w: expected \"start dotbar\", got %q", intarna.ErrBadConstraint, s)
	}
	start, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", fmt.Errorf("%w: invalid start index %q", intarna.ErrBadConstraint, fields[0])
	}
	dotbar := fields[1]
	if len(dotbar) == 0 || dotbar[0] != '|' || dotbar[len(dotbar)-1] != '|' {
		return 0, "", fmt.Errorf("%w: dotbar %q must begin and end with '|'", intarna.ErrBadConstraint, dotbar)
	}
	for i := 0; i < len(dotbar); i++ {
		if dotbar[i] != '|' && dotbar[i] != '.' {
			return 0, "", fmt.Errorf("%w: dotbar %q contains invalid character %q", intarna.ErrBadConstraint, dotbar, dotbar[i])
		}
	}
	return start, dotbar, nil
}

// dotbarPositions returns the internal indices of every '|' in dotbar,
// given that dotbar's first character sits at internal index start.
func dotbarPositions(dotbar string, start int) []int {
	var positions []int
	for i := 0; i < len(dotbar); i++ {
		if dotbar[i] == '|' {
			positions = append(positions, start+i)
		}
	}
	return positions
}

// FillSeed computes the energy of every explicit seed whose left-end
// falls in r1 x r2, validating complementarity along the way.
func (h *SeedHandlerExplicit) FillSeed(r1, r2 idxrange.IndexRange) (int, error) {
	h.byLeft = make(map[[2]int]int)
	h.order = nil
	count := 0
	for idx, es := range h.seeds {
		if !r1.Covers(es.i1) || !r2.Covers(es.i2) {
			continue
		}
		total := 0.0
		for k := 0; k+1 < len(es.positions1); k++ {
			step := h.e.EInterLeft(es.positions1[k], es.positions1[k+1], es.positions2[k], es.positions2[k+1])
			if step >= energy.Infinity {
				return count, fmt.Errorf("%w: explicit seed at (%d,%d) is not a feasible loop chain", intarna.ErrBadConstraint, es.i1, es.i2)
			}
			total += step
		}
		h.seeds[idx].e = total
		h.byLeft[[2]int{es.i1, es.i2}] = idx
		h.order = append(h.order, [2]int{es.i1, es.i2})
		count++
	}
	return count, nil
}

func (h *SeedHandlerExplicit) IsSeedBound(i1, i2 int) bool {
	_, ok := h.byLeft[[2]int{i1, i2}]
	return ok
}

func (h *SeedHandlerExplicit) GetSeedE(i1, i2 int) (float64, error) {
	idx, ok := h.byLeft[[2]int{i1, i2}]
	if !ok {
		return 0, errNoSeed(i1, i2)
	}
	return h.seeds[idx].e, nil
}

func (h *SeedHandlerExplicit) GetSeedLength1(i1, i2 int) (int, error) {
	idx, ok := h.byLeft[[2]int{i1, i2}]
	if !ok {
		return 0, errNoSeed(i1, i2)
	}
	p := h.seeds[idx].positions1
	return p[len(p)-1] - p[0] + 1, nil
}

func (h *SeedHandlerExplicit) GetSeedLength2(i1, i2 int) (int, error) {
	idx, ok := h.byLeft[[2]int{i1, i2}]
	if !ok {
		return 0, errNoSeed(i1, i2)
	}
	p := h.seeds[idx].positions2
	return p[len(p)-1] - p[0] + 1, nil
}

func (h *SeedHandlerExplicit) TraceBackSeed(ia *interaction.Interaction, i1, i2 int) error {
	idx, ok := h.byLeft[[2]int{i1, i2}]
	if !ok {
		return errNoSeed(i1, i2)
	}
	es := h.seeds[idx]
	for k := 0; k+1 < len(es.positions1); k++ {
		ia.BasePairs = append(ia.BasePairs, interaction.BasePair{I1: es.positions1[k], I2: es.positions2[k]})
	}
	return nil
}

func (h *SeedHandlerExplicit) UpdateToNextSeed(i1, i2 int, r1, r2 idxrange.IndexRange) (int, int, bool) {
	for _, k := range h.order {
		if k[0] < r1.From || k[0] > r1.To || k[1] < r2.From || k[1] > r2.To {
			continue
		}
		if k[0] > i1 || (k[0] == i1 && k[1] > i2) {
			return k[0], k[1], true
		}
	}
	return 0, 0, false
}

func (h *SeedHandlerExplicit) AddSeeds(ia *interaction.Interaction) error {
	for _, k := range h.order {
		idx := h.byLeft[k]
		es := h.seeds[idx]
		right := interaction.BasePair{I1: es.positions1[len(es.positions1)-1], I2: es.positions2[len(es.positions2)-1]}
		hasLeft, hasRight := false, false
		for _, bp := range ia.BasePairs {
			if bp.I1 == es.i1 && bp.I2 == es.i2 {
				hasLeft = true
			}
			if bp == right {
				hasRight = true
			}
		}
		if !hasLeft || !hasRight {
			continue
		}
		ia.Seeds = append(ia.Seeds, interaction.Seed{
			Left:   interaction.BasePair{I1: es.i1, I2: es.i2},
			Right:  right,
			Energy: es.e,
		})
	}
	return nil
}

func (h *SeedHandlerExplicit) AreLoopOverlapping(i, j, k, l int) bool {
	return AreLoopOverlapping(i, j, k, l)
}
