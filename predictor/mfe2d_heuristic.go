package predictor

import (
	"github.com/bebop/intarna/energy"
	"github.com/bebop/intarna/idxrange"
	"github.com/bebop/intarna/interaction"
	"github.com/bebop/intarna/output"
	"github.com/bebop/intarna/seed"
)

// heuristicCell is Mfe2dHeuristic's single kept extension per left bp
// (spec.md §4.9's Cell(i1,i2) = (E,j1,j2)), augmented with enough of the
// chosen step to support traceback and next-best enumeration.
type heuristicCell struct {
	hybrid         float64
	total          float64
	j1, j2         int
	nextI1, nextI2 int
	viaSeed        bool
}

// Mfe2dHeuristic keeps only the single best right extension per left bp,
// giving O(range²) time and space (spec.md §4.9). sh is optional: when
// set, every left bp additionally considers starting a seed there,
// overwriting the cell if the seeded extension is better.
type Mfe2dHeuristic struct {
	e     energy.InteractionEnergy
	sh    seed.Handler
	cells map[cellKey]heuristicCell
}

// NewMfe2dHeuristic returns a heuristic predictor; sh may be nil for the
// unseeded variant.
func NewMfe2dHeuristic(e energy.InteractionEnergy, sh seed.Handler) *Mfe2dHeuristic {
	return &Mfe2dHeuristic{e: e, sh: sh}
}

// fill populates p.cells over the whole window, descending in (i1,i2)
// so every extension target is already resolved. The extension window
// is scanned over the full remaining range rather than a queried
// maxIL1/2 constant (the energy façade does not expose those as
// queryable values); EInterLeft's own Infinity sentinel prunes every
// step beyond the façade's configured bound, so correctness is
// unaffected — only the time bound is looser than the spec's literal
// 1<=wk<=maxILk+1 window.
func (p *Mfe2dHeuristic) fill(w *energy.IdxOffset, n1, n2 int) {
	p.cells = make(map[cellKey]heuristicCell, (n1+1)*(n2+1))
	for i1 := n1; i1 >= 0; i1-- {
		for i2 := n2; i2 >= 0; i2-- {
			if !w.IsAccessible1(i1) || !w.IsAccessible2(i2) {
				continue
			}
			if !w.AreComplementary(i1, i2) && !w.IsGU(i1, i2) {
				continue
			}
			best := heuristicCell{
				hybrid: w.EInit(), j1: i1, j2: i2, nextI1: i1, nextI2: i2,
			}
			if t, err := w.GetE(i1, i1, i2, i2, best.hybrid); err == nil {
				best.total = t
			} else {
				best.total = energy.Infinity
			}

			for k1 := i1 + 1; k1 <= n1; k1++ {
				for k2 := i2 + 1; k2 <= n2; k2++ {
					child, ok := p.cells[cellKey{k1, k2}]
					if !ok {
						continue
					}
					step := w.EInterLeft(i1, k1, i2, k2)
					if step >= energy.Infinity {
						continue
					}
					hybrid := step + child.hybrid
					total, err := w.GetE(i1, child.j1, i2, child.j2, hybrid)
					if err != nil || total >= best.total {
						continue
					}
					best = heuristicCell{
						hybrid: hybrid, total: total,
						j1: child.j1, j2: child.j2,
						nextI1: k1, nextI2: k2,
					}
				}
			}

			if p.sh != nil && p.sh.IsSeedBound(i1, i2) {
				if cand, ok := p.seedExtension(w, n1, n2, i1, i2); ok && cand.total < best.total {
					best = cand
				}
			}

			p.cells[cellKey{i1, i2}] = best
		}
	}
}

// seedExtension evaluates starting a seed at (i1,i2): either ending the
// interaction exactly at the seed's own right end, or continuing from
// there via the already-filled cell table.
func (p *Mfe2dHeuristic) seedExtension(w *energy.IdxOffset, n1, n2, i1, i2 int) (heuristicCell, bool) {
	seedE, err := p.sh.GetSeedE(i1, i2)
	if err != nil {
		return heuristicCell{}, false
	}
	l1, err1 := p.sh.GetSeedLength1(i1, i2)
	l2, err2 := p.sh.GetSeedLength2(i1, i2)
	if err1 != nil || err2 != nil {
		return heuristicCell{}, false
	}
	s1, s2 := i1+l1-1, i2+l2-1
	if s1 > n1 || s2 > n2 {
		return heuristicCell{}, false
	}

	terminalHybrid := seedE + w.EInit()
	terminal, err := w.GetE(i1, s1, i2, s2, terminalHybrid)
	best := heuristicCell{hybrid: terminalHybrid, total: energy.Infinity, j1: s1, j2: s2, nextI1: s1, nextI2: s2, viaSeed: true}
	if err == nil {
		best.total = terminal
	}

	if child, ok := p.cells[cellKey{s1, s2}]; ok {
		hybrid := seedE + child.hybrid
		total, err := w.GetE(i1, child.j1, i2, child.j2, hybrid)
		if err == nil && total < best.total {
			best = heuristicCell{
				hybrid: hybrid, total: total,
				j1: child.j1, j2: child.j2,
				nextI1: s1, nextI2: s2, viaSeed: true,
			}
		}
	}
	if best.total >= energy.Infinity {
		return heuristicCell{}, false
	}
	return best, true
}

// traceBack walks the chosen-step chain from (i1,i2) to the cell's final
// (j1,j2), splicing in a seed's inner base pairs whenever a cell was
// chosen via seedExtension.
func (p *Mfe2dHeuristic) traceBack(i1, i2 int) []interaction.BasePair {
	var bps []interaction.BasePair
	for {
		c, ok := p.cells[cellKey{i1, i2}]
		if !ok {
			return bps
		}
		bps = append(bps, interaction.BasePair{I1: i1, I2: i2})
		if c.viaSeed {
			inner := &interaction.Interaction{}
			_ = p.sh.TraceBackSeed(inner, i1, i2)
			// inner starts with (i1,i2) itself, already appended above.
			bps = append(bps[:len(bps)-1], inner.BasePairs...)
			if c.nextI1 == c.j1 && c.nextI2 == c.j2 {
				bps = append(bps, interaction.BasePair{I1: c.nextI1, I2: c.nextI2})
				return bps
			}
			i1, i2 = c.nextI1, c.nextI2
			continue
		}
		if c.nextI1 == i1 && c.nextI2 == i2 {
			return bps
		}
		i1, i2 = c.nextI1, c.nextI2
	}
}

// Predict fills the window and reports up to reportMax interactions,
// heuristically enumerating next-best candidates by scanning the cell
// table for the lowest-total cell whose [i1,j1]x[i2,j2] span does not
// overlap any previously reported span (spec.md §4.12).
func (p *Mfe2dHeuristic) Predict(r1, r2 idxrange.IndexRange, reportMax int, out output.Handler) error {
	if err := checkRange(p.e, r1, r2); err != nil {
		return err
	}
	w, err := offsetEnergy(p.e, r1, r2)
	if err != nil {
		return err
	}
	n1, n2 := r1.To-r1.From, r2.To-r2.From
	p.fill(w, n1, n2)

	reported1 := idxrange.NewList(true)
	reported2 := idxrange.NewList(true)
	reportedAny := false

	for reports := 0; reports < reportMax; reports++ {
		bestTotal := energy.Infinity
		var bestI1, bestI2 int
		found := false
		for k, c := range p.cells {
			if c.total >= bestTotal {
				continue
			}
			span1 := idxrange.IndexRange{From: k.i1, To: c.j1}
			span2 := idxrange.IndexRange{From: k.i2, To: c.j2}
			if reported1.Overlaps(span1) || reported2.Overlaps(span2) {
				continue
			}
			bestTotal, bestI1, bestI2, found = c.total, k.i1, k.i2, true
		}
		if !found {
			break
		}
		c := p.cells[cellKey{bestI1, bestI2}]
		bps := p.traceBack(bestI1, bestI2)
		ia := buildInteraction(w, bps, c.total)
		if p.sh != nil {
			if err := p.sh.AddSeeds(ia); err != nil {
				return err
			}
		}
		if err := out.Add(ia); err != nil {
			return err
		}
		reportedAny = true
		_ = reported1.Insert(idxrange.IndexRange{From: bestI1, To: c.j1})
		_ = reported2.Insert(idxrange.IndexRange{From: bestI2, To: c.j2})
	}

	if !reportedAny {
		return reportEmpty(out)
	}
	return nil
}
