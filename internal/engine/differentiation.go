package engine

import (
	"fmt"
	"math"
	"slices"
)

// Differentiation defaults.
const (
	// InitialLineage is the automaton's starting state.
	InitialLineage = "undifferentiated"

	// DefaultCommitmentThreshold is the match score a pathway must beat
	// before progress accrues.
	DefaultCommitmentThreshold = 0.8

	// DefaultProgressRate is the progress added per qualifying step.
	DefaultProgressRate = 0.1
)

// Pathway describes one differentiation route between lineages.
// Requirements map gene ids to the expression level the pathway wants.
type Pathway struct {
	From         string
	To           string
	Requirements map[string]float64
	ProgressRate float64
}

// Differentiation is the lineage automaton: one state per lineage name,
// with progress accruing toward whichever pathway from the current
// lineage best matches the expression profile. There is no terminal
// state - any lineage may be the source of further pathways, but at most
// one lineage is active at a time and at most one transition fires per
// step.
type Differentiation struct {
	pathways  map[string]Pathway // keyed "<from>_to_<to>"
	order     []string           // registration order, for deterministic ties
	lineage   string
	progress  float64
	threshold float64
}

// NewDifferentiation creates the automaton in the initial lineage.
func NewDifferentiation() *Differentiation {
	return &Differentiation{
		pathways:  map[string]Pathway{},
		lineage:   InitialLineage,
		threshold: DefaultCommitmentThreshold,
	}
}

// AddPathway registers a pathway at the default progress rate.
// Re-registering the same from/to pair replaces its requirements.
func (d *Differentiation) AddPathway(from, to string, requirements map[string]float64) {
	reqs := make(map[string]float64, len(requirements))
	for k, v := range requirements {
		reqs[k] = v
	}

	id := fmt.Sprintf("%s_to_%s", from, to)
	if _, ok := d.pathways[id]; !ok {
		d.order = append(d.order, id)
	}
	d.pathways[id] = Pathway{
		From:         from,
		To:           to,
		Requirements: reqs,
		ProgressRate: DefaultProgressRate,
	}
}

// CurrentLineage returns the committed lineage.
func (d *Differentiation) CurrentLineage() string {
	return d.lineage
}

// Progress returns the accrued progress toward the next commitment.
func (d *Differentiation) Progress() float64 {
	return d.progress
}

// SetCommitmentThreshold overrides the commitment threshold.
func (d *Differentiation) SetCommitmentThreshold(t float64) {
	d.threshold = t
}

// Evaluate runs one transition-rule step against the expression
// snapshot. If the best-matching pathway out of the current lineage
// scores above the commitment threshold its progress rate accrues; once
// progress reaches 1.0 the automaton commits, resets progress, and
// reports "differentiated_<old>_to_<new>". Ties keep the earliest
// registered pathway.
//
// Returns ("", false) when no transition fired this step.
func (d *Differentiation) Evaluate(expressions map[string]float64) (string, bool) {
	var best *Pathway
	bestScore := 0.0

	for _, id := range d.order {
		pathway := d.pathways[id]
		if pathway.From != d.lineage {
			continue
		}
		if score := pathwayScore(pathway, expressions); score > bestScore {
			bestScore = score
			best = &pathway
		}
	}

	if best == nil || bestScore <= d.threshold {
		return "", false
	}

	d.progress += best.ProgressRate
	if d.progress < 1.0 {
		return "", false
	}

	old := d.lineage
	d.lineage = best.To
	d.progress = 0.0
	return fmt.Sprintf("differentiated_%s_to_%s", old, d.lineage), true
}

// pathwayScore measures how closely the expression snapshot matches the
// pathway's requirements: the average of max(0, 1-|current-required|)
// over required genes present in the snapshot. Genes absent from the
// snapshot are excluded from the average; a pathway with no scorable
// requirements scores 0.
func pathwayScore(pathway Pathway, expressions map[string]float64) float64 {
	genes := make([]string, 0, len(pathway.Requirements))
	for gene := range pathway.Requirements {
		genes = append(genes, gene)
	}
	slices.Sort(genes)

	total, counted := 0.0, 0
	for _, gene := range genes {
		current, present := expressions[gene]
		if !present {
			continue
		}
		total += math.Max(0, 1.0-math.Abs(current-pathway.Requirements[gene]))
		counted++
	}

	if counted == 0 {
		return 0.0
	}
	return total / float64(counted)
}
