package engine

// Regulation effect bounds. The multiplicative effect on a gene is
// always clamped into this interval, whatever the edge strengths.
const (
	MinRegulationEffect = 0.1
	MaxRegulationEffect = 2.0
)

// LoopType tags a feedback loop as positive or negative.
type LoopType string

const (
	LoopPositive LoopType = "positive"
	LoopNegative LoopType = "negative"
)

// FeedbackLoop is an informational grouping of genes.
//
// Loops are recorded but deliberately not consumed by RegulationEffect;
// they are kept for reporting and future extension.
type FeedbackLoop struct {
	Genes    []string
	Type     LoopType
	Strength float64
}

// RegulatoryNetwork is a directed, signed graph of gene-to-gene
// influence. Edge strengths live in roughly [-1, 1]: positive strengths
// activate, non-positive strengths repress.
type RegulatoryNetwork struct {
	regulations map[string]map[string]float64 // target -> regulator -> strength
	loops       []FeedbackLoop
}

// NewRegulatoryNetwork creates an empty network.
func NewRegulatoryNetwork() *RegulatoryNetwork {
	return &RegulatoryNetwork{
		regulations: map[string]map[string]float64{},
	}
}

// AddRegulation registers (or overwrites) an influence edge from
// regulator to target.
func (n *RegulatoryNetwork) AddRegulation(regulator, target string, strength float64) {
	if n.regulations[target] == nil {
		n.regulations[target] = map[string]float64{}
	}
	n.regulations[target][regulator] = strength
}

// AddFeedbackLoop records a feedback loop over the given genes.
func (n *RegulatoryNetwork) AddFeedbackLoop(genes []string, loopType LoopType) {
	loop := FeedbackLoop{
		Genes:    make([]string, len(genes)),
		Type:     loopType,
		Strength: 1.0,
	}
	copy(loop.Genes, genes)
	n.loops = append(n.loops, loop)
}

// FeedbackLoops returns the recorded loops.
func (n *RegulatoryNetwork) FeedbackLoops() []FeedbackLoop {
	return n.loops
}

// Regulators returns the number of registered regulators for a gene.
func (n *RegulatoryNetwork) Regulators(target string) int {
	return len(n.regulations[target])
}

// RegulationEffect computes the multiplicative regulation factor for
// target given all current expression levels.
//
// With no registered regulators the effect is neutral (1.0). Otherwise
// each registered regulator present in expressions contributes a factor:
// positive strengths scale with the regulator's expression, non-positive
// strengths scale with its absence. The product is clamped to
// [MinRegulationEffect, MaxRegulationEffect].
//
// Pure: multiplication is commutative, so map iteration order does not
// affect the result.
func (n *RegulatoryNetwork) RegulationEffect(target string, expressions map[string]float64) float64 {
	regulators, ok := n.regulations[target]
	if !ok || len(regulators) == 0 {
		return 1.0
	}

	effect := 1.0
	for regulator, strength := range regulators {
		expr, present := expressions[regulator]
		if !present {
			continue
		}
		if strength > 0 {
			effect *= 1.0 + strength*expr
		} else {
			effect *= 1.0 + strength*(1.0-expr)
		}
	}

	return clamp(effect, MinRegulationEffect, MaxRegulationEffect)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
