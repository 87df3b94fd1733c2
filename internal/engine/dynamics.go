package engine

// stepDynamics advances every gene's expression one step.
//
// All genes read the same snapshot taken at the start of the step, and
// new values are committed in a second pass. Per-gene updates therefore
// do not observe each other mid-step, which keeps the step independent
// of gene iteration order. (The per-gene target computations are also
// mutually independent and could run in parallel; the commit pass is
// what must stay separate.)
//
// Per gene: target = base * regulation_effect, scaled by every
// environmental signal named in the gene's regulation factors, plus
// noise; current moves toward target by (target-current)/time_constant
// scaled by the step fraction, clamped to [0,1]. The clock advances once
// after all genes commit.
func (e *Engine) stepDynamics() {
	snapshot := e.expressionSnapshot()
	now := e.clock.Now()

	next := make(map[string]float64, len(e.geneOrder))
	for _, gene := range e.geneOrder {
		profile := e.profiles[gene]

		target := profile.BaseExpression * e.network.RegulationEffect(gene, snapshot)
		for signal, strength := range e.signals {
			if factor, ok := profile.RegulationFactors[signal]; ok {
				target *= 1.0 + factor*strength
			}
		}
		target += e.noise.Sample()

		current := snapshot[gene]
		change := (target - current) / e.timeConstant
		next[gene] = clamp(current+change*e.stepFraction, 0.0, 1.0)
	}

	for _, gene := range e.geneOrder {
		profile := e.profiles[gene]
		profile.CurrentExpression = next[gene]
		profile.LastUpdated = now
	}

	e.clock.Advance()
}

// Step runs one dynamics step without processing any instructions.
func (e *Engine) Step() {
	e.stepDynamics()
}

// SimulateEvolution runs the dynamics for the given number of steps and
// returns the per-gene expression series, one value per step.
func (e *Engine) SimulateEvolution(steps int) map[string][]float64 {
	evolution := make(map[string][]float64, len(e.geneOrder))
	for _, gene := range e.geneOrder {
		evolution[gene] = make([]float64, 0, steps)
	}

	for i := 0; i < steps; i++ {
		e.stepDynamics()
		for _, gene := range e.geneOrder {
			evolution[gene] = append(evolution[gene], e.profiles[gene].CurrentExpression)
		}
	}
	return evolution
}
