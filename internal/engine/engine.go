package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/helix/internal/ir"
	"github.com/roach88/helix/internal/store"
)

// DefaultTimeConstant governs how fast expression moves toward its
// target each step.
const DefaultTimeConstant = 1.0

// Profile is the expression state of one gene. Created at engine
// construction for the fixed gene set, mutated every dynamics step,
// never destroyed for the engine's lifetime.
type Profile struct {
	GeneID            string
	BaseExpression    float64
	CurrentExpression float64
	RegulationFactors map[string]float64
	LastUpdated       float64
}

// Result aggregates the effects of executing one program step.
type Result struct {
	ExpressionChanges []string `json:"expression_changes"`
	Reconfigurations  []string `json:"reconfigurations"`
	Differentiation   string   `json:"differentiation,omitempty"`
	CurrentLineage    string   `json:"current_lineage"`
}

// Engine orchestrates gene profiles, the regulatory network, the
// differentiation automaton, and the reconfiguration scheduler.
type Engine struct {
	profiles  map[string]*Profile
	geneOrder []string // fixed iteration order for deterministic steps

	network         *RegulatoryNetwork
	differentiation *Differentiation
	scheduler       *Scheduler
	clock           *Clock
	noise           NoiseSource
	defaults        *Defaults

	timeConstant float64
	stepFraction float64

	signals map[string]float64
	stress  float64
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithNoise replaces the per-step noise source. Tests use this with a
// zero source to make dynamics exactly reproducible.
func WithNoise(src NoiseSource) Option {
	return func(e *Engine) { e.noise = src }
}

// WithMaxPerCycle overrides the scheduler's per-cycle processing cap.
func WithMaxPerCycle(n int) Option {
	return func(e *Engine) { e.scheduler.SetMaxPerCycle(n) }
}

// WithHistoryStore attaches a durable reconfiguration history log.
func WithHistoryStore(st *store.Store) Option {
	return func(e *Engine) { e.scheduler.SetHistoryStore(st) }
}

// WithCommitmentThreshold overrides the differentiation commitment
// threshold.
func WithCommitmentThreshold(t float64) Option {
	return func(e *Engine) { e.differentiation.SetCommitmentThreshold(t) }
}

// New builds an engine from the standard tables: the fixed gene set at
// base expression, the default regulatory wiring, and an empty
// scheduler. The gene set is fixed for the engine's lifetime.
func New(opts ...Option) *Engine {
	defaults := DefaultConfiguration()
	clock := NewClock(DefaultStepFraction)

	e := &Engine{
		profiles:        make(map[string]*Profile, len(defaults.Genes)),
		geneOrder:       slices.Clone(defaults.Genes),
		network:         NewRegulatoryNetwork(),
		differentiation: NewDifferentiation(),
		scheduler:       NewScheduler(clock),
		clock:           clock,
		noise:           NewGaussianNoise(DefaultNoiseStdDev, 1),
		defaults:        defaults,
		timeConstant:    DefaultTimeConstant,
		stepFraction:    DefaultStepFraction,
		signals:         map[string]float64{},
	}

	for _, gene := range defaults.Genes {
		e.profiles[gene] = &Profile{
			GeneID:            gene,
			BaseExpression:    defaults.BaseExpression,
			CurrentExpression: defaults.BaseExpression,
			RegulationFactors: map[string]float64{},
		}
	}
	for _, reg := range defaults.Regulations {
		e.network.AddRegulation(reg.Regulator, reg.Target, reg.Strength)
	}
	for _, loop := range defaults.FeedbackLoops {
		e.network.AddFeedbackLoop(loop, LoopPositive)
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs one step of a program: instruction dispatch, one
// dynamics step over all genes, one bounded scheduler drain, and one
// differentiation evaluation, in that order.
//
// Execute does not gate on validation - callers that want the validator
// enforced run it first. Not re-entrant; see package doc.
func (e *Engine) Execute(ctx context.Context, program *ir.Program, targets map[string]Reconfigurable) *Result {
	result := &Result{}

	for _, in := range program.Instructions {
		switch in.Kind {
		case ir.KindConfigure:
			result.ExpressionChanges = append(result.ExpressionChanges, e.processConfigure(in)...)
		case ir.KindRegulate:
			result.ExpressionChanges = append(result.ExpressionChanges, e.processRegulate(in)...)
		case ir.KindSpecialize:
			result.ExpressionChanges = append(result.ExpressionChanges, e.processSpecialize(in)...)
		case ir.KindConnect, ir.KindDivide, ir.KindCommunicate, ir.KindAdapt, ir.KindRepair:
			// No expression-layer effect yet; reserved for the cellular
			// hierarchy above this core.
		}
	}

	e.stepDynamics()

	result.Reconfigurations = e.scheduler.Process(ctx, targets)

	if transition, ok := e.differentiation.Evaluate(e.expressionSnapshot()); ok {
		result.Differentiation = transition
		slog.Info("lineage transition", "transition", transition)
	}
	result.CurrentLineage = e.differentiation.CurrentLineage()

	return result
}

// processConfigure bumps the target's gene and queues a reconfiguration.
// Targets outside the organelle-to-gene table touch no gene and queue
// nothing.
func (e *Engine) processConfigure(in ir.Instruction) []string {
	gene, ok := e.defaults.TargetGenes[in.Target]
	if !ok {
		return nil
	}

	var changes []string
	if profile, exists := e.profiles[gene]; exists {
		profile.CurrentExpression = clamp(profile.CurrentExpression+0.2, 0.0, 1.0)
		changes = append(changes, fmt.Sprintf("Increased %s expression", gene))
	}

	e.scheduler.Enqueue(in.Target, in.Params, 2)
	changes = append(changes, fmt.Sprintf("Queued reconfiguration for %s", in.Target))
	return changes
}

// processRegulate applies direct expression and regulation-factor
// parameters to the target gene.
func (e *Engine) processRegulate(in ir.Instruction) []string {
	profile, ok := e.profiles[in.Target]
	if !ok {
		return nil
	}

	var changes []string
	for _, key := range in.Params.SortedKeys() {
		value, isNum := ir.Number(in.Params[key])
		switch key {
		case "expression_level":
			if !isNum {
				continue
			}
			profile.CurrentExpression = clamp(value, 0.0, 1.0)
			changes = append(changes, fmt.Sprintf("Set %s expression to %v", in.Target, value))
		case "regulation_factor":
			if !isNum {
				continue
			}
			name := "external"
			if v, ok := in.Params["factor_name"]; ok {
				if s, isString := v.(ir.String); isString {
					name = string(s)
				}
			}
			profile.RegulationFactors[name] = value
			changes = append(changes, fmt.Sprintf("Added regulation factor %s to %s", name, in.Target))
		}
	}
	return changes
}

// processSpecialize applies a preset expression profile and, while the
// cell is still undifferentiated, registers the matching pathway.
func (e *Engine) processSpecialize(in ir.Instruction) []string {
	typ := "generic"
	if v, ok := in.Params["type"]; ok {
		if s, isString := v.(ir.String); isString {
			typ = string(s)
		}
	}

	preset, ok := e.defaults.Specializations[typ]
	if !ok {
		return nil
	}

	var changes []string
	genes := make([]string, 0, len(preset))
	for gene := range preset {
		genes = append(genes, gene)
	}
	slices.Sort(genes)

	for _, gene := range genes {
		profile, exists := e.profiles[gene]
		if !exists {
			continue
		}
		old := profile.CurrentExpression
		profile.CurrentExpression = preset[gene]
		changes = append(changes, fmt.Sprintf("Specialized %s: %.2f -> %.2f", gene, old, preset[gene]))
	}

	if e.differentiation.CurrentLineage() == InitialLineage {
		e.differentiation.AddPathway(InitialLineage, typ, preset)
		changes = append(changes, fmt.Sprintf("Added differentiation pathway to %s", typ))
	}
	return changes
}

// SetEnvironmentalSignal sets a named environmental signal strength.
// Signals act on genes whose regulation factors name them.
func (e *Engine) SetEnvironmentalSignal(name string, strength float64) {
	e.signals[name] = strength
}

// SetStressLevel sets the cellular stress level, clamped to [0,1].
// Elevated stress (> 0.5) immediately scales up the stress-responsive
// genes, still clamped into the valid expression range.
func (e *Engine) SetStressLevel(stress float64) {
	e.stress = clamp(stress, 0.0, 1.0)
	if e.stress <= 0.5 {
		return
	}
	for _, gene := range e.defaults.StressGenes {
		if profile, ok := e.profiles[gene]; ok {
			profile.CurrentExpression = clamp(profile.CurrentExpression*(1.0+e.stress*0.2), 0.0, 1.0)
		}
	}
}

// ExpressionLevel returns a gene's current expression.
func (e *Engine) ExpressionLevel(gene string) (float64, bool) {
	profile, ok := e.profiles[gene]
	if !ok {
		return 0, false
	}
	return profile.CurrentExpression, true
}

// Network exposes the regulatory network for custom wiring.
func (e *Engine) Network() *RegulatoryNetwork {
	return e.network
}

// Differentiation exposes the lineage automaton.
func (e *Engine) Differentiation() *Differentiation {
	return e.differentiation
}

// Scheduler exposes the reconfiguration scheduler.
func (e *Engine) Scheduler() *Scheduler {
	return e.scheduler
}

// Clock exposes the simulation clock.
func (e *Engine) Clock() *Clock {
	return e.clock
}

// expressionSnapshot captures all current expression levels.
func (e *Engine) expressionSnapshot() map[string]float64 {
	snapshot := make(map[string]float64, len(e.geneOrder))
	for _, gene := range e.geneOrder {
		snapshot[gene] = e.profiles[gene].CurrentExpression
	}
	return snapshot
}

// GeneState is the per-gene slice of a State snapshot.
type GeneState struct {
	BaseExpression    float64            `json:"base_expression"`
	RegulationFactors map[string]float64 `json:"regulation_factors"`
	LastUpdated       float64            `json:"last_updated"`
}

// State is a point-in-time snapshot of the whole engine.
type State struct {
	ExpressionLevels        map[string]float64   `json:"expression_levels"`
	Regulation              map[string]GeneState `json:"regulation_states"`
	CurrentLineage          string               `json:"current_lineage"`
	DifferentiationProgress float64              `json:"differentiation_progress"`
	EnvironmentalSignals    map[string]float64   `json:"environmental_signals"`
	StressLevel             float64              `json:"stress_level"`
	Scheduler               SchedulerStatus      `json:"scheduler_status"`
}

// State returns a deep snapshot of engine state for reporting.
func (e *Engine) State() State {
	levels := make(map[string]float64, len(e.geneOrder))
	regulation := make(map[string]GeneState, len(e.geneOrder))
	for _, gene := range e.geneOrder {
		profile := e.profiles[gene]
		levels[gene] = profile.CurrentExpression

		factors := make(map[string]float64, len(profile.RegulationFactors))
		for k, v := range profile.RegulationFactors {
			factors[k] = v
		}
		regulation[gene] = GeneState{
			BaseExpression:    profile.BaseExpression,
			RegulationFactors: factors,
			LastUpdated:       profile.LastUpdated,
		}
	}

	signals := make(map[string]float64, len(e.signals))
	for k, v := range e.signals {
		signals[k] = v
	}

	return State{
		ExpressionLevels:        levels,
		Regulation:              regulation,
		CurrentLineage:          e.differentiation.CurrentLineage(),
		DifferentiationProgress: e.differentiation.Progress(),
		EnvironmentalSignals:    signals,
		StressLevel:             e.stress,
		Scheduler:               e.scheduler.Status(),
	}
}
