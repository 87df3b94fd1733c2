package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/helix/internal/ir"
	"github.com/roach88/helix/internal/testutil"
)

func TestStepDynamicsEquilibriumWithoutNoise(t *testing.T) {
	// nucleus_control has no regulators in the default wiring, so with
	// zero noise its target equals its base and it never moves.
	e := New(WithNoise(testutil.ZeroNoise{}))

	for i := 0; i < 20; i++ {
		e.Step()
	}

	level, ok := e.ExpressionLevel("nucleus_control")
	require.True(t, ok)
	assert.Equal(t, 0.5, level)
}

func TestStepDynamicsRelaxesTowardTarget(t *testing.T) {
	// Push nucleus_control up, then watch it decay back toward base.
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("push")
	program.AddInstruction(ir.NewInstruction(ir.KindRegulate, "nucleus_control", ir.Params{
		"expression_level": ir.Float(0.9),
	}))
	e.Execute(context.Background(), program, nil)

	prev, _ := e.ExpressionLevel("nucleus_control")
	for i := 0; i < 10; i++ {
		e.Step()
		cur, _ := e.ExpressionLevel("nucleus_control")
		assert.Less(t, cur, prev, "expression should decay monotonically")
		assert.Greater(t, cur, 0.5)
		prev = cur
	}
}

func TestStepDynamicsStepFraction(t *testing.T) {
	// One step moves a tenth of the way to the target.
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("push")
	program.AddInstruction(ir.NewInstruction(ir.KindRegulate, "nucleus_control", ir.Params{
		"expression_level": ir.Float(0.9),
	}))

	for _, in := range program.Instructions {
		_ = e.processRegulate(in)
	}
	e.stepDynamics()

	// 0.9 + (0.5 - 0.9)*0.1 = 0.86
	level, _ := e.ExpressionLevel("nucleus_control")
	assert.InDelta(t, 0.86, level, 1e-12)
}

func TestStepDynamicsBoundedByNoise(t *testing.T) {
	// Large noise spikes cannot push expression out of [0,1].
	e := New(WithNoise(testutil.NewFixedNoise(100, -100, 100, -100)))

	for i := 0; i < 4; i++ {
		e.Step()
	}

	for _, gene := range DefaultConfiguration().Genes {
		level, ok := e.ExpressionLevel(gene)
		require.True(t, ok)
		assert.GreaterOrEqual(t, level, 0.0)
		assert.LessOrEqual(t, level, 1.0)
	}
}

func TestStepDynamicsEnvironmentalSignal(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))
	e.SetEnvironmentalSignal("light", 1.0)

	program := ir.NewProgram("signal")
	program.AddInstruction(ir.NewInstruction(ir.KindRegulate, "nucleus_control", ir.Params{
		"regulation_factor": ir.Float(0.5),
		"factor_name":       ir.String("light"),
	}))
	for _, in := range program.Instructions {
		_ = e.processRegulate(in)
	}

	e.stepDynamics()

	// Target scales to 0.5*(1 + 0.5*1.0) = 0.75, one step moves a tenth
	// of the way: 0.5 + 0.025 = 0.525.
	level, _ := e.ExpressionLevel("nucleus_control")
	assert.InDelta(t, 0.525, level, 1e-12)
}

func TestStepDynamicsSignalWithoutFactorInert(t *testing.T) {
	// A signal only acts on genes whose regulation factors name it.
	e := New(WithNoise(testutil.ZeroNoise{}))
	e.SetEnvironmentalSignal("light", 1.0)

	e.Step()

	level, _ := e.ExpressionLevel("nucleus_control")
	assert.Equal(t, 0.5, level)
}

func TestStepDynamicsAdvancesClock(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	e.Step()
	e.Step()
	assert.Equal(t, int64(2), e.Clock().Steps())
}

func TestStepDynamicsLastUpdated(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	e.Step()
	e.Step()

	// LastUpdated carries the clock reading at the start of the step.
	state := e.State()
	assert.InDelta(t, 0.1, state.Regulation["nucleus_control"].LastUpdated, 1e-12)
}

func TestSimulateEvolution(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	evolution := e.SimulateEvolution(25)

	require.Len(t, evolution, 9)
	for gene, series := range evolution {
		require.Len(t, series, 25, "gene %s", gene)
		for _, v := range series {
			assert.False(t, math.IsNaN(v))
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}

	// nucleus_control is unregulated: flat at base.
	for _, v := range evolution["nucleus_control"] {
		assert.Equal(t, 0.5, v)
	}
}

func TestSimulateEvolutionDeterministicWithSeed(t *testing.T) {
	a := New(WithNoise(NewGaussianNoise(0.02, 7)))
	b := New(WithNoise(NewGaussianNoise(0.02, 7)))

	assert.Equal(t, a.SimulateEvolution(50), b.SimulateEvolution(50))
}
