package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/helix/internal/ir"
	"github.com/roach88/helix/internal/testutil"
)

func TestNewEngineDefaults(t *testing.T) {
	e := New()

	for _, gene := range DefaultConfiguration().Genes {
		level, ok := e.ExpressionLevel(gene)
		require.True(t, ok, "gene %s missing", gene)
		assert.Equal(t, 0.5, level)
	}

	_, ok := e.ExpressionLevel("unknown_gene")
	assert.False(t, ok)

	assert.Equal(t, InitialLineage, e.Differentiation().CurrentLineage())
	assert.Len(t, e.Network().FeedbackLoops(), 2)
	assert.Equal(t, 1, e.Network().Regulators("chloroplast_processing"))
}

func TestExecuteConfigure(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("configure")
	program.AddInstruction(ir.NewInstruction(ir.KindConfigure, "mitochondria", ir.Params{
		"efficiency": ir.Float(1.2),
	}))

	target := &testutil.ScriptedTarget{}
	result := e.Execute(context.Background(), program,
		map[string]Reconfigurable{"mitochondria": target})

	assert.Contains(t, result.ExpressionChanges, "Increased mitochondria_efficiency expression")
	assert.Contains(t, result.ExpressionChanges, "Queued reconfiguration for mitochondria")
	assert.Equal(t, []string{"Reconfigured mitochondria"}, result.Reconfigurations)
	assert.Equal(t, InitialLineage, result.CurrentLineage)
	require.Len(t, target.Applied, 1)
	assert.True(t, ir.Equal(ir.Float(1.2), target.Applied[0]["efficiency"]))
}

func TestExecuteConfigureUnmappedTarget(t *testing.T) {
	// nucleus has no gating gene: no expression change, nothing queued.
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("unmapped")
	program.AddInstruction(ir.NewInstruction(ir.KindConfigure, "nucleus", ir.Params{}))

	result := e.Execute(context.Background(), program, nil)

	assert.Empty(t, result.ExpressionChanges)
	assert.Empty(t, result.Reconfigurations)
	assert.Zero(t, e.Scheduler().QueueLen())
}

func TestExecuteConfigureClampsExpression(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("stack")
	for i := 0; i < 4; i++ {
		program.AddInstruction(ir.NewInstruction(ir.KindConfigure, "vacuole", ir.Params{
			"capacity": ir.Float(float64(i)),
		}))
	}

	e.Execute(context.Background(), program,
		map[string]Reconfigurable{"vacuole": &testutil.ScriptedTarget{}})

	// Four +0.2 bumps from 0.5 clamp at 1.0 before dynamics pull back.
	level, _ := e.ExpressionLevel("vacuole_capacity")
	assert.LessOrEqual(t, level, 1.0)
	assert.Greater(t, level, 0.9)
}

func TestExecuteRegulate(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("regulate")
	program.AddInstruction(ir.NewInstruction(ir.KindRegulate, "ribosome_activity", ir.Params{
		"expression_level":  ir.Float(0.9),
		"regulation_factor": ir.Float(0.4),
		"factor_name":       ir.String("heat"),
	}))

	result := e.Execute(context.Background(), program, nil)

	assert.Contains(t, result.ExpressionChanges, "Set ribosome_activity expression to 0.9")
	assert.Contains(t, result.ExpressionChanges, "Added regulation factor heat to ribosome_activity")

	state := e.State()
	assert.Equal(t, 0.4, state.Regulation["ribosome_activity"].RegulationFactors["heat"])
}

func TestExecuteRegulateUnknownGene(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("regulate_unknown")
	program.AddInstruction(ir.NewInstruction(ir.KindRegulate, "warp_core", ir.Params{
		"expression_level": ir.Float(0.9),
	}))

	result := e.Execute(context.Background(), program, nil)
	assert.Empty(t, result.ExpressionChanges)
}

func TestExecuteRegulateDefaultFactorName(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("unnamed_factor")
	program.AddInstruction(ir.NewInstruction(ir.KindRegulate, "ribosome_activity", ir.Params{
		"regulation_factor": ir.Float(0.4),
	}))

	result := e.Execute(context.Background(), program, nil)
	assert.Contains(t, result.ExpressionChanges, "Added regulation factor external to ribosome_activity")
}

func TestExecuteRegulateClampsExpressionLevel(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("overdrive")
	program.AddInstruction(ir.NewInstruction(ir.KindRegulate, "ribosome_activity", ir.Params{
		"expression_level": ir.Float(7.0),
	}))

	e.Execute(context.Background(), program, nil)
	level, _ := e.ExpressionLevel("ribosome_activity")
	assert.LessOrEqual(t, level, 1.0)
}

func TestExecuteSpecialize(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("specialize")
	program.AddInstruction(ir.NewInstruction(ir.KindSpecialize, "cell", ir.Params{
		"type": ir.String("compute"),
	}))

	result := e.Execute(context.Background(), program, nil)

	// Preset genes report in sorted order, then the pathway registration.
	require.Len(t, result.ExpressionChanges, 4)
	assert.Equal(t, "Specialized chloroplast_processing: 0.50 -> 0.90", result.ExpressionChanges[0])
	assert.Equal(t, "Specialized cytoplasm_routing: 0.50 -> 0.70", result.ExpressionChanges[1])
	assert.Equal(t, "Specialized mitochondria_efficiency: 0.50 -> 0.80", result.ExpressionChanges[2])
	assert.Equal(t, "Added differentiation pathway to compute", result.ExpressionChanges[3])
}

func TestExecuteSpecializeUnknownType(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("unknown_type")
	program.AddInstruction(ir.NewInstruction(ir.KindSpecialize, "cell", ir.Params{
		"type": ir.String("quantum"),
	}))

	result := e.Execute(context.Background(), program, nil)
	assert.Empty(t, result.ExpressionChanges)
}

func TestExecuteSpecializeDrivesDifferentiation(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("commit")
	program.AddInstruction(ir.NewInstruction(ir.KindSpecialize, "cell", ir.Params{
		"type": ir.String("compute"),
	}))

	var transition string
	for i := 0; i < 15 && transition == ""; i++ {
		result := e.Execute(context.Background(), program, nil)
		transition = result.Differentiation
	}

	assert.Equal(t, "differentiated_undifferentiated_to_compute", transition)
	assert.Equal(t, "compute", e.Differentiation().CurrentLineage())
}

func TestExecuteNoOpKinds(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("noops")
	for _, kind := range []ir.Kind{ir.KindConnect, ir.KindDivide, ir.KindCommunicate,
		ir.KindAdapt, ir.KindRepair} {
		program.AddInstruction(ir.NewInstruction(kind, "cell", ir.Params{}))
	}

	result := e.Execute(context.Background(), program, nil)
	assert.Empty(t, result.ExpressionChanges)
	assert.Empty(t, result.Reconfigurations)
}

func TestSetStressLevel(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	e.SetStressLevel(0.8)

	// Stress genes scale by 1 + 0.8*0.2 = 1.16.
	for _, gene := range []string{"mitochondria_efficiency", "ribosome_activity"} {
		level, _ := e.ExpressionLevel(gene)
		assert.InDelta(t, 0.58, level, 1e-12, "gene %s", gene)
	}

	// Non-stress genes are untouched.
	level, _ := e.ExpressionLevel("vacuole_capacity")
	assert.Equal(t, 0.5, level)
}

func TestSetStressLevelLowStressInert(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))
	e.SetStressLevel(0.5)

	level, _ := e.ExpressionLevel("mitochondria_efficiency")
	assert.Equal(t, 0.5, level)
	assert.Equal(t, 0.5, e.State().StressLevel)
}

func TestSetStressLevelClamped(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	e.SetStressLevel(5.0)
	assert.Equal(t, 1.0, e.State().StressLevel)
	level, _ := e.ExpressionLevel("mitochondria_efficiency")
	assert.LessOrEqual(t, level, 1.0)

	e2 := New(WithNoise(testutil.ZeroNoise{}))
	e2.SetStressLevel(-3.0)
	assert.Equal(t, 0.0, e2.State().StressLevel)
}

func TestStateSnapshot(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))
	e.SetEnvironmentalSignal("light", 0.7)

	state := e.State()

	assert.Len(t, state.ExpressionLevels, 9)
	assert.Len(t, state.Regulation, 9)
	assert.Equal(t, InitialLineage, state.CurrentLineage)
	assert.Zero(t, state.DifferentiationProgress)
	assert.Equal(t, 0.7, state.EnvironmentalSignals["light"])
	assert.Zero(t, state.Scheduler.Queued)

	// The snapshot is deep: mutating it leaves the engine alone.
	state.ExpressionLevels["nucleus_control"] = 0.0
	state.EnvironmentalSignals["light"] = 0.0
	state.Regulation["nucleus_control"].RegulationFactors["injected"] = 1.0

	fresh := e.State()
	assert.Equal(t, 0.5, fresh.ExpressionLevels["nucleus_control"])
	assert.Equal(t, 0.7, fresh.EnvironmentalSignals["light"])
	assert.Empty(t, fresh.Regulation["nucleus_control"].RegulationFactors)
}

func TestWithMaxPerCycle(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}), WithMaxPerCycle(2))

	program := ir.NewProgram("burst")
	for i := 0; i < 4; i++ {
		program.AddInstruction(ir.NewInstruction(ir.KindConfigure, "mitochondria", ir.Params{
			"efficiency": ir.Float(float64(i)),
		}))
	}

	result := e.Execute(context.Background(), program,
		map[string]Reconfigurable{"mitochondria": &testutil.ScriptedTarget{}})

	assert.Len(t, result.Reconfigurations, 2)
	assert.Equal(t, 2, e.Scheduler().QueueLen())
}

func TestWithCommitmentThreshold(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}), WithCommitmentThreshold(0.99))

	program := ir.NewProgram("strict")
	program.AddInstruction(ir.NewInstruction(ir.KindSpecialize, "cell", ir.Params{
		"type": ir.String("compute"),
	}))

	// Dynamics pull the profile off the preset every step, so the match
	// score drops under a near-perfect threshold and progress stalls.
	result := e.Execute(context.Background(), program, nil)
	assert.Empty(t, result.Differentiation)
	assert.Zero(t, e.Differentiation().Progress())
}

func TestEngineEndToEnd(t *testing.T) {
	e := New(WithNoise(testutil.ZeroNoise{}))

	program := ir.NewProgram("compute_cell")
	program.AddInstruction(ir.NewInstruction(ir.KindSpecialize, "cell", ir.Params{
		"type": ir.String("compute"),
	}))
	program.AddInstruction(ir.NewInstruction(ir.KindConfigure, "chloroplast", ir.Params{
		"processing_power": ir.Float(8.0),
	}))

	targets := map[string]Reconfigurable{"chloroplast": &testutil.ScriptedTarget{}}

	var sawTransition bool
	for i := 0; i < 15; i++ {
		result := e.Execute(context.Background(), program, targets)
		require.Equal(t, []string{"Reconfigured chloroplast"}, result.Reconfigurations,
			fmt.Sprintf("step %d", i))
		if result.Differentiation != "" {
			sawTransition = true
		}
	}

	assert.True(t, sawTransition)
	assert.Equal(t, "compute", e.Differentiation().CurrentLineage())

	status := e.Scheduler().Status()
	assert.Equal(t, 15, status.TotalProcessed)
	assert.Equal(t, 1, status.ActiveConfigurations)
	assert.Zero(t, status.RecentFailures)
}
