package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionKeyDeterministic(t *testing.T) {
	in := NewInstruction(KindConfigure, "mitochondria", Params{
		"efficiency":        Float(1.5),
		"energy_production": Int(15),
	})

	a, err := InstructionKey(in)
	require.NoError(t, err)
	b, err := InstructionKey(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex SHA-256
}

func TestInstructionKeyConditionOrderIndependent(t *testing.T) {
	a := NewInstruction(KindConfigure, "vacuole", Params{"capacity": Int(5)},
		"energy_low", "stress_high")
	b := NewInstruction(KindConfigure, "vacuole", Params{"capacity": Int(5)},
		"stress_high", "energy_low")

	ka := MustInstructionKey(a)
	kb := MustInstructionKey(b)
	assert.Equal(t, ka, kb)
}

func TestInstructionKeyConditionDuplicatesCollapse(t *testing.T) {
	a := NewInstruction(KindAdapt, "cell", Params{}, "stress_high", "stress_high")
	b := NewInstruction(KindAdapt, "cell", Params{}, "stress_high")

	assert.Equal(t, MustInstructionKey(a), MustInstructionKey(b))
}

func TestInstructionKeyIgnoresPriority(t *testing.T) {
	a := NewInstruction(KindConfigure, "cytoplasm", Params{"routing_efficiency": Float(0.9)})
	b := a.Clone()
	b.Priority = 7

	assert.Equal(t, MustInstructionKey(a), MustInstructionKey(b))
}

func TestInstructionKeyDiscriminates(t *testing.T) {
	base := NewInstruction(KindConfigure, "mitochondria", Params{"efficiency": Float(1.5)})

	otherTarget := base.Clone()
	otherTarget.Target = "chloroplast"
	assert.NotEqual(t, MustInstructionKey(base), MustInstructionKey(otherTarget))

	otherKind := base.Clone()
	otherKind.Kind = KindRegulate
	assert.NotEqual(t, MustInstructionKey(base), MustInstructionKey(otherKind))

	otherParams := base.Clone()
	otherParams.Params["efficiency"] = Float(2.0)
	assert.NotEqual(t, MustInstructionKey(base), MustInstructionKey(otherParams))

	otherConds := base.Clone()
	otherConds.Conditions = []string{"energy_low"}
	assert.NotEqual(t, MustInstructionKey(base), MustInstructionKey(otherConds))
}

func TestInstructionKeyIntFloatDistinct(t *testing.T) {
	a := NewInstruction(KindConfigure, "vacuole", Params{"capacity": Int(5)})
	b := NewInstruction(KindConfigure, "vacuole", Params{"capacity": Float(5)})

	assert.NotEqual(t, MustInstructionKey(a), MustInstructionKey(b))
}

func TestInstructionKeyNonFiniteFloat(t *testing.T) {
	in := NewInstruction(KindConfigure, "vacuole", Params{"capacity": Float(math.Inf(1))})

	_, err := InstructionKey(in)
	require.Error(t, err)
	assert.Panics(t, func() { MustInstructionKey(in) })
}

func TestHashWithDomainSeparation(t *testing.T) {
	// The null separator keeps (domain, data) splits unambiguous.
	a := hashWithDomain("helix/a", []byte("b/data"))
	b := hashWithDomain("helix/a/b", []byte("data"))
	assert.NotEqual(t, a, b)
}
