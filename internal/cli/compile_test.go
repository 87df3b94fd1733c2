package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/helix/internal/ir"
)

const compileDemoSource = `PROGRAM demo "Demo program"
CONFIGURE mitochondria
efficiency=1.5
END
`

func TestCompileEmitsStructuredJSON(t *testing.T) {
	path := writeProgram(t, "demo.gene", compileDemoSource)

	out := &bytes.Buffer{}
	cmd := NewCompileCommand(&RootOptions{Format: "text"})
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	var sp ir.StructuredProgram
	require.NoError(t, json.Unmarshal(out.Bytes(), &sp))
	assert.Equal(t, "demo", sp.Name)
	assert.Equal(t, "Demo program", sp.Metadata.Description)
	require.Len(t, sp.Instructions, 1)
	assert.Equal(t, "CONFIGURE", sp.Instructions[0].Type)
	assert.Equal(t, ir.Float(1.5), sp.Instructions[0].Parameters["efficiency"])
}

func TestCompileGolden(t *testing.T) {
	path := writeProgram(t, "demo.gene", compileDemoSource)

	out := &bytes.Buffer{}
	cmd := NewCompileCommand(&RootOptions{Format: "text"})
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	g := goldie.New(t)
	g.Assert(t, "compile_demo", out.Bytes())
}

func TestCompileOptimizeMerges(t *testing.T) {
	source := "CONFIGURE chloroplast\nprocessing_power=8.0\nCONFIGURE chloroplast\nlight_sensitivity=1.5\nEND\n"
	path := writeProgram(t, "merge.gene", source)

	out := &bytes.Buffer{}
	cmd := NewCompileCommand(&RootOptions{Format: "text"})
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "--optimize"})

	require.NoError(t, cmd.Execute())

	var sp ir.StructuredProgram
	require.NoError(t, json.Unmarshal(out.Bytes(), &sp))
	require.Len(t, sp.Instructions, 1)
	assert.Equal(t, ir.Float(8.0), sp.Instructions[0].Parameters["processing_power"])
	assert.Equal(t, ir.Float(1.5), sp.Instructions[0].Parameters["light_sensitivity"])
}

func TestCompileRoundTripsThroughStructuredParser(t *testing.T) {
	path := writeProgram(t, "demo.gene", compileDemoSource)

	out := &bytes.Buffer{}
	cmd := NewCompileCommand(&RootOptions{Format: "text"})
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	jsonPath := writeProgram(t, "demo.json", out.String())

	validateOut := &bytes.Buffer{}
	validate := NewValidateCommand(&RootOptions{Format: "text"})
	validate.SetOut(validateOut)
	validate.SetErr(&bytes.Buffer{})
	validate.SetArgs([]string{jsonPath})

	require.NoError(t, validate.Execute())
	assert.Contains(t, validateOut.String(), "program: demo")
}

func TestCompileUnreadableFile(t *testing.T) {
	cmd := NewCompileCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"/nonexistent/demo.gene"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
