package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/helix/internal/ir"
)

// ErrorProgramName is the name of the program returned when structured
// decoding fails outright.
const ErrorProgramName = "error_program"

// ParseStructured parses the JSON structured form of a genetic program.
//
// A decoding failure (malformed JSON, an unknown instruction type, a
// parameter value outside the value model) does not return an error:
// the result is a program named ErrorProgramName whose ValidationErrors
// holds one explanatory entry. This keeps the parser total - every input
// yields a Program.
func ParseStructured(data []byte) *ir.Program {
	dec := json.NewDecoder(bytes.NewReader(data))

	var sp ir.StructuredProgram
	if err := dec.Decode(&sp); err != nil {
		return errorProgram(err)
	}

	program, err := sp.Program()
	if err != nil {
		return errorProgram(err)
	}
	return program
}

func errorProgram(err error) *ir.Program {
	p := ir.NewProgram(ErrorProgramName)
	p.ValidationErrors = append(p.ValidationErrors,
		fmt.Sprintf("JSON parsing error: %v", err))
	return p
}
