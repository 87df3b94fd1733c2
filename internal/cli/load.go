package cli

import (
	"os"
	"strings"

	"github.com/roach88/helix/internal/compiler"
	"github.com/roach88/helix/internal/ir"
)

// loadProgram reads a program file and parses it with the parser
// matching its extension: .json uses the structured form, everything
// else the line-oriented text grammar.
//
// Parsing itself is total; only an unreadable file is an error.
func loadProgram(path string) (*ir.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "cannot read program", Err: err}
	}

	if strings.HasSuffix(path, ".json") {
		return compiler.ParseStructured(data), nil
	}
	return compiler.ParseText(string(data)), nil
}
