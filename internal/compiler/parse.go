package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/helix/internal/ir"
)

// Text grammar keywords. Comment lines start with "#" or "//".
const (
	headerKeyword     = "PROGRAM"
	terminatorKeyword = "END"
)

// ParseText parses the line-oriented text form of a genetic program.
//
// The parse is best-effort: a malformed line is recorded in the returned
// program's ValidationErrors as "Line N: <message>" and parsing continues
// with the next line. Line numbers count every source line, including
// blank and comment lines.
//
// Grammar, line by line:
//
//	# comment            (also //)
//	PROGRAM name "desc"  header, sets program name and description
//	KIND target [a, b]   instruction start; conditions optional
//	key=value            parameter for the open instruction
//	END                  terminator
//
// An open instruction is closed by the next instruction start, the
// terminator, or end of input.
func ParseText(source string) *ir.Program {
	program := ir.NewProgram("parsed_program")

	var current *ir.Instruction
	closeCurrent := func() {
		if current != nil {
			program.AddInstruction(*current)
			current = nil
		}
	}

	for i, raw := range strings.Split(source, "\n") {
		lineNum := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		fields := strings.Fields(line)
		switch {
		case fields[0] == headerKeyword:
			parseHeader(line, program)

		case isKindKeyword(fields[0]):
			closeCurrent()
			in, err := parseInstructionLine(fields)
			if err != nil {
				program.ValidationErrors = append(program.ValidationErrors,
					fmt.Sprintf("Line %d: %v", lineNum, err))
				continue
			}
			current = &in

		case fields[0] == terminatorKeyword:
			closeCurrent()
			return program

		case current != nil && strings.Contains(line, "="):
			key, value, _ := strings.Cut(line, "=")
			current.Params[strings.TrimSpace(key)] = ParseLiteral(value)

		default:
			// Unrecognized lines outside an instruction are ignored,
			// matching the grammar's tolerance for free text.
		}
	}

	closeCurrent()
	return program
}

// isKindKeyword reports whether the token opens an instruction.
func isKindKeyword(token string) bool {
	_, ok := ir.ParseKind(token)
	return ok
}

// parseHeader applies a `PROGRAM name "description"` line.
func parseHeader(line string, program *ir.Program) {
	parts := strings.Split(line, `"`)
	if len(parts) >= 2 {
		program.Metadata.Description = parts[1]
	}
	name := strings.TrimSpace(strings.TrimPrefix(parts[0], headerKeyword))
	if name != "" {
		program.Name = name
	}
}

// parseInstructionLine parses `KIND target [cond1, cond2]`.
func parseInstructionLine(fields []string) (ir.Instruction, error) {
	if len(fields) < 2 {
		return ir.Instruction{}, fmt.Errorf("invalid instruction format: %s", strings.Join(fields, " "))
	}

	kind, _ := ir.ParseKind(fields[0])
	in := ir.NewInstruction(kind, fields[1], ir.Params{})

	if len(fields) > 2 {
		rest := strings.Join(fields[2:], " ")
		if strings.HasPrefix(rest, "[") && strings.HasSuffix(rest, "]") {
			for _, c := range splitTopLevel(rest[1 : len(rest)-1]) {
				if c = strings.TrimSpace(c); c != "" {
					in.Conditions = append(in.Conditions, c)
				}
			}
		}
	}
	return in, nil
}

// ParseLiteral coerces a raw parameter value using the fixed precedence:
// integer, float, boolean, bracketed list, quoted string, raw string.
func ParseLiteral(s string) ir.Value {
	s = strings.TrimSpace(s)

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ir.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return ir.Float(f)
	}
	switch strings.ToLower(s) {
	case "true":
		return ir.Bool(true)
	case "false":
		return ir.Bool(false)
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		items := splitTopLevel(s[1 : len(s)-1])
		list := make(ir.List, 0, len(items))
		for _, item := range items {
			list = append(list, ParseLiteral(item))
		}
		return list
	}
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return ir.String(s[1 : len(s)-1])
	}
	return ir.String(s)
}

// splitTopLevel splits on commas outside nested brackets, so list
// elements may themselves be bracketed lists.
func splitTopLevel(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
