package compiler

import (
	"fmt"
	"slices"

	"github.com/roach88/helix/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrProgramTooLarge     = "E100" // instruction count over the cap
	ErrInvalidTarget       = "E101" // target outside the closed set
	ErrInvalidParameter    = "E102" // CONFIGURE key outside the whitelist
	ErrMissingParameter    = "E103" // CONNECT missing source/destination
	ErrInvalidSpecialize   = "E104" // SPECIALIZE type outside the closed set
	ErrParameterOutOfRange = "E105" // numeric value outside [min,max]
	ErrMultipleSpecialize  = "E110" // more than one SPECIALIZE
	ErrConflictingValues   = "E111" // CONFIGURE conflict on same target.key
)

// ValidationError is one violation found by the validator.
type ValidationError struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Instruction int    `json:"instruction,omitempty"` // 1-based, 0 for program-level errors
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Instruction > 0 {
		return fmt.Sprintf("Instruction %d: %s", e.Instruction, e.Message)
	}
	return e.Message
}

// Messages flattens validation errors to their display strings.
func Messages(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

// Validator checks programs against a fixed rule set.
type Validator struct {
	rules *Rules
}

// NewValidator creates a validator. A nil rules argument uses DefaultRules.
func NewValidator(rules *Rules) *Validator {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Validator{rules: rules}
}

// Validate checks the whole program and returns every violation found,
// in check order, with no short-circuiting. ok is true iff the list is
// empty.
//
// The validator is a gate for callers, not for the engine: the engine
// will execute whatever program it is handed, and callers decide whether
// to honor a failed validation.
func (v *Validator) Validate(p *ir.Program) (ok bool, errs []ValidationError) {
	if len(p.Instructions) > v.rules.MaxInstructions {
		errs = append(errs, ValidationError{
			Code:    ErrProgramTooLarge,
			Message: fmt.Sprintf("Program too large: %d > %d", len(p.Instructions), v.rules.MaxInstructions),
		})
	}

	for i, in := range p.Instructions {
		errs = append(errs, v.validateInstruction(i+1, in)...)
	}

	errs = append(errs, v.checkConflicts(p)...)

	return len(errs) == 0, errs
}

// validateInstruction checks a single instruction. n is 1-based.
func (v *Validator) validateInstruction(n int, in ir.Instruction) []ValidationError {
	var errs []ValidationError

	if !v.rules.ValidTargets[in.Target] {
		errs = append(errs, ValidationError{
			Code:        ErrInvalidTarget,
			Message:     fmt.Sprintf("Invalid target: %s", in.Target),
			Instruction: n,
		})
	}

	switch in.Kind {
	case ir.KindConfigure:
		errs = append(errs, v.validateConfigureParams(n, in)...)
	case ir.KindConnect:
		errs = append(errs, v.validateConnectParams(n, in)...)
	case ir.KindSpecialize:
		errs = append(errs, v.validateSpecializeParams(n, in)...)
	case ir.KindRegulate, ir.KindDivide, ir.KindCommunicate, ir.KindAdapt, ir.KindRepair:
		// No kind-specific parameter rules.
	}

	for _, key := range in.Params.SortedKeys() {
		if f, isNum := ir.Number(in.Params[key]); isNum {
			if f < v.rules.MinParameterValue || f > v.rules.MaxParameterValue {
				errs = append(errs, ValidationError{
					Code:        ErrParameterOutOfRange,
					Message:     fmt.Sprintf("Parameter %s out of range: %v", key, f),
					Instruction: n,
				})
			}
		}
	}

	return errs
}

// validateConfigureParams enforces the per-target key whitelist.
// Targets without a whitelist entry accept any keys.
func (v *Validator) validateConfigureParams(n int, in ir.Instruction) []ValidationError {
	expected := v.rules.ConfigureParams[in.Target]
	if len(expected) == 0 {
		return nil
	}

	var errs []ValidationError
	for _, key := range in.Params.SortedKeys() {
		if !slices.Contains(expected, key) {
			errs = append(errs, ValidationError{
				Code:        ErrInvalidParameter,
				Message:     fmt.Sprintf("Invalid parameter %s for %s", key, in.Target),
				Instruction: n,
			})
		}
	}
	return errs
}

// validateConnectParams requires source and destination.
func (v *Validator) validateConnectParams(n int, in ir.Instruction) []ValidationError {
	var errs []ValidationError
	for _, required := range []string{"source", "destination"} {
		if _, ok := in.Params[required]; !ok {
			errs = append(errs, ValidationError{
				Code:        ErrMissingParameter,
				Message:     fmt.Sprintf("Missing required parameter: %s", required),
				Instruction: n,
			})
		}
	}
	return errs
}

// validateSpecializeParams checks any "type" parameter against the
// closed specialization set. A SPECIALIZE without a type is legal here;
// the engine falls back to a generic no-op profile.
func (v *Validator) validateSpecializeParams(n int, in ir.Instruction) []ValidationError {
	typ, ok := in.Params["type"]
	if !ok {
		return nil
	}
	s, isString := typ.(ir.String)
	if isString && v.rules.SpecializationTypes[string(s)] {
		return nil
	}
	return []ValidationError{{
		Code:        ErrInvalidSpecialize,
		Message:     fmt.Sprintf("Invalid specialization type: %v", typ),
		Instruction: n,
	}}
}

// checkConflicts detects cross-instruction conflicts: more than one
// SPECIALIZE, and CONFIGURE instructions assigning different values to
// the same target.key.
func (v *Validator) checkConflicts(p *ir.Program) []ValidationError {
	var errs []ValidationError

	if len(p.InstructionsByKind(ir.KindSpecialize)) > 1 {
		errs = append(errs, ValidationError{
			Code:    ErrMultipleSpecialize,
			Message: "Multiple SPECIALIZE instructions found",
		})
	}

	seen := map[string]map[string]ir.Value{} // target -> key -> first value
	for _, in := range p.InstructionsByKind(ir.KindConfigure) {
		if seen[in.Target] == nil {
			seen[in.Target] = map[string]ir.Value{}
		}
		for _, key := range in.Params.SortedKeys() {
			value := in.Params[key]
			if prev, ok := seen[in.Target][key]; ok {
				if !ir.Equal(prev, value) {
					errs = append(errs, ValidationError{
						Code:    ErrConflictingValues,
						Message: fmt.Sprintf("Conflicting values for %s.%s", in.Target, key),
					})
				}
			} else {
				seen[in.Target][key] = value
			}
		}
	}

	return errs
}
