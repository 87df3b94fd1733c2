package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/helix/internal/compiler"
)

// ValidationResult is the JSON payload of the validate command.
type ValidationResult struct {
	Valid       bool     `json:"valid"`
	ParseErrors []string `json:"parse_errors,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <program-file>",
		Short: "Parse and validate a genetic program",
		Long: `Parse a genetic program (text or .json structured form) and run the
full validator over it. All violations are reported together; the exit
code is 0 only when both parse and validation are clean.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	program, err := loadProgram(path)
	if err != nil {
		return err
	}
	formatter.Diag("parsed program %q with %d instructions", program.Name, len(program.Instructions))

	ok, errs := compiler.NewValidator(nil).Validate(program)
	result := ValidationResult{
		Valid:       ok && len(program.ValidationErrors) == 0,
		ParseErrors: program.ValidationErrors,
		Errors:      compiler.Messages(errs),
	}

	lines := []string{fmt.Sprintf("program: %s", program.Name)}
	for _, e := range result.ParseErrors {
		lines = append(lines, "parse: "+e)
	}
	for _, e := range result.Errors {
		lines = append(lines, "error: "+e)
	}
	if result.Valid {
		lines = append(lines, "valid")
	} else {
		lines = append(lines, "invalid")
	}

	if err := formatter.Success(result, lines...); err != nil {
		return err
	}
	if !result.Valid {
		return &ExitError{Code: ExitFailure, Message: "validation failed"}
	}
	return nil
}
