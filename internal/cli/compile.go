package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/roach88/helix/internal/compiler"
)

// NewCompileCommand creates the compile command: parse, optionally
// optimize, and emit the structured JSON form.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	var optimize bool

	cmd := &cobra.Command{
		Use:   "compile <program-file>",
		Short: "Parse a program and emit its structured JSON form",
		Long: `Parse a genetic program and print the equivalent structured JSON
representation. With --optimize the program is deduplicated and merged
first. Parse errors are reported but do not block emission - the output
is the best-effort program.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(rootOpts, args[0], optimize, cmd)
		},
	}

	cmd.Flags().BoolVar(&optimize, "optimize", false, "deduplicate and merge instructions")
	return cmd
}

func runCompile(opts *RootOptions, path string, optimize bool, cmd *cobra.Command) error {
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
	for _, parseErr := range program.ValidationErrors {
		formatter.Diag("parse: %s", parseErr)
	}

	if optimize {
		before := len(program.Instructions)
		program = compiler.Optimize(program)
		formatter.Diag("optimized %d instructions down to %d", before, len(program.Instructions))
	}

	// The structured form is the compile output in both modes; text mode
	// just skips the response envelope.
	out, err := json.MarshalIndent(program.Structured(), "", "  ")
	if err != nil {
		return err
	}
	return formatter.Success(program.Structured(), string(out))
}
