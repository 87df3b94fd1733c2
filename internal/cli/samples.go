package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/helix/internal/samples"
)

// NewSamplesCommand creates the samples command: list the built-in
// programs or print one in structured JSON form.
func NewSamplesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "samples [name]",
		Short: "List or print the built-in sample programs",
		Long: `Without arguments, list the built-in sample program names. With a
name, print that program's structured JSON form, suitable for feeding
back into run or compile.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSamples(rootOpts, args, cmd)
		},
	}
}

func runSamples(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if len(args) == 0 {
		return formatter.Success(samples.Names, samples.Names...)
	}

	program, ok := samples.Program(args[0])
	if !ok {
		return &ExitError{
			Code:    ExitCommandError,
			Message: fmt.Sprintf("unknown sample %q: must be one of %v", args[0], samples.Names),
		}
	}

	out, err := json.MarshalIndent(program.Structured(), "", "  ")
	if err != nil {
		return err
	}
	return formatter.Success(program.Structured(), string(out))
}
