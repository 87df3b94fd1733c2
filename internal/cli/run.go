package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/helix/internal/compiler"
	"github.com/roach88/helix/internal/config"
	"github.com/roach88/helix/internal/engine"
	"github.com/roach88/helix/internal/store"
)

// RunResult is the JSON payload of the run command.
type RunResult struct {
	Program string           `json:"program"`
	Steps   []*engine.Result `json:"steps"`
	State   engine.State     `json:"final_state"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		configPath string
		steps      int
		validate   bool
	)

	cmd := &cobra.Command{
		Use:   "run <program-file>",
		Short: "Execute a genetic program",
		Long: `Execute a genetic program against a fresh expression engine. The
program is applied once per step; each step also advances expression
dynamics, drains the reconfiguration scheduler, and evaluates
differentiation. The final engine state is reported at the end.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(rootOpts, args[0], configPath, steps, validate, cmd)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML runtime configuration file")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of execution steps (overrides config)")
	cmd.Flags().BoolVar(&validate, "validate", true, "validate before executing")
	return cmd
}

func runRun(opts *RootOptions, path, configPath string, steps int, validate bool, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return &ExitError{Code: ExitCommandError, Message: "cannot load config", Err: err}
		}
	}
	if steps > 0 {
		cfg.Steps = steps
	}

	program, err := loadProgram(path)
	if err != nil {
		return err
	}
	for _, parseErr := range program.ValidationErrors {
		formatter.Diag("parse: %s", parseErr)
	}

	if validate {
		validator := compiler.NewValidator(nil)
		if ok, errs := validator.Validate(program); !ok {
			for _, vErr := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", vErr)
			}
			return &ExitError{Code: ExitFailure, Message: "validation failed"}
		}
	}

	engineOpts := []engine.Option{
		engine.WithNoise(engine.NewGaussianNoise(cfg.NoiseStdDev, cfg.Seed)),
		engine.WithMaxPerCycle(cfg.MaxPerCycle),
	}
	if cfg.HistoryDB != "" {
		st, err := store.Open(cfg.HistoryDB)
		if err != nil {
			return &ExitError{Code: ExitCommandError, Message: "cannot open history store", Err: err}
		}
		defer st.Close()
		engineOpts = append(engineOpts, engine.WithHistoryStore(st))
	}

	eng := engine.New(engineOpts...)
	for name, strength := range cfg.Signals {
		eng.SetEnvironmentalSignal(name, strength)
	}
	if cfg.StressLevel > 0 {
		eng.SetStressLevel(cfg.StressLevel)
	}

	targets := defaultTargets()
	result := &RunResult{Program: program.Name}
	var lines []string

	for step := 0; step < cfg.Steps; step++ {
		stepResult := eng.Execute(cmd.Context(), program, targets)
		result.Steps = append(result.Steps, stepResult)

		lines = append(lines, fmt.Sprintf("step %d:", step+1))
		for _, change := range stepResult.ExpressionChanges {
			lines = append(lines, "  "+change)
		}
		for _, reconf := range stepResult.Reconfigurations {
			lines = append(lines, "  "+reconf)
		}
		if stepResult.Differentiation != "" {
			lines = append(lines, "  "+stepResult.Differentiation)
		}
	}

	result.State = eng.State()
	lines = append(lines, fmt.Sprintf("lineage: %s", result.State.CurrentLineage))
	lines = append(lines, fmt.Sprintf("processed: %d reconfigurations", result.State.Scheduler.TotalProcessed))

	return formatter.Success(result, lines...)
}
