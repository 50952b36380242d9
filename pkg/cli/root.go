// Package cli implements the chainlang command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/funvibe/chainlang/internal/config"
	"github.com/funvibe/chainlang/internal/document"
	"github.com/funvibe/chainlang/internal/evaluator"
	"github.com/funvibe/chainlang/internal/modules"
	"github.com/funvibe/chainlang/internal/pipeline"
	"github.com/funvibe/chainlang/internal/propagation"
	"github.com/funvibe/chainlang/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds the state shared by every command of one invocation.
type app struct {
	// Global flags
	configPath string
	verbose    bool
	noColor    bool
	libraries  []string

	cfg     *config.Config
	logger  zerolog.Logger
	logFile io.Closer
	metrics *telemetry.Metrics
	color   bool
}

// Execute runs the root command
func Execute(ctx context.Context, version string) error {
	a := &app{logger: zerolog.Nop()}
	defer a.close()
	return a.rootCommand(version).ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	return (&app{logger: zerolog.Nop()}).rootCommand(version)
}

func (a *app) rootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chainlang",
		Short: "Evaluate and edit chainlang documents",
		Long: `chainlang evaluates documents of chained operations. Every statement is a
value followed by a chain of operation calls; editing one statement
re-evaluates everything that depends on it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		// Not run when a command fails; Execute closes in that case.
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file path (default: chainlang.yaml in this or a parent directory)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured output")
	rootCmd.PersistentFlags().StringSliceVarP(&a.libraries, "lib", "L", nil, "library directories whose named statements are visible to the document")

	// Add subcommands
	rootCmd.AddCommand(newEvalCommand(a))
	rootCmd.AddCommand(newWatchCommand(a))
	rootCmd.AddCommand(newExportCommand(a))
	rootCmd.AddCommand(newOpsCommand(a))
	rootCmd.AddCommand(newStoreCommand(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Resolve(a.configPath, ".")
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	logger, logFile, err := telemetry.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to open log output: %w", err)
	}
	a.close()
	a.cfg = cfg
	a.logger = logger
	a.logFile = logFile
	a.metrics = telemetry.NewMetrics(cfg.Metrics)
	a.color = !a.noColor && telemetry.IsTerminal(cmd.OutOrStdout())
	a.logger.Debug().Str("store", cfg.Store.Driver).Int("max_call_depth", cfg.Engine.MaxCallDepth).Msg("configuration loaded")
	return nil
}

// close releases the log file opened by setup, if any.
func (a *app) close() {
	if a.logFile == nil {
		return
	}
	if err := a.logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log output: %v\n", err)
	}
	a.logFile = nil
}

func (a *app) engine() *propagation.Engine {
	ev := evaluator.NewFromConfig(a.cfg.Engine, a.logger, a.metrics)
	return propagation.New(ev, a.logger, a.metrics)
}

// load reads and reconciles the document at path; "-" reads stdin in format.
func (a *app) load(cmd *cobra.Command, path string, format string) (*pipeline.PipelineContext, error) {
	var ctx *pipeline.PipelineContext
	if path == "-" {
		f, err := document.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		ctx = pipeline.NewSourceContext(data, f)
	} else {
		ctx = pipeline.NewContext(path)
	}
	engine := a.engine()
	if len(a.libraries) > 0 {
		scope, err := modules.NewLoader(engine).Scope(a.libraries...)
		if err != nil {
			return nil, err
		}
		ctx.Scope = scope
	}
	ctx = pipeline.Load(&pipeline.ReconcileProcessor{Engine: engine}).Run(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("document", ctx.Document.Name).
		Int("reconciled", ctx.Stats.Reconciled).
		Int("errors", ctx.Stats.Errors).
		Dur("duration", ctx.Stats.Duration).
		Msg("document reconciled")
	return ctx, nil
}

// writeTo opens path for writing, or returns stdout for "" and "-".
func writeTo(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}
