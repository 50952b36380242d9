package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/prettyprinter"
	"github.com/spf13/cobra"
)

const (
	ansiReset = "\x1b[0m"
	ansiDim   = "\x1b[2m"
	ansiRed   = "\x1b[31m"
)

func newEvalCommand(a *app) *cobra.Command {
	var (
		format string
		stats  bool
	)

	cmd := &cobra.Command{
		Use:   "eval <document>",
		Short: "Evaluate a document and print every statement with its result",
		Example: `  # Evaluate a document file
  chainlang eval prices.chain.yaml

  # Evaluate JSON from stdin
  cat prices.chain.json | chainlang eval - --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.load(cmd, args[0], format)
			if err != nil {
				return err
			}
			a.printStatements(cmd.OutOrStdout(), ctx.Result)
			if stats {
				fmt.Fprintf(cmd.OutOrStdout(), "\nreconciled=%d reused=%d detached=%d resets=%d errors=%d in %s\n",
					ctx.Stats.Reconciled, ctx.Stats.Reused, ctx.Stats.Detached, ctx.Stats.ArgumentResets,
					ctx.Stats.Errors, ctx.Stats.Duration)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "stdin document format (json|yaml)")
	cmd.Flags().BoolVar(&stats, "stats", false, "print propagation statistics")

	return cmd
}

// printStatements renders stmts with result annotations, dimmed (or red for
// errors) on a terminal.
func (a *app) printStatements(w io.Writer, stmts []*ast.Statement) {
	out := prettyprinter.Print(stmts, true)
	if !a.color {
		fmt.Fprint(w, out)
		return
	}
	for _, line := range strings.SplitAfter(out, "\n") {
		i := strings.LastIndex(line, "   // ")
		if i < 0 {
			fmt.Fprint(w, line)
			continue
		}
		colour := ansiDim
		if strings.Contains(line[i:], ": error: ") {
			colour = ansiRed
		}
		fmt.Fprint(w, line[:i]+colour+strings.TrimSuffix(line[i:], "\n")+ansiReset)
		if strings.HasSuffix(line, "\n") {
			fmt.Fprintln(w)
		}
	}
}
