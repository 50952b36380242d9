package cli

import (
	"fmt"

	"github.com/funvibe/chainlang/internal/document"
	"github.com/spf13/cobra"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <document>",
		Short: "Write a reconciled document or its results",
		Long: `Export reconciles a document and writes it out again.

Formats:
  json     the document, JSON encoded
  yaml     the document, YAML encoded
  results  the result of every statement as protobuf JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.load(cmd, args[0], string(document.FormatOf(args[0])))
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "results", "proto":
				data, err = document.ExportJSON(ctx.Document)
			default:
				f, ferr := document.ParseFormat(format)
				if ferr != nil {
					return ferr
				}
				data, err = document.Marshal(ctx.Document, f)
			}
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", ctx.Document.Name, err)
			}

			w, closeFn, err := writeTo(cmd, output)
			if err != nil {
				return err
			}
			if _, err := w.Write(data); err != nil {
				_ = closeFn()
				return err
			}
			if len(data) > 0 && data[len(data)-1] != '\n' {
				fmt.Fprintln(w)
			}
			return closeFn()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json|yaml|results)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
