package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/funvibe/chainlang/internal/document"
	"github.com/funvibe/chainlang/internal/store"
	"github.com/spf13/cobra"
)

func newStoreCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage documents in the configured store",
		Long: `Save, load, list and delete documents in the store configured by the
store section of chainlang.yaml (sqlite by default).`,
	}

	cmd.AddCommand(newStoreSaveCommand(a))
	cmd.AddCommand(newStoreLoadCommand(a))
	cmd.AddCommand(newStoreListCommand(a))
	cmd.AddCommand(newStoreDeleteCommand(a))

	return cmd
}

// withStore opens the configured store for the duration of fn.
func (a *app) withStore(cmd *cobra.Command, fn func(store.Store) error) error {
	s, err := store.Open(cmd.Context(), a.cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close store")
		}
	}()
	return fn(s)
}

func newStoreSaveCommand(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save <document>",
		Short: "Reconcile a document file and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.load(cmd, args[0], string(document.FormatOf(args[0])))
			if err != nil {
				return err
			}
			doc := ctx.Document
			if name != "" {
				doc.Name = name
			}
			return a.withStore(cmd, func(s store.Store) error {
				if err := s.Save(cmd.Context(), doc); err != nil {
					return err
				}
				a.logger.Info().Str("document", doc.Name).Str("driver", a.cfg.Store.Driver).Msg("document saved")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "store under this name instead of the document's own")

	return cmd
}

func newStoreLoadCommand(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Load a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s store.Store) error {
				doc, err := s.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if output != "" && output != "-" {
					return document.Save(output, doc)
				}
				f, err := document.ParseFormat(format)
				if err != nil {
					return err
				}
				data, err := document.Marshal(doc, f)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "stdout format (json|yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file, codec chosen by extension")

	return cmd
}

func newStoreListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s store.Store) error {
				entries, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tSIZE\tUPDATED")
				for _, e := range entries {
					fmt.Fprintf(w, "%s\t%d\t%s\n", e.Name, e.Size, e.UpdatedAt.Format(time.RFC3339))
				}
				return w.Flush()
			})
		},
	}
}

func newStoreDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s store.Store) error {
				if err := s.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				a.logger.Info().Str("document", args[0]).Msg("document deleted")
				return nil
			})
		},
	}
}
