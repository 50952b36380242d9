package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/typesystem"
	"github.com/spf13/cobra"
)

func newOpsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ops [kind]",
		Short: "List the builtin operations applicable to a kind",
		Example: `  chainlang ops number
  chainlang ops          # every builtin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := a.engine().Evaluator.Registry
			ops := reg.Builtins()
			subject := ast.NewUndefined()
			if len(args) == 1 {
				kind, err := typesystem.ParseKind(args[0])
				if err != nil {
					return err
				}
				subject = ast.DefaultData(sampleType(kind))
				ops = reg.Filtered(subject, nil)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, op := range ops {
				var params []string
				for _, p := range op.Arguments(subject) {
					params = append(params, fmt.Sprintf("%s: %s", p.Name, p.Type))
				}
				fmt.Fprintf(w, "%s\t(%s)\n", op.Name, strings.Join(params, ", "))
			}
			return w.Flush()
		},
	}
}

// sampleType returns a representative type of kind for dispatch.
func sampleType(kind typesystem.Kind) typesystem.Type {
	switch kind {
	case typesystem.KindArray:
		return typesystem.TArray{Elem: typesystem.Undefined}
	case typesystem.KindObject:
		return typesystem.TObject{}
	case typesystem.KindOperation:
		return typesystem.TOperation{Result: typesystem.Undefined}
	case typesystem.KindCondition:
		return typesystem.TCondition{Result: typesystem.Undefined}
	case typesystem.KindError:
		return typesystem.TError{}
	case typesystem.KindUnion:
		return typesystem.ResolveUnion([]typesystem.Type{typesystem.Number, typesystem.String}, false)
	}
	return typesystem.TPrimitive{K: kind}
}
