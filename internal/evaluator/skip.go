package evaluator

import (
	"fmt"

	"github.com/funvibe/chainlang/internal/analyzer"
	"github.com/funvibe/chainlang/internal/ast"
	"github.com/funvibe/chainlang/internal/symbols"
)

// Condition branch indexes accepted by SkipExecution when call is nil.
const (
	TrueBranch  = 1
	FalseBranch = 2
)

// SkipExecution explains why an argument (or a condition branch) would not
// take part in evaluation. data is the value the call is applied to; with a
// nil call it is a condition value and paramIndex names a branch. The result
// is advisory only and "" means the part is evaluated normally.
func (e *Evaluator) SkipExecution(ctx *symbols.Context, data *ast.Data, call *ast.Call, paramIndex int) string {
	if data == nil {
		return ""
	}
	if call == nil {
		return e.skipBranch(ctx, data, paramIndex)
	}
	if data.IsError() {
		return "not evaluated: preceded by an error: " + Reason(data)
	}
	op, ok := e.Registry.Lookup(data, call.Name, ctx)
	if !ok {
		return fmt.Sprintf("operation %q does not apply to %s", call.Name, data.Type)
	}
	if paramIndex < 0 {
		return ""
	}
	if op.ShortCircuit != nil {
		if reason := op.ShortCircuit(data, paramIndex); reason != "" {
			return reason
		}
	}
	specs := op.Arguments(data)
	if paramIndex >= len(specs) {
		return fmt.Sprintf("%s takes %d arguments", op.Name, len(specs))
	}
	if paramIndex < len(call.Parameters) {
		if bad := analyzer.IncompatibleArguments(specs[paramIndex:paramIndex+1], call.Parameters[paramIndex:paramIndex+1]); len(bad) > 0 {
			return fmt.Sprintf("expects %s, got %s", specs[paramIndex].Type, call.Parameters[paramIndex].Result().Type)
		}
	}
	return ""
}

func (e *Evaluator) skipBranch(ctx *symbols.Context, data *ast.Data, branch int) string {
	c, ok := data.Value.(*ast.Condition)
	if !ok {
		return ""
	}
	test := e.Evaluate(c.Test, ctx)
	if test.IsError() {
		return "not evaluated: the condition failed: " + Reason(test)
	}
	switch {
	case branch == TrueBranch && !Truthy(test):
		return "branch not taken: the condition is false"
	case branch == FalseBranch && Truthy(test):
		return "branch not taken: the condition is true"
	}
	return ""
}
