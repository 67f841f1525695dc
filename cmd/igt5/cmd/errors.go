package cmd

import (
	"fmt"
	"os"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/engine"
)

// operandParameters turns a CompilerError's loosely-typed Operand into the
// parameter list §7's function.<kind> hook is called with ("taking the
// error's operands as parameters").
func operandParameters(operand any) []data.Data {
	switch value := operand.(type) {
	case nil:
		return nil
	case string:
		return []data.Data{data.String(value)}
	case []error:
		items := make([]data.Data, len(value))
		for i, inner := range value {
			items[i] = data.String(inner.Error())
		}
		return []data.Data{data.NewList(items...)}
	default:
		return []data.Data{data.String(fmt.Sprint(value))}
	}
}

// formatError implements §7's user-visible-formatting hook: "the root
// configuration may define a function.<kind> ... if present, that
// function's string return value overrides the default [...] falling back
// to the default message on absence." root is the loaded project, or nil
// when no project has been loaded yet (e.g. loadProject itself failed) —
// the hook can only apply once a root config exists.
func formatError(root data.Data, err error) string {
	compilerErr, ok := err.(*cerrors.CompilerError)
	if !ok || root == nil {
		return err.Error()
	}

	functions, ok := indexKeyword(root, "function")
	if !ok {
		return compilerErr.Format(false)
	}
	body, ok := indexKeyword(functions, string(compilerErr.Kind))
	if !ok {
		return compilerErr.Format(false)
	}

	eng := newEngine()
	parameters := operandParameters(compilerErr.Operand)
	rootValue := root
	build := data.Data(data.NewMap())
	context := data.Data(data.NewMap())
	result, invokeErr := engine.InvokeBody(body, parameters, nil, &rootValue, &build, &context, eng.Instruction)
	if invokeErr != nil {
		return compilerErr.Format(false)
	}
	if text, ok := result.(data.String); ok {
		return string(text)
	}
	return compilerErr.Format(false)
}

// displayError formats err per §7 (calling the function.<kind> hook when
// root and the hook are both available) and exits 1, the same convention
// exitWithError uses for plain CLI usage messages.
func displayError(root data.Data, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", formatError(root, err))
	os.Exit(1)
}
