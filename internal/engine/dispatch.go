package engine

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/token"
)

var startTime = time.Now()

func notConfigured(name string) error {
	return cerrors.New(cerrors.KindExecute, "#"+name+" is not wired to a runtime hook", nil)
}

// Instruction executes one named instruction (§4.7). It satisfies the
// Invoker signature so InvokeBody can drive a function/method body
// through it. Ported from `instruction()` in execute/mod.rs: look the
// name up in the static table, route conditional instructions to the
// stack's own flow-control entry points, otherwise gather and validate
// parameters (either the caller's explicit rawParameters, from `invoke`,
// or freshly read off the stack) before dispatching on name.
func (e *Engine) Instruction(name string, rawParameters []data.Data, stack *Stack, last *data.Data, currentPass *string, scopes Scopes) (bool, error) {
	description, ok := instructions[name]
	if !ok {
		return false, cerrors.New(cerrors.KindInvalidCompilerFunction, "invalid compiler function #"+name, nil)
	}

	if !description.Invokable && rawParameters != nil {
		return false, cerrors.Message("#" + name + " may not be invoked")
	}

	if description.Conditional {
		switch name {
		case "while":
			return false, stack.LoopedCondition(last, scopes)
		case "else":
			return false, stack.DependentCondition(last, scopes)
		default:
			return false, cerrors.Message("unreachable conditional instruction #" + name)
		}
	}

	var source []data.Data
	var err error
	if rawParameters != nil {
		source = rawParameters
	} else {
		source, err = stack.Parameters(*last, scopes)
		if err != nil {
			return false, err
		}
	}
	parameters, err := validateParameters(source, description.Parameters, description.Variadic)
	if err != nil {
		return false, err
	}

	switch name {

	case "shell":
		if err := e.shellLoop(last, currentPass, scopes); err != nil {
			return false, err
		}
		return false, nil

	case "return":
		*last = parameters[0]
		return true, nil

	case "terminate":
		*last = nil
		return true, nil

	case "remember":
		*last = parameters[0]
		return false, nil

	case "fuze":
		result, err := reducePositions(parameters, token.Fuze)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "range":
		result, err := reducePositions(parameters, token.Range)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "fill":
		filler, ok := data.Literal(parameters[1])
		if !ok {
			return false, cerrors.Message("fill expects a literal filler")
		}
		length, ok := asLength(parameters[2])
		if !ok {
			return false, cerrors.Message("fill expects a numeric length")
		}
		result, err := data.Fill(parameters[0], data.String(filler), int(length))
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "fill_back":
		filler, ok := data.Literal(parameters[1])
		if !ok {
			return false, cerrors.Message("fill_back expects a literal filler")
		}
		length, ok := asLength(parameters[2])
		if !ok {
			return false, cerrors.Message("fill_back expects a numeric length")
		}
		result, err := data.FillBack(parameters[0], data.String(filler), int(length))
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "print":
		for _, p := range parameters {
			fmt.Print(literalText(p))
		}
		return false, nil

	case "print_line":
		for _, p := range parameters {
			fmt.Print(literalText(p))
		}
		fmt.Println()
		return false, nil

	case "error":
		var sb strings.Builder
		for _, p := range parameters {
			sb.WriteString(literalText(p))
		}
		*last = nil
		return false, cerrors.Message(sb.String())

	case "ensure":
		state, length, err := ResolveCondition(parameters, *last)
		if err != nil {
			return false, err
		}
		if length >= len(parameters) {
			return false, cerrors.Message("ensure expects an error message")
		}
		if !state {
			var sb strings.Builder
			for _, p := range parameters[length:] {
				sb.WriteString(literalText(p))
			}
			return false, cerrors.Message(sb.String())
		}
		return false, nil

	case "add":
		result, err := Add(parameters)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "subtract":
		result, err := Subtract(parameters)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "multiply":
		result, err := Multiply(parameters)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "divide":
		result, err := Divide(parameters)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "modulo":
		result, err := Modulo(parameters[0], parameters[1])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "power":
		result, err := Power(parameters[0], parameters[1])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "logarithm":
		result, err := Logarithm(parameters[0], parameters[1])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "square_root":
		result, err := SquareRoot(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "negate":
		result, err := Negate(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "absolute":
		result, err := Absolute(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "ceiling":
		result, err := Ceiling(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "round":
		result, err := Round(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "floor":
		result, err := Floor(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "sine":
		result, err := Sine(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "cosine":
		result, err := Cosine(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "tangent":
		result, err := Tangent(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "not":
		result, err := Not(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "and":
		result, err := And(parameters)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "or":
		result, err := Or(parameters)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "xor":
		result, err := Xor(parameters)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "shift_left":
		result, err := ShiftLeft(parameters[0], parameters[1])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "shift_right":
		result, err := ShiftRight(parameters[0], parameters[1])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "integer":
		result, err := ToInteger(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "float":
		result, err := ToFloat(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "character":
		result, err := ToCharacter(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "string":
		var sb strings.Builder
		for _, p := range parameters {
			sb.WriteString(literalText(p))
		}
		*last = data.String(sb.String())
		return false, nil

	case "identifier":
		result, err := combineLiteral(parameters, func(text string) data.Data { return data.Identifier(text) }, "identifier")
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "keyword":
		result, err := combineLiteral(parameters, func(text string) data.Data { return data.Keyword(text) }, "keyword")
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "type":
		*last = data.Keyword(parameters[0].Kind().String())
		return false, nil

	case "length":
		n, err := data.Length(parameters[0])
		if err != nil {
			return false, err
		}
		*last = data.Integer(n)
		return false, nil

	case "random":
		smallest, ok := asLength(parameters[0])
		if !ok {
			return false, cerrors.Message("random expects numbers")
		}
		biggest, ok := asLength(parameters[1])
		if !ok {
			return false, cerrors.Message("random expects numbers")
		}
		if smallest > biggest {
			return false, cerrors.Message("first parameter must be smaller or equal to the second one")
		}
		*last = data.Integer(int64(smallest) + rand.Int63n(int64(biggest-smallest+1)))
		return false, nil

	case "time":
		*last = data.Integer(time.Since(startTime).Milliseconds())
		return false, nil

	case "input":
		if e.ctx.Input == nil {
			return false, notConfigured(name)
		}
		line, err := e.ctx.Input()
		if err != nil {
			return false, err
		}
		*last = data.String(line)
		return false, nil

	case "empty":
		n, err := data.Length(parameters[0])
		if err != nil {
			return false, err
		}
		*last = data.Boolean(n == 0)
		return false, nil

	case "flip":
		result, err := data.Flip(parameters[0])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "join":
		list, ok := parameters[0].(data.List)
		if !ok {
			return false, cerrors.Message("join expects a list")
		}
		separator, ok := data.Literal(parameters[1])
		if !ok {
			return false, cerrors.Message("join expects a literal separator")
		}
		items := list.Items()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = literalText(item)
		}
		*last = data.String(strings.Join(parts, separator))
		return false, nil

	case "split":
		result, err := splitContainer(parameters[0], parameters[1], parameters[2])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "uppercase":
		var sb strings.Builder
		for _, p := range parameters {
			sb.WriteString(strings.ToUpper(literalText(p)))
		}
		*last = data.String(sb.String())
		return false, nil

	case "lowercase":
		var sb strings.Builder
		for _, p := range parameters {
			sb.WriteString(strings.ToLower(literalText(p)))
		}
		*last = data.String(sb.String())
		return false, nil

	case "insert":
		result, err := data.InsertAt(parameters[0], parameters[1], parameters[2])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "overwrite":
		result, err := data.OverwriteAt(parameters[0], parameters[1], parameters[2])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "move":
		item, found, err := data.Index(parameters[0], parameters[1])
		if err != nil {
			return false, err
		}
		if !found {
			return false, cerrors.MissingEntry(parameters[1].String())
		}
		removed, err := data.RemoveAt(parameters[0], parameters[1])
		if err != nil {
			return false, err
		}
		result, err := data.InsertAt(removed, parameters[2], item)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "push":
		result, err := data.InsertAt(parameters[0], data.Integer(1), parameters[1])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "append":
		result, err := data.InsertAt(parameters[0], data.Integer(-1), parameters[1])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "remove":
		result, err := data.RemoveAt(parameters[0], parameters[1])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "system":
		ok, err := runCommand(parameters, false)
		if err != nil {
			return false, err
		}
		*last = data.Boolean(ok)
		return false, nil

	case "silent":
		ok, err := runCommand(parameters, true)
		if err != nil {
			return false, err
		}
		*last = data.Boolean(ok)
		return false, nil

	case "keys":
		m, ok := parameters[0].(data.Map)
		if !ok {
			return false, cerrors.Message("keys expects a map")
		}
		*last = m.Keys()
		return false, nil

	case "values":
		switch v := parameters[0].(type) {
		case data.Map:
			*last = v.Values()
		case data.List:
			*last = v
		default:
			return false, cerrors.Message("values expects a map or list")
		}
		return false, nil

	case "pairs":
		pairs, err := containerPairs(parameters[0])
		if err != nil {
			return false, err
		}
		*last = data.NewList(pairs...)
		return false, nil
	// containerPairs is defined in stack.go (shared with Iterate)

	case "serialize":
		if e.ctx.Serialize != nil {
			text, err := e.ctx.Serialize(parameters[0])
			if err != nil {
				return false, err
			}
			*last = data.String(text)
			return false, nil
		}
		*last = data.String(parameters[0].String())
		return false, nil

	case "deserialize":
		text, ok := data.Literal(parameters[0])
		if !ok {
			return false, cerrors.Message("deserialize expects a literal")
		}
		if e.ctx.Deserialize == nil {
			return false, notConfigured(name)
		}
		result, err := e.ctx.Deserialize(text)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "read_file":
		if e.ctx.ReadFile != nil {
			path, _ := data.Literal(parameters[0])
			content, err := e.ctx.ReadFile(path)
			if err != nil {
				return false, err
			}
			*last = data.String(content)
			return false, nil
		}
		path, _ := data.Literal(parameters[0])
		content, err := os.ReadFile(path)
		if err != nil {
			return false, cerrors.New(cerrors.KindMissingFile, err.Error(), nil)
		}
		*last = data.String(string(content))
		return false, nil

	case "write_file":
		path, _ := data.Literal(parameters[0])
		content, _ := data.Literal(parameters[1])
		if e.ctx.WriteFile != nil {
			if err := e.ctx.WriteFile(path, content); err != nil {
				return false, err
			}
		} else if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return false, cerrors.New(cerrors.KindMissingFile, err.Error(), nil)
		}
		*last = nil
		return false, nil

	case "read_map":
		if e.ctx.ReadMap == nil {
			return false, notConfigured(name)
		}
		path, _ := data.Literal(parameters[0])
		result, err := e.ctx.ReadMap(path)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "write_map":
		if e.ctx.WriteMap == nil {
			return false, notConfigured(name)
		}
		path, _ := data.Literal(parameters[0])
		if err := e.ctx.WriteMap(path, parameters[1]); err != nil {
			return false, err
		}
		*last = nil
		return false, nil

	case "read_list":
		if e.ctx.ReadList == nil {
			return false, notConfigured(name)
		}
		path, _ := data.Literal(parameters[0])
		result, err := e.ctx.ReadList(path)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "write_list":
		if e.ctx.WriteList == nil {
			return false, notConfigured(name)
		}
		path, _ := data.Literal(parameters[0])
		if err := e.ctx.WriteList(path, parameters[1]); err != nil {
			return false, err
		}
		*last = nil
		return false, nil

	case "modify":
		if err := applyModify(parameters, scopes); err != nil {
			return false, err
		}
		*last = nil
		return false, nil

	case "call":
		body := parameters[0]
		callParameters := parameters[1:]
		result, err := InvokeBody(body, callParameters, currentPass, scopes.Root, scopes.Build, scopes.Context, e.Instruction)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "call_list":
		body := parameters[0]
		var callParameters []data.Data
		if len(parameters) == 2 {
			list, ok := parameters[1].(data.List)
			if !ok {
				return false, cerrors.Message("call_list expects a list of parameters")
			}
			callParameters = list.Items()
		}
		result, err := InvokeBody(body, callParameters, currentPass, scopes.Root, scopes.Build, scopes.Context, e.Instruction)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "invoke":
		kw, ok := parameters[0].(data.Keyword)
		if !ok {
			return false, cerrors.Message("invoke expects an instruction keyword")
		}
		var invokeParameters []data.Data
		if len(parameters) == 2 {
			list, ok := parameters[1].(data.List)
			if !ok {
				return false, cerrors.Message("invoke expects a list of parameters")
			}
			invokeParameters = list.Items()
		} else {
			invokeParameters = []data.Data{}
		}
		done, err := e.Instruction(string(kw), invokeParameters, stack, last, currentPass, scopes)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		return false, nil

	case "compile_file":
		if e.ctx.CompileFile == nil {
			return false, notConfigured(name)
		}
		path, _ := data.Literal(parameters[1])
		result, err := e.ctx.CompileFile(parameters[0], path, *scopes.Context)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "compile_string":
		if e.ctx.CompileString == nil {
			return false, notConfigured(name)
		}
		source, _ := data.Literal(parameters[1])
		result, err := e.ctx.CompileString(parameters[0], source, *scopes.Context)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "compile_module":
		if e.ctx.CompileModule == nil {
			return false, notConfigured(name)
		}
		var directory *string
		if len(parameters) > 2 {
			dir, _ := data.Literal(parameters[2])
			directory = &dir
		}
		result, err := e.ctx.CompileModule(parameters[0], parameters[1], directory, *scopes.Context)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "pass":
		if e.ctx.Pass == nil {
			return false, notConfigured(name)
		}
		instance := parameters[0]
		passContext, err := withPassParameters(*scopes.Context, parameters[1:])
		if err != nil {
			return false, err
		}
		result, err := e.ctx.Pass(instance, currentPass, scopes.Root, scopes.Build, &passContext)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "new_pass":
		if e.ctx.Pass == nil {
			return false, notConfigured(name)
		}
		newPassName, ok := parameters[0].(data.Identifier)
		if !ok {
			return false, cerrors.Message("new_pass expects an identifier")
		}
		passName := string(newPassName)
		instance := parameters[1]
		passContext, err := withPassParameters(*scopes.Context, parameters[2:])
		if err != nil {
			return false, err
		}
		result, err := e.ctx.Pass(instance, &passName, scopes.Root, scopes.Build, &passContext)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "map":
		result, err := buildMap(parameters)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "path":
		result, err := buildPath(parameters)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "list":
		*last = data.NewList(parameters...)
		return false, nil

	case "merge":
		merged := parameters[0]
		for _, next := range parameters[1:] {
			combined, err := data.Merge(merged, next)
			if err != nil {
				return false, err
			}
			merged = combined
		}
		*last = merged
		return false, nil

	case "slice":
		result, err := data.SliceAt(parameters[0], parameters[1], parameters[2])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "index":
		result, found, err := data.Index(parameters[0], parameters[1])
		if err != nil {
			return false, err
		}
		if !found {
			return false, cerrors.MissingEntry(parameters[1].String())
		}
		*last = result
		return false, nil

	case "resolve":
		result, err := resolveLocation(parameters[0], scopes)
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "replace":
		result, err := data.ReplaceOp(parameters[0], parameters[1], parameters[2])
		if err != nil {
			return false, err
		}
		*last = result
		return false, nil

	case "position":
		result, found, err := data.PositionOp(parameters[0], parameters[1])
		if err != nil {
			return false, err
		}
		if !found {
			return false, cerrors.MissingEntry(parameters[1].String())
		}
		*last = result
		return false, nil

	case "iterate":
		return false, stack.Iterate(parameters, last, scopes)

	case "for":
		start, ok := asLength(parameters[0])
		if !ok {
			return false, cerrors.Message("for expects integers")
		}
		end, ok := asLength(parameters[1])
		if !ok {
			return false, cerrors.Message("for expects integers")
		}
		return false, stack.Counted(int64(start), int64(end), 1, last, scopes)

	case "if":
		return false, stack.Condition(parameters, last, scopes)

	case "break":
		return false, stack.BreakFlow(parameters)

	case "continue":
		return false, stack.ContinueFlow(parameters, last, scopes)

	case "end":
		return false, stack.End(parameters, last, scopes)

	case "boolean":
		state, length, err := ResolveCondition(parameters, *last)
		if err != nil {
			return false, err
		}
		if length != len(parameters) {
			return false, cerrors.New(cerrors.KindUnexpectedParameter, "unexpected condition operand", nil)
		}
		*last = data.Boolean(state)
		return false, nil

	default:
		return false, cerrors.New(cerrors.KindInvalidCompilerFunction, "unhandled compiler function #"+name, nil)
	}
}

func asLength(d data.Data) (int64, bool) {
	switch v := d.(type) {
	case data.Integer:
		return int64(v), true
	case data.Character:
		return int64(v), true
	case data.Float:
		return int64(v), true
	default:
		return 0, false
	}
}

func combineLiteral(parameters []data.Data, build func(string) data.Data, name string) (data.Data, error) {
	var sb strings.Builder
	for _, p := range parameters {
		sb.WriteString(literalText(p))
	}
	text := sb.String()
	if text == "" {
		return nil, cerrors.Message(name + " may not be empty")
	}
	if text[0] >= '0' && text[0] <= '9' {
		return nil, cerrors.Message(name + " may not start with a digit")
	}
	if !isPureLiteral(data.String(text)) {
		return nil, cerrors.Message(name + " may only contain non breaking characters")
	}
	return build(text), nil
}

func splitContainer(container, separator, keepEmptyParam data.Data) (data.Data, error) {
	keepEmpty := false
	if b, ok := keepEmptyParam.(data.Boolean); ok {
		keepEmpty = bool(b)
	}
	switch c := container.(type) {
	case data.List:
		var groups [][]data.Data
		current := []data.Data{}
		for _, item := range c.Items() {
			if item.Equal(separator) {
				if keepEmpty || len(current) > 0 {
					groups = append(groups, current)
				}
				current = []data.Data{}
				continue
			}
			current = append(current, item)
		}
		if keepEmpty || len(current) > 0 {
			groups = append(groups, current)
		}
		result := make([]data.Data, len(groups))
		for i, group := range groups {
			result[i] = data.NewList(group...)
		}
		return data.NewList(result...), nil
	default:
		text, ok := data.Literal(container)
		if !ok {
			return nil, cerrors.Message("split expects a container")
		}
		sep, ok := data.Literal(separator)
		if !ok {
			return nil, cerrors.Message("split expects a literal separator")
		}
		var parts []string
		if keepEmpty {
			parts = strings.Split(text, sep)
		} else {
			for _, part := range strings.Split(text, sep) {
				if part != "" {
					parts = append(parts, part)
				}
			}
		}
		result := make([]data.Data, len(parts))
		for i, part := range parts {
			result[i] = data.String(part)
		}
		return data.NewList(result...), nil
	}
}

func runCommand(parameters []data.Data, silent bool) (bool, error) {
	command, ok := data.Literal(parameters[0])
	if !ok {
		return false, cerrors.Message("expected a command string")
	}
	var arguments []string
	for _, p := range parameters[1:] {
		text, ok := data.Literal(p)
		if !ok {
			return false, cerrors.Message("expected string arguments")
		}
		arguments = append(arguments, text)
	}
	cmd := exec.Command(command, arguments...)
	if silent {
		cmd.Stdout = nil
	} else {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*exec.ExitError); ok {
		return false, nil
	}
	return false, err
}

func buildMap(parameters []data.Data) (data.Data, error) {
	if len(parameters)%2 != 0 {
		return nil, cerrors.New(cerrors.KindExpectedParameter, "expected a value for every key", nil)
	}
	m := data.NewMap()
	for i := 0; i < len(parameters); i += 2 {
		inserted, err := m.Insert(parameters[i], parameters[i+1])
		if err != nil {
			return nil, err
		}
		m = inserted
	}
	return m, nil
}

func buildPath(parameters []data.Data) (data.Data, error) {
	var steps []data.Data
	for _, p := range parameters {
		if path, ok := p.(data.Path); ok {
			steps = append(steps, path.Steps...)
			continue
		}
		if !data.IsSelector(p) {
			return nil, cerrors.Message("path may only contain selectors")
		}
		steps = append(steps, p)
	}
	if len(steps) < 2 {
		return nil, cerrors.New(cerrors.KindInvalidPathLength, "path must have at least two steps", nil)
	}
	return data.NewPath(steps)
}

func withPassParameters(context data.Data, parameters []data.Data) (data.Data, error) {
	m, ok := context.(data.Map)
	if !ok {
		m = data.NewMap()
	}
	updated, err := m.Overwrite(data.Keyword("parameters"), data.NewList(parameters...))
	if err != nil {
		updated, err = m.Insert(data.Keyword("parameters"), data.NewList(parameters...))
		if err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func overwriteNestedPath(container data.Data, steps []data.Data, value data.Data) (data.Data, error) {
	if len(steps) == 1 {
		return data.OverwriteAt(container, steps[0], value)
	}
	child, found, err := data.Index(container, steps[0])
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, cerrors.MissingEntry(steps[0].String())
	}
	newChild, err := overwriteNestedPath(child, steps[1:], value)
	if err != nil {
		return nil, err
	}
	return data.OverwriteAt(container, steps[0], newChild)
}

func modifyAt(target *data.Data, steps []data.Data, value data.Data) error {
	if len(steps) == 0 {
		*target = value
		return nil
	}
	result, err := overwriteNestedPath(*target, steps, value)
	if err != nil {
		return err
	}
	*target = result
	return nil
}

// applyModify implements the `modify` instruction: walk (location, value)
// pairs, each location a bare scope keyword or a path rooted at one,
// mutating the named scope (or, for #function/#template, the matching
// entry under root) in place.
func applyModify(parameters []data.Data, scopes Scopes) error {
	if len(parameters)%2 != 0 {
		return cerrors.New(cerrors.KindExpectedParameter, "expected a value for every location", nil)
	}
	for i := 0; i < len(parameters); i += 2 {
		location := parameters[i]
		value := parameters[i+1]

		var name string
		var steps []data.Data
		switch v := location.(type) {
		case data.Keyword:
			name = string(v)
		case data.Path:
			kw, ok := v.Steps[0].(data.Keyword)
			if !ok {
				return cerrors.Message("modify location must start with a keyword")
			}
			name = string(kw)
			steps = v.Steps[1:]
		default:
			return cerrors.Message("only a key or path is a valid modify location")
		}

		switch name {
		case "root":
			if err := modifyAt(scopes.Root, steps, value); err != nil {
				return err
			}
		case "scope":
			if err := modifyAt(scopes.Scope, steps, value); err != nil {
				return err
			}
		case "build":
			if err := modifyAt(scopes.Build, steps, value); err != nil {
				return err
			}
		case "context":
			if err := modifyAt(scopes.Context, steps, value); err != nil {
				return err
			}
		case "function", "template":
			fullSteps := append([]data.Data{data.Keyword(name)}, steps...)
			if err := modifyAt(scopes.Root, fullSteps, value); err != nil {
				return err
			}
		default:
			return cerrors.Message("invalid scope for modify #" + name)
		}
	}
	return nil
}

// resolveLocation implements the `resolve` instruction: like
// Stack.Parameters's location resolution, but the selector/path comes
// from a value instead of stack syntax, and #data/#last are not valid
// locations here.
func resolveLocation(selector data.Data, scopes Scopes) (data.Data, error) {
	var name string
	var steps []data.Data
	switch v := selector.(type) {
	case data.Keyword:
		name = string(v)
	case data.Path:
		kw, ok := v.Steps[0].(data.Keyword)
		if !ok {
			return nil, cerrors.Message("resolve location must start with a keyword")
		}
		name = string(kw)
		steps = v.Steps[1:]
	default:
		return nil, cerrors.Message("only a key or path is a valid resolve location")
	}

	var start data.Data
	switch name {
	case "root":
		start = *scopes.Root
	case "scope":
		start = *scopes.Scope
	case "build":
		start = *scopes.Build
	case "context":
		start = *scopes.Context
	case "function":
		functionMap, ok, err := data.Index(*scopes.Root, data.Keyword("function"))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cerrors.MissingEntry("function")
		}
		start = functionMap
	case "template":
		templateMap, ok, err := data.Index(*scopes.Root, data.Keyword("template"))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cerrors.MissingEntry("template")
		}
		start = templateMap
	default:
		return nil, cerrors.New(cerrors.KindInvalidLocation, "invalid scope for resolve #"+name, nil)
	}

	if len(steps) == 0 {
		return start, nil
	}
	var path data.Data
	if len(steps) == 1 {
		path = steps[0]
	} else {
		p, err := data.NewPath(steps)
		if err != nil {
			return nil, err
		}
		path = p
	}
	result, found, err := data.Index(start, path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, cerrors.Message("failed to resolve")
	}
	return result, nil
}
