package engine

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
)

// ParameterSpec is one formal parameter in a function/method's leading
// `[#single|#list key? [type...]?]` spec list (§4.4). Ported from
// FunctionParameter/MethodParameter, which are structurally identical in
// the original — both namespaces share this one Go type.
type ParameterSpec struct {
	Key        data.Data
	TypeFilter []ParameterType
	HasFilter  bool
	Variadic   bool
}

func typeFromIdentifier(name string) (ParameterType, bool) {
	for t := TypeMap; t <= TypeLocation; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// newParameterSpec parses one `[#single|#list key? [type...]?]` entry.
func newParameterSpec(appearance data.Data) (ParameterSpec, error) {
	list, ok := appearance.(data.List)
	if !ok {
		return ParameterSpec{}, cerrors.Message("expected a parameter spec list")
	}
	sub := NewStack(list.Items())

	marker, ok := sub.Pop()
	if !ok {
		return ParameterSpec{}, cerrors.New(cerrors.KindExpected, "expected a parameter type", nil)
	}
	kw, ok := marker.(data.Keyword)
	if !ok {
		return ParameterSpec{}, cerrors.Message("expected #single or #list")
	}
	var variadic bool
	switch string(kw) {
	case "single":
		variadic = false
	case "list":
		variadic = true
	default:
		return ParameterSpec{}, cerrors.Message("invalid parameter type #" + string(kw))
	}

	spec := ParameterSpec{Variadic: variadic}

	if next, ok := sub.Peek(0); ok && data.IsKey(next) {
		sub.Advance(1)
		spec.Key = next
	}

	if next, ok := sub.Pop(); ok {
		filterList, ok := next.(data.List)
		if !ok {
			return ParameterSpec{}, cerrors.Message("expected a type filter list")
		}
		for _, filter := range filterList.Items() {
			identifier, ok := filter.(data.Identifier)
			if !ok {
				return ParameterSpec{}, cerrors.Message("type filter must contain identifiers")
			}
			t, ok := typeFromIdentifier(string(identifier))
			if !ok {
				return ParameterSpec{}, cerrors.Message("unknown parameter type " + string(identifier))
			}
			spec.TypeFilter = append(spec.TypeFilter, t)
		}
		spec.HasFilter = true
	}

	return spec, nil
}

// validateCallParameters implements FunctionParameter::validate /
// MethodParameter::validate: bind the caller's actual parameters into
// scope according to the formal specs, enforcing that only the last spec
// may be variadic.
func validateCallParameters(scope *data.Map, parameters []data.Data, specs []ParameterSpec) error {
	sub := NewStack(parameters)

	bind := func(key data.Data, value data.Data) error {
		if key == nil {
			return nil
		}
		_, alreadyPresent := scope.Index(key)
		if alreadyPresent {
			return cerrors.Message("parameters may not share the same name")
		}
		next, err := scope.Insert(key, value)
		if err != nil {
			return err
		}
		*scope = next
		return nil
	}

	for index, spec := range specs {
		if spec.Variadic {
			if index != len(specs)-1 {
				return cerrors.New(cerrors.KindInvalidVariadic, "only the last parameter may be variadic", nil)
			}
			var collected []data.Data
			for {
				parameter, ok := sub.Pop()
				if !ok {
					break
				}
				if spec.HasFilter {
					if err := checkParameterType(parameter, spec.TypeFilter, index); err != nil {
						return err
					}
				}
				collected = append(collected, parameter)
			}
			if err := bind(spec.Key, data.NewList(collected...)); err != nil {
				return err
			}
			continue
		}

		parameter, ok := sub.Pop()
		if !ok {
			return cerrors.New(cerrors.KindExpectedParameter, "expected a parameter", nil)
		}
		if spec.HasFilter {
			if err := checkParameterType(parameter, spec.TypeFilter, index); err != nil {
				return err
			}
		}
		if err := bind(spec.Key, parameter); err != nil {
			return err
		}
	}

	if extra, ok := sub.Pop(); ok {
		return cerrors.New(cerrors.KindUnexpectedParameter, "unexpected parameter "+extra.String(), nil)
	}
	return nil
}

func checkParameterType(value data.Data, filter []ParameterType, index int) error {
	for _, t := range filter {
		if t.matches(value) {
			return nil
		}
	}
	return cerrors.New(cerrors.KindInvalidType, "parameter does not match the expected type", nil)
}

// Invoker is the callback the engine uses to run a bare instruction name
// while executing a function/method body; dispatch.go supplies it so this
// file never needs to import the rest of the instruction catalogue.
type Invoker func(name string, rawParameters []data.Data, stack *Stack, last *data.Data, currentPass *string, scopes Scopes) (bool, error)

// InvokeBody runs a function or method body (§4.4): consume the leading
// parameter-spec list, bind the caller's actual parameters into a fresh
// scope, then execute bare instruction names one at a time until Return/
// Terminate sets the return value or the body runs out. Shared by `call`/
// `call_list` (`invoke` runs a single instruction instead); the original's
// function and method namespaces are byte-for-byte identical.
func InvokeBody(body data.Data, parameters []data.Data, currentPass *string, root, build, context *data.Data, invoke Invoker) (data.Data, error) {
	list, ok := body.(data.List)
	if !ok {
		return nil, cerrors.Message("function/method body must be a list")
	}
	stack := NewStack(list.Items())

	var specs []ParameterSpec
	for {
		next, ok := stack.Peek(0)
		if !ok || next.Kind() != data.KindList {
			break
		}
		stack.Advance(1)
		spec, err := newParameterSpec(next)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	scope := data.NewMap()
	if err := validateCallParameters(&scope, parameters, specs); err != nil {
		return nil, err
	}
	scopeData := data.Data(scope)

	var last data.Data
	scopes := Scopes{Root: root, Scope: &scopeData, Build: build, Context: context}

	for {
		instructionName, ok := stack.Pop()
		if !ok {
			break
		}
		kw, ok := instructionName.(data.Keyword)
		if !ok {
			return nil, cerrors.Message("expected an instruction keyword")
		}
		done, err := invoke(string(kw), nil, stack, &last, currentPass, scopes)
		if err != nil {
			return nil, cerrors.Tag(string(kw), err)
		}
		if done {
			return last, nil
		}
	}

	if !stack.Closed() {
		return nil, cerrors.New(cerrors.KindUnclosedScope, "unclosed scope", nil)
	}
	return nil, nil
}
