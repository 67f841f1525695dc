package engine

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
)

// Scopes bundles the four named locations a running function/method body
// can read parameters from and resolve/modify (§4.7): root (the whole
// compiler config), scope (the function's local variables), build (the
// tree under construction) and context (pass-local state, e.g. the
// `parameters` a pass handler was invoked with). Grouped into one struct
// instead of threading four positional arguments through every stack
// method, the way the original threads `root, scope, build, context`
// through nearly every function in this package.
type Scopes struct {
	Root    *data.Data
	Scope   *data.Data
	Build   *data.Data
	Context *data.Data
}

// Stack is the data stack of §4.7: a read-only view over a function
// body's remaining instruction/parameter words, paired with the flow
// stack that `if`/`while`/`for`/`iterate` push onto. Ported from
// DataStack in original_source/src/internal/execute/stack/mod.rs.
type Stack struct {
	items []data.Data
	flow  []flow
	index int
}

// NewStack wraps items (typically the tail of a function body, after its
// parameter-spec prefix has been consumed).
func NewStack(items []data.Data) *Stack {
	return &Stack{items: items}
}

func (s *Stack) IsEmpty() bool { return len(s.items) <= s.index }

func (s *Stack) Pop() (data.Data, bool) {
	if s.IsEmpty() {
		return nil, false
	}
	item := s.items[s.index]
	s.index++
	return item, true
}

func (s *Stack) Peek(offset int) (data.Data, bool) {
	if len(s.items) <= s.index+offset {
		return nil, false
	}
	return s.items[s.index+offset], true
}

func (s *Stack) Advance(offset int) { s.index += offset }

// EnsureEmpty reports an error if any item remains: the stack must be
// fully consumed once a function body's closing `end` unwinds the flow
// stack.
func (s *Stack) EnsureEmpty() error {
	if item, ok := s.Peek(0); ok {
		return cerrors.New(cerrors.KindUnexpectedParameter, "unexpected trailing instruction data "+item.String(), nil)
	}
	return nil
}

// Closed reports whether the flow stack has fully unwound (every `if`/
// `while`/`for`/`iterate` has been matched by an `end`).
func (s *Stack) Closed() bool { return len(s.flow) == 0 }

// Parameters reads every leading parameter-list word off the stack
// (§4.7: each parameter is a list `#location [steps...]`) and resolves it
// against last/scopes, exactly as original_source's
// `DataStack::parameters` does.
func (s *Stack) Parameters(last data.Data, scopes Scopes) ([]data.Data, error) {
	var parameters []data.Data

	for {
		parameter, ok := s.Peek(0)
		if !ok || parameter.Kind() != data.KindList {
			break
		}
		s.Advance(1)

		content := parameter.(data.List).Items()
		sub := NewStack(content)

		location, ok := sub.Pop()
		if !ok {
			return nil, cerrors.New(cerrors.KindExpected, "expected a parameter location", nil)
		}

		var locationName string
		var pathTail []data.Data
		switch v := location.(type) {
		case data.Path:
			kw, ok := v.Steps[0].(data.Keyword)
			if !ok {
				return nil, cerrors.Message("parameter path must start with a keyword")
			}
			locationName = string(kw)
			pathTail = v.Steps[1:]
		case data.Keyword:
			locationName = string(v)
		default:
			return nil, cerrors.Message("not a location")
		}

		var start data.Data
		switch locationName {
		case "data":
			immediate, ok := sub.Pop()
			if !ok {
				return nil, cerrors.Message("expected an immediate value")
			}
			if err := sub.EnsureEmpty(); err != nil {
				return nil, err
			}
			parameters = append(parameters, immediate)
			continue
		case "last":
			if last == nil {
				return nil, cerrors.Message("#last has no previous return value")
			}
			start = last
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
		case "build":
			start = *scopes.Build
		case "context":
			start = *scopes.Context
		case "scope":
			start = *scopes.Scope
		case "root":
			start = *scopes.Root
		default:
			return nil, cerrors.New(cerrors.KindInvalidLocation, "invalid parameter location #"+locationName, nil)
		}

		if err := sub.EnsureEmpty(); err != nil {
			return nil, err
		}

		if len(pathTail) == 0 {
			parameters = append(parameters, start)
			continue
		}
		var selector data.Data
		if len(pathTail) == 1 {
			selector = pathTail[0]
		} else {
			p, err := data.NewPath(pathTail)
			if err != nil {
				return nil, err
			}
			selector = p
		}
		instance, ok, err := data.Index(start, selector)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cerrors.MissingEntry(selector.String())
		}
		parameters = append(parameters, instance)
	}

	return parameters, nil
}

func (s *Stack) skipParameters() {
	for {
		parameter, ok := s.Peek(0)
		if !ok || parameter.Kind() != data.KindList {
			return
		}
		s.Advance(1)
	}
}

// skipCondition scans forward over one conditional scope's body,
// tracking nesting of if/while/for/iterate against end, and — when
// stepped is true — also stops at a matching else. Ported from
// `DataStack::skip_condition`.
func (s *Stack) skipCondition(stepped bool) error {
	level := 0
	for {
		instruction, ok := s.Peek(0)
		if !ok {
			return cerrors.New(cerrors.KindUnclosedScope, "unclosed conditional scope", nil)
		}
		kw, ok := instruction.(data.Keyword)
		if !ok {
			return cerrors.Message("expected an instruction keyword")
		}
		switch string(kw) {
		case "if", "while", "for", "iterate":
			level++
		case "else":
			if stepped && level == 0 {
				return nil
			}
		case "end":
			if level == 0 {
				return nil
			}
			level--
		}
		s.Advance(1)
		s.skipParameters()
	}
}

func confirmFlowParameters(parameters []data.Data) error {
	switch len(parameters) {
	case 0:
		return nil
	case 1:
		if kw, ok := parameters[0].(data.Keyword); ok && string(kw) == "always" {
			return nil
		}
		return cerrors.Message("flow instruction may only be passed #always")
	default:
		return cerrors.New(cerrors.KindUnexpectedParameter, "unexpected parameter", nil)
	}
}

// update drives one flow frame forward (a For/While/IndexIteration loop
// re-entering its body) or, once exhausted, pops it and — for a Condition
// frame being skipped — jumps past the false branch. Ported from
// `DataStack::update`.
func (s *Stack) update(skip bool, last *data.Data, scopes Scopes) error {
	top := &s.flow[len(s.flow)-1]

	switch top.kind {
	case flowIndexIteration:
		if len(top.iterators) > 0 {
			*last = top.iterators[0]
			top.iterators = top.iterators[1:]
			s.index = top.saved
			return nil
		}
	case flowFor:
		if top.current != top.end {
			top.current += top.step
			*last = data.Integer(top.current)
			s.index = top.saved
			return nil
		}
	case flowWhile:
		*last = top.initialLast
		sub := NewStack(top.source)
		state, err := evaluateWhile(sub, last, scopes)
		if err != nil {
			return err
		}
		if state {
			s.index = top.saved
			return nil
		}
	}

	if top.kind == flowCondition && skip {
		if !top.state {
			if err := s.skipCondition(true); err != nil {
				return err
			}
		}
		s.flow = s.flow[:len(s.flow)-1]
		return nil
	}

	s.flow = s.flow[:len(s.flow)-1]
	if skip {
		return s.skipCondition(false)
	}
	return nil
}

func evaluateWhile(sub *Stack, last *data.Data, scopes Scopes) (bool, error) {
	description := instructions["while"]
	raw, err := sub.Parameters(*last, scopes)
	if err != nil {
		return false, err
	}
	extracted, err := validateParameters(raw, description.Parameters, description.Variadic)
	if err != nil {
		return false, err
	}
	state, _, err := ResolveCondition(extracted, *last)
	return state, err
}

// Iterate implements the `iterate` instruction: snapshot the container's
// {selector, instance} pairs and push an IndexIteration frame.
func (s *Stack) Iterate(parameters []data.Data, last *data.Data, scopes Scopes) error {
	pairs, err := containerPairs(parameters[0])
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		if err := s.skipCondition(false); err != nil {
			return err
		}
		s.Advance(1)
		s.skipParameters()
		return nil
	}
	s.flow = append(s.flow, flow{kind: flowIndexIteration, iterators: pairs, saved: s.index})
	return s.update(true, last, scopes)
}

// LoopedCondition implements `while`'s conditional signature: collect the
// trailing list-of-conditions operands, evaluate once, and either skip
// the loop entirely or push a While frame.
func (s *Stack) LoopedCondition(last *data.Data, scopes Scopes) error {
	var source []data.Data
	for {
		next, ok := s.Peek(0)
		if !ok || next.Kind() != data.KindList {
			break
		}
		s.Advance(1)
		source = append(source, next)
	}

	sub := NewStack(source)
	state, err := evaluateWhile(sub, last, scopes)
	if err != nil {
		return err
	}
	if !state {
		if err := s.skipCondition(false); err != nil {
			return err
		}
		s.Advance(1)
		s.skipParameters()
		return nil
	}

	s.flow = append(s.flow, flow{kind: flowWhile, source: source, initialLast: *last, saved: s.index})
	return s.update(true, last, scopes)
}

// Counted implements `for`'s push side: compute the first iteration
// value from (start, end, step) and push a For frame.
func (s *Stack) Counted(start, end, step int64, last *data.Data, scopes Scopes) error {
	if step < 0 {
		return cerrors.Message("step may not be negative")
	}
	if start < end {
		s.flow = append(s.flow, flow{kind: flowFor, current: start - step, end: end, step: step, saved: s.index})
	} else {
		s.flow = append(s.flow, flow{kind: flowFor, current: start + step, end: end, step: -step, saved: s.index})
	}
	return s.update(true, last, scopes)
}

// Condition implements `if`: evaluate the condition operands once and
// push a Condition frame.
func (s *Stack) Condition(parameters []data.Data, last *data.Data, scopes Scopes) error {
	state, length, err := ResolveCondition(parameters, *last)
	if err != nil {
		return err
	}
	if length != len(parameters) {
		return cerrors.New(cerrors.KindUnexpectedParameter, "unexpected condition operand", nil)
	}
	s.flow = append(s.flow, flow{kind: flowCondition, state: state})
	return s.update(true, last, scopes)
}

// DependentCondition implements `else`: flip the nearest Condition frame
// (optionally gated by its own condition operands) when the prior branch
// did not run.
func (s *Stack) DependentCondition(last *data.Data, scopes Scopes) error {
	if len(s.flow) == 0 {
		return cerrors.New(cerrors.KindUnexpectedCompilerFunc, "unexpected else", nil)
	}
	top := s.flow[len(s.flow)-1]
	if top.kind != flowCondition {
		return cerrors.New(cerrors.KindUnexpectedCompilerFunc, "unexpected else", nil)
	}
	if top.state {
		s.skipParameters()
		return s.skipCondition(true)
	}

	description := instructions["else"]
	raw, err := s.Parameters(*last, scopes)
	if err != nil {
		return err
	}
	parameters, err := validateParameters(raw, description.Parameters, description.Variadic)
	if err != nil {
		return err
	}

	state := true
	if len(parameters) > 0 {
		state, _, err = ResolveCondition(parameters, *last)
		if err != nil {
			return err
		}
	}
	s.flow[len(s.flow)-1].state = state
	return s.update(true, last, scopes)
}

// BreakFlow implements `break`: unwind Condition frames until the
// nearest loop frame, then discard it too.
func (s *Stack) BreakFlow(parameters []data.Data) error {
	if err := confirmFlowParameters(parameters); err != nil {
		return err
	}
	for {
		if len(s.flow) == 0 {
			return cerrors.New(cerrors.KindUnexpectedCompilerFunc, "unexpected break", nil)
		}
		top := s.flow[len(s.flow)-1]
		s.flow = s.flow[:len(s.flow)-1]
		if top.kind == flowCondition {
			if err := s.skipCondition(false); err != nil {
				return err
			}
			continue
		}
		break
	}
	return s.skipCondition(false)
}

// ContinueFlow implements `continue`: unwind Condition frames until the
// nearest loop frame, then re-enter it.
func (s *Stack) ContinueFlow(parameters []data.Data, last *data.Data, scopes Scopes) error {
	if err := confirmFlowParameters(parameters); err != nil {
		return err
	}
	for {
		if len(s.flow) == 0 {
			return cerrors.New(cerrors.KindUnexpectedCompilerFunc, "unexpected continue", nil)
		}
		top := s.flow[len(s.flow)-1]
		if top.kind != flowCondition {
			break
		}
		s.flow = s.flow[:len(s.flow)-1]
	}
	return s.update(true, last, scopes)
}

// End implements `end`: close the innermost flow frame, looping back or
// unwinding it for good.
func (s *Stack) End(parameters []data.Data, last *data.Data, scopes Scopes) error {
	if err := confirmFlowParameters(parameters); err != nil {
		return err
	}
	if len(s.flow) == 0 {
		return cerrors.New(cerrors.KindUnexpectedCompilerFunc, "unexpected end", nil)
	}
	return s.update(false, last, scopes)
}

func containerPairs(container data.Data) ([]data.Data, error) {
	switch v := container.(type) {
	case data.Map:
		var pairs []data.Data
		for _, entry := range v.Entries() {
			pairs = append(pairs, iterationPair(entry.Key, entry.Value))
		}
		return pairs, nil
	case data.List:
		var pairs []data.Data
		for i, item := range v.Items() {
			pairs = append(pairs, iterationPair(data.Integer(i+1), item))
		}
		return pairs, nil
	default:
		return nil, cerrors.Message("value is not iterable")
	}
}
