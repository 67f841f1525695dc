// Package pipeline drives the pass pipeline of §4.8: a top-level
// compiler.pipeline list of pass names, each applied to the built tree by
// recursing through it and invoking handler functions registered under a
// map's own pass.<name> entry.
package pipeline

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/engine"
)

// Pass implements Data::pass (§4.8): on a map carrying a pass.<name>
// entry, run every listed handler function in order, each call's return
// value feeding the next as the map's new value, and stop — a handler
// that wants to keep transforming the map's children calls pass again
// itself (that's what new_pass is for). A map with no entry for the
// current pass recurses structurally into its values instead. A list
// recurses into its items. Anything else is returned unchanged.
//
// invoke drives handler bodies exactly the way `call`/`invoke` do
// (engine.InvokeBody's Invoker), so a handler can itself use the full
// instruction set, including nested pass/new_pass calls.
func Pass(instance data.Data, currentPass *string, root, build, context *data.Data, invoke engine.Invoker) (data.Data, error) {
	switch value := instance.(type) {

	case data.Map:
		if currentPass == nil {
			return nil, cerrors.Message("not currently in a pass")
		}

		passEntry, hasPass := value.Index(data.Keyword("pass"))
		if hasPass {
			passMap, ok := passEntry.(data.Map)
			if !ok {
				return nil, cerrors.Message("pass must be a map")
			}
			if handlers, ok := passMap.Index(data.Identifier(*currentPass)); ok {
				return runHandlers(value, passMap, handlers, currentPass, root, build, context, invoke)
			}
		}

		newMap := data.NewMap()
		for _, entry := range value.Entries() {
			transformed, err := Pass(entry.Value, currentPass, root, build, context, invoke)
			if err != nil {
				return nil, err
			}
			inserted, err := newMap.Insert(entry.Key, transformed)
			if err != nil {
				return nil, err
			}
			newMap = inserted
		}
		return newMap, nil

	case data.List:
		items := value.Items()
		newItems := make([]data.Data, len(items))
		for i, item := range items {
			transformed, err := Pass(item, currentPass, root, build, context, invoke)
			if err != nil {
				return nil, err
			}
			newItems[i] = transformed
		}
		return data.NewList(newItems...), nil

	default:
		return instance, nil
	}
}

// runHandlers runs every function named in a map's pass.<name> handler
// list against that map, chaining return values, after first clearing
// the map's own pass.<name> entry to an empty list so a handler that
// re-enters pass on the same subtree doesn't immediately re-trigger
// itself.
func runHandlers(self data.Map, passMap data.Map, handlers data.Data, currentPass *string, root, build, context *data.Data, invoke engine.Invoker) (data.Data, error) {
	handlerList, ok := handlers.(data.List)
	if !ok {
		return nil, cerrors.Message("pass handlers must be a list")
	}

	clearedPassMap, err := passMap.Overwrite(data.Identifier(*currentPass), data.NewList())
	if err != nil {
		return nil, err
	}
	current := data.Data(self)
	if overwritten, err := self.Overwrite(data.Keyword("pass"), clearedPassMap); err == nil {
		current = overwritten
	}

	functionMap, ok, err := data.Index(*root, data.Keyword("function"))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, cerrors.MissingEntry("function")
	}

	baseParameters, err := currentContextParameters(*context)
	if err != nil {
		return nil, err
	}

	for _, handlerPath := range handlerList.Items() {
		handlerBody, found, err := data.Index(functionMap, handlerPath)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, cerrors.MissingEntry(handlerPath.String())
		}

		parameters := append([]data.Data{current}, baseParameters...)
		result, err := engine.InvokeBody(handlerBody, parameters, currentPass, root, build, context, invoke)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, cerrors.Message("pass handler did not return a value")
		}
		current = result
	}

	return current, nil
}

func currentContextParameters(context data.Data) ([]data.Data, error) {
	m, ok := context.(data.Map)
	if !ok {
		return nil, nil
	}
	value, found := m.Index(data.Keyword("parameters"))
	if !found {
		return nil, nil
	}
	list, ok := value.(data.List)
	if !ok {
		return nil, cerrors.Message("context parameters must be a list")
	}
	return list.Items(), nil
}

// Run implements the top-level driver: iterate compiler.pipeline in
// declaration order, re-passing top through each named pass and
// returning the final, fully-transformed tree.
func Run(compiler, top data.Data, build, context *data.Data, invoke engine.Invoker) (data.Data, error) {
	pipelineEntry, found, err := data.Index(compiler, data.Keyword("pipeline"))
	if err != nil {
		return nil, err
	}
	if !found {
		return top, nil
	}
	pipelineList, ok := pipelineEntry.(data.List)
	if !ok {
		return nil, cerrors.Message("pipeline must be a list")
	}

	current := top
	root := compiler
	for _, entry := range pipelineList.Items() {
		passIdentifier, ok := entry.(data.Identifier)
		if !ok {
			return nil, cerrors.Message("pass must be an identifier")
		}
		passName := string(passIdentifier)
		transformed, err := Pass(current, &passName, &root, build, context, invoke)
		if err != nil {
			return nil, cerrors.Tag(passName, err)
		}
		current = transformed
	}
	return current, nil
}
