package pipeline

import (
	"testing"

	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/engine"
)

func mustInsert(t *testing.T, m data.Map, key string, value data.Data) data.Map {
	t.Helper()
	out, err := m.Insert(data.Keyword(key), value)
	if err != nil {
		t.Fatalf("insert %s: %v", key, err)
	}
	return out
}

// markExpandedBody is a function body equivalent to `value.insert(#expanded,
// $true)`: take the passed-in map (its sole formal parameter) and return it
// with `expanded = true` set.
func markExpandedBody() data.Data {
	spec := data.NewList(data.Keyword("single"), data.Keyword("value"))
	valuePath, _ := data.NewPath([]data.Data{data.Keyword("scope"), data.Keyword("value")})
	return data.NewList(
		spec,
		data.Keyword("insert"),
		data.NewList(valuePath),
		data.NewList(data.Keyword("data"), data.Keyword("expanded")),
		data.NewList(data.Keyword("data"), data.Boolean(true)),
		data.Keyword("return"),
		data.NewList(data.Keyword("last")),
	)
}

// TestPassRunsRegisteredHandler exercises spec §4.8's S6 example: a map
// carrying pass.expand = [function.expand_expr] gets expand_expr's return
// value as its new self when the `expand` pass runs over it.
func TestPassRunsRegisteredHandler(t *testing.T) {
	functionMap := mustInsert(t, data.NewMap(), "expand_expr", markExpandedBody())
	root := data.Data(mustInsert(t, data.NewMap(), "function", functionMap))

	passMap, err := data.NewMap().Insert(data.Identifier("expand"), data.NewList(data.Keyword("expand_expr")))
	if err != nil {
		t.Fatalf("insert expand: %v", err)
	}
	expr := mustInsert(t, data.NewMap(), "pass", passMap)
	expr = mustInsert(t, expr, "kind", data.Keyword("call"))

	build := data.Data(data.NewMap())
	context := data.Data(data.NewMap())
	e := engine.New(nil)

	passName := "expand"
	result, err := Pass(expr, &passName, &root, &build, &context, e.Instruction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resultMap, ok := result.(data.Map)
	if !ok {
		t.Fatalf("expected a map, got %T", result)
	}
	expanded, found := resultMap.Index(data.Keyword("expanded"))
	if !found {
		t.Fatalf("expected an expanded key to be set")
	}
	if expanded.(data.Boolean) != true {
		t.Fatalf("expected expanded to be true, got %v", expanded)
	}

	passEntry, found := resultMap.Index(data.Keyword("pass"))
	if !found {
		t.Fatalf("expected the pass submap to survive")
	}
	clearedHandlers, found := passEntry.(data.Map).Index(data.Identifier("expand"))
	if !found {
		t.Fatalf("expected the expand entry to still exist, emptied")
	}
	if clearedHandlers.(data.List).Len() != 0 {
		t.Fatalf("expected the handler list to be cleared after running")
	}
}

// TestPassRecursesWithoutHandler checks that a map with no entry for the
// current pass is left structurally unchanged but still visited
// recursively (children of children included).
func TestPassRecursesWithoutHandler(t *testing.T) {
	inner := mustInsert(t, data.NewMap(), "value", data.Integer(1))
	outer := mustInsert(t, data.NewMap(), "inner", inner)

	root := data.Data(data.NewMap())
	build := data.Data(data.NewMap())
	context := data.Data(data.NewMap())
	e := engine.New(nil)

	passName := "anything"
	result, err := Pass(outer, &passName, &root, &build, &context, e.Instruction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Equal(outer) {
		t.Fatalf("expected an untouched map back, got %v", result)
	}
}

// TestRunIteratesPipelineInOrder checks the top-level driver re-passes the
// tree through every pass named in compiler.pipeline, in declaration order.
func TestRunIteratesPipelineInOrder(t *testing.T) {
	functionMap := mustInsert(t, data.NewMap(), "expand_expr", markExpandedBody())
	compiler := mustInsert(t, data.NewMap(), "function", functionMap)
	compiler = mustInsert(t, compiler, "pipeline", data.NewList(data.Identifier("expand")))

	passMap, err := data.NewMap().Insert(data.Identifier("expand"), data.NewList(data.Keyword("expand_expr")))
	if err != nil {
		t.Fatalf("insert expand: %v", err)
	}
	top := mustInsert(t, data.NewMap(), "pass", passMap)

	build := data.Data(data.NewMap())
	context := data.Data(data.NewMap())
	e := engine.New(nil)

	result, err := Run(compiler, top, &build, &context, e.Instruction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resultMap, ok := result.(data.Map)
	if !ok {
		t.Fatalf("expected a map, got %T", result)
	}
	if _, found := resultMap.Index(data.Keyword("expanded")); !found {
		t.Fatalf("expected the pipeline to have run the expand pass")
	}
}
