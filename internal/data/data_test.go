package data

import "testing"

func TestMapInsertIndexLen(t *testing.T) {
	m := NewMap()
	m, err := m.Insert(Keyword("a"), Integer(1))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
	v, ok := m.Index(Keyword("a"))
	if !ok || !v.Equal(Integer(1)) {
		t.Fatalf("index = %v, %v; want 1, true", v, ok)
	}
}

func TestMapInsertDuplicateFails(t *testing.T) {
	m, _ := NewMap().Insert(Keyword("a"), Integer(1))
	if _, err := m.Insert(Keyword("a"), Integer(2)); err == nil {
		t.Fatalf("expected error inserting duplicate key")
	}
}

func TestMapOverwriteReplaces(t *testing.T) {
	m, _ := NewMap().Insert(Keyword("a"), Integer(1))
	m, err := m.Overwrite(Keyword("a"), Integer(2))
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _ := m.Index(Keyword("a"))
	if !v.Equal(Integer(2)) {
		t.Fatalf("value = %v, want 2", v)
	}
}

func TestMapRejectsInvalidKeys(t *testing.T) {
	m := NewMap()
	for _, bad := range []Data{NewMap(), NewList(), Float(1.5)} {
		if _, err := m.Insert(bad, Integer(1)); err == nil {
			t.Fatalf("expected error inserting %v as key", bad)
		}
	}
}

func TestMapOrderedByTotalOrder(t *testing.T) {
	m := NewMap()
	m, _ = m.Insert(Integer(5), Boolean(true))
	m, _ = m.Insert(Keyword("z"), Boolean(true))
	m, _ = m.Insert(Identifier("a"), Boolean(true))
	keys := m.Keys().Items()
	// Identifier > Keyword > Integer by group precedence (Path highest,
	// Integer lowest among these three).
	if keys[0].Kind() != KindIdentifier || keys[1].Kind() != KindKeyword || keys[2].Kind() != KindInteger {
		t.Fatalf("unexpected key order: %v", keys)
	}
}

func TestListIndexOneBasedWithWraparound(t *testing.T) {
	l := NewList(Integer(10), Integer(20), Integer(30))

	v, ok, err := l.Index(1)
	if err != nil || !ok || !v.Equal(Integer(10)) {
		t.Fatalf("index(1) = %v, %v, %v", v, ok, err)
	}

	v, ok, err = l.Index(-1)
	if err != nil || !ok || !v.Equal(Integer(30)) {
		t.Fatalf("index(-1) = %v, %v, %v", v, ok, err)
	}

	if _, _, err := l.Index(0); err == nil {
		t.Fatalf("expected error for index 0")
	}

	_, ok, err = l.Index(100)
	if err != nil || ok {
		t.Fatalf("out-of-range index should be missing, not error: ok=%v err=%v", ok, err)
	}
}

func TestFlipIsInvolution(t *testing.T) {
	l := NewList(Integer(1), Integer(2), Integer(3))
	flipped, err := Flip(l)
	if err != nil {
		t.Fatalf("flip: %v", err)
	}
	twice, err := Flip(flipped)
	if err != nil {
		t.Fatalf("flip: %v", err)
	}
	if !twice.Equal(l) {
		t.Fatalf("flip(flip(x)) = %v, want %v", twice, l)
	}
}

func TestMergeMapsRecursive(t *testing.T) {
	inner1, _ := NewMap().Insert(Keyword("x"), Integer(1))
	outer1, _ := NewMap().Insert(Keyword("child"), inner1)

	inner2, _ := NewMap().Insert(Keyword("y"), Integer(2))
	outer2, _ := NewMap().Insert(Keyword("child"), inner2)

	merged, err := Merge(outer1, outer2)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	child, _ := merged.(Map).Index(Keyword("child"))
	childMap := child.(Map)
	if childMap.Len() != 2 {
		t.Fatalf("merged child len = %d, want 2", childMap.Len())
	}
}

func TestMergeListsConcatenates(t *testing.T) {
	a := NewList(Integer(1), Integer(2))
	b := NewList(Integer(3))
	merged, err := Merge(a, b)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.(List).Len() != 3 {
		t.Fatalf("merged len = %d, want 3", merged.(List).Len())
	}
}

func TestMergeEqualScalarsPass(t *testing.T) {
	merged, err := Merge(Integer(5), Integer(5))
	if err != nil || !merged.Equal(Integer(5)) {
		t.Fatalf("merge equal scalars: %v, %v", merged, err)
	}
}

func TestMergeUnequalScalarsFail(t *testing.T) {
	if _, err := Merge(Integer(5), Integer(6)); err == nil {
		t.Fatalf("expected merge failure for unequal scalars")
	}
}

func TestIndexWithPath(t *testing.T) {
	inner, _ := NewMap().Insert(Keyword("b"), Integer(42))
	outer, _ := NewMap().Insert(Keyword("a"), inner)

	path, err := NewPath([]Data{Keyword("a"), Keyword("b")})
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	v, ok, err := Index(outer, path)
	if err != nil || !ok || !v.Equal(Integer(42)) {
		t.Fatalf("index by path = %v, %v, %v", v, ok, err)
	}

	missingPath, _ := NewPath([]Data{Keyword("a"), Keyword("c")})
	_, ok, err = Index(outer, missingPath)
	if err != nil || ok {
		t.Fatalf("missing path should report not-found: ok=%v err=%v", ok, err)
	}

	missingRoot, _ := NewPath([]Data{Keyword("x"), Keyword("y")})
	_, ok, err = Index(outer, missingRoot)
	if err != nil || ok {
		t.Fatalf("missing root path should report not-found: ok=%v err=%v", ok, err)
	}
}

func TestPathRequiresMinimumTwoSteps(t *testing.T) {
	if _, err := NewPath([]Data{Keyword("a")}); err == nil {
		t.Fatalf("expected error for single-step path")
	}
}

func TestStringIndexYieldsCharacter(t *testing.T) {
	v, ok, err := Index(String("hello"), Integer(1))
	if err != nil || !ok || !v.Equal(Character('h')) {
		t.Fatalf("index = %v, %v, %v", v, ok, err)
	}
}

func TestContainsSubstringWise(t *testing.T) {
	ok, err := ContainsOp(String("hello world"), String("wor"))
	if err != nil || !ok {
		t.Fatalf("contains = %v, %v", ok, err)
	}
}

func TestInsertLiteralSplicesAtPosition(t *testing.T) {
	result, err := InsertAt(String("helloworld"), Integer(6), String(" "))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if result.(String) != "hello world" {
		t.Fatalf("got %q", result)
	}
}
