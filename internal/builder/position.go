// Package builder implements the §4.6 template builder: it walks a
// Decision stream (from internal/parser) alongside the raw token stream and
// reconstructs the Data tree the decisions describe, attaching a sibling
// `position` map of serialized Positions to every emitted container.
package builder

import (
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/token"
)

// serializePosition implements §6.5: a Position becomes a map with keys
// file (string, or the keyword `none` when the position has no file),
// source, line, character, length.
func serializePosition(p token.Position) data.Map {
	m := data.NewMap()
	var file data.Data
	if p.File == "" {
		file = data.Keyword("none")
	} else {
		file = data.String(p.File)
	}
	m, _ = m.Insert(data.Keyword("file"), file)
	m, _ = m.Insert(data.Keyword("source"), data.String(p.Source))
	m, _ = m.Insert(data.Keyword("line"), data.Integer(p.Line))
	m, _ = m.Insert(data.Keyword("character"), data.Integer(p.Character))
	m, _ = m.Insert(data.Keyword("length"), data.Integer(p.Length))
	return m
}

func serializePositions(ps []token.Position) data.List {
	items := make([]data.Data, len(ps))
	for i, p := range ps {
		items[i] = serializePosition(p)
	}
	return data.NewList(items...)
}
