package engine

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/token"
)

// This package keeps its own Position (de)serialization rather than
// importing internal/builder's: builder is a one-shot pipeline stage,
// while fuze/range run inside the instruction engine on arbitrary,
// already-running function bodies. Depending on builder here would chain
// the execution layer to the parse/build pipeline for two small helper
// functions; the §6.5 format is three lines to reproduce.

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

func parsePosition(d data.Data) (token.Position, error) {
	m, ok := d.(data.Map)
	if !ok {
		return token.Position{}, cerrors.Message("position must be a map")
	}
	field := func(name string) (data.Data, error) {
		value, found := m.Index(data.Keyword(name))
		if !found {
			return nil, cerrors.MissingEntry(name)
		}
		return value, nil
	}

	file, err := field("file")
	if err != nil {
		return token.Position{}, err
	}
	var fileText string
	if s, ok := file.(data.String); ok {
		fileText = string(s)
	}

	source, err := field("source")
	if err != nil {
		return token.Position{}, err
	}
	sourceText, ok := source.(data.String)
	if !ok {
		return token.Position{}, cerrors.Message("position source must be a string")
	}

	line, err := field("line")
	if err != nil {
		return token.Position{}, err
	}
	lineValue, ok := line.(data.Integer)
	if !ok {
		return token.Position{}, cerrors.Message("position line must be an integer")
	}

	character, err := field("character")
	if err != nil {
		return token.Position{}, err
	}
	characterValue, ok := character.(data.Integer)
	if !ok {
		return token.Position{}, cerrors.Message("position character must be an integer")
	}

	length, err := field("length")
	if err != nil {
		return token.Position{}, err
	}
	lengthValue, ok := length.(data.Integer)
	if !ok {
		return token.Position{}, cerrors.Message("position length must be an integer")
	}

	return token.Position{
		File:      fileText,
		Source:    string(sourceText),
		Line:      int(lineValue),
		Character: int(characterValue),
		Length:    int(lengthValue),
	}, nil
}

// parsePositions reads one operand of `fuze`/`range`: either a single
// serialized position or a list of them (a list/map piece's `position`
// sibling, fed straight back in).
func parsePositions(d data.Data) ([]token.Position, error) {
	if list, ok := d.(data.List); ok {
		items := list.Items()
		result := make([]token.Position, 0, len(items))
		for _, item := range items {
			p, err := parsePosition(item)
			if err != nil {
				return nil, err
			}
			result = append(result, p)
		}
		return result, nil
	}
	p, err := parsePosition(d)
	if err != nil {
		return nil, err
	}
	return []token.Position{p}, nil
}

// reducePositions implements the `reduce_positions!` macro: parse every
// operand's positions, concatenate, then fold with fuze or range.
func reducePositions(parameters []data.Data, fold func([]token.Position) []token.Position) (data.Data, error) {
	var all []token.Position
	for _, parameter := range parameters {
		ps, err := parsePositions(parameter)
		if err != nil {
			return nil, err
		}
		all = append(all, ps...)
	}
	return serializePositions(fold(all)), nil
}
