package builder

import (
	"strings"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/template"
	"github.com/vE5li/igt5/internal/token"
)

// Builder walks a Decision stream and the raw token stream (comments
// included — Decisions carry no stream indices of their own, so the
// builder re-discovers its position in each stream independently,
// skipping comment tokens inline the way the original parser's own
// `find!`/collect_comment helpers do) and reconstructs the Data tree the
// decisions describe.
//
// tokens must be the UNFILTERED stream (with Comment tokens still
// present); internal/parser works against the filtered stream, but the
// builder needs the comments back to attach them to Comment pieces and to
// skip past them before every terminal token.
type Builder struct {
	tokens      []token.Token
	decisions   []template.Decision
	templates   *template.Table
	decisionIdx int
	tokenIdx    int
}

// New builds a Builder ready to reconstruct the tree described by
// decisions (the output of parser.Parser.Parse) against tokens.
func New(tokens []token.Token, decisions []template.Decision, templates *template.Table) *Builder {
	return &Builder{tokens: tokens, decisions: decisions, templates: templates}
}

func (b *Builder) nextDecision() template.Decision {
	return b.decisions[b.decisionIdx]
}

// Build constructs one template instance: a map with a `position` submap,
// optionally a `pass` entry (when addPasses and the template declares
// passes), and one entry per keyed piece in the flavor the decision stream
// selected. It mirrors TemplateBuilder::build.
func (b *Builder) Build(addPasses bool) (data.Map, []token.Position, error) {
	result := data.NewMap()
	result, err := result.Insert(data.Keyword("position"), data.NewMap())
	if err != nil {
		return data.Map{}, nil, err
	}

	if b.nextDecision().Kind == template.DecisionFilter {
		b.decisionIdx++
	}

	templateDecision := b.nextDecision()
	if templateDecision.Kind != template.DecisionTemplate {
		panic("builder: decision stream expected a template decision")
	}
	tmpl := b.templates.Get(templateDecision.Template)

	flavorDecision := b.decisions[b.decisionIdx+1]
	if flavorDecision.Kind != template.DecisionFlavor {
		panic("builder: decision stream expected a flavor decision")
	}
	b.decisionIdx += 2

	if addPasses && tmpl.Passes != nil {
		result, err = result.Insert(data.Keyword("pass"), tmpl.Passes)
		if err != nil {
			return data.Map{}, nil, err
		}
	}

	var templatePositions []token.Position
	flavor := tmpl.Flavors[flavorDecision.Index]
	for pi := range flavor.Pieces {
		piece := &flavor.Pieces[pi]
		key, value, positions, err := b.buildPiece(piece)
		if err != nil {
			return data.Map{}, nil, err
		}

		switch {
		case key != nil:
			result, err = result.Insert(key, value)
			if err != nil {
				return data.Map{}, nil, err
			}
			positionsEntry, _ := result.Index(data.Keyword("position"))
			updatedPositions, err := positionsEntry.(data.Map).Insert(key, serializePositions(positions))
			if err != nil {
				return data.Map{}, nil, err
			}
			result, err = result.Overwrite(data.Keyword("position"), updatedPositions)
			if err != nil {
				return data.Map{}, nil, err
			}
		case piece.Kind == template.PieceMerge:
			merged, ok := value.(data.Map)
			if !ok {
				return data.Map{}, nil, cerrors.Message("merge piece did not produce a map")
			}
			result, err = data.MergeMaps(result, merged)
			if err != nil {
				return data.Map{}, nil, err
			}
		}

		templatePositions = append(templatePositions, positions...)
	}

	return result, token.Range(templatePositions), nil
}

func (b *Builder) buildPiece(piece *template.Piece) (data.Data, data.Data, []token.Position, error) {
	switch piece.Kind {
	case template.PieceMerge:
		value, positions, err := b.Build(false)
		return nil, value, positions, err
	case template.PieceTemplate:
		value, positions, err := b.Build(true)
		return piece.Key, value, positions, err
	case template.PieceComment:
		value, positions := b.collectComment()
		return piece.Key, value, positions, nil
	case template.PieceData:
		return piece.Key, piece.Value, nil, nil
	case template.PieceList, template.PieceConfirmed:
		value, positions, err := b.buildList(piece.Part, piece.Separator)
		return piece.Key, value, positions, err
	case template.PieceKeyword:
		value, positions := b.findToken(token.Keyword, identifierPayload)
		return piece.Key, value, positions, nil
	case template.PieceOperator:
		value, positions := b.findToken(token.Operator, identifierPayload)
		return piece.Key, value, positions, nil
	case template.PieceIdentifier:
		value, positions := b.findToken(token.Identifier, identifierPayload)
		return piece.Key, value, positions, nil
	case template.PieceTypeIdentifier:
		value, positions := b.findToken(token.TypeIdentifier, identifierPayload)
		return piece.Key, value, positions, nil
	case template.PieceString:
		value, positions := b.findToken(token.String, stringPayload)
		return piece.Key, value, positions, nil
	case template.PieceCharacter:
		value, positions := b.findToken(token.Character, characterPayload)
		return piece.Key, value, positions, nil
	case template.PieceInteger:
		value, positions := b.findToken(token.Integer, integerPayload)
		return piece.Key, value, positions, nil
	case template.PieceFloat:
		value, positions := b.findToken(token.Float, floatPayload)
		return piece.Key, value, positions, nil
	}
	return nil, nil, nil, cerrors.Message("builder: unknown piece kind")
}

func identifierPayload(t token.Token) data.Data { return data.Identifier(t.Text) }
func stringPayload(t token.Token) data.Data     { return data.String(t.Text) }
func characterPayload(t token.Token) data.Data  { return data.Character(t.Character) }
func integerPayload(t token.Token) data.Data    { return data.Integer(t.Integer) }
func floatPayload(t token.Token) data.Data      { return data.Float(t.Float) }

// findToken consumes an optional leading Filter decision, skips past any
// comment tokens, and consumes the next token — which must be of kind —
// converting its payload to Data via construct. Mismatches are a builder
// invariant violation: a decision stream produced by a successful Parse
// over this exact token stream can never disagree with it.
func (b *Builder) findToken(kind token.Kind, construct func(token.Token) data.Data) (data.Data, []token.Position) {
	if b.nextDecision().Kind == template.DecisionFilter {
		b.decisionIdx++
	}
	for b.tokens[b.tokenIdx].Kind == token.Comment {
		b.tokenIdx++
	}
	t := b.tokens[b.tokenIdx]
	if t.Kind != kind {
		panic("builder: token stream does not match decision stream")
	}
	b.tokenIdx++
	return construct(t), t.Positions
}

func (b *Builder) collectComment() (data.Data, []token.Position) {
	var sb strings.Builder
	var positions []token.Position
	for b.tokens[b.tokenIdx].Kind == token.Comment {
		positions = append(positions, b.tokens[b.tokenIdx].Positions...)
		sb.WriteString(b.tokens[b.tokenIdx].Text)
		b.tokenIdx++
	}
	return data.String(sb.String()), token.Range(positions)
}

// buildList ports TemplateBuilder::build_list: consume the leading List
// decision, then loop building part (and, on Next, separator) until an
// End decision closes the list.
func (b *Builder) buildList(part, separator *template.Piece) (data.Data, []token.Position, error) {
	if b.nextDecision().Kind != template.DecisionList {
		panic("builder: decision stream expected a list decision")
	}
	b.decisionIdx++

	var items []data.Data
	var listPositions []token.Position

	for {
		_, partValue, partPositions, err := b.buildPiece(part)
		if err != nil {
			return nil, nil, err
		}

		itemMap := data.NewMap()
		positionsMap := data.NewMap()
		itemMap, _ = itemMap.Insert(data.Identifier("part"), partValue)
		positionsMap, _ = positionsMap.Insert(data.Identifier("part"), serializePositions(partPositions))
		listPositions = append(listPositions, partPositions...)

		if b.nextDecision().Kind == template.DecisionEnd {
			b.decisionIdx++
			itemMap, _ = itemMap.Insert(data.Identifier("position"), positionsMap)
			items = append(items, itemMap)
			break
		}

		if b.nextDecision().Kind == template.DecisionNext {
			b.decisionIdx++
			if separator != nil {
				_, sepValue, sepPositions, err := b.buildPiece(separator)
				if err != nil {
					return nil, nil, err
				}
				itemMap, _ = itemMap.Insert(data.Identifier("separator"), sepValue)
				positionsMap, _ = positionsMap.Insert(data.Identifier("separator"), serializePositions(sepPositions))
				listPositions = append(listPositions, sepPositions...)
			}
			itemMap, _ = itemMap.Insert(data.Identifier("position"), positionsMap)
			items = append(items, itemMap)
		}
	}

	return data.NewList(items...), token.Range(listPositions), nil
}
