package parser

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/template"
	"github.com/vE5li/igt5/internal/token"
	"github.com/vE5li/igt5/internal/tokenizer"
)

// leading carries the currently-matched template and its candidate paths
// while a flavor is being matched against a leading template rather than
// the raw token stream (§4.5's "matched from the left" continuation).
type leading struct {
	template string
	paths    []Path
}

// Parser enumerates every way the token stream can derive "top", per §4.5.
type Parser struct {
	tokens       []token.Token
	templates    *template.Table
	tokenPool    map[string]map[string][]string
	templatePool map[string]map[string][]string
}

// New builds the per-template dependency pools once templates has already
// been through template.Analyze. tokens must have comments filtered out
// (tokenizer.FilterComments) before being passed in.
func New(tokens []token.Token, templates *template.Table, registry *tokenizer.Registry) *Parser {
	baseTokenPool := createBaseTokenPool(registry)
	baseTemplatePool := createBaseTemplatePool(templates)

	tokenPool := map[string]map[string][]string{}
	templatePool := map[string]map[string][]string{}

	for _, name := range templates.Names() {
		tp := cloneDependencies(baseTokenPool)
		tmp := cloneDependencies(baseTemplatePool)
		collectPools(name, templates.Get(name), tp, tmp, templates)
		tokenPool[name] = tp
		templatePool[name] = tmp
	}

	return &Parser{tokens: tokens, templates: templates, tokenPool: tokenPool, templatePool: templatePool}
}

// Parse runs the full path enumeration from the "top" template and reduces
// to the single decision stream that consumes every token, or reports the
// §7 parse failure.
func (p *Parser) Parse() ([]template.Decision, error) {
	processed := make([]map[string]MatchResult, len(p.tokens)+1)
	for i := range processed {
		processed[i] = map[string]MatchResult{}
	}
	result := p.pathsFromToken("top", 0, processed)
	return p.decisionStream(result)
}

func (p *Parser) decisionStream(result MatchResult) ([]template.Decision, error) {
	if result.Matched {
		for _, path := range result.Paths {
			if path.Width == len(p.tokens) {
				return path.Decisions, nil
			}
		}
	}
	return nil, cerrors.Message("failed to parse main")
}

func (p *Parser) pathsFromToken(destination string, index int, processed []map[string]MatchResult) MatchResult {
	if r, ok := processed[index][destination]; ok {
		return r
	}

	var foundPaths []Path
	if index < len(p.tokens) {
		relevantPool := p.tokenPool[destination][tokenLocation(p.tokens[index])]
		p.find(destination, relevantPool, index, nil, &foundPaths, processed)
	} else {
		p.createWidthless(destination, index).update(&foundPaths)
	}

	result := matchResultFrom(foundPaths)
	processed[index][destination] = result
	return result
}

func (p *Parser) pathsFromTemplate(destination string, lead leading, processed []map[string]MatchResult) MatchResult {
	var foundPaths []Path
	relevantPool := p.templatePool[destination][lead.template]
	p.find(destination, relevantPool, lead.paths[0].Index, &lead, &foundPaths, processed)
	return matchResultFrom(foundPaths)
}

// find enumerates every flavor of every template in pool that matches at
// index (or continuing from lead), mirroring Parser::find.
func (p *Parser) find(destination string, pool []string, index int, lead *leading, foundPaths *[]Path, processed []map[string]MatchResult) {
	for _, location := range pool {
		tmpl := p.templates.Get(location)
		var locationPaths []Path

	flavorLoop:
		for flavorIndex := range tmpl.Flavors {
			flavor := &tmpl.Flavors[flavorIndex]
			activePaths := []Path{newPath(nil, index, 0, false)}

			for pi := range flavor.Pieces {
				piece := &flavor.Pieces[pi]
				if piece.Kind == template.PieceData || piece.Kind == template.PieceComment {
					continue
				}

				var nextActive []Path
				for _, path := range activePaths {
					result := p.matchPiece(piece, path, lead, processed)
					if result.Matched {
						nextActive = append(nextActive, derive(path, result.Paths)...)
					}
				}
				activePaths = nextActive
				if len(activePaths) == 0 {
					continue flavorLoop
				}
			}

			confirmedPaths := activePaths[:0:0]
			for _, path := range activePaths {
				if path.Confirmed {
					confirmedPaths = append(confirmedPaths, path)
				}
			}
			if len(confirmedPaths) == 0 {
				continue
			}

			injectDecision(confirmedPaths, template.FlavorDecision(flavorIndex))
			injectDecision(confirmedPaths, template.TemplateDecision(location))
			locationPaths = append(locationPaths, confirmedPaths...)
		}

		if len(locationPaths) > 0 {
			result := p.pathsFromTemplate(destination, leading{template: location, paths: locationPaths}, processed)
			if location == destination {
				*foundPaths = append(*foundPaths, locationPaths...)
			}
			result.update(foundPaths)
		}
	}

	*foundPaths = reducePaths(*foundPaths)

	if lead == nil {
		p.createWidthless(destination, index).update(foundPaths)
	}
}

func (p *Parser) matchPiece(piece *template.Piece, path Path, lead *leading, processed []map[string]MatchResult) MatchResult {
	if !path.Confirmed && lead != nil {
		return p.matchPieceFromTemplate(piece, *lead, processed)
	}
	return p.matchPieceFromToken(piece, path.Confirmed, path.Index+path.Width, processed)
}

func (p *Parser) matchPieceFromToken(piece *template.Piece, follow bool, index int, processed []map[string]MatchResult) MatchResult {
	switch piece.Kind {
	case template.PieceData, template.PieceComment:
		panic("data/comment pieces may not be matched")
	case template.PieceTemplate, template.PieceMerge:
		return p.filteredPathsFromToken(piece.Filters, follow, index, processed)
	case template.PieceList:
		return p.listFromToken(piece.Part, piece.Separator, false, follow, index, processed)
	case template.PieceConfirmed:
		return p.listFromToken(piece.Part, piece.Separator, true, follow, index, processed)
	default:
		return tokenMatchesPiece(piece, p.tokens, index)
	}
}

func (p *Parser) matchPieceFromTemplate(piece *template.Piece, lead leading, processed []map[string]MatchResult) MatchResult {
	switch piece.Kind {
	case template.PieceData, template.PieceComment:
		panic("data/comment pieces may not be matched")
	case template.PieceTemplate, template.PieceMerge:
		return templateMatchesPiece(piece.Filters, lead, p.templates)
	case template.PieceList:
		return p.listFromTemplate(piece.Part, piece.Separator, false, lead, processed)
	case template.PieceConfirmed:
		return p.listFromTemplate(piece.Part, piece.Separator, true, lead, processed)
	default:
		return missed()
	}
}

func (p *Parser) activePathsFromToken(piece *template.Piece, activePaths *[]Path, processed []map[string]MatchResult) {
	old := *activePaths
	*activePaths = nil
	for _, path := range old {
		result := p.matchPieceFromToken(piece, path.Confirmed, path.Index+path.Width, processed)
		if result.Matched {
			*activePaths = append(*activePaths, derive(path, result.Paths)...)
		}
	}
}

func (p *Parser) activePathsFromTemplate(piece *template.Piece, lead leading, activePaths *[]Path, processed []map[string]MatchResult) {
	old := *activePaths
	*activePaths = nil
	for _, path := range old {
		var result MatchResult
		if path.Confirmed {
			result = p.matchPieceFromToken(piece, true, path.Index+path.Width, processed)
		} else {
			result = p.matchPieceFromTemplate(piece, lead, processed)
		}
		if result.Matched {
			*activePaths = append(*activePaths, derive(path, result.Paths)...)
		}
	}
}

func (p *Parser) filteredPathsFromToken(filters []data.Data, follow bool, index int, processed []map[string]MatchResult) MatchResult {
	var paths []Path
	for _, filter := range filters {
		name := template.Key(filter)
		if follow {
			p.pathsFromToken(name, index, processed).update(&paths)
		} else {
			p.createWidthless(name, index).update(&paths)
		}
	}
	return matchResultFrom(paths)
}

func (p *Parser) createWidthless(location string, index int) MatchResult {
	tmpl := p.templates.Get(location)
	if tmpl.Widthless == template.True {
		decisions := []template.Decision{template.TemplateDecision(location)}
		tmpl.CreateWidthless(&decisions, p.templates)
		return matchResultFrom([]Path{newPath(decisions, index, 0, false)})
	}
	return missed()
}

func (p *Parser) listFromToken(part, separator *template.Piece, confirmed, follow bool, index int, processed []map[string]MatchResult) MatchResult {
	activePaths := []Path{newPath(nil, index, 0, follow)}
	var foundPaths []Path
	counter := 0

	for len(activePaths) > 0 {
		p.activePathsFromToken(part, &activePaths, processed)

		if !confirmed || counter != 0 {
			foundPaths = append(foundPaths, activePaths...)
		}

		pushDecision(activePaths, template.NextDecision())
		if separator != nil {
			p.activePathsFromToken(separator, &activePaths, processed)
		}
		counter++
	}

	foundPaths = reducePaths(foundPaths)
	injectDecision(foundPaths, template.ListDecision())
	pushDecision(foundPaths, template.EndDecision())
	return matchResultFrom(foundPaths)
}

func (p *Parser) listFromTemplate(part, separator *template.Piece, confirmed bool, lead leading, processed []map[string]MatchResult) MatchResult {
	activePaths := []Path{newPath(nil, lead.paths[0].Index, 0, false)}
	var foundPaths []Path
	counter := 0

	for len(activePaths) > 0 {
		p.activePathsFromTemplate(part, lead, &activePaths, processed)

		if !confirmed || counter != 0 {
			foundPaths = append(foundPaths, activePaths...)
		}

		pushDecision(activePaths, template.NextDecision())
		if separator != nil {
			p.activePathsFromTemplate(separator, lead, &activePaths, processed)
		}
		counter++
	}

	foundPaths = reducePaths(foundPaths)
	injectDecision(foundPaths, template.ListDecision())
	pushDecision(foundPaths, template.EndDecision())
	return matchResultFrom(foundPaths)
}

// tokenMatchesPiece matches a terminal piece (Keyword/Operator/Identifier/
// TypeIdentifier/String/Character/Integer/Float) against the token at
// index: an empty filter list matches any token of the right kind, else
// the token's payload must equal one of the filters.
func tokenMatchesPiece(piece *template.Piece, tokens []token.Token, index int) MatchResult {
	if index >= len(tokens) {
		return missed()
	}
	t := tokens[index]
	if !tokenKindMatches(piece.Kind, t.Kind) {
		return missed()
	}

	if len(piece.Filters) == 0 {
		return matchResultFrom([]Path{newPath(nil, index, 1, true)})
	}

	for filterIndex, filter := range piece.Filters {
		if filterMatchesToken(filter, t) {
			decisions := []template.Decision{template.FilterDecision(filterIndex)}
			return matchResultFrom([]Path{newPath(decisions, index, 1, true)})
		}
	}
	return missed()
}

func tokenKindMatches(pieceKind template.PieceKind, tokenKind token.Kind) bool {
	switch pieceKind {
	case template.PieceKeyword:
		return tokenKind == token.Keyword
	case template.PieceOperator:
		return tokenKind == token.Operator
	case template.PieceIdentifier:
		return tokenKind == token.Identifier
	case template.PieceTypeIdentifier:
		return tokenKind == token.TypeIdentifier
	case template.PieceString:
		return tokenKind == token.String
	case template.PieceCharacter:
		return tokenKind == token.Character
	case template.PieceInteger:
		return tokenKind == token.Integer
	case template.PieceFloat:
		return tokenKind == token.Float
	}
	return false
}

func filterMatchesToken(filter data.Data, t token.Token) bool {
	switch t.Kind {
	case token.Keyword, token.Operator, token.Identifier, token.TypeIdentifier:
		name, ok := data.Literal(filter)
		return ok && name == t.Text
	case token.String:
		s, ok := filter.(data.String)
		return ok && string(s) == t.Text
	case token.Character:
		c, ok := filter.(data.Character)
		return ok && byte(c) == t.Character
	case token.Integer:
		i, ok := filter.(data.Integer)
		return ok && int64(i) == t.Integer
	case token.Float:
		f, ok := filter.(data.Float)
		return ok && float64(f) == t.Float
	}
	return false
}

// templateMatchesPiece mirrors the template_matches_piece! macro: a Template
// or Merge piece continues the leading template directly if it's named in
// filters, and also branches into every widthless filter alternative.
func templateMatchesPiece(filters []data.Data, lead leading, templates *template.Table) MatchResult {
	var paths []Path
	for _, filter := range filters {
		if template.Key(filter) == lead.template {
			paths = append(paths, lead.paths...)
			break
		}
	}

	for filterIndex, filter := range filters {
		name := template.Key(filter)
		tmpl := templates.Get(name)
		if tmpl.Widthless == template.True {
			decisions := []template.Decision{template.FilterDecision(filterIndex), template.TemplateDecision(name)}
			tmpl.CreateWidthless(&decisions, templates)
			paths = append(paths, newPath(decisions, lead.paths[0].Index, 0, false))
		}
	}

	return matchResultFrom(paths)
}
