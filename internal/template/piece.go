package template

import (
	"fmt"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/tokenizer"
)

// PieceKind enumerates the §3.6 piece variants.
type PieceKind int

const (
	PieceData PieceKind = iota
	PieceComment
	PieceMerge
	PieceTemplate
	PieceList
	PieceConfirmed
	PieceKeyword
	PieceOperator
	PieceIdentifier
	PieceTypeIdentifier
	PieceString
	PieceCharacter
	PieceInteger
	PieceFloat
)

// Piece is one grammar unit inside a flavor (§3.6). Key is nil unless the
// piece declares one; Filters holds template-name filters for
// Template/Merge, or literal payload filters for the terminal kinds.
// Part/Separator are only set for List/Confirmed.
type Piece struct {
	Kind      PieceKind
	Key       data.Data
	Value     data.Data
	Filters   []data.Data
	Part      *Piece
	Separator *Piece
}

// itemCursor sequentially reads the elements of a piece's defining list,
// the same left-to-right consumption DataStack gives the original parser.
type itemCursor struct {
	items []data.Data
	index int
}

func newItemCursor(items []data.Data) *itemCursor { return &itemCursor{items: items} }

func (c *itemCursor) pop() (data.Data, bool) {
	if c.index >= len(c.items) {
		return nil, false
	}
	v := c.items[c.index]
	c.index++
	return v, true
}

func (c *itemCursor) peek() (data.Data, bool) {
	if c.index >= len(c.items) {
		return nil, false
	}
	return c.items[c.index], true
}

func (c *itemCursor) ensureEmpty(context string) error {
	if v, ok := c.peek(); ok {
		return cerrors.New(cerrors.KindUnexpectedImmediate, fmt.Sprintf("unexpected trailing value in %s piece: %s", context, v.String()), nil)
	}
	return nil
}

func asList(d data.Data) ([]data.Data, error) {
	l, ok := d.(data.List)
	if !ok {
		return nil, cerrors.Message("expected a list in template grammar, found " + d.String())
	}
	return l.Items(), nil
}

// getKey reads the optional leading key-typed value. listed pieces (parts
// and separators inside a List/Confirmed) may not declare one; expected
// forces an error if absent (used by Data/Comment).
func getKey(cursor *itemCursor, listed, expected bool) (data.Data, error) {
	if next, ok := cursor.peek(); ok && data.IsKey(next) {
		if listed {
			return nil, cerrors.Message("parts and separators may not have a key")
		}
		cursor.pop()
		return next, nil
	}
	if expected {
		return nil, cerrors.Message("expected key")
	}
	return nil, nil
}

// literalFilters reads the trailing filter list (if any) as-is, preserving
// each filter's own Data payload (identifier names for keyword/operator,
// strings/characters/integers/floats for the matching terminal kinds).
func literalFilters(cursor *itemCursor) ([]data.Data, error) {
	next, ok := cursor.pop()
	if !ok {
		return nil, nil
	}
	items, err := asList(next)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// templateFilters reads the trailing filter list for Template/Merge pieces,
// recording each referenced template name into directDependencies so the
// caller can pull it if not already known.
func templateFilters(cursor *itemCursor, directDependencies *[]string) ([]data.Data, error) {
	next, ok := cursor.pop()
	if !ok {
		return nil, nil
	}
	items, err := asList(next)
	if err != nil {
		return nil, err
	}
	for _, filter := range items {
		name := Key(filter)
		found := false
		for _, existing := range *directDependencies {
			if existing == name {
				found = true
				break
			}
		}
		if !found {
			*directDependencies = append(*directDependencies, name)
		}
	}
	return items, nil
}

// Key derives the Table lookup key for a template-name Data value. Template
// names are typically Keywords but any literal-backed variant works.
func Key(d data.Data) string {
	if text, ok := data.Literal(d); ok {
		return text
	}
	return d.String()
}

// ParsePiece parses one piece definition list (§4.4). listed marks a part
// or separator nested inside a List/Confirmed piece.
func ParsePiece(pieceSource data.Data, directDependencies *[]string, listed bool) (Piece, error) {
	items, err := asList(pieceSource)
	if err != nil {
		return Piece{}, err
	}
	cursor := newItemCursor(items)

	pieceType, ok := cursor.pop()
	if !ok {
		return Piece{}, cerrors.Message("expected piece type")
	}
	name, ok := data.Literal(pieceType)
	if !ok {
		return Piece{}, cerrors.Message("piece type must be a keyword or identifier")
	}

	switch name {
	case "list", "confirmed":
		key, err := getKey(cursor, listed, false)
		if err != nil {
			return Piece{}, err
		}
		partSource, ok := cursor.pop()
		if !ok {
			return Piece{}, cerrors.Message("expected part")
		}
		part, err := ParsePiece(partSource, directDependencies, true)
		if err != nil {
			return Piece{}, err
		}
		var separator *Piece
		if sepSource, ok := cursor.pop(); ok {
			sep, err := ParsePiece(sepSource, directDependencies, true)
			if err != nil {
				return Piece{}, err
			}
			separator = &sep
		}
		if err := cursor.ensureEmpty(name); err != nil {
			return Piece{}, cerrors.Tag(name, err)
		}
		kind := PieceList
		if name == "confirmed" {
			kind = PieceConfirmed
		}
		return Piece{Kind: kind, Key: key, Part: &part, Separator: separator}, nil

	case "template":
		key, err := getKey(cursor, listed, false)
		if err != nil {
			return Piece{}, err
		}
		filters, err := templateFilters(cursor, directDependencies)
		if err != nil {
			return Piece{}, err
		}
		if len(filters) == 0 {
			return Piece{}, cerrors.Message("templates must have a filter")
		}
		if err := cursor.ensureEmpty("template"); err != nil {
			return Piece{}, cerrors.Tag("template", err)
		}
		return Piece{Kind: PieceTemplate, Key: key, Filters: filters}, nil

	case "merge":
		if listed {
			return Piece{}, cerrors.Message("merge may not be used in a list")
		}
		filters, err := templateFilters(cursor, directDependencies)
		if err != nil {
			return Piece{}, err
		}
		if len(filters) == 0 {
			return Piece{}, cerrors.Message("merge must have a filter")
		}
		if err := cursor.ensureEmpty("merge"); err != nil {
			return Piece{}, cerrors.Tag("merge", err)
		}
		return Piece{Kind: PieceMerge, Filters: filters}, nil

	case "data":
		if listed {
			return Piece{}, cerrors.Message("data may not be used in a list")
		}
		key, err := getKey(cursor, listed, true)
		if err != nil {
			return Piece{}, err
		}
		immediate, ok := cursor.pop()
		if !ok {
			return Piece{}, cerrors.Message("expected immediate")
		}
		if err := cursor.ensureEmpty("data"); err != nil {
			return Piece{}, cerrors.Tag("data", err)
		}
		return Piece{Kind: PieceData, Key: key, Value: immediate}, nil

	case "comment":
		if listed {
			return Piece{}, cerrors.Message("comment may not be used in a list")
		}
		key, err := getKey(cursor, listed, true)
		if err != nil {
			return Piece{}, err
		}
		if err := cursor.ensureEmpty("comment"); err != nil {
			return Piece{}, cerrors.Tag("comment", err)
		}
		return Piece{Kind: PieceComment, Key: key}, nil

	case "keyword", "operator", "identifier", "type_identifier", "string", "character", "integer", "float":
		key, err := getKey(cursor, listed, false)
		if err != nil {
			return Piece{}, err
		}
		filters, err := literalFilters(cursor)
		if err != nil {
			return Piece{}, err
		}
		if err := cursor.ensureEmpty(name); err != nil {
			return Piece{}, cerrors.Tag(name, err)
		}
		return Piece{Kind: terminalKind(name), Key: key, Filters: filters}, nil

	default:
		return Piece{}, cerrors.Message("invalid template piece " + name)
	}
}

func terminalKind(name string) PieceKind {
	switch name {
	case "keyword":
		return PieceKeyword
	case "operator":
		return PieceOperator
	case "identifier":
		return PieceIdentifier
	case "type_identifier":
		return PieceTypeIdentifier
	case "string":
		return PieceString
	case "character":
		return PieceCharacter
	case "integer":
		return PieceInteger
	case "float":
		return PieceFloat
	}
	panic("unreachable terminal kind " + name)
}

// CalculateWidthless mirrors Piece::calculate_widthless: Unknown if it
// depends on a template whose own widthlessness isn't settled yet.
func (p *Piece) CalculateWidthless(templates *Table) Tristate {
	switch p.Kind {
	case PieceList:
		return p.Part.CalculateWidthless(templates)
	case PieceTemplate, PieceMerge:
		return filterWidthless(p.Filters, templates)
	case PieceComment, PieceData:
		return True
	default:
		return False
	}
}

func filterWidthless(filters []data.Data, templates *Table) Tristate {
	if len(filters) == 0 {
		result := False
		for _, t := range templates.all() {
			if t.Widthless == True {
				return True
			}
			if t.Widthless == Unknown {
				result = Unknown
			}
		}
		return result
	}
	result := False
	for _, filter := range filters {
		t := templates.Get(Key(filter))
		if t.Widthless == True {
			return True
		}
		if t.Widthless == Unknown {
			result = Unknown
		}
	}
	return result
}

// Validate checks this piece's filters against the variant registry and,
// for List/Confirmed, that an unseparated part can't be zero-width.
func (p *Piece) Validate(registry *tokenizer.Registry, templates *Table) error {
	switch p.Kind {
	case PieceData, PieceComment, PieceTemplate, PieceMerge:
		return nil
	case PieceList, PieceConfirmed:
		if err := p.Part.Validate(registry, templates); err != nil {
			return err
		}
		if p.Separator != nil {
			return p.Separator.Validate(registry, templates)
		}
		if p.Part.CalculateWidthless(templates) == True {
			return cerrors.Message("list part may not be empty without a separator")
		}
		return nil
	case PieceKeyword:
		return validateNames(p.Filters, registry.KeywordNames, "keyword")
	case PieceOperator:
		return validateNames(p.Filters, registry.OperatorNames, "operator")
	case PieceIdentifier:
		if !registry.HasIdentifiers() {
			return cerrors.Message("tokenizer does not support identifiers")
		}
		return nil
	case PieceTypeIdentifier:
		if !registry.HasTypeIdentifiers() {
			return cerrors.Message("tokenizer does not support type identifiers")
		}
		return nil
	case PieceString:
		if !registry.HasStrings {
			return cerrors.Message("tokenizer does not support strings")
		}
		return nil
	case PieceCharacter:
		if !registry.HasCharacters {
			return cerrors.Message("tokenizer does not support characters")
		}
		return nil
	case PieceInteger:
		if !registry.HasIntegers {
			return cerrors.Message("tokenizer does not support integers")
		}
		return validateSign(p.Filters, registry.HasNegatives, "integer")
	case PieceFloat:
		if !registry.HasFloats {
			return cerrors.Message("tokenizer does not support floats")
		}
		return validateSign(p.Filters, registry.HasNegatives, "float")
	}
	return nil
}

func validateNames(filters []data.Data, available []string, what string) error {
	if len(available) == 0 {
		return cerrors.Message("tokenizer does not support " + what + "s")
	}
	for _, filter := range filters {
		name, ok := data.Literal(filter)
		if !ok {
			return cerrors.Message("invalid " + what + " filter")
		}
		found := false
		for _, a := range available {
			if a == name {
				found = true
				break
			}
		}
		if !found {
			return cerrors.New(cerrors.KindInvalidToken, "unknown "+what+" filter: "+name, nil)
		}
	}
	return nil
}

// validateSign rejects a negative integer/float filter when the tokenizer
// was not configured with a negative prefix.
func validateSign(filters []data.Data, hasNegatives bool, what string) error {
	if hasNegatives {
		return nil
	}
	for _, filter := range filters {
		negative := false
		switch v := filter.(type) {
		case data.Integer:
			negative = v < 0
		case data.Float:
			negative = v < 0
		}
		if negative {
			return cerrors.Message("tokenizer does not support negative " + what + "s")
		}
	}
	return nil
}

// GenerateStartList appends this piece's contribution to a template's start
// sets and reports whether it ends the scan of the flavor (true = this piece
// always consumes width, so later pieces are unreachable; false = the piece
// may be zero-width and the next piece's contribution is still reachable).
func (p *Piece) GenerateStartList(tokenList, templateList *[]string, registry *tokenizer.Registry, templates *Table) bool {
	switch p.Kind {
	case PieceData, PieceComment:
		return false
	case PieceTemplate, PieceMerge:
		return addTemplateList(templateList, p.Filters, templates)
	case PieceList:
		return addListList(false, p, tokenList, templateList, registry, templates)
	case PieceConfirmed:
		return addListList(true, p, tokenList, templateList, registry, templates)
	case PieceKeyword:
		return addTypedTokenList(tokenList, "keyword", p.Filters, registry.KeywordNames)
	case PieceOperator:
		return addTypedTokenList(tokenList, "operator", p.Filters, registry.OperatorNames)
	case PieceIdentifier:
		return addTokenList(tokenList, "identifier")
	case PieceTypeIdentifier:
		return addTokenList(tokenList, "type_identifier")
	case PieceString:
		return addTokenList(tokenList, "string")
	case PieceCharacter:
		return addTokenList(tokenList, "character")
	case PieceInteger:
		return addTokenList(tokenList, "integer")
	case PieceFloat:
		return addTokenList(tokenList, "float")
	}
	return false
}

func addTokenList(tokenList *[]string, location string) bool {
	if !containsStr(*tokenList, location) {
		*tokenList = append(*tokenList, location)
	}
	return true
}

// addTypedTokenList adds one token-location entry per filter, or (when the
// piece has no filters, meaning it matches any value of this kind) one
// entry per name the tokenizer's registry actually declares.
func addTypedTokenList(tokenList *[]string, prefix string, filters []data.Data, available []string) bool {
	if len(filters) == 0 {
		for _, name := range available {
			addTokenList(tokenList, prefix+":"+name)
		}
		return true
	}
	for _, f := range filters {
		name, _ := data.Literal(f)
		addTokenList(tokenList, prefix+":"+name)
	}
	return true
}

func addTemplateList(templateList *[]string, filters []data.Data, templates *Table) bool {
	widthless := false
	if len(filters) == 0 {
		for name, t := range templates.templates {
			widthless = widthless || t.Widthless == True
			if !containsStr(*templateList, name) {
				*templateList = append(*templateList, name)
			}
		}
	} else {
		for _, filter := range filters {
			name := Key(filter)
			t := templates.Get(name)
			widthless = widthless || t.Widthless == True
			if !containsStr(*templateList, name) {
				*templateList = append(*templateList, name)
			}
		}
	}
	return !widthless
}

func addListList(confirmed bool, p *Piece, tokenList, templateList *[]string, registry *tokenizer.Registry, templates *Table) bool {
	if !p.Part.GenerateStartList(tokenList, templateList, registry, templates) {
		if p.Separator != nil {
			p.Separator.GenerateStartList(tokenList, templateList, registry, templates)
		}
		return confirmed
	}
	return true
}

func containsStr(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// CreateWidthless appends the decision sequence for this piece's
// zero-width derivation, used when a widthless template/filter is taken
// without consuming any tokens.
func (p *Piece) CreateWidthless(decisions *[]Decision, templates *Table) {
	switch p.Kind {
	case PieceData, PieceComment:
		return
	case PieceTemplate, PieceMerge:
		createWidthlessFilter(p.Filters, decisions, templates)
	case PieceList:
		p.Part.CreateWidthless(decisions, templates)
	default:
		panic("piece has no widthless derivation")
	}
}

func createWidthlessFilter(filters []data.Data, decisions *[]Decision, templates *Table) {
	for _, filter := range filters {
		name := Key(filter)
		t := templates.Get(name)
		if t.Widthless == True {
			*decisions = append(*decisions, TemplateDecision(name))
			t.CreateWidthless(decisions, templates)
			return
		}
	}
}
