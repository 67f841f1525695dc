package template

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/tokenizer"
)

// Tristate is the widthless tri-state of §4.4: unknown until the
// fixed-point analysis settles it to true or false.
type Tristate int

const (
	Unknown Tristate = iota
	True
	False
)

// Flavor is one alternative body of a Template: an ordered list of pieces.
type Flavor struct {
	Pieces    []Piece
	Widthless Tristate
}

// CalculateWidthless mirrors Flavor::calculate_widthless: False as soon as
// any piece is False, True once every piece is True, Unknown otherwise.
func (f *Flavor) CalculateWidthless(templates *Table) Tristate {
	if f.Widthless != Unknown {
		return f.Widthless
	}
	allWidthless := true
	for i := range f.Pieces {
		switch f.Pieces[i].CalculateWidthless(templates) {
		case False:
			f.Widthless = False
			return False
		case Unknown:
			allWidthless = false
		}
	}
	if allWidthless {
		f.Widthless = True
		return True
	}
	return Unknown
}

func (f *Flavor) Validate(registry *tokenizer.Registry, templates *Table) error {
	for i := range f.Pieces {
		if err := f.Pieces[i].Validate(registry, templates); err != nil {
			return err
		}
	}
	return nil
}

func (f *Flavor) GenerateStartList(tokenList, templateList *[]string, registry *tokenizer.Registry, templates *Table) {
	for i := range f.Pieces {
		if f.Pieces[i].GenerateStartList(tokenList, templateList, registry, templates) {
			return
		}
	}
}

func (f *Flavor) CreateWidthless(decisions *[]Decision, templates *Table) {
	for i := range f.Pieces {
		f.Pieces[i].CreateWidthless(decisions, templates)
	}
}

// Template is one named grammar rule (§3.6): an ordered set of flavors plus
// the fixed-point-computed Widthless/TokenList/TemplateList attributes
// the parser's dependency pools are built from.
type Template struct {
	Name         string
	Passes       data.Data
	Flavors      []Flavor
	Widthless    Tristate
	TokenList    []string
	TemplateList []string
}

// CalculateWidthless mirrors Template::calculate_widthless, returning
// whether this call changed the template's widthless state (used to drive
// the outer fixed-point loop).
func (t *Template) CalculateWidthless(templates *Table) bool {
	if t.Widthless != Unknown {
		return false
	}
	guaranteed := true
	for i := range t.Flavors {
		switch t.Flavors[i].CalculateWidthless(templates) {
		case True:
			t.Widthless = True
			return true
		case Unknown:
			guaranteed = false
		}
	}
	if guaranteed {
		t.Widthless = False
		return true
	}
	return false
}

func (t *Template) Validate(registry *tokenizer.Registry, templates *Table) error {
	for i := range t.Flavors {
		if err := t.Flavors[i].Validate(registry, templates); err != nil {
			return err
		}
	}
	return nil
}

func (t *Template) GenerateStartList(registry *tokenizer.Registry, templates *Table) {
	var tokenList, templateList []string
	for i := range t.Flavors {
		t.Flavors[i].GenerateStartList(&tokenList, &templateList, registry, templates)
	}
	t.TokenList = tokenList
	t.TemplateList = templateList
}

// CreateWidthless appends the decision sequence that constructs this
// template with zero consumed tokens, picking the first widthless flavor.
func (t *Template) CreateWidthless(decisions *[]Decision, templates *Table) {
	for i := range t.Flavors {
		if t.Flavors[i].Widthless == True {
			*decisions = append(*decisions, FlavorDecision(i))
			t.Flavors[i].CreateWidthless(decisions, templates)
			return
		}
	}
}

// Table is the template→Template map the whole pipeline indexes by name
// (§9's "cyclic graphs" note: pieces store names, never direct pointers).
type Table struct {
	templates map[string]*Template
	order     []string
}

func newTable() *Table {
	return &Table{templates: map[string]*Template{}}
}

func (tb *Table) Get(name string) *Template { return tb.templates[name] }

func (tb *Table) Has(name string) bool {
	_, ok := tb.templates[name]
	return ok
}

func (tb *Table) insert(name string, t *Template) {
	if !tb.Has(name) {
		tb.order = append(tb.order, name)
	}
	tb.templates[name] = t
}

func (tb *Table) all() []*Template {
	out := make([]*Template, 0, len(tb.order))
	for _, name := range tb.order {
		out = append(out, tb.templates[name])
	}
	return out
}

func (tb *Table) Names() []string {
	return append([]string(nil), tb.order...)
}

// Pull recursively loads template `name` and every template it transitively
// depends on from templateRoot (the Data map at compiler config key
// `template`), mirroring Template::pull.
func Pull(name string, templates *Table, templateRoot data.Map) error {
	if templates.Has(name) {
		return nil
	}

	source, ok := templateRoot.Index(data.Keyword(name))
	if !ok {
		return cerrors.MissingEntry("template." + name)
	}
	flavorLists, err := asList(source)
	if err != nil {
		return err
	}

	var directDependencies []string
	var flavors []Flavor
	var passes data.Data

	cursor := newItemCursor(flavorLists)
	if first, ok := cursor.peek(); ok {
		if m, isMap := first.(data.Map); isMap {
			cursor.pop()
			passes = m
		}
	}

	for {
		flavorSource, ok := cursor.pop()
		if !ok {
			break
		}
		pieceSources, err := asList(flavorSource)
		if err != nil {
			return err
		}
		var pieces []Piece
		for _, pieceSource := range pieceSources {
			piece, err := ParsePiece(pieceSource, &directDependencies, false)
			if err != nil {
				return err
			}
			pieces = append(pieces, piece)
		}
		flavors = append(flavors, Flavor{Pieces: pieces})
	}

	if len(flavors) == 0 {
		return cerrors.Message("template " + name + " does not have any flavors")
	}

	templates.insert(name, &Template{Name: name, Passes: passes, Flavors: flavors})

	for _, dependency := range directDependencies {
		if err := Pull(dependency, templates, templateRoot); err != nil {
			return err
		}
	}
	return nil
}

// Analyze runs the §4.4 pipeline once every reachable template has been
// pulled: fixed-point widthless computation, validation, and start-set
// generation. It mirrors Parser::new's setup phase.
func Analyze(templates *Table, registry *tokenizer.Registry) error {
	changed := true
	for changed {
		changed = false
		for _, t := range templates.all() {
			if t.CalculateWidthless(templates) {
				changed = true
			}
		}
	}

	for _, t := range templates.all() {
		for i := range t.Flavors {
			if t.Flavors[i].CalculateWidthless(templates) == Unknown {
				return cerrors.Message("failed to calculate widthlessness of " + t.Name + " (looped dependency)")
			}
		}
		if err := t.Validate(registry, templates); err != nil {
			return err
		}
		t.GenerateStartList(registry, templates)
	}
	return nil
}

// Load pulls the `top` template (and its transitive closure) from root's
// `template` key, then runs Analyze. This is the single entry point C5's
// parser needs before it can enumerate paths.
func Load(root data.Map, registry *tokenizer.Registry) (*Table, error) {
	templateRootData, ok := root.Index(data.Keyword("template"))
	if !ok {
		return nil, cerrors.MissingEntry("template")
	}
	templateRoot, ok := templateRootData.(data.Map)
	if !ok {
		return nil, cerrors.Message("compiler config key `template` must be a map")
	}

	templates := newTable()
	if err := Pull("top", templates, templateRoot); err != nil {
		return nil, err
	}
	if err := Analyze(templates, registry); err != nil {
		return nil, err
	}
	return templates, nil
}
