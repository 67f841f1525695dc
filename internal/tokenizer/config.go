package tokenizer

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
)

const none = "" // sentinel for the config author's "#none"

// Config is the parsed form of the Data tree described by §4.2: one
// optional sub-config per partial tokenizer, in the fixed trial order
// comment, number, string, character, operator, keyword, identifier.
type Config struct {
	Comment    *CommentConfig
	Number     *NumberConfig
	String     *StringConfig
	Character  *StringConfig // identical shape, length-1 constrained at match time
	Operator   *TranslateConfig
	Keyword    *TranslateConfig
	Identifier *IdentifierConfig

	// NoteHandler is invoked for every recognized note keyword inside a
	// comment body; if nil the note text is printed (§4.2).
	NoteHandler func(keyword, rest string)
}

type CommentConfig struct {
	Line  []string
	Block [][2]string
	Notes []string
}

type NumberSystem struct {
	Name   string
	Digits []string // ordered, index = digit value
}

type NumberFormat struct {
	Prefix   string            // none sentinel = "#none"
	Suffixes map[string]string // suffix (or none sentinel) -> system name
}

type NumberConfig struct {
	Systems        map[string]NumberSystem
	Formats        []NumberFormat // longest-prefix-first
	FloatDelimiter string         // "" = disabled
	NegativePrefix string         // "" = disabled
}

type StringConfig struct {
	Start, End    string
	ReplaceFrom   []string // longest-first
	ReplaceTo     map[string]string
	exactlyOneCh  bool
}

type TranslateConfig struct {
	Translate map[string]string // literal -> name, longest-literal-first iteration via TranslateOrder
	Order     []string
	Invalid   []string
	Ignored   []string
}

type IdentifierRules struct {
	Prefix     []string
	TypePrefix []string
}

type IdentifierConfig struct {
	IdentifierRules
	Invalid []string
	Ignored []string
}

// Configure parses a tokenizer configuration map (§4.2) into a Config.
func Configure(root data.Map, noteHandler func(keyword, rest string)) (*Config, error) {
	cfg := &Config{NoteHandler: noteHandler}

	if m, ok := subMap(root, "comment_tokenizer"); ok {
		c, err := parseComment(m)
		if err != nil {
			return nil, err
		}
		cfg.Comment = c
	}
	if m, ok := subMap(root, "number_tokenizer"); ok {
		c, err := parseNumber(m)
		if err != nil {
			return nil, err
		}
		cfg.Number = c
	}
	if m, ok := subMap(root, "string_tokenizer"); ok {
		c, err := parseStringLike(m, false)
		if err != nil {
			return nil, err
		}
		cfg.String = c
	}
	if m, ok := subMap(root, "character_tokenizer"); ok {
		c, err := parseStringLike(m, true)
		if err != nil {
			return nil, err
		}
		cfg.Character = c
	}
	if m, ok := subMap(root, "operator_tokenizer"); ok {
		cfg.Operator = parseTranslate(m)
	}
	if m, ok := subMap(root, "keyword_tokenizer"); ok {
		cfg.Keyword = parseTranslate(m)
	}
	if m, ok := subMap(root, "identifier_tokenizer"); ok {
		cfg.Identifier = parseIdentifier(m)
	}

	return cfg, nil
}

func parseComment(m data.Map) (*CommentConfig, error) {
	c := &CommentConfig{}
	if l, ok := subList(m, "line"); ok {
		c.Line = stringListOf(l)
	}
	if l, ok := subList(m, "block"); ok {
		for _, item := range l.Items() {
			pair, ok := item.(data.List)
			if !ok || pair.Len() != 2 {
				return nil, cerrors.Message("block comment delimiter must be a 2-element list [start end]")
			}
			items := pair.Items()
			start, ok1 := asLiteralText(items[0])
			end, ok2 := asLiteralText(items[1])
			if !ok1 || !ok2 {
				return nil, cerrors.Message("block comment delimiters must be literals")
			}
			c.Block = append(c.Block, [2]string{start, end})
		}
	}
	if l, ok := subList(m, "notes"); ok {
		c.Notes = stringListOf(l)
	}
	return c, nil
}

func parseNumber(m data.Map) (*NumberConfig, error) {
	c := &NumberConfig{Systems: map[string]NumberSystem{}}

	if systemsMap, ok := subMap(m, "systems"); ok {
		for _, e := range systemsMap.Entries() {
			name, _ := keywordName(e.Key)
			if name == "" {
				if text, ok := asLiteralText(e.Key); ok {
					name = text
				}
			}
			digitsList, ok := e.Value.(data.List)
			if !ok {
				return nil, cerrors.Message("number system digits must be a list")
			}
			digits := stringListOf(digitsList)
			if len(digits) < 2 {
				return nil, cerrors.New(cerrors.KindInvalidNumberSystem, "number system must declare at least 2 digits", nil)
			}
			c.Systems[name] = NumberSystem{Name: name, Digits: digits}
		}
	}

	if formatsMap, ok := subMap(m, "formats"); ok {
		var prefixes []string
		perPrefix := map[string]data.Data{}
		for _, e := range formatsMap.Entries() {
			prefix, ok := keywordName(e.Key)
			if ok && prefix == "none" {
				prefix = none
			} else if !ok {
				prefix, _ = asLiteralText(e.Key)
			}
			prefixes = append(prefixes, prefix)
			perPrefix[prefix] = e.Value
		}
		prefixes = longestFirst(prefixes)
		for _, prefix := range prefixes {
			suffixMap, ok := perPrefix[prefix].(data.Map)
			if !ok {
				return nil, cerrors.Message("number format value must be a suffix map")
			}
			format := NumberFormat{Prefix: prefix, Suffixes: map[string]string{}}
			var suffixes []string
			for _, e := range suffixMap.Entries() {
				suffix, ok := keywordName(e.Key)
				if ok && suffix == "none" {
					suffix = none
				} else if !ok {
					suffix, _ = asLiteralText(e.Key)
				}
				systemName, ok := keywordName(e.Value)
				if !ok {
					systemName, _ = asLiteralText(e.Value)
				}
				format.Suffixes[suffix] = systemName
				suffixes = append(suffixes, suffix)
			}
			_ = longestFirst(suffixes)
			c.Formats = append(c.Formats, format)
		}
	}

	if delim, ok := literalAt(m, "float_delimiter"); ok {
		c.FloatDelimiter = delim
	}
	if neg, ok := literalAt(m, "negative_prefix"); ok {
		c.NegativePrefix = neg
	}

	return c, nil
}

func parseStringLike(m data.Map, exactlyOne bool) (*StringConfig, error) {
	delimList, ok := subList(m, "delimiter")
	if !ok || delimList.Len() != 2 {
		return nil, cerrors.Message("string/character tokenizer requires a 2-element delimiter list")
	}
	items := delimList.Items()
	start, ok1 := asLiteralText(items[0])
	end, ok2 := asLiteralText(items[1])
	if !ok1 || !ok2 {
		return nil, cerrors.Message("delimiters must be literals")
	}

	c := &StringConfig{Start: start, End: end, exactlyOneCh: exactlyOne, ReplaceTo: map[string]string{}}
	if replaceMap, ok := subMap(m, "replace"); ok {
		var froms []string
		for _, e := range replaceMap.Entries() {
			from, ok := asLiteralText(e.Key)
			if !ok {
				continue
			}
			to, _ := asLiteralText(e.Value)
			c.ReplaceTo[from] = to
			froms = append(froms, from)
		}
		c.ReplaceFrom = longestFirst(froms)
	}
	return c, nil
}

func parseTranslate(m data.Map) *TranslateConfig {
	c := &TranslateConfig{Translate: map[string]string{}}
	if translateMap, ok := subMap(m, "translate"); ok {
		var order []string
		for _, e := range translateMap.Entries() {
			literal, ok := asLiteralText(e.Key)
			if !ok {
				continue
			}
			name, _ := keywordName(e.Value)
			if name == "" {
				name, _ = asLiteralText(e.Value)
			}
			c.Translate[literal] = name
			order = append(order, literal)
		}
		c.Order = longestFirst(order)
	}
	if l, ok := subList(m, "invalid"); ok {
		c.Invalid = stringListOf(l)
	}
	if l, ok := subList(m, "ignored"); ok {
		c.Ignored = stringListOf(l)
	}
	return c
}

func parseIdentifier(m data.Map) *IdentifierConfig {
	c := &IdentifierConfig{}
	if l, ok := subList(m, "prefix"); ok {
		c.Prefix = longestFirst(stringListOf(l))
	}
	if l, ok := subList(m, "type_prefix"); ok {
		c.TypePrefix = longestFirst(stringListOf(l))
	}
	if l, ok := subList(m, "invalid"); ok {
		c.Invalid = stringListOf(l)
	}
	if l, ok := subList(m, "ignored"); ok {
		c.Ignored = stringListOf(l)
	}
	return c
}
