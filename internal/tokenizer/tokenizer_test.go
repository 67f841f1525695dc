package tokenizer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/token"
)

// formatTokens renders a token stream one-per-line for golden comparison.
func formatTokens(tokens []token.Token) string {
	lines := make([]string, len(tokens))
	for i, tok := range tokens {
		lines[i] = tok.String()
	}
	return strings.Join(lines, "\n")
}

// buildConfig constructs a tokenizer Data config the same way a compiler
// config author would, then parses it with Configure.
func buildConfig(t *testing.T, m data.Map) *Config {
	t.Helper()
	cfg, err := Configure(m, nil)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	return cfg
}

func mustInsert(t *testing.T, m data.Map, key string, value data.Data) data.Map {
	t.Helper()
	m, err := m.Insert(data.Keyword(key), value)
	if err != nil {
		t.Fatalf("insert %s: %v", key, err)
	}
	return m
}

// TestWordStream reproduces §8.2 scenario S3: identifier prefix [_lower],
// keyword translate {fn -> #fn}, line comment "//".
func TestWordStream(t *testing.T) {
	root := data.NewMap()

	commentCfg := data.NewMap()
	commentCfg = mustInsert(t, commentCfg, "line", data.NewList(data.String("//")))
	root = mustInsert(t, root, "comment_tokenizer", commentCfg)

	keywordCfg := data.NewMap()
	translate := data.NewMap()
	translate = mustInsert(t, translate, "fn", data.Keyword("fn"))
	keywordCfg = mustInsert(t, keywordCfg, "translate", translate)
	root = mustInsert(t, root, "keyword_tokenizer", keywordCfg)

	identCfg := data.NewMap()
	identCfg = mustInsert(t, identCfg, "prefix", data.NewList(data.String("_lower")))
	root = mustInsert(t, root, "identifier_tokenizer", identCfg)

	cfg := buildConfig(t, root)
	tokens, registry, err := cfg.Tokenize("fn main // note\n", "")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}

	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[0].Kind != token.Keyword || tokens[0].Text != "fn" {
		t.Fatalf("token 0 = %v, want Keyword(fn)", tokens[0])
	}
	if tokens[1].Kind != token.Identifier || tokens[1].Text != "main" {
		t.Fatalf("token 1 = %v, want Identifier(main)", tokens[1])
	}
	if tokens[2].Kind != token.Comment || tokens[2].Text != " note" {
		t.Fatalf("token 2 = %v, want Comment(' note')", tokens[2])
	}
	if !registry.HasComments {
		t.Fatalf("registry should report HasComments")
	}
	if !registry.HasKeyword("fn") {
		t.Fatalf("registry should report keyword fn")
	}
}

func TestUnregisteredCharacterFails(t *testing.T) {
	root := data.NewMap()
	identCfg := data.NewMap()
	identCfg = mustInsert(t, identCfg, "prefix", data.NewList())
	root = mustInsert(t, root, "identifier_tokenizer", identCfg)

	cfg := buildConfig(t, root)
	if _, _, err := cfg.Tokenize("#", ""); err == nil {
		t.Fatalf("expected UnregisteredCharacter error")
	}
}

func TestNumberTokenizerDecimal(t *testing.T) {
	root := data.NewMap()
	numberCfg := data.NewMap()

	systems := data.NewMap()
	decimalDigits := data.NewList(
		data.String("0"), data.String("1"), data.String("2"), data.String("3"), data.String("4"),
		data.String("5"), data.String("6"), data.String("7"), data.String("8"), data.String("9"),
	)
	systems = mustInsert(t, systems, "decimal", decimalDigits)
	numberCfg = mustInsert(t, numberCfg, "systems", systems)

	formats := data.NewMap()
	noneSuffixes := data.NewMap()
	noneSuffixes = mustInsert(t, noneSuffixes, "none", data.Keyword("decimal"))
	formats = mustInsert(t, formats, "none", noneSuffixes)
	numberCfg = mustInsert(t, numberCfg, "formats", formats)
	numberCfg = mustInsert(t, numberCfg, "float_delimiter", data.String("."))
	numberCfg = mustInsert(t, numberCfg, "negative_prefix", data.String("-"))

	root = mustInsert(t, root, "number_tokenizer", numberCfg)

	cfg := buildConfig(t, root)

	tokens, registry, err := cfg.Tokenize("42 -7 3.5", "")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[0].Kind != token.Integer || tokens[0].Integer != 42 {
		t.Fatalf("token0 = %v", tokens[0])
	}
	if tokens[1].Kind != token.Integer || tokens[1].Integer != -7 {
		t.Fatalf("token1 = %v", tokens[1])
	}
	if tokens[2].Kind != token.Float || tokens[2].Float != 3.5 {
		t.Fatalf("token2 = %v", tokens[2])
	}
	if !registry.HasIntegers || !registry.HasFloats || !registry.HasNegatives {
		t.Fatalf("registry flags wrong: %+v", registry)
	}
}

func TestStringTokenizerWithReplace(t *testing.T) {
	root := data.NewMap()
	stringCfg := data.NewMap()
	stringCfg = mustInsert(t, stringCfg, "delimiter", data.NewList(data.String("\""), data.String("\"")))
	replace := data.NewMap()
	replace = mustInsert(t, replace, "\\n", data.String("\n"))
	stringCfg = mustInsert(t, stringCfg, "replace", replace)
	root = mustInsert(t, root, "string_tokenizer", stringCfg)

	cfg := buildConfig(t, root)
	tokens, _, err := cfg.Tokenize(`"hello\nworld"`, "")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Text != "hello\nworld" {
		t.Fatalf("tokens = %v", tokens)
	}
}

func TestStringTokenizerUnterminated(t *testing.T) {
	root := data.NewMap()
	stringCfg := data.NewMap()
	stringCfg = mustInsert(t, stringCfg, "delimiter", data.NewList(data.String("\""), data.String("\"")))
	root = mustInsert(t, root, "string_tokenizer", stringCfg)

	cfg := buildConfig(t, root)
	if _, _, err := cfg.Tokenize(`"unterminated`, ""); err == nil {
		t.Fatalf("expected unterminated string error")
	}
}

func TestCharacterTokenizerRequiresLengthOne(t *testing.T) {
	root := data.NewMap()
	charCfg := data.NewMap()
	charCfg = mustInsert(t, charCfg, "delimiter", data.NewList(data.String("'"), data.String("'")))
	root = mustInsert(t, root, "character_tokenizer", charCfg)

	cfg := buildConfig(t, root)
	if _, _, err := cfg.Tokenize("'ab'", ""); err == nil {
		t.Fatalf("expected InvalidCharacterLength error")
	}
	tokens, _, err := cfg.Tokenize("'a'", "")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if tokens[0].Character != 'a' {
		t.Fatalf("character = %v", tokens[0])
	}
}

func TestOperatorTokenizerLongestMatch(t *testing.T) {
	root := data.NewMap()
	opCfg := data.NewMap()
	translate := data.NewMap()
	translate = mustInsert(t, translate, "=", data.Keyword("assign"))
	translate = mustInsert(t, translate, "==", data.Keyword("equals"))
	opCfg = mustInsert(t, opCfg, "translate", translate)
	root = mustInsert(t, root, "operator_tokenizer", opCfg)

	cfg := buildConfig(t, root)
	tokens, _, err := cfg.Tokenize("===", "")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(tokens) != 2 || tokens[0].Text != "equals" || tokens[1].Text != "assign" {
		t.Fatalf("tokens = %v", tokens)
	}
}

func TestIdentifierAmbiguousPrefixRetries(t *testing.T) {
	root := data.NewMap()
	identCfg := data.NewMap()
	identCfg = mustInsert(t, identCfg, "prefix", data.NewList(data.String("t_")))
	identCfg = mustInsert(t, identCfg, "type_prefix", data.NewList(data.String("t_")))
	root = mustInsert(t, root, "identifier_tokenizer", identCfg)

	cfg := buildConfig(t, root)
	tokens, _, err := cfg.Tokenize("t_Foo", "")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Text != "t_Foo" {
		t.Fatalf("tokens = %v", tokens)
	}
}

// TestWordStreamGolden snapshots the full §8.2 scenario S3 token stream with
// go-snaps, catching regressions in token rendering that field-by-field
// assertions (TestWordStream) wouldn't notice.
func TestWordStreamGolden(t *testing.T) {
	root := data.NewMap()

	commentCfg := data.NewMap()
	commentCfg = mustInsert(t, commentCfg, "line", data.NewList(data.String("//")))
	root = mustInsert(t, root, "comment_tokenizer", commentCfg)

	keywordCfg := data.NewMap()
	translate := data.NewMap()
	translate = mustInsert(t, translate, "fn", data.Keyword("fn"))
	keywordCfg = mustInsert(t, keywordCfg, "translate", translate)
	root = mustInsert(t, root, "keyword_tokenizer", keywordCfg)

	identCfg := data.NewMap()
	identCfg = mustInsert(t, identCfg, "prefix", data.NewList(data.String("_lower")))
	root = mustInsert(t, root, "identifier_tokenizer", identCfg)

	cfg := buildConfig(t, root)
	tokens, registry, err := cfg.Tokenize("fn main // note\n", "")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}

	snaps.MatchSnapshot(t, "word_stream_tokens", formatTokens(tokens))
	snaps.MatchSnapshot(t, "word_stream_registry", fmt.Sprintf("%+v", registry))
}
