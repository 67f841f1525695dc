package parser

import (
	"github.com/vE5li/igt5/internal/template"
	"github.com/vE5li/igt5/internal/token"
	"github.com/vE5li/igt5/internal/tokenizer"
)

// tokenLocation names the token-pool dependency key a token occupies:
// "keyword:<name>"/"operator:<name>" for the named variants, and the bare
// kind name ("identifier", "string", …) for the rest, mirroring the naming
// Piece.GenerateStartList uses when building a template's TokenList.
func tokenLocation(t token.Token) string {
	switch t.Kind {
	case token.Keyword:
		return "keyword:" + t.Text
	case token.Operator:
		return "operator:" + t.Text
	case token.Identifier:
		return "identifier"
	case token.TypeIdentifier:
		return "type_identifier"
	case token.String:
		return "string"
	case token.Character:
		return "character"
	case token.Integer:
		return "integer"
	case token.Float:
		return "float"
	default:
		return ""
	}
}

// createBaseTokenPool seeds every token-location dependency key the
// tokenizer's registry can actually produce, mirroring
// Parser::create_base_token_pool.
func createBaseTokenPool(registry *tokenizer.Registry) map[string][]string {
	pool := map[string][]string{}
	for _, op := range registry.OperatorNames {
		pool["operator:"+op] = nil
	}
	for _, kw := range registry.KeywordNames {
		pool["keyword:"+kw] = nil
	}
	if registry.HasIdentifiers() {
		pool["identifier"] = nil
	}
	if registry.HasTypeIdentifiers() {
		pool["type_identifier"] = nil
	}
	if registry.HasCharacters {
		pool["character"] = nil
	}
	if registry.HasStrings {
		pool["string"] = nil
	}
	if registry.HasIntegers {
		pool["integer"] = nil
	}
	if registry.HasFloats {
		pool["float"] = nil
	}
	return pool
}

func createBaseTemplatePool(templates *template.Table) map[string][]string {
	pool := map[string][]string{}
	for _, name := range templates.Names() {
		pool[name] = nil
	}
	return pool
}

func cloneDependencies(base map[string][]string) map[string][]string {
	out := make(map[string][]string, len(base))
	for k, v := range base {
		if v == nil {
			out[k] = nil
			continue
		}
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

func containsStr(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// collectPools walks location's TokenList/TemplateList, recording location
// as a dependent of every token kind and template it can start with, and
// recursing into each dependent template whose own pool hasn't already
// absorbed location — mirroring Parser::collect_pools.
func collectPools(location string, tmpl *template.Template, tokenPool, templatePool map[string][]string, templates *template.Table) {
	for _, dependency := range tmpl.TokenList {
		tokenPool[dependency] = append(tokenPool[dependency], location)
	}

	for _, dependency := range tmpl.TemplateList {
		templatePool[dependency] = append(templatePool[dependency], location)
		dependent := templates.Get(dependency)

		if len(dependent.TokenList) > 0 {
			first := dependent.TokenList[0]
			if !containsStr(tokenPool[first], dependency) {
				collectPools(dependency, dependent, tokenPool, templatePool, templates)
				continue
			}
		}

		if len(dependent.TemplateList) > 0 {
			first := dependent.TemplateList[0]
			if !containsStr(templatePool[first], dependency) {
				collectPools(dependency, dependent, tokenPool, templatePool, templates)
				continue
			}
		}
	}
}
