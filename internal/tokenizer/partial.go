package tokenizer

import (
	"github.com/vE5li/igt5/internal/charstream"
	"github.com/vE5li/igt5/internal/token"
)

// partial is a single role-specific lexical phase (§4.2): comment,
// number, string, character, operator, keyword or identifier. prepare
// runs once before the first token of a source unit, registering the
// breaking/signature classes the partial needs; find is tried for every
// token position, in the fixed order the main loop iterates partials.
type partial interface {
	prepare(s *charstream.Stream) error
	find(s *charstream.Stream, r *Registry) (*token.Token, bool, error)
}

// buildPartials returns the enabled partials in the §4.2 fixed trial
// order: comment, number, string, character, operator, keyword,
// identifier. A subkey absent from the config disables that partial.
func (cfg *Config) buildPartials() []partial {
	var out []partial
	if cfg.Comment != nil {
		out = append(out, &commentPartial{cfg: cfg.Comment, notify: cfg.NoteHandler})
	}
	if cfg.Number != nil {
		out = append(out, &numberPartial{cfg: cfg.Number})
	}
	if cfg.String != nil {
		out = append(out, &stringPartial{cfg: cfg.String})
	}
	if cfg.Character != nil {
		out = append(out, &characterPartial{cfg: cfg.Character})
	}
	if cfg.Operator != nil {
		out = append(out, &operatorPartial{cfg: cfg.Operator})
	}
	if cfg.Keyword != nil {
		out = append(out, &keywordPartial{cfg: cfg.Keyword})
	}
	if cfg.Identifier != nil {
		out = append(out, &identifierPartial{cfg: cfg.Identifier})
	}
	return out
}
