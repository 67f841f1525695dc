package tokenizer

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/charstream"
	"github.com/vE5li/igt5/internal/token"
)

// Tokenize runs the §4.2 main loop: until the stream is empty, try each
// enabled partial in the fixed order comment/number/string/character/
// operator/keyword/identifier; the first to consume input wins. No match
// at all is an UnregisteredCharacter failure.
func (cfg *Config) Tokenize(source, file string) ([]token.Token, *Registry, error) {
	stream, err := charstream.New(source, file)
	if err != nil {
		return nil, nil, err
	}

	partials := cfg.buildPartials()
	for _, p := range partials {
		if err := p.prepare(stream); err != nil {
			return nil, nil, err
		}
	}

	registry := newRegistry()
	if cfg.Identifier != nil {
		registry.IdentifierRules = cfg.Identifier.IdentifierRules
		registry.HasIdentifierTokenizer = true
	}
	var tokens []token.Token

	for !stream.Empty() {
		stream.StartPositions()
		matched := false
		for _, p := range partials {
			tok, ok, err := p.find(stream, registry)
			if err != nil {
				return nil, nil, err
			}
			if ok {
				if tok != nil {
					tokens = append(tokens, *tok)
				}
				matched = true
				break
			}
		}
		if !matched {
			ch, _ := stream.Peek()
			return nil, nil, cerrors.New(cerrors.KindUnregisteredCharacter, "unregistered character: "+string(rune(ch)), []token.Position{stream.CurrentPosition()})
		}
	}

	return tokens, registry, nil
}

// FilterComments filters comments out of a token list, the precondition the
// parser requires (§3.5: comments are not parsable).
func FilterComments(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != token.Comment {
			out = append(out, t)
		}
	}
	return out
}
