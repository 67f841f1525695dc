package tokenizer

import (
	"strings"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/charstream"
	"github.com/vE5li/igt5/internal/token"
)

type identifierPartial struct {
	cfg *IdentifierConfig
	all []string // Prefix ∪ TypePrefix, deduplicated, longest-first
}

func (p *identifierPartial) prepare(s *charstream.Stream) error {
	seen := map[string]bool{}
	var all []string
	for _, lit := range p.cfg.Prefix {
		if !seen[lit] {
			seen[lit] = true
			all = append(all, lit)
		}
	}
	for _, lit := range p.cfg.TypePrefix {
		if !seen[lit] {
			seen[lit] = true
			all = append(all, lit)
		}
	}
	p.all = longestFirst(all)

	for _, lit := range all {
		if err := ensureSignature(s, lit); err != nil {
			return err
		}
	}
	return nil
}

func (p *identifierPartial) find(s *charstream.Stream, r *Registry) (*token.Token, bool, error) {
	ch, ok := s.Peek()
	if !ok || s.IsBreaking(ch) {
		return nil, false, nil
	}

	s.Save()

	prefixDeclared := len(p.cfg.Prefix)+len(p.cfg.TypePrefix) > 0
	kind := token.Identifier
	var consumed strings.Builder
	matched := !prefixDeclared

	for prefixDeclared {
		advanced := false
		for _, prefix := range p.all {
			if !s.CheckString(prefix) {
				continue
			}
			consumed.WriteString(prefix)
			advanced = true
			inPrefix := containsString(p.cfg.Prefix, prefix)
			inType := containsString(p.cfg.TypePrefix, prefix)
			if inPrefix && inType {
				// Ambiguous: already advanced past it; retry matching the
				// remaining input from the new position (§4.2).
				matched = true
				break
			}
			if inType {
				kind = token.TypeIdentifier
			} else {
				kind = token.Identifier
			}
			matched = true
			goto doneMatchingPrefix
		}
		if !advanced {
			break
		}
	}
doneMatchingPrefix:

	if prefixDeclared && !matched {
		s.Restore()
		return nil, false, nil
	}

	rest, err := s.TillBreaking()
	if err != nil {
		rest = ""
	}

	word := consumed.String() + rest
	if word == "" {
		s.Restore()
		return nil, false, nil
	}

	if containsString(p.cfg.Invalid, word) {
		s.Drop()
		return nil, false, cerrors.New(cerrors.KindInvalidToken, "invalid identifier: "+word, []token.Position{s.CurrentPosition()})
	}
	if containsString(p.cfg.Ignored, word) {
		s.Drop()
		return nil, true, nil
	}

	s.Drop()
	return &token.Token{Kind: kind, Text: word, Positions: s.Positions()}, true, nil
}
