package tokenizer

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/charstream"
	"github.com/vE5li/igt5/internal/token"
)

type keywordPartial struct {
	cfg *TranslateConfig
}

func (p *keywordPartial) prepare(s *charstream.Stream) error { return nil }

func (p *keywordPartial) find(s *charstream.Stream, r *Registry) (*token.Token, bool, error) {
	ch, ok := s.Peek()
	if !ok || s.IsBreaking(ch) {
		return nil, false, nil
	}

	s.Save()
	word, err := s.TillBreaking()
	if err != nil {
		s.Restore()
		return nil, false, nil
	}

	if name, ok := p.cfg.Translate[word]; ok {
		s.Drop()
		if !r.HasKeyword(name) {
			r.KeywordNames = append(r.KeywordNames, name)
		}
		return &token.Token{Kind: token.Keyword, Text: name, Positions: s.Positions()}, true, nil
	}
	if containsString(p.cfg.Invalid, word) {
		s.Drop()
		return nil, false, cerrors.New(cerrors.KindInvalidToken, "invalid keyword: "+word, []token.Position{s.CurrentPosition()})
	}
	if containsString(p.cfg.Ignored, word) {
		s.Drop()
		return nil, true, nil
	}

	s.Restore()
	return nil, false, nil
}
