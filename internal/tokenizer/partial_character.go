package tokenizer

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/charstream"
	"github.com/vE5li/igt5/internal/token"
)

type characterPartial struct {
	cfg *StringConfig
}

func (p *characterPartial) prepare(s *charstream.Stream) error {
	return prepareDelimited(s, p.cfg)
}

func (p *characterPartial) find(s *charstream.Stream, r *Registry) (*token.Token, bool, error) {
	if !s.CheckString(p.cfg.Start) {
		return nil, false, nil
	}
	body, err := scanDelimited(s, p.cfg, "character")
	if err != nil {
		return nil, false, err
	}
	if len(body) != 1 {
		return nil, false, cerrors.New(cerrors.KindInvalidCharacterLength, "character literal must have length 1", []token.Position{s.CurrentPosition()})
	}
	r.HasCharacters = true
	return &token.Token{Kind: token.Character, Character: body[0], Positions: s.Positions()}, true, nil
}
