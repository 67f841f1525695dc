package tokenizer

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/charstream"
	"github.com/vE5li/igt5/internal/token"
)

type operatorPartial struct {
	cfg *TranslateConfig
	all []string // every literal, longest-first, built lazily in prepare
}

func (p *operatorPartial) prepare(s *charstream.Stream) error {
	var all []string
	all = append(all, p.cfg.Order...)
	all = append(all, p.cfg.Invalid...)
	all = append(all, p.cfg.Ignored...)
	p.all = longestFirst(all)

	for _, lit := range all {
		if err := ensureSignature(s, lit); err != nil {
			return err
		}
		if len(lit) > 0 {
			if err := ensureBreaking(s, lit[0]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *operatorPartial) find(s *charstream.Stream, r *Registry) (*token.Token, bool, error) {
	for _, lit := range p.all {
		if !s.CheckString(lit) {
			continue
		}
		if name, ok := p.cfg.Translate[lit]; ok {
			if !r.HasOperator(name) {
				r.OperatorNames = append(r.OperatorNames, name)
			}
			return &token.Token{Kind: token.Operator, Text: name, Positions: s.Positions()}, true, nil
		}
		if containsString(p.cfg.Invalid, lit) {
			return nil, false, cerrors.New(cerrors.KindInvalidToken, "invalid operator: "+lit, []token.Position{s.CurrentPosition()})
		}
		// Ignored: silently consumed, no token produced.
		return nil, true, nil
	}
	return nil, false, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
