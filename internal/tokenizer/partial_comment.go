package tokenizer

import (
	"fmt"
	"strings"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/charstream"
	"github.com/vE5li/igt5/internal/token"
)

type commentPartial struct {
	cfg    *CommentConfig
	notify func(keyword, rest string)
}

func (p *commentPartial) prepare(s *charstream.Stream) error {
	for _, delim := range p.cfg.Line {
		if err := ensureSignature(s, delim); err != nil {
			return err
		}
		if len(delim) > 0 {
			if err := ensureBreaking(s, delim[0]); err != nil {
				return err
			}
		}
	}
	for _, pair := range p.cfg.Block {
		for _, delim := range pair {
			if err := ensureSignature(s, delim); err != nil {
				return err
			}
			if len(delim) > 0 {
				if err := ensureBreaking(s, delim[0]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (p *commentPartial) find(s *charstream.Stream, r *Registry) (*token.Token, bool, error) {
	for _, delim := range p.cfg.Line {
		if !s.CheckString(delim) {
			continue
		}
		var body strings.Builder
		for {
			ch, ok := s.Peek()
			if !ok || ch == '\n' {
				break
			}
			s.Advance()
			body.WriteByte(ch)
		}
		p.extractNotes(body.String())
		r.HasComments = true
		return &token.Token{Kind: token.Comment, Text: body.String(), Positions: s.Positions()}, true, nil
	}

	for _, pair := range p.cfg.Block {
		start, end := pair[0], pair[1]
		if !s.CheckString(start) {
			continue
		}
		var body strings.Builder
		for {
			if s.CheckString(end) {
				break
			}
			ch, ok := s.Advance()
			if !ok {
				return nil, false, cerrors.New(cerrors.KindUnterminatedToken, "unterminated block comment", []token.Position{s.CurrentPosition()})
			}
			body.WriteByte(ch)
		}
		p.extractNotes(body.String())
		r.HasComments = true
		return &token.Token{Kind: token.Comment, Text: body.String(), Positions: s.Positions()}, true, nil
	}

	return nil, false, nil
}

func (p *commentPartial) extractNotes(body string) {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, kw := range p.cfg.Notes {
			if strings.HasPrefix(trimmed, kw) {
				rest := strings.TrimSpace(trimmed[len(kw):])
				if p.notify != nil {
					p.notify(kw, rest)
				} else {
					fmt.Println(rest)
				}
				break
			}
		}
	}
}
