package tokenizer

import (
	"strings"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/charstream"
	"github.com/vE5li/igt5/internal/token"
)

type stringPartial struct {
	cfg *StringConfig
}

func (p *stringPartial) prepare(s *charstream.Stream) error {
	return prepareDelimited(s, p.cfg)
}

func prepareDelimited(s *charstream.Stream, cfg *StringConfig) error {
	if err := ensureSignature(s, cfg.Start); err != nil {
		return err
	}
	if err := ensureSignature(s, cfg.End); err != nil {
		return err
	}
	if len(cfg.Start) > 0 {
		if err := ensureBreaking(s, cfg.Start[0]); err != nil {
			return err
		}
	}
	return nil
}

// scanDelimited consumes cfg.Start (already checked by the caller), reads
// up to cfg.End applying replacements longest-first before any other
// character consumption (§4.2), and consumes cfg.End.
func scanDelimited(s *charstream.Stream, cfg *StringConfig, kind string) (string, error) {
	var body strings.Builder
	for {
		if s.CheckString(cfg.End) {
			return body.String(), nil
		}
		if s.Empty() {
			return "", cerrors.New(cerrors.KindUnterminatedToken, "unterminated "+kind, []token.Position{s.CurrentPosition()})
		}

		replaced := false
		for _, from := range cfg.ReplaceFrom {
			if s.CheckString(from) {
				body.WriteString(cfg.ReplaceTo[from])
				replaced = true
				break
			}
		}
		if replaced {
			continue
		}

		ch, _ := s.Advance()
		body.WriteByte(ch)
	}
}

func (p *stringPartial) find(s *charstream.Stream, r *Registry) (*token.Token, bool, error) {
	if !s.CheckString(p.cfg.Start) {
		return nil, false, nil
	}
	body, err := scanDelimited(s, p.cfg, "string")
	if err != nil {
		return nil, false, err
	}
	r.HasStrings = true
	return &token.Token{Kind: token.String, Text: body, Positions: s.Positions()}, true, nil
}
