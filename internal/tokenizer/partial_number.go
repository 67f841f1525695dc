package tokenizer

import (
	"strings"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/charstream"
	"github.com/vE5li/igt5/internal/token"
)

type numberPartial struct {
	cfg *NumberConfig
}

func (p *numberPartial) prepare(s *charstream.Stream) error {
	if p.cfg.NegativePrefix != "" {
		if err := ensureSignature(s, p.cfg.NegativePrefix); err != nil {
			return err
		}
	}
	if p.cfg.FloatDelimiter != "" {
		if err := ensureBreaking(s, p.cfg.FloatDelimiter[0]); err != nil {
			return err
		}
	}
	for _, format := range p.cfg.Formats {
		if format.Prefix != none {
			if err := ensureSignature(s, format.Prefix); err != nil {
				return err
			}
		}
	}
	return nil
}

func isDigitByte(ch byte) bool { return ch >= '0' && ch <= '9' }

func (p *numberPartial) find(s *charstream.Stream, r *Registry) (*token.Token, bool, error) {
	ch, ok := s.Peek()
	if !ok {
		return nil, false, nil
	}

	negative := false
	if p.cfg.NegativePrefix != "" && s.CheckString(p.cfg.NegativePrefix) {
		negative = true
	} else if !isDigitByte(ch) {
		return nil, false, nil
	}

	s.Save()
	word, err := s.TillBreaking()
	if err != nil {
		s.Restore()
		return nil, false, nil
	}

	var fraction string
	hasFraction := false
	if p.cfg.FloatDelimiter != "" && s.CheckString(p.cfg.FloatDelimiter) {
		fraction, err = s.TillBreaking()
		if err != nil {
			s.Restore()
			return nil, false, cerrors.New(cerrors.KindInvalidNumber, "expected digits after float delimiter", []token.Position{s.CurrentPosition()})
		}
		hasFraction = true
	}

	intVal, floatVal, matchErr := p.evaluate(word, fraction, hasFraction)
	if matchErr != nil {
		s.Restore()
		return nil, false, matchErr
	}
	s.Drop()

	if negative {
		intVal = -intVal
		floatVal = -floatVal
		r.HasNegatives = true
	}

	positions := s.Positions()
	if hasFraction {
		r.HasFloats = true
		return &token.Token{Kind: token.Float, Float: floatVal, Positions: positions}, true, nil
	}
	r.HasIntegers = true
	return &token.Token{Kind: token.Integer, Integer: intVal, Positions: positions}, true, nil
}

// evaluate tries every configured format, longest-prefix-first then
// longest-suffix-first, stripping prefix/suffix and interpreting the
// remaining digits in the declared system's base (§4.2).
func (p *numberPartial) evaluate(word, fraction string, hasFraction bool) (int64, float64, error) {
	for _, format := range p.cfg.Formats {
		body := word
		if format.Prefix != none {
			if !strings.HasPrefix(body, format.Prefix) {
				continue
			}
			body = body[len(format.Prefix):]
		}

		var suffixes []string
		for suffix := range format.Suffixes {
			suffixes = append(suffixes, suffix)
		}
		suffixes = longestFirst(suffixes)

		for _, suffix := range suffixes {
			digitsText := body
			if suffix != none {
				if !strings.HasSuffix(body, suffix) {
					continue
				}
				digitsText = body[:len(body)-len(suffix)]
			}
			systemName := format.Suffixes[suffix]
			system, ok := p.cfg.Systems[systemName]
			if !ok {
				continue
			}
			intVal, ok := digitsToInt(digitsText, system)
			if !ok {
				continue
			}
			if !hasFraction {
				return intVal, float64(intVal), nil
			}
			fracVal, fracLen, ok := digitsToFraction(fraction, system)
			if !ok {
				continue
			}
			base := float64(len(system.Digits))
			scale := 1.0
			for i := 0; i < fracLen; i++ {
				scale *= base
			}
			return intVal, float64(intVal) + fracVal/scale, nil
		}
	}
	return 0, 0, cerrors.New(cerrors.KindInvalidNumber, "digits do not belong to any configured number system", nil)
}

func digitsToInt(text string, system NumberSystem) (int64, bool) {
	if text == "" {
		return 0, false
	}
	base := int64(len(system.Digits))
	var value int64
	for len(text) > 0 {
		idx, length := matchDigit(text, system)
		if idx < 0 {
			return 0, false
		}
		value = value*base + int64(idx)
		text = text[length:]
	}
	return value, true
}

func digitsToFraction(text string, system NumberSystem) (float64, int, bool) {
	if text == "" {
		return 0, 0, false
	}
	base := float64(len(system.Digits))
	var value float64
	count := 0
	for len(text) > 0 {
		idx, length := matchDigit(text, system)
		if idx < 0 {
			return 0, 0, false
		}
		value = value*base + float64(idx)
		text = text[length:]
		count++
	}
	return value, count, true
}

// matchDigit finds the longest configured digit symbol matching the start
// of text, returning its value (index in Digits) and its length, or -1 if
// none match.
func matchDigit(text string, system NumberSystem) (int, int) {
	bestIdx, bestLen := -1, -1
	for i, d := range system.Digits {
		if strings.HasPrefix(text, d) && len(d) > bestLen {
			bestIdx, bestLen = i, len(d)
		}
	}
	return bestIdx, bestLen
}
