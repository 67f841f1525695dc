// Package charstream implements the positioned character cursor of §4.1:
// a cursor over 7-bit ASCII input with breaking/non-breaking/signature
// registries, a save/restore/drop snapshot stack, and position tracking
// that every partial tokenizer shares.
package charstream

import (
	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/token"
)

// defaultBreaking holds the statically breaking ASCII bytes (§4.1): 0-32,
// 127, and  . - : $ # [ ] { } ' ".
var defaultBreaking = func() [256]bool {
	var set [256]bool
	for i := 0; i <= 32; i++ {
		set[i] = true
	}
	set[127] = true
	for _, ch := range []byte{'.', '-', ':', '$', '#', '[', ']', '{', '}', '\'', '"'} {
		set[ch] = true
	}
	return set
}()

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// Stream is the shared character cursor. All six partial tokenizers read
// from one Stream instance so position tracking and the registries stay
// consistent across the whole tokenize pass.
type Stream struct {
	file   string
	source string
	data   []byte

	index  int
	line   int
	column int

	open []token.Position

	explicitBreaking    map[byte]bool
	explicitNonBreaking map[byte]bool
	signatures          map[string]bool

	saves []snapshot
}

type snapshot struct {
	index  int
	line   int
	column int
	open   []token.Position
}

// New validates that source is 7-bit ASCII (§1 Non-goals, §4.1 failure
// modes) and builds a Stream positioned at the first character.
func New(source, file string) (*Stream, error) {
	data := []byte(source)
	for i, b := range data {
		if b > 127 {
			return nil, cerrors.New(cerrors.KindNonAsciiCharacter, "non-ASCII byte in source", []token.Position{{
				File: file, Source: source, Line: 1, Character: i + 1, Length: 1,
			}})
		}
	}
	s := &Stream{
		file:                file,
		source:              source,
		data:                data,
		line:                1,
		column:              1,
		explicitBreaking:    map[byte]bool{},
		explicitNonBreaking: map[byte]bool{},
		signatures:          map[string]bool{},
	}
	s.open = []token.Position{{File: file, Source: source, Line: 1, Character: 1, Length: 0}}
	return s, nil
}

// Empty reports whether the stream is exhausted.
func (s *Stream) Empty() bool { return s.index >= len(s.data) }

// Peek returns the current character without consuming it.
func (s *Stream) Peek() (byte, bool) {
	if s.Empty() {
		return 0, false
	}
	return s.data[s.index], true
}

// PeekAt returns the character n positions ahead of the cursor (0 = Peek()).
func (s *Stream) PeekAt(n int) (byte, bool) {
	idx := s.index + n
	if idx < 0 || idx >= len(s.data) {
		return 0, false
	}
	return s.data[idx], true
}

// Advance consumes and returns the current character, growing the open
// position by one and starting a fresh open position on newline (§4.1).
func (s *Stream) Advance() (byte, bool) {
	ch, ok := s.Peek()
	if !ok {
		return 0, false
	}
	s.index++
	last := len(s.open) - 1
	s.open[last].Length++

	if ch == '\n' {
		s.line++
		s.column = 1
		s.open = append(s.open, token.Position{File: s.file, Source: s.source, Line: s.line, Character: s.column, Length: 0})
	} else {
		s.column++
	}
	return ch, true
}

// StartPositions closes the in-progress position list (returning it) and
// begins a fresh one starting immediately after the last character
// consumed — the precondition every partial tokenizer establishes before
// scanning the next token.
func (s *Stream) StartPositions() []token.Position {
	closed := s.open
	s.open = []token.Position{{File: s.file, Source: s.source, Line: s.line, Character: s.column, Length: 0}}
	return closed
}

// Positions returns the in-progress position list without closing it.
func (s *Stream) Positions() []token.Position {
	return append([]token.Position(nil), s.open...)
}

// CurrentPosition returns a single-point Position at the cursor, useful
// for error reporting mid-scan.
func (s *Stream) CurrentPosition() token.Position {
	return token.Position{File: s.file, Source: s.source, Line: s.line, Character: s.column, Length: 0}
}

func (s *Stream) File() string   { return s.file }
func (s *Stream) Source() string { return s.source }

// Save pushes a snapshot of the cursor; Restore pops and reverts to it,
// Drop pops and keeps the current position (§4.1).
func (s *Stream) Save() {
	s.saves = append(s.saves, snapshot{
		index:  s.index,
		line:   s.line,
		column: s.column,
		open:   append([]token.Position(nil), s.open...),
	})
}

func (s *Stream) Restore() {
	n := len(s.saves)
	if n == 0 {
		return
	}
	top := s.saves[n-1]
	s.saves = s.saves[:n-1]
	s.index = top.index
	s.line = top.line
	s.column = top.column
	s.open = top.open
}

func (s *Stream) Drop() {
	n := len(s.saves)
	if n == 0 {
		return
	}
	s.saves = s.saves[:n-1]
}

// TillBreaking reads up to but not including the next breaking character.
// It is an error if the current character is itself breaking.
func (s *Stream) TillBreaking() (string, error) {
	ch, ok := s.Peek()
	if !ok {
		return "", cerrors.New(cerrors.KindUnexpectedToken, "unexpected end of input", []token.Position{s.CurrentPosition()})
	}
	if s.IsBreaking(ch) {
		return "", cerrors.New(cerrors.KindUnexpectedToken, "expected a word, found a breaking character", []token.Position{s.CurrentPosition()})
	}
	var out []byte
	for {
		ch, ok := s.Peek()
		if !ok || s.IsBreaking(ch) {
			break
		}
		s.Advance()
		out = append(out, ch)
	}
	return string(out), nil
}

// Check conditionally advances past ch, reporting whether it did.
func (s *Stream) Check(ch byte) bool {
	cur, ok := s.Peek()
	if !ok || cur != ch {
		return false
	}
	s.Advance()
	return true
}

// CheckString conditionally advances past the literal seq.
func (s *Stream) CheckString(seq string) bool {
	for i := 0; i < len(seq); i++ {
		ch, ok := s.PeekAt(i)
		if !ok || ch != seq[i] {
			return false
		}
	}
	for range seq {
		s.Advance()
	}
	return true
}

// IsPure reports whether every character of literal is non-breaking.
func (s *Stream) IsPure(literal string) bool {
	for i := 0; i < len(literal); i++ {
		if s.IsBreaking(literal[i]) {
			return false
		}
	}
	return true
}

// IsBreaking reports whether ch terminates a word: explicit registration
// wins, then digits are implicitly non-breaking, then the static default
// breaking set (§4.1).
func (s *Stream) IsBreaking(ch byte) bool {
	if s.explicitBreaking[ch] {
		return true
	}
	if s.explicitNonBreaking[ch] {
		return false
	}
	if isDigit(ch) {
		return false
	}
	return defaultBreaking[ch]
}

// RegisterBreaking adds ch to the breaking registry. Fails if ch is
// already (explicitly or implicitly, as a digit) non-breaking.
func (s *Stream) RegisterBreaking(ch byte) error {
	if s.explicitNonBreaking[ch] || isDigit(ch) {
		return cerrors.New(cerrors.KindDuplicateNonBreaking, "character already registered non-breaking", nil)
	}
	if s.explicitBreaking[ch] {
		return cerrors.New(cerrors.KindDuplicateBreaking, "character already registered breaking", nil)
	}
	s.explicitBreaking[ch] = true
	return nil
}

// RegisterNonBreaking adds ch to the non-breaking registry. Fails if ch is
// already (explicitly or by default) breaking.
func (s *Stream) RegisterNonBreaking(ch byte) error {
	if s.explicitBreaking[ch] || defaultBreaking[ch] {
		return cerrors.New(cerrors.KindDuplicateBreaking, "character already registered breaking", nil)
	}
	if s.explicitNonBreaking[ch] {
		return cerrors.New(cerrors.KindDuplicateNonBreaking, "character already registered non-breaking", nil)
	}
	s.explicitNonBreaking[ch] = true
	return nil
}

// RegisterSignature declares a multi-character token (an operator or
// prefix). Fails on duplicate registration.
func (s *Stream) RegisterSignature(seq string) error {
	if s.signatures[seq] {
		return cerrors.New(cerrors.KindDuplicateSignature, "signature already registered: "+seq, nil)
	}
	s.signatures[seq] = true
	return nil
}

func (s *Stream) HasSignature(seq string) bool {
	return s.signatures[seq]
}
