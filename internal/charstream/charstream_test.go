package charstream

import "testing"

func TestAdvanceTracksPosition(t *testing.T) {
	s, err := New("ab\ncd", "test.igt")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s.Advance()
	s.Advance()
	s.Advance() // consumes newline
	positions := s.Positions()
	if len(positions) != 2 {
		t.Fatalf("expected 2 open positions across the newline, got %d", len(positions))
	}
	if positions[1].Line != 2 {
		t.Fatalf("second position line = %d, want 2", positions[1].Line)
	}
}

func TestSaveRestore(t *testing.T) {
	s, _ := New("abcdef", "")
	s.Advance()
	s.Advance()
	s.Save()
	s.Advance()
	s.Advance()
	ch, _ := s.Peek()
	if ch != 'e' {
		t.Fatalf("before restore peek = %c, want e", ch)
	}
	s.Restore()
	ch, _ = s.Peek()
	if ch != 'c' {
		t.Fatalf("after restore peek = %c, want c", ch)
	}
}

func TestSaveDrop(t *testing.T) {
	s, _ := New("abcdef", "")
	s.Save()
	s.Advance()
	s.Drop()
	ch, _ := s.Peek()
	if ch != 'b' {
		t.Fatalf("after drop peek = %c, want b", ch)
	}
}

func TestTillBreaking(t *testing.T) {
	s, _ := New("hello world", "")
	word, err := s.TillBreaking()
	if err != nil {
		t.Fatalf("till_breaking: %v", err)
	}
	if word != "hello" {
		t.Fatalf("word = %q, want hello", word)
	}
}

func TestTillBreakingErrorsOnBreakingFirst(t *testing.T) {
	s, _ := New(" hello", "")
	if _, err := s.TillBreaking(); err == nil {
		t.Fatalf("expected error when first character is breaking")
	}
}

func TestRegisterBreakingNonBreakingConflict(t *testing.T) {
	s, _ := New("x", "")
	if err := s.RegisterNonBreaking('@'); err != nil {
		t.Fatalf("register non-breaking: %v", err)
	}
	if err := s.RegisterBreaking('@'); err == nil {
		t.Fatalf("expected conflict registering already non-breaking char as breaking")
	}
}

func TestRegisterSignatureDuplicate(t *testing.T) {
	s, _ := New("x", "")
	if err := s.RegisterSignature("=="); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := s.RegisterSignature("=="); err == nil {
		t.Fatalf("expected duplicate signature error")
	}
}

func TestNonAsciiRejected(t *testing.T) {
	if _, err := New("hello\xc3\xa9", ""); err == nil {
		t.Fatalf("expected non-ASCII error")
	}
}

func TestIsPure(t *testing.T) {
	s, _ := New("x", "")
	if !s.IsPure("abc123") {
		t.Fatalf("abc123 should be pure")
	}
	if s.IsPure("a.b") {
		t.Fatalf("a.b should not be pure (. is breaking)")
	}
}

func TestDigitsImplicitlyNonBreaking(t *testing.T) {
	s, _ := New("x", "")
	if s.IsBreaking('5') {
		t.Fatalf("digits should be non-breaking by default")
	}
}
