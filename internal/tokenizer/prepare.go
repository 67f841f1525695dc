package tokenizer

import "github.com/vE5li/igt5/internal/charstream"

// ensureBreaking registers ch as breaking unless it already is — several
// partials auto-register overlapping punctuation (a comment delimiter and
// an operator both starting with '/', say) and that is not the kind of
// user-authored duplicate §4.1's "registering a duplicate fails" is meant
// to catch.
func ensureBreaking(s *charstream.Stream, ch byte) error {
	if s.IsBreaking(ch) {
		return nil
	}
	return s.RegisterBreaking(ch)
}

func ensureSignature(s *charstream.Stream, seq string) error {
	if s.HasSignature(seq) {
		return nil
	}
	return s.RegisterSignature(seq)
}
