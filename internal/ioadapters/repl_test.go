package ioadapters

import (
	"io"
	"strings"
	"testing"
)

func TestLineReaderReadsLinesInOrder(t *testing.T) {
	reader := NewLineReader(strings.NewReader("first\nsecond\nthird\n"))

	for _, expected := range []string{"first", "second", "third"} {
		line, err := reader.ReadLine()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line != expected {
			t.Fatalf("expected %q, got %q", expected, line)
		}
	}

	if _, err := reader.ReadLine(); err != io.EOF {
		t.Fatalf("expected io.EOF once exhausted, got %v", err)
	}
}

func TestLineReaderEmptyInputIsEOFImmediately(t *testing.T) {
	reader := NewLineReader(strings.NewReader(""))
	if _, err := reader.ReadLine(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
