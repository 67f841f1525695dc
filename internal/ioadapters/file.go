// Package ioadapters holds §6's "external collaborator" helpers: plain
// file I/O and the REPL line reader (#system/#silent run in
// internal/engine's runCommand instead). The
// core compiler packages (C1-C8) never import os/exec or the filesystem
// directly; cmd/igt5 wires these functions into an engine.Context so
// internal/engine stays a leaf package (see internal/engine/context.go).
package ioadapters

import (
	"fmt"
	"os"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/serialize"
)

// ReadFile reads a file's raw contents, the #read_file instruction.
// Ported from read_file_raw/read_file in original_source's
// interface/file.rs.
func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", cerrors.MissingFile(path)
	}
	return string(content), nil
}

// WriteFile writes content to a file, the #write_file instruction.
// Ported from write_file_raw/write_file.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	return nil
}

// ReadMap reads a file shaped as bare "key value" pairs (no enclosing
// braces) and decodes it as a Map, the #read_map instruction. Ported from
// read_map, which wraps the raw file text in `{ }` before parsing.
func ReadMap(path string) (data.Data, error) {
	content, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return serialize.DecodeMap(content)
}

// ReadList mirrors ReadMap for the bare-item list file shape, the
// #read_list instruction. Ported from read_list.
func ReadList(path string) (data.Data, error) {
	content, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return serialize.DecodeList(content)
}

// WriteMap encodes a Map one "key value" line per entry and writes it to
// disk, the #write_map instruction. Ported from write_map.
func WriteMap(path string, value data.Data) error {
	content, err := serialize.EncodeMap(value)
	if err != nil {
		return err
	}
	return WriteFile(path, content)
}

// WriteList mirrors WriteMap for lists, the #write_list instruction.
// Ported from write_list.
func WriteList(path string, value data.Data) error {
	content, err := serialize.EncodeList(value)
	if err != nil {
		return err
	}
	return WriteFile(path, content)
}
