package cmd

import (
	"strings"

	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/ioadapters"
	"github.com/vE5li/igt5/internal/serialize"
)

// loadProject reads a compiler configuration from path. §6.1 only names
// the native `read_map` text format, but SPEC_FULL.md's ambient stack
// additionally accepts YAML/JSON compiler configs (wired via
// internal/serialize's goccy/go-yaml and tidwall/gjson+sjson bridges),
// selected by file extension.
func loadProject(path string) (data.Data, error) {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		content, err := ioadapters.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return serialize.DataFromYAML(content)
	case strings.HasSuffix(path, ".json"):
		content, err := ioadapters.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return serialize.DataFromJSON(content)
	default:
		return ioadapters.ReadMap(path)
	}
}
