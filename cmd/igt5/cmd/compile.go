package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/serialize"
)

var (
	compileProjectFile string
	compileOutput      string
	compileFormat      string
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Run the full tokenize/parse/build/pipeline stage and write the result",
	Long: `compile drives the same tokenize -> parse -> build -> pipeline
sequence the compile_file instruction runs, against a file given on the
command line, and writes the resulting data tree to -o (default derived
from the input name) in the format selected by -f (data/json/yaml,
default data).`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileProjectFile, "project", "p", "compiler.data", "project file to load")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: input with its extension replaced)")
	compileCmd.Flags().StringVarP(&compileFormat, "format", "f", "data", "output format: data, json, or yaml")
	rootCmd.AddCommand(compileCmd)
}

func defaultOutputName(input, extension string) string {
	trimmed := strings.TrimSuffix(input, filepath.Ext(input))
	return trimmed + extension
}

func runCompile(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]

	project, err := loadProject(compileProjectFile)
	if err != nil {
		displayError(nil, err)
	}
	compiler, ok := project.(data.Map)
	if !ok {
		exitWithError("project file does not contain a compiler configuration map")
	}

	sc := &sourceCompiler{eng: newEngine()}
	context := data.Data(data.NewMap())
	result, err := sc.CompileFile(compiler, sourcePath, context)
	if err != nil {
		displayError(project, err)
	}

	output := compileOutput
	if output == "" {
		switch compileFormat {
		case "json":
			output = defaultOutputName(sourcePath, ".json")
		case "yaml":
			output = defaultOutputName(sourcePath, ".yaml")
		default:
			output = defaultOutputName(sourcePath, ".data")
		}
	}

	var text string
	switch compileFormat {
	case "json":
		text, err = serialize.DataToJSON(result)
	case "yaml":
		text, err = serialize.DataToYAML(result)
	default:
		text, err = serialize.EncodeMap(result)
	}
	if err != nil {
		displayError(project, err)
	}

	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		displayError(project, err)
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}
