package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/ioadapters"
	"github.com/vE5li/igt5/internal/tokenizer"
)

var (
	lexProjectFile string
	lexExpr        string
	lexShowPos     bool
	lexOnlyErrors  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize source text against a project's tokenizer configuration",
	Long: `lex runs only the tokenizer stage: it loads a project's compiler
configuration, tokenizes the given file (or -e EXPR, or stdin when
neither is given), and prints the resulting tokens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	lexCmd.Flags().StringVarP(&lexProjectFile, "project", "p", "compiler.data", "project file to load")
	lexCmd.Flags().StringVarP(&lexExpr, "eval", "e", "", "tokenize this string instead of a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "print each token's source position")
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "suppress token output, report only tokenizer errors")
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	project, err := loadProject(lexProjectFile)
	if err != nil {
		displayError(nil, err)
	}
	compiler, ok := project.(data.Map)
	if !ok {
		exitWithError("project file does not contain a compiler configuration map")
	}

	var source, file string
	switch {
	case lexExpr != "":
		source = lexExpr
	case len(args) == 1:
		file = args[0]
		source, err = ioadapters.ReadFile(file)
		if err != nil {
			displayError(project, err)
		}
	default:
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			displayError(project, err)
		}
		source = string(raw)
	}

	noteHandler := func(keyword, rest string) { fmt.Fprintf(os.Stderr, "%s %s\n", keyword, rest) }
	config, err := tokenizer.Configure(compiler, noteHandler)
	if err != nil {
		displayError(project, err)
	}

	tokens, _, err := config.Tokenize(source, file)
	if err != nil {
		displayError(project, err)
	}
	if lexOnlyErrors {
		return nil
	}

	for _, tok := range tokens {
		if lexShowPos {
			fmt.Printf("%-40s %s\n", tok.String(), tok.Position())
		} else {
			fmt.Println(tok.String())
		}
	}
	return nil
}
