package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/ioadapters"
	"github.com/vE5li/igt5/internal/parser"
	"github.com/vE5li/igt5/internal/template"
	"github.com/vE5li/igt5/internal/tokenizer"
)

var (
	parseProjectFile string
	parseExpr        string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Tokenize and parse source text, printing the resulting decision stream",
	Long: `parse runs the tokenizer and parser stages without building: it
loads a project's compiler configuration, tokenizes and parses the given
file (or -e EXPR, or stdin), and prints the committed template decisions
(§4.5) in order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseProjectFile, "project", "p", "compiler.data", "project file to load")
	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "parse this string instead of a file")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	project, err := loadProject(parseProjectFile)
	if err != nil {
		displayError(nil, err)
	}
	compiler, ok := project.(data.Map)
	if !ok {
		exitWithError("project file does not contain a compiler configuration map")
	}

	var source, file string
	switch {
	case parseExpr != "":
		source = parseExpr
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
	tokens, registry, err := config.Tokenize(source, file)
	if err != nil {
		displayError(project, err)
	}

	templates, err := template.Load(compiler, registry)
	if err != nil {
		displayError(project, err)
	}
	filtered := tokenizer.FilterComments(tokens)
	decisions, err := parser.New(filtered, templates, registry).Parse()
	if err != nil {
		displayError(project, err)
	}

	for _, decision := range decisions {
		switch decision.Kind {
		case template.DecisionTemplate:
			fmt.Printf("%-10s %s\n", decision.Kind, decision.Template)
		case template.DecisionFilter, template.DecisionFlavor:
			fmt.Printf("%-10s %d\n", decision.Kind, decision.Index)
		default:
			fmt.Println(decision.Kind)
		}
	}
	return nil
}
