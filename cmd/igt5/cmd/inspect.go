package cmd

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/maruel/natural"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/serialize"
)

var (
	inspectPretty bool
	inspectQuery  string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Load a data file and print it, optionally pretty-printed or queried",
	Long: `inspect reads a data file (native/.yaml/.json — any format
loadProject understands) and prints it. --pretty renders it with kr/pretty
instead of the native text format; --query runs a gjson path expression
against a JSON-converted view of the value.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var inspectListCmd = &cobra.Command{
	Use:   "list <file> <key>",
	Short: "List the keys under a map entry in natural sort order",
	Long: `inspect list prints the keyword keys of the map found at <key>
inside <file> (e.g. "template", "function", "method"), sorted with
natural ordering so names like pass2 sort before pass10.`,
	Args: cobra.ExactArgs(2),
	RunE: runInspectList,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectPretty, "pretty", false, "print using kr/pretty instead of the native text format")
	inspectCmd.Flags().StringVar(&inspectQuery, "query", "", "gjson path expression to evaluate against the value")
	inspectCmd.AddCommand(inspectListCmd)
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	value, err := loadProject(args[0])
	if err != nil {
		displayError(nil, err)
	}

	if inspectQuery != "" {
		text, err := serialize.DataToJSON(value)
		if err != nil {
			displayError(value, err)
		}
		result := gjson.Get(text, inspectQuery)
		fmt.Println(result.String())
		return nil
	}

	if inspectPretty {
		fmt.Println(pretty.Sprint(value))
		return nil
	}

	text, err := serialize.EncodeMap(value)
	if err != nil {
		displayError(value, err)
	}
	fmt.Println(text)
	return nil
}

func runInspectList(cmd *cobra.Command, args []string) error {
	value, err := loadProject(args[0])
	if err != nil {
		displayError(nil, err)
	}

	entry, ok := indexKeyword(value, args[1])
	if !ok {
		exitWithError("no entry %q in %s", args[1], args[0])
	}
	table, ok := entry.(data.Map)
	if !ok {
		exitWithError("entry %q is not a map", args[1])
	}

	names := make([]string, 0, table.Len())
	for _, key := range table.Keys().Items() {
		if keyword, ok := key.(data.Keyword); ok {
			names = append(names, string(keyword))
		}
	}
	natural.Sort(names)

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
