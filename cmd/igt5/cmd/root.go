package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "igt5 [options] [function-arguments...]",
	Short: "A self-describing, configuration-driven compiler toolkit",
	Long: `igt5 builds compilers out of data rather than code: a "compiler
configuration" declares a tokenizer, a set of parse templates, a pipeline
of transformation passes and a library of functions written in igt5's own
instruction language. Given source text and such a configuration, igt5
produces a transformed data tree.

Run with no subcommand to execute a project the way a compiled program
would: load the project file's function.main and invoke it with the
remaining arguments (see -h below for the exact flag surface). The
run/lex/parse/compile/inspect subcommands expose the individual pipeline
stages for debugging.`,
	Version:            Version,
	DisableFlagParsing: true,
	RunE:               runDefault,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

// runDefault implements §6.1's literal CLI surface: -h/-a/-d/-p are
// parsed by hand (DisableFlagParsing is set above) because pflag has no
// way to express "-a swallows every remaining argument as function
// parameters" natively. Cobra's own command-tree matching still takes
// precedence over this default when the first argument names a
// registered subcommand (run/lex/parse/compile/inspect/version).
func runDefault(cmd *cobra.Command, args []string) error {
	projectFile := "compiler.data"
	directory := ""
	stopParsing := false
	var functionArguments []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if stopParsing {
			functionArguments = append(functionArguments, arg)
			continue
		}

		switch {
		case arg == "-h":
			return cmd.Help()
		case arg == "-a":
			stopParsing = true
		case arg == "-d":
			i++
			if i >= len(args) {
				exitWithError("-d requires a directory argument")
			}
			directory = args[i]
		case arg == "-p":
			i++
			if i >= len(args) {
				exitWithError("-p requires a file argument")
			}
			projectFile = args[i]
		case strings.HasPrefix(arg, "-"):
			exitWithError("unknown flag: %s", arg)
		default:
			functionArguments = append(functionArguments, arg)
		}
	}

	if directory != "" {
		if err := os.Chdir(directory); err != nil {
			displayError(nil, err)
		}
	}

	project, err := loadProject(projectFile)
	if err != nil {
		displayError(nil, err)
	}

	eng := newEngine()
	if _, err := invokeMain(eng, project, functionArguments); err != nil {
		displayError(project, err)
	}
	return nil
}
