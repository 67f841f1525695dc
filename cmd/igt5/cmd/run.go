package cmd

import (
	"github.com/spf13/cobra"
)

var runProjectFile string

var runCmd = &cobra.Command{
	Use:   "run [function-arguments...]",
	Short: "Load a project and invoke function.main",
	Long: `run loads a compiler configuration (the project file, -p, default
compiler.data) and invokes its function.main with the given arguments,
the same behavior igt5 has when called with no subcommand at all.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runProjectFile, "project", "p", "compiler.data", "project file to load")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, arguments []string) error {
	project, err := loadProject(runProjectFile)
	if err != nil {
		displayError(nil, err)
	}

	eng := newEngine()
	if _, err := invokeMain(eng, project, arguments); err != nil {
		displayError(project, err)
	}
	return nil
}
