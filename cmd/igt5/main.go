// Command igt5 is the CLI front end for the compiler toolkit: it loads a
// compiler configuration and either runs it end to end or exposes one of
// its individual stages (lex/parse/compile/inspect) for debugging.
package main

import (
	"fmt"
	"os"

	"github.com/vE5li/igt5/cmd/igt5/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
