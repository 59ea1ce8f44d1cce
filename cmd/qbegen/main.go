// Command qbegen is a thin, non-core driver over the backend library:
// it reads a YAML fixture describing a tiny typed C translation unit
// (pkg/cast's ModuleSpec) and streams pkg/fixturegen's lowering of it
// straight to stdout via pkg/emit. It exists only to exercise the
// library end to end; a real front end never goes through this command.
package main

import (
	"fmt"
	"os"

	"github.com/pan0cc/qbegen/cmd/qbegen/internal/app"
)

var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := app.NewRootCmd(os.Stdout, os.Stderr, version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
