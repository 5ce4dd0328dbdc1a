// Command l14ui runs a script that builds a component tree, either headless
// with an optional PNG snapshot or in a fyne window.
package main

import (
	"fmt"
	"os"

	"l14ui/pkg/observability"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

func main() {
	err := newRootCmd().Execute()
	observability.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
