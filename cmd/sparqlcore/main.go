// Command sparqlcore compiles CUE query fixtures to SPARQL algebra and runs
// conformance scenarios over the literal value model.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/sparqlcore/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()

	// Commands report their own failures before returning an ExitError.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
