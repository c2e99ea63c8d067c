package main

import (
	"fmt"
	"io"

	"github.com/phrazzld/deckforge/internal/service"
)

// printResult reports a written deck the way the command line shows it.
func printResult(w io.Writer, res *service.Result) {
	fmt.Fprintf(w, "Presentation saved: %s (%d slides)\n", res.Path, res.Slides)
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}
