// Command deckforge builds PowerPoint decks from a topic, a document, a web
// page or a saved outline, and can serve the same pipeline over HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
