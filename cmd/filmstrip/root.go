package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "filmstrip",
	Short: "Convert vector-movie tag streams into SVG documents",
	Long: `filmstrip translates a legacy vector-animation container - a tag stream
with a dictionary of reusable characters, a main timeline, nested sprites,
per-frame scripts, buttons, bitmaps, and streaming audio - into a
self-contained animated SVG document.`,
}

// execute runs the root command, printing any error to stderr and exiting
// non-zero on failure.
func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
