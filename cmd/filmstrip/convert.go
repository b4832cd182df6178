package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filmstrip/input"
	"filmstrip/internal/diag"
	"filmstrip/movie"

	"github.com/spf13/cobra"
)

var useJS bool

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert one or more tag-stream files into sibling SVG documents",
	Long: `convert reads each named file as a JSON-encoded tag stream (spec.md §6: the
core assumes a stream of already-parsed records) and writes a sibling file
with its extension changed to .svg.

Exit code is non-zero if any input fails to parse; diagnostics produced
while emitting a document (unsupported tags, too-dynamic scripts, and the
like) are printed as warnings and never fail the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false
		for _, path := range args {
			if err := convertOne(path); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failed = true
			}
		}
		if failed {
			return fmt.Errorf("one or more inputs failed to parse")
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().BoolVar(&useJS, "js", false, "emit scripted-mode SVG with an embedded companion runtime instead of native <animate> elements")
}

func convertOne(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	sink := diag.NewSink()
	m, err := input.Decode(f, sink)
	if err != nil {
		return fmt.Errorf("parsing tag stream: %w", err)
	}

	out, err := m.Build(movie.Config{UseJS: useJS}, sink)
	if err != nil {
		return fmt.Errorf("assembling document: %w", err)
	}

	for _, e := range sink.Entries() {
		fmt.Fprintln(os.Stderr, e.Format())
	}

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".svg"
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
