package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var parseFlags = struct {
	text   *string
	source *string
	pos    *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse grammar",
		Short:   "Match a text against a grammar and print the result",
		Example: `  pema parse grammar.json -t "1 + 2"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.text = cmd.Flags().StringP("text", "t", "", "text to match")
	parseFlags.source = cmd.Flags().String("source", "", "file containing the text to match (default stdin)")
	parseFlags.pos = cmd.Flags().Int("pos", 0, "byte position to start matching at")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	prog, err := compileGrammar(args)
	if err != nil {
		return err
	}

	text := *parseFlags.text
	if !cmd.Flags().Changed("text") {
		var src io.Reader = os.Stdin
		if *parseFlags.source != "" {
			f, err := os.Open(*parseFlags.source)
			if err != nil {
				return err
			}
			defer f.Close()
			src = f
		}
		b, err := io.ReadAll(src)
		if err != nil {
			return err
		}
		text = string(b)
	}

	m, err := prog.Match(text, *parseFlags.pos)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("not matched")
	}

	result := struct {
		Pos    int            `json:"pos"`
		End    int            `json:"end"`
		Text   string         `json:"text"`
		Args   []any          `json:"args"`
		Kwargs map[string]any `json:"kwargs"`
	}{
		Pos:    m.Pos(),
		End:    m.End(),
		Text:   m.Text(),
		Args:   m.Groups(),
		Kwargs: m.GroupDict(),
	}
	if result.Args == nil {
		result.Args = []any{}
	}
	out, err := json.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))

	return nil
}
