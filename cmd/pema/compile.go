package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sudare9/pema/machine"
	"github.com/sudare9/pema/spec"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a grammar into an instruction program and print its listing",
		Example: `  pema compile grammar.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	prog, err := compileGrammar(args)
	if err != nil {
		return err
	}

	w := os.Stdout
	if *compileFlags.output != "" {
		f, err := os.Create(*compileFlags.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	fmt.Fprintf(w, "start: %v\n", prog.Start())
	fmt.Fprint(w, prog.Listing())

	return nil
}

func compileGrammar(args []string) (*machine.Program, error) {
	src := os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}
	desc, err := spec.ReadGrammar(src)
	if err != nil {
		return nil, err
	}
	g, err := desc.ToGrammar()
	if err != nil {
		return nil, err
	}
	return machine.Compile(g)
}
