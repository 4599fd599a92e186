package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pema",
	Short: "Match text against a parsing expression grammar",
	Long: `pema compiles a parsing expression grammar into an instruction program
and runs the program against an input text on a backtracking parsing
machine. Grammars are described as JSON operator trees.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
