package main

import (
	"os"

	"github.com/spf13/cobra"

	"kielo/internal/diagfmt"
	"kielo/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.ki",
	Short: "Parse a kielo source file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := readSourceFile(path)
	if err != nil {
		return reportError(cmd, "", err)
	}
	root, err := driver.Parse(src)
	if err != nil {
		return reportError(cmd, path, err)
	}
	return diagfmt.FormatAST(os.Stdout, root)
}
