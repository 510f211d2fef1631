package main

import (
	"os"

	"github.com/spf13/cobra"

	"kielo/internal/diagfmt"
	"kielo/internal/driver"
)

var irCmd = &cobra.Command{
	Use:   "ir [flags] file.ki",
	Short: "Lower a kielo source file to IR and print the listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runIR,
}

func runIR(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := readSourceFile(path)
	if err != nil {
		return reportError(cmd, "", err)
	}
	instrs, err := driver.LowerIR(src)
	if err != nil {
		return reportError(cmd, path, err)
	}
	return diagfmt.FormatIR(os.Stdout, instrs)
}
