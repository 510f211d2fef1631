package main

import (
	"os"

	"github.com/spf13/cobra"

	"kielo/internal/driver"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] file.ki",
	Short: "Run a kielo source file with the interpreter",
	Long:  `Run type-checks a source file and evaluates it directly, reading from stdin and writing to stdout`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := readSourceFile(path)
	if err != nil {
		return reportError(cmd, "", err)
	}
	if _, err := driver.Run(src, os.Stdin, os.Stdout); err != nil {
		return reportError(cmd, path, err)
	}
	return nil
}
