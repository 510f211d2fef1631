package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kielo/internal/diagfmt"
	"kielo/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.ki",
	Short: "Type-check a kielo source file",
	Long:  `Check parses and type-checks a source file, printing the typed AST and the program's result type`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("quiet", false, "report errors only, no AST dump")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	src, err := readSourceFile(path)
	if err != nil {
		return reportError(cmd, "", err)
	}
	checked, err := driver.Check(src)
	if err != nil {
		return reportError(cmd, path, err)
	}
	if quiet {
		return nil
	}
	if err := diagfmt.FormatAST(os.Stdout, checked.Root); err != nil {
		return err
	}
	fmt.Printf("program type: %s\n", checked.Type)
	return nil
}
