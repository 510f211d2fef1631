package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kielo/internal/diagfmt"
	"kielo/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.ki",
	Short: "Tokenize a kielo source file",
	Long:  `Tokenize breaks a kielo source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	src, err := readSourceFile(path)
	if err != nil {
		return reportError(cmd, "", err)
	}
	tokens, err := driver.Tokenize(src)
	if err != nil {
		return reportError(cmd, path, err)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, tokens)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return reportError(cmd, "", fmt.Errorf("unknown format: %s", format))
	}
}
