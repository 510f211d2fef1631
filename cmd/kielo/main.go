package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kielo/internal/diagfmt"
	"kielo/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "kielo",
	Short: "Kielo language compiler and toolchain",
	Long:  `Kielo compiles a small expression language to x86-64 assembly and can run it directly`,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(irCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against whether f is a terminal.
func useColor(cmd *cobra.Command, f *os.File) bool {
	flag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		flag = "auto"
	}
	return flag == "on" || (flag == "auto" && isTerminal(f))
}

// readSourceFile loads one source file as text.
func readSourceFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// reportError prints err in the diagnostic format and passes it back
// so the process exits nonzero. Root has SilenceErrors set, so this is
// the only place errors reach the user.
func reportError(cmd *cobra.Command, path string, err error) error {
	opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr)}
	diagfmt.PrettyError(os.Stderr, path, err, opts)
	return err
}
