package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"kielo/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new kielo project",
	Long: `Initialize a new kielo project by creating a project manifest (kielo.toml)
and a starter entry point (main.ki). With no argument the current
directory is initialized; a non-existing name creates a directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return reportError(cmd, "", err)
	}

	name := filepath.Base(abs)
	if name == "." || name == string(filepath.Separator) {
		name = "kielo-project"
	}
	if err := project.Init(abs, name); err != nil {
		return reportError(cmd, "", err)
	}

	fmt.Printf("created %s\n", filepath.Join(abs, project.ManifestName))
	fmt.Printf("created %s\n", filepath.Join(abs, "main.ki"))
	return nil
}
