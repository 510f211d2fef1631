package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"kielo/internal/driver"
	"kielo/internal/project"
	runtimeembed "kielo/runtime"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.ki|dir]",
	Short: "Compile kielo sources to x86-64 assembly",
	Long: `Build compiles sources to GNU-syntax assembly.

With a file argument the result goes next to the file (or to --output).
With a directory argument every *.ki file under it is compiled in
parallel. With no argument the nearest kielo.toml decides what to
build.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output path (single-file builds only)")
	buildCmd.Flags().Int("jobs", 0, "max parallel compilations (0 = one per CPU)")
	buildCmd.Flags().Bool("no-cache", false, "bypass the build cache")
	buildCmd.Flags().Bool("runtime", false, "also write the runtime assembly (stdlib.s) next to the output")
}

// writeRuntime drops the embedded runtime next to the compiled output
// so `as`+`ld` can link the program without libc.
func writeRuntime(outputDir string) (string, error) {
	path := filepath.Join(outputDir, "stdlib.s")
	if err := os.WriteFile(path, runtimeembed.StdlibSource(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func newCompiler(cmd *cobra.Command) (*driver.Compiler, error) {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}
	if noCache {
		return driver.NewCompiler(nil), nil
	}
	cache, err := driver.OpenDiskCache("kielo")
	if err != nil {
		// A broken cache dir should not stop a build.
		return driver.NewCompiler(nil), nil
	}
	return driver.NewCompiler(cache), nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	compiler, err := newCompiler(cmd)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	// No argument: build the project the manifest describes.
	if len(args) == 0 {
		manifestPath, ok, err := project.Find(".")
		if err != nil {
			return reportError(cmd, "", err)
		}
		if !ok {
			return reportError(cmd, "", fmt.Errorf("no %s found; pass a file or run 'kielo init'", project.ManifestName))
		}
		manifest, err := project.Load(manifestPath)
		if err != nil {
			return reportError(cmd, "", err)
		}
		root := filepath.Dir(manifestPath)
		entry := filepath.Join(root, manifest.Entry)
		if output == "" {
			output = filepath.Join(root, manifest.Output)
		}
		return buildFile(cmd, compiler, entry, output)
	}

	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return reportError(cmd, "", err)
	}
	if !info.IsDir() {
		if output == "" {
			output = strings.TrimSuffix(target, filepath.Ext(target)) + ".s"
		}
		return buildFile(cmd, compiler, target, output)
	}

	if output != "" {
		return reportError(cmd, "", fmt.Errorf("--output cannot be used with a directory"))
	}
	return buildDir(cmd, compiler, target)
}

func buildFile(cmd *cobra.Command, compiler *driver.Compiler, path, output string) error {
	src, err := readSourceFile(path)
	if err != nil {
		return reportError(cmd, "", err)
	}
	asm, err := compiler.Build(src)
	if err != nil {
		return reportError(cmd, path, err)
	}
	if err := os.WriteFile(output, []byte(asm), 0o644); err != nil {
		return reportError(cmd, "", err)
	}
	fmt.Printf("wrote %s\n", output)
	if withRuntime, _ := cmd.Flags().GetBool("runtime"); withRuntime {
		rt, err := writeRuntime(filepath.Dir(output))
		if err != nil {
			return reportError(cmd, "", err)
		}
		fmt.Printf("wrote %s\n", rt)
	}
	return nil
}

func buildDir(cmd *cobra.Command, compiler *driver.Compiler, dir string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	results, err := compiler.BuildDir(context.Background(), dir, jobs)
	if err != nil {
		return reportError(cmd, "", err)
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			_ = reportError(cmd, res.Path, res.Err)
			continue
		}
		output := strings.TrimSuffix(res.Path, filepath.Ext(res.Path)) + ".s"
		if err := os.WriteFile(output, []byte(res.Assembly), 0o644); err != nil {
			return reportError(cmd, "", err)
		}
		fmt.Printf("wrote %s\n", output)
	}
	if withRuntime, _ := cmd.Flags().GetBool("runtime"); withRuntime {
		rt, err := writeRuntime(dir)
		if err != nil {
			return reportError(cmd, "", err)
		}
		fmt.Printf("wrote %s\n", rt)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
