package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BuildDirResult holds the outcome for one source file. Failures are
// recorded per file rather than aborting the whole directory.
type BuildDirResult struct {
	Path     string
	Assembly string
	Err      error
}

// listSourceFiles returns every *.ki file under dir, sorted for a
// deterministic result order.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".ki") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// BuildDir compiles every *.ki file under dir, at most jobs files at a
// time (jobs <= 0 means one per CPU). Results are index-aligned with
// the sorted file list, so no locking is needed.
func (c *Compiler) BuildDir(ctx context.Context, dir string, jobs int) ([]BuildDirResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]BuildDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			src, err := readSource(path)
			if err != nil {
				results[i] = BuildDirResult{Path: path, Err: err}
				return nil
			}
			asm, err := c.Build(src)
			results[i] = BuildDirResult{Path: path, Assembly: asm, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
