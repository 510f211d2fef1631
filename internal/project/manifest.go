// Package project reads and writes the kielo.toml project manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the manifest file every project root carries.
const ManifestName = "kielo.toml"

// Manifest describes a project's [package] section.
type Manifest struct {
	Name   string
	Entry  string
	Output string
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

type manifestFile struct {
	Package struct {
		Name   string `toml:"name"`
		Entry  string `toml:"entry"`
		Output string `toml:"output"`
	} `toml:"package"`
}

// Load parses a kielo.toml. Entry defaults to main.ki and Output to
// the entry file with its extension replaced by .s.
func Load(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if name == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}

	m := Manifest{
		Name:   name,
		Entry:  strings.TrimSpace(cfg.Package.Entry),
		Output: strings.TrimSpace(cfg.Package.Output),
	}
	if m.Entry == "" {
		m.Entry = "main.ki"
	}
	if m.Output == "" {
		m.Output = strings.TrimSuffix(m.Entry, filepath.Ext(m.Entry)) + ".s"
	}
	return m, nil
}

// Find walks up from startDir to locate the nearest kielo.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindRoot returns the directory containing the nearest kielo.toml.
func FindRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := Find(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

const starterSource = `# Entry point.
var x = read_int();
print_int(x * x);
`

// Init scaffolds a new project: a manifest plus a starter entry file.
// It refuses to overwrite an existing manifest.
func Init(dir, name string) error {
	manifestPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	manifest := fmt.Sprintf("[package]\nname = %q\nentry = \"main.ki\"\n", name)
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		return err
	}

	entryPath := filepath.Join(dir, "main.ki")
	if _, err := os.Stat(entryPath); err == nil {
		return nil
	}
	return os.WriteFile(entryPath, []byte(starterSource), 0o644)
}
