// Package config loads convlint.toml and merges it with command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"convlint/internal/lintlevel"
)

// FileName is the manifest searched for from the working directory upwards.
const FileName = "convlint.toml"

// ErrNotFound is returned by Find when no manifest exists up to the root.
var ErrNotFound = errors.New("no " + FileName + " found")

type Config struct {
	Lint   LintConfig   `toml:"lint"`
	Files  FilesConfig  `toml:"files"`
	Output OutputConfig `toml:"output"`

	// Path is where the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type LintConfig struct {
	Acronyms     string            `toml:"acronyms"`
	Frontend     string            `toml:"frontend"`
	DenyWarnings bool              `toml:"deny-warnings"`
	Levels       map[string]string `toml:"levels"`
}

type FilesConfig struct {
	Include   []string `toml:"include"`
	Exclude   []string `toml:"exclude"`
	Gitignore bool     `toml:"gitignore"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

func Default() Config {
	return Config{
		Lint: LintConfig{
			Acronyms: "preserve",
			Frontend: "native",
			Levels:   map[string]string{},
		},
		Files: FilesConfig{
			Include:   []string{"**/*.rs"},
			Exclude:   []string{"target/**"},
			Gitignore: true,
		},
		Output: OutputConfig{Format: "pretty", Color: "auto"},
	}
}

// Find walks up from startDir to locate convlint.toml.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load decodes path over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest manifest, falling back to defaults.
func Discover(startDir string) (Config, error) {
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

func (c Config) Validate() error {
	switch c.Lint.Acronyms {
	case "preserve", "fold":
	default:
		return fmt.Errorf("[lint].acronyms: expected preserve or fold, got %q", c.Lint.Acronyms)
	}
	switch c.Lint.Frontend {
	case "native", "tree-sitter":
	default:
		return fmt.Errorf("[lint].frontend: expected native or tree-sitter, got %q", c.Lint.Frontend)
	}
	switch c.Output.Format {
	case "pretty", "short", "json", "sarif":
	default:
		return fmt.Errorf("[output].format: unknown format %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color: expected auto, on or off, got %q", c.Output.Color)
	}
	_, err := c.Settings()
	return err
}

// Settings converts [lint.levels] into resolver settings, sorted by lint
// name so the result does not depend on map order.
func (c Config) Settings() ([]lintlevel.Setting, error) {
	names := make([]string, 0, len(c.Lint.Levels))
	for name := range c.Lint.Levels {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]lintlevel.Setting, 0, len(names))
	where := c.Path
	if where == "" {
		where = FileName
	}
	for _, name := range names {
		lvl, ok := lintlevel.ParseLevel(c.Lint.Levels[name])
		if !ok {
			return nil, fmt.Errorf("[lint.levels].%s: unknown level %q", name, c.Lint.Levels[name])
		}
		out = append(out, lintlevel.Setting{
			Lint:  lintlevel.Canonical(name),
			Level: lvl,
			Kind:  lintlevel.SourceConfig,
			Flag:  where,
		})
	}
	return out, nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const templateHeader = `# convlint configuration.
#
# [lint].acronyms   preserve | fold
# [lint].frontend   native | tree-sitter
# [lint.levels]     allow | warn | deny | forbid per lint or group
# [output].format   pretty | short | json | sarif
# [output].color    auto | on | off

`

// Template is the file written by "convlint init".
func Template() ([]byte, error) {
	cfg := Default()
	cfg.Lint.Levels = map[string]string{lintlevel.NonCamelCaseTypes: "warn"}
	body, err := cfg.Encode()
	if err != nil {
		return nil, err
	}
	return append([]byte(templateHeader), body...), nil
}

// WriteTemplate creates dir/convlint.toml, refusing to overwrite.
func WriteTemplate(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	data, err := Template()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
