// Package config provides configuration management for may using koanf.
// Values are loaded with priority: environment variables (MAY_ prefix) >
// project config (.maylang.yml) > defaults. The project file doubles as
// the home of the project version field rewritten by `may version --bump`.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	goyaml "gopkg.in/yaml.v3"
)

// Configuration holds the defaults the check/new commands start from.
// CLI flags override any of these per invocation.
type Configuration struct {
	// Dir is the directory holding change packages.
	Dir string `koanf:"dir"`
	// Require is the default requirement mode: "always" or "changed".
	Require string `koanf:"require"`
	// Base is the default git base ref for changed mode.
	Base string `koanf:"base"`
	// Paths is a comma-separated list of watched path prefixes.
	Paths string `koanf:"paths"`
	// EnforceDiff requires diff evidence in the Patch section.
	EnforceDiff bool `koanf:"enforce_diff"`
	// Version is the project version, bumped by `may version --bump`.
	Version string `koanf:"version"`
}

// PathPrefixes splits the comma-separated Paths value, dropping empties.
func (c *Configuration) PathPrefixes() []string {
	var out []string
	for _, p := range strings.Split(c.Paths, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// defaults are the built-in configuration values.
func defaults() map[string]any {
	return map[string]any{
		"dir":          "maylang",
		"require":      "always",
		"base":         "",
		"paths":        "",
		"enforce_diff": false,
	}
}

// Load loads configuration from defaults, the project file, and the
// environment. projectPath overrides the project config location; when
// empty the nearest .maylang.yml above the working directory is used, and
// a missing file is not an error (defaults apply).
func Load(projectPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		_ = k.Set(key, value)
	}

	path := projectPath
	if path == "" {
		path, _ = FindProjectConfig("")
	}
	if path != "" && fileExists(path) {
		if err := validateYAMLSyntax(path); err != nil {
			return nil, fmt.Errorf("validating %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading project config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("MAY_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := validateValues(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateValues rejects settings the commands cannot act on.
func validateValues(cfg *Configuration) error {
	switch cfg.Require {
	case "always", "changed":
	default:
		return fmt.Errorf("invalid require mode %q in config (valid modes: always, changed)", cfg.Require)
	}
	if strings.ContainsAny(cfg.Dir, " \t") || cfg.Dir == "" {
		return fmt.Errorf("invalid dir %q in config", cfg.Dir)
	}
	return nil
}

// validateYAMLSyntax streams through the file with a YAML decoder so a
// malformed project config fails with line information instead of a
// half-loaded key set.
func validateYAMLSyntax(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := goyaml.NewDecoder(f)
	for {
		var n goyaml.Node
		if err := dec.Decode(&n); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// envTransform converts environment variable names to config keys.
// Example: MAY_ENFORCE_DIFF -> enforce_diff.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "MAY_"))
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
