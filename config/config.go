// Package config implements the backend's run-time knobs, collected
// into one struct loadable from YAML via gopkg.in/yaml.v3, the way the
// teacher's CLI collects the same kind of thing into a flat set of
// named debug-dump flags (cmd/ralph-cc/main.go's dParse/dClight/...).
package config

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// EmissionMode selects where the emitter's output goes: straight to
// the destination writer, or buffered in memory first so the caller
// can inspect it (or discard it on error) before anything is written.
type EmissionMode string

const (
	EmitStream EmissionMode = "stream"
	EmitBuffer EmissionMode = "buffer"
)

// BackendConfig is the backend's full set of run-time knobs.
// PointerSize is fixed at 8 (the only target ABI this backend speaks,
// per the same restriction spec.md places on its SSA dialect) and is
// not settable from YAML; it is exported so a caller can report it
// alongside the rest of the configuration.
type BackendConfig struct {
	PointerSize int64        `yaml:"-"`
	Mode        EmissionMode `yaml:"mode,omitempty"`
	DumpSSA     bool         `yaml:"dump_ssa,omitempty"`
	DumpTypes   bool         `yaml:"dump_types,omitempty"`
	DumpCases   bool         `yaml:"dump_cases,omitempty"`
}

// Default returns the backend's baseline configuration: streaming
// emission, no debug dumps.
func Default() BackendConfig {
	return BackendConfig{PointerSize: 8, Mode: EmitStream}
}

// Load decodes a BackendConfig from r, starting from Default so a
// document that only sets one or two fields leaves the rest at their
// defaults.
func Load(r io.Reader) (BackendConfig, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return BackendConfig{}, err
	}
	cfg.PointerSize = 8
	return cfg, nil
}

// LoadFile opens path and decodes a BackendConfig from it.
func LoadFile(path string) (BackendConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return BackendConfig{}, err
	}
	defer f.Close()
	return Load(f)
}
