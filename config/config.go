// Package config holds the trace checker configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"tracecheck/log"
	"tracecheck/trace"
)

// DefaultStartIndex is the number of leading lines skipped by default, to
// ignore the non comparable prefix (headers, reset sequence) of both logs.
const DefaultStartIndex = 12

type Config struct {
	// StartIndex is the first step compared.
	StartIndex int `toml:"start_index"`

	Emulator  DialectConfig `toml:"emulator"`
	Reference DialectConfig `toml:"reference"`
}

// DialectConfig overrides the layout of a trace dialect.
type DialectConfig struct {
	// FlagMask holds the bits of P cleared before comparison. Nil keeps the
	// dialect default.
	FlagMask *uint8 `toml:"flag_mask,omitempty"`

	// Columns maps field names (pc, a, x, y, p, sp) to [start, end) offsets.
	Columns map[string][]int `toml:"columns,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{StartIndex: DefaultStartIndex}
}

const cfgFilename = "config.toml"

// DefaultPath returns the path of the configuration file in the user
// configuration directory, or an empty string if there's none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tracecheck", cfgFilename)
}

// Load loads the configuration file at path. Settings absent from the file
// keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	for _, key := range md.Undecoded() {
		log.ModConfig.WarnZ("unknown configuration key").
			String("path", path).
			String("key", key.String()).
			End()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the configuration at path, or at DefaultPath if path is
// empty. A missing file at the default path isn't an error and gives the
// default configuration.
func LoadOrDefault(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	cfg, err := Load(path)
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		log.ModConfig.DebugZ("no configuration file, using defaults").String("path", path).End()
		return Default(), nil
	}
	return cfg, err
}

// Encode writes cfg in TOML format to w.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks the configuration values.
func (cfg *Config) Validate() error {
	if cfg.StartIndex < 0 {
		return fmt.Errorf("start_index must not be negative, got %d", cfg.StartIndex)
	}
	_, _, err := cfg.Dialects()
	return err
}

// Dialects returns the emulator and reference dialects, that is the
// predefined layouts with the configuration overrides applied.
func (cfg *Config) Dialects() (emu, ref trace.Dialect, err error) {
	emu, err = cfg.Emulator.apply(trace.Emulator)
	if err != nil {
		return
	}
	ref, err = cfg.Reference.apply(trace.Reference)
	return
}

func (dc *DialectConfig) apply(d trace.Dialect) (trace.Dialect, error) {
	if dc.FlagMask != nil {
		d.FlagMask = *dc.FlagMask
	}

	// Sorted for deterministic error messages.
	names := make([]string, 0, len(dc.Columns))
	for name := range dc.Columns {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f, ok := trace.FieldByName(strings.ToLower(name))
		if !ok {
			return d, fmt.Errorf("%s: unknown field %q", d.Name, name)
		}
		col := dc.Columns[name]
		if len(col) != 2 {
			return d, fmt.Errorf("%s: column %s must be [start, end]", d.Name, name)
		}
		d.Columns[f] = trace.Column{Start: col[0], End: col[1]}
	}

	if err := d.Validate(); err != nil {
		return d, err
	}
	return d, nil
}
