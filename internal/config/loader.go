package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrNotFound is wrapped by Load when the file does not exist.
var ErrNotFound = fs.ErrNotExist

// Load reads, parses and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, ErrRead(path, err)
	}
	return parse(filepath.Base(path), data)
}

// LoadOrDefault is Load, returning the defaults when path is empty or the
// file does not exist.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Parse parses and validates TOML data.
func Parse(data []byte) (Config, error) {
	return parse("<bytes>", data)
}

// ParseReader parses and validates TOML from r.
func ParseReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, ErrRead("<reader>", err)
	}
	return parse("<reader>", data)
}

func parse(source string, data []byte) (Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			line, col := derr.Position()
			return Config{}, ErrParse(source, line, col, err)
		}
		return Config{}, ErrParse(source, 0, 0, err)
	}
	if cfg.Hotkeys.Bindings == nil {
		cfg.Hotkeys.Bindings = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
