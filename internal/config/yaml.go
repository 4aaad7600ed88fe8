package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/davetashner/wsinfo/internal/jsonfile"
	"github.com/davetashner/wsinfo/internal/testable"
)

// Load reads the .wsinfo.yaml file from dir.
// If the file does not exist, it returns a zero-value Config and nil error.
func Load(fsys testable.FileSystem, dir string) (*Config, error) {
	return loadFile(fsys, filepath.Join(dir, FileName))
}

// LoadNearest reads the .wsinfo.yaml closest to dir, searching dir and then
// each of its ancestors. An empty dir means the working directory. It also
// returns the path of the file it read, or "" with a zero-value Config when
// no ancestor has one.
func LoadNearest(fsys testable.FileSystem, dir string) (*Config, string, error) {
	if dir == "" {
		wd, err := fsys.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("working directory: %w", err)
		}
		dir = wd
	}

	cur := jsonfile.RealPath(fsys, dir)
	for {
		path := filepath.Join(cur, FileName)
		if info, err := fsys.Stat(path); err == nil && !info.IsDir() {
			cfg, err := loadFile(fsys, path)
			return cfg, path, err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return &Config{}, "", nil
		}
		cur = parent
	}
}

func loadFile(fsys testable.FileSystem, path string) (*Config, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Write marshals the config to YAML and writes it to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(cfg)
}
