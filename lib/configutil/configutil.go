// Package configutil reads json5 configuration files, layering an
// optional "<name>.local.<ext>" override file on top of the base file.
// Local overrides stay out of version control so every checkout can
// point at its own endpoints.
package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// ReadConfig reads the named file and merges "<name>.local.<ext>" over
// it when present, override fields winning. When neither file exists it
// returns os.ErrNotExist so callers can decide whether running on
// defaults is acceptable.
func ReadConfig[T any](name string) (T, error) {
	var out T

	foundBase, err := decodeFile(name, &out)
	if err != nil {
		return out, err
	}

	localPath := localOverridePath(name)
	var override T
	foundLocal, err := decodeFile(localPath, &override)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, fmt.Errorf("merge %s: %w", localPath, err)
		}
		slog.Info("merging config with local overrides", "local", localPath)
	}

	if !foundBase && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively walks up from the working directory to the filesystem
// root looking for the named config file, so services can run from any
// subdirectory of a checkout.
func ReadRecursively[T any](name string) (T, error) {
	var out T

	dir, err := os.Getwd()
	if err != nil {
		return out, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(dir, name))
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return out, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return out, os.ErrNotExist
		}
		dir = parent
	}
}

func localOverridePath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// decodeFile reports whether the file carried any content. An absent or
// empty file is not an error, the caller decides whether some file was
// required.
func decodeFile[T any](path string, out *T) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}

	err = json5.Unmarshal(data, out)
	if err != nil {
		return true, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}
