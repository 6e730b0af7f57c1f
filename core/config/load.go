package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the settings from the directory. Missing settings files aren't
// an error, the defaults are used instead.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	// If given the path to the settings file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	out := Default(fsys, path)

	configContents, err := afero.ReadFile(fsys, filepath.Join(path, ConfigurationName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return out, nil
	case err != nil:
		return nil, err
	}

	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}

	return out, nil
}

// Initialize writes the default settings file to the directory if one doesn't
// already exist.
func Initialize(fsys afero.Fs, path string, logger *log.Logger) error {
	configPath := filepath.Join(path, ConfigurationName)

	exists, err := afero.Exists(fsys, configPath)
	switch {
	case err != nil:
		return err
	case exists:
		logger.Printf("Settings already exist at %s, leaving them alone\n", configPath)
		return nil
	}

	logger.Printf("Writing default settings to %s\n", configPath)
	if err := fsys.MkdirAll(path, 0700); err != nil {
		return err
	}
	return afero.WriteFile(fsys, configPath, defaultConfigData, os.FileMode(0600))
}
