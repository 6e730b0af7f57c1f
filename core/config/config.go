package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = ".gosh.yaml"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Configuration holds the user's shell settings along with the directory
// they were loaded from.
type Configuration struct {
	configFs  afero.Fs
	configDir string

	HistoryFile string `json:"history_file" validate:"required"`
	HistorySize int    `json:"history_size" validate:"gte=0"`
	RCFile      string `json:"rc_file" validate:"required"`
	Prompt      string `json:"prompt"`
	PromptMode  string `json:"prompt_mode" validate:"oneof=basic reactive"`
	KeyBindings string `json:"key_bindings" validate:"oneof=emacs vi"`
	Color       string `json:"color" validate:"oneof=auto always never"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// Dir returns the directory settings and relative paths are resolved in.
func (c *Configuration) Dir() string {
	return c.configDir
}

func (c *Configuration) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.configDir, name)
}

// HistoryPath returns the path of the history file.
func (c *Configuration) HistoryPath() string {
	return c.resolve(c.HistoryFile)
}

// RCPath returns the path of the startup script.
func (c *Configuration) RCPath() string {
	return c.resolve(c.RCFile)
}

// CheckHistory verifies the history file can be opened for appending,
// creating it if needed.
func (c *Configuration) CheckHistory() error {
	fd, err := c.fs().OpenFile(c.HistoryPath(), os.O_APPEND|os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	return fd.Close()
}

// ReadRC reads the startup script.
func (c *Configuration) ReadRC() ([]byte, error) {
	return afero.ReadFile(c.fs(), c.RCPath())
}

// ReadScript reads a script given on the command line, relative paths are
// resolved against the working directory.
func (c *Configuration) ReadScript(path string) ([]byte, error) {
	return afero.ReadFile(c.fs(), path)
}

// UseColor returns true if output should be colored.
func (c *Configuration) UseColor() bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return !color.NoColor
	}
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the built-in settings rooted at dir.
func Default(fs afero.Fs, dir string) *Configuration {
	out := defaultConfig()
	out.configFs = fs
	out.configDir = dir
	return out
}
