package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notepad/pkg/board"
	"github.com/aretw0/notepad/pkg/view"
)

// ConfigFile is the file name looked up under the user config directory.
const ConfigFile = "config.yaml"

// Config is the user configuration file.
type Config struct {
	File    string        `yaml:"-"`
	Storage StorageConfig `yaml:"storage"`
	Editor  EditorConfig  `yaml:"editor"`
	Display DisplayConfig `yaml:"display"`
}

// StorageConfig selects where and how notes are stored.
type StorageConfig struct {
	Adapter string `yaml:"adapter" default:"fs" validate:"oneof=fs sqlite memory"`
	// Path of the store directory. Empty means the nearest .notepad directory or $HOME/.notepad.
	Path      string `yaml:"path"`
	Format    string `yaml:"format" default:"json" validate:"oneof=json yaml yml"`
	DevSafety bool   `yaml:"dev-safety" default:"true"`
}

// EditorConfig tunes editing behaviour.
type EditorConfig struct {
	Debounce time.Duration `yaml:"debounce" default:"500ms" validate:"gt=0"`
	Insert   string        `yaml:"insert" default:"append" validate:"oneof=append prepend"`
	Watch    bool          `yaml:"watch" default:"true"`
}

// DisplayConfig tunes rendering.
type DisplayConfig struct {
	Order         string `yaml:"order" default:"collection" validate:"oneof=collection newest"`
	MarkdownStyle string `yaml:"markdown-style" default:"auto" validate:"oneof=auto dark light notty"`
	WordWrap      int    `yaml:"word-wrap" default:"80" validate:"gte=20,lte=400"`
}

// DefaultConfigPath returns $UserConfigDir/notepad/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "notepad", ConfigFile), nil
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads the configuration at path, or at DefaultConfigPath when
// path is empty. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	if path == "" {
		if path, err = DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	cfg.File = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (got %v)", f.Namespace(), f.Tag(), f.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options translates the configuration into factory options.
func (c *Config) Options() []Option {
	return []Option{
		WithAdapter(c.Storage.Adapter),
		WithFormat(c.Storage.Format),
		WithDevSafety(c.Storage.DevSafety),
		WithDebounce(c.Editor.Debounce),
		WithInsert(board.InsertMode(c.Editor.Insert)),
		WithWatch(c.Editor.Watch),
		WithOrder(view.Order(c.Display.Order)),
	}
}
