package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"todomvc/pkg/keymaps"
	"todomvc/pkg/model"
	"todomvc/pkg/utils"
)

// EnvPrefix prefixes every environment override, e.g. TODOMVC_BACKEND
const EnvPrefix = "TODOMVC"

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

const (
	PolicyNone    = "none"
	PolicyDefault = "default"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the application configuration
type Config struct {
	Backend         string            `mapstructure:"backend"`
	Database        string            `mapstructure:"database"`
	MaxCategories   int               `mapstructure:"max_categories"`
	IDOffset        int               `mapstructure:"id_offset"`
	InvalidPriority string            `mapstructure:"invalid_priority"`
	DefaultPriority string            `mapstructure:"default_priority"`
	LogFile         string            `mapstructure:"log_file"`
	KeyMap          map[string]string `mapstructure:"keymap"`
	Styles          Styles            `mapstructure:"styles"`
}

// Styles holds the application colors
type Styles struct {
	// UI element colors
	BorderColor string `mapstructure:"border_color"`
	AccentColor string `mapstructure:"accent_color"`

	// Text colors
	NormalTextColor   string `mapstructure:"normal_text_color"`
	SelectedTextColor string `mapstructure:"selected_text_color"`
	SelectedBgColor   string `mapstructure:"selected_bg_color"`
	ErrorColor        string `mapstructure:"error_color"`
	DoneColor         string `mapstructure:"done_color"`

	// Task attribute colors
	CategoryColor string `mapstructure:"category_color"`
	PriorityColor string `mapstructure:"priority_color"`
}

// DefaultStyles are the colors used when the config does not set them
func DefaultStyles() Styles {
	return Styles{
		BorderColor:       "240",
		AccentColor:       "205",
		NormalTextColor:   "86",
		SelectedTextColor: "229",
		SelectedBgColor:   "57",
		ErrorColor:        "9",
		DoneColor:         "242",
		CategoryColor:     "2",
		PriorityColor:     "4",
	}
}

// Default returns the configuration used when nothing is configured
func Default() Config {
	return Config{
		Backend:         BackendMemory,
		MaxCategories:   model.DefaultMaxCategories,
		IDOffset:        10000,
		InvalidPriority: PolicyNone,
		DefaultPriority: string(model.PriorityMedium),
		KeyMap:          keymaps.GetDefaultKeyMappings(),
		Styles:          DefaultStyles(),
	}
}

// DefaultPath is ~/.config/todomvc/config.json
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "todomvc", "config.json"), nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("backend", cfg.Backend)
	v.SetDefault("database", cfg.Database)
	v.SetDefault("max_categories", cfg.MaxCategories)
	v.SetDefault("id_offset", cfg.IDOffset)
	v.SetDefault("invalid_priority", cfg.InvalidPriority)
	v.SetDefault("default_priority", cfg.DefaultPriority)
	v.SetDefault("log_file", cfg.LogFile)
	for action, keys := range cfg.KeyMap {
		v.SetDefault("keymap."+action, keys)
	}

	v.SetDefault("styles.border_color", cfg.Styles.BorderColor)
	v.SetDefault("styles.accent_color", cfg.Styles.AccentColor)
	v.SetDefault("styles.normal_text_color", cfg.Styles.NormalTextColor)
	v.SetDefault("styles.selected_text_color", cfg.Styles.SelectedTextColor)
	v.SetDefault("styles.selected_bg_color", cfg.Styles.SelectedBgColor)
	v.SetDefault("styles.error_color", cfg.Styles.ErrorColor)
	v.SetDefault("styles.done_color", cfg.Styles.DoneColor)
	v.SetDefault("styles.category_color", cfg.Styles.CategoryColor)
	v.SetDefault("styles.priority_color", cfg.Styles.PriorityColor)
}

// Load reads the configuration. Values come, in increasing precedence,
// from the defaults, the JSON file at configPath (or DefaultPath), a .env
// file in the working directory and TODOMVC_* environment variables. A
// missing config file is created with the defaults.
func Load(configPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	if configPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, fmt.Errorf("locating config: %w", err)
		}
		configPath = p
	}

	v := viper.New()
	setDefaults(v, Default())
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config %s: %w", configPath, err)
		}
		// first run: leave a config file with the defaults behind
		if err := writeDefaults(v, configPath); err != nil {
			utils.Log("could not write default config", "path", configPath, "error", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func writeDefaults(v *viper.Viper, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return v.WriteConfigAs(path)
}

// Validate reports the first setting that cannot work
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("%w: backend %q (want %s or %s)", ErrInvalidConfig, c.Backend, BackendMemory, BackendSQLite)
	}
	if c.MaxCategories <= 0 {
		return fmt.Errorf("%w: max_categories must be positive, got %d", ErrInvalidConfig, c.MaxCategories)
	}
	if c.IDOffset < 0 {
		return fmt.Errorf("%w: id_offset must not be negative, got %d", ErrInvalidConfig, c.IDOffset)
	}
	switch c.InvalidPriority {
	case PolicyNone, PolicyDefault:
	default:
		return fmt.Errorf("%w: invalid_priority %q (want %s or %s)", ErrInvalidConfig, c.InvalidPriority, PolicyNone, PolicyDefault)
	}
	if !model.Priority(c.DefaultPriority).Valid() {
		return fmt.Errorf("%w: default_priority %q", ErrInvalidConfig, c.DefaultPriority)
	}
	return nil
}

// PriorityPolicy maps invalid_priority onto the service setting
func (c Config) PriorityPolicy() model.PriorityPolicy {
	if c.InvalidPriority == PolicyDefault {
		return model.InvalidPriorityDefault
	}
	return model.InvalidPriorityNone
}
