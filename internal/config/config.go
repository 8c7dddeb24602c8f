package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the application configuration.
type Config struct {
	DataDir  string `koanf:"data_dir"`
	DBPath   string `koanf:"db_path"`
	Language string `koanf:"language"` // "en" | "zh", summaries only
	Debug    bool   `koanf:"debug"`

	Autosave struct {
		Enabled  bool   `koanf:"enabled"`
		Schedule string `koanf:"schedule"`
	} `koanf:"autosave"`

	FileSync struct {
		Enabled bool `koanf:"enabled"`
	} `koanf:"file_sync"`
}

// Load reads configuration from defaults, an optional TOML file and
// LESSONFORGE_-prefixed environment variables, in that precedence.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	homeDir, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(homeDir, ".local", "share", "lessonforge")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"data_dir":          defaultDataDir,
		"db_path":           filepath.Join(defaultDataDir, "lessonforge.db"),
		"language":          "en",
		"debug":             false,
		"autosave.enabled":  true,
		"autosave.schedule": "@every 30s",
		"file_sync.enabled": true,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
	} else {
		for _, path := range []string{"./lessonforge.toml", filepath.Join(homeDir, ".lessonforge.toml")} {
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	if err := k.Load(env.Provider("LESSONFORGE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "LESSONFORGE_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the loaded configuration.
func Validate(cfg *Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if cfg.Language != "en" && cfg.Language != "zh" {
		return fmt.Errorf("language must be \"en\" or \"zh\", got %q", cfg.Language)
	}
	return nil
}
