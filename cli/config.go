package cli

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultTokenLength is the token length used when nothing overrides it.
const DefaultTokenLength = 6

// Config holds all configuration options for the CLI.
type Config struct {
	TokenLength int    `yaml:"token_length"`
	Seed        uint64 `yaml:"seed"`

	UseConfig bool `yaml:"-"`
	JSON      bool `yaml:"-"`
	Verbose   bool `yaml:"-"`
}

// ConfigFile represents the structure of .pairid.yaml
type ConfigFile struct {
	TokenLength int    `yaml:"token_length"`
	Seed        uint64 `yaml:"seed"`
}

// loadConfig loads configuration from all sources.
// Priority: flags > env > config file.
func (app *App) loadConfig() error {
	app.loadEnv()

	if app.config.UseConfig {
		if err := app.loadConfigFile(); err != nil {
			return err
		}
	}

	if app.config.TokenLength <= 0 {
		return fmt.Errorf("token length must be positive, got %d", app.config.TokenLength)
	}

	return nil
}

func (app *App) loadEnv() {
	if app.config.TokenLength == DefaultTokenLength {
		if raw := os.Getenv("PAIRID_TOKEN_LENGTH"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				app.config.TokenLength = n
			}
		}
	}

	if app.config.Seed == 0 {
		if raw := os.Getenv("PAIRID_SEED"); raw != "" {
			if seed, err := strconv.ParseUint(raw, 10, 64); err == nil {
				app.config.Seed = seed
			}
		}
	}
}

func (app *App) loadConfigFile() error {
	configPath := ".pairid.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: .pairid.yaml (use --use-config only when config file exists)")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cf ConfigFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if app.config.TokenLength == DefaultTokenLength && cf.TokenLength > 0 {
		app.config.TokenLength = cf.TokenLength
	}
	if app.config.Seed == 0 && cf.Seed != 0 {
		app.config.Seed = cf.Seed
	}

	return nil
}
