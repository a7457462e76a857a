// Package config loads the optional dockman configuration file.
//
// The file is JSONC (JSON with comments), so a hand-edited config can
// carry explanatory comments; github.com/tidwall/jsonc strips them
// before parsing with the standard encoding/json library. A missing
// file is not an error; defaults apply.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/dockman/internal/logging"
)

// Config holds the user-tunable session settings.
type Config struct {
	// Log configures the slog level and format (stderr output).
	Log logging.Config `json:"log"`

	// LogTail is the number of lines shown by the "view logs" action.
	// Zero shows the full log.
	LogTail int `json:"logTail"`

	// StopTimeout is the SIGTERM grace period in seconds before the
	// daemon escalates a stop to SIGKILL. Zero uses the daemon default.
	StopTimeout int `json:"stopTimeout"`

	// ShowAll includes stopped containers in the session's list view.
	ShowAll bool `json:"showAll"`

	// NoColor disables ANSI styling in the interactive UI.
	NoColor bool `json:"noColor"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log:     logging.Config{Level: "info", Format: "text"},
		LogTail: 200,
	}
}

// DefaultPath returns the conventional config file location,
// $XDG_CONFIG_HOME/dockman/config.jsonc (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user config directory: %w", err)
	}
	return filepath.Join(dir, "dockman", "config.jsonc"), nil
}

// Load reads and parses the config file at path. A missing file yields
// the defaults; a present-but-invalid file is an error, because silently
// ignoring a typo'd config is worse than failing fast.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	// Strip JSONC comments and trailing commas, then parse as plain JSON.
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %q: %w", path, err)
	}

	return cfg, nil
}

// Validate checks field ranges and the embedded logging config.
func (c Config) Validate() error {
	if c.LogTail < 0 {
		return fmt.Errorf("logTail must not be negative, got %d", c.LogTail)
	}
	if c.StopTimeout < 0 {
		return fmt.Errorf("stopTimeout must not be negative, got %d", c.StopTimeout)
	}
	return c.Log.Validate()
}
