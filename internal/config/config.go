package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds ambient application settings. Conversion parameters (format,
// quality, zoom, split position) are deliberately absent: they reset with
// every session.
type Config struct {
	LogLevel     string `toml:"log_level"`
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`

	// Paths to the external AVIF tools. Empty means look them up on PATH.
	AvifencPath string `toml:"avifenc_path"`
	AvifdecPath string `toml:"avifdec_path"`
}

func Default() Config {
	return Config{
		LogLevel:     "info",
		WindowWidth:  1200,
		WindowHeight: 800,
	}
}

// Load reads a TOML config file, layering it over the defaults. A missing
// file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.WindowWidth <= 0 {
		cfg.WindowWidth = Default().WindowWidth
	}
	if cfg.WindowHeight <= 0 {
		cfg.WindowHeight = Default().WindowHeight
	}

	return cfg, nil
}
