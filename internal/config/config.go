package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// WAVDir is the default destination for normalized WAV files when the
	// convert command is not given an explicit --output.
	WAVDir string `toml:"wav_dir"`
	// LogDir, when set, receives wavemill.log in addition to console output.
	LogDir string `toml:"log_dir"`
}

// Normalize contains settings for the WAV normalization pass.
type Normalize struct {
	SampleRate int    `toml:"sample_rate"`
	Codec      string `toml:"codec"`
}

// Encode contains defaults for the delivery-format pass.
type Encode struct {
	Format  string `toml:"format"`
	Quality string `toml:"quality"`
}

// Tools names the external binaries wavemill shells out to.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for wavemill.
//
// Sections by subsystem:
//   - Paths: default WAV destination and optional log directory
//   - Normalize: intermediate-format sample rate and codec
//   - Encode: default delivery format and quality
//   - Tools: ffmpeg/ffprobe binary names or paths
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Normalize Normalize `toml:"normalize"`
	Encode    Encode    `toml:"encode"`
	Tools     Tools     `toml:"tools"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/wavemill/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file was actually found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("wavemill.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	wavDir, err := expandPath(strings.TrimSpace(c.Paths.WAVDir))
	if err != nil {
		return err
	}
	c.Paths.WAVDir = wavDir

	if strings.TrimSpace(c.Paths.LogDir) != "" {
		logDir, err := expandPath(strings.TrimSpace(c.Paths.LogDir))
		if err != nil {
			return err
		}
		c.Paths.LogDir = logDir
	} else {
		c.Paths.LogDir = ""
	}

	c.Normalize.Codec = strings.TrimSpace(c.Normalize.Codec)
	c.Encode.Format = strings.ToLower(strings.TrimSpace(c.Encode.Format))
	c.Encode.Quality = strings.TrimSpace(c.Encode.Quality)
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// FFmpegBinary returns the ffmpeg executable used for transcoding.
func (c *Config) FFmpegBinary() string {
	if c.Tools.FFmpeg == "" {
		return "ffmpeg"
	}
	return c.Tools.FFmpeg
}

// FFprobeBinary returns the ffprobe executable used for metadata extraction.
func (c *Config) FFprobeBinary() string {
	if c.Tools.FFprobe == "" {
		return "ffprobe"
	}
	return c.Tools.FFprobe
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
