package config

import (
	"fmt"
	"regexp"
	"strings"
)

// AudioExtensions returns the recognized source-audio extensions in artwork
// donor priority order. WAV is excluded: it is the intermediate format and
// cannot carry embedded artwork.
func AudioExtensions() []string {
	return []string{".mp3", ".m4a", ".aac", ".flac", ".ogg", ".wma", ".aiff", ".au", ".ra", ".3gp", ".amr", ".opus"}
}

// WAVExtension is the intermediate-format extension produced by the
// normalization pass.
const WAVExtension = ".wav"

// DeliveryFormats returns the delivery formats the encode pass knows codec
// parameters for.
func DeliveryFormats() []string {
	return []string{"mp3", "aac", "flac", "ogg", "m4a", "wav", "opus"}
}

var qualityPattern = regexp.MustCompile(`^[0-9]+[kKmM]?$`)

// Validate reports the first configuration problem found, if any.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.WAVDir) == "" {
		return fmt.Errorf("paths.wav_dir must not be empty")
	}
	if c.Normalize.SampleRate <= 0 {
		return fmt.Errorf("normalize.sample_rate must be positive, got %d", c.Normalize.SampleRate)
	}
	if c.Normalize.Codec == "" {
		return fmt.Errorf("normalize.codec must not be empty")
	}
	if c.Encode.Format != "" && !isDeliveryFormat(c.Encode.Format) {
		return fmt.Errorf("encode.format %q is not supported (supported: %s)", c.Encode.Format, strings.Join(DeliveryFormats(), ", "))
	}
	if c.Encode.Quality != "" && !qualityPattern.MatchString(c.Encode.Quality) {
		return fmt.Errorf("encode.quality %q is not a bitrate (expected e.g. 256k)", c.Encode.Quality)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported (debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}

func isDeliveryFormat(format string) bool {
	for _, known := range DeliveryFormats() {
		if format == known {
			return true
		}
	}
	return false
}
