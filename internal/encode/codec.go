package encode

import "strings"

// codecArgs returns the ffmpeg codec parameters for a delivery format. The
// second result is false for formats the encoder has no table entry for.
// Lossless formats ignore the quality bitrate; wav re-encodes carry the
// fixed intermediate sample rate.
func codecArgs(format, quality string) ([]string, bool) {
	switch strings.ToLower(format) {
	case "mp3":
		return []string{"-codec:a", "libmp3lame", "-b:a", quality}, true
	case "aac":
		return []string{"-codec:a", "aac", "-b:a", quality}, true
	case "flac":
		return []string{"-codec:a", "flac"}, true
	case "ogg":
		return []string{"-codec:a", "libvorbis", "-b:a", quality}, true
	case "m4a":
		return []string{"-codec:a", "aac", "-b:a", quality}, true
	case "wav":
		return []string{"-codec:a", "pcm_s16le", "-ar", "44100"}, true
	case "opus":
		return []string{"-codec:a", "libopus", "-b:a", quality}, true
	default:
		return nil, false
	}
}
