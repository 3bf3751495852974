package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Disposition carries the stream disposition flags wavemill cares about.
type Disposition struct {
	AttachedPic int `json:"attached_pic"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index       int         `json:"index"`
	CodecName   string      `json:"codec_name"`
	CodecType   string      `json:"codec_type"`
	SampleRate  string      `json:"sample_rate"`
	Channels    int         `json:"channels"`
	Disposition Disposition `json:"disposition"`
}

// Format captures container-level metadata extracted by ffprobe. Tags keeps
// the container tag map verbatim, including casing, so fallback resolution
// downstream sees exactly what ffprobe reported.
type Format struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	Tags       map[string]string `json:"tags"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response. The raw payload is retained so callers can persist ffprobe's
// native output without a lossy re-marshal.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "quiet", "-print_format", "json", "-show_format", "-show_streams", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return Parse(stdout.Bytes())
}

// Parse decodes an ffprobe JSON payload, retaining the raw bytes.
func Parse(payload []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	result.raw = append([]byte(nil), payload...)
	return result, nil
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// Tag returns the container tag for key, or "" when absent. Lookup is
// case-sensitive: tag casing is part of the fallback contract.
func (r Result) Tag(key string) string {
	if r.Format.Tags == nil {
		return ""
	}
	return r.Format.Tags[key]
}

// HasAttachedPicture reports whether any video stream is flagged as an
// attached picture, i.e. embedded artwork.
func (r Result) HasAttachedPicture() bool {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") && stream.Disposition.AttachedPic == 1 {
			return true
		}
	}
	return false
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			count++
		}
	}
	return count
}
