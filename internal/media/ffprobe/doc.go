// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no wavemill-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: per-stream codec info including the attached_pic disposition
//   - Format: container-level metadata and the verbatim tag map
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns a parsed Result
//   - Parse: decodes a previously captured payload (e.g. a sidecar file)
//
// Result keeps the raw JSON payload around so sidecar files can store
// ffprobe's native output byte-for-byte rather than a lossy re-marshal of
// the typed struct.
package ffprobe
