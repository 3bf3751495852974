// Package ffmpeg mediates access to the ffmpeg CLI used for transcoding.
//
// It normalizes command assembly (input, metadata directives, overwrite
// flag, codec arguments, output — in that order), captures stderr for
// per-file diagnostics, and exposes a testable Executor seam.
//
// Prefer this package over ad-hoc exec.Command usage when invoking ffmpeg
// so argument ordering and error reporting stay consistent across passes.
package ffmpeg
