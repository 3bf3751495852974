// Package normalize implements Stage 1 of the pipeline: turning arbitrary
// source audio into the uncompressed WAV working set.
//
// Per candidate file the pass is a small state machine with terminal states
// skipped, copied, converted, and failed. Metadata is extracted and the
// sidecar persisted before any transcoding so a later ffmpeg failure cannot
// lose tags. WAV inputs are byte-copied (with hash verification) rather
// than re-encoded.
package normalize
