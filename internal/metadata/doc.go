// Package metadata carries audio tags and embedded artwork across the
// two-stage conversion pipeline.
//
// The intermediate WAV format cannot hold artwork and loses most container
// tags, so the normalization pass persists ffprobe's output as a JSON
// sidecar (<stem>.metadata.json) next to each WAV, and the encode pass
// reloads it, resolves the original source file as an artwork donor, and
// rebuilds ffmpeg directives from both.
//
// Invariants:
//   - a sidecar is written before any transcoding of its asset, so it
//     survives a later transcode failure (orphan sidecars are tolerated)
//   - sidecars are never mutated or deleted here
//   - extraction and reload failures degrade to a nil record with a warning;
//     they never abort a batch
//   - BuildDirectives is deterministic and its emission order is part of the
//     contract (last conflicting tag wins inside ffmpeg)
package metadata
