// Package encode implements Stage 2 of the pipeline: re-encoding the WAV
// working set into a delivery format with the saved metadata re-applied.
//
// The pass has no memory of Stage 1; everything is reconstructed from the
// directory contents — the WAV files, their sidecars, and (optionally) the
// original source directory for artwork recovery. Output names never clash
// with pre-existing files: a numeric suffix is appended until a free name
// is found.
package encode
