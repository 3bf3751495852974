package normalize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"wavemill/internal/fileutil"
	"wavemill/internal/media/ffprobe"
	"wavemill/internal/services/ffmpeg"
)

// Outcome is the terminal state of one candidate file.
type Outcome int

const (
	// OutcomeSkipped means the destination already existed. Counts as success.
	OutcomeSkipped Outcome = iota
	// OutcomeCopied means the source was already WAV and was byte-copied.
	OutcomeCopied
	// OutcomeConverted means ffmpeg produced the WAV.
	OutcomeConverted
	// OutcomeFailed means the copy or conversion failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeCopied:
		return "copied"
	case OutcomeConverted:
		return "converted"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the processing of one candidate file.
type Result struct {
	Input   string
	Output  string
	Outcome Outcome
	Err     error
}

// Succeeded reports whether this file counts toward the success tally.
func (r Result) Succeeded() bool {
	return r.Outcome != OutcomeFailed
}

// Summary aggregates a normalization batch.
type Summary struct {
	SourceDir string
	OutputDir string
	Found     int
	Succeeded int
	Results   []Result
}

// Failed reports the batch-level failure condition: candidates existed but
// none succeeded.
func (s Summary) Failed() bool {
	return s.Found > 0 && s.Succeeded == 0
}

// Metadata is the slice of the metadata subsystem this pass needs.
type Metadata interface {
	Extract(ctx context.Context, path string) *ffprobe.Result
	Persist(rec *ffprobe.Result, outputPath string)
}

// Transcoder converts one file via the external tool.
type Transcoder interface {
	Transcode(ctx context.Context, req ffmpeg.Request) error
}

// Options parameterizes a normalization batch.
type Options struct {
	SourceDir string
	OutputDir string
	// SampleRate and Codec fix the intermediate format (44100 / pcm_s16le).
	SampleRate int
	Codec      string
	// Extensions is the recognized source-audio extension set, WAV excluded;
	// WAV inputs are always recognized and byte-copied instead of converted.
	Extensions []string
	// Progress receives the per-file user-facing lines. Nil discards them.
	Progress io.Writer
	Logger   *slog.Logger
}

// Run executes Stage 1: every recognized audio file directly under SourceDir
// becomes a WAV in OutputDir plus a metadata sidecar. Files whose
// destination already exists are skipped and count as successes. The sidecar
// is written before any transcoding so it survives a conversion failure.
//
// Only directory-level problems return an error; per-file failures are
// recorded in the summary and the batch continues.
func Run(ctx context.Context, opts Options, meta Metadata, transcoder Transcoder) (Summary, error) {
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	summary := Summary{SourceDir: opts.SourceDir, OutputDir: opts.OutputDir}

	if _, err := os.Stat(opts.SourceDir); err != nil {
		return summary, fmt.Errorf("source directory %q does not exist", opts.SourceDir)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("create output directory: %w", err)
	}

	candidates, err := listCandidates(opts.SourceDir, opts.Extensions)
	if err != nil {
		return summary, err
	}
	summary.Found = len(candidates)

	if len(candidates) == 0 {
		fmt.Fprintf(progress, "No audio files found in %s\n", opts.SourceDir)
		return summary, nil
	}
	fmt.Fprintf(progress, "Found %d audio files\n", len(candidates))

	for _, input := range candidates {
		result := processOne(ctx, opts, meta, transcoder, input, progress, logger)
		summary.Results = append(summary.Results, result)
		if result.Succeeded() {
			summary.Succeeded++
		}
	}

	return summary, nil
}

func processOne(ctx context.Context, opts Options, meta Metadata, transcoder Transcoder, input string, progress io.Writer, logger *slog.Logger) Result {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	output := filepath.Join(opts.OutputDir, stem+".wav")
	result := Result{Input: input, Output: output}

	if _, err := os.Stat(output); err == nil {
		fmt.Fprintf(progress, "File already exists: %s, skipping conversion.\n", filepath.Base(output))
		result.Outcome = OutcomeSkipped
		return result
	}

	// Sidecar first: it must exist even if the transcode below fails.
	meta.Persist(meta.Extract(ctx, input), output)

	if strings.EqualFold(filepath.Ext(input), ".wav") {
		if err := fileutil.CopyFileVerified(input, output); err != nil {
			fmt.Fprintf(progress, "Error copying %s: %v\n", filepath.Base(input), err)
			logger.Warn("copy failed", slog.String("input", input), slog.String("error", err.Error()))
			result.Outcome = OutcomeFailed
			result.Err = err
			return result
		}
		fmt.Fprintf(progress, "Copied: %s -> %s\n", filepath.Base(input), filepath.Base(output))
		result.Outcome = OutcomeCopied
		return result
	}

	req := ffmpeg.Request{
		Input:     input,
		CodecArgs: []string{"-acodec", opts.Codec, "-ar", strconv.Itoa(opts.SampleRate)},
		Output:    output,
	}
	if err := transcoder.Transcode(ctx, req); err != nil {
		fmt.Fprintf(progress, "Error converting %s: %v\n", filepath.Base(input), err)
		logger.Warn("conversion failed", slog.String("input", input), slog.String("error", err.Error()))
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}
	fmt.Fprintf(progress, "Converted: %s -> %s\n", filepath.Base(input), filepath.Base(output))
	result.Outcome = OutcomeConverted
	return result
}

func listCandidates(sourceDir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	recognized := make(map[string]struct{}, len(extensions)+1)
	for _, ext := range extensions {
		recognized[strings.ToLower(ext)] = struct{}{}
	}
	recognized[".wav"] = struct{}{}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := recognized[ext]; !ok {
			continue
		}
		candidates = append(candidates, filepath.Join(sourceDir, entry.Name()))
	}
	return candidates, nil
}
