package encode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"wavemill/internal/media/ffprobe"
	"wavemill/internal/metadata"
	"wavemill/internal/services/ffmpeg"
)

// Outcome is the terminal state of one WAV file.
type Outcome int

const (
	// OutcomeEncoded means the delivery file was produced.
	OutcomeEncoded Outcome = iota
	// OutcomeUnsupported means the requested format has no codec table entry.
	OutcomeUnsupported
	// OutcomeFailed means ffmpeg reported an error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEncoded:
		return "encoded"
	case OutcomeUnsupported:
		return "unsupported"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the processing of one WAV file.
type Result struct {
	Input   string
	Output  string
	Outcome Outcome
	Err     error
}

// Succeeded reports whether this file counts toward the success tally.
func (r Result) Succeeded() bool {
	return r.Outcome == OutcomeEncoded
}

// Summary aggregates an encode batch.
type Summary struct {
	InputDir  string
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
	Reload(path string) *ffprobe.Result
	ResolveArtworkSource(path string, sourceDir string) string
}

// Transcoder converts one file via the external tool.
type Transcoder interface {
	Transcode(ctx context.Context, req ffmpeg.Request) error
}

// Options parameterizes an encode batch.
type Options struct {
	InputDir  string
	OutputDir string
	// Format is the delivery format (mp3, aac, flac, ogg, m4a, wav, opus).
	Format string
	// Quality is the bitrate for lossy formats, e.g. "256k".
	Quality string
	// SourceDir optionally names the original source directory for artwork
	// recovery. Empty disables artwork resolution.
	SourceDir string
	// Progress receives the per-file user-facing lines. Nil discards them.
	Progress io.Writer
	Logger   *slog.Logger
}

// Run executes Stage 2: every WAV directly under InputDir becomes a
// Format-encoded file in OutputDir with its sidecar metadata re-applied.
// Existing outputs are never overwritten; colliding names get an
// incrementing numeric suffix.
//
// A missing input directory is fatal. Per-file failures and unsupported
// formats are recorded and the batch continues.
func Run(ctx context.Context, opts Options, meta Metadata, transcoder Transcoder) (Summary, error) {
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	summary := Summary{InputDir: opts.InputDir, OutputDir: opts.OutputDir}

	if info, err := os.Stat(opts.InputDir); err != nil || !info.IsDir() {
		return summary, fmt.Errorf("input directory %q does not exist", opts.InputDir)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("create output directory: %w", err)
	}

	wavFiles, err := listWAVFiles(opts.InputDir)
	if err != nil {
		return summary, err
	}
	summary.Found = len(wavFiles)

	if len(wavFiles) == 0 {
		fmt.Fprintf(progress, "No WAV files found in %s\n", opts.InputDir)
		return summary, nil
	}
	fmt.Fprintf(progress, "Found %d WAV files to convert\n", len(wavFiles))

	for _, input := range wavFiles {
		result := processOne(ctx, opts, meta, transcoder, input, progress, logger)
		summary.Results = append(summary.Results, result)
		if result.Succeeded() {
			summary.Succeeded++
		}
	}

	return summary, nil
}

func processOne(ctx context.Context, opts Options, meta Metadata, transcoder Transcoder, input string, progress io.Writer, logger *slog.Logger) Result {
	result := Result{Input: input}

	codec, ok := codecArgs(opts.Format, opts.Quality)
	if !ok {
		fmt.Fprintf(progress, "Unsupported format: %s\n", opts.Format)
		result.Outcome = OutcomeUnsupported
		result.Err = fmt.Errorf("unsupported format %q", opts.Format)
		return result
	}

	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	output := reserveOutputPath(opts.OutputDir, stem, strings.ToLower(opts.Format))
	result.Output = output

	rec := meta.Reload(input)
	artworkSource := ""
	if opts.SourceDir != "" {
		artworkSource = meta.ResolveArtworkSource(input, opts.SourceDir)
	}
	if rec != nil && rec.HasAttachedPicture() && artworkSource == "" {
		logger.Warn("embedded artwork detected but no source file found; artwork will be dropped",
			slog.String("input", filepath.Base(input)),
			slog.String("source_dir", opts.SourceDir))
	}

	req := ffmpeg.Request{
		Input:      input,
		Directives: metadata.BuildDirectives(rec, artworkSource),
		CodecArgs:  codec,
		Output:     output,
	}
	if err := transcoder.Transcode(ctx, req); err != nil {
		fmt.Fprintf(progress, "Error converting %s: %v\n", filepath.Base(input), err)
		logger.Warn("encode failed", slog.String("input", input), slog.String("error", err.Error()))
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}
	fmt.Fprintf(progress, "Converted: %s -> %s\n", filepath.Base(input), filepath.Base(output))
	result.Outcome = OutcomeEncoded
	return result
}

// reserveOutputPath returns stem.ext inside dir, or the first stem_N.ext
// whose name is not yet taken. Deterministic for a stable directory state.
func reserveOutputPath(dir, stem, ext string) string {
	path := filepath.Join(dir, stem+"."+ext)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.%s", stem, counter, ext))
	}
}

func listWAVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
