package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"wavemill/internal/media/ffprobe"
)

// SidecarSuffix is appended to an output file's stem to name its sidecar.
const SidecarSuffix = ".metadata.json"

// InspectFunc matches ffprobe.Inspect and exists so tests can stub probing.
type InspectFunc func(ctx context.Context, binary string, path string) (ffprobe.Result, error)

// Option configures the service.
type Option func(*Service)

// WithInspect injects a custom prober (primarily for tests).
func WithInspect(fn InspectFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.inspect = fn
		}
	}
}

// Service is the shared metadata subsystem used by both conversion passes:
// it extracts metadata from source files, persists and reloads sidecars, and
// derives the ffmpeg directives that re-apply tags and artwork.
type Service struct {
	ffprobeBin string
	donorExts  []string
	inspect    InspectFunc
	logger     *slog.Logger
}

// NewService constructs the metadata service. donorExtensions is the ordered
// artwork-donor search list; it must not include the WAV extension.
func NewService(ffprobeBinary string, donorExtensions []string, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		ffprobeBin: ffprobeBinary,
		donorExts:  append([]string(nil), donorExtensions...),
		inspect:    ffprobe.Inspect,
		logger:     logger,
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// SidecarPath returns the sidecar location for an output file: the file's
// extension replaced with ".metadata.json", alongside the file.
func SidecarPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + SidecarSuffix
}

// Extract probes path and returns its metadata, or nil when probing fails
// for any reason. Failures are warnings: batch processing must continue
// without tags rather than abort.
func (s *Service) Extract(ctx context.Context, path string) *ffprobe.Result {
	result, err := s.inspect(ctx, s.ffprobeBin, path)
	if err != nil {
		s.logger.Warn("could not extract metadata",
			slog.String("input", filepath.Base(path)),
			slog.String("error", err.Error()))
		return nil
	}
	return &result
}

// Persist writes rec as a pretty-printed sidecar next to outputPath. The
// sidecar stores ffprobe's native payload so unknown fields and non-ASCII
// tag values survive untouched. A nil rec is a no-op; a write failure is a
// warning, never an error to the caller.
func (s *Service) Persist(rec *ffprobe.Result, outputPath string) {
	if rec == nil {
		return
	}

	payload, err := prettyPayload(rec)
	if err != nil {
		s.logger.Warn("could not serialize metadata",
			slog.String("output", filepath.Base(outputPath)),
			slog.String("error", err.Error()))
		return
	}

	sidecar := SidecarPath(outputPath)
	if err := os.WriteFile(sidecar, payload, 0o644); err != nil {
		s.logger.Warn("could not save metadata",
			slog.String("output", filepath.Base(outputPath)),
			slog.String("error", err.Error()))
	}
}

// Reload reads the sidecar belonging to path. Nil when the sidecar does not
// exist or cannot be parsed; reload problems never propagate.
func (s *Service) Reload(path string) *ffprobe.Result {
	sidecar := SidecarPath(path)
	payload, err := os.ReadFile(sidecar)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("could not load metadata",
				slog.String("input", filepath.Base(path)),
				slog.String("error", err.Error()))
		}
		return nil
	}

	result, err := ffprobe.Parse(payload)
	if err != nil {
		s.logger.Warn("could not load metadata",
			slog.String("input", filepath.Base(path)),
			slog.String("error", err.Error()))
		return nil
	}
	return &result
}

// ResolveArtworkSource looks for the original source file matching path's
// stem inside sourceDir, trying donor extensions in priority order. Returns
// "" when sourceDir is empty or missing, or when no donor exists.
func (s *Service) ResolveArtworkSource(path string, sourceDir string) string {
	if strings.TrimSpace(sourceDir) == "" {
		return ""
	}
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return ""
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, ext := range s.donorExts {
		candidate := filepath.Join(sourceDir, stem+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func prettyPayload(rec *ffprobe.Result) ([]byte, error) {
	if raw := rec.RawJSON(); len(raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	// No raw payload (record built in memory); marshal the typed struct.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
