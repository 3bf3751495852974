package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wavemill/internal/config"
	"wavemill/internal/deps"
	"wavemill/internal/logging"
	"wavemill/internal/metadata"
	"wavemill/internal/normalize"
	"wavemill/internal/runlock"
	"wavemill/internal/services/ffmpeg"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "convert <source-dir>",
		Short: "Normalize source audio into WAV files with metadata sidecars",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			sourceDir, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if info, statErr := os.Stat(sourceDir); statErr != nil || !info.IsDir() {
				return fmt.Errorf("source directory %q does not exist", args[0])
			}

			outputDir := cfg.Paths.WAVDir
			if outputFlag != "" {
				outputDir, err = config.ExpandPath(outputFlag)
				if err != nil {
					return err
				}
			}

			if err := checkTools(cfg, logger); err != nil {
				return err
			}

			lock, err := runlock.Acquire(outputDir)
			if err != nil {
				return err
			}
			defer func() {
				if releaseErr := lock.Release(); releaseErr != nil {
					logger.Warn("release run lock", slog.String("error", releaseErr.Error()))
				}
			}()

			meta := metadata.NewService(cfg.FFprobeBinary(), config.AudioExtensions(), logging.WithComponent(logger, "metadata"))
			transcoder, err := ffmpeg.New(cfg.FFmpegBinary())
			if err != nil {
				return err
			}

			opts := normalize.Options{
				SourceDir:  sourceDir,
				OutputDir:  outputDir,
				SampleRate: cfg.Normalize.SampleRate,
				Codec:      cfg.Normalize.Codec,
				Extensions: config.AudioExtensions(),
				Progress:   out,
				Logger:     logging.WithComponent(logger, "convert"),
			}

			summary, err := normalize.Run(cmd.Context(), opts, meta, transcoder)
			if err != nil {
				return err
			}
			if summary.Found == 0 {
				return nil
			}

			if stdoutIsTerminal(out) {
				rows := make([][]string, 0, len(summary.Results))
				for _, result := range summary.Results {
					detail := ""
					if result.Err != nil {
						detail = result.Err.Error()
					}
					rows = append(rows, []string{filepath.Base(result.Input), result.Outcome.String(), detail})
				}
				fmt.Fprintln(out, renderTable([]string{"File", "Action", "Detail"}, rows))
			}

			fmt.Fprintf(out, "\nProcessed %d/%d files successfully\n", summary.Succeeded, summary.Found)
			fmt.Fprintf(out, "Output directory: %s\n", absolute(outputDir))

			if summary.Failed() {
				return errors.New("no files were processed successfully")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory for WAV files (defaults to paths.wav_dir)")

	return cmd
}

// checkTools enforces the tool contract before touching any file: a missing
// ffmpeg aborts the batch, a missing ffprobe only costs metadata.
func checkTools(cfg *config.Config, logger *slog.Logger) error {
	statuses := deps.CheckBinaries(deps.Default(cfg))
	if missing, ok := deps.MissingRequired(statuses); ok {
		return fmt.Errorf("%s not found: %s (install ffmpeg to convert audio files)", missing.Name, missing.Detail)
	}
	for _, status := range statuses {
		if status.Optional && !status.Available {
			logger.Warn("optional tool unavailable; metadata extraction disabled",
				slog.String("tool", status.Name),
				slog.String("detail", status.Detail))
		}
	}
	return nil
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
