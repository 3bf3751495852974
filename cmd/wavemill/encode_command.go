package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"wavemill/internal/config"
	"wavemill/internal/encode"
	"wavemill/internal/logging"
	"wavemill/internal/metadata"
	"wavemill/internal/runlock"
	"wavemill/internal/services/ffmpeg"
)

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <wav-dir> <output-dir> [format] [quality] [source-dir]",
		Short: "Re-encode WAV files into a delivery format with saved metadata",
		Long: `encode converts every WAV under <wav-dir> into [format] (default from
config, normally flac) inside <output-dir>, re-applying tags from each
file's metadata sidecar. When [source-dir] names the original source
directory, embedded artwork is recovered from the matching original file.`,
		Args: cobra.RangeArgs(2, 5),
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

			inputDir, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			outputDir, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}

			format := cfg.Encode.Format
			if len(args) > 2 && args[2] != "" {
				format = args[2]
			}
			quality := cfg.Encode.Quality
			if len(args) > 3 && args[3] != "" {
				quality = args[3]
			}
			sourceDir := ""
			if len(args) > 4 && args[4] != "" {
				sourceDir, err = config.ExpandPath(args[4])
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

			opts := encode.Options{
				InputDir:  inputDir,
				OutputDir: outputDir,
				Format:    format,
				Quality:   quality,
				SourceDir: sourceDir,
				Progress:  out,
				Logger:    logging.WithComponent(logger, "encode"),
			}

			summary, err := encode.Run(cmd.Context(), opts, meta, transcoder)
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
				fmt.Fprintln(out, renderTable([]string{"File", "Result", "Detail"}, rows))
			}

			fmt.Fprintf(out, "\nConverted %d/%d files successfully\n", summary.Succeeded, summary.Found)
			fmt.Fprintf(out, "Output directory: %s\n", absolute(outputDir))

			if summary.Failed() {
				return errors.New("no files were converted successfully")
			}
			return nil
		},
	}
}
