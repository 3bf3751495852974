package config

const (
	defaultWAVDir        = "temp/wav_input"
	defaultSampleRate    = 44100
	defaultWAVCodec      = "pcm_s16le"
	defaultEncodeFormat  = "flac"
	defaultEncodeQuality = "256k"
	defaultFFmpeg        = "ffmpeg"
	defaultFFprobe       = "ffprobe"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WAVDir: defaultWAVDir,
		},
		Normalize: Normalize{
			SampleRate: defaultSampleRate,
			Codec:      defaultWAVCodec,
		},
		Encode: Encode{
			Format:  defaultEncodeFormat,
			Quality: defaultEncodeQuality,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
