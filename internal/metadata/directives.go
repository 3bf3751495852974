package metadata

import (
	"strings"

	"wavemill/internal/media/ffprobe"
)

// tagRule maps an output tag key to its ordered source-tag fallback chain.
// The chain order and the emission order of the rules themselves are part of
// the observable contract: ffmpeg applies -metadata flags in sequence, so
// reordering them changes which value wins on conflict.
type tagRule struct {
	key     string
	sources []string
}

var tagRules = []tagRule{
	{"title", []string{"title", "TITLE"}},
	{"artist", []string{"artist", "ARTIST", "album_artist", "ALBUM_ARTIST"}},
	{"album", []string{"album", "ALBUM"}},
	{"date", []string{"date", "DATE", "year"}},
	{"genre", []string{"genre", "GENRE"}},
	{"track", []string{"track", "TRACK"}},
	{"album_artist", []string{"album_artist", "ALBUM_ARTIST", "artist"}},
	{"composer", []string{"composer", "COMPOSER"}},
	{"comment", []string{"comment", "COMMENT"}},
}

// BuildDirectives derives the ffmpeg argument fragment that re-applies rec's
// tags and, when possible, its embedded artwork. artworkSource is the
// original source file to pull the artwork stream from; "" means none was
// resolved.
//
// Artwork directives are emitted only when rec shows an attached picture AND
// a donor is available: the donor becomes a second input, audio is mapped
// from the primary input, video from the donor (tolerating absence), copied
// without re-encoding, and flagged as an attached picture. Tag directives
// follow regardless, one -metadata pair per rule whose resolved value is
// non-empty after trimming.
//
// A nil rec yields no directives. The function is pure: same inputs, same
// output slice.
func BuildDirectives(rec *ffprobe.Result, artworkSource string) []string {
	if rec == nil {
		return nil
	}

	var args []string

	if rec.HasAttachedPicture() && artworkSource != "" {
		args = append(args,
			"-i", artworkSource,
			"-map", "0:a",
			"-map", "1:v?",
			"-c:v", "copy",
			"-disposition:v:0", "attached_pic",
		)
	}

	for _, rule := range tagRules {
		value := resolveTag(rec, rule.sources)
		if strings.TrimSpace(value) == "" {
			continue
		}
		args = append(args, "-metadata", rule.key+"="+value)
	}

	return args
}

func resolveTag(rec *ffprobe.Result, sources []string) string {
	for _, source := range sources {
		if value := rec.Tag(source); value != "" {
			return value
		}
	}
	return ""
}
