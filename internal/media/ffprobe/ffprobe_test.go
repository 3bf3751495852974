package ffprobe

import (
	"bytes"
	"testing"
)

const samplePayload = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "flac",
      "codec_type": "audio",
      "sample_rate": "44100",
      "channels": 2,
      "disposition": {"attached_pic": 0}
    },
    {
      "index": 1,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "disposition": {"attached_pic": 1}
    }
  ],
  "format": {
    "filename": "song.flac",
    "format_name": "flac",
    "duration": "123.45",
    "tags": {"TITLE": "Chápter 1", "artist": "A"}
  }
}`

func TestParseRetainsRawPayload(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(result.RawJSON(), []byte(samplePayload)) {
		t.Fatal("raw payload not retained verbatim")
	}
}

func TestParseDecodesStreamsAndTags(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.AudioStreamCount() != 1 {
		t.Fatalf("expected 1 audio stream, got %d", result.AudioStreamCount())
	}
	if !result.HasAttachedPicture() {
		t.Fatal("attached picture not detected")
	}
	if got := result.Tag("TITLE"); got != "Chápter 1" {
		t.Fatalf("unexpected TITLE tag: %q", got)
	}
	if got := result.Tag("title"); got != "" {
		t.Fatalf("tag lookup must be case-sensitive, got %q for lowercase key", got)
	}
}

func TestHasAttachedPictureIgnoresPlainVideo(t *testing.T) {
	result := Result{Streams: []Stream{
		{CodecType: "video", Disposition: Disposition{AttachedPic: 0}},
		{CodecType: "audio"},
	}}
	if result.HasAttachedPicture() {
		t.Fatal("plain video stream must not count as artwork")
	}
}

func TestParseRejectsMalformedPayload(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("expected parse error")
	}
}
