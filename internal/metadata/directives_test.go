package metadata

import (
	"reflect"
	"testing"

	"wavemill/internal/media/ffprobe"
)

func recordWithTags(tags map[string]string) *ffprobe.Result {
	return &ffprobe.Result{
		Streams: []ffprobe.Stream{{CodecType: "audio"}},
		Format:  ffprobe.Format{Tags: tags},
	}
}

func recordWithArtwork(tags map[string]string) *ffprobe.Result {
	rec := recordWithTags(tags)
	rec.Streams = append(rec.Streams, ffprobe.Stream{
		CodecType:   "video",
		Disposition: ffprobe.Disposition{AttachedPic: 1},
	})
	return rec
}

func TestBuildDirectivesNilRecord(t *testing.T) {
	if got := BuildDirectives(nil, "/src/song.mp3"); got != nil {
		t.Fatalf("nil record must yield no directives, got %v", got)
	}
}

func TestBuildDirectivesUppercaseFallback(t *testing.T) {
	rec := recordWithTags(map[string]string{"TITLE": "Ch1"})
	got := BuildDirectives(rec, "")
	want := []string{"-metadata", "title=Ch1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildDirectivesArtistAlbumArtistCrossFallback(t *testing.T) {
	rec := recordWithTags(map[string]string{"album_artist": "AA"})
	got := BuildDirectives(rec, "")
	want := []string{
		"-metadata", "artist=AA",
		"-metadata", "album_artist=AA",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	rec = recordWithTags(map[string]string{"artist": "A"})
	got = BuildDirectives(rec, "")
	want = []string{
		"-metadata", "artist=A",
		"-metadata", "album_artist=A",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildDirectivesDateYearFallback(t *testing.T) {
	rec := recordWithTags(map[string]string{"year": "1999"})
	got := BuildDirectives(rec, "")
	want := []string{"-metadata", "date=1999"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildDirectivesOmitsWhitespaceValues(t *testing.T) {
	rec := recordWithTags(map[string]string{"title": "  ", "genre": "Audiobook"})
	got := BuildDirectives(rec, "")
	want := []string{"-metadata", "genre=Audiobook"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildDirectivesEmissionOrder(t *testing.T) {
	rec := recordWithTags(map[string]string{
		"comment":  "c",
		"title":    "t",
		"composer": "cp",
		"artist":   "a",
		"album":    "al",
		"date":     "2001",
		"genre":    "g",
		"track":    "3",
	})
	got := BuildDirectives(rec, "")
	want := []string{
		"-metadata", "title=t",
		"-metadata", "artist=a",
		"-metadata", "album=al",
		"-metadata", "date=2001",
		"-metadata", "genre=g",
		"-metadata", "track=3",
		"-metadata", "album_artist=a",
		"-metadata", "composer=cp",
		"-metadata", "comment=c",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("emission order changed:\n got %v\nwant %v", got, want)
	}
}

func TestBuildDirectivesArtworkWithDonor(t *testing.T) {
	rec := recordWithArtwork(map[string]string{"title": "T"})
	got := BuildDirectives(rec, "/src/song.flac")
	want := []string{
		"-i", "/src/song.flac",
		"-map", "0:a",
		"-map", "1:v?",
		"-c:v", "copy",
		"-disposition:v:0", "attached_pic",
		"-metadata", "title=T",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildDirectivesArtworkWithoutDonor(t *testing.T) {
	rec := recordWithArtwork(map[string]string{"title": "T"})
	got := BuildDirectives(rec, "")
	want := []string{"-metadata", "title=T"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("artwork directives must be suppressed without a donor: got %v", got)
	}
}

func TestBuildDirectivesDonorWithoutArtwork(t *testing.T) {
	rec := recordWithTags(map[string]string{"title": "T"})
	got := BuildDirectives(rec, "/src/song.flac")
	want := []string{"-metadata", "title=T"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("donor without detected artwork must emit no artwork directives: got %v", got)
	}
}

func TestBuildDirectivesIdempotent(t *testing.T) {
	rec := recordWithArtwork(map[string]string{"title": "T", "ARTIST": "A"})
	first := BuildDirectives(rec, "/src/song.m4a")
	second := BuildDirectives(rec, "/src/song.m4a")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("directives not stable: %v vs %v", first, second)
	}
}
