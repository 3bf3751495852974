package ffmpeg

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type fakeExecutor struct {
	binary string
	args   []string
	stderr string
	err    error
}

func (f *fakeExecutor) Run(_ context.Context, binary string, args []string) (string, error) {
	f.binary = binary
	f.args = args
	return f.stderr, f.err
}

func TestArgumentsOrder(t *testing.T) {
	req := Request{
		Input:      "in.wav",
		Directives: []string{"-metadata", "title=T"},
		CodecArgs:  []string{"-codec:a", "libmp3lame", "-b:a", "256k"},
		Output:     "out.mp3",
	}
	got := Arguments(req)
	want := []string{
		"-i", "in.wav",
		"-metadata", "title=T",
		"-y",
		"-codec:a", "libmp3lame", "-b:a", "256k",
		"out.mp3",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTranscodeRunsConfiguredBinary(t *testing.T) {
	fake := &fakeExecutor{}
	client, err := New("ffmpeg-custom", WithExecutor(fake))
	if err != nil {
		t.Fatal(err)
	}

	err = client.Transcode(context.Background(), Request{Input: "a.wav", Output: "a.flac", CodecArgs: []string{"-codec:a", "flac"}})
	if err != nil {
		t.Fatalf("transcode: %v", err)
	}
	if fake.binary != "ffmpeg-custom" {
		t.Fatalf("wrong binary: %q", fake.binary)
	}
	if fake.args[len(fake.args)-1] != "a.flac" {
		t.Fatalf("output must be the final argument: %v", fake.args)
	}
}

func TestTranscodeIncludesStderrInError(t *testing.T) {
	fake := &fakeExecutor{stderr: "Unknown encoder 'libfoo'\n", err: errors.New("exit status 1")}
	client, err := New("ffmpeg", WithExecutor(fake))
	if err != nil {
		t.Fatal(err)
	}

	err = client.Transcode(context.Background(), Request{Input: "a.wav", Output: "a.ogg"})
	if err == nil {
		t.Fatal("expected transcode error")
	}
	if !strings.Contains(err.Error(), "Unknown encoder") {
		t.Fatalf("stderr diagnostic missing from error: %v", err)
	}
}

func TestTranscodeValidatesPaths(t *testing.T) {
	client, err := New("ffmpeg", WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatal(err)
	}
	if err := client.Transcode(context.Background(), Request{Output: "x"}); err == nil {
		t.Fatal("missing input must error")
	}
	if err := client.Transcode(context.Background(), Request{Input: "x"}); err == nil {
		t.Fatal("missing output must error")
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("empty binary must be rejected")
	}
}
