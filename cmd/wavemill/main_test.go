package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// executeCommand runs the root command with args and returns combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// installFakeTools puts executable ffmpeg/ffprobe stand-ins on PATH. The
// ffmpeg stub creates its final argument (the output path); the ffprobe stub
// prints a fixed metadata payload.
func installFakeTools(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are unix shell scripts")
	}
	dir := t.TempDir()

	ffmpeg := "#!/bin/sh\nfor a in \"$@\"; do last=\"$a\"; done\n: > \"$last\"\n"
	if err := os.WriteFile(filepath.Join(dir, "ffmpeg"), []byte(ffmpeg), 0o755); err != nil {
		t.Fatal(err)
	}

	ffprobe := "#!/bin/sh\nprintf '{\"streams\":[{\"index\":0,\"codec_type\":\"audio\"}],\"format\":{\"tags\":{\"title\":\"T\",\"artist\":\"A\"}}}'\n"
	if err := os.WriteFile(filepath.Join(dir, "ffprobe"), []byte(ffprobe), 0o755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PATH", dir)
	t.Setenv("HOME", t.TempDir())
}

func TestRootCommandListsSubcommands(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	out, err := executeCommand(t)
	if err != nil {
		t.Fatalf("root help: %v", err)
	}
	for _, name := range []string{"convert", "encode", "deps", "config"} {
		if !bytes.Contains([]byte(out), []byte(name)) {
			t.Fatalf("help output missing %q:\n%s", name, out)
		}
	}
}

func TestConvertRequiresSourceArg(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := executeCommand(t, "convert"); err == nil {
		t.Fatal("convert without source dir must fail")
	}
}

func TestEncodeRequiresTwoArgs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := executeCommand(t, "encode", "only-one"); err == nil {
		t.Fatal("encode with one arg must fail")
	}
}
