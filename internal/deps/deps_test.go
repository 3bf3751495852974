package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"wavemill/internal/config"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "Ghost", Command: "definitely-not-a-real-binary-2231"},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("nonexistent binary reported available")
	}
	if statuses[0].Detail == "" {
		t.Fatal("expected detail for missing binary")
	}
}

func TestCheckBinariesFindsExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH fixture is unix-shaped")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "fakeffmpeg")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	statuses := CheckBinaries([]Requirement{{Name: "FFmpeg", Command: "fakeffmpeg"}})
	if !statuses[0].Available {
		t.Fatalf("expected fakeffmpeg to be found: %+v", statuses[0])
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "Empty"}})
	if statuses[0].Available {
		t.Fatal("empty command reported available")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", statuses[0].Detail)
	}
}

func TestMissingRequiredSkipsOptional(t *testing.T) {
	statuses := []Status{
		{Name: "FFprobe", Optional: true, Available: false},
		{Name: "FFmpeg", Optional: false, Available: true},
	}
	if _, missing := MissingRequired(statuses); missing {
		t.Fatal("optional miss should not count as missing required")
	}

	statuses[1].Available = false
	got, missing := MissingRequired(statuses)
	if !missing || got.Name != "FFmpeg" {
		t.Fatalf("expected FFmpeg reported missing, got %+v missing=%v", got, missing)
	}
}

func TestDefaultUsesConfiguredBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.FFmpeg = "/opt/ffmpeg/bin/ffmpeg"
	reqs := Default(&cfg)
	if reqs[0].Command != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("configured ffmpeg path not used: %q", reqs[0].Command)
	}
	if !reqs[1].Optional {
		t.Fatal("ffprobe must be optional")
	}
}
