package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ytclip/internal/model"
)

func TestFindFFmpeg_CustomPath(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := FindFFmpeg(bin)
	if err != nil {
		t.Fatalf("FindFFmpeg: %v", err)
	}
	if got != bin {
		t.Errorf("FindFFmpeg = %q, want %q", got, bin)
	}
}

func TestFindFFmpeg_MissingIsDependencyError(t *testing.T) {
	_, err := FindFFmpeg(filepath.Join(t.TempDir(), "nope", "ffmpeg"))
	if err == nil {
		t.Fatal("expected error")
	}
	var de *DependencyError
	if !errors.As(err, &de) || de.Name != "ffmpeg" {
		t.Errorf("err = %v, want *DependencyError for ffmpeg", err)
	}
	if !errors.Is(err, model.ErrMissingDependency) {
		t.Errorf("err should match ErrMissingDependency")
	}
}

func TestFindDownloader_EmptyPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := FindDownloader("")
	if !errors.Is(err, model.ErrMissingDependency) {
		t.Errorf("err = %v, want ErrMissingDependency", err)
	}
}
