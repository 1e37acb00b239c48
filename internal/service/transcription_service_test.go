package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"voice-expense/pkg/config"

	"go.uber.org/zap"
)

func TestCheckAudioExtension(t *testing.T) {
	tests := []struct {
		path string
		ok   bool
	}{
		{"note.mp3", true},
		{"note.WAV", true},
		{"dir/note.m4a", true},
		{"note.ogg", false},
		{"note", false},
		{"note.mp3.exe", false},
	}
	for _, tt := range tests {
		err := CheckAudioExtension(tt.path)
		if (err == nil) != tt.ok {
			t.Errorf("CheckAudioExtension(%q) = %v", tt.path, err)
		}
		if err != nil && !errors.Is(err, ErrUnsupportedAudio) {
			t.Errorf("CheckAudioExtension(%q) error not ErrUnsupportedAudio: %v", tt.path, err)
		}
	}
}

func TestWhisperTranscriber_RejectsBeforeCallingAPI(t *testing.T) {
	tr := NewWhisperTranscriber(&config.WhisperConfig{
		BaseURL: "http://127.0.0.1:0",
		Model:   "base",
		Models:  []string{"base", "small", "medium"},
	}, zap.NewNop())

	if _, err := tr.Transcribe(context.Background(), "note.flac", ""); !errors.Is(err, ErrUnsupportedAudio) {
		t.Errorf("flac error = %v", err)
	}
	if _, err := tr.Transcribe(context.Background(), "note.mp3", "large"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("unknown model error = %v", err)
	}
	if !IsClientError(ErrUnknownModel) || IsClientError(errUpstream) {
		t.Error("IsClientError misclassifies")
	}
	if got := tr.Models(); len(got) != 3 || got[0] != "base" {
		t.Errorf("Models() = %v", got)
	}
	var catalog ModelCatalog = tr
	if !slices.Contains(catalog.Models(), catalog.DefaultModel()) {
		t.Errorf("default %q not among %v", catalog.DefaultModel(), catalog.Models())
	}
}

func TestSaveUpload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	path, err := SaveUpload(dir, "Voice Note.M4A", strings.NewReader("audio-bytes"))
	if err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}
	if filepath.Dir(path) != dir || filepath.Ext(path) != ".m4a" {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "audio-bytes" {
		t.Errorf("content = %q, %v", data, err)
	}

	if _, err := SaveUpload(dir, "notes.txt", strings.NewReader("x")); !errors.Is(err, ErrUnsupportedAudio) {
		t.Errorf("txt upload error = %v", err)
	}
}
