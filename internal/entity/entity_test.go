package entity_test

import (
	"testing"

	"vidpeek/internal/entity"
)

func TestFormatOptionSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"megabytes", 15_000_000, "15 MB"},
		{"large", 120_000_000, "120 MB"},
		{"single digit", 8_000_000, "8 MB"},
		{"fractional", 2_500_000, "2.5 MB"},
		{"bytes", 512, "512 B"},
		{"negative clamps to zero", -1, "0 B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entity.FormatOption{EstimatedSizeBytes: tt.bytes}.Size()
			if got != tt.want {
				t.Errorf("Size() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVideoMetadataClone(t *testing.T) {
	orig := entity.VideoMetadata{
		Title:   "t",
		Formats: []entity.FormatOption{{Label: "360p MP4", Value: "360p"}},
	}

	clone := orig.Clone()
	clone.Formats[0].Label = "changed"

	if orig.Formats[0].Label != "360p MP4" {
		t.Errorf("clone shares formats with source: %q", orig.Formats[0].Label)
	}
}

func TestVideoMetadataFormat(t *testing.T) {
	meta := entity.VideoMetadata{
		Formats: []entity.FormatOption{
			{Label: "720p MP4", Value: "720p"},
			{Label: "MP3 Audio", Value: "mp3"},
		},
	}

	got, ok := meta.Format("mp3")
	if !ok || got.Label != "MP3 Audio" {
		t.Errorf("Format(mp3) = %v, %v", got, ok)
	}

	if _, ok := meta.Format("4k"); ok {
		t.Error("Format(4k) found, want missing")
	}
}

func TestTransferStatusTerminal(t *testing.T) {
	for status, want := range map[entity.TransferStatus]bool{
		entity.TransferStatusIdle:      false,
		entity.TransferStatusInFlight:  false,
		entity.TransferStatusCompleted: true,
		entity.TransferStatusFailed:    true,
	} {
		if got := status.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", status, got, want)
		}
	}
}
