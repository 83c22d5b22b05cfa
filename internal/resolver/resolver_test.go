package resolver_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"vidpeek/internal/config"
	"vidpeek/internal/entity"
	"vidpeek/internal/errs"
	"vidpeek/internal/resolver"
)

const testDelay = 300 * time.Millisecond

func newTestCfg(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.New()
	if err != nil {
		t.Fatalf("config new: %v", err)
	}

	cfg.Resolver.Delay = testDelay

	return cfg
}

func newTestResolver(t *testing.T, opts ...resolver.Option) resolver.Resolver {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	res, err := resolver.NewMock(log, newTestCfg(t), opts...)
	if err != nil {
		t.Fatalf("new mock: %v", err)
	}

	return res
}

func TestValidate(t *testing.T) {
	markers := []string{"youtube.com", "youtu.be"}

	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{"short link", "https://youtu.be/abc123", nil},
		{"watch link", "https://www.youtube.com/watch?v=abc123", nil},
		{"shorts link", "https://youtube.com/shorts/xyz", nil},
		{"upper case host", "HTTPS://WWW.YOUTUBE.COM/watch?v=1", nil},
		{"marker without scheme", "youtu.be/abc", nil},
		{"empty", "", errs.ErrEmptyURL},
		{"whitespace only", "   ", errs.ErrEmptyURL},
		{"other host", "https://example.com/video", errs.ErrInvalidURL},
		{"near miss", "https://youtube.co/watch", errs.ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := resolver.Validate(tt.url, markers)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate(%q) = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		res := newTestResolver(t)

		start := time.Now()

		meta, err := res.Resolve(t.Context(), entity.VideoRequest{URL: "https://youtu.be/abc123"})
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}

		if elapsed := time.Since(start); elapsed != testDelay {
			t.Errorf("got elapsed %s, want %s", elapsed, testDelay)
		}

		if meta.Title != "Sample YouTube Video" {
			t.Errorf("got title %q, want %q", meta.Title, "Sample YouTube Video")
		}

		if meta.Duration != "10:15" {
			t.Errorf("got duration %q, want %q", meta.Duration, "10:15")
		}

		if meta.Author != "Content Creator" {
			t.Errorf("got author %q, want %q", meta.Author, "Content Creator")
		}

		if meta.ThumbnailRef != "/placeholder.svg?height=720&width=1280" {
			t.Errorf("got thumbnail %q", meta.ThumbnailRef)
		}

		wantOrder := []string{"360p", "720p", "1080p", "mp3"}
		if len(meta.Formats) != len(wantOrder) {
			t.Fatalf("got %d formats, want %d", len(meta.Formats), len(wantOrder))
		}

		for i, want := range wantOrder {
			if meta.Formats[i].Value != want {
				t.Errorf("format %d: got %q, want %q", i, meta.Formats[i].Value, want)
			}
		}

		if got := meta.Formats[0].Size(); got != "15 MB" {
			t.Errorf("got size %q, want %q", got, "15 MB")
		}
	})
}

func TestResolveRejectsBeforeDelay(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{"invalid host", "https://example.com/video", errs.ErrInvalidURL},
		{"empty", "", errs.ErrEmptyURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				res := newTestResolver(t)

				start := time.Now()

				_, err := res.Resolve(t.Context(), entity.VideoRequest{URL: tt.url})
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got error %v, want %v", err, tt.wantErr)
				}

				if elapsed := time.Since(start); elapsed != 0 {
					t.Errorf("rejection took %s, want no delay", elapsed)
				}
			})
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		res := newTestResolver(t)
		req := entity.VideoRequest{URL: "https://www.youtube.com/watch?v=abc123"}

		first, err := res.Resolve(t.Context(), req)
		if err != nil {
			t.Fatalf("first Resolve() failed: %v", err)
		}

		// mutating a result must not leak into the next one
		first.Formats[0].Label = "mutated"

		second, err := res.Resolve(t.Context(), req)
		if err != nil {
			t.Fatalf("second Resolve() failed: %v", err)
		}

		third, err := res.Resolve(t.Context(), req)
		if err != nil {
			t.Fatalf("third Resolve() failed: %v", err)
		}

		if !reflect.DeepEqual(second, third) {
			t.Errorf("results differ:\n%+v\n%+v", second, third)
		}

		if second.Formats[0].Label != "360p MP4" {
			t.Errorf("fixture was mutated through a previous result: %q", second.Formats[0].Label)
		}
	})
}

func TestResolveIgnoresCancellation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		res := newTestResolver(t)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		if _, err := res.Resolve(ctx, entity.VideoRequest{URL: "https://youtu.be/abc123"}); err != nil {
			t.Errorf("Resolve() with cancelled context failed: %v", err)
		}
	})
}

func TestResolveFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		backendErr := errors.New("backend unavailable")
		res := newTestResolver(t, resolver.WithFailure(backendErr))

		_, err := res.Resolve(t.Context(), entity.VideoRequest{URL: "https://youtu.be/abc123"})
		if !errors.Is(err, errs.ErrResolveFailed) {
			t.Errorf("got %v, want ErrResolveFailed", err)
		}

		if !errors.Is(err, backendErr) {
			t.Errorf("got %v, want wrapped backend error", err)
		}
	})
}

func TestNewMockFixtureFile(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("custom fixture", func(t *testing.T) {
		cfg := newTestCfg(t)
		cfg.Resolver.FixtureFile = "testdata/custom.yaml"
		cfg.Resolver.Delay = 0

		res, err := resolver.NewMock(log, cfg)
		if err != nil {
			t.Fatalf("NewMock() failed: %v", err)
		}

		meta, err := res.Resolve(t.Context(), entity.VideoRequest{URL: "https://youtu.be/x"})
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}

		if meta.Title != "Conference Talk" || len(meta.Formats) != 1 {
			t.Errorf("got %+v, want custom fixture", meta)
		}
	})

	t.Run("duplicate format values", func(t *testing.T) {
		cfg := newTestCfg(t)
		cfg.Resolver.FixtureFile = "testdata/duplicate.yaml"

		_, err := resolver.NewMock(log, cfg)
		if !errors.Is(err, errs.ErrFixtureInvalid) {
			t.Errorf("got %v, want ErrFixtureInvalid", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := newTestCfg(t)
		cfg.Resolver.FixtureFile = "testdata/does-not-exist.yaml"

		if _, err := resolver.NewMock(log, cfg); err == nil {
			t.Error("expected error, got nil")
		}
	})
}

func TestLoadFixture(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "title: x\nduration: \"01:00\"\nviews: 3\nformats: [{label: a, value: a}]\n"},
		{"bad duration", "title: x\nduration: \"1 minute\"\nformats: [{label: a, value: a}]\n"},
		{"no formats", "title: x\nduration: \"01:00\"\n"},
		{"empty title", "duration: \"01:00\"\nformats: [{label: a, value: a}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.LoadFixture(strings.NewReader(tt.yaml))
			if !errors.Is(err, errs.ErrFixtureInvalid) {
				t.Errorf("got %v, want ErrFixtureInvalid", err)
			}
		})
	}
}
