package resolver

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"vidpeek/internal/entity"
	"vidpeek/internal/errs"
)

//go:embed fixture.yaml
var defaultFixture []byte

var reDuration = regexp.MustCompile(`^\d{1,3}:[0-5]\d$`)

// DefaultFixture returns the embedded metadata record.
func DefaultFixture() (entity.VideoMetadata, error) {
	return LoadFixture(bytes.NewReader(defaultFixture))
}

// LoadFixtureFile reads a metadata record from a YAML file.
func LoadFixtureFile(path string) (entity.VideoMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return entity.VideoMetadata{}, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	return LoadFixture(f)
}

// LoadFixture decodes and checks a YAML metadata record.
func LoadFixture(r io.Reader) (entity.VideoMetadata, error) {
	var meta entity.VideoMetadata

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&meta); err != nil {
		return entity.VideoMetadata{}, fmt.Errorf("%w: decode: %w", errs.ErrFixtureInvalid, err)
	}

	if err := checkFixture(meta); err != nil {
		return entity.VideoMetadata{}, fmt.Errorf("%w: %w", errs.ErrFixtureInvalid, err)
	}

	return meta, nil
}

func checkFixture(meta entity.VideoMetadata) error {
	if meta.Title == "" {
		return fmt.Errorf("title is empty")
	}

	if !reDuration.MatchString(meta.Duration) {
		return fmt.Errorf("duration %q is not mm:ss", meta.Duration)
	}

	if len(meta.Formats) == 0 {
		return fmt.Errorf("no formats")
	}

	seen := make(map[string]struct{}, len(meta.Formats))

	for i, f := range meta.Formats {
		if f.Value == "" || f.Label == "" {
			return fmt.Errorf("format %d: label and value are required", i)
		}

		if _, ok := seen[f.Value]; ok {
			return fmt.Errorf("format %d: duplicate value %q", i, f.Value)
		}

		if f.EstimatedSizeBytes < 0 {
			return fmt.Errorf("format %d: negative size", i)
		}

		seen[f.Value] = struct{}{}
	}

	return nil
}
