package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vidpeek/internal/config"
	"vidpeek/internal/consts"
	"vidpeek/internal/entity"
	"vidpeek/internal/errs"
)

type mock struct {
	log      *slog.Logger
	markers  []string
	delay    time.Duration
	fixture  entity.VideoMetadata
	failWith error
}

// Option configures the mock resolver.
type Option func(*mock)

// WithDelay overrides the simulated lookup delay.
func WithDelay(d time.Duration) Option {
	return func(m *mock) { m.delay = d }
}

// WithFixture replaces the metadata record returned for every valid URL.
func WithFixture(meta entity.VideoMetadata) Option {
	return func(m *mock) { m.fixture = meta.Clone() }
}

// WithFailure makes every valid-shaped request fail with err after the delay.
func WithFailure(err error) Option {
	return func(m *mock) { m.failWith = err }
}

// NewMock creates a resolver that returns one fixed metadata record regardless of the URL.
// The record comes from cfg.Resolver.FixtureFile when set, the embedded fixture otherwise.
func NewMock(log *slog.Logger, cfg *config.Config, opts ...Option) (Resolver, error) {
	fixture, err := loadConfiguredFixture(cfg)
	if err != nil {
		return nil, err
	}

	m := &mock{
		log:     log.With(slog.String("package", "resolver"), slog.String("resolver", consts.ResolverMock)),
		markers: cfg.Resolver.Markers,
		delay:   cfg.Resolver.Delay,
		fixture: fixture,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

func loadConfiguredFixture(cfg *config.Config) (entity.VideoMetadata, error) {
	if cfg.Resolver.FixtureFile == "" {
		return DefaultFixture()
	}

	meta, err := LoadFixtureFile(cfg.Resolver.FixtureFile)
	if err != nil {
		return entity.VideoMetadata{}, fmt.Errorf("fixture %s: %w", cfg.Resolver.FixtureFile, err)
	}

	return meta, nil
}

// Resolve validates the URL shape, waits the simulated delay and returns a fresh copy of the fixture.
// Invalid URLs are rejected before the delay. The delay is not interrupted by ctx.
func (m *mock) Resolve(ctx context.Context, req entity.VideoRequest) (entity.VideoMetadata, error) {
	log := m.log.With(slog.String("func", "Resolve"), slog.String("url", req.URL))

	if err := Validate(req.URL, m.markers); err != nil {
		log.DebugContext(ctx, "url rejected", slog.Any("error", err))

		return entity.VideoMetadata{}, err
	}

	time.Sleep(m.delay)

	if m.failWith != nil {
		log.ErrorContext(ctx, "resolve", slog.Any("error", m.failWith))

		return entity.VideoMetadata{}, fmt.Errorf("%w: %w", errs.ErrResolveFailed, m.failWith)
	}

	meta := m.fixture.Clone()

	log.InfoContext(ctx, "video resolved", slog.Any("metadata", meta))

	return meta, nil
}
