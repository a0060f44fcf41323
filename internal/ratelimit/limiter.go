// Package ratelimit implements a per-client sliding-window request limiter.
// When the window store cannot be read the request is admitted and the
// error logged, so a failing SQLite backend trades the cap for availability.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultWindow     = 60 * time.Second
	DefaultMax        = 5
	DefaultSweepEvery = 100

	// UnknownClient identifies callers that sent no forwarding header.
	UnknownClient = "unknown"
)

// Config controls the window size and cap.
type Config struct {
	Window time.Duration
	Max    int
	// SweepEvery runs a store-wide expiry after this many admitted
	// requests. Zero disables sweeping.
	SweepEvery int
}

// DefaultConfig returns the standard 5 requests per rolling minute.
func DefaultConfig() Config {
	return Config{
		Window:     DefaultWindow,
		Max:        DefaultMax,
		SweepEvery: DefaultSweepEvery,
	}
}

// Limiter admits at most Max requests per client within any trailing
// Window. Rejected requests are not recorded.
type Limiter struct {
	cfg    Config
	store  Store
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	admits int
}

// New creates a Limiter over store. A nil logger discards output.
func New(cfg Config, store Store, logger *slog.Logger) *Limiter {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Max <= 0 {
		cfg.Max = DefaultMax
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Limiter{
		cfg:    cfg,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the time source.
func (l *Limiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Admit reports whether clientID may make another request now, recording
// the request when it may. Store failures admit the request.
func (l *Limiter) Admit(ctx context.Context, clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now().UnixMilli()
	span := l.cfg.Window.Milliseconds()

	stored, err := l.store.Window(ctx, clientID)
	if err != nil {
		l.logger.Warn("rate window read failed", "client", clientID, "error", err)
		return true
	}

	window := make([]int64, 0, len(stored)+1)
	for _, ts := range stored {
		if now-ts < span {
			window = append(window, ts)
		}
	}

	if len(window) >= l.cfg.Max {
		if len(window) != len(stored) {
			l.write(ctx, clientID, window)
		}
		return false
	}

	l.write(ctx, clientID, append(window, now))
	l.admits++
	if l.cfg.SweepEvery > 0 && l.admits%l.cfg.SweepEvery == 0 {
		l.sweep(ctx, now-span)
	}
	return true
}

func (l *Limiter) write(ctx context.Context, clientID string, window []int64) {
	if err := l.store.SetWindow(ctx, clientID, window); err != nil {
		l.logger.Warn("rate window write failed", "client", clientID, "error", err)
	}
}

func (l *Limiter) sweep(ctx context.Context, cutoff int64) {
	n, err := l.store.Expire(ctx, cutoff)
	if err != nil {
		l.logger.Warn("rate window sweep failed", "error", err)
		return
	}
	if n > 0 {
		l.logger.Debug("rate windows swept", "expired", n)
	}
}

// ClientID derives the limiter key from an X-Forwarded-For header value.
// The whole value is used verbatim; an absent header maps to UnknownClient.
func ClientID(forwardedFor string) string {
	if forwardedFor == "" {
		return UnknownClient
	}
	return forwardedFor
}
