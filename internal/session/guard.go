// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
)

const (
	DefaultTimeout       = 30 * time.Minute
	DefaultWarningWindow = 5 * time.Minute
	DefaultDebounce      = 60 * time.Second

	signOutTimeout = 10 * time.Second
)

// Options holds the guard timings. Zero fields take the defaults.
type Options struct {
	Timeout       time.Duration
	WarningWindow time.Duration
	Debounce      time.Duration
}

// DefaultOptions returns 30 minute timeout, 5 minute warning, 60 s debounce.
func DefaultOptions() Options {
	return Options{
		Timeout:       DefaultTimeout,
		WarningWindow: DefaultWarningWindow,
		Debounce:      DefaultDebounce,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Timeout == 0 {
		o.Timeout = d.Timeout
	}
	if o.WarningWindow == 0 {
		o.WarningWindow = d.WarningWindow
	}
	if o.Debounce == 0 {
		o.Debounce = d.Debounce
	}
	return o
}

func (o Options) validate() error {
	if o.Timeout <= 0 || o.WarningWindow <= 0 || o.Debounce < 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidOptions)
	}
	if o.WarningWindow >= o.Timeout {
		return fmt.Errorf("%w: warning window %s must be shorter than timeout %s", ErrInvalidOptions, o.WarningWindow, o.Timeout)
	}
	if o.Debounce >= o.Timeout-o.WarningWindow {
		return fmt.Errorf("%w: debounce %s must be shorter than the %s before the warning", ErrInvalidOptions, o.Debounce, o.Timeout-o.WarningWindow)
	}
	return nil
}

// Option configures a Guard.
type Option func(*Guard)

// WithOptions sets the guard timings.
func WithOptions(o Options) Option {
	return func(g *Guard) {
		g.opts = o
	}
}

// WithMetrics counts logouts in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Guard) {
		g.metrics = m
	}
}

// Guard enforces the idle timeout of one authenticated session.
type Guard struct {
	session  Session
	notifier Notifier
	logger   *logger.Logger
	metrics  *metrics.Metrics
	opts     Options

	mu           sync.Mutex
	state        State
	running      bool
	gen          uint64
	lastRearm    time.Time
	warnTimer    *time.Timer
	logoutTimer  *time.Timer
	unsubscribes []func()
	signOutCtx   context.Context
}

// NewGuard constructs a guard for one session. The guard does nothing until
// Start is called.
func NewGuard(sess Session, notifier Notifier, log *logger.Logger, opts ...Option) (*Guard, error) {
	g := &Guard{
		session:  sess,
		notifier: notifier,
		logger:   log,
		state:    Active,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.opts = g.opts.withDefaults()
	if err := g.opts.validate(); err != nil {
		return nil, err
	}
	if g.logger == nil {
		g.logger = logger.Nop()
	}
	return g, nil
}

// Start arms the timers and subscribes to sources. It returns false and arms
// nothing when the session is not valid. Calling Start on a running guard is
// a no-op that returns true.
func (g *Guard) Start(ctx context.Context, sources ...ActivitySource) bool {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return true
	}
	if g.state == LoggedOut {
		g.mu.Unlock()
		return false
	}
	g.mu.Unlock()

	if !g.session.Valid(ctx) {
		g.logger.Info().Str("func", "Guard.Start").Msg("no valid session, idle guard not armed")
		return false
	}

	g.mu.Lock()
	g.state = Active
	g.running = true
	g.signOutCtx = context.WithoutCancel(ctx)
	g.armLocked(time.Now())
	g.mu.Unlock()

	unsubs := make([]func(), 0, len(sources))
	for _, src := range sources {
		unsubs = append(unsubs, src.Subscribe(g.Activity))
	}

	g.mu.Lock()
	if !g.running {
		// stopped or expired while subscribing
		g.mu.Unlock()
		for _, u := range unsubs {
			u()
		}
		return true
	}
	g.unsubscribes = append(g.unsubscribes, unsubs...)
	g.mu.Unlock()

	g.logger.Debug().
		Str("func", "Guard.Start").
		Dur("timeout", g.opts.Timeout).
		Dur("warning_window", g.opts.WarningWindow).
		Msg("idle guard armed")
	return true
}

// Activity registers a qualifying interaction. A rearm happens only if at
// least the debounce interval has passed since the previous rearm; while the
// warning is showing every activity rearms.
func (g *Guard) Activity(a Activity) {
	g.mu.Lock()
	if !g.running || g.state == LoggedOut {
		g.mu.Unlock()
		return
	}
	now := time.Now()
	if g.state != WarningIssued && now.Sub(g.lastRearm) < g.opts.Debounce {
		g.mu.Unlock()
		return
	}
	resumed := g.state == WarningIssued
	g.state = Active
	g.armLocked(now)
	g.mu.Unlock()

	if resumed {
		g.logger.Debug().Str("func", "Guard.Activity").Str("activity", a.String()).Msg("session resumed from warning")
		g.notifier.OnResume()
	}
}

// Stop clears both timers and removes every activity subscription. It is
// safe to call repeatedly and after the guard has logged out.
func (g *Guard) Stop() {
	g.mu.Lock()
	g.stopTimersLocked()
	g.gen++
	g.running = false
	unsubs := g.unsubscribes
	g.unsubscribes = nil
	g.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
}

// State returns the current state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Running reports whether timers are armed.
func (g *Guard) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Deadline returns when the session will be logged out if no further
// activity arrives. The zero time is returned when the guard is not running.
func (g *Guard) Deadline() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.running {
		return time.Time{}
	}
	return g.lastRearm.Add(g.opts.Timeout)
}

func (g *Guard) armLocked(now time.Time) {
	g.stopTimersLocked()
	g.gen++
	gen := g.gen
	g.lastRearm = now

	g.warnTimer = time.AfterFunc(g.opts.Timeout-g.opts.WarningWindow, func() { g.onWarning(gen) })
	g.logoutTimer = time.AfterFunc(g.opts.Timeout, func() { g.onTimeout(gen) })
}

func (g *Guard) stopTimersLocked() {
	if g.warnTimer != nil {
		g.warnTimer.Stop()
		g.warnTimer = nil
	}
	if g.logoutTimer != nil {
		g.logoutTimer.Stop()
		g.logoutTimer = nil
	}
}

func (g *Guard) onWarning(gen uint64) {
	g.mu.Lock()
	if gen != g.gen || !g.running || g.state != Active {
		g.mu.Unlock()
		return
	}
	g.state = WarningIssued
	remaining := time.Until(g.lastRearm.Add(g.opts.Timeout))
	g.mu.Unlock()

	g.logger.Info().Str("func", "Guard.onWarning").Dur("remaining", remaining).Msg("session about to expire")
	g.notifier.OnWarning(remaining)
}

func (g *Guard) onTimeout(gen uint64) {
	g.mu.Lock()
	if gen != g.gen || !g.running || g.state == LoggedOut {
		g.mu.Unlock()
		return
	}
	g.state = LoggedOut
	g.running = false
	g.stopTimersLocked()
	unsubs := g.unsubscribes
	g.unsubscribes = nil
	ctx := g.signOutCtx
	g.mu.Unlock()

	for _, u := range unsubs {
		u()
	}

	signOutCtx, cancel := context.WithTimeout(ctx, signOutTimeout)
	defer cancel()
	if err := g.session.SignOut(signOutCtx); err != nil {
		g.logger.Err(err).Str("func", "Guard.onTimeout").Msg("sign out at source failed")
	}

	if g.metrics != nil {
		g.metrics.IncSessionLogouts("inactivity")
	}
	g.logger.Info().Str("func", "Guard.onTimeout").Msg("session expired due to inactivity")
	g.notifier.OnLogout(ErrSessionExpired)
}
