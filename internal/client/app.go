package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/session"
	"github.com/MKhiriev/go-health-keeper/internal/tui"
	"github.com/MKhiriev/go-health-keeper/models"
)

const signOutTimeout = 5 * time.Second

const (
	noticeSignedOut = "You have signed out."
	noticeInvalid   = "Your session is no longer valid. Please sign in again."
)

type App struct {
	services *service.ClientServices
	ui       UI
	session  config.ClientSession
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, cfg config.ClientSession, m *metrics.Metrics, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app needs services and ui")
	}
	if m == nil {
		m = metrics.Nop()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &App{services: services, ui: ui, session: cfg, metrics: m, logger: log}, nil
}

// Run loops between the sign-in flow and the record browser until the user
// quits.
func (a *App) Run() error {
	ctx := context.Background()
	notice := ""

	for {
		sess, err := a.ui.LoginFlow(ctx, notice)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("login flow: %w", err)
		}

		var quit bool
		notice, quit, err = a.runSession(ctx, sess)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// runSession guards one authenticated session and returns the notice for the
// next sign-in screen.
func (a *App) runSession(ctx context.Context, sess models.Session) (notice string, quit bool, err error) {
	log := a.logger.WithSubject(sess.SubjectID)

	records, err := a.services.RecordsFor(sess)
	if err != nil {
		return "", false, fmt.Errorf("bind records to session: %w", err)
	}

	notifier := tui.NewNotifier()
	hub := session.NewHub()

	guard, err := session.NewGuard(a.services.AuthService, notifier, a.logger,
		session.WithOptions(session.Options{
			Timeout:       a.session.Timeout,
			WarningWindow: a.session.WarningWindow,
			Debounce:      a.session.Debounce,
		}),
		session.WithMetrics(a.metrics),
	)
	if err != nil {
		return "", false, fmt.Errorf("create idle guard: %w", err)
	}

	if !guard.Start(ctx, hub) {
		log.Warn().Msg("session rejected by the store right after sign in")
		return noticeInvalid, false, nil
	}
	defer guard.Stop()

	reason, err := a.ui.MainLoop(ctx, records, hub, notifier)
	guard.Stop()
	if err != nil {
		a.signOut(ctx)
		return "", false, fmt.Errorf("main loop: %w", err)
	}

	switch reason {
	case tui.ExitExpired:
		log.Info().Msg("session expired due to inactivity")
		return "You were " + session.ErrSessionExpired.Error() + ".", false, nil
	case tui.ExitLogout:
		a.signOut(ctx)
		a.metrics.IncSessionLogouts("user")
		log.Info().Msg("signed out")
		return noticeSignedOut, false, nil
	default:
		a.signOut(ctx)
		return "", true, nil
	}
}

func (a *App) signOut(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, signOutTimeout)
	defer cancel()

	// queued entries still need the session token
	if err := a.services.FlushAudit(ctx); err != nil {
		a.logger.Err(err).Str("func", "App.signOut").Msg("audit entries not flushed before sign out")
	}
	if err := a.services.AuthService.SignOut(ctx); err != nil {
		a.logger.Err(err).Str("func", "App.signOut").Msg("sign out at store failed")
	}
}
