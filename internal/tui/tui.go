package tui

import (
	"context"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/session"
	"github.com/MKhiriev/go-health-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// ExitReason tells the caller why the main loop ended.
type ExitReason int

const (
	// ExitQuit means the user closed the program.
	ExitQuit ExitReason = iota
	// ExitLogout means the user signed out explicitly.
	ExitLogout
	// ExitExpired means the idle guard ended the session.
	ExitExpired
)

type TUI struct {
	auth      service.ClientAuthService
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(auth service.ClientAuthService, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	return &TUI{auth: auth, buildInfo: buildInfo, logger: logger}, nil
}

// LoginFlow runs the sign-in pages until the user is authenticated or quits.
// notice is shown on the first page, e.g. after an idle logout.
func (t *TUI) LoginFlow(ctx context.Context, notice string) (models.Session, error) {
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(notice),
		pageLogin:    NewLoginModel(ctx, t.auth),
		pageRegister: NewRegisterModel(ctx, t.auth),
	}

	root := NewRootModel(pages, pageMenu, t.buildInfo)
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return models.Session{}, err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.Session{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.Session{}, ErrUserQuit
	}

	return result.result, nil
}

// MainLoop runs the record browser. Every key and pointer event is emitted
// into hub; guard transitions arrive through notifier.
func (t *TUI) MainLoop(ctx context.Context, records service.ClientRecordService, hub *session.Hub, notifier *Notifier) (ExitReason, error) {
	model := newMainLoopModel(ctx, records, hub)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	notifier.attach(p.Send)
	defer notifier.detach()

	finalModel, err := p.Run()
	if err != nil {
		return ExitQuit, err
	}

	result, ok := finalModel.(*mainLoopModel)
	if !ok {
		return ExitQuit, tea.ErrProgramKilled
	}

	t.logger.Debug().Int("exit_reason", int(result.exit)).Msg("main loop finished")
	return result.exit, nil
}
