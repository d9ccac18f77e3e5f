package client

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
	"github.com/MKhiriev/go-health-keeper/internal/mock"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/session"
	"github.com/MKhiriev/go-health-keeper/internal/tui"
	"github.com/MKhiriev/go-health-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testSession = models.Session{SubjectID: "8c2d2c9e-55f8-4c43-a0a5-2ad6a1d1f1d6", Token: "token"}

type loopResult struct {
	reason tui.ExitReason
	err    error
}

// fakeUI replays scripted sign-in and main loop outcomes.
type fakeUI struct {
	logins  []error
	loops   []loopResult
	notices []string

	hubSubscribers []int
	hubs           []*session.Hub

	onLoop func(records service.ClientRecordService)
}

func (f *fakeUI) LoginFlow(_ context.Context, notice string) (models.Session, error) {
	f.notices = append(f.notices, notice)
	if len(f.logins) == 0 {
		return models.Session{}, tui.ErrUserQuit
	}
	err := f.logins[0]
	f.logins = f.logins[1:]
	if err != nil {
		return models.Session{}, err
	}
	return testSession, nil
}

func (f *fakeUI) MainLoop(_ context.Context, records service.ClientRecordService, hub *session.Hub, notifier *tui.Notifier) (tui.ExitReason, error) {
	if records == nil || notifier == nil {
		return tui.ExitQuit, errors.New("main loop started without records or notifier")
	}
	if f.onLoop != nil {
		f.onLoop(records)
	}
	f.hubs = append(f.hubs, hub)
	f.hubSubscribers = append(f.hubSubscribers, hub.Len())

	r := f.loops[0]
	f.loops = f.loops[1:]
	return r.reason, r.err
}

func newTestApp(t *testing.T, ui UI) (*App, *mock.MockServerAdapter) {
	t.Helper()

	adapter := mock.NewMockServerAdapter(gomock.NewController(t))
	services, err := service.NewClientServices(adapter, &config.ClientConfig{}, metrics.Nop(), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(services.Close)

	app, err := NewApp(services, ui, config.ClientSession{}, nil, logger.Nop())
	require.NoError(t, err)
	return app, adapter
}

func TestNewApp_RequiresDependencies(t *testing.T) {
	_, err := NewApp(nil, &fakeUI{}, config.ClientSession{}, nil, nil)
	assert.Error(t, err)
}

func TestApp_QuitAtSignIn(t *testing.T) {
	ui := &fakeUI{}
	app, _ := newTestApp(t, ui)

	require.NoError(t, app.Run())
	assert.Equal(t, []string{""}, ui.notices)
}

func TestApp_SignInError(t *testing.T) {
	ui := &fakeUI{logins: []error{errors.New("terminal gone")}}
	app, _ := newTestApp(t, ui)

	err := app.Run()
	assert.ErrorContains(t, err, "terminal gone")
}

func TestApp_LogoutReturnsToSignIn(t *testing.T) {
	ui := &fakeUI{
		logins: []error{nil},
		loops:  []loopResult{{reason: tui.ExitLogout}},
	}
	app, adapter := newTestApp(t, ui)

	adapter.EXPECT().CheckSession(gomock.Any()).Return(models.SessionState{Valid: true, SubjectID: testSession.SubjectID}, nil)
	adapter.EXPECT().SignOut(gomock.Any()).Return(nil)

	require.NoError(t, app.Run())

	assert.Equal(t, []string{"", noticeSignedOut}, ui.notices)
	assert.Equal(t, []int{1}, ui.hubSubscribers)
	assert.Equal(t, 0, ui.hubs[0].Len())
}

func TestApp_AuditReachesStoreBeforeSignOut(t *testing.T) {
	const recordID = "5d1e6f7a-8b9c-4d0e-9f1a-2b3c4d5e6f70"

	ui := &fakeUI{
		logins: []error{nil},
		loops:  []loopResult{{reason: tui.ExitLogout}},
		onLoop: func(records service.ClientRecordService) {
			_ = records.Delete(context.Background(), models.KindDailyLog, recordID)
		},
	}
	app, adapter := newTestApp(t, ui)

	adapter.EXPECT().CheckSession(gomock.Any()).Return(models.SessionState{Valid: true, SubjectID: testSession.SubjectID}, nil)
	gomock.InOrder(
		adapter.EXPECT().DeleteRecord(gomock.Any(), recordID).Return(nil),
		adapter.EXPECT().Append(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e models.AuditEntry) error {
				assert.Equal(t, models.AuditDelete, e.Action)
				return nil
			}),
		adapter.EXPECT().SignOut(gomock.Any()).Return(nil),
	)

	require.NoError(t, app.Run())
}

func TestApp_ExpiryReturnsToSignInWithNotice(t *testing.T) {
	ui := &fakeUI{
		logins: []error{nil},
		loops:  []loopResult{{reason: tui.ExitExpired}},
	}
	app, adapter := newTestApp(t, ui)

	// the guard already signed out; the app must not do it again
	adapter.EXPECT().CheckSession(gomock.Any()).Return(models.SessionState{Valid: true}, nil)

	require.NoError(t, app.Run())

	require.Len(t, ui.notices, 2)
	assert.Contains(t, ui.notices[1], "logged out due to inactivity")
}

func TestApp_QuitSignsOut(t *testing.T) {
	ui := &fakeUI{
		logins: []error{nil},
		loops:  []loopResult{{reason: tui.ExitQuit}},
	}
	app, adapter := newTestApp(t, ui)

	adapter.EXPECT().CheckSession(gomock.Any()).Return(models.SessionState{Valid: true}, nil)
	adapter.EXPECT().SignOut(gomock.Any()).Return(errors.New("offline"))

	require.NoError(t, app.Run())
	assert.Len(t, ui.notices, 1)
}

func TestApp_InvalidSessionSkipsMainLoop(t *testing.T) {
	ui := &fakeUI{logins: []error{nil}}
	app, adapter := newTestApp(t, ui)

	adapter.EXPECT().CheckSession(gomock.Any()).Return(models.SessionState{}, errors.New("unreachable"))

	require.NoError(t, app.Run())

	assert.Empty(t, ui.hubs)
	assert.Equal(t, []string{"", noticeInvalid}, ui.notices)
}

func TestApp_MainLoopError(t *testing.T) {
	ui := &fakeUI{
		logins: []error{nil},
		loops:  []loopResult{{err: errors.New("render failed")}},
	}
	app, adapter := newTestApp(t, ui)

	adapter.EXPECT().CheckSession(gomock.Any()).Return(models.SessionState{Valid: true}, nil)
	adapter.EXPECT().SignOut(gomock.Any()).Return(nil)

	err := app.Run()
	assert.ErrorContains(t, err, "render failed")
}
