package tui

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-health-keeper/internal/mock"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func fillAuthForm(m *AuthFormModel, values ...string) {
	for i, v := range values {
		m.inputs[i].SetValue(v)
	}
}

func TestAuthForm_RequiresCredentials(t *testing.T) {
	m := NewLoginModel(context.Background(), mock.NewMockClientAuthService(gomock.NewController(t)))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Login and password are required")
}

func TestAuthForm_RegisterChecksRepeat(t *testing.T) {
	m := NewRegisterModel(context.Background(), mock.NewMockClientAuthService(gomock.NewController(t)))
	require.Len(t, m.inputs, 3)

	fillAuthForm(m, "alice", "secret-pass", "secret-pas")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Passwords do not match")
}

func TestAuthForm_Login(t *testing.T) {
	auth := mock.NewMockClientAuthService(gomock.NewController(t))
	ctx := context.Background()
	m := NewLoginModel(ctx, auth)

	want := models.Session{SubjectID: "subject-1", Token: "token"}
	auth.EXPECT().
		Login(ctx, models.User{Login: "alice", Password: "secret-pass"}).
		Return(want, nil)

	fillAuthForm(m, " alice ", "secret-pass")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)

	// a second enter while the call is in flight does nothing
	_, again := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, again)

	msg := cmd()
	assert.Equal(t, LoginResult{Session: want, Login: "alice"}, msg)
}

func TestAuthForm_Register(t *testing.T) {
	auth := mock.NewMockClientAuthService(gomock.NewController(t))
	ctx := context.Background()
	m := NewRegisterModel(ctx, auth)

	auth.EXPECT().
		Register(ctx, models.User{Login: "alice", Password: "secret-pass"}).
		Return(models.Session{SubjectID: "subject-1"}, nil)

	fillAuthForm(m, "alice", "secret-pass", "secret-pass")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	result, ok := cmd().(LoginResult)
	require.True(t, ok)
	assert.NoError(t, result.Err)
	assert.Equal(t, "subject-1", result.Session.SubjectID)
}

func TestAuthForm_ShowsFailure(t *testing.T) {
	m := NewLoginModel(context.Background(), mock.NewMockClientAuthService(gomock.NewController(t)))
	m.submitting = true

	m.Update(LoginResult{Err: service.ErrWrongPassword})

	assert.False(t, m.submitting)
	assert.Contains(t, m.View(), "Wrong login or password")
}

func TestAuthForm_EscResetsAndGoesBack(t *testing.T) {
	m := NewLoginModel(context.Background(), mock.NewMockClientAuthService(gomock.NewController(t)))
	fillAuthForm(m, "alice", "secret-pass")
	m.errMsg = "old"

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, NavigateTo{Page: pageMenu}, cmd())
	assert.Empty(t, m.inputs[0].Value())
	assert.Empty(t, m.errMsg)
}

func TestAuthForm_ExplainsCredentialRules(t *testing.T) {
	m := NewRegisterModel(context.Background(), mock.NewMockClientAuthService(gomock.NewController(t)))

	m.Update(LoginResult{Err: service.ErrInvalidDataProvided})

	assert.Contains(t, m.View(), "at least 8")
}
