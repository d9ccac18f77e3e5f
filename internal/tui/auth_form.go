// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
)

// AuthFormModel is the sign-in or the registration form. Registration asks
// for the password twice. Submitting dispatches an async call to the auth
// service whose [LoginResult] finishes the flow in [RootModel].
type AuthFormModel struct {
	ctx      context.Context
	auth     service.ClientAuthService
	register bool

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewLoginModel(ctx context.Context, auth service.ClientAuthService) *AuthFormModel {
	return newAuthFormModel(ctx, auth, false)
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *AuthFormModel {
	return newAuthFormModel(ctx, auth, true)
}

func newAuthFormModel(ctx context.Context, auth service.ClientAuthService, register bool) *AuthFormModel {
	loginInput := textinput.New()
	loginInput.Placeholder = "login"
	loginInput.CharLimit = 64
	loginInput.Width = 40
	loginInput.Focus()

	inputs := []textinput.Model{loginInput, passwordInput("password")}
	if register {
		inputs = append(inputs, passwordInput("repeat password"))
	}

	return &AuthFormModel{
		ctx:      ctx,
		auth:     auth,
		register: register,
		inputs:   inputs,
	}
}

func passwordInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 40
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	return in
}

func (m *AuthFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AuthFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.submitting = false
		switch {
		case errors.Is(result.Err, service.ErrInvalidDataProvided):
			m.errMsg = "Login must be 3-64 characters and password at least 8"
		case result.Err != nil:
			m.errMsg = humanizeError(result.Err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.reset()
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "enter":
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AuthFormModel) View() string {
	labels := []string{"Login", "Password", "Repeat"}

	var b strings.Builder
	for i, in := range m.inputs {
		b.WriteString(labels[i])
		b.WriteString(strings.Repeat(" ", 10-len(labels[i])))
		b.WriteString("│ [")
		b.WriteString(in.View())
		b.WriteString("]\n")
	}

	switch {
	case m.submitting:
		b.WriteString("\n[Please wait...]\n")
	case m.register:
		b.WriteString("\n[Create account]\n")
	default:
		b.WriteString("\n[Sign in]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	title := "SIGN IN"
	if m.register {
		title = "CREATE ACCOUNT"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *AuthFormModel) submit() tea.Cmd {
	if m.submitting {
		return nil
	}

	login := strings.TrimSpace(m.inputs[0].Value())
	pass := m.inputs[1].Value()
	if login == "" || pass == "" {
		m.errMsg = "Login and password are required"
		return nil
	}
	if m.register && pass != m.inputs[2].Value() {
		m.errMsg = "Passwords do not match"
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx, auth, register := m.ctx, m.auth, m.register
	return func() tea.Msg {
		user := models.User{Login: login, Password: pass}

		var (
			sess models.Session
			err  error
		)
		if register {
			sess, err = auth.Register(ctx, user)
		} else {
			sess, err = auth.Login(ctx, user)
		}
		return LoginResult{Session: sess, Login: login, Err: err}
	}
}

func (m *AuthFormModel) moveFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *AuthFormModel) reset() {
	m.submitting = false
	m.errMsg = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
}
