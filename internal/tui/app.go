package tui

import (
	"github.com/MKhiriev/go-health-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// RootModel drives the sign-in flow. It owns the page table, switches pages
// on [NavigateTo] and ends the program on a successful [LoginResult] or on
// Ctrl+C. "v" on the menu page shows build information.
type RootModel struct {
	pages map[string]tea.Model
	page  string

	buildInfo     models.AppBuildInfo
	showBuildInfo bool

	result     models.Session
	quitByUser bool
}

func NewRootModel(pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{pages: pages, page: startPage, buildInfo: buildInfo}
}

func (r RootModel) active() tea.Model {
	return r.pages[r.page]
}

func (r RootModel) Init() tea.Cmd {
	if page := r.active(); page != nil {
		return page.Init()
	}
	return nil
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := r.globalKey(msg); handled {
			return r, cmd
		}

	case NavigateTo:
		next, ok := r.pages[msg.Page]
		if !ok {
			return r, nil
		}
		r.page = msg.Page
		r.showBuildInfo = false
		if msg.Payload == nil {
			return r, next.Init()
		}
		payload := msg.Payload
		return r, func() tea.Msg { return payload }

	case LoginResult:
		if msg.Err == nil {
			r.result = msg.Session
			return r, tea.Quit
		}
	}

	page := r.active()
	if page == nil {
		return r, nil
	}
	updated, cmd := page.Update(msg)
	r.pages[r.page] = updated
	return r, cmd
}

// globalKey handles keys that work regardless of the page. It reports
// whether the key was consumed.
func (r *RootModel) globalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		r.quitByUser = true
		return true, tea.Quit
	}

	if r.showBuildInfo {
		if msg.String() == "esc" || msg.String() == "v" {
			r.showBuildInfo = false
		}
		return true, nil
	}

	if msg.String() == "v" && r.page == pageMenu {
		r.showBuildInfo = true
		return true, nil
	}
	return false, nil
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if page := r.active(); page != nil {
		return page.View()
	}
	return renderPage("HEALTH KEEPER", "", "")
}
