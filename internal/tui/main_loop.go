// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/session"
	"github.com/MKhiriev/go-health-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
	screenConfirmDelete
	screenExpired
)

const maskedValue = "••••••"

type warningTickMsg struct{}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// mainLoopModel browses, edits and exports records of one session.
type mainLoopModel struct {
	ctx     context.Context
	records service.ClientRecordService
	hub     *session.Hub

	screen  screen
	kindIdx int

	items []models.Record
	idx   int

	detailID string
	detail   models.Record
	revealed bool
	broken   map[string]bool

	form *recordForm

	loading bool
	status  string
	errMsg  string

	warnDeadline time.Time
	expiredErr   error

	exit ExitReason
}

func newMainLoopModel(ctx context.Context, records service.ClientRecordService, hub *session.Hub) *mainLoopModel {
	return &mainLoopModel{
		ctx:     ctx,
		records: records,
		hub:     hub,
	}
}

func (m *mainLoopModel) kind() models.EntityKind {
	return models.EntityKinds[m.kindIdx]
}

func (m *mainLoopModel) Init() tea.Cmd {
	m.loading = true
	return m.cmdList(m.kind())
}

func (m *mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionWarningMsg:
		m.warnDeadline = time.Now().Add(msg.remaining)
		return m, warningTick()
	case warningTickMsg:
		if m.warnDeadline.IsZero() || m.screen == screenExpired {
			return m, nil
		}
		return m, warningTick()
	case sessionResumedMsg:
		m.warnDeadline = time.Time{}
		return m, nil
	case sessionExpiredMsg:
		m.expire(msg.err)
		return m, nil

	case tea.MouseMsg:
		m.emitMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)

	case listLoadedMsg:
		return m.onListLoaded(msg)
	case recordLoadedMsg:
		return m.onRecordLoaded(msg)
	case recordSavedMsg:
		return m.onRecordSaved(msg)
	case recordDeletedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Delete failed: " + humanizeError(msg.err)
			m.screen = screenDetail
			return m, nil
		}
		m.clearDetail()
		m.screen = screenList
		m.status = "Record deleted"
		m.loading = true
		return m, m.cmdList(m.kind())
	case exportDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Export failed: " + humanizeError(msg.err)
			return m, nil
		}
		m.status = "Record exported to clipboard"
		return m, nil
	}

	if m.screen == screenForm && m.form != nil {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *mainLoopModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == screenExpired {
		if key.Matches(msg, keys.enter, keys.quit) {
			m.exit = ExitExpired
			return m, tea.Quit
		}
		return m, nil
	}

	m.hub.Emit(session.KeyPress)

	if msg.String() == "ctrl+c" {
		m.exit = ExitQuit
		return m, tea.Quit
	}

	switch m.screen {
	case screenList:
		return m.updateList(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m, nil
}

func (m *mainLoopModel) emitMouse(msg tea.MouseMsg) {
	if m.screen == screenExpired {
		return
	}
	switch {
	case tea.MouseEvent(msg).IsWheel():
		m.hub.Emit(session.Scroll)
	case msg.Action == tea.MouseActionPress:
		m.hub.Emit(session.PointerPress)
	}
}

func (m *mainLoopModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		m.exit = ExitQuit
		return m, tea.Quit
	case key.Matches(msg, keys.logout):
		m.exit = ExitLogout
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.left):
		return m, m.switchKind(-1)
	case key.Matches(msg, keys.right):
		return m, m.switchKind(1)
	case key.Matches(msg, keys.refresh):
		m.resetMessages()
		m.loading = true
		return m, m.cmdList(m.kind())
	case key.Matches(msg, keys.newItem):
		m.resetMessages()
		m.form = newRecordForm(m.kind(), "", nil)
		m.screen = screenForm
	case key.Matches(msg, keys.enter):
		if len(m.items) == 0 {
			return m, nil
		}
		id := m.items[m.idx].ID()
		if id == "" {
			m.errMsg = "Record has no id"
			return m, nil
		}
		m.resetMessages()
		m.loading = true
		return m, m.cmdGet(m.kind(), id)
	}
	return m, nil
}

func (m *mainLoopModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.clearDetail()
		m.screen = screenList
	case key.Matches(msg, keys.reveal):
		m.revealed = !m.revealed
	case key.Matches(msg, keys.edit):
		m.resetMessages()
		m.form = newRecordForm(m.kind(), m.detailID, m.detail)
		m.screen = screenForm
	case key.Matches(msg, keys.delete):
		m.resetMessages()
		m.screen = screenConfirmDelete
	case key.Matches(msg, keys.export):
		m.resetMessages()
		m.loading = true
		return m, m.cmdExport(m.kind(), m.detailID)
	case key.Matches(msg, keys.logout):
		m.exit = ExitLogout
		return m, tea.Quit
	}
	return m, nil
}

func (m *mainLoopModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		back := screenList
		if !m.form.creating() {
			back = screenDetail
		}
		m.form = nil
		m.screen = back
		return m, nil
	case "ctrl+s":
		if m.loading {
			return m, nil
		}
		record, err := m.form.record()
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.form.errMsg = ""
		m.loading = true
		return m, m.cmdSave(m.form.kind, m.form.id, record)
	case "tab", "down", "enter":
		m.form.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.form.moveFocus(-1)
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m *mainLoopModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.loading = true
		return m, m.cmdDelete(m.kind(), m.detailID)
	case key.Matches(msg, keys.no):
		m.screen = screenDetail
	}
	return m, nil
}

func (m *mainLoopModel) onListLoaded(msg listLoadedMsg) (tea.Model, tea.Cmd) {
	// a late answer for a tab the user already left
	if msg.kind != m.kind() {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.items = nil
		m.idx = 0
		m.errMsg = "Loading failed: " + humanizeError(msg.err)
		return m, nil
	}

	sort.SliceStable(msg.records, func(i, j int) bool {
		return recordSummary(msg.kind, msg.records[i]) > recordSummary(msg.kind, msg.records[j])
	})
	m.items = msg.records
	if m.idx >= len(m.items) {
		m.idx = max(len(m.items)-1, 0)
	}
	if len(msg.warnings) > 0 {
		m.errMsg = fmt.Sprintf("%d field(s) could not be decrypted", len(msg.warnings))
	}
	return m, nil
}

func (m *mainLoopModel) onRecordLoaded(msg recordLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errMsg = "Opening failed: " + humanizeError(msg.err)
		return m, nil
	}

	m.detailID = msg.record.ID()
	m.detail = msg.record
	m.revealed = false
	m.broken = make(map[string]bool, len(msg.warnings))
	for _, w := range msg.warnings {
		m.broken[w.Field] = true
	}
	m.screen = screenDetail
	return m, nil
}

func (m *mainLoopModel) onRecordSaved(msg recordSavedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		if m.form != nil {
			m.form.errMsg = humanizeError(msg.err)
		}
		return m, nil
	}

	m.form = nil
	m.clearDetail()
	m.screen = screenList
	if msg.created {
		m.status = "Record created"
	} else {
		m.status = "Record saved"
	}
	m.loading = true
	return m, m.cmdList(m.kind())
}

func (m *mainLoopModel) switchKind(delta int) tea.Cmd {
	n := len(models.EntityKinds)
	m.kindIdx = (m.kindIdx + delta + n) % n
	m.items = nil
	m.idx = 0
	m.resetMessages()
	m.loading = true
	return m.cmdList(m.kind())
}

// expire drops every decrypted value the model holds.
func (m *mainLoopModel) expire(err error) {
	m.screen = screenExpired
	m.expiredErr = err
	m.items = nil
	m.form = nil
	m.clearDetail()
	m.warnDeadline = time.Time{}
	m.resetMessages()
}

func (m *mainLoopModel) clearDetail() {
	m.detailID = ""
	m.detail = nil
	m.revealed = false
	m.broken = nil
}

func (m *mainLoopModel) resetMessages() {
	m.status = ""
	m.errMsg = ""
}

func warningTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return warningTickMsg{} })
}

func (m *mainLoopModel) cmdList(kind models.EntityKind) tea.Cmd {
	ctx, records := m.ctx, m.records
	return func() tea.Msg {
		items, warnings, err := records.List(ctx, kind)
		return listLoadedMsg{kind: kind, records: items, warnings: warnings, err: err}
	}
}

func (m *mainLoopModel) cmdGet(kind models.EntityKind, id string) tea.Cmd {
	ctx, records := m.ctx, m.records
	return func() tea.Msg {
		record, warnings, err := records.Get(ctx, kind, id)
		return recordLoadedMsg{kind: kind, record: record, warnings: warnings, err: err}
	}
}

func (m *mainLoopModel) cmdSave(kind models.EntityKind, id string, record models.Record) tea.Cmd {
	ctx, records := m.ctx, m.records
	return func() tea.Msg {
		if id == "" {
			newID, err := records.Create(ctx, kind, record)
			return recordSavedMsg{id: newID, created: true, err: err}
		}
		err := records.Update(ctx, kind, id, record)
		return recordSavedMsg{id: id, err: err}
	}
}

func (m *mainLoopModel) cmdDelete(kind models.EntityKind, id string) tea.Cmd {
	ctx, records := m.ctx, m.records
	return func() tea.Msg {
		return recordDeletedMsg{err: records.Delete(ctx, kind, id)}
	}
}

func (m *mainLoopModel) cmdExport(kind models.EntityKind, id string) tea.Cmd {
	ctx, records := m.ctx, m.records
	return func() tea.Msg {
		data, err := records.Export(ctx, kind, id)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{err: writeClipboard(string(data))}
	}
}

func (m *mainLoopModel) View() string {
	var b strings.Builder

	if m.screen != screenExpired && !m.warnDeadline.IsZero() {
		remaining := time.Until(m.warnDeadline)
		b.WriteString(bannerStyle.Render(fmt.Sprintf(
			"Session ends in %s due to inactivity. Press any key to stay signed in.",
			formatRemaining(remaining),
		)))
		b.WriteString("\n\n")
	}

	switch m.screen {
	case screenExpired:
		return m.viewExpired()
	case screenDetail:
		b.WriteString(m.viewDetail())
	case screenForm:
		b.WriteString(m.viewForm())
	case screenConfirmDelete:
		b.WriteString(renderPage("DELETE RECORD", "Delete this record? It cannot be restored.", "y: delete │ n/esc: cancel"))
	default:
		b.WriteString(m.viewList())
	}

	return b.String()
}

func (m *mainLoopModel) viewTabs() string {
	tabs := make([]string, len(models.EntityKinds))
	for i, kind := range models.EntityKinds {
		if i == m.kindIdx {
			tabs[i] = titleStyle.Render("[" + kind.Title() + "]")
		} else {
			tabs[i] = " " + kind.Title() + " "
		}
	}
	return strings.Join(tabs, " ")
}

func (m *mainLoopModel) viewList() string {
	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString("Loading...\n")
	case len(m.items) == 0:
		b.WriteString("No records yet. Press n to add one.\n")
	default:
		for i, item := range m.items {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %2d  %s\n", cursor, i+1, fitText(recordSummary(m.kind(), item), 60)))
		}
	}

	m.writeMessages(&b)
	return renderPage("HEALTH RECORDS", strings.TrimRight(b.String(), "\n"),
		"enter: open │ ←/→: kind │ n: new │ r: refresh │ L: logout │ q: quit")
}

func (m *mainLoopModel) viewDetail() string {
	defs := formFields(m.kind())
	width := 0
	for _, def := range defs {
		width = max(width, len(def.name))
	}

	var b strings.Builder
	for _, def := range defs {
		value := formatFieldValue(m.detail[def.name])
		switch {
		case m.broken[def.name]:
			value = errorStyle.Render("[unreadable]")
		case value == "":
			value = "-"
		case def.sensitive && !m.revealed:
			value = maskedValue
		}

		marker := "  "
		if def.sensitive {
			marker = lockedStyle.Render("🔒") + " "
		}
		b.WriteString(marker)
		b.WriteString(def.name)
		b.WriteString(strings.Repeat(" ", width-len(def.name)))
		b.WriteString(" │ ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	m.writeMessages(&b)

	reveal := "space: show"
	if m.revealed {
		reveal = "space: hide"
	}
	return renderPage(strings.ToUpper(m.kind().Title()), strings.TrimRight(b.String(), "\n"),
		reveal+" │ e: edit │ d: delete │ x: export │ esc: back")
}

func (m *mainLoopModel) viewForm() string {
	title := "NEW " + strings.ToUpper(m.form.kind.Title())
	if !m.form.creating() {
		title = "EDIT " + strings.ToUpper(m.form.kind.Title())
	}

	body := m.form.view()
	if m.loading {
		body += "\n\n[Saving...]"
	}
	return renderPage(title, body, "tab: next field │ ctrl+s: save │ esc: cancel")
}

func (m *mainLoopModel) viewExpired() string {
	msg := session.ErrSessionExpired.Error()
	if m.expiredErr != nil {
		msg = m.expiredErr.Error()
	}
	box := expiredStyle.Render("You have been " + msg + ".\n\nPress enter to sign in again.")
	return renderPage("SESSION ENDED", box, "enter: continue")
}

func (m *mainLoopModel) writeMessages(b *strings.Builder) {
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}
}
