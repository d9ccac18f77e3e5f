package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Notifier forwards idle guard transitions into a running program. It is
// created before the program so the guard can be built first; transitions
// that arrive while no program is attached are kept and replayed on attach,
// only the latest one.
type Notifier struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending tea.Msg
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// OnWarning implements session.Notifier.
func (n *Notifier) OnWarning(remaining time.Duration) {
	n.deliver(sessionWarningMsg{remaining: remaining})
}

// OnResume implements session.Notifier.
func (n *Notifier) OnResume() {
	n.deliver(sessionResumedMsg{})
}

// OnLogout implements session.Notifier.
func (n *Notifier) OnLogout(err error) {
	n.deliver(sessionExpiredMsg{err: err})
}

func (n *Notifier) attach(send func(tea.Msg)) {
	n.mu.Lock()
	n.send = send
	pending := n.pending
	n.pending = nil
	n.mu.Unlock()

	if pending != nil {
		send(pending)
	}
}

func (n *Notifier) detach() {
	n.mu.Lock()
	n.send = nil
	n.mu.Unlock()
}

func (n *Notifier) deliver(msg tea.Msg) {
	n.mu.Lock()
	send := n.send
	if send == nil {
		n.pending = msg
	}
	n.mu.Unlock()

	if send != nil {
		send(msg)
	}
}
