package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chaz8081/claude-forge/internal/registry"
)

type model struct {
	svc        Service
	kinds      []registry.Kind
	activeRail int
	cursor     int
	rows       []Row
	preview    string
	width      int
	keys       keyMap

	showHelp bool
	// confirmOverwrite is set while asking whether to replace an installed
	// artifact.
	confirmOverwrite bool

	statusMessage string
	statusIsError bool
}

func newModel(svc Service) model {
	m := model{
		svc:   svc,
		kinds: registry.NamedKinds(),
		width: 96,
		keys:  defaultKeyMap(),
	}
	if svc == nil {
		m.setError("template service unavailable")
		return m
	}
	m.refresh()
	return m
}

func (model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.confirmOverwrite {
			switch {
			case key.Matches(msg, m.keys.Confirm):
				m.confirmOverwrite = false
				m.install(true)
			case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Quit):
				m.confirmOverwrite = false
				m.setStatus("install cancelled")
			}
			return m, nil
		}

		if key.Matches(msg, m.keys.Help) {
			m.showHelp = true
			return m, nil
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Close) {
				m.showHelp = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.LeftRail):
			m.activeRail = m.wrapRail(-1)
			m.cursor = 0
			m.refresh()
		case key.Matches(msg, m.keys.RightRail):
			m.activeRail = m.wrapRail(1)
			m.cursor = 0
			m.refresh()
		case key.Matches(msg, m.keys.CursorDown):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.loadPreview()
			}
		case key.Matches(msg, m.keys.CursorUp):
			if m.cursor > 0 {
				m.cursor--
				m.loadPreview()
			}
		case key.Matches(msg, m.keys.Install):
			if row, ok := m.selected(); ok {
				if row.Installed {
					m.confirmOverwrite = true
					return m, nil
				}
				m.install(false)
			}
		}
	}

	return m, nil
}

func (m model) activeKind() registry.Kind {
	return m.kinds[m.activeRail]
}

func (m model) selected() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m model) wrapRail(delta int) int {
	n := len(m.kinds)
	if n == 0 {
		return 0
	}
	return (m.activeRail + delta + n) % n
}

// refresh reloads the rows of the active rail and the preview of the
// selected row.
func (m *model) refresh() {
	if m.svc == nil {
		return
	}
	rows, err := m.svc.List(m.activeKind())
	if err != nil {
		m.rows = nil
		m.preview = ""
		m.setError(fmt.Sprintf("list %s: %v", m.activeKind().Dir(), err))
		return
	}
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.loadPreview()
}

func (m *model) loadPreview() {
	row, ok := m.selected()
	if !ok || m.svc == nil {
		m.preview = ""
		return
	}
	text, err := m.svc.Preview(m.activeKind(), row.Name)
	if err != nil {
		m.preview = ""
		m.setError(fmt.Sprintf("preview %s: %v", row.Name, err))
		return
	}
	m.preview = text
}

func (m *model) install(force bool) {
	row, ok := m.selected()
	if !ok || m.svc == nil {
		return
	}
	path, err := m.svc.Install(m.activeKind(), row.Name, force)
	switch {
	case errors.Is(err, ErrAlreadyInstalled):
		m.setError(fmt.Sprintf("%s is already installed", row.Name))
		return
	case err != nil:
		m.setError(fmt.Sprintf("install %s: %v", row.Name, err))
		return
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("installed %s", path))
}

func (m *model) setStatus(msg string) {
	m.statusMessage = msg
	m.statusIsError = false
}

func (m *model) setError(msg string) {
	m.statusMessage = msg
	m.statusIsError = true
}
