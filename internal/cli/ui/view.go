package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// previewLines caps the preview panel height.
const previewLines = 24

func (m model) View() string {
	width := m.width
	if width < 1 {
		width = 96
	}

	railWidth, listWidth, previewWidth, stacked := m.layoutWidths(width)

	panels := []string{
		m.renderRail(railWidth),
		m.renderList(listWidth),
		m.renderPreview(previewWidth),
	}
	var body string
	if stacked {
		body = lipgloss.JoinVertical(lipgloss.Left, panels...)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	}

	footer := footerStyle.Width(contentWidthForStyle(width, footerStyle)).Render(m.footerText())

	modalWidth := contentWidthForStyle(width, modalStyle)
	switch {
	case m.confirmOverwrite:
		row, _ := m.selected()
		prompt := "Overwrite " + m.activeKind().FileName(row.Name) + "?\n- y/enter: overwrite  n/esc: cancel"
		return lipgloss.JoinVertical(lipgloss.Left, body, footer, "", modalStyle.Width(modalWidth).Render(prompt))
	case m.showHelp:
		help := "Help\n- left/right: switch rail\n- up/down: move cursor\n- i: install into .claude/\n- q: quit\n- esc: close help"
		return lipgloss.JoinVertical(lipgloss.Left, body, footer, "", modalStyle.Width(modalWidth).Render(help))
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m model) renderRail(width int) string {
	lines := make([]string, 0, len(m.kinds))
	for i, k := range m.kinds {
		line := "  " + k.Dir()
		if i == m.activeRail {
			line = highlightStyle.Render("> " + k.Dir())
		}
		lines = append(lines, line)
	}
	return panelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m model) renderList(width int) string {
	if len(m.rows) == 0 {
		return panelStyle.Width(width).Render(mutedStyle.Render("no templates"))
	}
	lines := make([]string, 0, len(m.rows))
	for i, row := range m.rows {
		prefix, label := "  ", row.Name
		if i == m.cursor {
			prefix, label = highlightStyle.Render("> "), highlightStyle.Render(row.Name)
		}
		mark := "  "
		if row.Installed {
			mark = installedStyle.Render("✓ ")
		}
		line := prefix + mark + label
		if row.Source != "" && row.Source != "builtin" {
			line += mutedStyle.Render(" [" + row.Source + "]")
		}
		lines = append(lines, line)
	}
	return panelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m model) renderPreview(width int) string {
	if m.preview == "" {
		return panelStyle.Width(width).Render(mutedStyle.Render("no preview"))
	}
	lines := strings.Split(strings.TrimRight(m.preview, "\n"), "\n")
	if len(lines) > previewLines {
		lines = append(lines[:previewLines], mutedStyle.Render("…"))
	}
	return panelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m model) layoutWidths(totalWidth int) (rail int, list int, preview int, stacked bool) {
	frame := styleFrameWidth(panelStyle)
	single := func() (int, int, int, bool) {
		content := totalWidth - frame
		if content < 1 {
			content = 1
		}
		return content, content, content, true
	}
	if totalWidth < (frame*3)+30 {
		return single()
	}

	available := totalWidth - (frame * 3)
	rail = available / 6
	if rail < 12 {
		rail = 12
	}

	remaining := available - rail
	list = remaining * 2 / 5
	preview = remaining - list

	if list < 10 || preview < 10 {
		return single()
	}
	return rail, list, preview, false
}

func contentWidthForStyle(totalWidth int, style lipgloss.Style) int {
	content := totalWidth - styleFrameWidth(style)
	if content < 1 {
		return 1
	}
	return content
}

func (m model) footerText() string {
	installKey := "i"
	if keys := m.keys.Install.Keys(); len(keys) > 0 {
		installKey = keys[0]
	}

	text := "left/right: rail  up/down: move  " + installKey + ": install  ?: help  q: quit"
	if m.statusMessage == "" {
		return text
	}
	status := m.statusMessage
	if m.statusIsError {
		status = errorStyle.Render(status)
	}
	return text + "  |  " + status
}

func styleFrameWidth(style lipgloss.Style) int {
	return lipgloss.Width(style.Width(1).Render("x")) - 1
}
