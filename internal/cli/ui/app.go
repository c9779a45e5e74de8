package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the template browser and blocks until the user quits.
func Run(svc Service) error {
	p := tea.NewProgram(newModel(svc))
	_, err := p.Run()
	return err
}
