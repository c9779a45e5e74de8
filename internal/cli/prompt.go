package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/chaz8081/claude-forge/internal/engine"
)

// Interactive prompts. Tests replace these.
var (
	confirmPrompt        = huhConfirm
	selectLanguagePrompt = huhSelectLanguage
)

func huhConfirm(title string, def bool) (bool, error) {
	answer := def
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&answer),
		),
	).Run()
	return answer, err
}

func huhSelectLanguage() (engine.Language, error) {
	var options []huh.Option[engine.Language]
	for _, l := range engine.Languages() {
		options = append(options, huh.NewOption(l.DisplayName(), l))
	}
	selected := engine.TypeScript
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[engine.Language]().
				Title("Select your project language").
				Options(options...).
				Value(&selected),
		),
	).Run()
	return selected, err
}
