package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auradecor/studio/internal/studio"
)

// PromptDesignStyle prompts the user to pick a base style for the first
// concept.
func PromptDesignStyle() (string, error) {
	m := styleSelectModel{options: studio.DesignStyles}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running style selection: %w", err)
	}

	result := finalModel.(styleSelectModel)
	if result.quit {
		return "", fmt.Errorf("style selection cancelled")
	}
	return result.selected, nil
}

type styleSelectModel struct {
	options  []string
	cursor   int
	selected string
	quit     bool
}

func (m styleSelectModel) Init() tea.Cmd {
	return nil
}

func (m styleSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.options[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m styleSelectModel) View() string {
	s := "\n" + StyleSelectTitle.Render("✨ Select a Design Style") + "\n\n"

	for i, opt := range m.options {
		cursor := "  "
		style := StyleSelectNormal

		if m.cursor == i {
			cursor = "▶ "
			style = StyleSelectActive
		}
		s += cursor + style.Render(opt) + "\n"
	}

	s += "\n" + StyleSelectDim.Render("↑/↓ navigate • enter select • esc cancel") + "\n"
	return s
}
