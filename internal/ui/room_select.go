package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auradecor/studio/models"
)

// PromptRoomSelection asks which analyzed room to open in the studio and
// returns its index.
func PromptRoomSelection(rooms []models.Room) (int, error) {
	if len(rooms) == 0 {
		return 0, fmt.Errorf("no rooms to choose from")
	}
	if len(rooms) == 1 {
		return 0, nil
	}

	m := roomSelectModel{rooms: rooms, selected: -1}
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return 0, fmt.Errorf("error running room selection: %w", err)
	}

	result := finalModel.(roomSelectModel)
	if result.selected < 0 {
		return 0, fmt.Errorf("room selection cancelled")
	}
	return result.selected, nil
}

type roomSelectModel struct {
	rooms    []models.Room
	cursor   int
	selected int
}

func (m roomSelectModel) Init() tea.Cmd {
	return nil
}

func (m roomSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rooms)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m roomSelectModel) View() string {
	s := "\n" + StyleSelectTitle.Render("🏠 Select a Room") + "\n\n"

	for i, room := range m.rooms {
		cursor := "  "
		style := StyleSelectNormal

		if m.cursor == i {
			cursor = "▶ "
			style = StyleSelectActive
		}
		line := cursor + style.Render(fmt.Sprintf("%-18s", DisplayRoomName(room.Name)))
		line += StyleSelectDim.Render(fmt.Sprintf(" %s • %d features", room.Size, len(room.Features)))
		s += line + "\n"
	}

	s += "\n" + StyleSelectDim.Render("↑/↓ navigate • enter select • esc cancel") + "\n"
	return s
}
