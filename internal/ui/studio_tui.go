package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/auradecor/studio/internal/export"
	"github.com/auradecor/studio/internal/studio"
	"github.com/auradecor/studio/models"
)

// StudioModel is the interactive design loop for one room: it drives the
// session through an initial concept, chat refinements, version selection,
// and export.
type StudioModel struct {
	session  *studio.Session
	exporter *export.Exporter
	ctx      context.Context

	input textinput.Model
	spin  spinner.Model

	initialStyle string
	busy         bool
	status       string
	quitting     bool
}

type generateDoneMsg struct {
	design *models.Design
	err    error
}

type chatDoneMsg struct {
	result studio.ChatResult
	err    error
}

type exportDoneMsg struct {
	paths []string
	err   error
}

// NewStudioModel builds the studio TUI. The initial concept in the given
// style is generated as soon as the program starts.
func NewStudioModel(ctx context.Context, sess *studio.Session, exporter *export.Exporter, style string) StudioModel {
	ti := textinput.New()
	ti.Placeholder = "Refine the design or correct the room..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StylePrimary

	return StudioModel{
		session:      sess,
		exporter:     exporter,
		ctx:          ctx,
		input:        ti,
		spin:         sp,
		initialStyle: style,
		busy:         true,
		status:       fmt.Sprintf("Generating %s concept...", style),
	}
}

func (m StudioModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.generateCmd(m.initialStyle))
}

func (m StudioModel) generateCmd(style string) tea.Cmd {
	return func() tea.Msg {
		design, err := m.session.Generate(m.ctx, style)
		return generateDoneMsg{design: design, err: err}
	}
}

func (m StudioModel) chatCmd(text string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.session.HandleChat(m.ctx, text)
		return chatDoneMsg{result: result, err: err}
	}
}

func (m StudioModel) exportCmd() tea.Cmd {
	return func() tea.Msg {
		paths, err := m.exporter.Designs(m.session.SelectedDesigns())
		return exportDoneMsg{paths: paths, err: err}
	}
}

func (m StudioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.busy = true
			m.status = "Thinking..."
			return m, tea.Batch(m.spin.Tick, m.chatCmd(text))
		}
		switch msg.String() {
		case "ctrl+s":
			if cur := m.session.CurrentDesign(); cur != nil {
				if m.session.ToggleSelect(cur.ID) {
					m.status = fmt.Sprintf("Selected %s for export", cur.ID)
				} else {
					m.status = fmt.Sprintf("Deselected %s (max %d selections)", cur.ID, studio.MaxSelectedDesigns)
				}
			}
			return m, nil
		case "ctrl+e":
			if m.busy {
				return m, nil
			}
			if len(m.session.SelectedDesigns()) == 0 {
				m.status = "Nothing selected; press ctrl+s on a version first"
				return m, nil
			}
			m.busy = true
			m.status = "Exporting..."
			return m, tea.Batch(m.spin.Tick, m.exportCmd())
		case "left":
			if i := m.session.CurrentIndex(); i > 0 {
				_ = m.session.SetCurrent(i - 1)
			}
			return m, nil
		case "right":
			if i := m.session.CurrentIndex(); i >= 0 && i < len(m.session.Designs())-1 {
				_ = m.session.SetCurrent(i + 1)
			}
			return m, nil
		}

	case generateDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = StylePrefixError.Render("✗ ") + msg.err.Error()
		} else {
			m.status = StylePrefixDone.Render("✓ ") + fmt.Sprintf("%s ready (%s)", msg.design.Title, msg.design.ID)
		}
		return m, nil

	case chatDoneMsg:
		m.busy = false
		switch {
		case msg.err != nil && msg.result.Design == nil && msg.result.Reply == "":
			m.status = StylePrefixError.Render("✗ ") + msg.err.Error()
		case msg.result.Design != nil:
			m.status = StylePrefixDone.Render("✓ ") + fmt.Sprintf("%s ready (%s)", msg.result.Design.Title, msg.result.Design.ID)
		default:
			m.status = ""
		}
		return m, nil

	case exportDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = StylePrefixError.Render("✗ ") + msg.err.Error()
		} else {
			m.status = StylePrefixDone.Render("✓ ") + fmt.Sprintf("Exported %d artifact(s)", len(msg.paths))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// transcriptTail renders the last few chat messages.
func (m StudioModel) transcriptTail(n int) string {
	transcript := m.session.Transcript()
	if len(transcript) > n {
		transcript = transcript[len(transcript)-n:]
	}
	var b strings.Builder
	for _, msg := range transcript {
		if msg.Sender == models.SenderUser {
			b.WriteString(StylePrefixUser.Render("you ") + Truncate(msg.Text, 70) + "\n")
		} else {
			b.WriteString(StylePrefixAdvisor.Render("aura ") + Truncate(msg.Text, 70) + "\n")
		}
	}
	return b.String()
}

// albumLine renders the version tokens with current and selection markers.
func (m StudioModel) albumLine() string {
	designs := m.session.Designs()
	if len(designs) == 0 {
		return StyleSubtle.Render("No designs yet")
	}
	selected := make(map[string]bool)
	for _, d := range m.session.SelectedDesigns() {
		selected[d.ID] = true
	}
	current := m.session.CurrentIndex()

	parts := make([]string, 0, len(designs))
	for i, d := range designs {
		token := d.ID
		if selected[d.ID] {
			token += "*"
		}
		if i == current {
			parts = append(parts, StyleSelectActive.Render("["+token+"]"))
		} else {
			parts = append(parts, StyleSelectNormal.Render(token))
		}
	}
	return "Album: " + strings.Join(parts, " ")
}

func (m StudioModel) View() string {
	if m.quitting {
		return ""
	}

	room := m.session.Room()
	var b strings.Builder
	b.WriteString("\n" + StyleHeader.Render("AuraDecor Studio • "+DisplayRoomName(room.Name)) + "\n\n")
	b.WriteString(m.albumLine() + "\n")

	if cur := m.session.CurrentDesign(); cur != nil {
		b.WriteString(StyleTitle.Render(cur.Title) + StyleSubtle.Render(fmt.Sprintf(" • %d materials", len(cur.Materials))) + "\n")
	}
	b.WriteString("\n" + m.transcriptTail(6))

	if m.busy {
		b.WriteString("\n" + m.spin.View() + " " + StyleSubtle.Render(m.status) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString("\n" + StyleInputBox.Render(m.input.View()) + "\n")
	b.WriteString(StyleSubtle.Render("enter send • ←/→ versions • ctrl+s select • ctrl+e export • esc quit") + "\n")
	return b.String()
}
