package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

// StartChoice is an entry on the start page.
type StartChoice int

const (
	ChoiceNone StartChoice = iota
	ChoiceStart
	ChoiceHistory
	ChoiceQuit
)

// String returns the label shown on the start page.
func (c StartChoice) String() string {
	switch c {
	case ChoiceStart:
		return "Start Game"
	case ChoiceHistory:
		return "Match History"
	case ChoiceQuit:
		return "Quit"
	default:
		return ""
	}
}

var (
	startTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	startItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	startCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	startDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// StartModel is the Bubble Tea model for the start page.
type StartModel struct {
	items      []StartChoice
	cursor     int
	width      int
	height     int
	config     core.RuntimeConfig
	difficulty string
	record     string // Win/loss summary, empty without history
	keyMapper  *KeyMapper
	quitting   bool
	selected   StartChoice
}

// NewStartModel creates the start page. store may be nil.
func NewStartModel(store *storage.Store, cfg core.RuntimeConfig, difficulty string) StartModel {
	m := StartModel{
		items:      []StartChoice{ChoiceStart, ChoiceHistory, ChoiceQuit},
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		difficulty: difficulty,
		keyMapper:  NewKeyMapper(),
	}

	if store != nil {
		if st, err := store.Stats(); err == nil && st.Games > 0 {
			m.record = fmt.Sprintf("Record: %d won, %d lost  |  Accuracy %.0f%%",
				st.PlayerWins, st.AIWins, st.Accuracy()*100)
		}
	}
	return m
}

// Init initializes the start page.
func (m StartModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the start page.
func (m StartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m StartModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.selected = m.items[m.cursor]
		if m.selected == ChoiceQuit {
			m.quitting = true
		}
		return m, tea.Quit

	case MenuActionHistory:
		m.selected = ChoiceHistory
		return m, tea.Quit
	}

	return m, nil
}

// View renders the start page.
func (m StartModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	top := max((m.height-12)/2, 1)
	b.WriteString(strings.Repeat("\n", top))
	b.WriteString(centerText(startTitleStyle.Render("B A T T L E S H I P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(startDimStyle.Render("Sink the enemy fleet before it sinks yours"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.String()
		style := startItemStyle
		if i == m.cursor {
			line = "> " + item.String()
			style = startCurStyle
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	info := "Difficulty: " + m.difficulty
	if m.record != "" {
		info += "  |  " + m.record
	}
	b.WriteString(centerText(startDimStyle.Render(info), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: History  |  Q: Quit"
	b.WriteString(centerText(startDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, ChoiceNone if nothing was picked.
func (m StartModel) Selected() StartChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m StartModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m StartModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// StartResult holds the result of running the start page.
type StartResult struct {
	Choice StartChoice
	Config core.RuntimeConfig
}

// Quit reports whether the user left the program from the start page.
func (r StartResult) Quit() bool {
	return r.Choice == ChoiceQuit || r.Choice == ChoiceNone
}

// RunStart runs the start page and returns the selection.
func RunStart(store *storage.Store, cfg core.RuntimeConfig, difficulty string) (StartResult, error) {
	model := NewStartModel(store, cfg, difficulty)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return StartResult{Config: cfg}, err
	}

	m, ok := finalModel.(StartModel)
	if !ok {
		return StartResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	if m.IsQuitting() {
		return StartResult{Choice: ChoiceQuit, Config: m.Config()}, nil
	}
	return StartResult{Choice: m.Selected(), Config: m.Config()}, nil
}
