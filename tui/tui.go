// Package tui renders a finished comparison as interactive result
// cards. Card visibility lives in a viewstate.Store so the terminal
// layer stays a thin rendering shell over it.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arenalabs/arena/pkg/compare"
	"github.com/arenalabs/arena/pkg/viewstate"
)

const statusHeight = 2

type model struct {
	viewport viewport.Model
	store    *viewstate.Store
	selected int
	width    int
	height   int
}

// NewModel builds the card view over an already-installed store.
func NewModel(store *viewstate.Store, width, height int) model {
	vpHeight := height - statusHeight
	if vpHeight < 5 {
		vpHeight = 5
	}

	m := model{
		viewport: viewport.New(width, vpHeight),
		store:    store,
		width:    width,
		height:   height,
	}
	m.updateViewport()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "ctrl+d":
			return m, tea.Quit
		case "tab", "right", "l":
			m.selected++
			m.clampSelection()
			m.updateViewport()
			return m, nil
		case "shift+tab", "left", "h":
			m.selected--
			m.clampSelection()
			m.updateViewport()
			return m, nil
		case "x":
			visible := m.store.Visible()
			if m.selected < len(visible) {
				m.store.CloseCard(visible[m.selected].ModelID)
				m.clampSelection()
				m.updateViewport()
			}
			return m, nil
		case "a":
			m.store.ShowAll()
			m.clampSelection()
			m.updateViewport()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := msg.Height - statusHeight
		if vpHeight < 5 {
			vpHeight = 5
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight

		m.updateViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// clampSelection keeps the cursor on an existing card after closes
// and show-all.
func (m *model) clampSelection() {
	visible := m.store.Visible()
	if m.selected >= len(visible) {
		m.selected = len(visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *model) updateViewport() {
	visible := m.store.Visible()

	cards := make([]string, 0, len(visible))
	for i, result := range visible {
		cards = append(cards, renderCard(result, i == m.selected, m.width))
	}
	m.viewport.SetContent(strings.Join(cards, "\n"))
}

func renderCard(result compare.ModelResult, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "> "
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s (%s, %dms)\n", marker, result.ModelID, result.Status, result.LatencyMs)
	b.WriteString(strings.Repeat("-", headerRule(width)) + "\n")
	if result.Status == compare.StatusSucceeded {
		b.WriteString(result.Content + "\n")
	} else {
		fmt.Fprintf(&b, "[%s] %s\n", result.ErrorKind, result.ErrorMessage)
	}
	return b.String()
}

func headerRule(width int) int {
	if width < 4 {
		return 4
	}
	if width > 72 {
		return 72
	}
	return width - 2
}

func (m model) View() string {
	statusBar := "(tab: next card, x: close, a: show all, q: quit)"
	if hidden := m.store.HiddenCount(); hidden > 0 {
		statusBar = fmt.Sprintf("%s | %d hidden", statusBar, hidden)
	}

	return fmt.Sprintf("%s\n%s", m.viewport.View(), statusBar)
}

// StartTUI installs the comparison into a fresh store and runs the
// card view until the user quits.
func StartTUI(resp *compare.Response, width, height int) error {
	store := viewstate.NewStore()
	store.Install(resp)

	p := tea.NewProgram(
		NewModel(store, width, height),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
