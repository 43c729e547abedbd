package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is what the player picked on the title screen.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScores
	MenuChoiceQuit
)

type menuItem struct {
	label  string
	choice MenuChoice
}

var menuItems = []menuItem{
	{"Play", MenuChoicePlay},
	{"High scores", MenuChoiceScores},
	{"Quit", MenuChoiceQuit},
}

const menuBanner = `
 ___ _                       ___ _        _
| __| |__ _ _ __ _ __ _  _  | _ |_)_ _ __| |
| _|| / _' | '_ \ '_ \ || | | _ \ | '_/ _' |
|_| |_\__,_| .__/ .__/\_, | |___/_|_| \__,_|
           |_|  |_|   |__/`

// MenuModel is the Bubble Tea model for the title screen.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	best      int
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a new menu model. best is shown under the banner.
func NewMenuModel(best, width, height int) MenuModel {
	return MenuModel{
		width:     width,
		height:    height,
		best:      best,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.choice = MenuChoiceQuit
		case MenuActionUp:
			m.cursor = (m.cursor - 1 + len(menuItems)) % len(menuItems)
		case MenuActionDown:
			m.cursor = (m.cursor + 1) % len(menuItems)
		case MenuActionSelect:
			m.choice = menuItems[m.cursor].choice
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	bannerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	for _, line := range strings.Split(strings.TrimPrefix(menuBanner, "\n"), "\n") {
		b.WriteString(bannerStyle.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(dimStyle.Render(centerText(fmt.Sprintf("Best round: %d", m.best), m.width)))
	b.WriteString("\n\n")

	selected := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	for i, item := range menuItems {
		label := "  " + item.label + "  "
		if i == m.cursor {
			label = selected.Render("> " + item.label + "  ")
		}
		b.WriteString(centerText(label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText("up/down to move, enter to select, q to quit", m.width)))

	return b.String()
}

// Choice returns the picked entry, or MenuChoiceNone while still browsing.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}
