package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNothingToPick is returned when PickItem gets no items.
var ErrNothingToPick = errors.New("no items to pick from")

// PickerItem is one entry in the picker.
type PickerItem struct {
	Label    string // wallet or network name
	SubLabel string // shown dimmed, e.g. the address
	Value    string // returned on selection
}

type pickerModel struct {
	title    string
	items    []PickerItem
	cursor   int
	chosen   string
	done     bool
	canceled bool
}

func newPicker(title string, items []PickerItem, current string) pickerModel {
	m := pickerModel{title: title, items: items}
	for i, it := range items {
		if it.Value == current {
			m.cursor = i
		}
	}
	return m
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.canceled = true
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.items)
	case "enter", " ":
		m.chosen = m.items[m.cursor].Value
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.canceled || m.done {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n" + StyleTitle.Render("  "+m.title) + "\n\n")
	for i, it := range m.items {
		line := "    " + StyleValue.Render(it.Label)
		if it.SubLabel != "" {
			line += "  " + StyleMeta.Render(it.SubLabel)
		}
		if i == m.cursor {
			line = StyleSelected.Render("  ▸ " + it.Label + "  " + it.SubLabel)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + Meta("  ↑↓/jk move   enter select   q cancel") + "\n")
	return sb.String()
}

// PickItem shows items and returns the chosen Value, starting the cursor on
// current. It returns "" when the user cancels.
func PickItem(title string, items []PickerItem, current string) (string, error) {
	if len(items) == 0 {
		return "", ErrNothingToPick
	}
	final, err := tea.NewProgram(newPicker(title, items, current)).Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}
	m := final.(pickerModel)
	if m.canceled {
		return "", nil
	}
	return m.chosen, nil
}
