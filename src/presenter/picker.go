package presenter

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// pickerModel is a minimal single-selection cursor list. It resolves to
// either a chosen index or a cancellation.
type pickerModel struct {
	title     string
	items     []string
	cursor    int
	choice    int
	cancelled bool
}

func newPickerModel(title string, items []string) pickerModel {
	return pickerModel{title: title, items: items, choice: -1}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		m.choice = m.cursor
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := titleStyle.Render(m.title) + "\n"
	for i, item := range m.items {
		if i == m.cursor {
			s += cursorStyle.Render("> "+item) + "\n"
		} else {
			s += "  " + item + "\n"
		}
	}
	s += dimStyle.Render("↑/↓ move · enter select · esc cancel") + "\n"
	return s
}

// runPicker runs the picker over the given streams and returns the selected
// index, or ErrCancelled.
func runPicker(title string, items []string, in io.Reader, out io.Writer) (int, error) {
	prog := tea.NewProgram(newPickerModel(title, items), tea.WithInput(in), tea.WithOutput(out))
	res, err := prog.Run()
	if err != nil {
		return 0, fmt.Errorf("run picker: %w", err)
	}
	m, ok := res.(pickerModel)
	if !ok || m.cancelled || m.choice < 0 {
		return 0, ErrCancelled
	}
	return m.choice, nil
}
