package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bugscope/bugscope/pkg/tracker"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// BugListModel is the bubbletea model for browsing unreachable bugs.
type BugListModel struct {
	Bugs     []tracker.UnreachableBug
	Cursor   int
	Selected *tracker.UnreachableBug
	Height   int
	Offset   int
}

// NewBugListModel creates a new bug list model.
func NewBugListModel(bugs []tracker.UnreachableBug) BugListModel {
	return BugListModel{
		Bugs:   bugs,
		Height: 15,
	}
}

func (m BugListModel) Init() tea.Cmd {
	return nil
}

func (m BugListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Bugs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Bugs[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BugListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Bugs not blocking the tracker"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open in browser  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Bugs) {
		end = len(m.Bugs)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		bug := m.Bugs[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{cursor, strconv.Itoa(int(bug.ID)), bug.Summary})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Bug", "Summary").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Bugs))))

	return b.String()
}
