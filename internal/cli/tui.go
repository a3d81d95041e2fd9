package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sosatree/sosatree/pkg/gedcom"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// IndividualListModel - Interactive chart root selection
// =============================================================================

// IndividualListModel is the bubbletea model for picking a chart root from
// the individuals in a parsed tree.
type IndividualListModel struct {
	Individuals []*gedcom.Individual
	Cursor      int
	Selected    *gedcom.Individual
	Filter      string
	Height      int
	Offset      int
}

// NewIndividualListModel creates a new individual list model.
func NewIndividualListModel(individuals []*gedcom.Individual) IndividualListModel {
	return IndividualListModel{
		Individuals: individuals,
		Height:      15,
	}
}

// visible returns the individuals matching the current filter.
func (m IndividualListModel) visible() []*gedcom.Individual {
	if m.Filter == "" {
		return m.Individuals
	}
	needle := strings.ToLower(m.Filter)
	out := make([]*gedcom.Individual, 0, len(m.Individuals))
	for _, indi := range m.Individuals {
		if strings.Contains(strings.ToLower(indi.Name), needle) ||
			strings.Contains(strings.ToLower(indi.Xref), needle) {
			out = append(out, indi)
		}
	}
	return out
}

func (m IndividualListModel) Init() tea.Cmd {
	return nil
}

func (m IndividualListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "ctrl+n":
			if m.Cursor < len(m.visible())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			visible := m.visible()
			if len(visible) == 0 {
				return m, nil
			}
			m.Selected = visible[m.Cursor]
			return m, tea.Quit
		case "backspace":
			if len(m.Filter) > 0 {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.Cursor = 0
				m.Offset = 0
			}
		default:
			// Single printable runes extend the filter.
			if len(msg.Runes) == 1 {
				m.Filter += string(msg.Runes)
				m.Cursor = 0
				m.Offset = 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m IndividualListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Chart Root"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString(listDimStyle.Render("filter: ") + StyleHighlight.Render(m.Filter))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	visible := m.visible()
	end := m.Offset + m.Height
	if end > len(visible) {
		end = len(visible)
	}

	for i := m.Offset; i < end; i++ {
		indi := visible[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := indi.Name
		if name == "" {
			name = "(unnamed)"
		}
		parents := ""
		if indi.HasParents() {
			parents = " " + listDimStyle.Render("↑")
		}

		xref := fmt.Sprintf("%s%-8s ", cursor, indi.Xref)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(xref))
		} else {
			b.WriteString(listNormalStyle.Render(xref))
		}
		b.WriteString(sexStyle(indi.Sex).Render(name) + parents)
		b.WriteString("\n")
	}

	if len(visible) == 0 {
		b.WriteString(listDimStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(visible)), len(visible))))

	return b.String()
}
