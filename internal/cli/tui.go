package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/surfrank/surfrank/pkg/rank"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// barWidth is the maximum width of a convergence bar.
const barWidth = 30

// =============================================================================
// HistoryModel - Interactive convergence history viewer
// =============================================================================

// HistoryModel is the bubbletea model for browsing the per-iteration
// convergence history of a ranking run.
type HistoryModel struct {
	History   []float64
	Converged bool
	Cursor    int
	Height    int
	Offset    int
}

// NewHistoryModel creates a history viewer for the given result.
func NewHistoryModel(res *rank.Result) HistoryModel {
	return HistoryModel{
		History:   res.History,
		Converged: res.Converged,
		Height:    15,
	}
}

func (m HistoryModel) Init() tea.Cmd {
	return nil
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.History)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g", "home":
			m.Cursor = 0
			m.Offset = 0
		case "G", "end":
			m.Cursor = len(m.History) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Convergence History"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.History) {
		end = len(m.History)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.2e", m.History[i]),
			deltaBar(m.History[i], m.History),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Iter", "L1 Delta", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return StyleNumber
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	status := StyleWarning.Render("stopped at iteration cap")
	if m.Converged {
		status = StyleSuccess.Render("converged")
	}
	b.WriteString(fmt.Sprintf("  %s %s\n",
		listDimStyle.Render(fmt.Sprintf("[%d/%d]", m.Cursor+1, len(m.History))),
		status))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// deltaBar renders a bar proportional to delta's magnitude on a log
// scale relative to the run's largest and smallest deltas. A run whose
// deltas shrink geometrically shows bars shrinking linearly.
func deltaBar(delta float64, history []float64) string {
	min, max := history[0], history[0]
	for _, d := range history {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	if delta <= 0 || max <= 0 {
		return ""
	}
	if min <= 0 {
		min = math.SmallestNonzeroFloat64
	}

	width := barWidth
	if max > min {
		frac := (math.Log10(delta) - math.Log10(min)) / (math.Log10(max) - math.Log10(min))
		width = 1 + int(frac*float64(barWidth-1))
	}
	if width < 1 {
		width = 1
	}
	return strings.Repeat("█", width)
}

// runHistoryViewer opens the interactive convergence viewer.
func runHistoryViewer(res *rank.Result) error {
	p := tea.NewProgram(NewHistoryModel(res))
	_, err := p.Run()
	return err
}
