package monitor

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fyrsmithlabs/projectdeck/internal/notify"
	"github.com/fyrsmithlabs/projectdeck/internal/render"
)

const (
	nameWidth    = 20
	commandWidth = 36
)

// View renders the live view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	b.WriteString(m.renderCounters())
	b.WriteString("\n")

	switch {
	case !m.received:
		b.WriteString("\n" + m.spinner.View() + dimStyle.Render(" Loading projects...") + "\n")
	case m.view.PlaceholderVisible():
		b.WriteString("\n" + dimStyle.Render("No projects yet. Press [n] to create your first project.") + "\n")
	default:
		b.WriteString("\n" + m.renderTable() + "\n")
	}

	switch m.mode {
	case modeCreate:
		b.WriteString(m.renderForm("Create New Project", "", ""))
	case modeEdit:
		b.WriteString(m.renderForm("Edit Project", m.target.Name, m.target.Command))
	case modeConfirmDelete:
		b.WriteString(m.renderConfirm())
	}

	b.WriteString("\n" + m.renderFooter())
	return containerStyle.Render(b.String())
}

func (m Model) renderHeader() string {
	last := "Never"
	if !m.lastUpdate.IsZero() {
		last = m.lastUpdate.Format("3:04:05 PM")
	}
	status := ""
	if m.loading {
		status = "   " + m.spinner.View() + dimStyle.Render(" refreshing")
	}
	return headerStyle.Render(" projectdeck ") + "   " +
		dimStyle.Render(m.server) + "   " +
		dimStyle.Render("Updated: ") + valueStyle.Render(last) + status
}

func (m Model) renderNotice() string {
	if m.notices == nil {
		return ""
	}
	n, ok := m.notices.Current()
	if !ok {
		return ""
	}
	if n.Kind == notify.KindError {
		return errorStyle.Render("✗ "+n.Message) + "\n"
	}
	return healthyStyle.Render("✓ "+n.Message) + "\n"
}

func (m Model) renderCounters() string {
	c := m.view.Counters
	line := labelStyle.Render("Total: ") + valueStyle.Render(fmt.Sprint(c.Total)) + "   " +
		labelStyle.Render("Completed: ") + healthyStyle.Render(fmt.Sprint(c.Completed)) + "   " +
		labelStyle.Render("Failed: ") + errorStyle.Render(fmt.Sprint(c.Failed))

	ratio := Ratio(c.Completed, c.Total)
	bar := labelStyle.Render("Done: ") + m.completion.ViewAs(ratio) + " " +
		dimStyle.Render(FormatRatio(c.Completed, c.Total))

	return sectionStyle.Render("┃ Projects") + "\n" +
		line + "\n" +
		bar + "\n" +
		labelStyle.Render("History: ") + createSparkline(m.history) + "\n"
}

// createSparkline draws the project count history.
func createSparkline(data []float64) string {
	if len(data) == 0 {
		return dimStyle.Render(fmt.Sprintf("%*s", sparklineWidth, "no data"))
	}
	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, v := range data {
		spark.Push(v)
	}
	spark.Draw()
	return sparklineStyle.Render(spark.View())
}

func (m Model) renderTable() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("NAME", "COMMAND", "STATUS", "CREATED", "ACTIONS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return labelStyle.Bold(true).Padding(0, 1)
			}
			if row == m.selected {
				return selectedStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range m.view.Rows {
		t.Row(
			Truncate(r.Name, nameWidth),
			Truncate(r.Command, commandWidth),
			statusCell(r),
			r.Created,
			actions(r),
		)
	}
	return t.Render()
}

func statusCell(r render.Row) string {
	label := r.Status.String()
	if g := r.Icon.Glyph(); g != "" {
		label = g + " " + label
	}
	return StatusStyle(r.Status).Render(label)
}

func actions(r render.Row) string {
	var a []string
	if r.CodeURL != "" {
		a = append(a, "code")
	}
	if r.CanEdit {
		a = append(a, "edit")
	}
	if r.CanDelete {
		a = append(a, "delete")
	}
	return strings.Join(a, " ")
}

func (m Model) renderForm(title, name, current string) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(title) + "\n")
	if name != "" || current != "" {
		b.WriteString(labelStyle.Render("Name: ") + valueStyle.Render(name) + "\n")
		b.WriteString(labelStyle.Render("Current command: ") + dimStyle.Render(current) + "\n")
	}
	b.WriteString(m.input.View() + "\n")
	if m.submitting {
		b.WriteString(m.spinner.View() + dimStyle.Render(" Submitting...") + "\n")
	} else {
		b.WriteString(dimStyle.Render("[enter] submit  [esc] cancel") + "\n")
	}
	return modalStyle.Render(b.String())
}

func (m Model) renderConfirm() string {
	body := warningStyle.Render("Are you sure you want to delete this project?") + "\n" +
		valueStyle.Render(m.target.Name) + "\n"
	if m.submitting {
		body += m.spinner.View() + dimStyle.Render(" Deleting...")
	} else {
		body += dimStyle.Render("[y] yes  [n] no")
	}
	return modalStyle.Render(body)
}

func (m Model) renderFooter() string {
	return keys(
		"q", "quit",
		"r", "refresh",
		"n", "new",
		"e", "edit",
		"d", "delete",
		"j/k", "move",
	) + dimStyle.Render(fmt.Sprintf("Auto: %v", m.interval))
}
