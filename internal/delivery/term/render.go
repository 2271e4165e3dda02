// Package term draws the task view for a terminal.
package term

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/adanyl0v/go-tasklist/internal/models"
	"github.com/adanyl0v/go-tasklist/internal/services"
)

type Renderer struct {
	out io.Writer

	title     lipgloss.Style
	muted     lipgloss.Style
	done      lipgloss.Style
	priority  map[models.Priority]lipgloss.Style
	severity  map[models.Severity]lipgloss.Style
	idColumn  lipgloss.Style
	textWidth int
}

// NewRenderer picks colors based on what out supports, so piping the
// output to a file yields plain text.
func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)

	return &Renderer{
		out:   out,
		title: r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("241")),
		done:  r.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241")),
		priority: map[models.Priority]lipgloss.Style{
			models.PriorityHigh:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			models.PriorityMedium: r.NewStyle().Foreground(lipgloss.Color("214")),
			models.PriorityLow:    r.NewStyle().Foreground(lipgloss.Color("42")),
		},
		severity: map[models.Severity]lipgloss.Style{
			models.SeveritySuccess: r.NewStyle().Foreground(lipgloss.Color("42")),
			models.SeverityError:   r.NewStyle().Foreground(lipgloss.Color("196")),
			models.SeverityInfo:    r.NewStyle().Foreground(lipgloss.Color("39")),
		},
		idColumn:  r.NewStyle().Width(15),
		textWidth: 40,
	}
}

func (r *Renderer) Notifications(notifications []models.Notification) {
	for _, n := range notifications {
		style, ok := r.severity[n.Severity]
		if !ok {
			style = r.muted
		}
		fmt.Fprintln(r.out, style.Render(severityMark(n.Severity)+" "+n.Message))
	}
}

func (r *Renderer) Stats(stats models.Stats) {
	fmt.Fprintf(r.out, "%s %d  %s %d  %s %d\n",
		r.muted.Render("total"), stats.Total,
		r.muted.Render("completed"), stats.Completed,
		r.muted.Render("pending"), stats.Pending)
}

// View prints the stats line followed by one row per task.
func (r *Renderer) View(view services.View) {
	fmt.Fprintln(r.out, r.title.Render("Tasks ("+string(view.Filter)+")"))
	r.Stats(view.Stats)

	if len(view.Tasks) == 0 {
		fmt.Fprintln(r.out, r.muted.Render("No tasks here."))
		return
	}

	textStyle := lipgloss.NewStyle().Width(r.textWidth)
	for _, t := range view.Tasks {
		check := "[ ]"
		text := printable(t.Text)
		if t.Completed {
			check = "[x]"
			text = r.done.Render(text)
		}

		label := services.PriorityLabel(t.Priority)
		if style, ok := r.priority[t.Priority]; ok {
			label = style.Render(label)
		}

		fmt.Fprintln(r.out, strings.Join([]string{
			check,
			r.idColumn.Render(strconv.FormatInt(t.ID, 10)),
			textStyle.Render(text),
			label,
			r.muted.Render(services.FormatDate(t.Date)),
		}, " "))
	}
}

// printable escapes control and other non-printable runes, so stored
// text cannot move the cursor or clear the screen.
func printable(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || unicode.IsPrint(r) {
			b.WriteRune(r)
			continue
		}
		quoted := strconv.QuoteRuneToASCII(r)
		b.WriteString(quoted[1 : len(quoted)-1])
	}
	return b.String()
}

func severityMark(s models.Severity) string {
	switch s {
	case models.SeveritySuccess:
		return "✓"
	case models.SeverityError:
		return "✗"
	default:
		return "•"
	}
}
