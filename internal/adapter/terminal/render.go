package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/couchcryptid/emissions-dashboard/internal/dashboard"
	"github.com/couchcryptid/emissions-dashboard/internal/domain"
)

const boxWidth = 64

func titleColor() lipgloss.Color  { return lipgloss.Color("39") }
func borderColor() lipgloss.Color { return lipgloss.Color("240") }
func mutedColor() lipgloss.Color  { return lipgloss.Color("245") }

// levelColor mirrors domain.RiskColors in the 256-color palette.
func levelColor(level string) lipgloss.Color {
	switch level {
	case string(domain.LevelHigh):
		return lipgloss.Color("196")
	case string(domain.LevelMod):
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("42")
	}
}

// Renderer writes dashboard views to a terminal. Output is boxed and colored
// when the writer is a TTY and plain text otherwise.
type Renderer struct {
	w      io.Writer
	styled bool
	p      *message.Printer
}

// NewRenderer picks styled output when w is a terminal.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, styled: isWriterTerminal(w), p: message.NewPrinter(language.English)}
}

// NewStyledRenderer always renders boxed output.
func NewStyledRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, styled: true, p: message.NewPrinter(language.English)}
}

func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// section is one titled block of output.
type section struct {
	title   string
	headers []string
	rows    [][]string
	lines   []string
}

// RenderFrame prints a map frame as a state table.
func (r *Renderer) RenderFrame(f domain.MapFrame) error {
	s := section{title: f.Title}
	if f.Empty {
		s.lines = append(s.lines, fmt.Sprintf("No data for %s %q.", strings.ToLower(f.Dimension), f.Category))
		return r.write(s)
	}

	if f.Kind == domain.FrameRisk {
		s.headers = []string{"State", "Risk", "Level"}
		for _, pt := range f.Points {
			s.rows = append(s.rows, []string{pt.State, fmt.Sprintf("%.0f", pt.Value), pt.Label})
		}
	} else {
		s.headers = []string{"State", f.Unit}
		for _, pt := range f.Points {
			s.rows = append(s.rows, []string{pt.State, r.p.Sprintf("%.1f", pt.Value)})
		}
	}
	return r.write(s)
}

// RenderStateRisk prints the hazard labels for one state.
func (r *Renderer) RenderStateRisk(sr dashboard.StateRisk) error {
	s := section{
		title:   fmt.Sprintf("Risk Levels for %s (%s)", sr.Name, sr.State),
		headers: []string{"Hazard", "Level"},
	}
	for _, hazard := range []string{"Flood", "Drought", "Wildfire"} {
		s.rows = append(s.rows, []string{hazard, sr.Labels[hazard]})
	}
	s.lines = append(s.lines, fmt.Sprintf("Overall: %s (%d of 3 hazards)", sr.Level, sr.Risk))
	return r.write(s)
}

// RenderProfile prints a state's emissions and share for each sector.
func (r *Renderer) RenderProfile(p domain.StateProfile) error {
	s := section{
		title:   fmt.Sprintf("Sector Emissions for %s (%s)", p.Name, p.State),
		headers: []string{"Sector", domain.EmissionsUnit, "Share"},
	}
	for _, sec := range domain.Sectors() {
		share := "-"
		if v, ok := p.Shares[sec]; ok {
			share = fmt.Sprintf("%.1f%%", v)
		}
		s.rows = append(s.rows, []string{sec, r.p.Sprintf("%.1f", p.Emissions[sec]), share})
	}
	s.lines = append(s.lines, r.p.Sprintf("Total: %.1f %s", p.Total, domain.EmissionsUnit))
	return r.write(s)
}

// RenderRecommendation prints the recommended state or the no-match message.
func (r *Renderer) RenderRecommendation(res dashboard.RecommendResult) error {
	s := section{title: "State Recommendation"}
	if !res.Found || res.Recommendation == nil {
		s.lines = append(s.lines, res.Message)
		return r.write(s)
	}
	rec := res.Recommendation
	s.lines = append(s.lines,
		fmt.Sprintf("Recommended State: %s (%s)", rec.State, domain.StateName(rec.State)),
		r.p.Sprintf("Total Emissions: %.1f %s", rec.TotalEmissions, domain.EmissionsUnit),
		r.p.Sprintf("Cost of Living: $%d", rec.Cost),
	)
	return r.write(s)
}

func (r *Renderer) write(s section) error {
	var out string
	if r.styled {
		out = r.styledSection(s)
	} else {
		out = plainSection(s)
	}
	_, err := io.WriteString(r.w, out)
	return err
}

func plainSection(s section) string {
	var b strings.Builder
	b.WriteString(s.title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(s.title)))
	b.WriteString("\n")
	if len(s.headers) > 0 {
		widths := columnWidths(s.headers, s.rows)
		b.WriteString(padRow(s.headers, widths))
		for _, row := range s.rows {
			b.WriteString(padRow(row, widths))
		}
	}
	for _, line := range s.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) styledSection(s section) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor())
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	sepStyle := lipgloss.NewStyle().Foreground(mutedColor())
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor()).
		Padding(0, 1).
		Width(boxWidth)

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.title))
	b.WriteString("\n")

	if len(s.headers) > 0 {
		widths := columnWidths(s.headers, s.rows)
		for i := range widths {
			widths[i] += 2
		}
		for i, h := range s.headers {
			b.WriteString(headerStyle.Width(widths[i]).Render(h))
		}
		b.WriteString("\n")
		b.WriteString(sepStyle.Render(strings.Repeat("─", sum(widths))))
		b.WriteString("\n")
		levelCol := indexOf(s.headers, "Level")
		for _, row := range s.rows {
			for i, cell := range row {
				style := cellStyle.Width(widths[i])
				if i == levelCol {
					style = style.Foreground(levelColor(cell))
				}
				b.WriteString(style.Render(cell))
			}
			b.WriteString("\n")
		}
	}
	for _, line := range s.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

func padRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ") + "\n"
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}
