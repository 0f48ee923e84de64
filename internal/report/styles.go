package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles are the lipgloss styles used by the console reports. They are bound
// to a renderer so that colour follows the output, not stdout.
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Win     lipgloss.Style
	Loss    lipgloss.Style
	Muted   lipgloss.Style
	Border  lipgloss.Style
	Cell    lipgloss.Style
	Heading lipgloss.Style
}

// NewRenderer returns a renderer for w. With color false every style renders
// as plain text.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NewStyles builds the report styles on r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		Label: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Value: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Win: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Loss: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Border: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Cell: r.NewStyle().
			Padding(0, 1),
		Heading: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true).
			Padding(0, 1),
	}
}
