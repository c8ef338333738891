package render

import "github.com/charmbracelet/lipgloss"

// Styles holds every style the renderer uses, bound to one lipgloss
// renderer so the color profile follows the output writer.
type Styles struct {
	Banner    lipgloss.Style
	Header    lipgloss.Style
	Rule      lipgloss.Style
	Title     lipgloss.Style
	Role      lipgloss.Style
	Context   lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Strength  lipgloss.Style
	Info      lipgloss.Style
	Warning   lipgloss.Style
	OOPDot    lipgloss.Style
	IPDot     lipgloss.Style
	Bar       lipgloss.Style

	Check lipgloss.Style
	Bet   lipgloss.Style
	Fold  lipgloss.Style
	Call  lipgloss.Style
	Plain lipgloss.Style
}

// NewStyles builds the palette on r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Banner: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		Header: r.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true),
		Rule: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Title: r.NewStyle().Bold(true),
		Role: r.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true),
		Context: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true),
		Strength: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Italic(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		OOPDot: r.NewStyle().Foreground(lipgloss.Color("9")),
		IPDot:  r.NewStyle().Foreground(lipgloss.Color("10")),
		Bar:    r.NewStyle().Foreground(lipgloss.Color("#C8C8C8")),

		Check: r.NewStyle().Foreground(lipgloss.Color("10")),
		Bet:   r.NewStyle().Foreground(lipgloss.Color("9")),
		Fold:  r.NewStyle().Foreground(lipgloss.Color("12")),
		Call:  r.NewStyle().Foreground(lipgloss.Color("11")),
		Plain: r.NewStyle(),
	}
}
