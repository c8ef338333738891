// Package render prints advisor reports to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/pokeradvisor/internal/advisor"
	"github.com/lox/pokeradvisor/internal/strategy"
)

const (
	boxWidth = 70

	// Rows below this percentage are not shown.
	minPercent = 0.1
	// Each bar cell stands for this many percentage points.
	barScale = 2.5
)

// Renderer writes styled output to one writer.
type Renderer struct {
	w      io.Writer
	styles Styles
}

// New creates a renderer for w. With noColor set, all styling is reduced to
// plain text.
func New(w io.Writer, noColor bool) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if noColor {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{w: w, styles: NewStyles(lr)}
}

// Banner prints the program heading.
func (r *Renderer) Banner(text string) {
	fmt.Fprintln(r.w, r.styles.Banner.Render(text))
}

// Info prints a dim status line.
func (r *Renderer) Info(msg string) {
	fmt.Fprintln(r.w, r.styles.Info.Render(msg))
}

// Warning prints a highlighted problem line.
func (r *Renderer) Warning(msg string) {
	fmt.Fprintln(r.w, r.styles.Warning.Render(msg))
}

// Report prints every street of a report.
func (r *Renderer) Report(rep *advisor.Report) {
	for i, sr := range rep.Streets {
		if sr.Skipped != "" {
			fmt.Fprintln(r.w)
			r.Warning(sr.Skipped)
			continue
		}
		if i > 0 && len(sr.Board) > 3 {
			fmt.Fprintf(r.w, "\n%s card: %s\n", streetName(sr.Street), r.Card(sr.Board[len(sr.Board)-1]))
		}
		r.Street(rep, sr)
	}
}

// Street prints one street: the heading, the hero's hand with its strength
// and one box per position.
func (r *Renderer) Street(rep *advisor.Report, sr advisor.StreetReport) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Header.Render("=== "+sr.Title()+" ==="))

	hand := r.Hand(rep.Input.Hero)
	fmt.Fprintf(r.w, "Hero Hand: %s  (%s)\n", hand, r.styles.Strength.Render(sr.Strength))
	if sr.Exact != "" {
		fmt.Fprintf(r.w, "Best five: %s\n", r.styles.Info.Render(sr.Exact))
	}
	fmt.Fprintf(r.w, "Preflop:   %s\n", r.styles.Info.Render(fmt.Sprintf("%s (%s)", rep.Class, rep.Category)))

	r.box(
		r.styles.OOPDot.Render("●"),
		"OUT OF POSITION (Big Blind)",
		"The Defender",
		"They raised, you called. Check to the raiser?",
		sr.Strategies.OOP,
		sr.Strategies.OOPVsBet,
	)
	r.box(
		r.styles.IPDot.Render("●"),
		"IN POSITION (Button)",
		"The Aggressor",
		"You raised, they called. They checked to you.",
		sr.Strategies.IP,
		nil,
	)
}

// box prints one position's strategy and, when present, its response to a
// bet.
func (r *Renderer) box(dot, title, role, context string, open, vsBet *strategy.HeroStrategy) {
	rule := r.styles.Rule.Render(strings.Repeat("─", boxWidth))

	fmt.Fprintln(r.w, rule)
	fmt.Fprintf(r.w, "%s %s   %s\n", dot, r.styles.Title.Render(title), r.styles.Role.Render("(Role: "+role+")"))
	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w, "» "+r.styles.Context.Render(context))
	fmt.Fprintln(r.w, rule)

	if open == nil {
		fmt.Fprintln(r.w, "  (No strategy found for this range)")
	} else {
		r.rows(open)
	}

	if vsBet != nil {
		fmt.Fprintln(r.w, rule)
		fmt.Fprintln(r.w, "» "+r.styles.Context.Render("If they BET, your response:"))
		fmt.Fprintln(r.w, rule)
		r.rows(vsBet)
	}
	fmt.Fprintln(r.w, rule)
}

func (r *Renderer) rows(h *strategy.HeroStrategy) {
	for _, row := range Rows(h) {
		label := fmt.Sprintf("%-*s", row.Width, row.Action)
		fmt.Fprintf(r.w, "  %s : %5.1f%% %s\n",
			r.actionStyle(row.Action).Render(label),
			row.Percent,
			r.styles.Bar.Render(row.Bar()),
		)
	}
}

func (r *Renderer) actionStyle(action string) lipgloss.Style {
	switch {
	case strings.Contains(action, "CHECK"):
		return r.styles.Check
	case strings.Contains(action, "BET"):
		return r.styles.Bet
	case strings.Contains(action, "FOLD"):
		return r.styles.Fold
	case strings.Contains(action, "CALL"):
		return r.styles.Call
	default:
		return r.styles.Plain
	}
}

// Card colors a card token by suit: hearts and diamonds red, spades and
// clubs cyan.
func (r *Renderer) Card(card string) string {
	if len(card) < 2 {
		return card
	}
	switch card[1] {
	case 'h', 'd':
		return r.styles.RedCard.Render(card)
	case 's', 'c':
		return r.styles.BlackCard.Render(card)
	default:
		return card
	}
}

// Hand colors both cards of a hand key. Malformed keys print unstyled.
func (r *Renderer) Hand(hand string) string {
	if len(hand) != 4 {
		return hand
	}
	return r.Card(hand[:2]) + " " + r.Card(hand[2:])
}

// Board colors a list of cards separated by spaces.
func (r *Renderer) Board(cards []string) string {
	colored := make([]string, len(cards))
	for i, c := range cards {
		colored[i] = r.Card(c)
	}
	return strings.Join(colored, " ")
}

// Row is one visible line of a strategy table.
type Row struct {
	Action  string
	Percent float64
	// Width is the widest action label in the table.
	Width int
}

// Bar is the row's histogram bar.
func (row Row) Bar() string {
	return strings.Repeat("█", int(row.Percent/barScale))
}

// Rows converts a strategy into display rows, dropping actions taken less
// than 0.1% of the time.
func Rows(h *strategy.HeroStrategy) []Row {
	if h == nil {
		return nil
	}
	width := 0
	for _, a := range h.Actions {
		width = max(width, len(a))
	}

	var rows []Row
	for i, a := range h.Actions {
		pct := h.Probs[i] * 100
		if pct < minPercent {
			continue
		}
		rows = append(rows, Row{Action: a, Percent: pct, Width: width})
	}
	return rows
}

func streetName(s advisor.Street) string {
	switch s {
	case advisor.Turn:
		return "Turn"
	case advisor.River:
		return "River"
	default:
		return "Flop"
	}
}
