// Package prompt asks for the hero's hand and the board interactively.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokeradvisor/poker"
)

// ErrAborted is returned when the user leaves the prompt with esc or ctrl+c.
var ErrAborted = errors.New("input aborted")

// Answers is the raw text entered at each step. Board may carry the turn
// and river as its fourth and fifth cards.
type Answers struct {
	Hero  string
	Board string
	Turn  string
	River string
}

type step int

const (
	stepHero step = iota
	stepBoard
	stepTurn
	stepRiver
	stepDone
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

var labels = map[step]struct{ label, placeholder string }{
	stepHero:  {"Enter hero hand", "AhKd"},
	stepBoard: {"Enter flop cards (turn and river may follow)", "QsJh2h or QsJh2hAcTh"},
	stepTurn:  {"Enter turn card, empty to skip", "9d"},
	stepRiver: {"Enter river card, empty to skip", "3c"},
}

// Model is the bubbletea model driving the prompt sequence.
type Model struct {
	input   textinput.Model
	step    step
	answers Answers
	errMsg  string
	aborted bool
}

// New returns a model positioned at the hero hand step.
func New() *Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 32
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	m := &Model{input: ti}
	m.moveTo(stepHero)
	return m
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses; enter submits the current step.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	m.errMsg = ""

	switch m.step {
	case stepHero:
		m.answers.Hero = value
		m.moveTo(stepBoard)

	case stepBoard:
		cards := poker.NormalizeBoard(value)
		if len(cards) < 3 || len(cards) > 5 {
			m.errMsg = fmt.Sprintf("Input %q is invalid (need 3, 4, or 5 cards).", strings.Join(cards, ","))
			m.input.SetValue("")
			return m, nil
		}
		m.answers.Board = strings.Join(cards, ",")
		switch len(cards) {
		case 3:
			m.moveTo(stepTurn)
		case 4:
			m.moveTo(stepRiver)
		default:
			m.moveTo(stepDone)
		}

	case stepTurn:
		m.answers.Turn = poker.FirstCard(value)
		m.moveTo(stepRiver)

	case stepRiver:
		m.answers.River = poker.FirstCard(value)
		m.moveTo(stepDone)
	}

	if m.step == stepDone {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) moveTo(s step) {
	m.step = s
	m.input.SetValue("")
	if l, ok := labels[s]; ok {
		m.input.Placeholder = l.placeholder
	}
}

// View renders the current question.
func (m *Model) View() string {
	if m.step == stepDone || m.aborted {
		return ""
	}

	var b strings.Builder
	if m.answers.Hero != "" {
		b.WriteString(hintStyle.Render("Hero: "+m.answers.Hero) + "\n")
	}
	if m.answers.Board != "" {
		b.WriteString(hintStyle.Render("Board: "+m.answers.Board) + "\n")
	}
	b.WriteString(labelStyle.Render(labels[m.step].label) + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString(hintStyle.Render("enter to confirm, esc to quit") + "\n")
	return b.String()
}

// Answers returns what has been entered so far.
func (m *Model) Answers() Answers {
	return m.answers
}

// Aborted reports whether the user quit before finishing.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Done reports whether every step has been answered or skipped.
func (m *Model) Done() bool {
	return m.step == stepDone
}

// Run shows the prompt on the given terminal streams until every step is
// answered.
func Run(ctx context.Context, in io.Reader, out io.Writer) (Answers, error) {
	p := tea.NewProgram(New(), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return Answers{}, fmt.Errorf("prompt: %w", err)
	}

	m, ok := final.(*Model)
	if !ok {
		return Answers{}, fmt.Errorf("prompt: unexpected model %T", final)
	}
	if m.Aborted() || !m.Done() {
		return Answers{}, ErrAborted
	}
	return m.Answers(), nil
}
