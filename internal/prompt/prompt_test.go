package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(t *testing.T, m *Model, text string) tea.Cmd {
	t.Helper()
	if text != "" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPromptFullSequence(t *testing.T) {
	t.Parallel()

	m := New()
	assert.Contains(t, m.View(), "Enter hero hand")

	assert.False(t, isQuit(send(t, m, "ah kd")))
	assert.Contains(t, m.View(), "Enter flop cards")

	assert.False(t, isQuit(send(t, m, "qsjh2h")))
	assert.Contains(t, m.View(), "Enter turn card")
	assert.Contains(t, m.View(), "Board: Qs,Jh,2h")

	assert.False(t, isQuit(send(t, m, "9d8c")))
	assert.Contains(t, m.View(), "Enter river card")

	assert.True(t, isQuit(send(t, m, "3c")))
	assert.True(t, m.Done())
	assert.False(t, m.Aborted())
	assert.Empty(t, m.View())

	assert.Equal(t, Answers{Hero: "ah kd", Board: "Qs,Jh,2h", Turn: "9d", River: "3c"}, m.Answers())
}

func TestPromptSkipsPrefilledStreets(t *testing.T) {
	t.Parallel()

	t.Run("four cards skip the turn", func(t *testing.T) {
		m := New()
		send(t, m, "AhKd")
		send(t, m, "Qs Jh 2h 9d")
		assert.Contains(t, m.View(), "Enter river card")

		assert.True(t, isQuit(send(t, m, "")))
		assert.Equal(t, Answers{Hero: "AhKd", Board: "Qs,Jh,2h,9d"}, m.Answers())
	})

	t.Run("five cards finish immediately", func(t *testing.T) {
		m := New()
		send(t, m, "AhKd")
		assert.True(t, isQuit(send(t, m, "QsJh2h9d3c")))
		assert.True(t, m.Done())
		assert.Equal(t, "Qs,Jh,2h,9d,3c", m.Answers().Board)
	})
}

func TestPromptEmptyTurnSkips(t *testing.T) {
	t.Parallel()

	m := New()
	send(t, m, "AhKd")
	send(t, m, "QsJh2h")
	send(t, m, "")
	assert.True(t, isQuit(send(t, m, "")))
	assert.Equal(t, Answers{Hero: "AhKd", Board: "Qs,Jh,2h"}, m.Answers())
}

func TestPromptRejectsBadBoard(t *testing.T) {
	t.Parallel()

	m := New()
	send(t, m, "AhKd")
	assert.Nil(t, send(t, m, "QsJh"))
	assert.Contains(t, m.View(), "need 3, 4, or 5 cards")
	assert.Contains(t, m.View(), "Enter flop cards", "stays on the board step")

	send(t, m, "QsJh2h")
	assert.NotContains(t, m.View(), "need 3, 4, or 5 cards")
	assert.Contains(t, m.View(), "Enter turn card")
}

func TestPromptAbort(t *testing.T) {
	t.Parallel()

	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := New()
		send(t, m, "AhKd")
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.True(t, isQuit(cmd))
		assert.True(t, m.Aborted())
		assert.False(t, m.Done())
	}
}
