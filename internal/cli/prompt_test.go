package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/panelprep/panelprep/pkg/panel"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m repeatModel, msg tea.Msg) (repeatModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(repeatModel)
	if !ok {
		t.Fatalf("Update returned %T, want repeatModel", next)
	}
	return rm, cmd
}

func TestRepeatModelAcceptsCounts(t *testing.T) {
	m := newRepeatModel(panel.Size{Width: 50, Height: 50})

	m, _ = update(t, m, keyRunes("3"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("model quit after the first field")
	}
	if m.field != 1 {
		t.Fatalf("field = %d, want 1", m.field)
	}

	m, _ = update(t, m, keyRunes("2"))
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("model should quit after the second field")
	}
	if m.counts != [2]int{3, 2} {
		t.Errorf("counts = %v, want [3 2]", m.counts)
	}
	if m.cancelled {
		t.Error("completed entry must not be cancelled")
	}
}

func TestRepeatModelRejectsInvalidInput(t *testing.T) {
	m := newRepeatModel(panel.Size{Width: 50, Height: 50})

	// Empty input must not advance.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.field != 0 {
		t.Error("empty input advanced the prompt")
	}
	if m.errMsg == "" {
		t.Error("empty input should set an error message")
	}

	// Zero is not a valid repeat count.
	m, _ = update(t, m, keyRunes("0"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.field != 0 || m.errMsg == "" {
		t.Error("zero repeat count accepted")
	}

	// A valid value clears the error.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = update(t, m, keyRunes("4"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.errMsg != "" {
		t.Errorf("errMsg = %q, want empty after valid input", m.errMsg)
	}
	if m.counts[0] != 4 {
		t.Errorf("counts[0] = %d, want 4", m.counts[0])
	}
}

func TestRepeatModelIgnoresNonDigits(t *testing.T) {
	m := newRepeatModel(panel.Size{})

	m, _ = update(t, m, keyRunes("a"))
	m, _ = update(t, m, keyRunes("-"))
	m, _ = update(t, m, keyRunes("7"))
	if m.inputs[0] != "7" {
		t.Errorf("inputs[0] = %q, want %q", m.inputs[0], "7")
	}
}

func TestRepeatModelCancel(t *testing.T) {
	m := newRepeatModel(panel.Size{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit the prompt")
	}
	if !m.cancelled {
		t.Error("esc should mark the prompt cancelled")
	}
}
