package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/panelprep/panelprep/pkg/errors"
	"github.com/panelprep/panelprep/pkg/panel"
)

// axisLabels names the two repeat directions in prompt order.
var axisLabels = [2]string{"X", "Y"}

// axisPrompts are the questions asked for each direction.
var axisPrompts = [2]string{
	"Boards across the panel width  (X)",
	"Boards across the panel height (Y)",
}

// =============================================================================
// TerminalPrompter - Interactive repeat count entry
// =============================================================================

// TerminalPrompter asks for the repeat counts on the terminal.
type TerminalPrompter struct{}

// RepeatCounts runs the interactive prompt and returns the validated counts.
func (TerminalPrompter) RepeatCounts(ctx context.Context, board panel.Size) (int, int, error) {
	p := tea.NewProgram(newRepeatModel(board), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return 0, 0, ctx.Err()
		}
		return 0, 0, errors.Wrap(errors.ErrCodeInternal, err, "repeat count prompt")
	}

	m := final.(repeatModel)
	if m.cancelled {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "panelization cancelled")
	}
	return m.counts[0], m.counts[1], nil
}

// =============================================================================
// repeatModel - Bubbletea model for the two-field prompt
// =============================================================================

// repeatModel collects one positive integer per axis. Enter validates the
// current field and advances; the second accepted value quits the program.
type repeatModel struct {
	board     panel.Size
	inputs    [2]string
	counts    [2]int
	field     int
	errMsg    string
	cancelled bool
}

func newRepeatModel(board panel.Size) repeatModel {
	return repeatModel{board: board}
}

func (m repeatModel) Init() tea.Cmd {
	return nil
}

func (m repeatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit

	case "enter":
		n, err := errors.ValidateRepeatCount(axisLabels[m.field], m.inputs[m.field])
		if err != nil {
			m.errMsg = errors.UserMessage(err)
			return m, nil
		}
		m.counts[m.field] = n
		m.errMsg = ""
		m.field++
		if m.field == len(m.inputs) {
			return m, tea.Quit
		}

	case "backspace":
		if in := m.inputs[m.field]; in != "" {
			m.inputs[m.field] = in[:len(in)-1]
		}

	default:
		if key.Type == tea.KeyRunes && len(m.inputs[m.field]) < 3 {
			for _, r := range key.Runes {
				if r >= '0' && r <= '9' {
					m.inputs[m.field] += string(r)
				}
			}
		}
	}
	return m, nil
}

func (m repeatModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Panel repeat"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("board %.2f x %.2f mm  ·  ⏎ confirm  ·  esc cancel", m.board.Width, m.board.Height)))
	b.WriteString("\n\n")

	for i, prompt := range axisPrompts {
		cursor := "  "
		value := m.inputs[i]
		switch {
		case i < m.field:
			value = StyleValue.Render(fmt.Sprintf("%d", m.counts[i]))
		case i == m.field:
			cursor = StyleHighlight.Render("▸ ")
			value = StyleHighlight.Render(value + "▌")
		}
		b.WriteString(cursor + prompt + ": " + value + "\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + StyleWarning.Render(m.errMsg) + "\n")
	}
	return b.String()
}
