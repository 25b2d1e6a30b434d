package panel

import (
	"context"

	"github.com/panelprep/panelprep/pkg/errors"
)

// Prompter supplies the repeat counts for a run. The CLI implements it with
// an interactive terminal prompt; tests and flag-driven runs use
// StaticPrompter. Decoupling input from calculation keeps the pipeline fully
// testable without a terminal.
type Prompter interface {
	// RepeatCounts returns the X and Y repeat counts for a board of the
	// given size.
	RepeatCounts(ctx context.Context, board Size) (x, y int, err error)
}

// StaticPrompter returns fixed repeat counts, typically from command-line
// flags.
type StaticPrompter struct {
	X int
	Y int
}

// RepeatCounts implements Prompter.
func (p StaticPrompter) RepeatCounts(_ context.Context, _ Size) (int, int, error) {
	if p.X < 1 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "X repeat count must be positive, got %d", p.X)
	}
	if p.Y < 1 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "Y repeat count must be positive, got %d", p.Y)
	}
	return p.X, p.Y, nil
}
