package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/panelprep/panelprep/pkg/archive"
	"github.com/panelprep/panelprep/pkg/config"
	"github.com/panelprep/panelprep/pkg/errors"
	"github.com/panelprep/panelprep/pkg/gerber"
	"github.com/panelprep/panelprep/pkg/gerberset"
	"github.com/panelprep/panelprep/pkg/panel"
)

// Runner executes the panelization pipeline.
type Runner struct {
	settings config.Settings
	prompter panel.Prompter
	logger   *log.Logger
}

// NewRunner creates a pipeline runner. prompter supplies repeat counts when
// Options does not; it may be nil if every run passes explicit counts.
// logger may be nil for the default logger.
func NewRunner(settings config.Settings, prompter panel.Prompter, logger *log.Logger) *Runner {
	return &Runner{
		settings: settings,
		prompter: prompter,
		logger:   loggerOrDefault(logger),
	}
}

// Execute runs the full pipeline. Any stage error aborts the run; the
// output directory is only created once every preceding stage has succeeded,
// so a failed run leaves no partial outputs behind.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.setDefaults()

	if err := errors.ValidateArchivePath(opts.ArchivePath); err != nil {
		return nil, err
	}
	zipPath, err := filepath.Abs(opts.ArchivePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve archive path %s", opts.ArchivePath)
	}

	bites, err := panel.ParseMousebites(opts.MousebiteSpec)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	// Extract
	start := time.Now()
	work, err := archive.Extract(zipPath, opts.WorkRoot)
	if err != nil {
		return nil, err
	}
	if opts.KeepWork {
		result.WorkDir = work.Root
	} else {
		defer func() {
			if cleanupErr := work.Cleanup(); cleanupErr != nil {
				r.logger.Warnf("Could not remove working directory %s: %v", work.Root, cleanupErr)
			}
		}()
	}
	result.Stats.ExtractTime = time.Since(start)
	r.logger.Debugf("Extracted %d files to %s", len(work.Files), work.Root)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Resolve
	result.BoardSet, err = gerber.Resolve(work.Files, &r.settings.GerberFilenames)
	if err != nil {
		return nil, err
	}
	result.Bounds, err = gerber.ReadProfileBounds(work.Path(result.BoardSet.Profile()))
	if err != nil {
		return nil, err
	}
	r.logger.Debugf("Board size: %.2f x %.2f mm (profile %s)",
		result.Bounds.Width(), result.Bounds.Height(), result.BoardSet.Profile())

	// Calculate
	start = time.Now()
	repeatX, repeatY, err := r.repeatCounts(ctx, opts, result.Bounds)
	if err != nil {
		return nil, err
	}
	result.Layout, err = panel.ComputeLayout(result.Bounds, repeatX, repeatY, bites, &r.settings)
	if err != nil {
		return nil, err
	}
	result.Stats.CalculateTime = time.Since(start)
	r.logger.Debugf("Panel size: %.*f x %.*f mm (%d boards)",
		result.Layout.Precision, result.Layout.TotalWidth,
		result.Layout.Precision, result.Layout.TotalHeight,
		result.Layout.BoardCount())

	// Evaluate
	result.Warnings = panel.EvaluateWarnings(result.Layout, &r.settings.Fabrication)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Write
	start = time.Now()
	result.Outputs, err = gerberset.WriteOutputs(zipPath, result.Layout, result.BoardSet, result.Warnings, &r.settings)
	if err != nil {
		return nil, err
	}
	result.Stats.WriteTime = time.Since(start)
	r.logger.Debugf("Descriptor written to %s", result.Outputs.GerbersetPath)

	return result, nil
}

// repeatCounts picks the repeat source: explicit options first, then the
// injected prompter.
func (r *Runner) repeatCounts(ctx context.Context, opts Options, bounds gerber.Bounds) (int, int, error) {
	if opts.RepeatX != 0 || opts.RepeatY != 0 {
		return panel.StaticPrompter{X: opts.RepeatX, Y: opts.RepeatY}.RepeatCounts(ctx, panel.Size{})
	}
	if r.prompter == nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "no repeat counts given and no prompter configured")
	}
	return r.prompter.RepeatCounts(ctx, panel.Size{
		Width:  bounds.Width(),
		Height: bounds.Height(),
	})
}
