// Package pipeline provides the panelization pipeline for panelprep.
//
// This package implements the complete extract → resolve → calculate →
// evaluate → write flow behind the panelize command. Centralizing it keeps
// the CLI thin and lets tests drive a full run without a terminal.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Extract: unpack the input zip into a working directory
//  2. Resolve: map extracted files onto board roles and read the profile
//     bounds
//  3. Calculate: obtain repeat counts and compute the panel layout
//  4. Evaluate: compare the layout against fabrication limits
//  5. Write: emit the .gerberset descriptor and report.txt
//
// # Usage
//
//	runner := pipeline.NewRunner(settings, prompter, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ArchivePath: "board.zip",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Outputs.GerbersetPath)
package pipeline

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/panelprep/panelprep/pkg/gerber"
	"github.com/panelprep/panelprep/pkg/gerberset"
	"github.com/panelprep/panelprep/pkg/panel"
)

// Options configures one pipeline run.
type Options struct {
	// ArchivePath is the input zip archive.
	ArchivePath string

	// RepeatX and RepeatY, when set, bypass the prompter. Both must be
	// positive when either is.
	RepeatX int
	RepeatY int

	// MousebiteSpec is the comma-separated mousebite location list.
	// Empty means panel.DefaultMousebiteSpec.
	MousebiteSpec string

	// WorkRoot is the parent of the extraction working directory.
	// Empty means the system temp directory.
	WorkRoot string

	// KeepWork retains the extraction directory after the run.
	KeepWork bool
}

// setDefaults fills the optional fields.
func (o *Options) setDefaults() {
	if o.MousebiteSpec == "" {
		o.MousebiteSpec = panel.DefaultMousebiteSpec
	}
	if o.WorkRoot == "" {
		o.WorkRoot = os.TempDir()
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// BoardSet maps roles to the resolved files.
	BoardSet *gerber.BoardSet

	// Bounds is the profile bounding box in millimetres.
	Bounds gerber.Bounds

	// Layout is the computed panel geometry.
	Layout *panel.Layout

	// Warnings lists the fabrication-limit advisories, possibly empty.
	Warnings []string

	// Outputs names the written files.
	Outputs *gerberset.Outputs

	// WorkDir is the extraction directory; set only with Options.KeepWork.
	WorkDir string

	// Stats contains per-stage timings.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ExtractTime   time.Duration
	CalculateTime time.Duration
	WriteTime     time.Duration
}

// loggerOrDefault keeps nil-logger call sites working.
func loggerOrDefault(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.Default()
}
