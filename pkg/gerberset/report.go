package gerberset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/panelprep/panelprep/pkg/config"
	"github.com/panelprep/panelprep/pkg/errors"
	"github.com/panelprep/panelprep/pkg/gerber"
	"github.com/panelprep/panelprep/pkg/panel"
)

// Outputs names everything written for one run.
type Outputs struct {
	// Dir is the output directory next to the input archive.
	Dir string

	// MergedDir is the subdirectory reserved for the externally generated
	// merged gerbers.
	MergedDir string

	GerbersetPath string
	ReportPath    string
}

// WriteReport renders the human-readable run summary to w. Every number
// repeats a Layout field verbatim, so the report always agrees with the
// descriptor.
func WriteReport(w io.Writer, zipPath string, layout *panel.Layout, set *gerber.BoardSet, warnings []string) error {
	p := layout.Precision

	var b []byte
	add := func(format string, args ...any) {
		b = fmt.Appendf(b, format, args...)
	}

	add("panelprep panel report\n")
	add("======================\n\n")
	add("Source archive:  %s\n\n", zipPath)
	add("Board size:      %.*f x %.*f mm\n", p, layout.Board.Width, p, layout.Board.Height)
	add("Repeat:          %d x %d (%d boards)\n", layout.RepeatX, layout.RepeatY, layout.BoardCount())
	add("Frame width:     %.*f mm\n", p, layout.FrameWidth)
	add("Support bar:     %.*f mm\n", p, layout.SupportBarWidth)
	add("Panel size:      %.*f x %.*f mm\n", p, layout.TotalWidth, p, layout.TotalHeight)
	add("Surface area:    %.*f dm²\n", p+1, layout.SurfaceArea)

	add("\nBoard files:\n")
	for _, role := range set.Roles() {
		add("  %-18s %s\n", role+":", set.Files[role])
	}

	if len(warnings) > 0 {
		add("\nWarnings:\n")
		for _, warning := range warnings {
			add("  - %s\n", warning)
		}
	} else {
		add("\nNo warnings.\n")
	}

	if _, err := w.Write(b); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write report")
	}
	return nil
}

// WriteOutputs creates the output directory layout next to the input archive
// and writes the descriptor and report into it. Existing files are
// overwritten; an existing directory is reused.
func WriteOutputs(zipPath string, layout *panel.Layout, set *gerber.BoardSet, warnings []string, s *config.Settings) (*Outputs, error) {
	out := &Outputs{
		Dir: filepath.Join(filepath.Dir(zipPath), s.PanelOptions.DefaultExportFolderName),
	}
	out.MergedDir = filepath.Join(out.Dir, "merged")
	out.GerbersetPath = filepath.Join(out.Dir, DescriptorName(zipPath))
	out.ReportPath = filepath.Join(out.Dir, "report.txt")

	if err := os.MkdirAll(out.MergedDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create output directory %s", out.MergedDir)
	}

	descriptor := Build(zipPath, out.MergedDir, layout, s)
	if err := Export(out.GerbersetPath, descriptor); err != nil {
		return nil, err
	}

	f, err := os.Create(out.ReportPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create report %s", out.ReportPath)
	}
	defer f.Close()

	if err := WriteReport(f, zipPath, layout, set, warnings); err != nil {
		return nil, err
	}

	return out, nil
}
