// Package gerberset writes the run outputs: the .gerberset descriptor
// consumed by the external GerberPanelizer tool and the human-readable
// report.txt.
//
// The descriptor schema mirrors GerberPanelizer's GerberLayoutSet XML: board
// instances with center coordinates, break tabs (mousebites) with radii, and
// the panel-level merge settings. Everything here is write-once — the
// descriptor and report are never read back by this tool.
package gerberset

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/panelprep/panelprep/pkg/config"
	"github.com/panelprep/panelprep/pkg/errors"
	"github.com/panelprep/panelprep/pkg/panel"
)

// Center is an X/Y coordinate pair in panel space.
type Center struct {
	X float64 `xml:"X"`
	Y float64 `xml:"Y"`
}

// Instance places one copy of the board on the panel.
type Instance struct {
	Center Center `xml:"Center"`
	Angle  float64 `xml:"Angle"`
	// GerberPath names the source archive the panelizer loads the board
	// from.
	GerberPath string `xml:"GerberPath"`
	Generated  bool   `xml:"Generated"`
}

// BreakTab is one mousebite position.
type BreakTab struct {
	Center Center  `xml:"Center"`
	Angle  float64 `xml:"Angle"`
	Radius float64 `xml:"Radius"`
	// The panelizer recomputes tab validity on load; it expects false here.
	Valid bool `xml:"Valid"`
}

// StencilApertures carries the optional stencil alignment aperture metadata.
type StencilApertures struct {
	Diameter  float64 `xml:"Diameter"`
	Clearance float64 `xml:"Clearance"`
}

// LayoutSet is the root element of a .gerberset descriptor.
type LayoutSet struct {
	XMLName xml.Name `xml:"GerberLayoutSet"`
	XSD     string   `xml:"xmlns:xsd,attr"`
	XSI     string   `xml:"xmlns:xsi,attr"`

	LoadedOutlines []string   `xml:"LoadedOutlines>string"`
	Instances      []Instance `xml:"Instances>GerberInstance"`
	Tabs           []BreakTab `xml:"Tabs>BreakTab"`

	Width               float64 `xml:"Width"`
	Height              float64 `xml:"Height"`
	MarginBetweenBoards float64 `xml:"MarginBetweenBoards"`
	// Fill the area outside the board outlines.
	ConstructNegativePolygon bool    `xml:"ConstructNegativePolygon"`
	FillOffset               float64 `xml:"FillOffset"`
	Smoothing                float64 `xml:"Smoothing"`
	ExtraTabDrillDistance    float64 `xml:"ExtraTabDrillDistance"`
	// Clipping the silk layer to the outline avoids artifacts when silk
	// runs over the board edge.
	ClipToOutlines          bool              `xml:"ClipToOutlines"`
	LastExportFolder        string            `xml:"LastExportFolder"`
	DoNotGenerateMouseBites bool              `xml:"DoNotGenerateMouseBites"`
	Stencil                 *StencilApertures `xml:"StencilApertures,omitempty"`
}

// fillOffsetSlack widens the negative-polygon fill slightly beyond the route
// diameter; without it the panelizer occasionally rejects valid break tabs
// on odd-sized boards.
const fillOffsetSlack = 0.01

// Build assembles the descriptor for a computed layout. zipPath is the
// absolute path of the source archive, exportDir the directory the panelizer
// should write merged gerbers to.
func Build(zipPath, exportDir string, layout *panel.Layout, s *config.Settings) *LayoutSet {
	opts := s.PanelOptions

	set := &LayoutSet{
		XSD:                      "http://www.w3.org/2001/XMLSchema",
		XSI:                      "http://www.w3.org/2001/XMLSchema-instance",
		LoadedOutlines:           []string{zipPath},
		Width:                    layout.TotalWidth,
		Height:                   layout.TotalHeight,
		MarginBetweenBoards:      opts.RouteDiameter,
		ConstructNegativePolygon: true,
		FillOffset:               opts.RouteDiameter + fillOffsetSlack,
		Smoothing:                1,
		ExtraTabDrillDistance:    0,
		ClipToOutlines:           true,
		LastExportFolder:         exportDir,
		DoNotGenerateMouseBites:  false,
	}

	for _, p := range layout.Placements {
		set.Instances = append(set.Instances, Instance{
			Center:     Center{X: p.X, Y: p.Y},
			GerberPath: zipPath,
		})
	}
	for _, p := range layout.Mousebites {
		set.Tabs = append(set.Tabs, BreakTab{
			Center: Center{X: p.X, Y: p.Y},
			Radius: opts.MousebiteDiameter,
		})
	}

	if opts.StencilApertures {
		set.Stencil = &StencilApertures{
			Diameter:  opts.StencilApertureDiameter,
			Clearance: opts.StencilApertureClearance,
		}
	}

	return set
}

// Write encodes the descriptor as indented XML to w.
func Write(w io.Writer, set *LayoutSet) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write descriptor header")
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode descriptor")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write descriptor")
	}
	return nil
}

// Export writes the descriptor to path.
func Export(path string, set *LayoutSet) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create descriptor %s", path)
	}
	defer f.Close()

	if err := Write(f, set); err != nil {
		return err
	}
	return nil
}

// DescriptorName derives the descriptor filename from the archive name:
// board.zip becomes board-panel.gerberset.
func DescriptorName(zipPath string) string {
	stem := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	return stem + "-panel.gerberset"
}
