// Package panel computes panel geometry from board extents, repeat counts,
// and the configured frame and support dimensions, and evaluates the result
// against fabrication limits.
//
// All inputs and outputs are millimetres except surface area, which is dm².
// Arithmetic runs at full float64 precision; only the published Layout fields
// are rounded, so the layout identities (interior = board×repeat +
// support×(repeat−1), total = interior + 2×frame) hold exactly before
// rounding.
package panel

import (
	"math"

	"github.com/panelprep/panelprep/pkg/config"
	"github.com/panelprep/panelprep/pkg/errors"
	"github.com/panelprep/panelprep/pkg/gerber"
)

// Size is a width/height pair in millimetres.
type Size struct {
	Width  float64
	Height float64
}

// Point is an absolute panel coordinate in millimetres.
type Point struct {
	X float64
	Y float64
}

// Layout is the computed panel geometry.
type Layout struct {
	// Board is the per-board extent from the profile outline.
	Board Size

	// RepeatX and RepeatY are the board counts along each axis.
	RepeatX int
	RepeatY int

	// FrameWidth and SupportBarWidth echo the settings used.
	FrameWidth      float64
	SupportBarWidth float64

	// InteriorWidth and InteriorHeight cover the boards plus support bars.
	InteriorWidth  float64
	InteriorHeight float64

	// TotalWidth and TotalHeight include the frame on both sides.
	TotalWidth  float64
	TotalHeight float64

	// SurfaceArea is the total panel area in dm².
	SurfaceArea float64

	// Placements holds one board origin position per instance, row by row
	// from the bottom-left.
	Placements []Point

	// Mousebites holds the de-duplicated mousebite centers.
	Mousebites []Point

	// Precision is the decimal precision applied to all fields above.
	Precision int
}

// BoardCount returns the number of board instances on the panel.
func (l *Layout) BoardCount() int {
	return l.RepeatX * l.RepeatY
}

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}

// ComputeLayout derives the panel geometry for the given board bounds and
// repeat counts. Non-positive repeat counts are an INVALID_INPUT error.
func ComputeLayout(bounds gerber.Bounds, repeatX, repeatY int, bites []Mousebite, s *config.Settings) (*Layout, error) {
	if repeatX < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "X repeat count must be positive, got %d", repeatX)
	}
	if repeatY < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "Y repeat count must be positive, got %d", repeatY)
	}

	opts := s.PanelOptions
	boardW := bounds.Width()
	boardH := bounds.Height()

	interiorW := boardW*float64(repeatX) + opts.SupportBarWidth*float64(repeatX-1)
	interiorH := boardH*float64(repeatY) + opts.SupportBarWidth*float64(repeatY-1)
	totalW := interiorW + 2*opts.PanelWidth
	totalH := interiorH + 2*opts.PanelWidth

	// mm² → dm²
	area := totalW * totalH / 10000

	l := &Layout{
		Board:           Size{Width: roundTo(boardW, opts.DecimalPrecision), Height: roundTo(boardH, opts.DecimalPrecision)},
		RepeatX:         repeatX,
		RepeatY:         repeatY,
		FrameWidth:      opts.PanelWidth,
		SupportBarWidth: opts.SupportBarWidth,
		InteriorWidth:   roundTo(interiorW, opts.DecimalPrecision),
		InteriorHeight:  roundTo(interiorH, opts.DecimalPrecision),
		TotalWidth:      roundTo(totalW, opts.DecimalPrecision),
		TotalHeight:     roundTo(totalH, opts.DecimalPrecision),
		SurfaceArea:     roundTo(area, opts.DecimalPrecision+1),
		Precision:       opts.DecimalPrecision,
	}

	l.place(bounds, boardW, boardH, bites, &opts)
	return l, nil
}

// place fills Placements and Mousebites. The first board origin sits just
// inside the frame, offset by the profile's own origin; subsequent boards
// step by board size plus one support bar.
func (l *Layout) place(bounds gerber.Bounds, boardW, boardH float64, bites []Mousebite, opts *config.PanelOptions) {
	startX := opts.PanelWidth + bounds.OriginX()
	startY := opts.PanelWidth + bounds.OriginY()
	stepX := boardW + opts.SupportBarWidth
	stepY := boardH + opts.SupportBarWidth

	rel := mousebiteOffsets(bounds, boardW, boardH, bites, opts)

	seen := make(map[Point]bool)
	for iy := 0; iy < l.RepeatY; iy++ {
		for ix := 0; ix < l.RepeatX; ix++ {
			x := startX + float64(ix)*stepX
			y := startY + float64(iy)*stepY
			l.Placements = append(l.Placements, Point{
				X: roundTo(x, l.Precision),
				Y: roundTo(y, l.Precision),
			})

			for _, r := range rel {
				p := Point{
					X: roundTo(x+r.X, l.Precision),
					Y: roundTo(y+r.Y, l.Precision),
				}
				// Adjacent boards share mousebites on their common edge.
				if !seen[p] {
					seen[p] = true
					l.Mousebites = append(l.Mousebites, p)
				}
			}
		}
	}
}

// mousebiteOffsets converts the mousebite location list into offsets relative
// to a board's origin. Each bite sits half a route diameter outside the board
// edge, shifted along the edge by the alignment times the mousebite diameter.
func mousebiteOffsets(bounds gerber.Bounds, boardW, boardH float64, bites []Mousebite, opts *config.PanelOptions) []Point {
	centerX := boardW/2 - bounds.OriginX()
	centerY := boardH/2 - bounds.OriginY()
	distX := boardW/2 + opts.RouteDiameter/2
	distY := boardH/2 + opts.RouteDiameter/2

	offsets := make([]Point, 0, len(bites))
	for _, b := range bites {
		p := Point{X: centerX, Y: centerY}
		if b.Dy != 0 {
			// Top or bottom edge: alignment shifts horizontally.
			p.Y += float64(b.Dy) * distY
			p.X += float64(b.Alignment) * opts.MousebiteDiameter
		} else {
			// Left or right edge: alignment shifts vertically.
			p.X += float64(b.Dx) * distX
			p.Y += float64(b.Alignment) * opts.MousebiteDiameter
		}
		offsets = append(offsets, p)
	}
	return offsets
}
