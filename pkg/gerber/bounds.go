package gerber

import (
	"bufio"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/panelprep/panelprep/pkg/errors"
)

// Bounds is the bounding box of the board outline in millimetres.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// OriginX returns the distance from the outline's left edge to the gerber
// origin. Boards drawn entirely in positive coordinates have a negative
// origin offset from the bottom-left corner, hence the sign flip.
func (b Bounds) OriginX() float64 { return -b.MinX }

// OriginY returns the distance from the outline's bottom edge to the gerber
// origin.
func (b Bounds) OriginY() float64 { return -b.MinY }

// RS-274X statements and coordinate words. Coordinates are integers scaled
// by the decimal count of the format specification; leading zeros omitted.
var (
	formatRe = regexp.MustCompile(`%FS[LT][AI]X(\d)(\d)Y(\d)(\d)\*%`)
	xWordRe  = regexp.MustCompile(`X(-?\d+)`)
	yWordRe  = regexp.MustCompile(`Y(-?\d+)`)
)

// ReadProfileBounds scans the profile gerber at path and returns the outline
// bounding box in millimetres.
//
// Only the coordinate words are interpreted: the format specification
// (%FSLAX34Y34*%) for the decimal scale, the unit declaration (%MOMM*% or
// %MOIN*%), and X/Y draw or move coordinates. Imperial files are converted to
// metric. Coordinates are modal — a line carrying only X reuses the previous
// Y and vice versa.
func ReadProfileBounds(path string) (Bounds, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bounds{}, errors.Wrap(errors.ErrCodeBoardSet, err, "open profile file %s", path)
	}
	defer f.Close()

	// Default to the 3.4 format common in Altium exports when no format
	// specification is present.
	decimals := 4
	unitScale := 1.0 // mm

	var (
		curX, curY float64
		haveX      bool
		haveY      bool
		b          = Bounds{MinX: math.Inf(1), MaxX: math.Inf(-1), MinY: math.Inf(1), MaxY: math.Inf(-1)}
		seen       int
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "%") {
			if m := formatRe.FindStringSubmatch(line); m != nil {
				// X decimals govern the scale; X and Y agree in practice.
				decimals, _ = strconv.Atoi(m[2])
			}
			if strings.Contains(line, "%MOIN") {
				unitScale = 25.4
			}
			if strings.Contains(line, "%MOMM") {
				unitScale = 1.0
			}
			continue
		}

		if line == "M02*" {
			break
		}
		if line[0] != 'X' && line[0] != 'Y' {
			continue
		}

		scale := unitScale / math.Pow10(decimals)
		if m := xWordRe.FindStringSubmatch(line); m != nil {
			v, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				return Bounds{}, errors.Wrap(errors.ErrCodeBoardSet, err, "parse coordinate in %s", path)
			}
			curX = float64(v) * scale
			haveX = true
		}
		if m := yWordRe.FindStringSubmatch(line); m != nil {
			v, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				return Bounds{}, errors.Wrap(errors.ErrCodeBoardSet, err, "parse coordinate in %s", path)
			}
			curY = float64(v) * scale
			haveY = true
		}

		if haveX && haveY {
			b.MinX = math.Min(b.MinX, curX)
			b.MaxX = math.Max(b.MaxX, curX)
			b.MinY = math.Min(b.MinY, curY)
			b.MaxY = math.Max(b.MaxY, curY)
			seen++
		}
	}
	if err := scanner.Err(); err != nil {
		return Bounds{}, errors.Wrap(errors.ErrCodeBoardSet, err, "read profile file %s", path)
	}

	if seen == 0 {
		return Bounds{}, errors.New(errors.ErrCodeBoardSet, "profile file %s contains no coordinate data", path)
	}
	if b.Width() <= 0 || b.Height() <= 0 {
		return Bounds{}, errors.New(errors.ErrCodeBoardSet,
			"profile outline in %s has zero extent (%.4f x %.4f mm)", path, b.Width(), b.Height())
	}

	return b, nil
}
