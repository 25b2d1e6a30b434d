package gerber

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/panelprep/panelprep/pkg/errors"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.gko")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestReadProfileBoundsMetric(t *testing.T) {
	// 50mm x 30mm rectangle in 3.4 metric format.
	path := writeProfile(t, `G04 board outline*
%FSLAX34Y34*%
%MOMM*%
%LPD*%
X0Y0D02*
X500000Y0D01*
X500000Y300000D01*
X0Y300000D01*
X0Y0D01*
M02*
`)

	b, err := ReadProfileBounds(path)
	if err != nil {
		t.Fatalf("ReadProfileBounds error: %v", err)
	}

	if !almostEqual(b.Width(), 50) {
		t.Errorf("Width = %g, want 50", b.Width())
	}
	if !almostEqual(b.Height(), 30) {
		t.Errorf("Height = %g, want 30", b.Height())
	}
	if !almostEqual(b.OriginX(), 0) || !almostEqual(b.OriginY(), 0) {
		t.Errorf("Origin = (%g, %g), want (0, 0)", b.OriginX(), b.OriginY())
	}
}

func TestReadProfileBoundsOffsetOrigin(t *testing.T) {
	// Outline from -1mm to 49mm: origin sits 1mm inside the left/bottom edge.
	path := writeProfile(t, `%FSLAX34Y34*%
%MOMM*%
X-10000Y-10000D02*
X490000Y-10000D01*
X490000Y490000D01*
X-10000Y490000D01*
X-10000Y-10000D01*
M02*
`)

	b, err := ReadProfileBounds(path)
	if err != nil {
		t.Fatalf("ReadProfileBounds error: %v", err)
	}

	if !almostEqual(b.Width(), 50) || !almostEqual(b.Height(), 50) {
		t.Errorf("size = %g x %g, want 50 x 50", b.Width(), b.Height())
	}
	if !almostEqual(b.OriginX(), 1) || !almostEqual(b.OriginY(), 1) {
		t.Errorf("Origin = (%g, %g), want (1, 1)", b.OriginX(), b.OriginY())
	}
}

func TestReadProfileBoundsModalCoordinates(t *testing.T) {
	// Second draw carries only Y, reusing the previous X.
	path := writeProfile(t, `%FSLAX34Y34*%
%MOMM*%
X0Y0D02*
X200000D01*
Y100000D01*
X0D01*
Y0D01*
M02*
`)

	b, err := ReadProfileBounds(path)
	if err != nil {
		t.Fatalf("ReadProfileBounds error: %v", err)
	}
	if !almostEqual(b.Width(), 20) || !almostEqual(b.Height(), 10) {
		t.Errorf("size = %g x %g, want 20 x 10", b.Width(), b.Height())
	}
}

func TestReadProfileBoundsImperial(t *testing.T) {
	// 1 inch square in 2.3 imperial format converts to 25.4mm.
	path := writeProfile(t, `%FSLAX23Y23*%
%MOIN*%
X0Y0D02*
X1000Y0D01*
X1000Y1000D01*
X0Y1000D01*
X0Y0D01*
M02*
`)

	b, err := ReadProfileBounds(path)
	if err != nil {
		t.Fatalf("ReadProfileBounds error: %v", err)
	}
	if !almostEqual(b.Width(), 25.4) || !almostEqual(b.Height(), 25.4) {
		t.Errorf("size = %g x %g, want 25.4 x 25.4", b.Width(), b.Height())
	}
}

func TestReadProfileBoundsNoCoordinates(t *testing.T) {
	path := writeProfile(t, `G04 empty*
%FSLAX34Y34*%
%MOMM*%
M02*
`)

	_, err := ReadProfileBounds(path)
	if !errors.Is(err, errors.ErrCodeBoardSet) {
		t.Errorf("ReadProfileBounds error = %v, want BOARD_SET_ERROR", err)
	}
}

func TestReadProfileBoundsZeroExtent(t *testing.T) {
	path := writeProfile(t, `%FSLAX34Y34*%
%MOMM*%
X100000Y100000D02*
X100000Y100000D01*
M02*
`)

	_, err := ReadProfileBounds(path)
	if !errors.Is(err, errors.ErrCodeBoardSet) {
		t.Errorf("ReadProfileBounds error = %v, want BOARD_SET_ERROR", err)
	}
}

func TestReadProfileBoundsMissingFile(t *testing.T) {
	_, err := ReadProfileBounds(filepath.Join(t.TempDir(), "missing.gko"))
	if !errors.Is(err, errors.ErrCodeBoardSet) {
		t.Errorf("ReadProfileBounds error = %v, want BOARD_SET_ERROR", err)
	}
}
