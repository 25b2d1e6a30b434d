package panel

import (
	"context"
	"testing"

	"github.com/panelprep/panelprep/pkg/errors"
)

func TestParseMousebites(t *testing.T) {
	bites, err := ParseMousebites("cb,ct")
	if err != nil {
		t.Fatalf("ParseMousebites error: %v", err)
	}
	if len(bites) != 2 {
		t.Fatalf("got %d bites, want 2", len(bites))
	}

	if bites[0].Dy != -1 || bites[0].Alignment != 0 {
		t.Errorf("cb = %+v, want bottom edge, center alignment", bites[0])
	}
	if bites[1].Dy != 1 || bites[1].Alignment != 0 {
		t.Errorf("ct = %+v, want top edge, center alignment", bites[1])
	}
}

func TestParseMousebitesAllCodes(t *testing.T) {
	tests := []struct {
		code      string
		dx, dy    int
		alignment int
	}{
		{"cb", 0, -1, 0},
		{"ct", 0, 1, 0},
		{"cl", -1, 0, 0},
		{"cr", 1, 0, 0},
		{"xb", 0, -1, -1},
		{"vt", 0, 1, 1},
		{"xl", -1, 0, -1},
		{"vr", 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			bites, err := ParseMousebites(tt.code)
			if err != nil {
				t.Fatalf("ParseMousebites(%q): %v", tt.code, err)
			}
			b := bites[0]
			if b.Dx != tt.dx || b.Dy != tt.dy || b.Alignment != tt.alignment {
				t.Errorf("ParseMousebites(%q) = %+v, want dx=%d dy=%d align=%d",
					tt.code, b, tt.dx, tt.dy, tt.alignment)
			}
		})
	}
}

func TestParseMousebitesNormalization(t *testing.T) {
	// Case-insensitive, whitespace-tolerant, duplicates collapsed.
	bites, err := ParseMousebites(" CB , ct,cb ")
	if err != nil {
		t.Fatalf("ParseMousebites error: %v", err)
	}
	if len(bites) != 2 {
		t.Errorf("got %d bites, want 2 after de-duplication", len(bites))
	}
}

func TestParseMousebitesInvalid(t *testing.T) {
	for _, spec := range []string{"", "q", "cbb", "zb", "cz", ","} {
		_, err := ParseMousebites(spec)
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ParseMousebites(%q) error = %v, want INVALID_INPUT", spec, err)
		}
	}
}

func TestStaticPrompter(t *testing.T) {
	x, y, err := StaticPrompter{X: 3, Y: 2}.RepeatCounts(context.Background(), Size{50, 50})
	if err != nil {
		t.Fatalf("RepeatCounts error: %v", err)
	}
	if x != 3 || y != 2 {
		t.Errorf("RepeatCounts = (%d, %d), want (3, 2)", x, y)
	}

	for _, p := range []StaticPrompter{{X: 0, Y: 2}, {X: 3, Y: 0}, {X: -1, Y: -1}} {
		if _, _, err := p.RepeatCounts(context.Background(), Size{50, 50}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("RepeatCounts(%+v) error = %v, want INVALID_INPUT", p, err)
		}
	}
}
