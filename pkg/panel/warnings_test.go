package panel

import (
	"strings"
	"testing"

	"github.com/panelprep/panelprep/pkg/config"
)

func fabricationLimits() *config.Fabrication {
	f := config.Default().Fabrication
	return &f
}

func TestEvaluateWarningsNone(t *testing.T) {
	l := &Layout{TotalWidth: 174, TotalHeight: 120, SurfaceArea: 2.088, Precision: 2}
	if got := EvaluateWarnings(l, fabricationLimits()); len(got) != 0 {
		t.Errorf("EvaluateWarnings = %v, want none", got)
	}
}

func TestEvaluateWarningsDimensions(t *testing.T) {
	f := fabricationLimits()
	// Wider than both the process (400) and manufacturer (450) limits.
	l := &Layout{TotalWidth: 460, TotalHeight: 120, SurfaceArea: 5.52, Precision: 2}

	got := EvaluateWarnings(l, f)
	if len(got) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(got), got)
	}
	if !strings.Contains(got[0], "fabrication process limit") {
		t.Errorf("first warning should name the process limit: %s", got[0])
	}
	if !strings.Contains(got[1], "manufacturer limit") {
		t.Errorf("second warning should name the manufacturer limit: %s", got[1])
	}
}

func TestEvaluateWarningsSurfaceArea(t *testing.T) {
	f := fabricationLimits()
	f.MaxPanelSurfaceArea = 2.0
	l := &Layout{TotalWidth: 174, TotalHeight: 120, SurfaceArea: 2.088, Precision: 2}

	got := EvaluateWarnings(l, f)
	if len(got) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(got), got)
	}
	if !strings.Contains(got[0], "surface area") {
		t.Errorf("warning should mention surface area: %s", got[0])
	}
}

func TestEvaluateWarningsSurfaceAreaToggleDisabled(t *testing.T) {
	// A disabled toggle suppresses the area warning regardless of the value.
	f := fabricationLimits()
	f.MaxPanelSurfaceArea = 0.001
	f.EnforceSurfaceArea = false
	l := &Layout{TotalWidth: 174, TotalHeight: 120, SurfaceArea: 99, Precision: 2}

	if got := EvaluateWarnings(l, f); len(got) != 0 {
		t.Errorf("EvaluateWarnings = %v, want none with toggle disabled", got)
	}
}

func TestEvaluateWarningsBoundaryNotExceeded(t *testing.T) {
	// Exactly at the limit is allowed; warnings require strict excess.
	f := fabricationLimits()
	l := &Layout{
		TotalWidth:  f.MaxPanelWidth,
		TotalHeight: f.MaxPanelHeight,
		SurfaceArea: f.MaxPanelSurfaceArea,
		Precision:   2,
	}

	if got := EvaluateWarnings(l, f); len(got) != 0 {
		t.Errorf("EvaluateWarnings = %v, want none at exact limits", got)
	}
}
