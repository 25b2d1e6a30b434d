package panel

import (
	"fmt"

	"github.com/panelprep/panelprep/pkg/config"
)

// EvaluateWarnings compares a computed layout against the fabrication limits
// and returns human-readable warnings in a fixed order: process width,
// process height, manufacturer width, manufacturer height, surface area.
//
// The surface area check only runs when enforce_surface_area is enabled.
// Pure function: no side effects, no failure modes.
func EvaluateWarnings(l *Layout, f *config.Fabrication) []string {
	var warnings []string

	if l.TotalWidth > f.MaxPanelWidth {
		warnings = append(warnings, fmt.Sprintf(
			"panel width %.*fmm exceeds the fabrication process limit of %gmm",
			l.Precision, l.TotalWidth, f.MaxPanelWidth))
	}
	if l.TotalHeight > f.MaxPanelHeight {
		warnings = append(warnings, fmt.Sprintf(
			"panel height %.*fmm exceeds the fabrication process limit of %gmm",
			l.Precision, l.TotalHeight, f.MaxPanelHeight))
	}
	if l.TotalWidth > f.MaxManufacturerWidth {
		warnings = append(warnings, fmt.Sprintf(
			"panel width %.*fmm exceeds the manufacturer limit of %gmm",
			l.Precision, l.TotalWidth, f.MaxManufacturerWidth))
	}
	if l.TotalHeight > f.MaxManufacturerHeight {
		warnings = append(warnings, fmt.Sprintf(
			"panel height %.*fmm exceeds the manufacturer limit of %gmm",
			l.Precision, l.TotalHeight, f.MaxManufacturerHeight))
	}
	if f.EnforceSurfaceArea && l.SurfaceArea > f.MaxPanelSurfaceArea {
		warnings = append(warnings, fmt.Sprintf(
			"panel surface area %.*fdm² exceeds the maximum of %gdm²",
			l.Precision+1, l.SurfaceArea, f.MaxPanelSurfaceArea))
	}

	return warnings
}
