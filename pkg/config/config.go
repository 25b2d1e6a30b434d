// Package config loads and validates the panelprep settings file.
//
// The settings file is TOML with three tables: [PanelOptions] for the
// geometry constants used by the panel calculator, [Fabrication] for the
// process and manufacturer limits checked by the warning evaluator, and
// [GerberFilenames] for the filename conventions used to resolve board
// file roles.
//
// Settings are validated eagerly at load time. Downstream packages receive a
// fully checked Settings value and never re-validate individual fields.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/panelprep/panelprep/pkg/errors"
)

// DefaultFilename is the settings file looked up next to the working
// directory when --config is not given.
const DefaultFilename = "panelprep.toml"

// Settings is the immutable configuration bundle for one run.
type Settings struct {
	PanelOptions    PanelOptions    `toml:"PanelOptions"`
	Fabrication     Fabrication     `toml:"Fabrication"`
	GerberFilenames GerberFilenames `toml:"GerberFilenames"`
}

// PanelOptions holds the geometry constants for panel construction.
// All dimensions are millimetres.
type PanelOptions struct {
	// MousebiteDiameter is the drill diameter of a single mousebite hole.
	MousebiteDiameter float64 `toml:"mousebite_diameter"`

	// RouteDiameter is the routing tool diameter used for board separation.
	RouteDiameter float64 `toml:"route_diameter"`

	// PanelWidth is the frame width added on each side of the panel.
	PanelWidth float64 `toml:"panel_width"`

	// SupportBarWidth is the width of the support bars between boards.
	SupportBarWidth float64 `toml:"support_bar_width"`

	// DecimalPrecision is the number of decimal places for published
	// dimensions.
	DecimalPrecision int `toml:"decimal_precision"`

	// DefaultExportFolderName is the output directory created next to the
	// input archive.
	DefaultExportFolderName string `toml:"default_export_folder_name"`

	// StencilApertures enables stencil alignment aperture metadata in the
	// gerberset descriptor.
	StencilApertures         bool    `toml:"stencil_apertures"`
	StencilApertureDiameter  float64 `toml:"stencil_aperture_diameter"`
	StencilApertureClearance float64 `toml:"stencil_aperture_clearance"`
}

// Fabrication holds the process and manufacturer limits.
// Dimensions are millimetres, surface area is dm².
type Fabrication struct {
	MaxPanelWidth         float64 `toml:"max_panel_width"`
	MaxPanelHeight        float64 `toml:"max_panel_height"`
	MaxManufacturerWidth  float64 `toml:"max_manufacturer_width"`
	MaxManufacturerHeight float64 `toml:"max_manufacturer_height"`
	MaxPanelSurfaceArea   float64 `toml:"max_panel_surface_area"`
	EnforceSurfaceArea    bool    `toml:"enforce_surface_area"`
}

// GerberFilenames maps board file roles to accepted filename patterns.
// A pattern starting with "." matches the file extension; any other pattern
// matches the basename exactly. Matching is case-insensitive.
type GerberFilenames struct {
	CopperTop        []string `toml:"copper_top"`
	CopperBottom     []string `toml:"copper_bottom"`
	SilkscreenTop    []string `toml:"silkscreen_top"`
	SilkscreenBottom []string `toml:"silkscreen_bottom"`
	SoldermaskTop    []string `toml:"soldermask_top"`
	SoldermaskBottom []string `toml:"soldermask_bottom"`
	PasteTop         []string `toml:"paste_top"`
	PasteBottom      []string `toml:"paste_bottom"`
	Profile          []string `toml:"profile"`
	Drill            []string `toml:"drill"`

	// Required lists the roles that must resolve to exactly one file.
	Required []string `toml:"required"`
}

// Patterns returns the role → pattern mapping keyed by role name.
func (g *GerberFilenames) Patterns() map[string][]string {
	return map[string][]string{
		"copper_top":        g.CopperTop,
		"copper_bottom":     g.CopperBottom,
		"silkscreen_top":    g.SilkscreenTop,
		"silkscreen_bottom": g.SilkscreenBottom,
		"soldermask_top":    g.SoldermaskTop,
		"soldermask_bottom": g.SoldermaskBottom,
		"paste_top":         g.PasteTop,
		"paste_bottom":      g.PasteBottom,
		"profile":           g.Profile,
		"drill":             g.Drill,
	}
}

// Default returns the shipped settings, matching Altium filename conventions
// and typical pooling-service fabrication limits.
func Default() Settings {
	return Settings{
		PanelOptions: PanelOptions{
			MousebiteDiameter:        0.8,
			RouteDiameter:            2.0,
			PanelWidth:               8.0,
			SupportBarWidth:          4.0,
			DecimalPrecision:         2,
			DefaultExportFolderName:  "panel",
			StencilApertures:         false,
			StencilApertureDiameter:  1.0,
			StencilApertureClearance: 0.25,
		},
		Fabrication: Fabrication{
			MaxPanelWidth:         400,
			MaxPanelHeight:        500,
			MaxManufacturerWidth:  450,
			MaxManufacturerHeight: 580,
			MaxPanelSurfaceArea:   20.0,
			EnforceSurfaceArea:    true,
		},
		GerberFilenames: GerberFilenames{
			CopperTop:        []string{".gtl"},
			CopperBottom:     []string{".gbl"},
			SilkscreenTop:    []string{".gto"},
			SilkscreenBottom: []string{".gbo"},
			SoldermaskTop:    []string{".gts"},
			SoldermaskBottom: []string{".gbs"},
			PasteTop:         []string{".gtp"},
			PasteBottom:      []string{".gbp"},
			Profile:          []string{".gko", ".gm1"},
			Drill:            []string{".drl", ".xln", ".txt"},
			Required:         []string{"copper_top", "copper_bottom", "profile", "drill"},
		},
	}
}

// requiredKeys are the settings that must be present in a loaded file.
// Keys absent from the file are a CONFIG error even when the zero value
// would pass range validation.
var requiredKeys = [][]string{
	{"PanelOptions", "mousebite_diameter"},
	{"PanelOptions", "route_diameter"},
	{"PanelOptions", "panel_width"},
	{"PanelOptions", "support_bar_width"},
	{"PanelOptions", "decimal_precision"},
	{"PanelOptions", "default_export_folder_name"},
	{"Fabrication", "max_panel_width"},
	{"Fabrication", "max_panel_height"},
	{"Fabrication", "max_manufacturer_width"},
	{"Fabrication", "max_manufacturer_height"},
	{"Fabrication", "max_panel_surface_area"},
	{"GerberFilenames", "profile"},
	{"GerberFilenames", "required"},
}

// Load reads and validates the settings file at path.
func Load(path string) (Settings, error) {
	var s Settings
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, errors.Wrap(errors.ErrCodeConfig, err, "settings file not found: %s", path)
		}
		return Settings{}, errors.Wrap(errors.ErrCodeConfig, err, "parse settings file %s", path)
	}

	for _, key := range requiredKeys {
		if !md.IsDefined(key...) {
			return Settings{}, errors.New(errors.ErrCodeConfig, "missing required setting %s.%s in %s", key[0], key[1], path)
		}
	}

	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// validate checks field ranges and cross-field consistency.
func (s *Settings) validate() error {
	p := s.PanelOptions
	switch {
	case p.MousebiteDiameter <= 0:
		return errors.New(errors.ErrCodeConfig, "PanelOptions.mousebite_diameter must be positive, got %g", p.MousebiteDiameter)
	case p.RouteDiameter <= 0:
		return errors.New(errors.ErrCodeConfig, "PanelOptions.route_diameter must be positive, got %g", p.RouteDiameter)
	case p.PanelWidth <= 0:
		return errors.New(errors.ErrCodeConfig, "PanelOptions.panel_width must be positive, got %g", p.PanelWidth)
	case p.SupportBarWidth < 0:
		return errors.New(errors.ErrCodeConfig, "PanelOptions.support_bar_width cannot be negative, got %g", p.SupportBarWidth)
	case p.DecimalPrecision < 0 || p.DecimalPrecision > 6:
		return errors.New(errors.ErrCodeConfig, "PanelOptions.decimal_precision must be between 0 and 6, got %d", p.DecimalPrecision)
	}

	if p.StencilApertures {
		if p.StencilApertureDiameter <= 0 {
			return errors.New(errors.ErrCodeConfig, "PanelOptions.stencil_aperture_diameter must be positive when stencil_apertures is enabled")
		}
		if p.StencilApertureClearance < 0 {
			return errors.New(errors.ErrCodeConfig, "PanelOptions.stencil_aperture_clearance cannot be negative")
		}
	}

	if p.DefaultExportFolderName == "" {
		return errors.New(errors.ErrCodeConfig, "PanelOptions.default_export_folder_name cannot be empty")
	}
	if strings.ContainsAny(p.DefaultExportFolderName, "/\\") {
		return errors.New(errors.ErrCodeConfig, "PanelOptions.default_export_folder_name cannot contain path separators")
	}

	f := s.Fabrication
	for name, v := range map[string]float64{
		"max_panel_width":         f.MaxPanelWidth,
		"max_panel_height":        f.MaxPanelHeight,
		"max_manufacturer_width":  f.MaxManufacturerWidth,
		"max_manufacturer_height": f.MaxManufacturerHeight,
		"max_panel_surface_area":  f.MaxPanelSurfaceArea,
	} {
		if v <= 0 {
			return errors.New(errors.ErrCodeConfig, "Fabrication.%s must be positive, got %g", name, v)
		}
	}

	patterns := s.GerberFilenames.Patterns()
	if len(s.GerberFilenames.Required) == 0 {
		return errors.New(errors.ErrCodeConfig, "GerberFilenames.required cannot be empty")
	}
	hasProfile := false
	for _, role := range s.GerberFilenames.Required {
		pats, ok := patterns[role]
		if !ok {
			return errors.New(errors.ErrCodeConfig, "GerberFilenames.required lists unknown role %q", role)
		}
		if len(pats) == 0 {
			return errors.New(errors.ErrCodeConfig, "GerberFilenames.%s has no patterns but is required", role)
		}
		if role == "profile" {
			hasProfile = true
		}
	}
	if !hasProfile {
		return errors.New(errors.ErrCodeConfig, "GerberFilenames.required must include the profile role")
	}

	return nil
}

// WriteDefault writes the default settings as TOML to path.
// Existing files are not overwritten.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrCodeIO, "settings file already exists: %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create settings file %s", path)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	enc.Indent = ""
	s := Default()
	if err := enc.Encode(&s); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode default settings")
	}
	return nil
}
