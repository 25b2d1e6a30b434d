// Package gerber resolves board file roles from extracted archives and reads
// board extents from the profile layer.
//
// Role resolution is declarative: each role (copper, silkscreen, soldermask,
// paste, profile, drill) maps to a set of accepted filename patterns from the
// settings file. A pattern starting with "." matches the file extension,
// anything else matches the basename exactly; both are case-insensitive.
package gerber

import (
	"path"
	"sort"
	"strings"

	"github.com/panelprep/panelprep/pkg/config"
	"github.com/panelprep/panelprep/pkg/errors"
)

// roleOrder fixes the display order of roles in reports and descriptors.
var roleOrder = []string{
	"copper_top",
	"copper_bottom",
	"silkscreen_top",
	"silkscreen_bottom",
	"soldermask_top",
	"soldermask_bottom",
	"paste_top",
	"paste_bottom",
	"profile",
	"drill",
}

// BoardSet is the set of resolved gerber files for one board design,
// keyed by role name. Paths are relative to the extraction directory.
type BoardSet struct {
	Files map[string]string
}

// Profile returns the path of the board outline file.
func (b *BoardSet) Profile() string {
	return b.Files["profile"]
}

// Roles returns the resolved role names in display order.
func (b *BoardSet) Roles() []string {
	var roles []string
	for _, role := range roleOrder {
		if _, ok := b.Files[role]; ok {
			roles = append(roles, role)
		}
	}
	// Defensive: roles outside the known order still get listed.
	if len(roles) < len(b.Files) {
		known := make(map[string]bool, len(roles))
		for _, r := range roles {
			known[r] = true
		}
		var extra []string
		for r := range b.Files {
			if !known[r] {
				extra = append(extra, r)
			}
		}
		sort.Strings(extra)
		roles = append(roles, extra...)
	}
	return roles
}

// matches reports whether the filename matches one of the role patterns.
func matches(name string, patterns []string) bool {
	base := path.Base(name)
	for _, p := range patterns {
		if strings.HasPrefix(p, ".") {
			if strings.EqualFold(path.Ext(base), p) {
				return true
			}
		} else if strings.EqualFold(base, p) {
			return true
		}
	}
	return false
}

// Resolve maps the extracted files onto board file roles.
//
// Every role listed as required must match exactly one file: zero matches and
// multiple matches are both BOARD_SET errors, the latter naming the
// candidates. Optional roles may be absent, but an ambiguous optional role is
// still an error because the descriptor could silently reference the wrong
// layer.
func Resolve(files []string, fn *config.GerberFilenames) (*BoardSet, error) {
	required := make(map[string]bool, len(fn.Required))
	for _, role := range fn.Required {
		required[role] = true
	}

	set := &BoardSet{Files: make(map[string]string)}
	for role, patterns := range fn.Patterns() {
		var found []string
		for _, f := range files {
			if matches(f, patterns) {
				found = append(found, f)
			}
		}

		switch {
		case len(found) == 1:
			set.Files[role] = found[0]
		case len(found) > 1:
			sort.Strings(found)
			return nil, errors.New(errors.ErrCodeBoardSet,
				"role %s is ambiguous, matched %s", role, strings.Join(found, ", "))
		case required[role]:
			return nil, errors.New(errors.ErrCodeBoardSet,
				"no file matches required role %s (patterns: %s)", role, strings.Join(patterns, ", "))
		}
	}

	return set, nil
}
