package panel

import (
	"strings"

	"github.com/panelprep/panelprep/pkg/errors"
)

// Mousebite is one mousebite position on a board edge. Dx/Dy is the unit
// direction of the edge from the board center (exactly one is non-zero);
// Alignment shifts the bite along that edge (-1 left, 0 center, 1 right).
type Mousebite struct {
	Code      string // two-letter user spec, normalized lower-case
	Dx, Dy    int
	Alignment int
}

// DefaultMousebiteSpec places one mousebite at the center of the top and
// bottom edges.
const DefaultMousebiteSpec = "cb,ct"

// Location letters: b(ottom), t(op), l(eft), r(ight).
var mousebiteLocations = map[byte]struct{ dx, dy int }{
	'b': {0, -1},
	't': {0, 1},
	'l': {-1, 0},
	'r': {1, 0},
}

// Alignment letters: c(enter), x (left), v (right).
var mousebiteAlignments = map[byte]int{
	'c': 0,
	'x': -1,
	'v': 1,
}

// ParseMousebites parses a comma-separated list of two-letter mousebite
// locations ("cb,ct"). The first letter is the alignment, the second the
// edge. Parsing is case-insensitive; duplicates collapse to one entry.
// Malformed entries are an INVALID_INPUT error.
func ParseMousebites(spec string) ([]Mousebite, error) {
	var bites []Mousebite
	seen := make(map[string]bool)

	for _, raw := range strings.Split(spec, ",") {
		code := strings.ToLower(strings.TrimSpace(raw))
		if code == "" {
			continue
		}
		if len(code) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "mousebite location %q must be two letters (alignment, edge)", raw)
		}

		align, ok := mousebiteAlignments[code[0]]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown mousebite alignment %q in %q (valid: c, x, v)", string(code[0]), raw)
		}
		loc, ok := mousebiteLocations[code[1]]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown mousebite edge %q in %q (valid: b, t, l, r)", string(code[1]), raw)
		}

		if seen[code] {
			continue
		}
		seen[code] = true
		bites = append(bites, Mousebite{Code: code, Dx: loc.dx, Dy: loc.dy, Alignment: align})
	}

	if len(bites) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mousebite location list %q is empty", spec)
	}
	return bites, nil
}
