package figstudio

import (
	"fmt"
	"strings"
)

type LineThickness string

const (
	LineThin       LineThickness = "thin"
	LineSemithick  LineThickness = "semithick"
	LineThick      LineThickness = "thick"
	LineVeryThick  LineThickness = "very thick"
	LineUltraThick LineThickness = "ultra thick"
)

var lineThicknesses = []LineThickness{LineThin, LineSemithick, LineThick, LineVeryThick, LineUltraThick}

func (l LineThickness) Valid() bool {
	for _, v := range lineThicknesses {
		if v == l {
			return true
		}
	}
	return false
}

// OutputProfile bundles the defaults for a publication target.
type OutputProfile struct {
	Name          string        `json:"name"`
	DPI           int           `json:"dpi"`
	AutoCrop      bool          `json:"autoCrop"`
	LineThickness LineThickness `json:"lineThickness"`
}

const DefaultProfileName = "Custom"

var builtinProfiles = []OutputProfile{
	{Name: "Custom", DPI: 300, AutoCrop: true, LineThickness: LineThick},
	{Name: "Nature Journal", DPI: 600, AutoCrop: true, LineThickness: LineThin},
	{Name: "Conference Poster", DPI: 450, AutoCrop: true, LineThickness: LineUltraThick},
	{Name: "Grant/Investor Deck", DPI: 300, AutoCrop: true, LineThickness: LineThick},
}

// Profiles lists the built-in profiles whose DPI is in allowed.
func Profiles(allowed DPISet) []OutputProfile {
	out := make([]OutputProfile, 0, len(builtinProfiles))
	for _, p := range builtinProfiles {
		if allowed == nil || allowed.Contains(p.DPI) {
			out = append(out, p)
		}
	}
	return out
}

// Profile looks a profile up by name, ignoring case.
func Profile(name string) (OutputProfile, error) {
	for _, p := range builtinProfiles {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return OutputProfile{}, fmt.Errorf("profile %q does not exist: %w", name, ErrInvalidInput)
}
