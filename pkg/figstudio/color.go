package figstudio

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"

	"github.com/tdewolff/canvas"
)

var hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ParseHexColor accepts "#RGB", "#RRGGBB" or the same without the hash.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !hexColorPattern.MatchString(s) {
		return color.RGBA{}, fmt.Errorf("%q is not a hex color: %w", s, ErrInvalidInput)
	}

	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return canvas.Hex(s), nil
}

// HexDigits normalises a color to the six upper case digits xcolor's HTML model expects.
func HexDigits(s string) (string, error) {
	c, err := ParseHexColor(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B), nil
}
