package figstudio

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// PostScript points per inch. A render scale of 1 equals 72 DPI.
const PointsPerInch = 72

// Lowest DPI most journals accept for raster figures.
const JournalQualityDPI = 300

var DefaultDPIs = DPISet{300, 450, 600}

// DPISet is the enumerated list of resolutions a caller may pick from.
type DPISet []int

// ParseDPISet reads a comma separated list such as "300,450,600".
func ParseDPISet(s string) (DPISet, error) {
	var set DPISet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		dpi, err := strconv.Atoi(part)
		if err != nil || dpi <= 0 {
			return nil, fmt.Errorf("invalid dpi %q", part)
		}
		if !slices.Contains(set, dpi) {
			set = append(set, dpi)
		}
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("dpi set %q is empty", s)
	}

	slices.Sort(set)
	return set, nil
}

func (s DPISet) Contains(dpi int) bool {
	return slices.Contains(s, dpi)
}

func (s DPISet) Validate(dpi int) error {
	if !s.Contains(dpi) {
		return fmt.Errorf("%d is not one of %s: %w", dpi, s, ErrUnsupportedDPI)
	}
	return nil
}

func (s DPISet) String() string {
	parts := make([]string, len(s))
	for i, dpi := range s {
		parts[i] = strconv.Itoa(dpi)
	}
	return strings.Join(parts, ", ")
}

func IsJournalQuality(dpi int) bool {
	return dpi >= JournalQualityDPI
}

// PixelsAt returns how many pixels a length in points covers at dpi.
func PixelsAt(points float64, dpi int) int {
	return int(math.Ceil(points * float64(dpi) / PointsPerInch))
}
