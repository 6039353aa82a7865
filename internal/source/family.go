package source

import (
	"fmt"
	"strings"

	"github.com/san-kum/dataviewer/internal/grid"
)

// Family identifies a group of dataset templates that share a grid layout and
// header convention.
type Family int

const (
	FamilyUnknown Family = iota
	// Family0051 is the daily sea ice concentration product. Its files carry
	// a 300-byte header before the samples.
	Family0051
	// Family0046 is the weekly snow and sea ice extent product on the 25 km
	// EASE-Grid 2.0. Files are headerless.
	Family0046
)

const header0051 = 300

var (
	shapeNorth = grid.Shape{Rows: 448, Cols: 304}
	shapeSouth = grid.Shape{Rows: 332, Cols: 316}
	shapeEASE2 = grid.Shape{Rows: 720, Cols: 720}
)

// ID returns the dataset identifier, e.g. "0051".
func (f Family) ID() string {
	switch f {
	case Family0051:
		return "0051"
	case Family0046:
		return "0046"
	}
	return ""
}

func (f Family) String() string {
	if f == FamilyUnknown {
		return "unknown"
	}
	return "nsidc" + f.ID()
}

// HeaderOffset is the number of bytes to skip before the first sample.
func (f Family) HeaderOffset() int64 {
	if f == Family0051 {
		return header0051
	}
	return 0
}

func ParseFamily(id string) (Family, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(id)), "nsidc") {
	case "0051":
		return Family0051, nil
	case "0046":
		return Family0046, nil
	case "":
		return FamilyUnknown, nil
	}
	return FamilyUnknown, fmt.Errorf("unknown dataset family: %s (available: 0051, 0046)", id)
}

// DetectFamily classifies a path pattern by the "nsidcNNNN" dataset
// identifier it contains. Only used when building a template, never per frame.
func DetectFamily(pattern string) Family {
	lower := strings.ToLower(pattern)
	switch {
	case strings.Contains(lower, "nsidc0051"):
		return Family0051
	case strings.Contains(lower, "nsidc0046"):
		return Family0046
	}
	return FamilyUnknown
}
