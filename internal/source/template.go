package source

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/dataviewer/internal/dates"
	"github.com/san-kum/dataviewer/internal/grid"
)

// Placeholders understood by FormURI.
const (
	PlaceholderYear  = "{yyyy}"
	PlaceholderDate  = "{yymmdd}"
	PlaceholderStart = "{syymmdd}"
	PlaceholderEnd   = "{eyymmdd}"
)

var (
	ErrMissingEndDate  = errors.New("source: template needs an end date")
	ErrUnknownTemplate = errors.New("source: unknown template")
)

// Kind tells how files of a template are decoded.
type Kind int

const (
	Binary Kind = iota
	Image
)

func (k Kind) String() string {
	if k == Image {
		return "image"
	}
	return "binary"
}

// Template is a named path pattern for one dataset product.
type Template struct {
	Name    string
	Pattern string
	Family  Family
	Kind    Kind
	// Shape is the grid size of binary files; zero for image products.
	Shape grid.Shape
}

// Custom builds a template for an arbitrary pattern, e.g. a local mirror.
func Custom(pattern string, kind Kind, shape grid.Shape) Template {
	return Template{
		Name:    "custom",
		Pattern: pattern,
		Family:  DetectFamily(pattern),
		Kind:    kind,
		Shape:   shape,
	}
}

// NeedsEndDate reports whether the pattern references the end date.
func (t Template) NeedsEndDate() bool {
	return strings.Contains(t.Pattern, PlaceholderEnd)
}

// URI resolves the template for start and an optional end date.
func (t Template) URI(start time.Time, end *time.Time) (string, error) {
	uri, err := FormURI(t.Pattern, start, end)
	if err != nil {
		return "", fmt.Errorf("%s: %w", t.Name, err)
	}
	return uri, nil
}

// FormURI substitutes the year, the smashed start date and, when given, the
// smashed end date into pattern. A pattern that references the end date
// fails with ErrMissingEndDate if end is nil.
func FormURI(pattern string, start time.Time, end *time.Time) (string, error) {
	smashed := dates.Smash(start)
	pairs := []string{
		PlaceholderYear, start.Format("2006"),
		PlaceholderDate, smashed,
		PlaceholderStart, smashed,
	}
	if end != nil {
		pairs = append(pairs, PlaceholderEnd, dates.Smash(*end))
	} else if strings.Contains(pattern, PlaceholderEnd) {
		return "", ErrMissingEndDate
	}
	return strings.NewReplacer(pairs...).Replace(pattern), nil
}
