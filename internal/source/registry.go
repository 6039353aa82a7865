package source

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

const (
	projects = "/projects/DATASETS"
	staging  = "/disks/sidads_staging/DATASETS"
	seaice   = "/nsidc0051_gsfc_nasateam_seaice/final-gsfc"
	snowice  = "/nsidc0046_weekly_snow_seaice"
)

var registry = map[Family][]Template{
	Family0051: {
		{
			Name:    "NSIDC_0051_NORTH_URL_FORMAT",
			Pattern: projects + seaice + "/north/daily/{yyyy}/nt_{yymmdd}_f17_v1.1_n.bin",
			Family:  Family0051, Kind: Binary, Shape: shapeNorth,
		},
		{
			Name:    "NSIDC_0051_SOUTH_URL_FORMAT",
			Pattern: projects + seaice + "/south/daily/{yyyy}/nt_{yymmdd}_f17_v1.1_s.bin",
			Family:  Family0051, Kind: Binary, Shape: shapeSouth,
		},
		{
			Name:    "NSIDC_0051_NORTH_STAGING_URL_FORMAT",
			Pattern: staging + seaice + "/north/daily/{yyyy}/nt_{yymmdd}_f17_v1.1_n.bin",
			Family:  Family0051, Kind: Binary, Shape: shapeNorth,
		},
		{
			Name:    "NSIDC_0051_SOUTH_STAGING_URL_FORMAT",
			Pattern: staging + seaice + "/south/daily/{yyyy}/nt_{yymmdd}_f17_v1.1_s.bin",
			Family:  Family0051, Kind: Binary, Shape: shapeSouth,
		},
	},
	Family0046: {
		{
			Name:    "NSIDC_0046_FORMAT",
			Pattern: projects + snowice + "/data/EASE2_N25km.snowice.{syymmdd}-{eyymmdd}.v04.bin",
			Family:  Family0046, Kind: Binary, Shape: shapeEASE2,
		},
		{
			Name:    "NSIDC_0046_STAGING_FORMAT",
			Pattern: staging + snowice + "/data/EASE2_N25km.snowice.{syymmdd}-{eyymmdd}.v04.bin",
			Family:  Family0046, Kind: Binary, Shape: shapeEASE2,
		},
		{
			Name:    "NSIDC_0046_BROWSE_STAGING_FORMAT",
			Pattern: staging + snowice + "/browse/EASE2_N25km.snowice.{syymmdd}-{eyymmdd}.v04.png",
			Family:  Family0046, Kind: Image, Shape: shapeEASE2,
		},
	},
}

// Templates returns the templates registered for a dataset identifier.
// Identifiers other than "0051" resolve to the 0046 family.
func Templates(dataset string) []Template {
	family, _ := ParseFamily(dataset)
	if family != Family0051 {
		family = Family0046
	}
	out := make([]Template, len(registry[family]))
	copy(out, registry[family])
	return out
}

// All returns every registered template, 0051 first.
func All() []Template {
	return append(Templates("0051"), Templates("0046")...)
}

// Names lists the names of every registered template.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name
	}
	return names
}

// Lookup finds a registered template by name, ignoring case.
func Lookup(name string) (Template, error) {
	for _, t := range All() {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	if s := Suggest(name, Names()); len(s) > 0 {
		return Template{}, fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownTemplate, name, strings.Join(s, ", "))
	}
	return Template{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
}

// Suggest returns up to three candidates that fuzzy-match name.
func Suggest(name string, candidates []string) []string {
	matches := fuzzy.Find(strings.ToUpper(name), upper(candidates))
	out := make([]string, 0, 3)
	for _, m := range matches {
		if len(out) == 3 {
			break
		}
		out = append(out, candidates[m.Index])
	}
	return out
}

func upper(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}
