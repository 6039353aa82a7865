package source

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormURI(t *testing.T) {
	end := date(2016, 3, 13)
	tests := []struct {
		name     string
		pattern  string
		end      *time.Time
		expected string
	}{
		{"year and date", "/data/{yyyy}/nt_{yymmdd}_n.bin", nil, "/data/2016/nt_20160307_n.bin"},
		{"start and end", "snow.{syymmdd}-{eyymmdd}.bin", &end, "snow.20160307-20160313.bin"},
		{"end ignored when unused", "/data/{yyyy}/nt_{yymmdd}.bin", &end, "/data/2016/nt_20160307.bin"},
		{"no placeholders", "/static.bin", nil, "/static.bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormURI(tt.pattern, date(2016, 3, 7), tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestFormURIZeroPadding(t *testing.T) {
	got, err := FormURI("{yymmdd}", date(2009, 1, 5), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "20090105" {
		t.Errorf("expected 20090105, got %s", got)
	}
}

func TestFormURIDeterministic(t *testing.T) {
	tmpl := Templates("0046")[0]
	end := date(2010, 1, 7)
	a, errA := tmpl.URI(date(2010, 1, 1), &end)
	b, errB := tmpl.URI(date(2010, 1, 1), &end)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v %v", errA, errB)
	}
	if a != b {
		t.Errorf("expected identical paths, got %s and %s", a, b)
	}
	if !strings.HasSuffix(a, "EASE2_N25km.snowice.20100101-20100107.v04.bin") {
		t.Errorf("unexpected path %s", a)
	}
}

func TestFormURIMissingEnd(t *testing.T) {
	_, err := FormURI("snow.{syymmdd}-{eyymmdd}.bin", date(2010, 1, 1), nil)
	if !errors.Is(err, ErrMissingEndDate) {
		t.Errorf("expected ErrMissingEndDate, got %v", err)
	}

	tmpl := Templates("0046")[1]
	if !tmpl.NeedsEndDate() {
		t.Fatal("0046 template should need an end date")
	}
	_, err = tmpl.URI(date(2010, 1, 1), nil)
	if !errors.Is(err, ErrMissingEndDate) {
		t.Errorf("expected ErrMissingEndDate, got %v", err)
	}
}

func TestTemplates(t *testing.T) {
	north := Templates("0051")
	if len(north) != 4 {
		t.Fatalf("expected 4 templates for 0051, got %d", len(north))
	}
	for _, tmpl := range north {
		if tmpl.Family != Family0051 {
			t.Errorf("%s: expected family 0051, got %s", tmpl.Name, tmpl.Family)
		}
		if tmpl.NeedsEndDate() {
			t.Errorf("%s: daily template should not need an end date", tmpl.Name)
		}
	}

	weekly := Templates("0046")
	if len(weekly) != 3 {
		t.Fatalf("expected 3 templates for 0046, got %d", len(weekly))
	}
	if weekly[2].Kind != Image {
		t.Errorf("expected browse template to be an image, got %s", weekly[2].Kind)
	}

	if got := Templates("anything"); len(got) != 3 {
		t.Errorf("unknown identifiers should resolve to 0046, got %d templates", len(got))
	}

	north[0].Name = "mutated"
	if Templates("0051")[0].Name == "mutated" {
		t.Error("Templates must return a copy")
	}
}

func TestFamily(t *testing.T) {
	if Family0051.HeaderOffset() != 300 {
		t.Errorf("expected 300 byte header, got %d", Family0051.HeaderOffset())
	}
	if Family0046.HeaderOffset() != 0 || FamilyUnknown.HeaderOffset() != 0 {
		t.Error("expected headerless families")
	}

	f, err := ParseFamily("nsidc0051")
	if err != nil || f != Family0051 {
		t.Errorf("expected 0051, got %v (%v)", f, err)
	}
	if _, err := ParseFamily("9999"); err == nil {
		t.Error("expected error for unknown family")
	}

	if DetectFamily("/mirror/nsidc0051/nt_{yymmdd}.bin") != Family0051 {
		t.Error("expected 0051 detected from pattern")
	}
	if DetectFamily("/mirror/other/{yymmdd}.bin") != FamilyUnknown {
		t.Error("expected unknown family")
	}
}

func TestLookup(t *testing.T) {
	tmpl, err := Lookup("nsidc_0051_south_url_format")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if tmpl.Shape.Rows != 332 || tmpl.Shape.Cols != 316 {
		t.Errorf("expected south shape 332x316, got %s", tmpl.Shape)
	}

	_, err = Lookup("NSIDC_0051_NORTH")
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Errorf("expected suggestions in %q", err)
	}
}

func TestCustom(t *testing.T) {
	tmpl := Custom("/mirror/nsidc0051/{yyyy}/nt_{yymmdd}.bin", Binary, shapeNorth)
	if tmpl.Family != Family0051 {
		t.Errorf("expected family 0051, got %s", tmpl.Family)
	}
	if tmpl.Family.HeaderOffset() != 300 {
		t.Error("custom 0051 mirror should keep the header offset")
	}
}
