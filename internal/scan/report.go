package scan

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/dataviewer/internal/dates"
)

// WriteCSV writes one row per entry with a header line.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "date", "status", "size", "path", "detail"}); err != nil {
		return err
	}
	for _, e := range r.Entries {
		row := []string{
			strconv.Itoa(e.Index),
			e.Date.Format(dates.Layout),
			e.Status.String(),
			strconv.FormatInt(e.Size, 10),
			e.Path,
			e.Detail,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the report to path.
func (r *Report) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.WriteCSV(f)
}

type jsonEntry struct {
	Index  int    `json:"index"`
	Date   string `json:"date"`
	Status string `json:"status"`
	Size   int64  `json:"size"`
	Path   string `json:"path"`
	Detail string `json:"detail,omitempty"`
}

type jsonReport struct {
	Frames  int         `json:"frames"`
	OK      int         `json:"ok"`
	Missing int         `json:"missing"`
	Corrupt int         `json:"corrupt"`
	Entries []jsonEntry `json:"entries"`
}

// WriteJSON writes the report with per-status totals as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	data := jsonReport{
		Frames:  len(r.Entries),
		OK:      r.Count(OK),
		Missing: r.Count(Missing),
		Corrupt: r.Count(Corrupt),
		Entries: make([]jsonEntry, len(r.Entries)),
	}
	for i, e := range r.Entries {
		data.Entries[i] = jsonEntry{
			Index:  e.Index,
			Date:   e.Date.Format(dates.Layout),
			Status: e.Status.String(),
			Size:   e.Size,
			Path:   e.Path,
			Detail: e.Detail,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// SaveJSON writes the JSON report to path.
func (r *Report) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.WriteJSON(f)
}
