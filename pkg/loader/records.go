package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/cityforest/pkg/geo"
)

// ErrMalformedRecord is returned for a city row with too few fields.
var ErrMalformedRecord = errors.New("malformed city record")

// minFields is the number of columns up to and including the state.
const minFields = 5

// Record is one parsed row of a city file.
type Record struct {
	Zip    string  `json:"zip"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	City   string  `json:"city"`
	State  string  `json:"state"`
	County string  `json:"county,omitempty"`
}

// Coord returns the record's location.
func (r Record) Coord() geo.Coord { return geo.Coord{Lat: r.Lat, Lon: r.Lon} }

// ReadCities parses every row of r. Rows with fewer than five fields fail
// with ErrMalformedRecord, reported with their line number.
func ReadCities(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var out []Record
	for line := 1; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read cities: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(fields[0]), "zip") {
			continue
		}
		if len(fields) < minFields {
			return nil, fmt.Errorf("line %d: %w: %d fields", line, ErrMalformedRecord, len(fields))
		}

		rec := Record{
			Zip:   strings.TrimSpace(fields[0]),
			Lat:   parseCoord(fields[1]),
			Lon:   parseCoord(fields[2]),
			City:  strings.TrimSpace(fields[3]),
			State: strings.TrimSpace(fields[4]),
		}
		if len(fields) > minFields {
			rec.County = strings.TrimSpace(fields[5])
		}
		out = append(out, rec)
	}
}

func parseCoord(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// WriteCities writes records in the same column layout ReadCities accepts,
// without a header.
func WriteCities(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	for _, r := range recs {
		row := []string{
			r.Zip,
			strconv.FormatFloat(r.Lat, 'f', -1, 64),
			strconv.FormatFloat(r.Lon, 'f', -1, 64),
			r.City,
			r.State,
			r.County,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Dedupe keeps the first record for every city name, in input order. When
// dropUnset is true, records with a zero latitude or longitude are dropped
// as well.
func Dedupe(recs []Record, dropUnset bool) []Record {
	seen := make(map[string]bool, len(recs))
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if seen[r.City] {
			continue
		}
		if dropUnset && (r.Lat == 0 || r.Lon == 0) {
			continue
		}
		seen[r.City] = true
		out = append(out, r)
	}
	return out
}
