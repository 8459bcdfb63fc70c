package risk

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/satvikkk/travel-aware/internal/domain"
)

// Required header columns of the incident dataset. The file is
// header-addressed so column order does not matter.
var requiredColumns = []string{
	"latitude",
	"longitude",
	"category",
	"occurred_at",
	"time_of_day",
	"victim_age",
	"victim_sex",
	"priority_tier",
}

const occurredAtLayout = "2006-01-02"

// LoadSnapshot reads the incident dataset from a CSV file. Any structural
// problem is startup-fatal and wraps domain.ErrDataLoad.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w: %v", domain.ErrDataLoad, err)
	}
	defer f.Close()

	return ReadSnapshot(f)
}

// ReadSnapshot parses incident CSV data from a reader.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("loader: %w: reading header: %v", domain.ErrDataLoad, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("loader: %w: missing column %q", domain.ErrDataLoad, name)
		}
	}

	var records []domain.IncidentRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("loader: %w: line %d: %v", domain.ErrDataLoad, line, err)
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("loader: %w: line %d: %v", domain.ErrDataLoad, line, err)
		}
		records = append(records, rec)
	}

	return NewSnapshot(records), nil
}

func parseRow(row []string, cols map[string]int) (domain.IncidentRecord, error) {
	var rec domain.IncidentRecord

	lat, err := strconv.ParseFloat(row[cols["latitude"]], 32)
	if err != nil {
		return rec, fmt.Errorf("bad latitude: %v", err)
	}
	lon, err := strconv.ParseFloat(row[cols["longitude"]], 32)
	if err != nil {
		return rec, fmt.Errorf("bad longitude: %v", err)
	}

	occurredAt, err := time.Parse(occurredAtLayout, row[cols["occurred_at"]])
	if err != nil {
		return rec, fmt.Errorf("bad occurred_at: %v", err)
	}

	timeOfDay, err := strconv.Atoi(row[cols["time_of_day"]])
	if err != nil || timeOfDay < 0 || timeOfDay > 2359 {
		return rec, fmt.Errorf("bad time_of_day %q", row[cols["time_of_day"]])
	}

	// Victim age is optional in the source data; blank means unknown.
	age := 0
	if v := strings.TrimSpace(row[cols["victim_age"]]); v != "" {
		age, err = strconv.Atoi(v)
		if err != nil || age < 0 {
			return rec, fmt.Errorf("bad victim_age %q", v)
		}
	}

	tier := domain.Tier2
	if strings.TrimSpace(row[cols["priority_tier"]]) == "1" {
		tier = domain.Tier1
	}

	rec = domain.IncidentRecord{
		Latitude:     float32(lat),
		Longitude:    float32(lon),
		Category:     domain.ParseCategory(strings.ToUpper(strings.TrimSpace(row[cols["category"]]))),
		OccurredAt:   occurredAt,
		TimeOfDay:    timeOfDay,
		VictimAge:    age,
		VictimSex:    domain.ParseSex(strings.TrimSpace(row[cols["victim_sex"]])),
		SeverityTier: tier,
	}
	return rec, nil
}
