package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"carswitch/models"
)

// The specification table identifies most fields by position, not name.
const (
	specColMaker   = 0
	specColModel   = 1
	specColBody    = 3
	specColPrice   = 10
	specColSeating = 13

	specColSalesYear = "SalesYear"
	specColSegment   = "Segment"
)

// ReadSpecs parses the vehicle specification CSV at path. Rows with an
// unparsable sales year are skipped; structural problems are returned as an
// error, which the caller treats as non-fatal (the comparison features then
// run with an empty spec set).
func ReadSpecs(path string) ([]*models.RawSpecRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("specs: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("specs: read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if len(header) <= specColSeating {
		return nil, fmt.Errorf("specs: %q has %d columns, need at least %d",
			path, len(header), specColSeating+1)
	}

	yearIdx, segIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case specColSalesYear:
			yearIdx = i
		case specColSegment:
			segIdx = i
		}
	}
	if yearIdx < 0 {
		return nil, fmt.Errorf("specs: missing column %q in %q", specColSalesYear, path)
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("specs: read rows: %w", err)
	}

	rows := make([]*models.RawSpecRow, 0, len(records))
	for _, rec := range records {
		year, err := strconv.Atoi(strings.TrimSpace(rec[yearIdx]))
		if err != nil {
			continue
		}
		row := &models.RawSpecRow{
			Maker:      rec[specColMaker],
			Model:      rec[specColModel],
			BodyType:   rec[specColBody],
			RawPrice:   rec[specColPrice],
			RawSeating: rec[specColSeating],
			SalesYear:  year,
		}
		if segIdx >= 0 {
			row.Segment = rec[segIdx]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
