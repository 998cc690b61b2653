package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"carswitch/models"
)

// Survey column headers as they appear in the source export.
const (
	colDisposedBrand  = "Brand (Disposed)"
	colDisposedModel  = "Model (Disposed)"
	colPurchasedBrand = "New Model Purchased - Brand"
	colPurchasedModel = "New Model Purchased - Make/Model/Series (Alpha Order)"
	colPrice          = "Purchase Price (Detailed)"
	colSourceWeight   = "Source of Sales Weight"
	colLoyaltyWeight  = "Repurchase Loyalty Weight"
	colSegment        = "New Model Segment"
)

// ReadSurvey parses the survey CSV at path into raw string rows. The file is
// the primary dataset: any read or structural failure is returned as an error
// and must be treated as fatal by the caller.
func ReadSurvey(path string) ([]*models.RawSurveyRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("survey: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("survey: read header: %w", err)
	}
	if len(header) > 0 {
		// Exports from spreadsheet tools carry a UTF-8 BOM.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	required := []string{
		colDisposedBrand, colDisposedModel, colPurchasedBrand,
		colPurchasedModel, colPrice, colSourceWeight, colLoyaltyWeight,
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("survey: missing column %q in %q", name, path)
		}
	}
	segIdx, hasSegment := idx[colSegment]

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("survey: read rows: %w", err)
	}

	rows := make([]*models.RawSurveyRow, 0, len(records))
	for _, rec := range records {
		row := &models.RawSurveyRow{
			DisposedBrand:    rec[idx[colDisposedBrand]],
			DisposedModel:    rec[idx[colDisposedModel]],
			PurchasedBrand:   rec[idx[colPurchasedBrand]],
			PurchasedModel:   rec[idx[colPurchasedModel]],
			RawPrice:         rec[idx[colPrice]],
			RawSourceWeight:  rec[idx[colSourceWeight]],
			RawLoyaltyWeight: rec[idx[colLoyaltyWeight]],
		}
		if hasSegment {
			row.Segment = rec[segIdx]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
