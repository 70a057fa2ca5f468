package importer

import (
	"bytes"
	"encoding/csv"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

type csvSource struct {
	data []byte
}

func NewCSVSource(data []byte) RowSource {
	return &csvSource{data: data}
}

// Rows parses the buffer as RFC 4180 CSV. FieldsPerRecord is disabled
// so short rows pass through; padding happens at field access time.
func (s *csvSource) Rows() ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(s.data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, utils.ErrFileEmptyOrInvalid
	}

	var rows [][]string
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if isBlankRow(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	if len(records) < 2 || len(rows) == 0 {
		return nil, utils.ErrFileEmptyOrInvalid
	}
	return rows, nil
}
