package importer

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

type xlsxSource struct {
	data []byte
}

func NewXLSXSource(data []byte) RowSource {
	return &xlsxSource{data: data}
}

// Rows reads the first sheet of the workbook. The header row is
// discarded the same way the CSV source discards its header line.
func (s *xlsxSource) Rows() ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(s.data))
	if err != nil {
		return nil, utils.ErrFileEmptyOrInvalid
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, utils.ErrFileEmptyOrInvalid
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, utils.ErrFileEmptyOrInvalid
	}

	var rows [][]string
	for i, rec := range records {
		if i == 0 {
			continue
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
