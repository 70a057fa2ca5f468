// Package importer turns an uploaded bulk-property file into row
// tuples for the import reconciler. Both sources share the same
// contract: the first line/row is a header and is discarded, blank
// rows are skipped, and ragged rows are returned as-is (missing
// trailing columns surface as empty strings downstream).
package importer

import (
	"path/filepath"
	"strings"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

// Positional column layout of the bulk file (0-based; column 0 is a
// serial number and is ignored).
const (
	ColPropertyID       = 1
	ColCorporateWardNo  = 2
	ColCorporateName    = 3
	ColWardName         = 4
	ColMohalla          = 5
	ColPropertyType     = 6
	ColPropertyCategory = 7
	ColOwnerName        = 8
	ColHouseNo          = 9
	ColAddress          = 10
	ColPopularName      = 11
)

// RowSource yields all data rows of an uploaded file. Rows are
// re-read from the underlying buffer on every call; there is no
// streaming state to exhaust.
type RowSource interface {
	Rows() ([][]string, error)
}

var csvContentTypes = map[string]bool{
	"text/csv":        true,
	"application/csv": true,
}

var xlsxContentTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel":                                          true,
}

// NewSource picks a parser by file extension first, falling back to
// the declared content type. Anything that is neither CSV nor XLSX is
// rejected up front rather than fed through the wrong parser.
func NewSource(filename, contentType string, data []byte) (RowSource, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return NewCSVSource(data), nil
	case ".xlsx", ".xls":
		return NewXLSXSource(data), nil
	}

	mime := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch {
	case csvContentTypes[mime] || strings.HasPrefix(mime, "text/"):
		return NewCSVSource(data), nil
	case xlsxContentTypes[mime]:
		return NewXLSXSource(data), nil
	}
	return nil, utils.ErrUnsupportedFileType
}

// Field returns the idx-th cell of row, or "" when the row is too
// short. Mirrors how missing trailing columns behave in ragged files.
func Field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
