// Package sheet reads an uploaded statement export into the row/column grid
// the format parsers consume. Bank exports arrive as CSV with a preamble of
// header rows, so rows are read raw with no header mapping and no per-row
// field-count enforcement.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"

	"lifehub/spending/internal/apperrors"
	"lifehub/spending/internal/models"
)

// Read decodes r into a Sheet. An input with no rows at all is rejected as
// a validation failure, matching the empty-upload contract.
func Read(r io.Reader) (models.Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // statement exports have ragged rows

	var rows models.Sheet
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading statement sheet: %w", err)
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, &apperrors.ValidationError{Field: "file", Reason: "statement file is empty"}
	}

	return rows, nil
}
