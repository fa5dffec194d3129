package points

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON keys for each column of a points table, in column order.
var jsonColumnKeys = []string{
	ColTrace:     "traceId",
	ColTimepoint: "time",
	ColZ:         "z",
	ColY:         "y",
	ColX:         "x",
	ColQC:        FailCodesKey,
}

// jsonRows converts a JSON array of objects into the same rows a CSV table
// would give, so both formats go through one record parser. Keys other than
// the column keys are ignored. A missing column key, or failCodes in a QC-pass
// file, gives a row of the wrong length.
func jsonRows(contents []byte, status QCStatus) ([][]string, error) {
	if len(bytes.TrimSpace(contents)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(contents))
	dec.UseNumber()

	var objects []map[string]interface{}
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("points JSON must be an array of objects: %w", err)
	}

	rows := make([][]string, 0, len(objects))
	for i, obj := range objects {
		row := make([]string, 0, len(jsonColumnKeys))
		for _, key := range jsonColumnKeys {
			v, exists := obj[key]
			if !exists {
				continue
			}

			switch val := v.(type) {
			case json.Number:
				row = append(row, val.String())
			case string:
				row = append(row, val)
			default:
				return nil, fmt.Errorf("object %d: key %s has unsupported value %v (%T): %w", i, key, v, v, ErrConversion)
			}
		}

		if len(row) != status.NumFields() {
			return nil, fmt.Errorf("object %d has %d of the expected keys %v: %w", i, len(row), jsonColumnKeys[:status.NumFields()], ErrFieldCount)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
