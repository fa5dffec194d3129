package points

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/carbocation/looptracereader"
	"github.com/carbocation/looptracereader/layer"
	"github.com/carbocation/pfx"
)

// rowLoader turns the raw contents of a table into rows of text fields.
type rowLoader func(contents []byte, status QCStatus) ([][]string, error)

var tableFormats = map[string]rowLoader{
	".csv":  csvRows,
	".json": jsonRows,
}

// Parameters shared by every points layer, regardless of QC status.
var staticParams = layer.Params{
	"edge_width":             0.1,
	"edge_width_is_relative": true,
	"n_dimensional":          false,
}

// Lookup binds GetReader to an opener so it can be handed to a host.
func Lookup(opener looptracereader.Opener) layer.Lookup {
	return func(path string) layer.ReadFunc {
		return GetReader(path, opener)
	}
}

// GetReader returns a ReadFunc for path if it looks like a looptrace
// locus-specific points table whose QC status can be inferred from its name,
// and nil otherwise.
func GetReader(path string, opener looptracereader.Opener) layer.ReadFunc {
	doNotParse := func(why string) layer.ReadFunc {
		log.Printf("%s, cannot be read as looptrace locus-specific points: %s\n", why, path)
		return nil
	}

	// Remote objects are checked when they are opened.
	if !looptracereader.IsGoogleStoragePath(path) {
		if stat, err := os.Stat(path); err != nil || !stat.Mode().IsRegular() {
			return doNotParse("Not an extant file")
		}
	}

	if _, supported := tableFormats[filepath.Ext(path)]; !supported {
		return doNotParse("Not a CSV or JSON table")
	}

	status, known := QCStatusFromPath(path)
	if !known {
		return doNotParse("Could not infer QC status")
	}

	return func(p string) ([]layer.Layer, error) {
		l, err := ReadPointsFile(p, status, opener)
		if err != nil {
			return nil, err
		}
		return []layer.Layer{l}, nil
	}
}

// ReadPointsFile reads the whole table at path and builds its points layer.
func ReadPointsFile(path string, status QCStatus, opener looptracereader.Opener) (layer.Layer, error) {
	loader, supported := tableFormats[filepath.Ext(path)]
	if !supported {
		return layer.Layer{}, fmt.Errorf("%s: unsupported table format", path)
	}

	contents, err := looptracereader.ReadAllMaybeCompressed(path, opener)
	if err != nil {
		return layer.Layer{}, err
	}

	rows, err := loader(contents, status)
	if err != nil {
		return layer.Layer{}, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	l, err := BuildLayer(status, rows)
	if err != nil {
		return layer.Layer{}, fmt.Errorf("%s: %w", path, err)
	}

	return l, nil
}

// ParseRows parses every row with the arity of status. For QC-fail rows the
// trailing failure codes are returned alongside, one per record; for QC-pass
// rows codes is nil. Any bad row fails the whole batch.
func ParseRows(status QCStatus, rows [][]string) (records []PointRecord, codes []string, err error) {
	if _, known := qcStyles[status]; !known {
		return nil, nil, fmt.Errorf("not a recognised QC status: %d", status)
	}

	records = make([]PointRecord, 0, len(rows))
	if status == QCFail {
		codes = make([]string, 0, len(rows))
	}

	for i, row := range rows {
		var rec PointRecord
		if status == QCFail {
			var code string
			rec, code, err = ParseFailRecord(row)
			codes = append(codes, code)
		} else {
			rec, err = ParseRecord(row, status.NumFields())
		}
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, rec)
	}

	return records, codes, nil
}

// BuildLayer parses rows, expands each record across the z-stack and packages
// the result as a points layer styled by status. Each point is flattened to
// [trace, timepoint, z, y, x].
func BuildLayer(status QCStatus, rows [][]string) (layer.Layer, error) {
	records, codes, err := ParseRows(status, rows)
	if err != nil {
		return layer.Layer{}, err
	}
	if len(records) == 0 {
		log.Println("No data rows parsed!")
	}

	slices, expandedCodes, err := ExpandAll(records, codes)
	if err != nil {
		return layer.Layer{}, err
	}

	data := make([][]float64, len(slices))
	for i, s := range slices {
		data[i] = s.Record.Flatten()
	}

	return layer.Layer{
		Data:   data,
		Params: layer.Merge(staticParams, status.layerParams(slices, expandedCodes)),
		Kind:   layer.KindPoints,
	}, nil
}

func csvRows(contents []byte, status QCStatus) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(contents))
	r.Comma = ','

	// Field counts are enforced per row by the record parser.
	r.FieldsPerRecord = -1

	return r.ReadAll()
}
