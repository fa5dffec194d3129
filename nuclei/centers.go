package nuclei

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/carbocation/looptracereader"
	"github.com/carbocation/looptracereader/types"
	"github.com/gocarina/gocsv"
)

var centersColumns = []string{"label", "yc", "xc"}

type centerRow struct {
	Label int     `csv:"label"`
	Y     float64 `csv:"yc"`
	X     float64 `csv:"xc"`
}

// Center is the centroid of one nucleus's mask.
type Center struct {
	Nucleus types.NucleusNumber
	Point   types.Point2D
}

// ReadCenters reads a table of nuclear mask centroids. The table must have a
// header naming at least the label, yc and xc columns; any other columns,
// such as a leading index, are ignored. The delimiter is detected from the
// header.
func ReadCenters(path string) ([]Center, error) {
	contents, err := looptracereader.ReadAllMaybeCompressed(path, looptracereader.FileOpener{})
	if err != nil {
		return nil, err
	}
	centers, err := ParseCenters(contents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return centers, nil
}

// ParseCenters parses the contents of a centroids table.
func ParseCenters(contents []byte) ([]Center, error) {
	// Sniff the header alone: decimal points in the body would be candidates.
	headerLine := contents
	if i := bytes.IndexByte(contents, '\n'); i >= 0 {
		headerLine = contents[:i+1]
	}
	delim := looptracereader.DetermineDelimiter(headerLine)

	header, err := newCSVReader(contents, delim).Read()
	if err != nil {
		return nil, fmt.Errorf("could not read centers header: %w", err)
	}
	if err := checkColumns(header); err != nil {
		return nil, err
	}

	var rows []centerRow
	if err := gocsv.UnmarshalCSV(newCSVReader(contents, delim), &rows); err != nil {
		return nil, err
	}

	out := make([]Center, 0, len(rows))
	for i, row := range rows {
		nuc, err := types.NewNucleusNumber(row.Label)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		pt, err := types.NewPoint2D(row.Y, row.X)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, Center{Nucleus: nuc, Point: pt})
	}

	return out, nil
}

func newCSVReader(contents []byte, delim rune) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(contents))
	r.Comma = delim
	return r
}

func checkColumns(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[col] = struct{}{}
	}

	for _, col := range centersColumns {
		if _, exists := present[col]; !exists {
			return fmt.Errorf("centers header %v lacks column %q", header, col)
		}
	}

	return nil
}
