// Package points reads looptrace locus-specific spot tables (QC-pass and
// QC-fail) into points layers, expanding each fitted spot across the z-stack.
package points

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/carbocation/looptracereader/types"
)

// Map columns in a points table to their positions
const (
	ColTrace int = iota
	ColTimepoint
	ColZ
	ColY
	ColX
	ColQC
)

var (
	// ErrFieldCount is returned when a row does not have the expected number
	// of fields.
	ErrFieldCount = errors.New("wrong number of fields")

	// ErrConversion is returned when a field cannot be parsed as the numeric
	// type of its column.
	ErrConversion = errors.New("field conversion failed")

	// ErrInvalidValue is returned when a field parses but is outside the
	// domain of its column, e.g. a negative trace ID or coordinate.
	ErrInvalidValue = errors.New("invalid field value")
)

// PointRecord is a single fitted spot: which trace and imaging round it
// belongs to, and where its centroid lies.
type PointRecord struct {
	TraceID   types.TraceID
	Timepoint types.Timepoint
	Point     types.Point3D
}

// Flatten gives the record as [trace, timepoint, z, y, x].
func (r PointRecord) Flatten() []float64 {
	return []float64{
		float64(r.TraceID.Get()),
		float64(r.Timepoint.Get()),
		r.Point.Z,
		r.Point.Y,
		r.Point.X,
	}
}

// WithZ returns a copy of the record whose point sits at z. z must be
// nonnegative and finite.
func (r PointRecord) WithZ(z float64) (PointRecord, error) {
	pt, err := r.Point.WithZ(z)
	if err != nil {
		return PointRecord{}, fmt.Errorf("%v: %w", err, ErrInvalidValue)
	}
	r.Point = pt
	return r, nil
}

// WithTruncatedZ moves the point down to the z-slice that contains it.
func (r PointRecord) WithTruncatedZ() (PointRecord, error) {
	return r.WithZ(math.Floor(r.Point.Z))
}

// ParseRecord converts one row of a points table into a PointRecord. The row
// must have exactly expNumFields fields: 5 for QC-pass tables and 6 for
// QC-fail tables. Only the first 5 fields are interpreted here.
func ParseRecord(row []string, expNumFields int) (PointRecord, error) {
	if len(row) != expNumFields {
		return PointRecord{}, fmt.Errorf("expected record of length %d but got %d: %w", expNumFields, len(row), ErrFieldCount)
	}
	if expNumFields < ColX+1 {
		return PointRecord{}, fmt.Errorf("records need at least %d fields, not %d: %w", ColX+1, expNumFields, ErrFieldCount)
	}

	rawTrace, err := parseIntField(row, ColTrace, "trace ID")
	if err != nil {
		return PointRecord{}, err
	}
	trace, err := types.NewTraceID(rawTrace)
	if err != nil {
		return PointRecord{}, fmt.Errorf("%v: %w", err, ErrInvalidValue)
	}

	rawTime, err := parseIntField(row, ColTimepoint, "timepoint")
	if err != nil {
		return PointRecord{}, err
	}
	timepoint, err := types.NewTimepoint(rawTime)
	if err != nil {
		return PointRecord{}, fmt.Errorf("%v: %w", err, ErrInvalidValue)
	}

	var coords [3]float64
	for i, col := range []int{ColZ, ColY, ColX} {
		if coords[i], err = parseFloatField(row, col); err != nil {
			return PointRecord{}, err
		}
	}
	point, err := types.NewPoint3D(coords[0], coords[1], coords[2])
	if err != nil {
		return PointRecord{}, fmt.Errorf("%v: %w", err, ErrInvalidValue)
	}

	return PointRecord{TraceID: trace, Timepoint: timepoint, Point: point}, nil
}

// ParseFailRecord parses a 6-field QC-fail row, returning the record and the
// free-text failure codes from the trailing column.
func ParseFailRecord(row []string) (PointRecord, string, error) {
	rec, err := ParseRecord(row, ColQC+1)
	if err != nil {
		return PointRecord{}, "", err
	}

	return rec, row[ColQC], nil
}

func parseIntField(row []string, col int, name string) (int, error) {
	v, err := strconv.Atoi(row[col])
	if err != nil {
		return 0, fmt.Errorf("%s in column %d (%q): %v: %w", name, col, row[col], err, ErrConversion)
	}
	return v, nil
}

func parseFloatField(row []string, col int) (float64, error) {
	v, err := strconv.ParseFloat(row[col], 64)
	if err != nil {
		return 0, fmt.Errorf("coordinate in column %d (%q): %v: %w", col, row[col], err, ErrConversion)
	}
	return v, nil
}
