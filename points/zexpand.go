package points

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrZRange is returned when a point's z-slice lies above the maximum slice of
// the stack it is being expanded into.
var ErrZRange = errors.New("z-slice beyond stack maximum")

// ZSlice is one copy of a point placed on an integer z-slice. IsCenter marks
// the slice that actually contains the fitted spot.
type ZSlice struct {
	Record   PointRecord
	IsCenter bool
}

// ExpandAlongZ copies rec onto every z-slice in [0, zMax], in ascending z
// order. Exactly one copy, on the slice containing rec, is the center. The
// ordering matters: callers zip the result positionally with per-slice sizes
// and symbols.
func ExpandAlongZ(rec PointRecord, zMax int) ([]ZSlice, error) {
	center, err := rec.WithTruncatedZ()
	if err != nil {
		return nil, err
	}
	zCenter := int(center.Point.Z)

	if zMax < zCenter {
		return nil, fmt.Errorf("max z (%d) must be at least as great as central z (%d): %w", zMax, zCenter, ErrZRange)
	}

	out := make([]ZSlice, 0, zMax+1)
	for z := 0; z <= zMax; z++ {
		if z == zCenter {
			out = append(out, ZSlice{Record: center, IsCenter: true})
			continue
		}
		filler, err := rec.WithZ(float64(z))
		if err != nil {
			return nil, err
		}
		out = append(out, ZSlice{Record: filler})
	}

	return out, nil
}

// MaxZSlice is the highest z-slice index occupied by any of the records. The
// records must not be empty.
func MaxZSlice(records []PointRecord) (int, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("no records from which to take a maximum z")
	}

	zs := make([]float64, len(records))
	for i, r := range records {
		zs[i] = r.Point.Z
	}

	return int(math.Floor(floats.Max(zs))), nil
}

// ExpandAll expands every record up to the shared maximum z-slice of the
// batch. codes, if not nil, must have one entry per record and is replicated
// across that record's slices.
func ExpandAll(records []PointRecord, codes []string) ([]ZSlice, []string, error) {
	if codes != nil && len(codes) != len(records) {
		return nil, nil, fmt.Errorf("got %d failure codes for %d records", len(codes), len(records))
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	zMax, err := MaxZSlice(records)
	if err != nil {
		return nil, nil, err
	}

	slices := make([]ZSlice, 0, len(records)*(zMax+1))
	var expandedCodes []string
	if codes != nil {
		expandedCodes = make([]string, 0, cap(slices))
	}
	for i, rec := range records {
		expanded, err := ExpandAlongZ(rec, zMax)
		if err != nil {
			return nil, nil, err
		}
		slices = append(slices, expanded...)
		if codes != nil {
			for range expanded {
				expandedCodes = append(expandedCodes, codes[i])
			}
		}
	}

	return slices, expandedCodes, nil
}
