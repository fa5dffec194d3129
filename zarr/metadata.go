// Package zarr reads the subset of Zarr v2 that looptrace writes for nuclei
// images and masks: single arrays and OME-NGFF multiscale groups on a local
// filesystem, with null, gzip, zlib, zstd, bz2 or lzma chunk compression.
package zarr

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	arrayMetadataKey = ".zarray"
	attributesKey    = ".zattrs"
)

// ErrUnsupported is returned for valid Zarr features this package doesn't
// read, e.g. Fortran order, filters or the blosc codec.
var ErrUnsupported = errors.New("unsupported zarr feature")

// Metadata represents the Zarr V2 .zarray metadata.
type Metadata struct {
	ZarrFormat         int               `json:"zarr_format"`
	Shape              []int             `json:"shape"`
	Chunks             []int             `json:"chunks"`
	DType              string            `json:"dtype"`
	Compressor         *CompressorConfig `json:"compressor"`
	FillValue          json.RawMessage   `json:"fill_value"`
	Order              string            `json:"order"`
	Filters            []json.RawMessage `json:"filters"`
	DimensionSeparator string            `json:"dimension_separator"`
}

// CompressorConfig represents the compression configuration.
type CompressorConfig struct {
	ID    string `json:"id"`
	Level int    `json:"level,omitempty"`
}

// ParseMetadata decodes and validates the contents of a .zarray document.
func ParseMetadata(contents []byte) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(contents, &m); err != nil {
		return m, fmt.Errorf("malformed %s: %w", arrayMetadataKey, err)
	}

	if m.ZarrFormat != 2 {
		return m, fmt.Errorf("zarr_format %d: %w", m.ZarrFormat, ErrUnsupported)
	}
	if len(m.Shape) == 0 {
		return m, fmt.Errorf("zero-dimensional arrays: %w", ErrUnsupported)
	}
	if len(m.Chunks) != len(m.Shape) {
		return m, fmt.Errorf("chunks %v do not match shape %v", m.Chunks, m.Shape)
	}
	for i := range m.Shape {
		if m.Shape[i] < 0 || m.Chunks[i] < 1 {
			return m, fmt.Errorf("invalid shape %v or chunks %v", m.Shape, m.Chunks)
		}
	}
	if m.Order != "" && m.Order != "C" {
		return m, fmt.Errorf("order %q: %w", m.Order, ErrUnsupported)
	}
	if len(m.Filters) > 0 {
		return m, fmt.Errorf("filters: %w", ErrUnsupported)
	}
	switch m.DimensionSeparator {
	case "":
		m.DimensionSeparator = "."
	case ".", "/":
	default:
		return m, fmt.Errorf("dimension_separator %q: %w", m.DimensionSeparator, ErrUnsupported)
	}

	return m, nil
}

// Fill is the value of elements in chunks that were never written. A null
// fill_value reads as 0.
func (m Metadata) Fill() (float64, error) {
	raw := strings.TrimSpace(string(m.FillValue))

	switch raw {
	case "", "null", "false":
		return 0, nil
	case "true":
		return 1, nil
	case `"NaN"`:
		return math.NaN(), nil
	case `"Infinity"`:
		return math.Inf(1), nil
	case `"-Infinity"`:
		return math.Inf(-1), nil
	}

	var v float64
	if err := json.Unmarshal(m.FillValue, &v); err != nil {
		return 0, fmt.Errorf("fill_value %s: %w", raw, ErrUnsupported)
	}

	return v, nil
}

// chunkKey names the chunk at grid coordinates coords, e.g. "0.1.0".
func (m Metadata) chunkKey(coords []int) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, m.DimensionSeparator)
}

// chunkGrid is the number of chunks along each dimension.
func (m Metadata) chunkGrid() []int {
	grid := make([]int, len(m.Shape))
	for i := range m.Shape {
		grid[i] = (m.Shape[i] + m.Chunks[i] - 1) / m.Chunks[i]
	}
	return grid
}
