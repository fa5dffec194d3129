package zarr

import (
	"errors"
	"fmt"
	"path"

	"github.com/carbocation/looptracereader/ndarray"
)

// Array is a Zarr array whose metadata has been read and validated.
type Array struct {
	Metadata Metadata

	store  Store
	prefix string
	dtype  DType
	fill   float64
}

// Open reads the metadata of the array at prefix within store. An empty
// prefix names the store's root.
func Open(store Store, prefix string) (*Array, error) {
	contents, err := store.Get(path.Join(prefix, arrayMetadataKey))
	if err != nil {
		return nil, err
	}

	meta, err := ParseMetadata(contents)
	if err != nil {
		return nil, err
	}

	dtype, err := ParseDType(meta.DType)
	if err != nil {
		return nil, err
	}

	fill, err := meta.Fill()
	if err != nil {
		return nil, err
	}

	return &Array{
		Metadata: meta,
		store:    store,
		prefix:   prefix,
		dtype:    dtype,
		fill:     fill,
	}, nil
}

// Read loads the whole array. Chunks absent from the store read as the fill
// value.
func (a *Array) Read() (*ndarray.Array, error) {
	meta := a.Metadata

	out, err := ndarray.Zeros(meta.Shape)
	if err != nil {
		return nil, err
	}
	if a.fill != 0 {
		for i := range out.Data {
			out.Data[i] = a.fill
		}
	}

	chunkLen, err := ndarray.Size(meta.Chunks)
	if err != nil {
		return nil, err
	}
	chunk := make([]float64, chunkLen)

	grid := meta.chunkGrid()
	for _, n := range grid {
		if n == 0 {
			return out, nil
		}
	}

	coords := make([]int, len(grid))
	for {
		key := path.Join(a.prefix, meta.chunkKey(coords))

		raw, err := a.store.Get(key)
		switch {
		case errors.Is(err, ErrKeyNotFound):
		case err != nil:
			return nil, err
		default:
			decoded, err := decompress(meta.Compressor, raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			if err := a.dtype.Decode(decoded, chunk); err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			copyChunk(out, chunk, meta.Chunks, coords)
		}

		if !increment(coords, grid) {
			break
		}
	}

	return out, nil
}

// copyChunk places a decoded chunk at its grid position within out. Edge
// chunks are stored full size; their overhang is dropped.
func copyChunk(out *ndarray.Array, chunk []float64, chunkShape, coords []int) {
	strides := out.Strides()
	local := make([]int, len(chunkShape))

	for _, v := range chunk {
		flat, inside := 0, true
		for d := range local {
			g := coords[d]*chunkShape[d] + local[d]
			if g >= out.Shape[d] {
				inside = false
				break
			}
			flat += g * strides[d]
		}
		if inside {
			out.Data[flat] = v
		}

		increment(local, chunkShape)
	}
}

// increment advances a C-order multi-index within bounds and reports whether
// it has not yet wrapped around.
func increment(idx, bounds []int) bool {
	for d := len(idx) - 1; d >= 0; d-- {
		idx[d]++
		if idx[d] < bounds[d] {
			return true
		}
		idx[d] = 0
	}
	return false
}
