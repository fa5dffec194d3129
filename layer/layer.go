// Package layer describes the unit of data handed to a visualization host: a
// (data, display parameters, kind) triple, plus the reader-lookup contract the
// host uses to find a parser for a path.
package layer

import (
	"encoding/json"
)

type Kind string

const (
	KindPoints Kind = "points"
	KindImage  Kind = "image"
	KindLabels Kind = "labels"
)

// Params are keyword arguments for the host's layer constructor, e.g. size,
// face_color, symbol, text, properties.
type Params map[string]interface{}

// Merge returns a new Params with the entries of each argument applied in
// order; later keys win.
func Merge(ps ...Params) Params {
	out := make(Params)
	for _, p := range ps {
		for k, v := range p {
			out[k] = v
		}
	}
	return out
}

// Layer is one unit of visual data. Data is [][]float64 for points, an
// *ndarray.Array for images, and an *ndarray.Array or RLELabels for labels.
type Layer struct {
	Data   interface{}
	Params Params
	Kind   Kind
}

// MarshalJSON encodes the layer as the 3-element array [data, params, kind].
func (l Layer) MarshalJSON() ([]byte, error) {
	params := l.Params
	if params == nil {
		params = Params{}
	}
	return json.Marshal([]interface{}{l.Data, params, l.Kind})
}

// ReadFunc parses the file or folder at path into layers.
type ReadFunc func(path string) ([]Layer, error)

// Lookup returns a ReadFunc if it can read the path, and nil otherwise. A nil
// return is a declined match, not an error.
type Lookup func(path string) ReadFunc

// FirstReader returns the ReadFunc of the first lookup that accepts path, or
// nil if none do.
func FirstReader(path string, lookups ...Lookup) ReadFunc {
	for _, lookup := range lookups {
		if read := lookup(path); read != nil {
			return read
		}
	}

	return nil
}
