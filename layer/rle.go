package layer

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/carbocation/looptracereader/ndarray"
	"github.com/tj/go-rle"
)

// RLELabels is a run-length encoded label image. Label arrays are mostly
// background, so this is far smaller on the wire than the dense encoding.
type RLELabels struct {
	Shape   []int
	Encoded []byte
}

// EncodeLabelsRLE run-length encodes an integer-valued label array in C order.
func EncodeLabelsRLE(labels *ndarray.Array) (RLELabels, error) {
	ids := make([]int64, len(labels.Data))
	for i, v := range labels.Data {
		if v != math.Trunc(v) {
			return RLELabels{}, fmt.Errorf("label at flat index %d is not an integer: %v", i, v)
		}
		ids[i] = int64(v)
	}

	return RLELabels{
		Shape:   append([]int(nil), labels.Shape...),
		Encoded: rle.EncodeInt64(ids),
	}, nil
}

// Decode restores the dense label array.
func (r RLELabels) Decode() (*ndarray.Array, error) {
	ids, err := rle.DecodeInt64(r.Encoded)
	if err != nil {
		return nil, err
	}

	data := make([]float64, len(ids))
	for i, v := range ids {
		data[i] = float64(v)
	}

	return ndarray.New(r.Shape, data)
}

// MarshalJSON emits {"shape": [...], "rle": "<base64>"}.
func (r RLELabels) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Shape []int  `json:"shape"`
		RLE   []byte `json:"rle"`
	}{r.Shape, r.Encoded})
}
