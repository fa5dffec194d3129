package nuclei

import (
	"fmt"

	"github.com/carbocation/looptracereader/ndarray"
)

// LabelMoments summarises the pixels of one label in a 2D mask via its raw
// image moments.
type LabelMoments struct {
	Area      float64
	CentroidY float64
	CentroidX float64
}

// MaskMoments computes the moments of every nonzero label in a 2D mask.
// Label 0 is background and is skipped.
func MaskMoments(masks *ndarray.Array) (map[int]LabelMoments, error) {
	if masks.NDim() != 2 {
		return nil, fmt.Errorf("moments need 2D masks, got shape %v: %w", masks.Shape, ndarray.ErrShape)
	}

	// Raw moments by label: M10 sums y and M01 sums x.
	M00 := make(map[int]float64)
	M10 := make(map[int]float64)
	M01 := make(map[int]float64)

	width := masks.Shape[1]
	for i, v := range masks.Data {
		label := int(v)
		if label == 0 {
			continue
		}
		y, x := i/width, i%width

		M00[label]++
		M10[label] += float64(y)
		M01[label] += float64(x)
	}

	out := make(map[int]LabelMoments, len(M00))
	for label, area := range M00 {
		out[label] = LabelMoments{
			Area:      area,
			CentroidY: M10[label] / area,
			CentroidX: M01[label] / area,
		}
	}

	return out, nil
}
