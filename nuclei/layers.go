package nuclei

import (
	"fmt"

	"github.com/carbocation/looptracereader/layer"
	"github.com/carbocation/looptracereader/ndarray"
	"gonum.org/v1/gonum/floats"
)

const (
	nucleusKey = "nucleus"
	areaKey    = "area"
)

// BuildLayers stacks the per-FOV data into one image layer, one labels layer
// and one points layer. Centroids are placed at [fov index, y, x], where the
// index is the position of their field of view in bundles. Each centroid
// carries the pixel area of its label in the masks, 0 when the label is
// absent.
func BuildLayers(bundles []VisualisationData, labelsRLE bool) ([]layer.Layer, error) {
	images := make([]*ndarray.Array, len(bundles))
	masks := make([]*ndarray.Array, len(bundles))
	points := make([][]float64, 0, len(bundles))
	labels := make([]int, 0, len(bundles))
	areas := make([]float64, 0, len(bundles))

	for i, b := range bundles {
		images[i] = b.Image
		masks[i] = b.Masks

		moments, err := MaskMoments(b.Masks)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.FOV, err)
		}
		for _, c := range b.Centers {
			points = append(points, []float64{float64(i), c.Point.Y, c.Point.X})
			labels = append(labels, c.Nucleus.Get())
			areas = append(areas, moments[c.Nucleus.Get()].Area)
		}
	}

	imageStack, err := ndarray.Stack(images)
	if err != nil {
		return nil, err
	}
	masksStack, err := ndarray.Stack(masks)
	if err != nil {
		return nil, err
	}

	imageParams := layer.Params{"name": "nuclei"}
	if len(imageStack.Data) > 0 {
		lo, hi := floats.Min(imageStack.Data), floats.Max(imageStack.Data)
		if hi <= lo {
			hi = lo + 1
		}
		imageParams["contrast_limits"] = []float64{lo, hi}
	}

	var masksData interface{} = masksStack
	if labelsRLE {
		encoded, err := layer.EncodeLabelsRLE(masksStack)
		if err != nil {
			return nil, err
		}
		masksData = encoded
	}

	return []layer.Layer{
		{Data: imageStack, Params: imageParams, Kind: layer.KindImage},
		{Data: masksData, Params: layer.Params{"name": "nuclear masks"}, Kind: layer.KindLabels},
		{
			Data: points,
			Params: layer.Params{
				"name":       "nuclear centers",
				"text":       map[string]interface{}{"string": "{" + nucleusKey + "}"},
				"properties": map[string]interface{}{nucleusKey: labels, areaKey: areas},
			},
			Kind: layer.KindPoints,
		},
	}, nil
}
