package nuclei

import (
	"fmt"
	"log"

	"github.com/carbocation/looptracereader/ndarray"
	"github.com/carbocation/looptracereader/types"
	"github.com/carbocation/looptracereader/zarr"
)

// VisualisationData is everything needed to draw the nuclei of one field of
// view. Image and Masks are always 2D.
type VisualisationData struct {
	FOV     types.FieldOfView
	Image   *ndarray.Array
	Masks   *ndarray.Array
	Centers []Center
}

// NewVisualisationData reduces image and masks to single 2D planes.
//
// An image may be up to 5D (t, c, z, y, x) with a trivial time axis. A
// nontrivial channel axis is resolved with channel, and a nontrivial z axis is
// max-projected. Masks may be 2D, or 5D with trivial (t, c, z) axes.
func NewVisualisationData(fov types.FieldOfView, image, masks *ndarray.Array, centers []Center, channel ChannelSource) (VisualisationData, error) {
	img, err := reduceImage(image, channel)
	if err != nil {
		return VisualisationData{}, fmt.Errorf("%s image: %w", fov, err)
	}

	m, err := reduceMasks(masks)
	if err != nil {
		return VisualisationData{}, fmt.Errorf("%s masks: %w", fov, err)
	}

	return VisualisationData{FOV: fov, Image: img, Masks: m, Centers: centers}, nil
}

func reduceImage(img *ndarray.Array, channel ChannelSource) (*ndarray.Array, error) {
	ndim := img.NDim()
	var err error

	if img.NDim() == 5 {
		if img.Shape[0] != 1 {
			return nil, fmt.Errorf("5D image must have trivial first dimension; got %d (not 1): %w", img.Shape[0], ndarray.ErrShape)
		}
		if img, err = img.Index(0); err != nil {
			return nil, err
		}
	}

	if img.NDim() == 4 {
		ch := 0
		if img.Shape[0] != 1 {
			if ch, err = channel.Resolve(img.Shape[0]); err != nil {
				return nil, err
			}
		}
		if img, err = img.Index(ch); err != nil {
			return nil, err
		}
	}

	if img.NDim() == 3 {
		if img.Shape[0] == 1 {
			img, err = img.Index(0)
		} else {
			log.Printf("Max projecting %d z-slices for nuclei image\n", img.Shape[0])
			img, err = img.MaxProject()
		}
		if err != nil {
			return nil, err
		}
	}

	if img.NDim() != 2 {
		return nil, fmt.Errorf("cannot use image with %d dimension(s): %w", ndim, ndarray.ErrShape)
	}

	return img, nil
}

func reduceMasks(masks *ndarray.Array) (*ndarray.Array, error) {
	if masks.NDim() == 5 {
		for _, d := range masks.Shape[:3] {
			if d != 1 {
				return nil, fmt.Errorf("5D masks with at least 1 nontrivial (t, c, z) axis %v: %w", masks.Shape, ndarray.ErrShape)
			}
		}

		var err error
		for i := 0; i < 3; i++ {
			if masks, err = masks.Index(0); err != nil {
				return nil, err
			}
		}
	}

	if masks.NDim() != 2 {
		return nil, fmt.Errorf("need 2D masks but got %d dimension(s) %v: %w", masks.NDim(), masks.Shape, ndarray.ErrShape)
	}

	return masks, nil
}

// ReadAllFromRoot reads every field of view that has an image, masks and
// centers under root, in ascending FOV order.
func ReadAllFromRoot(root string, channel ChannelSource) ([]VisualisationData, error) {
	fovs, err := sharedFOVs(root)
	if err != nil {
		return nil, err
	}
	if len(fovs) == 0 {
		return nil, fmt.Errorf("%s: no field of view has an image, masks and centers", root)
	}

	out := make([]VisualisationData, 0, len(fovs))
	for _, paths := range fovs {
		image, err := zarr.ReadImage(paths.Image)
		if err != nil {
			return nil, err
		}

		masks, err := zarr.ReadImage(paths.Masks)
		if err != nil {
			return nil, err
		}

		centers, err := ReadCenters(paths.Centers)
		if err != nil {
			return nil, err
		}

		data, err := NewVisualisationData(paths.FOV, image, masks, centers, channel)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}

	return out, nil
}
