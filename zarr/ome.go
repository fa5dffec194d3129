package zarr

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/carbocation/looptracereader/ndarray"
)

// groupAttributes is the part of an OME-NGFF .zattrs document needed to find
// the full-resolution array.
type groupAttributes struct {
	Multiscales []struct {
		Datasets []struct {
			Path string `json:"path"`
		} `json:"datasets"`
	} `json:"multiscales"`
}

// ResolveImage finds the full-resolution array under root: the first dataset
// of the first multiscale if the group declares one, otherwise an array at the
// root itself, otherwise the array at "0".
func ResolveImage(store Store) (*Array, error) {
	attrs, err := store.Get(attributesKey)
	switch {
	case errors.Is(err, ErrKeyNotFound):
	case err != nil:
		return nil, err
	default:
		var ga groupAttributes
		if err := json.Unmarshal(attrs, &ga); err != nil {
			return nil, fmt.Errorf("malformed %s: %w", attributesKey, err)
		}
		if len(ga.Multiscales) > 0 && len(ga.Multiscales[0].Datasets) > 0 {
			return Open(store, ga.Multiscales[0].Datasets[0].Path)
		}
	}

	arr, err := Open(store, "")
	if errors.Is(err, ErrKeyNotFound) {
		return Open(store, "0")
	}

	return arr, err
}

// ReadImage reads the full-resolution array of the Zarr group or array at the
// local directory root.
func ReadImage(root string) (*ndarray.Array, error) {
	arr, err := ResolveImage(DirStore(root))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", root, err)
	}

	return arr.Read()
}
