// Package nuclei reads the nuclei visualisation data looptrace writes for each
// field of view (a nuclear stain image, its segmentation masks, and the mask
// centroids) into image, labels and points layers.
package nuclei

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/looptracereader/types"
	"github.com/carbocation/pfx"
)

// Subfolder is one of the folders, directly under a nuclei visualisation root,
// that holds one file per field of view.
type Subfolder string

const (
	SubfolderImages  Subfolder = "nuc_images"
	SubfolderMasks   Subfolder = "nuc_masks"
	SubfolderCenters Subfolder = "_nuclear_masks_visualisation"
)

// Subfolders lists every subfolder a nuclei visualisation root must have.
var Subfolders = []Subfolder{SubfolderImages, SubfolderMasks, SubfolderCenters}

// Extension is the file extension of the per-FOV entries in the subfolder.
func (s Subfolder) Extension() string {
	if s == SubfolderCenters {
		return ".csv"
	}
	return ".zarr"
}

func (s Subfolder) Within(root string) string {
	return filepath.Join(root, string(s))
}

// AllPresentWithin reports whether every subfolder exists as a directory
// under root.
func AllPresentWithin(root string) bool {
	for _, s := range Subfolders {
		stat, err := os.Stat(s.Within(root))
		if err != nil || !stat.IsDir() {
			return false
		}
	}
	return true
}

// ParseFOVName extracts the field of view from an entry named like P0001.zarr.
// ok is false for names that don't follow the pattern; err is set when the
// pattern matches but names an invalid field of view.
func ParseFOVName(name, extension string) (fov types.FieldOfView, ok bool, err error) {
	if !strings.HasPrefix(name, "P") || !strings.HasSuffix(name, extension) {
		return fov, false, nil
	}

	digits := strings.TrimSuffix(strings.TrimPrefix(name, "P"), extension)
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return fov, false, nil
	}

	raw, err := strconv.Atoi(digits)
	if err != nil {
		return fov, false, nil
	}

	fov, err = types.NewFieldOfView(raw)
	if err != nil {
		return fov, true, fmt.Errorf("%s: %w", name, err)
	}

	return fov, true, nil
}

// FindPathsByFOV maps each field of view to its entry in folder. Entries that
// aren't named for a field of view are skipped.
func FindPathsByFOV(folder, extension string) (map[types.FieldOfView]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[types.FieldOfView]string)
	for _, entry := range entries {
		fov, ok, err := ParseFOVName(entry.Name(), extension)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", folder, err)
		}
		if !ok {
			continue
		}

		if prior, exists := out[fov]; exists {
			return nil, fmt.Errorf("FOV %s already seen in folder %s: %s and %s", fov, folder, filepath.Base(prior), entry.Name())
		}
		out[fov] = filepath.Join(folder, entry.Name())
	}

	return out, nil
}

// fovPaths is where each piece of a single field of view's data lives.
type fovPaths struct {
	FOV     types.FieldOfView
	Image   string
	Masks   string
	Centers string
}

// sharedFOVs lists, in ascending order, the fields of view that have an entry
// in every subfolder of root.
func sharedFOVs(root string) ([]fovPaths, error) {
	byFolder := make(map[Subfolder]map[types.FieldOfView]string, len(Subfolders))
	for _, s := range Subfolders {
		paths, err := FindPathsByFOV(s.Within(root), s.Extension())
		if err != nil {
			return nil, err
		}
		byFolder[s] = paths
	}

	var out []fovPaths
	for fov, image := range byFolder[SubfolderImages] {
		masks, hasMasks := byFolder[SubfolderMasks][fov]
		centers, hasCenters := byFolder[SubfolderCenters][fov]
		if !hasMasks || !hasCenters {
			continue
		}
		out = append(out, fovPaths{FOV: fov, Image: image, Masks: masks, Centers: centers})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].FOV.Less(out[j].FOV) })

	return out, nil
}
