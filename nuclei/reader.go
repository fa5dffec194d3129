package nuclei

import (
	"log"
	"os"

	"github.com/carbocation/looptracereader/layer"
)

// Options control how a nuclei visualisation root is turned into layers.
type Options struct {
	Channel   ChannelSource
	LabelsRLE bool
}

// Lookup binds GetReader to opts so it can be handed to a host.
func Lookup(opts Options) layer.Lookup {
	return func(path string) layer.ReadFunc {
		return GetReader(path, opts)
	}
}

// GetReader returns a ReadFunc if path is a directory holding the nuclei
// images, masks and centers subfolders, and nil otherwise.
func GetReader(path string, opts Options) layer.ReadFunc {
	doNotParse := func(why string) layer.ReadFunc {
		log.Printf("%s, cannot read looptrace nuclei visualisation data: %s\n", why, path)
		return nil
	}

	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return doNotParse("Not an extant directory")
	}

	if !AllPresentWithin(path) {
		return doNotParse("At least one subfolder to parse isn't a folder")
	}

	return func(root string) ([]layer.Layer, error) {
		bundles, err := ReadAllFromRoot(root, opts.Channel)
		if err != nil {
			return nil, err
		}

		return BuildLayers(bundles, opts.LabelsRLE)
	}
}
