package zarr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
)

// ErrKeyNotFound is returned by a Store for keys that were never written.
var ErrKeyNotFound = errors.New("key not found")

// Store gives access to the documents and chunks of a Zarr hierarchy by
// slash-separated key.
type Store interface {
	Get(key string) ([]byte, error)
}

// DirStore is a Zarr hierarchy rooted at a local directory.
type DirStore string

func (d DirStore) Get(key string) ([]byte, error) {
	contents, err := os.ReadFile(filepath.Join(string(d), filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s/%s: %w", d, key, ErrKeyNotFound)
	} else if err != nil {
		return nil, pfx.Err(err)
	}

	return contents, nil
}
