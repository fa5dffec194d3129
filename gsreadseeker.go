// Package looptracereader holds the I/O helpers shared by the looptrace layer
// readers: opening local or Google Storage paths, sniffing compression, and
// sniffing CSV delimiters.
package looptracereader

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

const googleStoragePrefix = "gs://"

// Opener opens a path for reading.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// FileOpener opens local paths, and gs:// paths when Client is set. A nil
// Client is fine when only local files are read.
type FileOpener struct {
	Client *storage.Client
}

func (o FileOpener) Open(path string) (io.ReadCloser, error) {
	return MaybeOpenFromGoogleStorage(path, o.Client)
}

// IsGoogleStoragePath reports whether path names a Google Storage object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, googleStoragePrefix)
}

// SplitGoogleStoragePath splits gs://bucket/some/object into its bucket and
// object names.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, googleStoragePrefix), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// MaybeOpenFromGoogleStorage opens path from Google Storage if it is prefixed
// with gs://, and from the local filesystem otherwise.
func MaybeOpenFromGoogleStorage(path string, client *storage.Client) (io.ReadCloser, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, fmt.Errorf("%s: a Google Storage client is required to read gs:// paths", path)
		}

		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, err
		}

		// Open the bucket with default credentials
		handle := client.Bucket(bucketName).Object(pathName)
		r, err := handle.NewReader(context.Background())
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return r, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}
