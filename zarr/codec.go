package zarr

import (
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/xi2/xz"
)

// decompress undoes the chunk compressor named in the array metadata. A nil
// compressor means chunks are stored raw.
func decompress(cfg *CompressorConfig, raw []byte) ([]byte, error) {
	if cfg == nil {
		return raw, nil
	}

	var r io.Reader
	var err error

	switch cfg.ID {
	case "gzip":
		r, err = gzip.NewReader(bytes.NewReader(raw))
	case "zlib":
		r, err = zlib.NewReader(bytes.NewReader(raw))
	case "bz2":
		r = bzip2.NewReader(bytes.NewReader(raw))
	case "lzma":
		// numcodecs writes the xz container by default.
		r, err = xz.NewReader(bytes.NewReader(raw), 0)
	case "zstd":
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(raw, nil)
	default:
		return nil, fmt.Errorf("compressor %q: %w", cfg.ID, ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("%s chunk: %w", cfg.ID, err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s chunk: %w", cfg.ID, err)
	}

	return out, nil
}
