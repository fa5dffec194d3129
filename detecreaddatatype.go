package looptracereader

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType matches the leading bytes of a stream against known
// compression signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
	if isZlibHeader(head) {
		return DataTypeZlib
	}

Outer:
	for dt, sig := range byteCodeSigs {
		if len(head) < len(sig) {
			continue
		}
		for position := range sig {
			if head[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// isZlibHeader reports whether head opens a zlib stream (RFC 1950) with a
// 32K deflate window: CMF 0x78, and CMF*256+FLG a multiple of 31. Smaller
// windows are not sniffed since their CMF bytes are common in plain text.
func isZlibHeader(head []byte) bool {
	if len(head) < 2 || head[0] != 0x78 {
		return false
	}

	return (uint16(head[0])<<8|uint16(head[1]))%31 == 0
}

// MaybeDecompressReadCloser sniffs the first bytes of rc without consuming
// them and, if they match a known compression format, wraps rc in the
// matching decompressor. Closing the result closes rc.
func MaybeDecompressReadCloser(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	// A short or empty file is not an error here; it simply has no signature.
	head, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, pfx.Err(err)
	}

	var r io.Reader
	switch DetectDataType(head) {
	case DataTypeGzip:
		r, err = gzip.NewReader(br)
	case DataTypeZip:
		// Only the first entry of an archive is read.
		zr := zipstream.NewReader(br)
		_, err = zr.Next()
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		r, err = xz.NewReader(br, 0)
	case DataTypeZlib:
		r, err = zlib.NewReader(br)
	default:
		r = br
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	return &wrappedReadCloser{Reader: r, closer: rc}, nil
}

// ReadAllMaybeCompressed opens a local or gs:// path, transparently
// decompresses it, and returns its full contents. The handle is released
// before returning.
func ReadAllMaybeCompressed(path string, opener Opener) ([]byte, error) {
	f, err := opener.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rc, err := MaybeDecompressReadCloser(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	contents, err := io.ReadAll(rc)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return contents, nil
}

// wrappedReadCloser "upgrades" a decompressing reader so that closing it
// closes the underlying source.
type wrappedReadCloser struct {
	io.Reader
	closer io.Closer
}

func (c *wrappedReadCloser) Close() error {
	if rc, ok := c.Reader.(io.Closer); ok {
		rc.Close()
	}
	return c.closer.Close()
}
