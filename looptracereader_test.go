package looptracereader

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectDataType(t *testing.T) {
	cases := map[DataType][]byte{
		DataTypeGzip:          {0x1f, 0x8b, 0x08, 0, 0, 0},
		DataTypeBZip2:         []byte("BZh91AY"),
		DataTypeZlib:          {0x78, 0x9c, 0, 0},
		DataTypeNoCompression: []byte("3,0,2.7,10.0,5.0\n"),
	}
	for want, head := range cases {
		if got := DetectDataType(head); got != want {
			t.Errorf("DetectDataType(%v): expected %d, got %d", head, want, got)
		}
	}

	for _, head := range [][]byte{{0x78, 0x01}, {0x78, 0x5e}, {0x78, 0xda}} {
		if got := DetectDataType(head); got != DataTypeZlib {
			t.Errorf("DetectDataType(%x): expected zlib, got %d", head, got)
		}
	}

	// LZW .Z files are not zlib, and text starting with x is not either
	for _, head := range [][]byte{{0x1f, 0x9d, 0x90}, []byte("x,y\n")} {
		if got := DetectDataType(head); got != DataTypeNoCompression {
			t.Errorf("DetectDataType(%x): expected no compression, got %d", head, got)
		}
	}

	// Too short to match anything
	if got := DetectDataType([]byte{0x1f}); got != DataTypeNoCompression {
		t.Errorf("Expected no compression for a 1-byte head, got %d", got)
	}
}

func TestReadAllMaybeCompressed(t *testing.T) {
	dir := t.TempDir()
	content := "3,0,2.7,10.0,5.0\n"

	plain := filepath.Join(dir, "plain.qc_pass.csv")
	if err := os.WriteFile(plain, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte(content))
	gz.Close()
	zipped := filepath.Join(dir, "zipped.qc_pass.csv")
	if err := os.WriteFile(zipped, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	zw.Write([]byte(content))
	zw.Close()
	deflated := filepath.Join(dir, "deflated.qc_pass.csv")
	if err := os.WriteFile(deflated, zbuf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	empty := filepath.Join(dir, "empty.qc_pass.csv")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}

	for path, want := range map[string]string{plain: content, zipped: content, deflated: content, empty: ""} {
		got, err := ReadAllMaybeCompressed(path, FileOpener{})
		if err != nil {
			t.Errorf("%s: %v", path, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s: expected %q, got %q", path, want, got)
		}
	}

	if _, err := ReadAllMaybeCompressed(filepath.Join(dir, "missing.csv"), FileOpener{}); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestSplitGoogleStoragePath(t *testing.T) {
	bucket, object, err := SplitGoogleStoragePath("gs://my-bucket/exp1/spots.qc_pass.csv")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "my-bucket" || object != "exp1/spots.qc_pass.csv" {
		t.Errorf("Unexpected split: %s, %s", bucket, object)
	}

	if _, _, err := SplitGoogleStoragePath("gs://only-bucket"); err == nil {
		t.Error("Expected an error for a path without an object")
	}
}

func TestGoogleStorageNeedsClient(t *testing.T) {
	if _, err := MaybeOpenFromGoogleStorage("gs://bucket/obj.csv", nil); err == nil {
		t.Error("Expected an error opening gs:// without a client")
	}
}

func TestDetermineDelimiter(t *testing.T) {
	tabbed := []byte("label\tyc\txc\n")
	if got := DetermineDelimiter(tabbed); got != '\t' {
		t.Errorf("Expected tab, got %q", got)
	}

	commas := []byte("label,yc,xc\n")
	if got := DetermineDelimiter(commas); got != ',' {
		t.Errorf("Expected comma, got %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/abs/~/path")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/abs/~/path" {
		t.Errorf("Expected path unchanged, got %s", got)
	}

	got, err = ExpandHome("~/data")
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(got, "~") || !strings.HasSuffix(got, "data") {
		t.Errorf("Expected expanded home path, got %s", got)
	}
}
