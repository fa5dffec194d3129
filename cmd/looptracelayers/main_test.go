package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/carbocation/looptracereader/layer"
)

func TestWriteLayers(t *testing.T) {
	var buf bytes.Buffer

	layers := []layer.Layer{{Data: [][]float64{{0, 1, 2, 3, 4}}, Params: layer.Params{"size": 1.0}, Kind: layer.KindPoints}}
	if err := writeLayers(&buf, layers); err != nil {
		t.Fatal(err)
	}

	var decoded [][]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 || len(decoded[0]) != 3 || decoded[0][2] != "points" {
		t.Errorf("unexpected output %s", buf.String())
	}

	buf.Reset()
	if err := writeLayers(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[]\n" {
		t.Errorf("got %q for no layers", got)
	}
}
