package types

import (
	"errors"
	"math"
	"testing"
)

func TestZeroBasedIDs(t *testing.T) {
	for _, v := range []int{0, 1, 42} {
		tid, err := NewTraceID(v)
		if err != nil {
			t.Errorf("NewTraceID(%d): %v", v, err)
		}
		if tid.Get() != v {
			t.Errorf("Expected trace %d, got %d", v, tid.Get())
		}

		tp, err := NewTimepoint(v)
		if err != nil {
			t.Errorf("NewTimepoint(%d): %v", v, err)
		}
		if tp.Get() != v {
			t.Errorf("Expected timepoint %d, got %d", v, tp.Get())
		}
	}

	if _, err := NewTraceID(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange for negative trace, got %v", err)
	}
	if _, err := NewTimepoint(-3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange for negative timepoint, got %v", err)
	}
}

func TestOneBasedIDs(t *testing.T) {
	if _, err := NewFieldOfView(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange for FOV 0, got %v", err)
	}
	if _, err := NewNucleusNumber(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange for nucleus 0, got %v", err)
	}

	fov1, err := NewFieldOfView(1)
	if err != nil {
		t.Fatal(err)
	}
	fov12, err := NewFieldOfView(12)
	if err != nil {
		t.Fatal(err)
	}
	if !fov1.Less(fov12) || fov12.Less(fov1) {
		t.Error("FOV ordering should follow the underlying integer")
	}
	if fov12.String() != "P0012" {
		t.Errorf("Unexpected FOV name %s", fov12)
	}

	nuc, err := NewNucleusNumber(7)
	if err != nil {
		t.Fatal(err)
	}
	if nuc.Get() != 7 {
		t.Errorf("Expected nucleus 7, got %d", nuc.Get())
	}
}

func TestPoint3D(t *testing.T) {
	p, err := NewPoint3D(2.7, 10, 5)
	if err != nil {
		t.Fatal(err)
	}

	q, err := p.WithZ(1)
	if err != nil {
		t.Fatal(err)
	}
	if p.Z != 2.7 {
		t.Error("WithZ must not mutate the receiver")
	}
	if q.Z != 1 || q.Y != 10 || q.X != 5 {
		t.Errorf("Unexpected point after WithZ: %+v", q)
	}

	bads := [][3]float64{
		{-0.1, 0, 0},
		{0, -1, 0},
		{0, 0, -2},
		{math.NaN(), 0, 0},
		{0, math.Inf(1), 0},
	}
	for _, b := range bads {
		if _, err := NewPoint3D(b[0], b[1], b[2]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Expected ErrOutOfRange for %v, got %v", b, err)
		}
	}
}

func TestPoint2D(t *testing.T) {
	if _, err := NewPoint2D(3, 4); err != nil {
		t.Error(err)
	}
	if _, err := NewPoint2D(3, -4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
}
