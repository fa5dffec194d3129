package points

import (
	"errors"
	"math"
	"testing"

	"github.com/carbocation/looptracereader/types"
)

func mustRecord(t *testing.T, trace, timepoint int, z, y, x float64) PointRecord {
	t.Helper()

	tr, err := types.NewTraceID(trace)
	if err != nil {
		t.Fatal(err)
	}
	tp, err := types.NewTimepoint(timepoint)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := types.NewPoint3D(z, y, x)
	if err != nil {
		t.Fatal(err)
	}

	return PointRecord{TraceID: tr, Timepoint: tp, Point: pt}
}

func TestExpandAlongZ(t *testing.T) {
	for _, z := range []float64{0, 0.4, 2.7, 3, 4.99} {
		rec := mustRecord(t, 3, 0, z, 10, 5)
		zMax := 4

		slices, err := ExpandAlongZ(rec, zMax)
		if err != nil {
			t.Fatalf("z=%v: %v", z, err)
		}
		if len(slices) != zMax+1 {
			t.Fatalf("z=%v: got %d slices, want %d", z, len(slices), zMax+1)
		}

		centers := 0
		for i, s := range slices {
			if s.Record.Point.Z != float64(i) {
				t.Errorf("z=%v: slice %d sits at z=%v", z, i, s.Record.Point.Z)
			}
			if s.Record.Point.Y != 10 || s.Record.Point.X != 5 {
				t.Errorf("z=%v: slice %d moved in yx: %v", z, i, s.Record.Point)
			}
			if s.Record.TraceID != rec.TraceID || s.Record.Timepoint != rec.Timepoint {
				t.Errorf("z=%v: slice %d lost its identity", z, i)
			}
			if s.IsCenter {
				centers++
				if float64(i) != math.Floor(z) {
					t.Errorf("z=%v: center at slice %d", z, i)
				}
			}
		}
		if centers != 1 {
			t.Errorf("z=%v: got %d centers", z, centers)
		}
	}
}

func TestExpandAlongZAtMax(t *testing.T) {
	slices, err := ExpandAlongZ(mustRecord(t, 0, 0, 4.2, 1, 1), 4)
	if err != nil {
		t.Fatal(err)
	}
	if !slices[4].IsCenter {
		t.Error("expected the last slice to be the center")
	}
}

func TestExpandAlongZRange(t *testing.T) {
	if _, err := ExpandAlongZ(mustRecord(t, 0, 0, 5, 1, 1), 4); !errors.Is(err, ErrZRange) {
		t.Errorf("got %v, want %v", err, ErrZRange)
	}
}

func TestExpandAll(t *testing.T) {
	records := []PointRecord{
		mustRecord(t, 0, 0, 1.5, 1, 1),
		mustRecord(t, 1, 0, 3.1, 2, 2),
	}

	slices, codes, err := ExpandAll(records, []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(slices) != 8 || len(codes) != 8 {
		t.Fatalf("got %d slices and %d codes, want 8 of each", len(slices), len(codes))
	}
	for i, code := range codes {
		want := "a"
		if i >= 4 {
			want = "b"
		}
		if code != want {
			t.Errorf("code %d = %q, want %q", i, code, want)
		}
	}

	if _, _, err := ExpandAll(records, []string{"a"}); err == nil {
		t.Error("expected an error for mismatched codes")
	}

	slices, codes, err = ExpandAll(nil, nil)
	if err != nil || slices != nil || codes != nil {
		t.Errorf("empty input gave %v, %v, %v", slices, codes, err)
	}
}

func TestMaxZSlice(t *testing.T) {
	got, err := MaxZSlice([]PointRecord{mustRecord(t, 0, 0, 2.9, 0, 0), mustRecord(t, 0, 1, 0.1, 0, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("got %d, want 2", got)
	}

	if _, err := MaxZSlice(nil); err == nil {
		t.Error("expected an error for no records")
	}
}

func TestExpandAlongZSingleSlice(t *testing.T) {
	for _, z := range []float64{0, 0.5} {
		slices, err := ExpandAlongZ(mustRecord(t, 3, 0, z, 10, 5), 0)
		if err != nil {
			t.Fatalf("z=%v: %v", z, err)
		}
		if len(slices) != 1 {
			t.Fatalf("z=%v: got %d slices, want 1", z, len(slices))
		}
		if !slices[0].IsCenter || slices[0].Record.Point.Z != 0 {
			t.Errorf("z=%v: expected a single center at z=0, got %+v", z, slices[0])
		}
	}
}

func TestRecordWithZ(t *testing.T) {
	rec := mustRecord(t, 1, 2, 3.5, 4, 5)

	moved, err := rec.WithZ(7)
	if err != nil {
		t.Fatal(err)
	}
	if moved.Point.Z != 7 || moved.Point.Y != 4 || moved.Point.X != 5 || rec.Point.Z != 3.5 {
		t.Errorf("unexpected records %+v and %+v", rec, moved)
	}

	for _, z := range []float64{-1, math.NaN(), math.Inf(1)} {
		if _, err := rec.WithZ(z); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("z=%v: got %v, want %v", z, err, ErrInvalidValue)
		}
	}
}
