package points

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord([]string{"3", "0", "2.7", "10.0", "5.0"}, 5)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := rec.Flatten(), []float64{3, 0, 2.7, 10, 5}; !cmp.Equal(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}

func TestParseRecordErrors(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want error
	}{
		{"too short", []string{"3", "0", "2.7", "10.0"}, ErrFieldCount},
		{"too long", []string{"3", "0", "2.7", "10.0", "5.0", "x"}, ErrFieldCount},
		{"fractional trace", []string{"3.5", "0", "2.7", "10.0", "5.0"}, ErrConversion},
		{"text timepoint", []string{"3", "t0", "2.7", "10.0", "5.0"}, ErrConversion},
		{"text coordinate", []string{"3", "0", "z", "10.0", "5.0"}, ErrConversion},
		{"negative trace", []string{"-1", "0", "2.7", "10.0", "5.0"}, ErrInvalidValue},
		{"negative timepoint", []string{"3", "-2", "2.7", "10.0", "5.0"}, ErrInvalidValue},
		{"negative coordinate", []string{"3", "0", "2.7", "-10.0", "5.0"}, ErrInvalidValue},
		{"nan coordinate", []string{"3", "0", "NaN", "10.0", "5.0"}, ErrInvalidValue},
	}

	for _, tt := range tests {
		if _, err := ParseRecord(tt.row, 5); !errors.Is(err, tt.want) {
			t.Errorf("%s: got error %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestParseFailRecord(t *testing.T) {
	rec, code, err := ParseFailRecord([]string{"1", "4", "0", "2", "3", "lowSNR;far"})
	if err != nil {
		t.Fatal(err)
	}
	if code != "lowSNR;far" {
		t.Errorf("code = %q", code)
	}
	if rec.TraceID.Get() != 1 || rec.Timepoint.Get() != 4 {
		t.Errorf("unexpected record %v", rec)
	}

	if _, _, err := ParseFailRecord([]string{"1", "4", "0", "2", "3"}); !errors.Is(err, ErrFieldCount) {
		t.Errorf("5-field fail row: got %v, want %v", err, ErrFieldCount)
	}
}

func TestFieldCountErrorOmitsRow(t *testing.T) {
	_, err := ParseRecord([]string{"3", "0", "2.7", "secret-contents"}, 5)
	if !errors.Is(err, ErrFieldCount) {
		t.Fatalf("got %v, want %v", err, ErrFieldCount)
	}
	if strings.Contains(err.Error(), "secret-contents") {
		t.Errorf("error echoes the row: %v", err)
	}
}
