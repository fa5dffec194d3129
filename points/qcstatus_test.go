package points

import (
	"testing"
)

func TestQCStatusFromPath(t *testing.T) {
	tests := []struct {
		path  string
		want  QCStatus
		known bool
	}{
		{"sample.qc_pass.csv", QCPass, true},
		{"/data/P0001.traces.QC_PASS.csv", QCPass, true},
		{"qcpass.csv", QCPass, true},
		{"Qc_Passed.csv", QCPass, true},
		{"pass.json", QCPass, true},
		{"sample.qc_fail.csv", QCFail, true},
		{"sample.QCFailed.json", QCFail, true},
		{"gs://bucket/run/sample.qc_fail.csv", QCFail, true},
		{"sample.qc_pass.txt", qcUnknown, false},
		{"sample.qc_maybe.csv", qcUnknown, false},
		{"sample.qc_pass.other.csv", qcUnknown, false},
		{"sample.csv", qcUnknown, false},
		{"sample.qc.csv", qcUnknown, false},
	}

	for _, tt := range tests {
		got, known := QCStatusFromPath(tt.path)
		if got != tt.want || known != tt.known {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", tt.path, got, known, tt.want, tt.known)
		}
	}
}

func TestQCStatusArity(t *testing.T) {
	if QCPass.NumFields() != 5 {
		t.Errorf("pass rows have %d fields", QCPass.NumFields())
	}
	if QCFail.NumFields() != 6 {
		t.Errorf("fail rows have %d fields", QCFail.NumFields())
	}
	if QCPass.Color() == QCFail.Color() {
		t.Error("pass and fail share a color")
	}
	if QCPass.String() != "pass" || QCFail.String() != "fail" || qcUnknown.String() != "unknown" {
		t.Error("unexpected status names")
	}
}
