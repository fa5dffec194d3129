package points

import (
	"path/filepath"
	"strings"

	"github.com/carbocation/looptracereader/layer"
)

// QCStatus is the quality-control outcome of every spot in a file, inferred
// from the file's name.
type QCStatus uint8

const (
	qcUnknown QCStatus = iota
	QCPass
	QCFail
)

const (
	// Goldenrod and deep sky blue, as named CSS colors.
	colorPass = "#daa520"
	colorFail = "#00bfff"

	symbolCenter = "*"
	symbolFiller = "o"

	// FailCodesKey names the per-point property holding QC failure codes.
	FailCodesKey = "failCodes"
)

// qcStyle holds everything that differs between pass and fail files. Each
// status is fully described by its row of data here.
type qcStyle struct {
	name       string
	numFields  int
	color      string
	centerSize float64
	fillerSize float64
	showCodes  bool
}

var qcStyles = map[QCStatus]qcStyle{
	QCPass: {
		name:       "pass",
		numFields:  ColX + 1,
		color:      colorPass,
		centerSize: 1.5,
		fillerSize: 1.0,
	},
	QCFail: {
		name:       "fail",
		numFields:  ColQC + 1,
		color:      colorFail,
		centerSize: 0,
		fillerSize: 0,
		showCodes:  true,
	},
}

var qcTokens = map[string]QCStatus{
	"pass":   QCPass,
	"passed": QCPass,
	"fail":   QCFail,
	"failed": QCFail,
}

func (q QCStatus) String() string {
	if style, exists := qcStyles[q]; exists {
		return style.name
	}
	return "unknown"
}

// NumFields is the number of columns in each row of a file with this status.
func (q QCStatus) NumFields() int {
	return qcStyles[q].numFields
}

// Color is the face and edge color of this status's points.
func (q QCStatus) Color() string {
	return qcStyles[q].color
}

// ParseQCStatus interprets a QC token such as "pass", "QC_Failed" or
// "qcpass". Case is ignored, and an optional "qc_" or "qc" prefix is dropped.
func ParseQCStatus(token string) (QCStatus, bool) {
	s := strings.ToLower(token)
	if strings.HasPrefix(s, "qc_") {
		s = strings.TrimPrefix(s, "qc_")
	} else {
		s = strings.TrimPrefix(s, "qc")
	}

	status, exists := qcTokens[s]
	return status, exists
}

// QCStatusFromPath infers QC status from the last dot-delimited segment of a
// table's base name, e.g. P0001.traces.qc_pass.csv. The extension must be one
// of the supported table formats.
func QCStatusFromPath(path string) (QCStatus, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if _, supported := tableFormats[ext]; !supported {
		return qcUnknown, false
	}

	stem := strings.TrimSuffix(base, ext)
	segments := strings.Split(stem, ".")

	return ParseQCStatus(segments[len(segments)-1])
}

// layerParams builds the display parameters for the expanded points of a file
// with this status. codes is ignored for statuses that don't show codes.
func (q QCStatus) layerParams(slices []ZSlice, codes []string) layer.Params {
	style := qcStyles[q]

	symbols := make([]string, len(slices))
	sizes := make([]float64, len(slices))
	for i, s := range slices {
		symbols[i] = symbolFiller
		sizes[i] = style.fillerSize
		if s.IsCenter {
			symbols[i] = symbolCenter
			sizes[i] = style.centerSize
		}
	}

	params := layer.Params{
		"edge_color": style.color,
		"face_color": style.color,
		"symbol":     symbols,
	}

	if style.centerSize == style.fillerSize {
		params["size"] = style.centerSize
	} else {
		params["size"] = sizes
	}

	if style.showCodes {
		if codes == nil {
			codes = []string{}
		}
		// Points are invisible; the failure codes are drawn in their place.
		params["text"] = map[string]interface{}{
			"string": "{" + FailCodesKey + "}",
			"color":  style.color,
		}
		params["properties"] = map[string]interface{}{FailCodesKey: codes}
	}

	return params
}
