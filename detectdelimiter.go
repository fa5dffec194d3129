package looptracereader

import (
	"bytes"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in contents, assuming a CSV-like file. Falls back to a comma.
func DetermineDelimiter(contents []byte) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(bytes.NewReader(contents), '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}
