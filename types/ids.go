// Package types holds the small validated value types shared by the looptrace
// readers: identifiers for traces, timepoints, fields of view and nuclei, and
// image-space points.
package types

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a value is outside the domain of the type
// being constructed.
var ErrOutOfRange = errors.New("value out of range")

// TraceID identifies a traced object across timepoints. 0-based.
type TraceID struct {
	value int
}

// NewTraceID rejects negative values with ErrOutOfRange.
func NewTraceID(v int) (TraceID, error) {
	if err := refineNonnegative(v, "trace ID"); err != nil {
		return TraceID{}, err
	}
	return TraceID{value: v}, nil
}

func (t TraceID) Get() int { return t.value }

func (t TraceID) String() string { return fmt.Sprintf("TraceID(%d)", t.value) }

// Timepoint is the index of an imaging round. 0-based.
type Timepoint struct {
	value int
}

// NewTimepoint rejects negative values with ErrOutOfRange.
func NewTimepoint(v int) (Timepoint, error) {
	if err := refineNonnegative(v, "timepoint"); err != nil {
		return Timepoint{}, err
	}
	return Timepoint{value: v}, nil
}

func (t Timepoint) Get() int { return t.value }

func (t Timepoint) String() string { return fmt.Sprintf("Timepoint(%d)", t.value) }

// FieldOfView is a 1-based stage position index.
type FieldOfView struct {
	value int
}

// NewFieldOfView requires v >= 1.
func NewFieldOfView(v int) (FieldOfView, error) {
	if err := refinePositive(v, "FOV"); err != nil {
		return FieldOfView{}, err
	}
	return FieldOfView{value: v}, nil
}

func (f FieldOfView) Get() int { return f.value }

// Less orders fields of view by their underlying index.
func (f FieldOfView) Less(other FieldOfView) bool { return f.value < other.value }

func (f FieldOfView) String() string { return fmt.Sprintf("P%04d", f.value) }

// NucleusNumber is the 1-based label of a nucleus within a mask image. Label 0
// is reserved for background, so it cannot be a NucleusNumber.
type NucleusNumber struct {
	value int
}

// NewNucleusNumber requires v >= 1, since 0 labels background.
func NewNucleusNumber(v int) (NucleusNumber, error) {
	if err := refinePositive(v, "nucleus number"); err != nil {
		return NucleusNumber{}, err
	}
	return NucleusNumber{value: v}, nil
}

func (n NucleusNumber) Get() int { return n.value }

func (n NucleusNumber) String() string { return fmt.Sprintf("NucleusNumber(%d)", n.value) }

func refineNonnegative(v int, context string) error {
	if v < 0 {
		return fmt.Errorf("0-based %s must be nonnegative, not %d: %w", context, v, ErrOutOfRange)
	}
	return nil
}

func refinePositive(v int, context string) error {
	if v < 1 {
		return fmt.Errorf("1-based %s must be positive, not %d: %w", context, v, ErrOutOfRange)
	}
	return nil
}
