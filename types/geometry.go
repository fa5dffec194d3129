package types

import (
	"fmt"
	"math"
)

// Point3D is a location in an image stack. Coordinates are in pixels and are
// never negative.
type Point3D struct {
	Z, Y, X float64
}

// NewPoint3D returns an error wrapping ErrOutOfRange unless every coordinate
// is nonnegative and finite.
func NewPoint3D(z, y, x float64) (Point3D, error) {
	if err := refineCoordinates(map[string]float64{"z": z, "y": y, "x": x}); err != nil {
		return Point3D{}, err
	}
	return Point3D{Z: z, Y: y, X: x}, nil
}

// WithZ returns a copy of the point with its z-coordinate replaced.
func (p Point3D) WithZ(z float64) (Point3D, error) {
	return NewPoint3D(z, p.Y, p.X)
}

// Point2D is a location within a single image plane.
type Point2D struct {
	Y, X float64
}

// NewPoint2D validates its coordinates the same way as NewPoint3D.
func NewPoint2D(y, x float64) (Point2D, error) {
	if err := refineCoordinates(map[string]float64{"y": y, "x": x}); err != nil {
		return Point2D{}, err
	}
	return Point2D{Y: y, X: x}, nil
}

func refineCoordinates(coords map[string]float64) error {
	for _, axis := range []string{"z", "y", "x"} {
		c, exists := coords[axis]
		if !exists {
			continue
		}
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%s-coordinate is not finite (%v): %w", axis, c, ErrOutOfRange)
		}
		if c < 0 {
			return fmt.Errorf("%s-coordinate is negative (%v): %w", axis, c, ErrOutOfRange)
		}
	}

	return nil
}
