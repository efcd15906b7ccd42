/*package geom contains the geometric primitives used by the force kernels:
three dimensional vectors and the periodic simulation cell.
*/
package geom

import (
	"fmt"
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Dot returns the inner product of v and u.
func (v *Vec) Dot(u *Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Norm returns the Euclidean length of v.
func (v *Vec) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Box is a periodic simulation cell with the given edge lengths.
type Box struct {
	Widths Vec
}

// NewBox creates a periodic cell with edge lengths x, y, and z.
func NewBox(x, y, z float64) (*Box, error) {
	widths := Vec{x, y, z}
	for k := 0; k < 3; k++ {
		if widths[k] <= 0 {
			return nil, fmt.Errorf(
				"Cell width along axis %d is %g, but must be positive.",
				k, widths[k],
			)
		}
	}
	return &Box{widths}, nil
}

// MinimumImage wraps the displacement vector dx onto the nearest periodic
// image, component by component.
func (b *Box) MinimumImage(dx *Vec) {
	for k := 0; k < 3; k++ {
		L := b.Widths[k]
		if dx[k] > L/2 {
			dx[k] -= L
		} else if dx[k] < -L/2 {
			dx[k] += L
		}
	}
}

// Displacement sets out to the minimum-image displacement from p1 to p2.
func (b *Box) Displacement(p1, p2, out *Vec) {
	for k := 0; k < 3; k++ {
		out[k] = p2[k] - p1[k]
	}
	b.MinimumImage(out)
}

// Distance returns the minimum-image distance between p1 and p2.
func (b *Box) Distance(p1, p2 *Vec) float64 {
	var dx Vec
	b.Displacement(p1, p2, &dx)
	return dx.Norm()
}
