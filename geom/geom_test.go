package geom

import (
	"math"
	"testing"
)

func almostEq(x, y, eps float64) bool {
	return math.Abs(x-y) < eps
}

func TestMinimumImage(t *testing.T) {
	box, err := NewBox(10, 10, 10)
	if err != nil {
		t.Fatal(err.Error())
	}

	table := []struct {
		in, out Vec
	}{
		{Vec{0, 0, 0}, Vec{0, 0, 0}},
		{Vec{1, 2, 3}, Vec{1, 2, 3}},
		{Vec{6, 0, 0}, Vec{-4, 0, 0}},
		{Vec{-6, 0, 0}, Vec{4, 0, 0}},
		{Vec{0, 9.5, 0}, Vec{0, -0.5, 0}},
		{Vec{-4.9, 5.1, -5.1}, Vec{-4.9, -4.9, 4.9}},
	}

	for i, line := range table {
		dx := line.in
		box.MinimumImage(&dx)
		for k := 0; k < 3; k++ {
			if !almostEq(dx[k], line.out[k], 1e-12) {
				t.Errorf(
					"%d) MinimumImage(%v) = %v, not %v",
					i+1, line.in, dx, line.out,
				)
				break
			}
		}
	}
}

func TestDistanceWraps(t *testing.T) {
	box, err := NewBox(10, 20, 30)
	if err != nil {
		t.Fatal(err.Error())
	}

	p1 := Vec{0.5, 0.5, 0.5}
	p2 := Vec{9.5, 19.5, 29.5}

	if d := box.Distance(&p1, &p2); !almostEq(d, math.Sqrt(3), 1e-12) {
		t.Errorf("Distance across the cell corner = %g, not %g",
			d, math.Sqrt(3))
	}
}

func TestDisplacementAntisymmetric(t *testing.T) {
	box, err := NewBox(7, 7, 7)
	if err != nil {
		t.Fatal(err.Error())
	}

	p1, p2 := Vec{1, 6.5, 3}, Vec{6.5, 0.5, 3.2}
	var d12, d21 Vec
	box.Displacement(&p1, &p2, &d12)
	box.Displacement(&p2, &p1, &d21)

	for k := 0; k < 3; k++ {
		if !almostEq(d12[k], -d21[k], 1e-12) {
			t.Errorf("Displacement is not antisymmetric: %v vs %v", d12, d21)
			break
		}
	}
}

func TestNewBoxRejectsNonPositiveWidths(t *testing.T) {
	if _, err := NewBox(1, 0, 1); err == nil {
		t.Errorf("NewBox accepted a zero width.")
	}
	if _, err := NewBox(1, 1, -2); err == nil {
		t.Errorf("NewBox accepted a negative width.")
	}
}
