package potential

import (
	"math"

	"github.com/mdforge/gobop/geom"
	"github.com/mdforge/gobop/neighbor"
)

// Below zetaMin the screening sum is treated as exactly zero and the bond
// order takes its limiting value of one. This keeps the derivative finite and
// avoids the 0^n indeterminacy for small exponents.
const zetaMin = 1e-16

// fcFcp evaluates the cutoff taper and its derivative. fc is 1 below r1,
// falls as a raised cosine between r1 and r2, and is 0 past r2. Both the
// value and the derivative are continuous at the knots.
func (c *pairCoef) fcFcp(d float64) (fc, fcp float64) {
	if d < c.r1 {
		return 1, 0
	}
	if d < c.r2 {
		phase := c.piFactor * (d - c.r1)
		fc = 0.5*math.Cos(phase) + 0.5
		fcp = -0.5 * c.piFactor * math.Sin(phase)
		return fc, fcp
	}
	return 0, 0
}

// fcOnly evaluates the cutoff taper without its derivative.
func (c *pairCoef) fcOnly(d float64) float64 {
	if d < c.r1 {
		return 1
	}
	if d < c.r2 {
		return 0.5*math.Cos(c.piFactor*(d-c.r1)) + 0.5
	}
	return 0
}

// faFap evaluates the attractive term B*exp(-mu*d) and its derivative.
func (c *pairCoef) faFap(d float64) (fa, fap float64) {
	fa = c.b * math.Exp(-c.mu*d)
	return fa, -c.mu * fa
}

// faOnly evaluates the attractive term without its derivative.
func (c *pairCoef) faOnly(d float64) float64 {
	return c.b * math.Exp(-c.mu*d)
}

// frFrp evaluates the repulsive term A*exp(-lambda*d) and its derivative.
func (c *pairCoef) frFrp(d float64) (fr, frp float64) {
	fr = c.a * math.Exp(-c.lambda*d)
	return fr, -c.lambda * fr
}

// gGp evaluates the angular function (cos - h)^2 and its derivative with
// respect to the cosine.
func (c *pairCoef) gGp(cos float64) (g, gp float64) {
	diff := cos - c.h
	return diff * diff, 2 * diff
}

// bondOrderAtom is pass 1 for a single atom: for every neighbor slot of n1 it
// accumulates the screening sum over the remaining neighbors and stores the
// bond order and its zeta-derivative in the atom's own cache slots. The
// screening sum weights each triplet by the (n1, n3) pair's cutoff and the
// (n1, n2) pair's angular function.
func (ev *Evaluator) bondOrderAtom(
	n1 int, types []int, xs []geom.Vec, nt *neighbor.Table,
) {
	N := len(xs)
	t1 := types[n1]

	for i1 := 0; i1 < nt.Counts[n1]; i1++ {
		n2 := nt.List[i1*N+n1]
		c12 := ev.params.pair(t1, types[n2])

		var x12 geom.Vec
		ev.box.Displacement(&xs[n1], &xs[n2], &x12)
		d12 := x12.Norm()

		zeta := 0.0
		for i2 := 0; i2 < nt.Counts[n1]; i2++ {
			n3 := nt.List[i2*N+n1]
			if n3 == n2 {
				continue
			}
			c13 := ev.params.pair(t1, types[n3])

			var x13 geom.Vec
			ev.box.Displacement(&xs[n1], &xs[n3], &x13)
			d13 := x13.Norm()

			cos123 := x12.Dot(&x13) / (d12 * d13)
			g123, _ := c12.gGp(cos123)
			zeta += c13.fcOnly(d13) * g123
		}

		var b12, bp12 float64
		if zeta < zetaMin {
			b12, bp12 = 1, 0
		} else {
			bzn := math.Pow(c12.beta*zeta, c12.n)
			b12 = math.Pow(1+bzn, c12.minusHalfOverN)
			bp12 = -b12 * 0.5 * bzn / ((1 + bzn) * zeta)
		}

		ev.b[i1*N+n1] = b12
		ev.bp[i1*N+n1] = bp12
	}
}

// forceAtom is pass 2 for a single atom: for every neighbor slot of n1 it
// combines the two-body force with the three-body angular correction into a
// directed partial force, and accumulates n1's potential energy. It reads
// bond-order derivatives from n1's own pass-1 slots only, so it may run for
// different atoms in any order once pass 1 has finished everywhere.
func (ev *Evaluator) forceAtom(
	n1 int, types []int, xs []geom.Vec, nt *neighbor.Table, pe []float64,
) {
	N := len(xs)
	t1 := types[n1]
	peSum := 0.0

	for i1 := 0; i1 < nt.Counts[n1]; i1++ {
		n2 := nt.List[i1*N+n1]
		c12 := ev.params.pair(t1, types[n2])

		var x12 geom.Vec
		ev.box.Displacement(&xs[n1], &xs[n2], &x12)
		d12 := x12.Norm()
		d12inv := 1 / d12

		fc12, fcp12 := c12.fcFcp(d12)
		fa12, fap12 := c12.faFap(d12)
		fr12, frp12 := c12.frFrp(d12)
		b12 := ev.b[i1*N+n1]
		bp12 := ev.bp[i1*N+n1]

		// Two-body part. The halves account for the bond being visited from
		// both ends.
		peSum += fc12 * (fr12 - b12*fa12) * 0.5
		factor := (fcp12*(fr12-b12*fa12) + fc12*(frp12-b12*fap12)) *
			d12inv * 0.5
		f12x := x12[0] * factor
		f12y := x12[1] * factor
		f12z := x12[2] * factor

		// Three-body correction. Every remaining neighbor n3 contributes an
		// angular-derivative term through the gradient of cos123 with respect
		// to x12 and a radial term through the cutoff of the (n1, n2) bond.
		// Each bond's screening sum carries its own pair's angular function,
		// so the n2 bond's derivative takes g from c12 and the n3 bond's
		// takes g from c13.
		for i2 := 0; i2 < nt.Counts[n1]; i2++ {
			n3 := nt.List[i2*N+n1]
			if n3 == n2 {
				continue
			}
			c13 := ev.params.pair(t1, types[n3])

			var x13 geom.Vec
			ev.box.Displacement(&xs[n1], &xs[n3], &x13)
			d13 := x13.Norm()

			fc13 := c13.fcOnly(d13)
			fa13 := c13.faOnly(d13)
			bp13 := ev.bp[i2*N+n1]

			oneOverD12D13 := 1 / (d12 * d13)
			cos123 := x12.Dot(&x13) * oneOverD12D13
			cos123OverD12D12 := cos123 * d12inv * d12inv
			_, gp123 := c12.gGp(cos123)
			g13, gp13 := c13.gGp(cos123)

			dc := (-bp12*fc12*fa12*fc13*gp123 -
				bp13*fc13*fa13*fc12*gp13) * 0.5
			dr := -bp13 * fc13 * fa13 * fcp12 * g13 * d12inv * 0.5

			f12x += x12[0]*dr + dc*(x13[0]*oneOverD12D13-x12[0]*cos123OverD12D12)
			f12y += x12[1]*dr + dc*(x13[1]*oneOverD12D13-x12[1]*cos123OverD12D12)
			f12z += x12[2]*dr + dc*(x13[2]*oneOverD12D13-x12[2]*cos123OverD12D12)
		}

		ev.f12x[i1*N+n1] = f12x
		ev.f12y[i1*N+n1] = f12y
		ev.f12z[i1*N+n1] = f12z
	}

	pe[n1] = peSum
}
