/*package reduce assembles the directed per-bond partial forces emitted by
the force-assembly pass into symmetric per-atom forces and virials.
*/
package reduce

import (
	"runtime"

	"github.com/mdforge/gobop/geom"
	"github.com/mdforge/gobop/neighbor"
)

// NumCores is the number of worker threads used by Assemble.
var NumCores = runtime.NumCPU()

// Virial component order within the six-element arrays.
const (
	XX = iota
	YY
	ZZ
	XY
	XZ
	YZ
)

// Assemble sums, for every atom, its own outgoing partial forces and the
// matching reverse partial forces of its neighbors, writing per-atom forces
// into f and the six per-atom virial components into virial. The partial
// force arrays are addressed by slot*N + atom, the layout produced by the
// force-assembly pass.
//
// An undirected bond receives exactly two directed contributions when the
// neighbor relation is mutual. When atom j lists i but i does not list j,
// only j's half is applied; symmetric forces therefore require mutual
// neighbor lists.
//
// Every atom writes only its own accumulators and reads the partial-force
// caches read-only, so atoms are processed in parallel without locking. All
// partial forces must exist before this runs.
func Assemble(
	box *geom.Box, xs []geom.Vec, nt *neighbor.Table,
	f12x, f12y, f12z []float64,
	f []geom.Vec, virial [][6]float64,
) {
	workers := NumCores
	if workers > len(xs) {
		workers = len(xs)
	}
	if workers < 1 {
		workers = 1
	}

	out := make(chan int, workers)
	for id := 0; id < workers; id++ {
		go func(worker int) {
			for n1 := worker; n1 < len(xs); n1 += workers {
				assembleAtom(n1, box, xs, nt, f12x, f12y, f12z, f, virial)
			}
			out <- worker
		}(id)
	}
	for i := 0; i < workers; i++ {
		<-out
	}
}

// assembleAtom accumulates atom n1's force and virial from the forward
// partial force of each of its bonds and the reverse partial force stored at
// the neighbor's matching slot.
func assembleAtom(
	n1 int, box *geom.Box, xs []geom.Vec, nt *neighbor.Table,
	f12x, f12y, f12z []float64,
	f []geom.Vec, virial [][6]float64,
) {
	N := len(xs)
	fx, fy, fz := 0.0, 0.0, 0.0
	var v [6]float64

	for i1 := 0; i1 < nt.Counts[n1]; i1++ {
		n2 := nt.List[i1*N+n1]

		var x12 geom.Vec
		box.Displacement(&xs[n1], &xs[n2], &x12)

		fwdX := f12x[i1*N+n1]
		fwdY := f12y[i1*N+n1]
		fwdZ := f12z[i1*N+n1]

		// Locate n1 in n2's list to pick up the reverse half of the bond.
		revX, revY, revZ := 0.0, 0.0, 0.0
		for i2 := 0; i2 < nt.Counts[n2]; i2++ {
			if nt.List[i2*N+n2] == n1 {
				revX = f12x[i2*N+n2]
				revY = f12y[i2*N+n2]
				revZ = f12z[i2*N+n2]
				break
			}
		}

		dx := fwdX - revX
		dy := fwdY - revY
		dz := fwdZ - revZ

		fx += dx
		fy += dy
		fz += dz

		v[XX] -= 0.5 * x12[0] * dx
		v[YY] -= 0.5 * x12[1] * dy
		v[ZZ] -= 0.5 * x12[2] * dz
		v[XY] -= 0.5 * x12[0] * dy
		v[XZ] -= 0.5 * x12[0] * dz
		v[YZ] -= 0.5 * x12[1] * dz
	}

	f[n1] = geom.Vec{fx, fy, fz}
	virial[n1] = v
}

// TotalVirial sums the per-atom virials into the global virial tensor.
func TotalVirial(virial [][6]float64) [6]float64 {
	var total [6]float64
	for i := range virial {
		for k := 0; k < 6; k++ {
			total[k] += virial[i][k]
		}
	}
	return total
}

// TotalEnergy sums the per-atom potential energies.
func TotalEnergy(pe []float64) float64 {
	total := 0.0
	for i := range pe {
		total += pe[i]
	}
	return total
}
