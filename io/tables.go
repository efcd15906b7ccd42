package io

import (
	"fmt"
	goio "io"
	"os"

	"github.com/phil-mansfield/table"

	"github.com/mdforge/gobop/geom"
)

// ReadPositions reads a positions file with one line per atom and four
// whitespace-separated fields, "type x y z".
func ReadPositions(fname string) (types []int, xs []geom.Vec, err error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return nil, nil, err
	}

	ts := cols[0]
	types = make([]int, len(ts))
	xs = make([]geom.Vec, len(ts))
	for i := range ts {
		types[i] = int(ts[i])
		xs[i] = geom.Vec{cols[1][i], cols[2][i], cols[3][i]}
	}

	return types, xs, nil
}

// WriteForces writes the per-atom output table: position, force, potential
// energy, and the six virial components per line.
func WriteForces(
	fname string, xs, f []geom.Vec, pe []float64, virial [][6]float64,
) error {
	file, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer file.Close()

	printForces(file, xs, f, pe, virial)
	return nil
}

func printForces(
	w goio.Writer, xs, f []geom.Vec, pe []float64, virial [][6]float64,
) {
	fmt.Fprintln(w, "# x y z fx fy fz pe vxx vyy vzz vxy vxz vyz")
	for i := range xs {
		fmt.Fprintf(
			w, "%12.7g %12.7g %12.7g %12.7g %12.7g %12.7g %12.7g",
			xs[i][0], xs[i][1], xs[i][2], f[i][0], f[i][1], f[i][2], pe[i],
		)
		for k := 0; k < 6; k++ {
			fmt.Fprintf(w, " %12.7g", virial[i][k])
		}
		fmt.Fprintln(w)
	}
}
