package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/mdforge/gobop/potential"
)

// paircurve sweeps the isolated-pair separation of one type pair and plots
// the two-body energy and radial force curves.
func main() {
	if len(os.Args) != 6 {
		log.Fatalf(
			"Required file use: $ %s param_file types t1 t2 out_png",
			os.Args[0],
		)
	}

	paramFile := os.Args[1]
	typeCount := parseInt(os.Args[2], "types")
	t1 := parseInt(os.Args[3], "t1")
	t2 := parseInt(os.Args[4], "t2")
	out := os.Args[5]

	if t1 < 0 || t1 >= typeCount || t2 < 0 || t2 >= typeCount {
		log.Fatalf(
			"Pair (%d, %d) is out of range for %d types.", t1, t2, typeCount,
		)
	}

	tab, err := potential.ReadTable(paramFile, typeCount)
	if err != nil {
		log.Fatal(err.Error())
	}

	// Start the sweep well inside the repulsive wall and end at the global
	// cutoff, past which both curves are identically zero.
	bins := 500
	dMin, dMax := 0.05*tab.Cutoff(), tab.Cutoff()
	ds := make([]float64, bins)
	es := make([]float64, bins)
	fs := make([]float64, bins)
	for i := range ds {
		ds[i] = dMin + (dMax-dMin)*float64(i)/float64(bins-1)
		es[i], fs[i] = tab.PairEnergy(t1, t2, ds[i])
	}

	plt.Reset()
	plt.Figure()
	plt.Plot(ds, es, "b", plt.LW(2))
	plt.Plot(ds, fs, "r", plt.LW(2))
	plt.XLabel(`$d$`, plt.FontSize(16))
	plt.YLabel(`$U(d)$, $-dU/dd$`, plt.FontSize(16))
	plt.Title(fmt.Sprintf("Pair (%d, %d)", t1, t2))
	plt.Grid(plt.Axis("both"))
	plt.SaveFig(out)
	plt.Execute()
}

func parseInt(s, name string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("'%s' is not a valid %s value.", s, name)
	}
	return n
}
