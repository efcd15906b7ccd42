package potential

import (
	"fmt"
	"runtime"

	"github.com/mdforge/gobop/geom"
	"github.com/mdforge/gobop/neighbor"
)

// NumCores is the default number of worker threads used by new Evaluators.
var NumCores = runtime.NumCPU()

// Evaluator computes Tersoff-mini forces for a fixed system shape. It owns
// the per-bond scratch caches shared by the two passes, sized
// stride * atoms and addressed by slot*atoms + atom in both. Each (atom,
// slot) pair owns its cache entries exclusively, so the passes need no
// locking, only the barrier between them.
type Evaluator struct {
	params  *Table
	box     *geom.Box
	atoms   int
	stride  int
	workers int

	// Pass-1 output: bond order and its zeta-derivative per bond slot.
	b, bp []float64
	// Pass-2 output: directed partial force per bond slot.
	f12x, f12y, f12z []float64
}

// NewEvaluator creates an Evaluator for a system of the given atom count and
// neighbor stride, using NumCores worker threads.
func NewEvaluator(
	params *Table, box *geom.Box, atoms, stride int,
) (*Evaluator, error) {
	if atoms <= 0 || stride <= 0 {
		return nil, fmt.Errorf(
			"Evaluator shape (%d atoms, stride %d) must be positive.",
			atoms, stride,
		)
	}

	ev := &Evaluator{
		params: params, box: box,
		atoms: atoms, stride: stride,
		workers: NumCores,
	}

	n := atoms * stride
	ev.b, ev.bp = make([]float64, n), make([]float64, n)
	ev.f12x = make([]float64, n)
	ev.f12y = make([]float64, n)
	ev.f12z = make([]float64, n)

	return ev, nil
}

// SetWorkers overrides the number of worker threads.
func (ev *Evaluator) SetWorkers(workers int) {
	if workers < 1 {
		workers = 1
	}
	ev.workers = workers
}

// Evaluate runs both kernel passes over every atom. types, xs, and pe must
// have the Evaluator's atom count, the table's counts must not exceed the
// Evaluator's stride, and every listed neighbor must be separated from its
// central atom; none of this is re-checked in the hot path. On return pe
// holds the per-atom potential energy and the directed partial forces are
// available through Bonds.
//
// types, xs, and the neighbor table are read-only for the duration of the
// call.
func (ev *Evaluator) Evaluate(
	types []int, xs []geom.Vec, nt *neighbor.Table, pe []float64,
) error {
	if len(xs) != ev.atoms || len(types) != ev.atoms || len(pe) != ev.atoms {
		return fmt.Errorf(
			"Evaluator built for %d atoms, but got %d positions, %d types, "+
				"and %d energy slots.",
			ev.atoms, len(xs), len(types), len(pe),
		)
	}
	if nt.Len() != ev.atoms || nt.Stride > ev.stride {
		return fmt.Errorf(
			"Neighbor table shape (%d atoms, stride %d) does not fit the "+
				"Evaluator's (%d atoms, stride %d).",
			nt.Len(), nt.Stride, ev.atoms, ev.stride,
		)
	}

	out := make(chan int, ev.workers)

	// Pass 1: bond orders. Pass 2 reads the caches written here, so every
	// worker must finish before any pass-2 worker starts.
	for id := 0; id < ev.workers; id++ {
		go ev.chanBondOrder(id, types, xs, nt, out)
	}
	for i := 0; i < ev.workers; i++ {
		<-out
	}

	// Pass 2: partial forces.
	for id := 0; id < ev.workers; id++ {
		go ev.chanForce(id, types, xs, nt, pe, out)
	}
	for i := 0; i < ev.workers; i++ {
		<-out
	}

	return nil
}

// chanBondOrder runs pass 1 for the worker's strided share of the atom range.
func (ev *Evaluator) chanBondOrder(
	worker int, types []int, xs []geom.Vec, nt *neighbor.Table, out chan<- int,
) {
	for n1 := worker; n1 < ev.atoms; n1 += ev.workers {
		ev.bondOrderAtom(n1, types, xs, nt)
	}
	out <- worker
}

// chanForce runs pass 2 for the worker's strided share of the atom range.
func (ev *Evaluator) chanForce(
	worker int, types []int, xs []geom.Vec, nt *neighbor.Table,
	pe []float64, out chan<- int,
) {
	for n1 := worker; n1 < ev.atoms; n1 += ev.workers {
		ev.forceAtom(n1, types, xs, nt, pe)
	}
	out <- worker
}

// Bonds returns the directed partial force caches written by the last
// Evaluate call, addressed by slot*atoms + atom. They are overwritten by the
// next call and must be consumed before it.
func (ev *Evaluator) Bonds() (f12x, f12y, f12z []float64) {
	return ev.f12x, ev.f12y, ev.f12z
}
