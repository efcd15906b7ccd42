/*package potential implements the Tersoff-mini bond-order potential: the
per-pair coefficient table derived from physical parameters, the two GPU-style
kernel passes which compute bond orders and directed per-bond partial forces,
and the Evaluator which dispatches them over worker threads.
*/
package potential

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"
)

// Params holds the nine raw physical inputs for one ordered type pair, in
// the order they appear on a parameter file line: the binding energy d0, the
// Morse width a, the equilibrium distance r0, the dimensionless ratio s, the
// bond-order prefactor beta and exponent n, the angular reference cosine h,
// and the inner and outer cutoff radii r1 and r2.
type Params struct {
	D0, A, R0, S float64
	Beta, N, H   float64
	R1, R2       float64
}

// pairCoef is the derived coefficient bundle for one ordered type pair.
type pairCoef struct {
	a, b           float64 // pre-exponential repulsive/attractive coefficients
	lambda, mu     float64 // exponential decay rates
	beta, n, h     float64
	r1, r2         float64
	piFactor       float64
	minusHalfOverN float64
}

// Table is the immutable coefficient table of a Tersoff-mini potential. An
// ordered pair of type tags (i, j), each in [0, Types), is collapsed to the
// linear index i + j, so the reversed pair shares the same entry.
type Table struct {
	types  int
	coef   []pairCoef
	cutoff float64
}

// check validates the raw parameters of one pair. The returned messages are
// aimed at the operator writing the parameter file.
func (p *Params) check() error {
	switch {
	case p.D0 <= 0:
		return fmt.Errorf("binding energy d0 (%g) must be positive", p.D0)
	case p.A <= 0:
		return fmt.Errorf("width parameter a (%g) must be positive", p.A)
	case p.R0 <= 0:
		return fmt.Errorf("equilibrium distance r0 (%g) must be positive", p.R0)
	case p.S <= 1:
		return fmt.Errorf("ratio s (%g) must exceed 1", p.S)
	case p.Beta < 0:
		return fmt.Errorf("bond-order prefactor beta (%g) must not be "+
			"negative", p.Beta)
	case p.N <= 0:
		return fmt.Errorf("bond-order exponent n (%g) must be positive", p.N)
	case p.H < -1 || p.H > 1:
		return fmt.Errorf("reference cosine h (%g) must be in [-1, 1]", p.H)
	case p.R1 < 0:
		return fmt.Errorf("inner cutoff r1 (%g) must not be negative", p.R1)
	case p.R2 <= p.R1:
		return fmt.Errorf("outer cutoff r2 (%g) must exceed inner cutoff "+
			"r1 (%g)", p.R2, p.R1)
	}
	return nil
}

// derive maps the raw physical parameters onto the coefficient bundle used
// by the kernels.
func (p *Params) derive() pairCoef {
	c := pairCoef{}
	c.lambda = math.Sqrt(2*p.S) * p.A
	c.mu = math.Sqrt(2/p.S) * p.A
	c.a = p.D0 / (p.S - 1) * math.Exp(c.lambda*p.R0)
	c.b = p.S * p.D0 / (p.S - 1) * math.Exp(c.mu*p.R0)
	c.beta, c.n, c.h = p.Beta, p.N, p.H
	c.r1, c.r2 = p.R1, p.R2
	c.piFactor = math.Pi / (p.R2 - p.R1)
	c.minusHalfOverN = -0.5 / p.N
	return c
}

// NewTable derives the coefficient table for the given number of atom types.
// params holds one entry per ordered type pair in row-major order, i.e.
// params[i*types + j] describes the pair (i, j), matching the line order of a
// parameter file. A single invalid entry aborts construction.
func NewTable(types int, params []Params) (*Table, error) {
	if types <= 0 {
		return nil, fmt.Errorf("Type count is %d, but must be positive.", types)
	}
	if len(params) != types*types {
		return nil, fmt.Errorf(
			"Got %d parameter entries for %d types, but every ordered "+
				"type pair needs one: %d entries.",
			len(params), types, types*types,
		)
	}

	t := &Table{types: types, coef: make([]pairCoef, 2*types-1)}
	for i := 0; i < types; i++ {
		for j := 0; j < types; j++ {
			p := &params[i*types+j]
			if err := p.check(); err != nil {
				return nil, fmt.Errorf(
					"Pair (%d, %d) on line %d: %s.", i, j, i*types+j+1, err,
				)
			}
			t.coef[i+j] = p.derive()
			if p.R2 > t.cutoff {
				t.cutoff = p.R2
			}
		}
	}

	return t, nil
}

// ReadTable reads a parameter file with one line per ordered type pair, nine
// whitespace-separated fields per line in the order d0 a r0 s beta n h r1 r2,
// and derives the coefficient table.
func ReadTable(fname string, types int) (*Table, error) {
	cols, err := table.ReadTable(
		fname, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, nil,
	)
	if err != nil {
		return nil, err
	}

	params := make([]Params, len(cols[0]))
	for line := range params {
		params[line] = Params{
			D0: cols[0][line], A: cols[1][line], R0: cols[2][line],
			S: cols[3][line], Beta: cols[4][line], N: cols[5][line],
			H: cols[6][line], R1: cols[7][line], R2: cols[8][line],
		}
	}

	t, err := NewTable(types, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", fname, err)
	}
	return t, nil
}

// Types returns the number of atom types the table covers.
func (t *Table) Types() int { return t.types }

// Cutoff returns the largest outer cutoff radius over all pairs. Atoms
// farther apart than this never interact.
func (t *Table) Cutoff() float64 { return t.cutoff }

// pair returns the coefficients of the ordered type pair (t1, t2).
func (t *Table) pair(t1, t2 int) *pairCoef { return &t.coef[t1+t2] }

// PairEnergy returns the energy of an isolated pair of the given types at
// separation d, along with the radial force -dU/dd, with the bond order at
// its isolated-pair value of one. Past the equilibrium distance the force is
// negative, pulling the atoms back together.
func (t *Table) PairEnergy(t1, t2 int, d float64) (energy, force float64) {
	c := t.pair(t1, t2)
	fc, fcp := c.fcFcp(d)
	fa, fap := c.faFap(d)
	fr, frp := c.frFrp(d)

	energy = fc * (fr - fa)
	force = -(fcp*(fr-fa) + fc*(frp-fap))
	return energy, force
}
