/*package neighbor defines the fixed-stride neighbor table consumed by the
force kernels. The package only stores and serves neighbor relations;
building them belongs to the caller.
*/
package neighbor

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// Table lists, for every atom, the indices of its neighbors. The index list
// is flattened with a fixed stride: the neighbor in slot s of atom n lives at
// List[s*N + n], where N is the atom count. Slots at or past Counts[n] are
// ignored. The same addressing scheme is used by the per-bond scratch caches
// of the force kernels.
//
// Relations are directed. j appearing in i's list does not imply that i
// appears in j's list.
type Table struct {
	Counts []int
	List   []int
	Stride int
}

// New creates an empty neighbor table for n atoms with the given maximum
// neighbor count per atom.
func New(n, stride int) (*Table, error) {
	if n <= 0 {
		return nil, fmt.Errorf("Atom count is %d, but must be positive.", n)
	}
	if stride <= 0 {
		return nil, fmt.Errorf(
			"Neighbor stride is %d, but must be positive.", stride,
		)
	}

	return &Table{
		Counts: make([]int, n),
		List:   make([]int, n*stride),
		Stride: stride,
	}, nil
}

// Len returns the number of atoms the table spans.
func (t *Table) Len() int { return len(t.Counts) }

// At returns the neighbor in the given slot of atom n.
func (t *Table) At(n, slot int) int {
	return t.List[slot*len(t.Counts)+n]
}

// Add appends j to atom i's neighbor list.
func (t *Table) Add(i, j int) error {
	n := len(t.Counts)
	if i < 0 || i >= n || j < 0 || j >= n {
		return fmt.Errorf(
			"Neighbor pair (%d, %d) is out of range for %d atoms.", i, j, n,
		)
	}
	if t.Counts[i] == t.Stride {
		return fmt.Errorf(
			"Atom %d already has %d neighbors, the table's maximum.",
			i, t.Stride,
		)
	}

	t.List[t.Counts[i]*n+i] = j
	t.Counts[i]++
	return nil
}

// AddMutual appends j to i's list and i to j's list.
func (t *Table) AddMutual(i, j int) error {
	if err := t.Add(i, j); err != nil {
		return err
	}
	return t.Add(j, i)
}

// ReadPairs reads a neighbor table for n atoms from a two-column text file.
// Every line "i j" adds j to atom i's list. A mutual relation takes two
// lines, one per direction.
func ReadPairs(fname string, n, stride int) (*Table, error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, err
	}

	t, err := New(n, stride)
	if err != nil {
		return nil, err
	}

	is, js := cols[0], cols[1]
	for line := range is {
		if err := t.Add(int(is[line]), int(js[line])); err != nil {
			return nil, fmt.Errorf("%s, line %d: %s", fname, line+1, err)
		}
	}

	return t, nil
}
