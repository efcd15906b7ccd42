package neighbor

import (
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndAt(t *testing.T) {
	nt, err := New(4, 3)
	require.NoError(t, err)

	require.NoError(t, nt.Add(0, 1))
	require.NoError(t, nt.Add(0, 2))
	require.NoError(t, nt.Add(3, 0))

	assert.Equal(t, 2, nt.Counts[0])
	assert.Equal(t, 1, nt.At(0, 0))
	assert.Equal(t, 2, nt.At(0, 1))
	assert.Equal(t, 0, nt.Counts[1])
	assert.Equal(t, 0, nt.At(3, 0))
}

func TestAddMutual(t *testing.T) {
	nt, err := New(3, 2)
	require.NoError(t, err)
	require.NoError(t, nt.AddMutual(0, 2))

	assert.Equal(t, 2, nt.At(0, 0))
	assert.Equal(t, 0, nt.At(2, 0))
}

func TestAddRejectsOverflowAndRange(t *testing.T) {
	nt, err := New(2, 1)
	require.NoError(t, err)

	require.NoError(t, nt.Add(0, 1))
	assert.Error(t, nt.Add(0, 1), "stride overflow")
	assert.Error(t, nt.Add(0, 5), "out-of-range neighbor")
	assert.Error(t, nt.Add(-1, 0), "out-of-range atom")
}

func TestNewRejectsBadShape(t *testing.T) {
	_, err := New(0, 4)
	assert.Error(t, err)
	_, err = New(4, 0)
	assert.Error(t, err)
}

func TestReadPairs(t *testing.T) {
	dir, err := ioutil.TempDir("", "neighbor_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fname := path.Join(dir, "pairs.txt")
	text := "0 1\n1 0\n1 2\n2 1\n"
	require.NoError(t, ioutil.WriteFile(fname, []byte(text), 0666))

	nt, err := ReadPairs(fname, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 1}, nt.Counts)
	assert.Equal(t, 1, nt.At(0, 0))
	assert.Equal(t, 0, nt.At(1, 0))
	assert.Equal(t, 2, nt.At(1, 1))
	assert.Equal(t, 1, nt.At(2, 0))
}
