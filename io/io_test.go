package io

import (
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gcfg.v1"

	"github.com/mdforge/gobop/geom"
)

func TestExampleForcesFileParses(t *testing.T) {
	wrap := DefaultForcesWrapper()
	require.NoError(t, gcfg.ReadStringInto(wrap, ExampleForcesFile))

	con := &wrap.Forces
	assert.True(t, con.ValidParamFile())
	assert.True(t, con.ValidPositions())
	assert.True(t, con.ValidPairs())
	assert.True(t, con.ValidOutput())
	assert.True(t, con.ValidTypes())
	assert.True(t, con.ValidWidths())
	assert.True(t, con.ValidMaxNeighbors())
	assert.Equal(t, 1, con.Evaluations, "default evaluation count")
	assert.False(t, con.ValidLogFile())
}

func TestExampleBiasFileParses(t *testing.T) {
	wrap := DefaultForcesWrapper()
	require.NoError(t, gcfg.ReadStringInto(wrap, ExampleBiasFile))

	con := &wrap.Bias
	assert.True(t, con.ValidInterval())
	assert.Equal(t, 10, con.Interval)
	assert.Equal(t, [6]float64{1, 1, 1, 1, 1, 1}, con.Factors(),
		"factors default to the identity")
}

func TestBiasIntervalDefaultsOff(t *testing.T) {
	wrap := DefaultForcesWrapper()
	assert.False(t, wrap.Bias.ValidInterval())
}

func TestReadPositions(t *testing.T) {
	dir, err := ioutil.TempDir("", "io_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fname := path.Join(dir, "positions.txt")
	text := "0 1.0 2.0 3.0\n1 4.5 5.5 6.5\n"
	require.NoError(t, ioutil.WriteFile(fname, []byte(text), 0666))

	types, xs, err := ReadPositions(fname)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, types)
	assert.Equal(t, []geom.Vec{{1, 2, 3}, {4.5, 5.5, 6.5}}, xs)
}

func TestWriteForces(t *testing.T) {
	dir, err := ioutil.TempDir("", "io_test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fname := path.Join(dir, "forces.txt")
	xs := []geom.Vec{{1, 2, 3}}
	f := []geom.Vec{{-0.5, 0, 0.5}}
	pe := []float64{-1.25}
	virial := [][6]float64{{1, 2, 3, 4, 5, 6}}

	require.NoError(t, WriteForces(fname, xs, f, pe, virial))

	text, err := ioutil.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(text), "# x y z fx fy fz pe")
	assert.Contains(t, string(text), "-1.25")
}
