package bias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdforge/gobop/geom"
)

// recordEngine records the steps it was coupled on and optionally perturbs
// forces or requests a stop.
type recordEngine struct {
	steps    []int
	stopAt   int
	addForce float64
	closed   bool
}

func (e *recordEngine) Couple(
	step int, xs []geom.Vec, f []geom.Vec, virial *[6]float64,
) bool {
	e.steps = append(e.steps, step)
	for i := range f {
		f[i][0] += e.addForce
	}
	return e.stopAt != 0 && step >= e.stopAt
}

func (e *recordEngine) Close() error {
	e.closed = true
	return nil
}

func TestSessionCadence(t *testing.T) {
	eng := &recordEngine{}
	s, err := NewSession(eng, 3)
	require.NoError(t, err)

	xs := make([]geom.Vec, 2)
	f := make([]geom.Vec, 2)
	var virial [6]float64

	for i := 0; i < 10; i++ {
		assert.False(t, s.Step(xs, f, &virial))
	}
	assert.Equal(t, []int{3, 6, 9}, eng.steps)
}

func TestSessionForcePerturbation(t *testing.T) {
	eng := &recordEngine{addForce: 1.5}
	s, err := NewSession(eng, 1)
	require.NoError(t, err)

	xs := make([]geom.Vec, 1)
	f := []geom.Vec{{2, 0, 0}}
	var virial [6]float64

	s.Step(xs, f, &virial)
	assert.Equal(t, 3.5, f[0][0])
}

func TestSessionStop(t *testing.T) {
	eng := &recordEngine{stopAt: 4}
	s, err := NewSession(eng, 2)
	require.NoError(t, err)

	xs := make([]geom.Vec, 1)
	f := make([]geom.Vec, 1)
	var virial [6]float64

	assert.False(t, s.Step(xs, f, &virial)) // step 1
	assert.False(t, s.Step(xs, f, &virial)) // step 2, coupled
	assert.False(t, s.Step(xs, f, &virial)) // step 3
	assert.True(t, s.Step(xs, f, &virial))  // step 4, coupled, stops
	assert.True(t, s.Stopped())

	// A stopped session never couples again.
	assert.True(t, s.Step(xs, f, &virial))
	assert.Equal(t, []int{2, 4}, eng.steps)
}

func TestSessionClose(t *testing.T) {
	eng := &recordEngine{}
	s, err := NewSession(eng, 1)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.True(t, eng.closed)
}

func TestSessionValidation(t *testing.T) {
	_, err := NewSession(nil, 1)
	assert.Error(t, err)
	_, err = NewSession(&recordEngine{}, 0)
	assert.Error(t, err)
	_, err = NewSession(&recordEngine{}, -5)
	assert.Error(t, err)
}

func TestRescale(t *testing.T) {
	r := &Rescale{Factors: [6]float64{2, 2, 2, 1, 1, 1}}
	virial := [6]float64{1, 2, 3, 4, 5, 6}

	stop := r.Couple(1, nil, nil, &virial)
	assert.False(t, stop)
	assert.Equal(t, [6]float64{2, 4, 6, 4, 5, 6}, virial)
}
