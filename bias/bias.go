/*package bias couples a running simulation to an external enhanced-sampling
engine on a fixed step cadence. The engine itself lives outside this module;
the package only carries the boundary: at every coupling step the engine sees
the atom positions, may overwrite the per-atom forces in place, may rescale
the global virial per component, and may ask the simulation to stop.
*/
package bias

import (
	"fmt"

	"github.com/mdforge/gobop/geom"
)

// Engine is the external bias-force engine. Couple is invoked synchronously
// between force evaluations, never concurrently with one. xs is read-only;
// f and virial may be modified in place. Returning true requests that the
// simulation stop.
type Engine interface {
	Couple(step int, xs []geom.Vec, f []geom.Vec, virial *[6]float64) bool
}

// Session ties an Engine to a simulation run. It replaces ambient global
// state (step counters, plugin handles) with an explicit object created
// before the first step and closed after the last.
type Session struct {
	engine   Engine
	interval int
	step     int
	stopped  bool
}

// NewSession creates a coupling session which invokes engine every interval
// simulation steps.
func NewSession(engine Engine, interval int) (*Session, error) {
	if engine == nil {
		return nil, fmt.Errorf("Bias session needs an engine.")
	}
	if interval <= 0 {
		return nil, fmt.Errorf(
			"Bias interval is %d steps, but must be positive.", interval,
		)
	}
	return &Session{engine: engine, interval: interval}, nil
}

// Step advances the session's step counter and, on coupling steps, hands the
// current forces and virial to the engine. It returns true once the engine
// has requested a stop; the forces and virial are then left as the engine's
// final values.
func (s *Session) Step(xs []geom.Vec, f []geom.Vec, virial *[6]float64) bool {
	if s.stopped {
		return true
	}

	s.step++
	if s.step%s.interval != 0 {
		return false
	}

	if s.engine.Couple(s.step, xs, f, virial) {
		s.stopped = true
	}
	return s.stopped
}

// Stopped reports whether the engine has requested a stop.
func (s *Session) Stopped() bool { return s.stopped }

// Close tears the session down, closing the engine if it owns external
// resources.
func (s *Session) Close() error {
	if closer, ok := s.engine.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// Rescale is a minimal built-in Engine which multiplies every global virial
// component by a fixed factor and leaves the forces untouched.
type Rescale struct {
	Factors [6]float64
}

// Couple applies the per-component factors to the virial. It never requests
// a stop.
func (r *Rescale) Couple(
	step int, xs []geom.Vec, f []geom.Vec, virial *[6]float64,
) bool {
	for k := 0; k < 6; k++ {
		virial[k] *= r.Factors[k]
	}
	return false
}
