/*package io reads run configuration files and the whitespace-table input and
output formats of the force pipeline.
*/
package io

const (
	ExampleForcesFile = `[Forces]

#######################
# Required Parameters #
#######################

# Tersoff-mini parameter file: one line per ordered type pair, nine
# whitespace-separated fields per line in the order
#   d0 a r0 s beta n h r1 r2
# For T atom types the file has T*T lines, pair (i, j) on line i*T + j + 1.
ParamFile = path/to/potential.txt

# Number of atom types covered by the parameter file.
Types = 1

# Positions file: one line per atom with four fields, "type x y z". Type
# tags run from 0 to Types-1.
Positions = path/to/positions.txt

# Neighbor pair file: one "i j" line per directed neighbor relation. Forces
# are only symmetric when every relation appears in both directions.
Pairs = path/to/pairs.txt

# File the per-atom forces, energies, and virials are written to.
Output = path/to/forces.txt

# Edge lengths of the periodic cell.
XWidth = 20.0
YWidth = 20.0
ZWidth = 20.0

# Largest neighbor count of any atom in the pair file.
MaxNeighbors = 4

#######################
# Optional Parameters #
#######################

# Number of force evaluations to run. More than one is only useful together
# with a [Bias] section. Default is 1.
# Evaluations = 1

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`

	ExampleBiasFile = `[Bias]
# Couples the run to the built-in virial-rescaling engine every Interval
# evaluations. External engines are linked in programmatically instead.

Interval = 10

# Per-component multiplicative factors applied to the global virial, in the
# order xx yy zz xy xz yz. Default is 1 for each.
# XXFactor = 1.0
# YYFactor = 1.0
# ZZFactor = 1.0
# XYFactor = 1.0
# XZFactor = 1.0
# YZFactor = 1.0`
)

// SharedConfig holds the keys every mode understands.
type SharedConfig struct {
	// Optional
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

// ForcesConfig configures a force evaluation run.
type ForcesConfig struct {
	SharedConfig

	// Required
	ParamFile, Positions, Pairs, Output string
	Types                               int
	XWidth, YWidth, ZWidth              float64
	MaxNeighbors                        int

	// Optional
	Evaluations int
}

func (con *ForcesConfig) ValidParamFile() bool {
	return con.ParamFile != ""
}
func (con *ForcesConfig) ValidPositions() bool {
	return con.Positions != ""
}
func (con *ForcesConfig) ValidPairs() bool {
	return con.Pairs != ""
}
func (con *ForcesConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *ForcesConfig) ValidTypes() bool {
	return con.Types > 0
}
func (con *ForcesConfig) ValidWidths() bool {
	return con.XWidth > 0 && con.YWidth > 0 && con.ZWidth > 0
}
func (con *ForcesConfig) ValidMaxNeighbors() bool {
	return con.MaxNeighbors > 0
}
func (con *ForcesConfig) ValidEvaluations() bool {
	return con.Evaluations > 0
}

// BiasConfig configures the optional coupling to the built-in
// virial-rescaling engine.
type BiasConfig struct {
	Interval int

	XXFactor, YYFactor, ZZFactor float64
	XYFactor, XZFactor, YZFactor float64
}

func (con *BiasConfig) ValidInterval() bool {
	return con.Interval > 0
}

// Factors collects the six rescale factors in virial component order.
func (con *BiasConfig) Factors() [6]float64 {
	return [6]float64{
		con.XXFactor, con.YYFactor, con.ZZFactor,
		con.XYFactor, con.XZFactor, con.YZFactor,
	}
}

// ForcesWrapper is the struct gcfg reads a [Forces] config file into.
type ForcesWrapper struct {
	Forces ForcesConfig
	Bias   BiasConfig
}

// DefaultForcesWrapper returns a wrapper with the optional keys at their
// defaults.
func DefaultForcesWrapper() *ForcesWrapper {
	con := ForcesConfig{}
	con.Evaluations = 1
	bias := BiasConfig{
		XXFactor: 1, YYFactor: 1, ZZFactor: 1,
		XYFactor: 1, XZFactor: 1, YZFactor: 1,
	}
	return &ForcesWrapper{con, bias}
}
