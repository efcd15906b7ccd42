package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/mdforge/gobop/bias"
	"github.com/mdforge/gobop/geom"
	"github.com/mdforge/gobop/io"
	"github.com/mdforge/gobop/neighbor"
	"github.com/mdforge/gobop/potential"
	"github.com/mdforge/gobop/reduce"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	// The main function manages input sanitization and calls the secondary
	// main functions for each mode.

	var (
		forcesStr     string
		exampleConfig string
		threads       int
	)
	vars := map[string]*string{
		"Forces":        &forcesStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&threads, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&forcesStr, "Forces", "",
		"Configuration file for [Forces] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Forces' "+
			"and 'Bias'.",
	)

	flag.Parse()

	runtime.GOMAXPROCS(threads)
	potential.NumCores = threads
	reduce.NumCores = threads

	// Figure out the mode and fail with a descriptive error if the user gave
	// incorrect flags.
	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Forces":
		wrap := io.DefaultForcesWrapper()
		err := gcfg.ReadFileInto(wrap, forcesStr)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Forces

		if !con.ValidParamFile() {
			log.Fatal("Invalid/non-existent 'ParamFile' value.")
		} else if !con.ValidPositions() {
			log.Fatal("Invalid/non-existent 'Positions' value.")
		} else if !con.ValidPairs() {
			log.Fatal("Invalid/non-existent 'Pairs' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidTypes() {
			log.Fatal("Invalid/non-existent 'Types' value.")
		} else if !con.ValidWidths() {
			log.Fatal("'XWidth', 'YWidth', and 'ZWidth' must all be positive.")
		} else if !con.ValidMaxNeighbors() {
			log.Fatal("Invalid/non-existent 'MaxNeighbors' value.")
		} else if !con.ValidEvaluations() {
			log.Fatal("'Evaluations' must be positive.")
		}

		forcesMain(con, &wrap.Bias)

	case "ExampleConfig":
		switch exampleConfig {
		case "Forces":
			fmt.Println(io.ExampleForcesFile)
		case "Bias":
			fmt.Println(io.ExampleBiasFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Forces' and 'Bias'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but gobop "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setupIO opens the optional log and profile files of a run.
func setupIO(con *io.ForcesConfig) *FileGroup {
	var err error
	fg := new(FileGroup)

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

// forcesMain runs the force pipeline end to end: parameter table, positions,
// and neighbor pairs in, per-atom forces, energies, and virials out.
func forcesMain(con *io.ForcesConfig, biasCon *io.BiasConfig) {
	fg := setupIO(con)
	defer fg.Close()

	params, err := potential.ReadTable(con.ParamFile, con.Types)
	if err != nil {
		log.Fatal(err.Error())
	}
	log.Printf(
		"Read %d-type parameter table, cutoff %g.",
		params.Types(), params.Cutoff(),
	)

	types, xs, err := io.ReadPositions(con.Positions)
	if err != nil {
		log.Fatal(err.Error())
	}
	for i, tag := range types {
		if tag < 0 || tag >= con.Types {
			log.Fatalf(
				"Atom %d has type %d, but the parameter table only covers "+
					"types 0 through %d.", i, tag, con.Types-1,
			)
		}
	}
	log.Printf("Read %d atoms.", len(xs))

	nt, err := neighbor.ReadPairs(con.Pairs, len(xs), con.MaxNeighbors)
	if err != nil {
		log.Fatal(err.Error())
	}

	box, err := geom.NewBox(con.XWidth, con.YWidth, con.ZWidth)
	if err != nil {
		log.Fatal(err.Error())
	}

	ev, err := potential.NewEvaluator(params, box, len(xs), nt.Stride)
	if err != nil {
		log.Fatal(err.Error())
	}

	var session *bias.Session
	if biasCon.ValidInterval() {
		engine := &bias.Rescale{Factors: biasCon.Factors()}
		session, err = bias.NewSession(engine, biasCon.Interval)
		if err != nil {
			log.Fatal(err.Error())
		}
		defer session.Close()
	}

	f := make([]geom.Vec, len(xs))
	pe := make([]float64, len(xs))
	virial := make([][6]float64, len(xs))

	for eval := 0; eval < con.Evaluations; eval++ {
		if err := ev.Evaluate(types, xs, nt, pe); err != nil {
			log.Fatal(err.Error())
		}
		f12x, f12y, f12z := ev.Bonds()
		reduce.Assemble(box, xs, nt, f12x, f12y, f12z, f, virial)

		if session != nil {
			total := reduce.TotalVirial(virial)
			if session.Step(xs, f, &total) {
				log.Printf("Bias engine stopped the run at evaluation %d.",
					eval+1)
				break
			}
		}

		if (eval+1)%25 == 0 {
			log.Printf("Finished %d/%d evaluations.", eval+1, con.Evaluations)
		}
	}

	log.Printf("Total potential energy: %g", reduce.TotalEnergy(pe))

	if err := io.WriteForces(con.Output, xs, f, pe, virial); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote %s", con.Output)
}
