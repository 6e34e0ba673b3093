package solver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/ruasoliveira/yates/logging"
)

var log = logging.Get()

// ErrSolver is returned when the external solver process fails or does not
// produce a result file.
var ErrSolver = errors.New("solver process failed")

// Runner solves one serialized linear program and returns the solver's raw
// result text along with the solve time the solver reported for itself.
type Runner interface {
	Run(ctx context.Context, program string) (result string, solveTime time.Duration, err error)
}

// optimalityTol is the fixed optimality tolerance passed to the solver.
const optimalityTol = "1e-9"

// GurobiRunner runs programs through the Gurobi command line solver. The
// program is written to a scratch file with a randomized collision-checked
// name, and both the scratch program and the solver's result file are
// removed before Run returns, on success and on failure alike.
//
// A GurobiRunner is not safe for concurrent use: concurrent solves must
// each use their own runner (with their own random source), in which case
// the randomized scratch names are what keeps them from colliding on disk.
type GurobiRunner struct {
	// Binary is the solver executable.
	Binary string
	// Method selects the solver's numeric method.
	Method int

	namer scratchNamer
}

// NewGurobiRunner returns a runner writing its scratch files to dir (the
// system temp directory if empty) and naming them with draws from rng.
func NewGurobiRunner(method int, dir string, rng *rand.Rand) *GurobiRunner {
	if dir == "" {
		dir = os.TempDir()
	}
	return &GurobiRunner{
		Binary: "gurobi_cl",
		Method: method,
		namer:  scratchNamer{dir: dir, rng: rng},
	}
}

func (g *GurobiRunner) Run(ctx context.Context, program string) (string, time.Duration, error) {
	lpPath := g.namer.next("edksp", ".lp")
	solPath := strings.TrimSuffix(lpPath, ".lp") + ".sol"
	defer os.Remove(lpPath)
	defer os.Remove(solPath)

	if err := os.WriteFile(lpPath, []byte(program), 0o644); err != nil {
		return "", 0, pkgerrors.Wrap(err, "writing scratch program")
	}

	cmd := exec.CommandContext(ctx, g.Binary,
		fmt.Sprintf("Method=%d", g.Method),
		"OptimalityTol="+optimalityTol,
		"ResultFile="+solPath,
		lpPath,
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", 0, pkgerrors.Wrap(err, "opening solver output")
	}
	if err := cmd.Start(); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrSolver, err)
	}

	solveTime := scanSolveTime(stdout)

	// An abnormal exit must propagate: it is a solver failure, not an
	// empty solution.
	if err := cmd.Wait(); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrSolver, err)
	}

	result, err := os.ReadFile(solPath)
	if err != nil {
		return "", 0, fmt.Errorf("%w: missing result file: %v", ErrSolver, err)
	}
	return string(result), solveTime, nil
}

// scanSolveTime drains the solver's standard output and extracts the
// duration from the last "Solved in N iterations and T seconds" line. The
// line is purely informational: its absence yields zero.
func scanSolveTime(r io.Reader) time.Duration {
	last := time.Duration(0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		log.Debug().Msgf("solver: %s", line)

		var iters int
		var secs float64
		if _, err := fmt.Sscanf(line, "Solved in %d iterations and %f seconds", &iters, &secs); err == nil {
			last = time.Duration(secs * float64(time.Second))
		}
	}
	return last
}

// scratchNamer generates scratch file paths with a random fractional
// suffix, re-drawing while a file with the candidate name already exists.
// The check-then-use gap is tolerated rather than closed: with the
// fractional suffix, collisions between concurrent instances are
// vanishingly rare, and correctness does not depend on atomicity.
type scratchNamer struct {
	dir string
	rng *rand.Rand
}

func (n *scratchNamer) next(prefix, ext string) string {
	for {
		name := fmt.Sprintf("%s_%f%s", prefix, n.rng.Float64(), ext)
		p := filepath.Join(n.dir, name)
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return p
		}
	}
}

// StubRunner is an in-memory Runner for tests. It records the programs it
// receives and returns a fixed result without spawning any process.
type StubRunner struct {
	Result    string
	SolveTime time.Duration
	Err       error

	// Programs collects the programs passed to Run, in order.
	Programs []string
}

func (s *StubRunner) Run(_ context.Context, program string) (string, time.Duration, error) {
	s.Programs = append(s.Programs, program)
	if s.Err != nil {
		return "", 0, s.Err
	}
	return s.Result, s.SolveTime, nil
}
