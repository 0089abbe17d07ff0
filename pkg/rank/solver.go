package rank

import (
	"context"
	"fmt"
	"math"

	"github.com/surfrank/surfrank/pkg/graph"
)

// Default solver parameters. These match the engine's historical
// constants and are applied by [DefaultOptions].
const (
	// DefaultAlpha is the damping factor: the probability of following an
	// actual outgoing edge rather than teleporting uniformly.
	DefaultAlpha = 0.75

	// DefaultEpsilon is the convergence threshold on the L1 distance
	// between successive score vectors.
	DefaultEpsilon = 1e-6

	// DefaultMaxIter caps the number of power iterations when the
	// threshold is never reached.
	DefaultMaxIter = 100
)

// Options configures a single PageRank computation. The zero value is
// not usable - start from [DefaultOptions] and override fields as needed.
type Options struct {
	// Alpha is the damping factor in [0, 1].
	Alpha float64

	// Epsilon is the convergence threshold; iteration stops once the L1
	// distance between successive vectors falls below it.
	Epsilon float64

	// MaxIter caps the iteration count. Hitting the cap is not an error:
	// the result is returned with Converged == false.
	MaxIter int
}

// DefaultOptions returns the documented default parameters
// (alpha 0.75, epsilon 1e-6, 100 iterations).
func DefaultOptions() Options {
	return Options{Alpha: DefaultAlpha, Epsilon: DefaultEpsilon, MaxIter: DefaultMaxIter}
}

// Validate checks that the options describe a well-defined computation.
func (o Options) Validate() error {
	if o.Alpha < 0 || o.Alpha > 1 {
		return fmt.Errorf("alpha must be in [0, 1], got %g", o.Alpha)
	}
	if o.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", o.Epsilon)
	}
	if o.MaxIter <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", o.MaxIter)
	}
	return nil
}

// Result holds the outcome of a PageRank computation. Scores are ordered
// by node index; use [Result.Score] or [Result.ByLabel] to recover them
// by label through the graph's mapping.
type Result struct {
	// Scores is the final probability vector, one entry per node in
	// index order. Entries are non-negative and sum to 1 within
	// floating-point tolerance.
	Scores []float64

	// Iterations is the number of power iterations performed. The
	// iteration that produced the sub-threshold difference counts.
	Iterations int

	// History records the L1 difference produced by each iteration, in
	// order. len(History) == Iterations.
	History []float64

	// Converged reports whether the L1 difference dropped below epsilon
	// before the iteration cap. When false, Iterations equals the cap
	// and Scores holds the last computed vector.
	Converged bool

	labels []string
}

// Score returns the score for the given node label and true, or 0 and
// false if the label is not part of the computed graph.
func (r *Result) Score(label string) (float64, bool) {
	for i, l := range r.labels {
		if l == label {
			return r.Scores[i], true
		}
	}
	return 0, false
}

// ByLabel returns the scores keyed by node label.
func (r *Result) ByLabel() map[string]float64 {
	m := make(map[string]float64, len(r.Scores))
	for i, l := range r.labels {
		m[l] = r.Scores[i]
	}
	return m
}

// Labels returns a copy of the node labels in node index order, the
// same order as Scores.
func (r *Result) Labels() []string {
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}

// Compute runs damped power iteration on g's Google matrix and returns
// the stationary score vector.
//
// The score vector starts uniform at 1/N. G is row-stochastic with
// G[from][to] the probability of moving from one node to another, so
// each iteration propagates mass forward along the rows:
// r_new[to] = Σ_from r_old[from] * G[from][to]. This is the orientation
// that preserves total probability mass; multiplying the other way
// around would fix the uniform vector for every graph. Iteration stops
// when the L1 distance Σ|r_old[i] - r_new[i]| falls below opts.Epsilon
// or opts.MaxIter iterations have run. Reaching the cap is a defined
// terminal state, not an error.
//
// The matrix is rebuilt from the graph's current state on every call;
// nothing is cached between calls. The computation is deterministic for
// a fixed graph and options, and costs O(N²) per iteration.
//
// ctx is checked at each iteration boundary, the only cooperative
// cancellation point the algorithm offers. Returns [ErrEmptyGraph] for a
// zero-node graph and the context error on cancellation.
func Compute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	google, err := GoogleMatrix(g, opts.Alpha)
	if err != nil {
		return nil, err
	}

	n := g.NodeCount()
	scores := make([]float64, n)
	next := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	res := &Result{labels: g.Labels()}
	for res.Iterations < opts.MaxIter {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for to := 0; to < n; to++ {
			sum := 0.0
			for from := 0; from < n; from++ {
				sum += scores[from] * google[from][to]
			}
			next[to] = sum
		}

		diff := 0.0
		for i := range scores {
			diff += math.Abs(scores[i] - next[i])
		}

		scores, next = next, scores
		res.Iterations++
		res.History = append(res.History, diff)

		if diff < opts.Epsilon {
			res.Converged = true
			break
		}
	}

	res.Scores = scores
	return res, nil
}
