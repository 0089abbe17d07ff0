package rank

import (
	"errors"

	"github.com/surfrank/surfrank/pkg/graph"
)

// ErrEmptyGraph is returned by [Compute] and [TransitionMatrix] when the
// graph has zero nodes. The uniform terms of the transition and
// teleportation matrices are 1/N, which is undefined for N == 0, so the
// degenerate case is rejected before any matrix is built.
var ErrEmptyGraph = errors.New("graph has no nodes")

// TransitionMatrix builds the row-stochastic transition matrix T for g.
//
// For a node i with out-degree d > 0, T[i][j] = adj[i][j] / d: each
// outgoing edge receives an equal share of the row's probability mass.
// For a dangling node (d == 0) the entire row is filled with 1/N,
// redistributing the mass uniformly so none leaks out of the iteration.
//
// Returns [ErrEmptyGraph] if g has zero nodes.
func TransitionMatrix(g *graph.Graph) ([][]float64, error) {
	n := g.NodeCount()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	t := make([][]float64, n)
	uniform := 1.0 / float64(n)

	for i := 0; i < n; i++ {
		row := make([]float64, n)
		deg := g.OutDegree(i)
		if deg == 0 {
			for j := range row {
				row[j] = uniform
			}
		} else {
			share := 1.0 / float64(deg)
			for j, set := range g.Adjacency(i) {
				if set {
					row[j] = share
				}
			}
		}
		t[i] = row
	}
	return t, nil
}

// TeleportationMatrix builds the n×n uniform matrix where every entry is
// 1/n, modelling the random surfer jumping to any node with equal
// probability. Returns nil for n <= 0.
func TeleportationMatrix(n int) [][]float64 {
	if n <= 0 {
		return nil
	}
	uniform := 1.0 / float64(n)
	p := make([][]float64, n)
	for i := range p {
		row := make([]float64, n)
		for j := range row {
			row[j] = uniform
		}
		p[i] = row
	}
	return p
}

// GoogleMatrix builds the damped combination G = alpha*T + (1-alpha)*P
// from the graph's transition and teleportation matrices. Both inputs
// are row-stochastic, so G is as well: each row sums to 1 and the power
// iteration preserves total probability mass.
//
// Returns [ErrEmptyGraph] if g has zero nodes.
func GoogleMatrix(g *graph.Graph, alpha float64) ([][]float64, error) {
	t, err := TransitionMatrix(g)
	if err != nil {
		return nil, err
	}

	n := g.NodeCount()
	p := TeleportationMatrix(n)
	beta := 1 - alpha

	m := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = alpha*t[i][j] + beta*p[i][j]
		}
		m[i] = row
	}
	return m, nil
}
