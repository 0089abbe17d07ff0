// Package rank computes PageRank scores for directed graphs by damped
// power iteration.
//
// # Algorithm
//
// The computation composes three stages on every call:
//
//  1. Build the row-stochastic transition matrix T from the graph's
//     adjacency matrix: each node splits its probability mass equally
//     across its outgoing edges, and dangling nodes (no outgoing edges)
//     spread theirs uniformly across all N nodes.
//  2. Blend T with the uniform teleportation matrix P into the "Google"
//     matrix G = alpha*T + (1-alpha)*P.
//  3. Iterate r_newᵀ = r_oldᵀ·G from the uniform vector until the L1
//     distance between successive vectors drops below epsilon, or the
//     iteration cap is reached.
//
// Because T and P are row-stochastic, so is G, and each iteration
// preserves total probability mass: the final scores are non-negative
// and sum to 1.
//
// # Usage
//
//	g := graph.New()
//	g.AddNode("A")
//	g.AddNode("B")
//	g.AddEdge("A", "B")
//
//	res, err := rank.Compute(ctx, g, rank.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.ByLabel(), res.Iterations, res.Converged)
//
// The only failure mode is a zero-node graph ([ErrEmptyGraph]) or a
// cancelled context; running out of iterations is a defined terminal
// state reported through Result.Converged.
package rank
