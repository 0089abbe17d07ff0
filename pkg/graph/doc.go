// Package graph implements the label-indexed directed graph that feeds
// the PageRank computation in [github.com/surfrank/surfrank/pkg/rank].
//
// # Model
//
// Nodes are identified by caller-supplied string labels, unique within a
// graph. Each label is assigned a dense integer index equal to its
// insertion order, and edges are stored in a square boolean adjacency
// matrix whose dimensions always match the node count on both axes.
// The graph is unweighted: every outgoing edge of a node contributes
// equally when transition probabilities are derived.
//
// # Mutation Semantics
//
// Both mutating operations are total - they never return errors:
//
//   - [Graph.AddNode] is idempotent; re-adding a label is a no-op.
//   - [Graph.AddEdge] silently drops edges whose endpoints are unknown
//     labels, and re-adding an edge is a no-op.
//
// Each returns a status value ([NodeStatus], [EdgeStatus]) so callers can
// observe which case applied without changing the silent-drop contract.
//
// # Usage
//
//	g := graph.New()
//	g.AddNode("A")
//	g.AddNode("B")
//	g.AddEdge("A", "B")
//	g.AddEdge("A", "ghost") // dropped: returns graph.EdgeUnknownEndpoint
//
// The dense matrix representation is O(N²) in memory and suits the small
// graphs this engine targets; beyond a few thousand nodes an adjacency
// list would be the better fit.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Distinct Graph instances share
// no state and may be used from different goroutines freely.
package graph
