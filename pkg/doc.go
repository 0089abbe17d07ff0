// Package pkg provides the core libraries for Surfrank PageRank computation.
//
// # Overview
//
// Surfrank ranks the nodes of a directed graph by random-surfer
// importance. The pkg directory is organized into three main areas:
//
//  1. [graph], [rank] - Domain logic (graph store, transition matrices, power iteration)
//  2. [graphio], [render] - Serialization and visualization
//  3. [session], [cache], [config] - Infrastructure for the HTTP API and CLI
//
// # Architecture
//
// The typical data flow through Surfrank:
//
//	Graph JSON / API request
//	         ↓
//	    [graph] package (label index + adjacency matrix)
//	         ↓
//	    [rank] package (Google matrix + power iteration)
//	         ↓
//	    [render] package (score-scaled Graphviz diagrams)
//	         ↓
//	    Scores / SVG / PNG output
//
// # Quick Start
//
// Build a graph and rank its nodes:
//
//	import (
//	    "context"
//	    "github.com/surfrank/surfrank/pkg/graph"
//	    "github.com/surfrank/surfrank/pkg/rank"
//	)
//
//	g := graph.New()
//	g.AddNode("A")
//	g.AddNode("B")
//	g.AddEdge("A", "B")
//
//	res, err := rank.Compute(context.Background(), g, rank.DefaultOptions())
//	if err != nil {
//	    // only an empty graph or a cancelled context fail
//	}
//	for label, score := range res.ByLabel() {
//	    fmt.Printf("%s: %.4f\n", label, score)
//	}
//
// # Main Packages
//
// [graph] - Directed graph store with label-to-index mapping and a dense
// boolean adjacency matrix. Mutations report tagged outcomes instead of
// errors: duplicates are absorbed, unknown edge endpoints are dropped.
//
// [rank] - The PageRank engine. Builds row-stochastic transition
// matrices with dangling-node correction and runs damped power
// iteration to an L1 convergence threshold.
//
// [graphio] - Node-link JSON serialization for graph files and the API.
//
// [render] - Graphviz visualization with node diameters and labels
// scaled by score.
//
// [session] - Session state for the HTTP API with memory and Redis
// backends.
//
// [cache] - File-based artifact cache for rendered diagrams.
//
// [config] - TOML configuration for the server.
//
// [errors] - Coded errors shared across the API surface.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/rank/...     # Specific package
//	go test -run Example       # Examples only
//
// [graph]: https://pkg.go.dev/github.com/surfrank/surfrank/pkg/graph
// [rank]: https://pkg.go.dev/github.com/surfrank/surfrank/pkg/rank
// [graphio]: https://pkg.go.dev/github.com/surfrank/surfrank/pkg/graphio
// [render]: https://pkg.go.dev/github.com/surfrank/surfrank/pkg/render
// [session]: https://pkg.go.dev/github.com/surfrank/surfrank/pkg/session
// [cache]: https://pkg.go.dev/github.com/surfrank/surfrank/pkg/cache
// [config]: https://pkg.go.dev/github.com/surfrank/surfrank/pkg/config
// [errors]: https://pkg.go.dev/github.com/surfrank/surfrank/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/surfrank/surfrank/pkg/buildinfo
package pkg
