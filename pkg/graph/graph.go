package graph

// NodeStatus reports the outcome of [Graph.AddNode].
// Adding a node never fails; the status makes the idempotent no-op
// observable for callers that care (most ignore it).
type NodeStatus int

const (
	// NodeAdded means the label was new and a fresh index was assigned.
	NodeAdded NodeStatus = iota
	// NodeExists means the label was already present and nothing changed.
	NodeExists
)

// EdgeStatus reports the outcome of [Graph.AddEdge].
// Adding an edge never fails; unknown endpoints are silently dropped
// and reported as [EdgeUnknownEndpoint].
type EdgeStatus int

const (
	// EdgeAdded means the edge was set for the first time.
	EdgeAdded EdgeStatus = iota
	// EdgeExists means the edge was already present and nothing changed.
	EdgeExists
	// EdgeUnknownEndpoint means src or dst is not a known label.
	// The edge is dropped and the adjacency matrix is untouched.
	EdgeUnknownEndpoint
)

// Graph is a directed, unweighted graph over string-labeled nodes.
// Each label is assigned a dense integer index in insertion order, and
// edges live in a square boolean adjacency matrix that grows with the
// node count. Nodes cannot be removed or renumbered.
//
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent use; callers needing concurrent
// computations must use independent Graph instances.
type Graph struct {
	index  map[string]int // label -> adjacency matrix index
	labels []string       // index -> label, insertion order
	adj    [][]bool       // adj[i][j]: edge from node i to node j
	edges  int
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode adds a node with the given label. If the label is already
// present the call is a no-op and returns [NodeExists]. Otherwise the
// node receives index NodeCount() (0-based insertion order) and the
// adjacency matrix grows by one row and one column, preserving all
// existing entries.
func (g *Graph) AddNode(label string) NodeStatus {
	if _, ok := g.index[label]; ok {
		return NodeExists
	}

	g.index[label] = len(g.labels)
	g.labels = append(g.labels, label)

	// Grow every existing row by one column, then append the new row.
	n := len(g.labels)
	for i := range g.adj {
		g.adj[i] = append(g.adj[i], false)
	}
	g.adj = append(g.adj, make([]bool, n))

	return NodeAdded
}

// AddEdge sets the directed edge src→dst. Unknown labels make the call
// a no-op returning [EdgeUnknownEndpoint]; a pre-existing edge makes it
// a no-op returning [EdgeExists]. Self-loops (src == dst) are allowed.
func (g *Graph) AddEdge(src, dst string) EdgeStatus {
	si, ok := g.index[src]
	if !ok {
		return EdgeUnknownEndpoint
	}
	di, ok := g.index[dst]
	if !ok {
		return EdgeUnknownEndpoint
	}
	if g.adj[si][di] {
		return EdgeExists
	}
	g.adj[si][di] = true
	g.edges++
	return EdgeAdded
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.labels) }

// EdgeCount returns the number of distinct edges in the graph.
func (g *Graph) EdgeCount() int { return g.edges }

// Labels returns all node labels in index order.
// The returned slice is a copy and may be modified freely.
func (g *Graph) Labels() []string {
	out := make([]string, len(g.labels))
	copy(out, g.labels)
	return out
}

// Index returns the dense index assigned to label and true,
// or 0 and false if the label is unknown.
func (g *Graph) Index(label string) (int, bool) {
	i, ok := g.index[label]
	return i, ok
}

// Label returns the label at index i and true, or "" and false if i is
// out of range.
func (g *Graph) Label(i int) (string, bool) {
	if i < 0 || i >= len(g.labels) {
		return "", false
	}
	return g.labels[i], true
}

// HasEdge reports whether the directed edge src→dst exists.
// Unknown labels report false.
func (g *Graph) HasEdge(src, dst string) bool {
	si, ok := g.index[src]
	if !ok {
		return false
	}
	di, ok := g.index[dst]
	if !ok {
		return false
	}
	return g.adj[si][di]
}

// OutDegree returns the number of outgoing edges from node index i
// (the sum of row i of the adjacency matrix). Out-of-range indices
// report 0.
func (g *Graph) OutDegree(i int) int {
	if i < 0 || i >= len(g.adj) {
		return 0
	}
	d := 0
	for _, set := range g.adj[i] {
		if set {
			d++
		}
	}
	return d
}

// Edges returns all edges as [src, dst] label pairs, ordered by source
// index then target index. The result is deterministic for a given
// insertion history.
func (g *Graph) Edges() [][2]string {
	var out [][2]string
	for i, row := range g.adj {
		for j, set := range row {
			if set {
				out = append(out, [2]string{g.labels[i], g.labels[j]})
			}
		}
	}
	return out
}

// Adjacency returns row i of the adjacency matrix as a read-only view.
// The returned slice must not be modified. Out-of-range indices return nil.
func (g *Graph) Adjacency(i int) []bool {
	if i < 0 || i >= len(g.adj) {
		return nil
	}
	return g.adj[i]
}
