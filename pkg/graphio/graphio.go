// Package graphio provides the node-link JSON serialization for graphs.
//
// This is the canonical wire format used by graph files on disk and by
// the CLI:
//
//	{
//	  "nodes": [{"id": "A"}, {"id": "B"}],
//	  "edges": [{"from": "A", "to": "B"}]
//	}
//
// Use [ToGraph]/[FromGraph] to convert between the serialization form
// and the in-memory [graph.Graph]. Conversion follows the engine's edge
// semantics: duplicate nodes and edges are collapsed, and edges naming
// unknown labels are dropped rather than rejected - [Stats] reports how
// many of each a document contained.
package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/surfrank/surfrank/pkg/graph"
)

// Node is a serialized graph node.
type Node struct {
	ID string `json:"id"`
}

// Edge is a serialized directed edge between two node labels.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Document is the serialization format for a graph.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Stats reports what [ToGraph] did with a document's entries.
// Dropped and duplicate entries are not errors - the engine's contract
// is to absorb them silently - but callers may want to warn about them.
type Stats struct {
	DuplicateNodes int // nodes whose label had already been added
	DuplicateEdges int // edges already present in the graph
	DroppedEdges   int // edges referencing unknown labels
}

// ToGraph builds a [graph.Graph] from a document. Nodes are inserted in
// document order, so indices match the document's node order.
func ToGraph(doc Document) (*graph.Graph, Stats) {
	g := graph.New()
	var stats Stats

	for _, n := range doc.Nodes {
		if g.AddNode(n.ID) == graph.NodeExists {
			stats.DuplicateNodes++
		}
	}
	for _, e := range doc.Edges {
		switch g.AddEdge(e.From, e.To) {
		case graph.EdgeExists:
			stats.DuplicateEdges++
		case graph.EdgeUnknownEndpoint:
			stats.DroppedEdges++
		}
	}
	return g, stats
}

// FromGraph converts a graph to its serialization form. Nodes appear in
// index order and edges in source-then-target index order, so the output
// is deterministic for a given insertion history.
func FromGraph(g *graph.Graph) Document {
	doc := Document{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}
	for _, label := range g.Labels() {
		doc.Nodes = append(doc.Nodes, Node{ID: label})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, Edge{From: e[0], To: e[1]})
	}
	return doc
}

// Marshal serializes a document to indented JSON bytes.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := write(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes JSON bytes to a document.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// Read decodes a JSON document from r.
func Read(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// Write encodes a document as indented JSON to w.
func Write(doc Document, w io.Writer) error {
	return write(doc, w)
}

// ReadFile reads and decodes a JSON graph file.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes a document to a JSON file with 0644 permissions.
func WriteFile(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return write(doc, f)
}

func write(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
