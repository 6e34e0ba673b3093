// Package topology models a network as a labeled directed graph whose
// nodes are either switches or hosts.
package topology

import (
	"errors"
	"fmt"
)

// ErrNoIngress is returned when a node has no neighboring switch.
var ErrNoIngress = errors.New("no neighboring switch")

// Kind distinguishes the two node roles in a topology.
type Kind int8

const (
	Switch Kind = iota
	Host
)

// Node is a labeled vertex of the topology.
type Node struct {
	Name string
	Kind Kind
}

// Edge represents a directed edge between two nodes. Capacity is an
// optional attribute carried from the input files; the routing program
// treats every switch-to-switch edge as having unit capacity.
type Edge struct {
	From     int
	To       int
	Capacity int64
}

// Topology represents the network as a directed graph. Nexts[v] contains
// the IDs of the edges leaving node v and Prevs[v] the IDs of the edges
// reaching it. A Topology is immutable for the duration of a solve.
type Topology struct {
	Nodes []Node
	Edges []Edge
	Nexts [][]int
	Prevs [][]int
}

// New creates a new topology with the specified nodes and edges. It is
// important to ensure that edges are only between nodes within the range
// [0, len(nodes)); otherwise, the function will panic.
func New(nodes []Node, edges []Edge) *Topology {
	t := &Topology{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
		Nexts: make([][]int, len(nodes)),
		Prevs: make([][]int, len(nodes)),
	}
	copy(t.Nodes, nodes)
	for i, e := range edges {
		t.Edges[i] = e
		t.Nexts[e.From] = append(t.Nexts[e.From], i)
		t.Prevs[e.To] = append(t.Prevs[e.To], i)
	}
	return t
}

// Name returns the label of node v.
func (t *Topology) Name(v int) string {
	return t.Nodes[v].Name
}

// IsSwitch returns true if node v is a switch.
func (t *Topology) IsSwitch(v int) bool {
	return t.Nodes[v].Kind == Switch
}

// NameIndex returns a new name to node ID lookup table. The table is built
// from scratch on each call so that no state is shared between solves.
func (t *Topology) NameIndex() map[string]int {
	idx := make(map[string]int, len(t.Nodes))
	for v, n := range t.Nodes {
		idx[n.Name] = v
	}
	return idx
}

// Ingress returns the switch adjacent to node v. Hosts are expected to
// have exactly one neighboring switch; if several are present, the one
// reached by the lowest-numbered edge wins. A node without a neighboring
// switch is a malformed topology and yields an error wrapping
// [ErrNoIngress].
func (t *Topology) Ingress(v int) (int, error) {
	for _, e := range t.Nexts[v] {
		if w := t.Edges[e].To; t.IsSwitch(w) {
			return w, nil
		}
	}
	return 0, fmt.Errorf("topology: node %q: %w", t.Nodes[v].Name, ErrNoIngress)
}
