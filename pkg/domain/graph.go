package domain

import (
	"errors"
	"fmt"
	"sort"
)

// Graph owns every node of a dialogue. Nodes are addressed by ID.
// A Graph is built once and treated as read-only while sessions traverse it.
type Graph struct {
	nodes  map[int]*Node
	order  []int
	rootID *int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[int]*Node)}
}

// CreateNode registers a new node with the given ID.
func (g *Graph) CreateNode(id int) (*Node, error) {
	if _, exists := g.nodes[id]; exists {
		return nil, fmt.Errorf("node %d: %w", id, ErrDuplicateNode)
	}
	n := NewNode(id)
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n, nil
}

// CreateEdge creates a detached edge. It becomes part of the graph once attached.
func (g *Graph) CreateEdge(keywords ...string) *Edge {
	return NewEdge(keywords...)
}

// AttachEdge connects parent to child through edge. The parent takes ownership.
func (g *Graph) AttachEdge(parent *Node, edge *Edge, child *Node) error {
	if parent == nil || child == nil {
		return fmt.Errorf("attach edge: %w", ErrNodeNotFound)
	}
	if g.nodes[parent.ID] != parent {
		return fmt.Errorf("attach edge: parent %d: %w", parent.ID, ErrNodeNotFound)
	}
	if g.nodes[child.ID] != child {
		return fmt.Errorf("attach edge: child %d: %w", child.ID, ErrNodeNotFound)
	}
	edge.SetChild(child)
	return parent.AddOwnedChildEdge(edge)
}

// AddAnswer appends a candidate reply to node.
func (g *Graph) AddAnswer(node *Node, text string) {
	node.AddAnswer(text)
}

// Node looks up a node by ID.
func (g *Graph) Node(id int) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
	}
	return n, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns every edge, grouped by parent node in creation order.
func (g *Graph) Edges() []*Edge {
	var out []*Edge
	for _, n := range g.Nodes() {
		out = append(out, n.childEdges...)
	}
	return out
}

// SetRoot designates the entry node.
func (g *Graph) SetRoot(id int) error {
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("set root %d: %w", id, ErrNodeNotFound)
	}
	g.rootID = &id
	return nil
}

// Root returns the entry node. Without an explicit root it falls back to the
// lowest-ID node that no edge points to. Returns nil if there is no candidate.
func (g *Graph) Root() *Node {
	if g.rootID != nil {
		return g.nodes[*g.rootID]
	}
	ids := make([]int, 0, len(g.nodes))
	for id, n := range g.nodes {
		if len(n.parentEdges) == 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Ints(ids)
	return g.nodes[ids[0]]
}

// Validate reports configuration defects that would otherwise only surface while chatting:
// a missing root, nodes without answers, edges without keywords and unreachable nodes.
func (g *Graph) Validate() error {
	root := g.Root()
	if root == nil {
		return ErrNoRoot
	}

	var errs []error
	for _, n := range g.Nodes() {
		if len(n.answers) == 0 {
			errs = append(errs, fmt.Errorf("node %d: %w", n.ID, ErrEmptyAnswerSet))
		}
		for i, e := range n.childEdges {
			if len(e.keywords) == 0 {
				errs = append(errs, fmt.Errorf("node %d: edge %d to node %d has no keywords", n.ID, i, e.child.ID))
			}
		}
	}

	visited := map[int]bool{root.ID: true}
	queue := []*Node{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range current.childEdges {
			if !visited[e.child.ID] {
				visited[e.child.ID] = true
				queue = append(queue, e.child)
			}
		}
	}
	for _, id := range g.order {
		if !visited[id] {
			errs = append(errs, fmt.Errorf("node %d is unreachable from root %d", id, root.ID))
		}
	}

	return errors.Join(errs...)
}
