package domain

import "fmt"

// Node represents a vertex of the dialogue graph.
type Node struct {
	ID int

	answers []string

	// childEdges are owned by this node.
	childEdges []*Edge

	// parentEdges are back-references to edges owned by other nodes.
	// They are used for upward navigation only.
	parentEdges []*Edge
}

// NewNode creates an empty node. Prefer Graph.CreateNode, which also registers it.
func NewNode(id int) *Node {
	return &Node{ID: id}
}

// AddAnswer appends a candidate reply.
func (n *Node) AddAnswer(text string) {
	n.answers = append(n.answers, text)
}

// Answers returns a copy of the candidate replies in insertion order.
func (n *Node) Answers() []string {
	out := make([]string, len(n.answers))
	copy(out, n.answers)
	return out
}

// AnswerCount returns the number of candidate replies.
func (n *Node) AnswerCount() int { return len(n.answers) }

// AnswerAt returns the reply at index i.
func (n *Node) AnswerAt(i int) (string, error) {
	if i < 0 || i >= len(n.answers) {
		return "", fmt.Errorf("answer %d of node %d (have %d): %w", i, n.ID, len(n.answers), ErrIndexOutOfRange)
	}
	return n.answers[i], nil
}

// AddOwnedChildEdge transfers ownership of edge to this node.
// The edge's child must already be set; the child gains a back-reference.
func (n *Node) AddOwnedChildEdge(edge *Edge) error {
	if edge == nil || edge.child == nil {
		return fmt.Errorf("attach edge to node %d: %w", n.ID, ErrDanglingEdge)
	}
	edge.parent = n
	n.childEdges = append(n.childEdges, edge)
	edge.child.parentEdges = append(edge.child.parentEdges, edge)
	return nil
}

// ChildEdgeCount returns the number of outgoing edges.
func (n *Node) ChildEdgeCount() int { return len(n.childEdges) }

// ChildEdgeAt returns the outgoing edge at index i.
func (n *Node) ChildEdgeAt(i int) (*Edge, error) {
	if i < 0 || i >= len(n.childEdges) {
		return nil, fmt.Errorf("child edge %d of node %d (have %d): %w", i, n.ID, len(n.childEdges), ErrIndexOutOfRange)
	}
	return n.childEdges[i], nil
}

// ChildEdges returns the outgoing edges in the order they were attached.
// The returned slice is a copy; the edges themselves are shared.
func (n *Node) ChildEdges() []*Edge {
	out := make([]*Edge, len(n.childEdges))
	copy(out, n.childEdges)
	return out
}

// ParentEdgeCount returns the number of edges targeting this node.
func (n *Node) ParentEdgeCount() int { return len(n.parentEdges) }

// ParentEdges returns the edges targeting this node.
func (n *Node) ParentEdges() []*Edge {
	out := make([]*Edge, len(n.parentEdges))
	copy(out, n.parentEdges)
	return out
}
