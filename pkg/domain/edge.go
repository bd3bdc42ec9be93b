package domain

import "strings"

// Edge is a directed, keyword-labelled connection between two nodes.
// It is owned by its parent node; both node references are borrowed.
type Edge struct {
	keywords []string
	parent   *Node
	child    *Node
}

// NewEdge creates a detached edge carrying the given keywords.
// Keywords form an ordered set: duplicates are dropped, first occurrence wins.
func NewEdge(keywords ...string) *Edge {
	e := &Edge{}
	for _, k := range keywords {
		e.AddKeyword(k)
	}
	return e
}

// AddKeyword appends a trigger keyword unless it is already present.
// Presence is checked case-insensitively, matching how keywords are scored.
// Keywords are kept verbatim; a blank keyword still competes in matching.
func (e *Edge) AddKeyword(keyword string) {
	for _, k := range e.keywords {
		if strings.EqualFold(k, keyword) {
			return
		}
	}
	e.keywords = append(e.keywords, keyword)
}

// Keywords returns the keywords in insertion order.
func (e *Edge) Keywords() []string {
	out := make([]string, len(e.keywords))
	copy(out, e.keywords)
	return out
}

// Parent returns the node owning this edge (nil until attached).
func (e *Edge) Parent() *Node { return e.parent }

// Child returns the node this edge points to.
func (e *Edge) Child() *Node { return e.child }

// SetChild points the edge at its target node.
// It must be called before the edge is handed to Node.AddOwnedChildEdge.
func (e *Edge) SetChild(n *Node) { e.child = n }
