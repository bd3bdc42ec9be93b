package dsl

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	id      int
	answers []string
	edges   []edgeSpec
	builder *Builder
}

type edgeSpec struct {
	target   int
	keywords []string
}

// Answer appends candidate replies.
func (n *NodeBuilder) Answer(texts ...string) *NodeBuilder {
	n.answers = append(n.answers, texts...)
	return n
}

// Go adds an edge to target, matched by any of keywords.
func (n *NodeBuilder) Go(target int, keywords ...string) *NodeBuilder {
	n.edges = append(n.edges, edgeSpec{target: target, keywords: keywords})
	return n
}

// Node switches to another node, so a whole graph can be one chain.
func (n *NodeBuilder) Node(id int) *NodeBuilder {
	return n.builder.Node(id)
}

// ID returns the node being configured.
func (n *NodeBuilder) ID() int { return n.id }
