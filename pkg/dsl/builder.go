package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/chatbot/pkg/adapters/memory"
	"github.com/aretw0/chatbot/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	nodes []*NodeBuilder
	index map[int]*NodeBuilder
	root  *int
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		index: make(map[int]*NodeBuilder),
	}
}

// Node declares a node, or returns the existing builder if id was already declared.
func (b *Builder) Node(id int) *NodeBuilder {
	if nb, ok := b.index[id]; ok {
		return nb
	}
	nb := &NodeBuilder{id: id, builder: b}
	b.index[id] = nb
	b.nodes = append(b.nodes, nb)
	return nb
}

// Root designates the entry node.
func (b *Builder) Root(id int) *Builder {
	b.root = &id
	return b
}

// Build creates the graph in declaration order and validates it.
func (b *Builder) Build() (*domain.Graph, error) {
	g := domain.NewGraph()
	for _, nb := range b.nodes {
		n, err := g.CreateNode(nb.id)
		if err != nil {
			return nil, err
		}
		for _, a := range nb.answers {
			g.AddAnswer(n, a)
		}
	}

	var errs []error
	for _, nb := range b.nodes {
		parent, _ := g.Node(nb.id)
		for _, e := range nb.edges {
			child, err := g.Node(e.target)
			if err != nil {
				errs = append(errs, fmt.Errorf("node %d: edge to %d: %w", nb.id, e.target, err))
				continue
			}
			if err := g.AttachEdge(parent, g.CreateEdge(e.keywords...), child); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if b.root != nil {
		if err := g.SetRoot(*b.root); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}
	return g, nil
}

// Loader builds the graph and wraps it as a ports.GraphLoader.
func (b *Builder) Loader() (*memory.Loader, error) {
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return memory.NewLoader(g), nil
}

// MustBuild is like Build but panics on error. Meant for tests and fixtures.
func (b *Builder) MustBuild() *domain.Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
