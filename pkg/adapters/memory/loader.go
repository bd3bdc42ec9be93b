package memory

import (
	"context"
	"errors"

	"github.com/aretw0/chatbot/pkg/domain"
)

// Loader implements ports.GraphLoader over a graph that is already built,
// typically by the dsl package.
type Loader struct {
	graph *domain.Graph
}

// NewLoader wraps g.
func NewLoader(g *domain.Graph) *Loader {
	return &Loader{graph: g}
}

// Load returns the wrapped graph.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	if l.graph == nil {
		return nil, errors.New("memory loader has no graph")
	}
	return l.graph, nil
}
