package ports

import (
	"context"

	"github.com/aretw0/chatbot/pkg/domain"
)

// GraphLoader builds a dialogue graph from a persisted description.
// The returned graph is complete: nodes created, edges attached, answers added.
type GraphLoader interface {
	Load(ctx context.Context) (*domain.Graph, error)
}

// GraphLoaderFunc adapts a function to GraphLoader.
type GraphLoaderFunc func(ctx context.Context) (*domain.Graph, error)

// Load calls f.
func (f GraphLoaderFunc) Load(ctx context.Context) (*domain.Graph, error) {
	return f(ctx)
}
