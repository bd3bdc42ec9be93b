// Package loam loads a dialogue graph from a directory of Markdown documents
// through the Loam content repository.
package loam

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository to the ports.GraphLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[NodeMetadata]
}

// New creates a Loader over an existing typed repository.
func New(repo *loam.TypedRepository[NodeMetadata]) *Loader {
	return &Loader{Repo: repo}
}

// Open initialises a strict, read-only Loam repository at dir.
// Strict mode keeps numbers as json.Number so node IDs decode losslessly.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[NodeMetadata](repo)), nil
}

type nodeDoc struct {
	id     int
	source string
	meta   NodeMetadata
	body   string
}

// Load reads every document and assembles the graph. Nodes are created in
// ascending ID order; edges keep their declaration order.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	nodes := make([]nodeDoc, 0, len(docs))
	for _, doc := range docs {
		id, err := resolveID(doc.ID, doc.Data.ID)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, nodeDoc{id: id, source: doc.ID, meta: doc.Data, body: doc.Content})
	}
	slices.SortFunc(nodes, func(a, b nodeDoc) int { return cmp.Compare(a.id, b.id) })

	g := domain.NewGraph()
	seen := make(map[int]string, len(nodes))
	var roots []int
	for _, nd := range nodes {
		if prev, ok := seen[nd.id]; ok {
			return nil, fmt.Errorf("node %d is defined in both '%s' and '%s': %w", nd.id, prev, nd.source, domain.ErrDuplicateNode)
		}
		seen[nd.id] = nd.source

		n, err := g.CreateNode(nd.id)
		if err != nil {
			return nil, err
		}
		for _, a := range nd.meta.Answers {
			g.AddAnswer(n, a)
		}
		if body := strings.TrimSpace(nd.body); body != "" {
			g.AddAnswer(n, body)
		}
		if nd.meta.Root {
			roots = append(roots, nd.id)
		}
	}

	switch len(roots) {
	case 0:
	case 1:
		if err := g.SetRoot(roots[0]); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("multiple root nodes declared: %v", roots)
	}

	for _, nd := range nodes {
		parent, _ := g.Node(nd.id)
		for _, ec := range nd.meta.Edges {
			child, err := g.Node(ec.To)
			if err != nil {
				return nil, fmt.Errorf("'%s': edge to %d: %w", nd.source, ec.To, err)
			}
			if err := g.AttachEdge(parent, g.CreateEdge(ec.Keywords...), child); err != nil {
				return nil, fmt.Errorf("'%s': %w", nd.source, err)
			}
		}
	}

	return g, nil
}

// resolveID prefers the frontmatter id and falls back to a numeric file name.
func resolveID(docID string, explicit *int) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	stem := filepath.Base(strings.TrimSuffix(docID, filepath.Ext(docID)))
	id, err := strconv.Atoi(stem)
	if err != nil {
		return 0, fmt.Errorf("document '%s' has no id and its name is not a number", docID)
	}
	return id, nil
}
