// Package yaml loads a dialogue graph from a single YAML document.
//
//	root: 1
//	nodes:
//	  - id: 1
//	    answers: ["Hello!"]
//	    edges:
//	      - to: 2
//	        keywords: [bye, 42]
//	  - id: 2
//	    answers: ["Goodbye!"]
//
// Scalars are weakly typed, so unquoted numeric keywords are accepted.
package yaml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	yamlv3 "gopkg.in/yaml.v3"
)

// ErrInvalidDocument wraps every structural problem found in a document.
var ErrInvalidDocument = errors.New("invalid graph document")

var validate = validator.New()

// Document is the top-level shape of a graph file.
type Document struct {
	Root  *int         `mapstructure:"root"`
	Nodes []NodeConfig `mapstructure:"nodes" validate:"required,min=1,dive"`
}

// NodeConfig declares one node.
type NodeConfig struct {
	ID      *int         `mapstructure:"id" validate:"required"`
	Answers []string     `mapstructure:"answers" validate:"required,min=1,dive,required"`
	Edges   []EdgeConfig `mapstructure:"edges" validate:"dive"`
}

// EdgeConfig declares an outgoing edge.
type EdgeConfig struct {
	To       *int     `mapstructure:"to" validate:"required"`
	Keywords []string `mapstructure:"keywords" validate:"required,min=1,dive,required"`
}

// Loader implements ports.GraphLoader over a YAML file.
type Loader struct {
	Path string
}

// New creates a Loader reading path on every Load.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads and parses the file.
func (l *Loader) Load(ctx context.Context) (*domain.Graph, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes, validates and builds a graph from r.
func Parse(r io.Reader) (*domain.Graph, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// Decode reads a Document and checks its struct constraints.
func Decode(r io.Reader) (*Document, error) {
	var raw map[string]any
	if err := yamlv3.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, formatValidationError(err)
	}
	return &doc, nil
}

func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		field := strings.TrimPrefix(e.Namespace(), "Document.")
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s needs at least %s entries", field, e.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}

// Build turns a validated document into a graph.
func (d *Document) Build() (*domain.Graph, error) {
	g := domain.NewGraph()
	for _, nc := range d.Nodes {
		n, err := g.CreateNode(*nc.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range nc.Answers {
			g.AddAnswer(n, a)
		}
	}

	for _, nc := range d.Nodes {
		parent, _ := g.Node(*nc.ID)
		for _, ec := range nc.Edges {
			child, err := g.Node(*ec.To)
			if err != nil {
				return nil, fmt.Errorf("node %d: edge to %d: %w", parent.ID, *ec.To, err)
			}
			if err := g.AttachEdge(parent, g.CreateEdge(ec.Keywords...), child); err != nil {
				return nil, err
			}
		}
	}

	if d.Root != nil {
		if err := g.SetRoot(*d.Root); err != nil {
			return nil, err
		}
	}
	return g, nil
}
