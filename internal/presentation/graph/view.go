package graph

import "github.com/aretw0/chatbot/pkg/domain"

// EdgeView is the JSON form of an edge.
type EdgeView struct {
	To       int      `json:"to"`
	Keywords []string `json:"keywords"`
}

// NodeView is the JSON form of a node.
type NodeView struct {
	ID      int        `json:"id"`
	Answers []string   `json:"answers"`
	Edges   []EdgeView `json:"edges"`
}

// View is the JSON form of a graph, used by the HTTP and MCP adapters.
type View struct {
	Root  *int       `json:"root,omitempty"`
	Nodes []NodeView `json:"nodes"`
}

// NewView converts g for serialization. Nodes keep creation order.
func NewView(g *domain.Graph) View {
	view := View{Nodes: []NodeView{}}
	if root := g.Root(); root != nil {
		id := root.ID
		view.Root = &id
	}
	for _, n := range g.Nodes() {
		nv := NodeView{ID: n.ID, Answers: n.Answers(), Edges: []EdgeView{}}
		for _, e := range n.ChildEdges() {
			nv.Edges = append(nv.Edges, EdgeView{To: e.Child().ID, Keywords: e.Keywords()})
		}
		view.Nodes = append(view.Nodes, nv)
	}
	return view
}
