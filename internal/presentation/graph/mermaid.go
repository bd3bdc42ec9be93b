package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/chatbot/pkg/domain"
)

// maxLabelRunes caps the answer preview shown inside a node.
const maxLabelRunes = 32

// GraphOverlay contains session state to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []int
	CurrentNode  *int
}

// OverlayFromHistory builds an overlay whose current node is the last visited one.
func OverlayFromHistory(history []int) *GraphOverlay {
	if len(history) == 0 {
		return nil
	}
	current := history[len(history)-1]
	return &GraphOverlay{VisitedNodes: history, CurrentNode: &current}
}

// GenerateMermaid produces a Mermaid flowchart of g.
// Shapes:
// - Root: ((Circle))
// - Leaf (no outgoing edges): ([Stadium])
// - Default: [Rectangle]
// Edges are labelled with their keywords. Overlay styles are applied if provided.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	root := g.Root()
	for _, node := range g.Nodes() {
		opener, closer := "[", "]"
		switch {
		case root != nil && node == root:
			opener, closer = "((", "))"
		case node.ChildEdgeCount() == 0:
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", mermaidID(node.ID), opener, nodeLabel(node), closer)

		for _, e := range node.ChildEdges() {
			keywords := escapeLabel(strings.Join(e.Keywords(), ", "))
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", mermaidID(node.ID), keywords, mermaidID(e.Child().ID))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, id := range overlay.VisitedNodes {
			if seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", mermaidID(id))
		}
		if overlay.CurrentNode != nil {
			fmt.Fprintf(&sb, "    class %s current;\n", mermaidID(*overlay.CurrentNode))
		}
	}

	return sb.String()
}

func mermaidID(id int) string {
	if id < 0 {
		return fmt.Sprintf("m%d", -id)
	}
	return fmt.Sprintf("n%d", id)
}

func nodeLabel(n *domain.Node) string {
	label := fmt.Sprintf("%d", n.ID)
	if first, err := n.AnswerAt(0); err == nil {
		label += ": " + truncate(first, maxLabelRunes)
	}
	return escapeLabel(label)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
