package domain_test

import (
	"testing"

	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGreeting(t *testing.T) (*domain.Graph, *domain.Node, *domain.Node) {
	t.Helper()
	g := domain.NewGraph()
	root, err := g.CreateNode(1)
	require.NoError(t, err)
	bye, err := g.CreateNode(2)
	require.NoError(t, err)
	g.AddAnswer(root, "Hi")
	g.AddAnswer(bye, "See ya")
	require.NoError(t, g.AttachEdge(root, g.CreateEdge("BYE", "LATER"), bye))
	return g, root, bye
}

func TestGraph_AttachEdge_Ownership(t *testing.T) {
	g, root, bye := buildGreeting(t)

	require.Equal(t, 1, root.ChildEdgeCount())
	edge, err := root.ChildEdgeAt(0)
	require.NoError(t, err)

	assert.Same(t, root, edge.Parent())
	assert.Same(t, bye, edge.Child())
	assert.Equal(t, []string{"BYE", "LATER"}, edge.Keywords())

	// The target holds exactly one back-reference and owns nothing.
	require.Equal(t, 1, bye.ParentEdgeCount())
	assert.Same(t, edge, bye.ParentEdges()[0])
	assert.Equal(t, 0, bye.ChildEdgeCount())
	assert.Len(t, g.Edges(), 1)
}

func TestGraph_CreateNode_Duplicate(t *testing.T) {
	g := domain.NewGraph()
	_, err := g.CreateNode(7)
	require.NoError(t, err)

	_, err = g.CreateNode(7)
	assert.ErrorIs(t, err, domain.ErrDuplicateNode)
}

func TestGraph_AttachEdge_ForeignNode(t *testing.T) {
	g := domain.NewGraph()
	a, _ := g.CreateNode(1)
	stranger := domain.NewNode(99)

	err := g.AttachEdge(a, g.CreateEdge("x"), stranger)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	assert.Equal(t, 0, a.ChildEdgeCount())
}

func TestNode_AddOwnedChildEdge_Dangling(t *testing.T) {
	n := domain.NewNode(1)
	err := n.AddOwnedChildEdge(domain.NewEdge("hello"))
	assert.ErrorIs(t, err, domain.ErrDanglingEdge)
	assert.Equal(t, 0, n.ChildEdgeCount())
}

func TestNode_Accessors_OutOfRange(t *testing.T) {
	_, root, _ := buildGreeting(t)

	_, err := root.ChildEdgeAt(1)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	_, err = root.ChildEdgeAt(-1)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	answer, err := root.AnswerAt(0)
	require.NoError(t, err)
	assert.Equal(t, "Hi", answer)
	_, err = root.AnswerAt(3)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestEdge_Keywords_OrderedSet(t *testing.T) {
	e := domain.NewEdge("hello", "HELLO", " ", "hi", "hello", " ")
	assert.Equal(t, []string{"hello", " ", "hi"}, e.Keywords())
}

func TestGraph_Root(t *testing.T) {
	t.Run("Detected", func(t *testing.T) {
		g, root, _ := buildGreeting(t)
		assert.Same(t, root, g.Root())
	})

	t.Run("Explicit", func(t *testing.T) {
		g, _, bye := buildGreeting(t)
		require.NoError(t, g.SetRoot(2))
		assert.Same(t, bye, g.Root())
	})

	t.Run("Unknown", func(t *testing.T) {
		g, _, _ := buildGreeting(t)
		assert.ErrorIs(t, g.SetRoot(42), domain.ErrNodeNotFound)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Nil(t, domain.NewGraph().Root())
	})
}

func TestGraph_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		g, _, _ := buildGreeting(t)
		assert.NoError(t, g.Validate())
	})

	t.Run("No Root", func(t *testing.T) {
		assert.ErrorIs(t, domain.NewGraph().Validate(), domain.ErrNoRoot)
	})

	t.Run("Defects", func(t *testing.T) {
		g, root, _ := buildGreeting(t)
		silent, _ := g.CreateNode(3)
		require.NoError(t, g.AttachEdge(root, g.CreateEdge(), silent))
		orphan, _ := g.CreateNode(4)
		orphan.AddAnswer("nobody comes here")
		require.NoError(t, g.SetRoot(1))

		err := g.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyAnswerSet)
		assert.Contains(t, err.Error(), "edge 1 to node 3 has no keywords")
		assert.Contains(t, err.Error(), "node 4 is unreachable")
	})
}

func TestGraph_Nodes_CreationOrder(t *testing.T) {
	g := domain.NewGraph()
	for _, id := range []int{5, 1, 3} {
		_, err := g.CreateNode(id)
		require.NoError(t, err)
	}

	var ids []int
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []int{5, 1, 3}, ids)
	assert.Equal(t, 3, g.Len())
}
