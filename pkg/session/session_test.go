package session_test

import (
	"testing"

	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/aretw0/chatbot/pkg/observability"
	"github.com/aretw0/chatbot/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Controller that keeps every reply and the last registered handle.
type recorder struct {
	replies []string
	active  *session.Session
	handles int
}

func (r *recorder) Deliver(text string) { r.replies = append(r.replies, text) }

func (r *recorder) RegisterActiveHandle(s *session.Session) {
	r.active = s
	r.handles++
}

func (r *recorder) last() string {
	if len(r.replies) == 0 {
		return ""
	}
	return r.replies[len(r.replies)-1]
}

// lastIndex always picks the final answer.
type lastIndex struct{}

func (lastIndex) IntN(n int) int { return n - 1 }

// byeGraph is R(answers=["Hi"]) --["BYE"]--> B(answers=["See ya"]).
func byeGraph(t *testing.T) (*domain.Graph, *domain.Node, *domain.Node) {
	t.Helper()
	g := domain.NewGraph()
	r, err := g.CreateNode(1)
	require.NoError(t, err)
	b, err := g.CreateNode(2)
	require.NoError(t, err)
	g.AddAnswer(r, "Hi")
	g.AddAnswer(b, "See ya")
	require.NoError(t, g.AttachEdge(r, g.CreateEdge("BYE"), b))
	return g, r, b
}

func TestSession_EndToEnd(t *testing.T) {
	_, r, b := byeGraph(t)
	rec := &recorder{}
	s := session.New(nil, session.WithController(rec))

	require.NoError(t, s.AttachTo(r))
	assert.Equal(t, []string{"Hi"}, rec.replies)
	assert.Same(t, r, s.CurrentNode())
	assert.Same(t, r, s.RootNode())

	require.NoError(t, s.OnUserMessage("bye"))
	assert.Same(t, b, s.CurrentNode())
	assert.Equal(t, "See ya", rec.last())

	// B has no outgoing edges: any message goes back to the root.
	require.NoError(t, s.OnUserMessage("xyz"))
	assert.Same(t, r, s.CurrentNode())
	assert.Equal(t, "Hi", rec.last())

	assert.Len(t, rec.replies, 3, "one reply per attach and per message")
	assert.Equal(t, []int{1, 2, 1}, s.History())
}

func TestSession_FallbackToRoot(t *testing.T) {
	_, r, b := byeGraph(t)
	s := session.New(nil, session.WithController(&recorder{}))
	require.NoError(t, s.AttachTo(r))
	require.NoError(t, s.OnUserMessage("bye"))
	require.Same(t, b, s.CurrentNode())

	for _, msg := range []string{"", "bye", "BYE", "hello there", "🙂"} {
		require.Same(t, b, s.CurrentNode())
		require.NoError(t, s.OnUserMessage(msg))
		assert.Same(t, r, s.CurrentNode(), "message %q", msg)
		require.NoError(t, s.OnUserMessage("bye"))
	}
}

func TestSession_AnyMessageFollowsSomeEdge(t *testing.T) {
	// With at least one keyword the closest edge always wins, however far away.
	_, r, b := byeGraph(t)
	s := session.New(nil, session.WithController(&recorder{}))
	require.NoError(t, s.AttachTo(r))

	require.NoError(t, s.OnUserMessage("completely unrelated"))
	assert.Same(t, b, s.CurrentNode())
}

func TestSession_RandomAnswerMembership(t *testing.T) {
	g := domain.NewGraph()
	n, _ := g.CreateNode(1)
	answers := []string{"Hello!", "Hey.", "Greetings", "Howdy"}
	for _, a := range answers {
		n.AddAnswer(a)
	}

	rec := &recorder{}
	s := session.New(nil, session.WithController(rec), session.WithSeed(42))
	require.NoError(t, s.AttachTo(n))
	for range 50 {
		require.NoError(t, s.OnUserMessage("anything"))
	}

	require.Len(t, rec.replies, 51)
	for _, reply := range rec.replies {
		assert.Contains(t, answers, reply)
	}
}

func TestSession_InjectedRandom(t *testing.T) {
	g := domain.NewGraph()
	n, _ := g.CreateNode(1)
	n.AddAnswer("first")
	n.AddAnswer("second")

	rec := &recorder{}
	s := session.New(nil, session.WithController(rec), session.WithRandom(lastIndex{}))
	require.NoError(t, s.AttachTo(n))
	assert.Equal(t, "second", rec.last())
}

func TestSession_Errors(t *testing.T) {
	t.Run("No Current Node", func(t *testing.T) {
		s := session.New(nil)
		assert.ErrorIs(t, s.OnUserMessage("hello"), domain.ErrNoCurrentNode)
		_, err := s.Snapshot()
		assert.ErrorIs(t, err, domain.ErrNoCurrentNode)
	})

	t.Run("Attach Nil", func(t *testing.T) {
		s := session.New(nil)
		assert.ErrorIs(t, s.AttachTo(nil), domain.ErrNodeNotFound)
		assert.False(t, s.Attached())
	})

	t.Run("Empty Answer Set", func(t *testing.T) {
		g := domain.NewGraph()
		r, _ := g.CreateNode(1)
		silent, _ := g.CreateNode(2)
		r.AddAnswer("Hi")
		require.NoError(t, g.AttachEdge(r, g.CreateEdge("go"), silent))

		rec := &recorder{}
		s := session.New(nil, session.WithController(rec))
		require.NoError(t, s.AttachTo(r))

		err := s.OnUserMessage("go")
		assert.ErrorIs(t, err, domain.ErrEmptyAnswerSet)
		assert.Len(t, rec.replies, 1, "no reply is delivered for a node without answers")
	})

	t.Run("Empty Root", func(t *testing.T) {
		s := session.New(nil)
		assert.ErrorIs(t, s.AttachTo(domain.NewNode(1)), domain.ErrEmptyAnswerSet)
	})
}

func TestSession_NoController(t *testing.T) {
	_, r, _ := byeGraph(t)
	s := session.New(nil)
	require.NoError(t, s.AttachTo(r))
	require.NoError(t, s.OnUserMessage("bye"))

	rec := &recorder{}
	s.SetController(rec)
	require.NoError(t, s.OnUserMessage("again"))
	assert.Equal(t, []string{"Hi"}, rec.replies)
}

func TestSession_SnapshotRestore(t *testing.T) {
	g, r, b := byeGraph(t)
	s := session.New(nil, session.WithID("abc"), session.WithController(&recorder{}))
	require.NoError(t, s.AttachTo(r))
	require.NoError(t, s.OnUserMessage("bye"))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "abc", snap.SessionID)
	assert.Equal(t, b.ID, snap.CurrentNodeID)
	assert.Equal(t, r.ID, snap.RootNodeID)

	rec := &recorder{}
	restored := session.New(nil, session.WithController(rec))
	require.NoError(t, restored.Restore(g, snap))
	assert.Equal(t, "abc", restored.ID())
	assert.Same(t, b, restored.CurrentNode())
	assert.Empty(t, rec.replies, "restore does not greet")

	require.NoError(t, restored.OnUserMessage("xyz"))
	assert.Same(t, r, restored.CurrentNode())

	snap.CurrentNodeID = 99
	assert.ErrorIs(t, restored.Restore(g, snap), domain.ErrNodeNotFound)
}

func TestSession_Metrics(t *testing.T) {
	_, r, _ := byeGraph(t)
	registry := prometheus.NewRegistry()
	s := session.New(nil,
		session.WithController(&recorder{}),
		session.WithMetrics(observability.NewMetrics(registry)),
	)
	require.NoError(t, s.AttachTo(r))
	require.NoError(t, s.OnUserMessage("bye"))
	require.NoError(t, s.OnUserMessage("xyz"))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["chatbot_messages_total"])
	assert.True(t, names["chatbot_transitions_total"])
	assert.True(t, names["chatbot_replies_total"])
}
