package runner

import (
	"sync"
	"testing"

	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/aretw0/chatbot/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelay_SendBeforeAdopt(t *testing.T) {
	_, err := NewRelay().Send("hi")
	assert.ErrorIs(t, err, domain.ErrNoCurrentNode)
}

func TestRelay_Conversation(t *testing.T) {
	relay := NewRelay()
	s := relay.Adopt(session.New(nil, session.WithRandom(firstRandom{})))
	require.NoError(t, s.AttachTo(greetingGraph().Root()))

	assert.Equal(t, []string{"Hello!"}, relay.Drain())
	assert.Empty(t, relay.Drain())

	replies, err := relay.Send("bye")
	require.NoError(t, err)
	assert.Equal(t, []string{"Goodbye!"}, replies)

	_, err = relay.Send("\xff")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Equal(t, 2, relay.Active().CurrentNode().ID, "rejected input does not move the session")
}

func TestRelay_FollowsActiveHandle(t *testing.T) {
	relay := NewRelay()
	s := relay.Adopt(session.New(nil, session.WithRandom(firstRandom{})))
	require.NoError(t, s.AttachTo(greetingGraph().Root()))
	relay.Drain()

	clone := s.Clone()
	assert.Same(t, clone, relay.Active())

	_, err := relay.Send("bye")
	require.NoError(t, err)
	assert.Equal(t, 2, clone.CurrentNode().ID)
	assert.Equal(t, 1, s.CurrentNode().ID, "the original no longer receives messages")
}

func TestRelay_Do(t *testing.T) {
	relay := NewRelay()
	s := relay.Adopt(session.New(nil, session.WithRandom(firstRandom{})))
	require.NoError(t, s.AttachTo(greetingGraph().Root()))

	var seen *session.Session
	require.NoError(t, relay.Do(func(s *session.Session) error {
		seen = s
		return nil
	}))
	assert.Same(t, s, seen)
	assert.Equal(t, []string{"Hello!"}, relay.Drain(), "Do leaves replies buffered")

	replies, err := relay.Send("bye")
	require.NoError(t, err)
	assert.Equal(t, []string{"Goodbye!"}, replies)
}

func TestRelay_ConcurrentSends(t *testing.T) {
	relay := NewRelay()
	s := relay.Adopt(session.New(nil))
	require.NoError(t, s.AttachTo(greetingGraph().Root()))
	relay.Drain()

	const workers = 20
	var wg sync.WaitGroup
	counts := make([]int, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			replies, err := relay.Send("anything")
			assert.NoError(t, err)
			counts[i] = len(replies)
		}()
	}
	wg.Wait()

	for i, n := range counts {
		assert.Equal(t, 1, n, "worker %d", i)
	}
	assert.Len(t, relay.Active().History(), workers+1)
}

func TestRelay_InputPolicy(t *testing.T) {
	relay := NewRelay(WithRelayMaxInputSize(8))
	s := relay.Adopt(session.New(nil, session.WithRandom(firstRandom{})))
	require.NoError(t, s.AttachTo(greetingGraph().Root()))
	relay.Drain()

	_, err := relay.Send("  \t\n")
	assert.ErrorIs(t, err, ErrBlankInput)

	_, err = relay.Send("much too long")
	assert.ErrorIs(t, err, ErrInputTooLarge)
	assert.Equal(t, []int{1}, relay.Active().History(), "rejected input does not move the session")

	// Same shape as a terminal line: padding and control bytes are dropped.
	replies, err := relay.Send(" b\x00ye ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Goodbye!"}, replies)
}
