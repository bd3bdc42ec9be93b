package runner

import (
	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/aretw0/chatbot/pkg/dsl"
)

// firstRandom always picks the first answer.
type firstRandom struct{}

func (firstRandom) IntN(int) int { return 0 }

func greetingGraph() *domain.Graph {
	b := dsl.New()
	b.Node(1).Answer("Hello!").Go(2, "bye")
	b.Node(2).Answer("Goodbye!").Go(1, "hello")
	return b.Root(1).MustBuild()
}
