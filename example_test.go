package chatbot_test

import (
	"fmt"
	"log"

	"github.com/aretw0/chatbot"
	"github.com/aretw0/chatbot/pkg/dsl"
	"github.com/aretw0/chatbot/pkg/runner"
)

// ExampleNew_memory builds a graph in Go instead of loading it from disk.
func ExampleNew_memory() {
	b := dsl.New()
	b.Node(1).Answer("Hi! Ask me about the weather.").Go(2, "weather", "rain")
	b.Node(2).Answer("Sunny all week.").Go(1, "thanks")
	loader, err := b.Root(1).Loader()
	if err != nil {
		log.Fatal(err)
	}

	// The directory is ignored when a loader is provided.
	bot, err := chatbot.New("", chatbot.WithLoader(loader), chatbot.WithSeed(1))
	if err != nil {
		log.Fatal(err)
	}

	relay := runner.NewRelay()
	if _, err := bot.Start(relay); err != nil {
		log.Fatal(err)
	}
	fmt.Println(relay.Drain()[0])

	replies, err := relay.Send("wether")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(replies[0])

	// Output:
	// Hi! Ask me about the weather.
	// Sunny all week.
}
