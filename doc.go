/*
Package chatbot is a keyword-driven dialogue engine.

A dialogue is a graph: every node holds candidate answers and owns edges
labelled with keywords. A session sits on one node; each user message moves it
along the outgoing edge whose keyword is closest by edit distance, or back to
the root when the node has no edges, and it replies with one of the target
node's answers chosen at random.

# Usage

The default loader reads a directory of Markdown documents (see pkg/adapters/loam).

	bot, err := chatbot.New("./my-bot")
	if err != nil {
		log.Fatal(err)
	}

	chat := runner.NewChat(os.Stdout)
	if _, err := bot.Start(chat); err != nil {
		log.Fatal(err)
	}
	if err := chat.Run(ctx, os.Stdin); err != nil {
		log.Fatal(err)
	}

Graphs can also come from YAML (pkg/adapters/yaml) or be built in Go with pkg/dsl.
*/
package chatbot
