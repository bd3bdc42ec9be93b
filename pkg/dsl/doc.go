/*
Package dsl provides a fluent builder for constructing dialogue graphs in Go
instead of loading them from Markdown or YAML files.

It is particularly useful for tests, examples and small embedded bots.

Example usage:

	b := dsl.New()

	b.Node(1).
		Answer("Hello!", "Hi there!").
		Go(2, "bye", "goodbye")

	b.Node(2).
		Answer("Goodbye!").
		Go(1, "hello")

	graph, err := b.Root(1).Build()
*/
package dsl
