package ports

// ReplySink receives the reply chosen when a session arrives at a node.
// The engine calls Deliver exactly once per attachment and once per user message.
type ReplySink interface {
	Deliver(text string)
}

// ReplySinkFunc adapts a function to ReplySink.
type ReplySinkFunc func(text string)

// Deliver calls f.
func (f ReplySinkFunc) Deliver(text string) { f(text) }
