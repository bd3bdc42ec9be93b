/*
Package runner connects a chatbot session to the outside world.

A session delivers replies to a session.Controller and announces every new
live handle through RegisterActiveHandle. The controllers here are:

  - Chat: an interactive read-eval loop over an io.Reader and io.Writer.
  - Relay: a request/response buffer for adapters such as HTTP and MCP.

Both adopt the session by move, so the caller's handle is emptied and the
controller holds the only live one. Both normalize input with the same
InputPolicy before a message reaches the session.

# Usage

	chat := runner.NewChat(os.Stdout, runner.WithRenderer(renderer))
	s := chat.Adopt(session.New(avatar))
	if err := s.AttachTo(graph.Root()); err != nil {
		return err
	}
	return chat.Run(ctx, os.Stdin)
*/
package runner
