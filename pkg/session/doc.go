/*
Package session implements the traversal cursor of the chatbot.

A Session sits at exactly one node of a dialogue graph at a time, owns an avatar
image exclusively, and moves itself across the graph as user messages arrive.
On every arrival it picks one of the node's answers at random and hands it to its
Controller.

# Ownership

The avatar handle is never shared between two live sessions. Duplication follows
explicit copy and move operations:

  - Clone / CopyFrom deep-copy the avatar and share the graph references.
  - Take / MoveFrom transfer the avatar and invalidate the source.
  - Release frees the avatar exactly once.

Each operation tells the Controller which Session is now the active handle.

A Session is not safe for concurrent use. Manager adds persistence and
per-session locking on top.
*/
package session
