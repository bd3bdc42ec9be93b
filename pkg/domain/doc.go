/*
Package domain contains the core domain models of the chatbot engine.

It defines the dialogue graph and its ownership rules. The package is kept pure
and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Graph: the arena that owns every Node, keyed by its integer ID.
  - Node: a vertex holding candidate answers. It owns its outgoing Edges and keeps
    non-owning back-references to the Edges that target it.
  - Edge: a keyword-labelled directed connection, owned by its parent Node.
  - Snapshot: the serialisable position of a session inside a Graph.

Ownership only ever flows top-down (Graph -> Node -> Edge). Every other pointer
(edge parent/child, node parent edges, a session's current and root node) is a
borrowed reference into the arena.
*/
package domain
