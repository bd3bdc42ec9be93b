/*
Package ports defines the driven ports (interfaces) of the chatbot engine.

These interfaces decouple the core from external implementations, allowing the
engine to work with various graph sources, reply surfaces and storage backends.

# Key Interfaces

  - GraphLoader: builds a domain.Graph from some persisted description (Loam, YAML, memory).
  - ReplySink: receives the answer chosen each time a session arrives at a node.
  - SnapshotStore: persists session positions between runs.
  - DistributedLocker: coordinates access to a session across replicas.
*/
package ports
