package domain

import "errors"

// ErrEmptyAnswerSet is returned when a session arrives at a node with no answers.
// It indicates a graph configuration defect and is never retried.
var ErrEmptyAnswerSet = errors.New("node has no answers")

// ErrNoCurrentNode is returned when a session receives input before being attached to a node.
var ErrNoCurrentNode = errors.New("session is not attached to a node")

// ErrIndexOutOfRange is returned by bounds-checked accessors on nodes.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrNodeNotFound is returned when a node ID does not exist in the graph.
var ErrNodeNotFound = errors.New("node not found")

// ErrDuplicateNode is returned when a node ID is registered twice.
var ErrDuplicateNode = errors.New("duplicate node id")

// ErrDanglingEdge is returned when an edge is attached without a target node.
var ErrDanglingEdge = errors.New("edge has no child node")

// ErrNoRoot is returned when a graph has no root node.
var ErrNoRoot = errors.New("graph has no root node")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
