package domain

import "time"

// Snapshot captures where a session is inside a graph so it can be resumed later.
// Only the position is persisted; the graph itself is loaded separately.
type Snapshot struct {
	SessionID     string    `json:"session_id"`
	CurrentNodeID int       `json:"current_node_id"`
	RootNodeID    int       `json:"root_node_id"`
	Avatar        string    `json:"avatar,omitempty"`
	History       []int     `json:"history,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Sealed holds the encrypted form of the snapshot when the store encrypts
	// at rest. The position fields are zero in that case.
	Sealed string `json:"sealed,omitempty"`
}
