package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID    string                 `json:"tool_id" binding:"required"`
	Params    map[string]interface{} `json:"params" binding:"required"`
	SessionID *string                `json:"session_id,omitempty"`
}

// SessionRequest represents a session creation request
type SessionRequest struct {
	WorkDir string `json:"work_dir,omitempty"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data,omitempty"`
}
