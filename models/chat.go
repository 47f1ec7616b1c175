package models

// Message roles used in conversation history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
	RoleFunction  = "function"
)

// ToolCall is a single backend operation requested by the model. Arguments is
// the raw JSON object string as returned by the model; it is parsed at
// dispatch time. Consumed once per loop iteration, never persisted on its own.
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatMessage is one entry in a user's conversation history.
//
// Exactly one of the payload forms is populated: plain Content, ToolCalls
// (modern multi-call assistant message), or FunctionCall (legacy single-call
// form). Tool results carry Content plus ToolCallID (or Name for the legacy
// path) to correlate back to the originating call.
type ChatMessage struct {
	Role         string     `json:"role"`
	Content      string     `json:"content,omitempty"`
	Name         string     `json:"name,omitempty"`
	ToolCallID   string     `json:"toolCallId,omitempty"`
	ToolCalls    []ToolCall `json:"toolCalls,omitempty"`
	FunctionCall *ToolCall  `json:"functionCall,omitempty"`
}

// HasToolCalls reports whether the message requests any backend operation.
func (m ChatMessage) HasToolCalls() bool {
	return len(m.ToolCalls) > 0 || m.FunctionCall != nil
}
