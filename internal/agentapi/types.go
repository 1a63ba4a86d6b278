// internal/agentapi/types.go
package agentapi

// Thread is a conversation record owned by the agent server. Only the
// fields below are interpreted; Values is whatever the graph stored.
type Thread struct {
	ThreadID  string         `json:"thread_id"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
	Status    string         `json:"status,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Values    any            `json:"values,omitempty"`
}

// Message is one entry of a thread's values.messages
type Message struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type,omitempty"` // human, ai, tool, system
	Role    string `json:"role,omitempty"` // user, assistant
	Content any    `json:"content"`        // string or list of content parts
}

// IsHuman reports whether the message was written by the user
func (m Message) IsHuman() bool {
	return m.Type == "human" || m.Role == "user"
}

// Messages extracts values.messages. Values that are not an object, or
// entries that are not objects, are skipped.
func (t Thread) Messages() []Message {
	values, ok := t.Values.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := values["messages"].([]any)
	if !ok {
		return nil
	}

	msgs := make([]Message, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var m Message
		m.ID, _ = obj["id"].(string)
		m.Type, _ = obj["type"].(string)
		m.Role, _ = obj["role"].(string)
		m.Content = obj["content"]
		msgs = append(msgs, m)
	}
	return msgs
}

// RunRequest is the body of a blocking run on a thread
type RunRequest struct {
	AssistantID string    `json:"assistant_id"`
	Input       RunInput  `json:"input"`
	Config      RunConfig `json:"config"`
}

type RunInput struct {
	Messages []Message `json:"messages"`
}

type RunConfig struct {
	Configurable map[string]any `json:"configurable,omitempty"`
}

type searchRequest struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type createThreadRequest struct {
	ThreadID string         `json:"thread_id"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
