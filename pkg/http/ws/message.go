package ws

import "encoding/json"

// MessageType constants for the couple realtime protocol.
const (
	// Client -> Server
	TypePing = "ping"

	// Server -> Client
	TypePong            = "pong"
	TypeSessionRecorded = "session_recorded"
	TypeInsightsUpdated = "insights_updated"
	TypeError           = "error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// SessionRecordedPayload notifies both partners that a game session landed.
type SessionRecordedPayload struct {
	CoupleKey     string  `json:"couple_key"`
	RecordedBy    string  `json:"recorded_by"`
	QuestionCount int     `json:"question_count"`
	Engagement    float64 `json:"engagement"`
}

// InsightsUpdatedPayload tells a client its insight report is stale.
type InsightsUpdatedPayload struct {
	UserID string `json:"user_id"`
}

// ErrorPayload carries protocol-level errors to the client.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewMessage marshals payload into a Message; marshal failures fall back to
// an empty payload rather than dropping the event.
func NewMessage(msgType string, payload interface{}) Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{Type: msgType}
	}
	return Message{Type: msgType, Payload: raw}
}
