package response_models

type ChatEventType string

const (
	ChatEventMessage      ChatEventType = "message"
	ChatEventLoading      ChatEventType = "loading"
	ChatEventExportLink   ChatEventType = "export_link"
	ChatEventExportFailed ChatEventType = "export_failed"
)

type ChatSender string

const (
	SenderUser ChatSender = "user"
	SenderBot  ChatSender = "bot"
)

// ChatEvent is one display instruction for the chat surface.
type ChatEvent struct {
	Type       ChatEventType  `json:"type"`
	Sender     ChatSender     `json:"sender,omitempty"`
	Text       string         `json:"text,omitempty"`
	IsTripPlan bool           `json:"is_trip_plan,omitempty"`
	Blocks     []DisplayBlock `json:"blocks,omitempty"`
	Loading    *bool          `json:"loading,omitempty"`
	URL        string         `json:"url,omitempty"`
}

type DisplayBlockKind string

const (
	BlockBreak      DisplayBlockKind = "break"
	BlockDayHeading DisplayBlockKind = "day_heading"
	BlockTimeSlot   DisplayBlockKind = "time_slot"
	BlockParagraph  DisplayBlockKind = "paragraph"
)

type DisplayBlock struct {
	Kind      DisplayBlockKind `json:"kind"`
	Text      string           `json:"text,omitempty"`
	StartTime string           `json:"start_time,omitempty"`
	EndTime   string           `json:"end_time,omitempty"`
}

type ConversationResponse struct {
	ConversationID string      `json:"conversation_id"`
	State          string      `json:"state"`
	TripID         string      `json:"trip_id,omitempty"`
	Events         []ChatEvent `json:"events"`
}
