package domain

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ApologyMessage replaces the bot reply whenever a turn fails.
const ApologyMessage = "Sorry, something went wrong. Please try again later."

// Message is one entry of a conversation. Timestamp is ISO-8601.
type Message struct {
	ID        string `json:"id"`
	Sender    Sender `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChatRequest is the body posted to {server_url}/api/chat
type ChatRequest struct {
	ClientID            string    `json:"client_id"`
	SessionID           string    `json:"session_id"`
	Message             string    `json:"message"`
	ConversationHistory []Message `json:"conversation_history"`
}

// ChatResponse is the assistant reply. Response is nil when the field was absent.
type ChatResponse struct {
	Response *string `json:"response"`
}
