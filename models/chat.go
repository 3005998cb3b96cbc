package models

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderModel Sender = "model"
)

// ChatMessage is one entry in a chat session's append-only log.
type ChatMessage struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}
