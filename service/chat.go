package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

// Greeting opens every chat session.
const Greeting = "Hello! I am RiskBot, your AI assistant. Ask me anything about the extracted data from the document."

const (
	genericReplyError    = "Sorry, I encountered an error. Please try again."
	overloadedReplyError = "The AI assistant is currently overloaded. Please wait a moment before sending your message again."
)

// ErrReplyInFlight is returned when a message arrives while the previous one
// is still being answered.
var ErrReplyInFlight = errors.New("a reply is already in progress")

const systemInstructionFormat = `You are a helpful AI assistant for an insurance underwriter. Your name is "RiskBot".
Your purpose is to answer questions based *exclusively* on the following JSON data which represents extracted information from an insurance document.
Do not use any external knowledge or make assumptions beyond what is provided in this data.
If a question cannot be answered from the data, state that clearly. Keep your answers concise and professional.
Format your answers for readability, using bullet points or bold text where helpful.

Here is the risk data:
%s
`

// ChatReplier produces the model's answer to one user message, carrying the
// conversation history internally.
type ChatReplier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// ReplierFactory builds a fresh replier primed with a record snapshot.
type ReplierFactory func(record *models.ExtractedData) ChatReplier

// SystemInstruction renders the assistant's grounding prompt with the record
// embedded as indented JSON.
func SystemInstruction(record *models.ExtractedData) string {
	encoded, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		encoded = []byte("{}")
	}
	return fmt.Sprintf(systemInstructionFormat, encoded)
}

// NewGenaiReplierFactory produces repliers backed by the SDK's multi-turn
// chat, one per record snapshot.
func NewGenaiReplierFactory(client *genai.Client, modelName string) ReplierFactory {
	return func(record *models.ExtractedData) ChatReplier {
		model := client.GenerativeModel(modelName)
		model.SetTemperature(0.3)
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(SystemInstruction(record))},
		}
		return &genaiReplier{chat: model.StartChat()}
	}
}

type genaiReplier struct {
	chat *genai.ChatSession
}

func (r *genaiReplier) Reply(ctx context.Context, message string) (string, error) {
	resp, err := r.chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String(), nil
}

// ChatSession is one conversation grounded on a record snapshot. Its message
// log is append-only and starts with the greeting.
type ChatSession struct {
	mu       sync.Mutex
	inFlight bool
	messages []models.ChatMessage
	replier  ChatReplier
}

func newChatSession(replier ChatReplier) *ChatSession {
	return &ChatSession{
		messages: []models.ChatMessage{{Sender: models.SenderModel, Text: Greeting}},
		replier:  replier,
	}
}

// Messages returns a copy of the conversation log.
func (s *ChatSession) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// SendMessage appends the user's message, asks the model for an answer and
// appends the reply. Model failures never surface as errors: they become a
// scripted assistant message so the log stays consistent. The only error is
// ErrReplyInFlight when a previous message is still pending.
func (s *ChatSession) SendMessage(ctx context.Context, text string) (models.ChatMessage, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrReplyInFlight
	}
	s.inFlight = true
	s.messages = append(s.messages, models.ChatMessage{Sender: models.SenderUser, Text: text})
	s.mu.Unlock()

	answer, err := s.replier.Reply(ctx, text)
	if err != nil {
		log.Printf("Chat reply failed: %v", err)
		answer = classifyReplyError(err)
	}

	reply := models.ChatMessage{Sender: models.SenderModel, Text: answer}
	s.mu.Lock()
	s.messages = append(s.messages, reply)
	s.inFlight = false
	s.mu.Unlock()
	return reply, nil
}

func classifyReplyError(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "503") || strings.Contains(msg, "UNAVAILABLE") || strings.Contains(msg, "overloaded") {
		return overloadedReplyError
	}
	return genericReplyError
}

// ChatManager hands out the chat session for the current record. The session
// is rebuilt whenever the record identity changes, so a conversation always
// reflects the snapshot it was opened on.
type ChatManager struct {
	mu         sync.Mutex
	newReplier ReplierFactory
	current    *ChatSession
	currentID  uuid.UUID
}

// NewChatManager builds a manager using the given replier factory.
func NewChatManager(factory ReplierFactory) *ChatManager {
	return &ChatManager{newReplier: factory}
}

// SessionFor returns the session bound to the given record identity,
// creating a fresh one when the identity is new.
func (m *ChatManager) SessionFor(recordID uuid.UUID, record *models.ExtractedData) *ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || m.currentID != recordID {
		m.current = newChatSession(m.newReplier(record))
		m.currentID = recordID
	}
	return m.current
}
