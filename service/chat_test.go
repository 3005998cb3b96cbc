package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattiafranchi89-debug/Mattia-UW/models"
)

type scriptedReplier struct {
	reply string
	err   error
	block chan struct{}
}

func (r *scriptedReplier) Reply(context.Context, string) (string, error) {
	if r.block != nil {
		<-r.block
	}
	return r.reply, r.err
}

func sessionWith(replier ChatReplier) *ChatSession {
	return newChatSession(replier)
}

func TestChatSessionStartsWithGreeting(t *testing.T) {
	s := sessionWith(&scriptedReplier{})

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.SenderModel, msgs[0].Sender)
	assert.Equal(t, Greeting, msgs[0].Text)
}

func TestChatSessionAppendsUserAndReply(t *testing.T) {
	s := sessionWith(&scriptedReplier{reply: "The entity is Acme S.p.A."})

	reply, err := s.SendMessage(context.Background(), "Who is the insured?")
	require.NoError(t, err)
	assert.Equal(t, models.SenderModel, reply.Sender)
	assert.Equal(t, "The entity is Acme S.p.A.", reply.Text)

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, models.SenderUser, msgs[1].Sender)
	assert.Equal(t, "Who is the insured?", msgs[1].Text)
	assert.Equal(t, reply, msgs[2])
}

func TestChatSessionOverloadedErrorBecomesScriptedReply(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"503", errors.New("rpc error: code 503"), overloadedReplyError},
		{"unavailable", errors.New("UNAVAILABLE: try later"), overloadedReplyError},
		{"overloaded", errors.New("the model is overloaded"), overloadedReplyError},
		{"other", errors.New("connection reset"), genericReplyError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sessionWith(&scriptedReplier{err: tt.err})

			reply, err := s.SendMessage(context.Background(), "hello")
			require.NoError(t, err, "transport errors must not surface to the caller")
			assert.Equal(t, tt.want, reply.Text)

			// Every accepted send grows the log by exactly two messages.
			assert.Len(t, s.Messages(), 3)
		})
	}
}

func TestChatSessionRejectsConcurrentSend(t *testing.T) {
	replier := &scriptedReplier{reply: "done", block: make(chan struct{})}
	s := sessionWith(replier)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.SendMessage(context.Background(), "first")
	}()

	// Wait until the first send holds the in-flight slot.
	require.Eventually(t, func() bool {
		return len(s.Messages()) == 2
	}, time.Second, 5*time.Millisecond)

	_, err := s.SendMessage(context.Background(), "second")
	assert.ErrorIs(t, err, ErrReplyInFlight)

	close(replier.block)
	wg.Wait()
	assert.Len(t, s.Messages(), 3)
}

func TestSystemInstructionEmbedsRecord(t *testing.T) {
	entity := "Acme S.p.A."
	record := &models.ExtractedData{}
	record.Anagrafica.EntityName = &entity
	record.Normalize()

	instruction := SystemInstruction(record)
	assert.Contains(t, instruction, `"RiskBot"`)
	assert.Contains(t, instruction, `"entityName": "Acme S.p.A."`)
	assert.Contains(t, instruction, "answer questions based *exclusively*")
}

func TestChatManagerRebuildsOnIdentityChange(t *testing.T) {
	created := 0
	m := NewChatManager(func(*models.ExtractedData) ChatReplier {
		created++
		return &scriptedReplier{reply: "ok"}
	})

	record := &models.ExtractedData{}
	firstID := uuid.New()

	s1 := m.SessionFor(firstID, record)
	s1.SendMessage(context.Background(), "hi")

	// Same identity, even with an edited record value, keeps the session.
	s2 := m.SessionFor(firstID, record)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, created)
	assert.Len(t, s2.Messages(), 3)

	// A new identity starts a fresh conversation.
	s3 := m.SessionFor(uuid.New(), record)
	assert.NotSame(t, s1, s3)
	assert.Equal(t, 2, created)
	assert.Len(t, s3.Messages(), 1)
}
