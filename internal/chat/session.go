package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/legalease/legalease/backend/go-services/internal/llm"
	"github.com/legalease/legalease/backend/go-services/pkg/logger"
)

// Apology is the canned reply shown when the assistant cannot answer.
const Apology = "I'm sorry, I couldn't retrieve an answer. Please try again later."

// ErrAwaitingReply rejects a prompt sent while the previous one is unanswered.
var ErrAwaitingReply = errors.New("previous prompt still awaiting reply")

// Session is one user's conversation with the assistant. A session accepts
// one prompt at a time: while a reply is pending further prompts are
// rejected, so the transcript always alternates user and bot messages.
type Session struct {
	mu       sync.Mutex
	userID   string
	awaiting bool
	messages []Message
	history  HistoryRepository
	msgLog   MessageLog
}

// NewSession creates a session and preloads the transcript from history.
// A history load failure is not fatal: the user starts with an empty
// transcript and new turns are still mirrored.
func NewSession(ctx context.Context, userID string, history HistoryRepository) *Session {
	s := &Session{userID: userID, history: history}
	if history != nil {
		turns, err := history.Replay(ctx, userID)
		if err != nil {
			logger.Warnf("chat: replay history for %s: %v", userID, err)
		}
		for _, t := range turns {
			s.messages = append(s.messages,
				Message{Sender: SenderUser, Text: t.UserMessage, Timestamp: t.CreatedAt},
				Message{Sender: SenderBot, Text: t.BotResponse, Timestamp: t.CreatedAt},
			)
		}
	}
	return s
}

// Messages returns a copy of the transcript in order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Ask sends the prompt to the assistant and appends both sides of the
// exchange to the transcript. When the assistant fails the bot side is the
// apology text and the underlying error is returned alongside it. Mirroring
// to history is best effort; a mirror failure never loses the live reply.
func (s *Session) Ask(ctx context.Context, drafter llm.Drafter, prompt string) (string, error) {
	s.mu.Lock()
	if s.awaiting {
		s.mu.Unlock()
		return "", ErrAwaitingReply
	}
	s.awaiting = true
	askedAt := time.Now().UTC()
	s.messages = append(s.messages, Message{Sender: SenderUser, Text: prompt, Timestamp: askedAt})
	s.mu.Unlock()

	reply, askErr := drafter.Chat(ctx, prompt)
	if askErr != nil || reply == "" {
		if askErr == nil {
			askErr = errors.New("empty reply")
		}
		reply = Apology
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.messages = append(s.messages, Message{Sender: SenderBot, Text: reply, Timestamp: now})
	s.awaiting = false
	s.mu.Unlock()

	if s.history != nil {
		turn := Turn{UserMessage: prompt, BotResponse: reply, CreatedAt: now}
		if err := s.history.Append(ctx, s.userID, turn); err != nil {
			logger.Warnf("chat: mirror turn for %s: %v", s.userID, err)
		}
	}
	s.logMessage(ctx, Message{Sender: SenderUser, Text: prompt, Timestamp: askedAt})
	s.logMessage(ctx, Message{Sender: SenderBot, Text: reply, Timestamp: now})
	return reply, askErr
}

// logMessage mirrors one message to the per-message log, best effort.
func (s *Session) logMessage(ctx context.Context, msg Message) {
	if s.msgLog == nil {
		return
	}
	if err := s.msgLog.Log(ctx, s.userID, msg); err != nil {
		logger.Warnf("chat: log message for %s: %v", s.userID, err)
	}
}

// RecordUpload appends an upload notice and its acknowledgement to the
// transcript, mirroring them to history like a normal turn.
func (s *Session) RecordUpload(ctx context.Context, filename, url string) string {
	notice := fmt.Sprintf("Uploaded file: %s", filename)
	ack := fmt.Sprintf("Received your file %q. You can reference it in your next question.", filename)
	if url != "" {
		ack = fmt.Sprintf("Received your file %q (stored at %s). You can reference it in your next question.", filename, url)
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.messages = append(s.messages,
		Message{Sender: SenderUser, Text: notice, Timestamp: now},
		Message{Sender: SenderBot, Text: ack, Timestamp: now},
	)
	s.mu.Unlock()

	if s.history != nil {
		turn := Turn{UserMessage: notice, BotResponse: ack, CreatedAt: now}
		if err := s.history.Append(ctx, s.userID, turn); err != nil {
			logger.Warnf("chat: mirror upload for %s: %v", s.userID, err)
		}
	}
	s.logMessage(ctx, Message{Sender: SenderUser, Text: notice, Timestamp: now})
	s.logMessage(ctx, Message{Sender: SenderBot, Text: ack, Timestamp: now})
	return ack
}

// Manager hands out one chat session per user.
type Manager struct {
	mu       sync.Mutex
	history  HistoryRepository
	msgLog   MessageLog
	sessions map[string]*Session
}

func NewManager(history HistoryRepository) *Manager {
	return &Manager{history: history, sessions: map[string]*Session{}}
}

// WithMessageLog enables per-message mirroring for sessions created after
// the call.
func (m *Manager) WithMessageLog(l MessageLog) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgLog = l
	return m
}

// Get returns the session for userID, creating it (and replaying history)
// on first use.
func (m *Manager) Get(ctx context.Context, userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := NewSession(ctx, userID, m.history)
	s.msgLog = m.msgLog
	m.sessions[userID] = s
	return s
}
