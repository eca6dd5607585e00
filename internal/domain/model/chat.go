package model

import (
	"strings"
	"time"
)

// ChatTitleMaxLen bounds the derived session title.
const ChatTitleMaxLen = 50

// DefaultChatTitle is used when a session has no usable first message.
const DefaultChatTitle = "New Chat"

// ChatMessage is one immutable entry in a conversation. IDs are ULIDs so
// creation order is recoverable from the ID alone.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatSession is the aggregate root for one consultant conversation.
// A session is only ever persisted once it holds at least one message.
type ChatSession struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	UpdatedAt time.Time     `json:"timestamp"`
}

func NewChatSession(id, userID string) *ChatSession {
	return &ChatSession{
		ID:        id,
		UserID:    userID,
		Title:     DefaultChatTitle,
		Messages:  make([]ChatMessage, 0, 8),
		UpdatedAt: time.Now(),
	}
}

// Append adds a message and refreshes the derived title and timestamp.
func (s *ChatSession) Append(m ChatMessage) {
	s.Messages = append(s.Messages, m)
	s.Title = DeriveTitle(s.Messages)
	s.UpdatedAt = time.Now()
}

func (s *ChatSession) Empty() bool { return s == nil || len(s.Messages) == 0 }

// DeriveTitle takes the leading characters of the first message.
func DeriveTitle(messages []ChatMessage) string {
	if len(messages) == 0 {
		return DefaultChatTitle
	}
	t := strings.TrimSpace(messages[0].Text)
	if t == "" {
		return DefaultChatTitle
	}
	r := []rune(t)
	if len(r) > ChatTitleMaxLen {
		return string(r[:ChatTitleMaxLen])
	}
	return t
}

// ChatSessionSummary is the history-list projection of a session.
type ChatSessionSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  int       `json:"messageCount"`
	UpdatedAt time.Time `json:"timestamp"`
}

func (s *ChatSession) Summary() ChatSessionSummary {
	return ChatSessionSummary{
		ID:        s.ID,
		Title:     s.Title,
		Messages:  len(s.Messages),
		UpdatedAt: s.UpdatedAt,
	}
}
