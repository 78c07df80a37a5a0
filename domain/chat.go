package domain

import (
	"chat-mirror/errors"
	"time"
)

// Chat is the relational conversation between two users.
// LastMessageID and LastMessageAt are derived from the message set and always move together.
type Chat struct {
	ID            uint       `json:"id"`
	User1ID       uint       `json:"user1Id"`
	User2ID       uint       `json:"user2Id"`
	LastMessageID *uint      `json:"lastMessageId,omitempty"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
}

func (c Chat) Has(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

func (c Chat) Other(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

func (c Chat) PointsTo(messageID uint) bool {
	return c.LastMessageID != nil && *c.LastMessageID == messageID
}

// ParticipantPair is the unordered pair of chat participants, normalized so that
// Low < High whatever the direction of the conversation.
type ParticipantPair struct {
	Low  uint
	High uint
}

func NewParticipantPair(a, b uint) (ParticipantPair, error) {
	if a == b {
		return ParticipantPair{}, errors.ErrSelfChat
	}
	if a > b {
		a, b = b, a
	}
	return ParticipantPair{Low: a, High: b}, nil
}

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"user"`
	FullName string `json:"fullName"`
	Photo    string `json:"photo,omitempty"`
}

type ChatSummary struct {
	Chat        Chat             `json:"chat"`
	Friend      UserSummary      `json:"friend"`
	LastMessage *MirroredMessage `json:"lastMessage,omitempty"`
}

// Notification is what the push collaborator receives for a new message.
type Notification struct {
	ChatID     uint
	SenderID   uint
	ReceiverID uint
	Content    string
}

// PushPayload is what reaches the device of the receiver.
type PushPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}
