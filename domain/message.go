// Package domain contains core concepts of the message mirror.
// This file defines the authoritative message document and its relational copy.
// Documents are immutable except for their status and their existence.
package domain

import (
	"chat-mirror/errors"
	"fmt"
	"time"
)

// MessagesCollection is the authoritative collection holding every message document.
const MessagesCollection = "chats"

// UsersCollection holds per-user documents such as the push device token.
const UsersCollection = "users"

const (
	FieldChatID      = "chatId"
	FieldSenderID    = "senderId"
	FieldReceiverID  = "receiverId"
	FieldContent     = "content"
	FieldMediaURL    = "mediaUrl"
	FieldStatus      = "status"
	FieldCreatedAt   = "createdAt"
	FieldDeviceToken = "deviceToken"
)

type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
)

func (s MessageStatus) Valid() bool {
	switch s {
	case StatusSent, StatusDelivered, StatusRead:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (MessageStatus, error) {
	status := MessageStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", errors.ErrInvalidStatus, s)
	}
	return status, nil
}

// MessageDocument is the authoritative message as held by the document store.
type MessageDocument struct {
	ID         string        `json:"id"`
	ChatID     uint          `json:"chatId"`
	SenderID   uint          `json:"senderId"`
	ReceiverID uint          `json:"receiverId"`
	Content    *string       `json:"content,omitempty"`
	MediaURL   *string       `json:"mediaUrl,omitempty"`
	Status     MessageStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Fields returns the document body, the identifier excluded.
func (m MessageDocument) Fields() map[string]any {
	fields := map[string]any{
		FieldChatID:     m.ChatID,
		FieldSenderID:   m.SenderID,
		FieldReceiverID: m.ReceiverID,
		FieldStatus:     string(m.Status),
		FieldCreatedAt:  m.CreatedAt,
	}
	if m.Content != nil {
		fields[FieldContent] = *m.Content
	}
	if m.MediaURL != nil {
		fields[FieldMediaURL] = *m.MediaURL
	}
	return fields
}

// MessageFromDocument decodes a raw document snapshot.
// Identifiers may come back as floats, integers or strings depending on the store codec,
// and the creation time may be any of the forms accepted by NormalizeTimestamp.
func MessageFromDocument(doc Document) (MessageDocument, error) {
	chatID, err := UintField(doc.Fields, FieldChatID)
	if err != nil {
		return MessageDocument{}, err
	}
	senderID, err := UintField(doc.Fields, FieldSenderID)
	if err != nil {
		return MessageDocument{}, err
	}
	receiverID, err := UintField(doc.Fields, FieldReceiverID)
	if err != nil {
		return MessageDocument{}, err
	}
	createdAt, err := NormalizeTimestamp(doc.Fields[FieldCreatedAt])
	if err != nil {
		return MessageDocument{}, fmt.Errorf("document %s: %w", doc.ID, err)
	}
	status := StatusSent
	if raw, ok := doc.Fields[FieldStatus].(string); ok && raw != "" {
		if status, err = ParseStatus(raw); err != nil {
			return MessageDocument{}, err
		}
	}
	return MessageDocument{
		ID:         doc.ID,
		ChatID:     chatID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    optionalString(doc.Fields[FieldContent]),
		MediaURL:   optionalString(doc.Fields[FieldMediaURL]),
		Status:     status,
		CreatedAt:  createdAt,
	}, nil
}

// MirroredMessage is the relational copy of a message document.
// DocumentID is the unique link back to the authoritative record.
type MirroredMessage struct {
	ID         uint          `json:"id"`
	DocumentID string        `json:"documentId"`
	ChatID     uint          `json:"chatId"`
	SenderID   uint          `json:"senderId"`
	ReceiverID uint          `json:"receiverId"`
	Content    *string       `json:"content,omitempty"`
	MediaURL   *string       `json:"mediaUrl,omitempty"`
	Status     MessageStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}

func ToMirroredMessage(m MessageDocument) MirroredMessage {
	return MirroredMessage{
		DocumentID: m.ID,
		ChatID:     m.ChatID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		MediaURL:   m.MediaURL,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}
}

// Fields rebuilds the document body of a mirrored row, used when replaying a removal
// for a row whose document no longer exists.
func (m MirroredMessage) Fields() map[string]any {
	return MessageDocument{
		ID:         m.DocumentID,
		ChatID:     m.ChatID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		MediaURL:   m.MediaURL,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}.Fields()
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}
