package domain

import (
	"chat-mirror/errors"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestMessageFromDocument_DecodesStoreEncodings(t *testing.T) {
	req := require.New(t)
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	// Given a document as returned by a codec that turns every number into a float
	doc := Document{ID: "doc-1", Fields: map[string]any{
		FieldChatID:     float64(7),
		FieldSenderID:   float64(1),
		FieldReceiverID: "2",
		FieldContent:    "hello",
		FieldStatus:     "delivered",
		FieldCreatedAt:  TimestampValue(at),
	}}

	msg, err := MessageFromDocument(doc)

	req.NoError(err)
	req.Equal("doc-1", msg.ID)
	req.Equal(uint(7), msg.ChatID)
	req.Equal(uint(1), msg.SenderID)
	req.Equal(uint(2), msg.ReceiverID)
	req.Equal("hello", lo.FromPtr(msg.Content))
	req.Nil(msg.MediaURL)
	req.Equal(StatusDelivered, msg.Status)
	req.True(at.Equal(msg.CreatedAt))
}

func TestMessageFromDocument_MissingReference(t *testing.T) {
	_, err := MessageFromDocument(Document{ID: "x", Fields: map[string]any{
		FieldSenderID: 1, FieldReceiverID: 2, FieldCreatedAt: time.Now(),
	}})
	require.ErrorIs(t, err, errors.ErrMalformedDocument)
}

func TestMessageFromDocument_DefaultsToSent(t *testing.T) {
	msg, err := MessageFromDocument(Document{ID: "x", Fields: map[string]any{
		FieldChatID: 1, FieldSenderID: 1, FieldReceiverID: 2, FieldCreatedAt: time.Now(),
	}})
	require.NoError(t, err)
	require.Equal(t, StatusSent, msg.Status)
}

func TestParseStatus(t *testing.T) {
	req := require.New(t)
	for _, s := range []string{"sent", "delivered", "read"} {
		status, err := ParseStatus(s)
		req.NoError(err)
		req.Equal(MessageStatus(s), status)
	}
	_, err := ParseStatus("seen")
	req.ErrorIs(err, errors.ErrInvalidStatus)
}

func TestNewParticipantPair_IsUnordered(t *testing.T) {
	req := require.New(t)
	ab, err := NewParticipantPair(9, 4)
	req.NoError(err)
	ba, err := NewParticipantPair(4, 9)
	req.NoError(err)
	req.Equal(ab, ba)
	req.Equal(ParticipantPair{Low: 4, High: 9}, ab)

	_, err = NewParticipantPair(3, 3)
	req.ErrorIs(err, errors.ErrSelfChat)
}
