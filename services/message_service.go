package services

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"chat-mirror/errors"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const notifyTimeout = 10 * time.Second

var validate = validator.New()

type IMessageService interface {
	Send(ctx context.Context, cmd SendCommand) (SendResult, error)
	GetMessages(ctx context.Context, query MessagesQuery) (MessagePage, error)
	UpdateStatus(ctx context.Context, documentID, status string) (domain.MessageStatus, error)
	DeleteMessage(ctx context.Context, userID uint, documentID string) error
}

type SendCommand struct {
	SenderID   uint    `validate:"required"`
	ReceiverID uint    `validate:"required,nefield=SenderID"`
	Content    *string `validate:"omitempty,max=4096"`
	MediaURL   *string `validate:"omitempty,url"`
}

type Friend struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
}

type SendResult struct {
	Message domain.MessageDocument `json:"message"`
	Friend  Friend                 `json:"friend"`
}

type MessagesQuery struct {
	UserID   uint `validate:"required"`
	FriendID uint `validate:"required"`
	Page     int  `validate:"min=1"`
	PageSize int  `validate:"min=1"`
}

type MessagePage struct {
	Messages    []domain.MessageDocument `json:"messages"`
	CurrentPage int                      `json:"currentPage"`
}

// MessageService is the write path of messages. It never touches the chat pointer:
// the projector owns it.
type MessageService struct {
	store       contract.IDocumentStore
	mirror      contract.IMirror
	notifier    contract.INotifier
	log         *slog.Logger
	maxPageSize int
	now         func() time.Time
	pending     sync.WaitGroup
}

func NewMessageService(store contract.IDocumentStore, mirror contract.IMirror, notifier contract.INotifier,
	log *slog.Logger, maxPageSize int) *MessageService {
	return &MessageService{
		store:       store,
		mirror:      mirror,
		notifier:    notifier,
		log:         log,
		maxPageSize: maxPageSize,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Send resolves the chat of the pair, creating it on first contact, then appends the
// authoritative document. The push notification runs in the background and its
// failure never fails the send.
func (s *MessageService) Send(ctx context.Context, cmd SendCommand) (SendResult, error) {
	if err := validateSend(cmd); err != nil {
		return SendResult{}, err
	}
	receiver, err := s.mirror.UserSummary(ctx, cmd.ReceiverID)
	if err != nil {
		return SendResult{}, err
	}
	chat, err := s.mirror.FindOrCreateChat(ctx, cmd.SenderID, cmd.ReceiverID)
	if err != nil {
		return SendResult{}, err
	}

	message := domain.MessageDocument{
		ChatID:     chat.ID,
		SenderID:   cmd.SenderID,
		ReceiverID: cmd.ReceiverID,
		Content:    cmd.Content,
		MediaURL:   cmd.MediaURL,
		Status:     domain.StatusSent,
		CreatedAt:  s.now(),
	}
	if message.ID, err = s.store.Append(ctx, domain.MessagesCollection, message.Fields()); err != nil {
		return SendResult{}, err
	}
	s.log.Debug("Message appended", "document_id", message.ID, "chat_id", chat.ID)

	s.notify(ctx, domain.Notification{
		ChatID:     chat.ID,
		SenderID:   cmd.SenderID,
		ReceiverID: cmd.ReceiverID,
		Content:    lo.FromPtr(cmd.Content),
	})
	return SendResult{
		Message: message,
		Friend:  Friend{ID: receiver.ID, FullName: receiver.FullName},
	}, nil
}

func (s *MessageService) notify(ctx context.Context, n domain.Notification) {
	if s.notifier == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(notifyCtx, n); err != nil {
			s.log.Warn("Push notification failed", "chat_id", n.ChatID, "error", err)
		}
	}()
}

// Wait blocks until the background notifications are done.
func (s *MessageService) Wait() {
	s.pending.Wait()
}

// GetMessages pages a conversation in creation order. The page is read from the
// authoritative store, so it does not lag behind the mirror.
func (s *MessageService) GetMessages(ctx context.Context, query MessagesQuery) (MessagePage, error) {
	if err := validate.Struct(query); err != nil {
		return MessagePage{}, fmt.Errorf("%w: %v", errors.ErrInvalidPagination, err)
	}
	if s.maxPageSize > 0 && query.PageSize > s.maxPageSize {
		return MessagePage{}, fmt.Errorf("%w: page size %d above %d", errors.ErrInvalidPagination, query.PageSize, s.maxPageSize)
	}
	chat, err := s.mirror.FindChat(ctx, query.UserID, query.FriendID)
	if err != nil {
		return MessagePage{}, err
	}
	docs, err := s.store.Query(ctx, domain.MessagesCollection, domain.Query{
		Where:   []domain.Filter{domain.Where(domain.FieldChatID, domain.OpEqual, chat.ID)},
		OrderBy: domain.FieldCreatedAt,
		Offset:  (query.Page - 1) * query.PageSize,
		Limit:   query.PageSize,
	})
	if err != nil {
		return MessagePage{}, err
	}
	messages := make([]domain.MessageDocument, 0, len(docs))
	for _, doc := range docs {
		message, err := domain.MessageFromDocument(doc)
		if err != nil {
			s.log.Warn("Skipping malformed message", "document_id", doc.ID, "error", err)
			continue
		}
		messages = append(messages, message)
	}
	return MessagePage{Messages: messages, CurrentPage: query.Page}, nil
}

// UpdateStatus rejects unknown statuses before touching the store.
func (s *MessageService) UpdateStatus(ctx context.Context, documentID, status string) (domain.MessageStatus, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return "", err
	}
	if err = s.store.Update(ctx, domain.MessagesCollection, documentID, map[string]any{domain.FieldStatus: string(parsed)}); err != nil {
		return "", err
	}
	return parsed, nil
}

// DeleteMessage is allowed to the sender only. The projector moves the chat pointer
// when the removal reaches the mirror.
func (s *MessageService) DeleteMessage(ctx context.Context, userID uint, documentID string) error {
	doc, ok, err := s.store.Get(ctx, domain.MessagesCollection, documentID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: message %s", errors.ErrNotFound, documentID)
	}
	senderID, err := domain.UintField(doc.Fields, domain.FieldSenderID)
	if err != nil {
		return err
	}
	if senderID != userID {
		return fmt.Errorf("%w: user %d is not the sender of %s", errors.ErrForbidden, userID, documentID)
	}
	return s.store.Delete(ctx, domain.MessagesCollection, documentID)
}

func validateSend(cmd SendCommand) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidMessage, err)
	}
	if strings.TrimSpace(lo.FromPtr(cmd.Content)) == "" && lo.FromPtr(cmd.MediaURL) == "" {
		return fmt.Errorf("%w: content or media required", errors.ErrInvalidMessage)
	}
	return nil
}
