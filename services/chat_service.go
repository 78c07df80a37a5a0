package services

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"chat-mirror/errors"
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

const deleteConcurrency = 8

type IChatService interface {
	ListChats(ctx context.Context, userID uint) ([]domain.ChatSummary, error)
	DeleteChat(ctx context.Context, userID, chatID uint) error
}

type ChatService struct {
	store  contract.IDocumentStore
	mirror contract.IMirror
	log    *slog.Logger
}

func NewChatService(store contract.IDocumentStore, mirror contract.IMirror, log *slog.Logger) *ChatService {
	return &ChatService{store: store, mirror: mirror, log: log}
}

// ListChats reads the mirror, so the newest messages may not be there yet.
func (s *ChatService) ListChats(ctx context.Context, userID uint) ([]domain.ChatSummary, error) {
	return s.mirror.ChatsForUser(ctx, userID)
}

// DeleteChat removes every document of the conversation before the chat row, so that
// no mirrored message outlives its parent.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID uint) error {
	chat, err := s.mirror.ChatByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.Has(userID) {
		return fmt.Errorf("%w: user %d is not in chat %d", errors.ErrForbidden, userID, chatID)
	}

	docs, err := s.store.Query(ctx, domain.MessagesCollection, domain.Query{
		Where: []domain.Filter{domain.Where(domain.FieldChatID, domain.OpEqual, chatID)},
	})
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)
	for _, doc := range docs {
		g.Go(func() error {
			return s.store.Delete(gctx, domain.MessagesCollection, doc.ID)
		})
	}
	if err = g.Wait(); err != nil {
		return fmt.Errorf("deleting messages of chat %d: %w", chatID, err)
	}

	s.log.Info("Chat deleted", "chat_id", chatID, "messages", len(docs))
	return s.mirror.DeleteChat(ctx, chatID)
}
