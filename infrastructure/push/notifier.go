package push

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"chat-mirror/errors"
	"context"
	stderrors "errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultTitle = "New message"
	defaultBody  = "You have a new message!"
	maxRetries   = 3
)

var _ contract.INotifier = (*TokenNotifier)(nil)

// TokenNotifier resolves the device token of the receiver from the users collection
// and hands the payload to a pusher. A receiver without a token is silently skipped.
type TokenNotifier struct {
	store        contract.IDocumentStore
	pusher       contract.IPusher
	log          *slog.Logger
	initialDelay time.Duration
}

func NewTokenNotifier(store contract.IDocumentStore, pusher contract.IPusher, log *slog.Logger, initialDelay time.Duration) *TokenNotifier {
	return &TokenNotifier{store: store, pusher: pusher, log: log, initialDelay: initialDelay}
}

func (n *TokenNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	token, err := n.DeviceToken(ctx, notification.ReceiverID)
	if err != nil {
		return err
	}
	if token == "" {
		n.log.Debug("No device token, push skipped", "receiver_id", notification.ReceiverID)
		return nil
	}

	payload := domain.PushPayload{
		Title: defaultTitle,
		Body:  notification.Content,
		Data: map[string]string{
			"senderId": strconv.FormatUint(uint64(notification.SenderID), 10),
			"chatId":   strconv.FormatUint(uint64(notification.ChatID), 10),
		},
	}
	if payload.Body == "" {
		payload.Body = defaultBody
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = n.initialDelay
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := n.pusher.Push(ctx, token, payload)
		if stderrors.Is(err, errors.ErrUnregistered) {
			return backoff.Permanent(err)
		}
		if err != nil {
			n.log.Debug("Push attempt failed", "receiver_id", notification.ReceiverID, "attempt", attempt, "error", err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx))
}

// DeviceToken returns an empty token when the user never registered a device.
func (n *TokenNotifier) DeviceToken(ctx context.Context, userID uint) (string, error) {
	doc, ok, err := n.store.Get(ctx, domain.UsersCollection, userKey(userID))
	if err != nil || !ok {
		return "", err
	}
	token, _ := doc.Fields[domain.FieldDeviceToken].(string)
	return token, nil
}

// RegisterDevice stores the device token of a user, replacing the previous one.
func (n *TokenNotifier) RegisterDevice(ctx context.Context, userID uint, token string) error {
	key := userKey(userID)
	fields := map[string]any{domain.FieldDeviceToken: token}
	err := n.store.Update(ctx, domain.UsersCollection, key, fields)
	if stderrors.Is(err, errors.ErrNotFound) {
		return n.store.Put(ctx, domain.UsersCollection, key, fields)
	}
	return err
}

func userKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
