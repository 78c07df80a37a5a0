// Package projection applies document store changes to the relational mirror.
// It keeps each chat's last message pointer derived from the message set,
// and never lets it reference a row that is gone.
package projection

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"chat-mirror/errors"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
)

var _ contract.IProjector = (*Projector)(nil)

type Projector struct {
	store       contract.IDocumentStore
	mirror      contract.IMirror
	log         *slog.Logger
	conditional bool
}

type Option func(*Projector)

// WithConditionalPointer chooses between moving the pointer only forward in time (true)
// and letting the last applied insert win (false).
func WithConditionalPointer(conditional bool) Option {
	return func(p *Projector) { p.conditional = conditional }
}

func NewProjector(store contract.IDocumentStore, mirror contract.IMirror, log *slog.Logger, opts ...Option) *Projector {
	p := &Projector{store: store, mirror: mirror, log: log, conditional: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply projects one change event. It never panics nor returns an error: the outcome,
// failures included, is carried by the result.
func (p *Projector) Apply(ctx context.Context, evt domain.ChangeEvent) domain.ProjectionResult {
	var kind domain.ResultKind
	var err error
	switch evt.Type {
	case domain.ChangeAdded:
		kind, err = p.added(ctx, evt)
	case domain.ChangeModified:
		kind, err = p.modified(ctx, evt)
	case domain.ChangeRemoved:
		kind, err = p.removed(ctx, evt)
	default:
		kind, err = domain.ResultFailed, fmt.Errorf("%w: %q", errors.ErrUnknownChange, evt.Type)
	}
	result := domain.ProjectionResult{
		Seq:        evt.Seq,
		Type:       evt.Type,
		DocumentID: evt.DocumentID(),
		Kind:       kind,
		Err:        err,
	}
	p.logResult(result)
	return result
}

func (p *Projector) added(ctx context.Context, evt domain.ChangeEvent) (domain.ResultKind, error) {
	// The current snapshot wins over the event's: it carries later status changes,
	// and its absence means a removal is already committed.
	doc, ok, err := p.store.Get(ctx, domain.MessagesCollection, evt.DocumentID())
	if err != nil {
		return domain.ResultFailed, err
	}
	if !ok {
		return domain.ResultSkipped, nil
	}
	message, err := domain.MessageFromDocument(doc)
	if err != nil {
		return domain.ResultFailed, err
	}

	for _, userID := range []uint{message.SenderID, message.ReceiverID} {
		exists, err := p.mirror.UserExists(ctx, userID)
		if err != nil {
			return domain.ResultFailed, err
		}
		if !exists {
			return domain.ResultReferenceMissing, fmt.Errorf("%w: user %d", errors.ErrReferenceMissing, userID)
		}
	}
	if _, err = p.mirror.ChatByID(ctx, message.ChatID); err != nil {
		return referenceKind(err, "chat %d", message.ChatID)
	}

	row, err := p.mirror.InsertMessage(ctx, domain.ToMirroredMessage(message))
	switch {
	case stderrors.Is(err, errors.ErrDuplicate):
		return domain.ResultSkipped, nil
	case err != nil:
		return referenceKind(err, "message %s", message.ID)
	}

	moved, err := p.mirror.AdvanceLastMessage(ctx, row.ChatID, row.ID, row.CreatedAt, p.conditional)
	if err != nil {
		return domain.ResultFailed, err
	}
	if !moved {
		p.log.Debug("Pointer kept on a newer message", "chat_id", row.ChatID, "document_id", row.DocumentID)
	}
	return domain.ResultApplied, nil
}

func (p *Projector) modified(ctx context.Context, evt domain.ChangeEvent) (domain.ResultKind, error) {
	raw, _ := evt.Document.Fields[domain.FieldStatus].(string)
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return domain.ResultFailed, err
	}
	err = p.mirror.UpdateMessageStatus(ctx, evt.DocumentID(), status)
	if stderrors.Is(err, errors.ErrNotFound) {
		// Not materialized yet: the insert reads the current status.
		return domain.ResultSkipped, nil
	}
	if err != nil {
		return domain.ResultFailed, err
	}
	return domain.ResultApplied, nil
}

// removed resolves the chat pointer before deleting the row.
func (p *Projector) removed(ctx context.Context, evt domain.ChangeEvent) (domain.ResultKind, error) {
	row, err := p.mirror.MessageByDocumentID(ctx, evt.DocumentID())
	if stderrors.Is(err, errors.ErrNotFound) {
		return domain.ResultSkipped, nil
	}
	if err != nil {
		return domain.ResultFailed, err
	}

	chat, err := p.mirror.ChatByID(ctx, row.ChatID)
	switch {
	case stderrors.Is(err, errors.ErrNotFound):
		// Chat deleted, its rows go with it.
	case err != nil:
		return domain.ResultFailed, err
	case chat.PointsTo(row.ID):
		if err = p.repoint(ctx, chat.ID, row.DocumentID); err != nil {
			return domain.ResultFailed, err
		}
	}

	err = p.mirror.DeleteMessage(ctx, row.DocumentID)
	if stderrors.Is(err, errors.ErrNotFound) {
		return domain.ResultSkipped, nil
	}
	if err != nil {
		return domain.ResultFailed, err
	}
	return domain.ResultApplied, nil
}

// repoint moves the chat pointer off the removed message, onto the newest remaining
// document when it is mirrored, else onto the newest mirrored row, else clears it.
func (p *Projector) repoint(ctx context.Context, chatID uint, removedID string) error {
	docs, err := p.store.Query(ctx, domain.MessagesCollection, domain.Query{
		Where:   []domain.Filter{domain.Where(domain.FieldChatID, domain.OpEqual, chatID)},
		OrderBy: domain.FieldCreatedAt,
		Desc:    true,
		Limit:   2,
	})
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if doc.ID == removedID {
			continue
		}
		next, err := p.mirror.MessageByDocumentID(ctx, doc.ID)
		if err == nil {
			return p.mirror.SetLastMessage(ctx, chatID, next.ID, next.CreatedAt)
		}
		if !stderrors.Is(err, errors.ErrNotFound) {
			return err
		}
		break
	}

	next, err := p.mirror.LatestMessage(ctx, chatID, removedID)
	if stderrors.Is(err, errors.ErrNotFound) {
		return p.mirror.ClearLastMessage(ctx, chatID)
	}
	if err != nil {
		return err
	}
	return p.mirror.SetLastMessage(ctx, chatID, next.ID, next.CreatedAt)
}

func (p *Projector) logResult(r domain.ProjectionResult) {
	attrs := []any{"event", r.Type, "seq", r.Seq, "document_id", r.DocumentID, "kind", r.Kind}
	switch r.Kind {
	case domain.ResultApplied:
		p.log.Debug("Change projected", attrs...)
	case domain.ResultSkipped:
		p.log.Debug("Change skipped", attrs...)
	case domain.ResultReferenceMissing:
		p.log.Warn("Change dropped", append(attrs, "error", r.Err)...)
	default:
		p.log.Error("Change projection failed", append(attrs, "error", r.Err)...)
	}
}

func referenceKind(err error, format string, args ...any) (domain.ResultKind, error) {
	if stderrors.Is(err, errors.ErrNotFound) || stderrors.Is(err, errors.ErrReferenceMissing) {
		return domain.ResultReferenceMissing, fmt.Errorf("%w: %s", errors.ErrReferenceMissing, fmt.Sprintf(format, args...))
	}
	return domain.ResultFailed, err
}
