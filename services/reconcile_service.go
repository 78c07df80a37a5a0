package services

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"chat-mirror/errors"
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/samber/lo"
)

// Report is the diff between the authoritative messages of a chat and their mirror.
type Report struct {
	ChatID      uint                      `json:"chatId"`
	Documents   int                       `json:"documents"`
	Rows        int                       `json:"rows"`
	Missing     []string                  `json:"missing"`
	Orphans     []string                  `json:"orphans"`
	StaleStatus []string                  `json:"staleStatus"`
	PointerOK   bool                      `json:"pointerOk"`
	Repaired    bool                      `json:"repaired"`
	Results     []domain.ProjectionResult `json:"-"`
}

func (r Report) InSync() bool {
	return len(r.Missing) == 0 && len(r.Orphans) == 0 && len(r.StaleStatus) == 0 && r.PointerOK
}

// ReconcileService replays through the projector what the change feed failed to deliver,
// dropped reference errors included.
type ReconcileService struct {
	store     contract.IDocumentStore
	mirror    contract.IMirror
	projector contract.IProjector
	log       *slog.Logger
}

func NewReconcileService(store contract.IDocumentStore, mirror contract.IMirror,
	projector contract.IProjector, log *slog.Logger) *ReconcileService {
	return &ReconcileService{store: store, mirror: mirror, projector: projector, log: log}
}

func (s *ReconcileService) ReconcileAll(ctx context.Context, dryRun bool) ([]Report, error) {
	ids, err := s.mirror.ChatIDs(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]Report, 0, len(ids))
	for _, id := range ids {
		report, err := s.Reconcile(ctx, id, dryRun)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *ReconcileService) Reconcile(ctx context.Context, chatID uint, dryRun bool) (Report, error) {
	report, docs, rows, err := s.diff(ctx, chatID)
	if err != nil || dryRun || report.InSync() {
		return report, err
	}

	docsByID := lo.KeyBy(docs, func(d domain.Document) string { return d.ID })
	rowsByID := lo.KeyBy(rows, func(r domain.MirroredMessage) string { return r.DocumentID })
	var events []domain.ChangeEvent
	for _, id := range report.Orphans {
		events = append(events, domain.ChangeEvent{Type: domain.ChangeRemoved, Collection: domain.MessagesCollection,
			Document: domain.Document{ID: id, Fields: rowsByID[id].Fields()}})
	}
	for _, id := range report.Missing {
		events = append(events, domain.ChangeEvent{Type: domain.ChangeAdded, Collection: domain.MessagesCollection, Document: docsByID[id]})
	}
	for _, id := range report.StaleStatus {
		events = append(events, domain.ChangeEvent{Type: domain.ChangeModified, Collection: domain.MessagesCollection, Document: docsByID[id]})
	}
	for _, evt := range events {
		report.Results = append(report.Results, s.projector.Apply(ctx, evt))
	}

	// Pointer drift left after the replays, from a lost race under the
	// last-insert-wins policy for instance.
	after, _, _, err := s.diff(ctx, chatID)
	if err != nil {
		return report, err
	}
	if !after.PointerOK {
		if err = s.repairPointer(ctx, chatID); err != nil {
			return report, err
		}
	}
	report.Repaired = true
	s.log.Info("Chat reconciled", "chat_id", chatID, "missing", len(report.Missing),
		"orphans", len(report.Orphans), "stale", len(report.StaleStatus))
	return report, nil
}

func (s *ReconcileService) diff(ctx context.Context, chatID uint) (Report, []domain.Document, []domain.MirroredMessage, error) {
	chat, err := s.mirror.ChatByID(ctx, chatID)
	if err != nil {
		return Report{}, nil, nil, err
	}
	docs, err := s.store.Query(ctx, domain.MessagesCollection, domain.Query{
		Where:   []domain.Filter{domain.Where(domain.FieldChatID, domain.OpEqual, chatID)},
		OrderBy: domain.FieldCreatedAt,
		Desc:    true,
	})
	if err != nil {
		return Report{}, nil, nil, err
	}
	rows, err := s.mirror.MessagesForChat(ctx, chatID)
	if err != nil {
		return Report{}, nil, nil, err
	}
	rowsByID := lo.KeyBy(rows, func(r domain.MirroredMessage) string { return r.DocumentID })
	docIDs := lo.SliceToMap(docs, func(d domain.Document) (string, struct{}) { return d.ID, struct{}{} })

	report := Report{ChatID: chatID, Documents: len(docs), Rows: len(rows)}
	for _, doc := range docs {
		row, ok := rowsByID[doc.ID]
		if !ok {
			report.Missing = append(report.Missing, doc.ID)
			continue
		}
		if status, _ := doc.Fields[domain.FieldStatus].(string); status != "" && status != string(row.Status) {
			report.StaleStatus = append(report.StaleStatus, doc.ID)
		}
	}
	for _, row := range rows {
		if _, ok := docIDs[row.DocumentID]; !ok {
			report.Orphans = append(report.Orphans, row.DocumentID)
		}
	}

	switch newest, ok := lo.First(docs); {
	case !ok:
		report.PointerOK = chat.LastMessageID == nil
	default:
		row, mirrored := rowsByID[newest.ID]
		report.PointerOK = mirrored && chat.PointsTo(row.ID)
	}
	return report, docs, rows, nil
}

func (s *ReconcileService) repairPointer(ctx context.Context, chatID uint) error {
	latest, err := s.mirror.LatestMessage(ctx, chatID, "")
	if stderrors.Is(err, errors.ErrNotFound) {
		return s.mirror.ClearLastMessage(ctx, chatID)
	}
	if err != nil {
		return err
	}
	return s.mirror.SetLastMessage(ctx, chatID, latest.ID, latest.CreatedAt)
}
