package mirror

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"chat-mirror/errors"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var _ contract.IMirror = (*Mirror)(nil)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// Mirror is the relational projection of the document store.
// Every mutation is a single statement, or a single transaction scoped to one chat.
type Mirror struct {
	db  *gorm.DB
	log *slog.Logger
}

// SqliteDSN builds a file dsn with foreign keys enforced.
func SqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

func Open(driver, dsn string, log *slog.Logger) (*Mirror, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSqlite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported mirror driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(slog.NewLogLogger(log.Handler(), slog.LevelWarn), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mirror: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == DriverSqlite {
		// A single writer connection; busy_timeout in the dsn covers external readers.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	log.Info("Connected to mirror", "driver", driver)
	return &Mirror{db: db, log: log}, nil
}

func (m *Mirror) Migrate() error {
	if err := m.db.AutoMigrate(&Person{}, &User{}, &Chat{}, &Message{}, &Friend{}); err != nil {
		return fmt.Errorf("failed to migrate mirror: %w", err)
	}
	return nil
}

func (m *Mirror) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (m *Mirror) UserExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := m.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (m *Mirror) UserSummary(ctx context.Context, id uint) (domain.UserSummary, error) {
	var user User
	err := m.db.WithContext(ctx).Preload("Person").First(&user, id).Error
	if err != nil {
		return domain.UserSummary{}, translate(err, "user %d", id)
	}
	return user.summary(), nil
}

// CreateUser registers a user with its person record.
func (m *Mirror) CreateUser(ctx context.Context, username, email, name, lastName string) (uint, error) {
	user := User{
		Username: username,
		Email:    email,
		State:    true,
		Person:   &Person{Name: name, LastName: lastName},
	}
	if err := m.db.WithContext(ctx).Create(&user).Error; err != nil {
		return 0, translate(err, "user %s", username)
	}
	return user.ID, nil
}

// SetFriendship records the relation in both directions with the same status.
func (m *Mirror) SetFriendship(ctx context.Context, userID, friendID uint, status FriendStatus) error {
	rows := []Friend{
		{UserID: userID, FriendID: friendID, Status: status},
		{UserID: friendID, FriendID: userID, Status: status},
	}
	err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&rows).Error
	return translate(err, "friendship %d/%d", userID, friendID)
}

func (m *Mirror) ChatByID(ctx context.Context, id uint) (domain.Chat, error) {
	var chat Chat
	if err := m.db.WithContext(ctx).First(&chat, id).Error; err != nil {
		return domain.Chat{}, translate(err, "chat %d", id)
	}
	return chat.toDomain(), nil
}

// FindChat looks the pair up in both orders, rows written before normalization included.
func (m *Mirror) FindChat(ctx context.Context, a, b uint) (domain.Chat, error) {
	var chat Chat
	err := m.db.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", a, b, b, a).
		Order("id").
		First(&chat).Error
	if err != nil {
		return domain.Chat{}, translate(err, "chat %d/%d", a, b)
	}
	return chat.toDomain(), nil
}

// FindOrCreateChat yields the single chat of the pair. Concurrent callers race on the
// unique pair index; the losers' inserts do nothing and every caller reads the winner.
func (m *Mirror) FindOrCreateChat(ctx context.Context, a, b uint) (domain.Chat, error) {
	pair, err := domain.NewParticipantPair(a, b)
	if err != nil {
		return domain.Chat{}, err
	}
	chat, err := m.FindChat(ctx, a, b)
	if err == nil {
		return chat, nil
	}
	if !stderrors.Is(err, errors.ErrNotFound) {
		return domain.Chat{}, err
	}
	row := Chat{User1ID: pair.Low, User2ID: pair.High}
	err = m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return domain.Chat{}, translate(err, "chat %d/%d", a, b)
	}
	return m.FindChat(ctx, a, b)
}

func (m *Mirror) ChatIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := m.db.WithContext(ctx).Model(&Chat{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

// ChatsForUser lists the chats of a user with accepted friends, most recent activity first.
func (m *Mirror) ChatsForUser(ctx context.Context, userID uint) ([]domain.ChatSummary, error) {
	db := m.db.WithContext(ctx)
	var chats []Chat
	err := db.
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Where(`EXISTS (SELECT 1 FROM friends f WHERE f.status = ? AND
			((f.user_id = chats.user1_id AND f.friend_id = chats.user2_id) OR
			 (f.user_id = chats.user2_id AND f.friend_id = chats.user1_id)))`, FriendAccepted).
		Order("CASE WHEN last_message_at IS NULL THEN 1 ELSE 0 END, last_message_at DESC, id DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	if len(chats) == 0 {
		return []domain.ChatSummary{}, nil
	}

	friendIDs := lo.Uniq(lo.Map(chats, func(c Chat, _ int) uint { return c.toDomain().Other(userID) }))
	var friends []User
	if err = db.Preload("Person").Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
		return nil, err
	}
	friendsByID := lo.KeyBy(friends, func(u User) uint { return u.ID })

	lastIDs := lo.FilterMap(chats, func(c Chat, _ int) (uint, bool) {
		if c.LastMessageID == nil {
			return 0, false
		}
		return *c.LastMessageID, true
	})
	messagesByID := map[uint]Message{}
	if len(lastIDs) > 0 {
		var messages []Message
		if err = db.Where("id IN ?", lastIDs).Find(&messages).Error; err != nil {
			return nil, err
		}
		messagesByID = lo.KeyBy(messages, func(msg Message) uint { return msg.ID })
	}

	return lo.Map(chats, func(c Chat, _ int) domain.ChatSummary {
		chat := c.toDomain()
		summary := domain.ChatSummary{Chat: chat, Friend: friendsByID[chat.Other(userID)].summary()}
		if c.LastMessageID != nil {
			if msg, ok := messagesByID[*c.LastMessageID]; ok {
				last := msg.toDomain()
				summary.LastMessage = &last
			}
		}
		return summary
	}), nil
}

func (m *Mirror) DeleteChat(ctx context.Context, id uint) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", id).Delete(&Message{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Chat{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: chat %d", errors.ErrNotFound, id)
		}
		return nil
	})
}

// AdvanceLastMessage moves both pointer columns in one statement. When conditional,
// the pointer only moves forward in (created_at, document_id) order, the order
// LatestMessage reads; the returned flag tells whether it moved.
func (m *Mirror) AdvanceLastMessage(ctx context.Context, chatID, messageID uint, at time.Time, conditional bool) (bool, error) {
	at = pointerTime(at)
	query := m.db.WithContext(ctx).Model(&Chat{}).Where("id = ?", chatID)
	if conditional {
		query = query.Where(`(last_message_at IS NULL OR last_message_at < ? OR (last_message_at = ? AND
			COALESCE((SELECT lm.document_id FROM messages lm WHERE lm.id = chats.last_message_id), '') <=
			(SELECT nm.document_id FROM messages nm WHERE nm.id = ?)))`, at, at, messageID)
	}
	res := query.Updates(map[string]any{"last_message_id": messageID, "last_message_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (m *Mirror) SetLastMessage(ctx context.Context, chatID, messageID uint, at time.Time) error {
	res := m.db.WithContext(ctx).Model(&Chat{}).Where("id = ?", chatID).
		Updates(map[string]any{"last_message_id": messageID, "last_message_at": pointerTime(at)})
	return rowsOrNotFound(res, "chat %d", chatID)
}

// pointerTime keeps the precision every supported driver stores, so equal creation
// times compare equal.
func pointerTime(at time.Time) time.Time {
	return at.UTC().Truncate(time.Microsecond)
}

func (m *Mirror) ClearLastMessage(ctx context.Context, chatID uint) error {
	res := m.db.WithContext(ctx).Model(&Chat{}).Where("id = ?", chatID).
		Updates(map[string]any{"last_message_id": nil, "last_message_at": nil})
	return rowsOrNotFound(res, "chat %d", chatID)
}

// InsertMessage returns ErrDuplicate, leaving the stored row untouched, when the document
// is already mirrored.
func (m *Mirror) InsertMessage(ctx context.Context, message domain.MirroredMessage) (domain.MirroredMessage, error) {
	row := fromDomainMessage(message)
	res := m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "document_id"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return domain.MirroredMessage{}, translate(res.Error, "message %s", message.DocumentID)
	}
	if res.RowsAffected == 0 {
		return domain.MirroredMessage{}, fmt.Errorf("%w: message %s", errors.ErrDuplicate, message.DocumentID)
	}
	return row.toDomain(), nil
}

func (m *Mirror) MessageByDocumentID(ctx context.Context, documentID string) (domain.MirroredMessage, error) {
	var row Message
	if err := m.db.WithContext(ctx).Where("document_id = ?", documentID).First(&row).Error; err != nil {
		return domain.MirroredMessage{}, translate(err, "message %s", documentID)
	}
	return row.toDomain(), nil
}

func (m *Mirror) LatestMessage(ctx context.Context, chatID uint, excludingDocumentID string) (domain.MirroredMessage, error) {
	var row Message
	err := m.db.WithContext(ctx).
		Where("chat_id = ? AND document_id <> ?", chatID, excludingDocumentID).
		Order("created_at DESC, document_id DESC").
		First(&row).Error
	if err != nil {
		return domain.MirroredMessage{}, translate(err, "latest message of chat %d", chatID)
	}
	return row.toDomain(), nil
}

func (m *Mirror) MessagesForChat(ctx context.Context, chatID uint) ([]domain.MirroredMessage, error) {
	var rows []Message
	err := m.db.WithContext(ctx).Where("chat_id = ?", chatID).Order("created_at, document_id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row Message, _ int) domain.MirroredMessage { return row.toDomain() }), nil
}

func (m *Mirror) UpdateMessageStatus(ctx context.Context, documentID string, status domain.MessageStatus) error {
	res := m.db.WithContext(ctx).Model(&Message{}).Where("document_id = ?", documentID).Update("status", string(status))
	return rowsOrNotFound(res, "message %s", documentID)
}

func (m *Mirror) DeleteMessage(ctx context.Context, documentID string) error {
	res := m.db.WithContext(ctx).Where("document_id = ?", documentID).Delete(&Message{})
	return rowsOrNotFound(res, "message %s", documentID)
}

func rowsOrNotFound(res *gorm.DB, format string, args ...any) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", errors.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return nil
}

// translate maps GORM failures onto the domain sentinels.
func translate(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	what := fmt.Sprintf(format, args...)
	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", errors.ErrNotFound, what)
	case stderrors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %s", errors.ErrReferenceMissing, what)
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", errors.ErrDuplicate, what)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
