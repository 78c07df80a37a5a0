package mirror

import (
	"chat-mirror/domain"
	"strings"
	"time"
)

type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
	FriendRejected FriendStatus = "rejected"
)

type Person struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:100"`
	LastName string `gorm:"size:100"`
	Photo    string `gorm:"size:255"`
}

func (Person) TableName() string { return "persons" }

// User declares its chats, messages and friendships so that migrations create the foreign keys
// pointing at users; those collections are never loaded.
type User struct {
	ID               uint    `gorm:"primaryKey"`
	Username         string  `gorm:"size:64;uniqueIndex;not null"`
	Email            string  `gorm:"size:255;uniqueIndex;not null"`
	State            bool    `gorm:"default:true"`
	PersonID         *uint   `gorm:"index"`
	Person           *Person `gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt        time.Time
	ChatsAsFirst     []Chat    `gorm:"foreignKey:User1ID;constraint:OnDelete:CASCADE"`
	ChatsAsSecond    []Chat    `gorm:"foreignKey:User2ID;constraint:OnDelete:CASCADE"`
	SentMessages     []Message `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	ReceivedMessages []Message `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	Friendships      []Friend  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FriendOf         []Friend  `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE"`
}

func (u User) summary() domain.UserSummary {
	s := domain.UserSummary{ID: u.ID, Username: u.Username, FullName: u.Username}
	if u.Person != nil {
		if full := strings.TrimSpace(u.Person.Name + " " + u.Person.LastName); full != "" {
			s.FullName = full
		}
		s.Photo = u.Person.Photo
	}
	return s
}

// Chat stores its participants as a normalized pair, User1ID < User2ID.
// LastMessageID carries no foreign key: messages already reference chats.
type Chat struct {
	ID            uint       `gorm:"primaryKey"`
	User1ID       uint       `gorm:"not null;uniqueIndex:idx_chat_pair,priority:1"`
	User2ID       uint       `gorm:"not null;uniqueIndex:idx_chat_pair,priority:2;index"`
	LastMessageID *uint      `gorm:"index"`
	LastMessageAt *time.Time `gorm:"index"`
	Messages      []Message  `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
}

func (c Chat) toDomain() domain.Chat {
	return domain.Chat{
		ID:            c.ID,
		User1ID:       c.User1ID,
		User2ID:       c.User2ID,
		LastMessageID: c.LastMessageID,
		LastMessageAt: c.LastMessageAt,
	}
}

type Message struct {
	ID         uint      `gorm:"primaryKey"`
	DocumentID string    `gorm:"size:64;uniqueIndex;not null"`
	ChatID     uint      `gorm:"not null;index:idx_message_chat_created,priority:1"`
	SenderID   uint      `gorm:"not null;index"`
	ReceiverID uint      `gorm:"not null;index"`
	Content    *string   `gorm:"type:text"`
	MediaURL   *string   `gorm:"size:1024"`
	Status     string    `gorm:"size:16;not null;default:sent"`
	CreatedAt  time.Time `gorm:"not null;index:idx_message_chat_created,priority:2"`
}

func (m Message) toDomain() domain.MirroredMessage {
	return domain.MirroredMessage{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		ChatID:     m.ChatID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		MediaURL:   m.MediaURL,
		Status:     domain.MessageStatus(m.Status),
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func fromDomainMessage(m domain.MirroredMessage) Message {
	return Message{
		DocumentID: m.DocumentID,
		ChatID:     m.ChatID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		MediaURL:   m.MediaURL,
		Status:     string(m.Status),
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

// Friend is one direction of a friendship request.
type Friend struct {
	ID       uint         `gorm:"primaryKey"`
	UserID   uint         `gorm:"not null;uniqueIndex:idx_friend_pair,priority:1"`
	FriendID uint         `gorm:"not null;uniqueIndex:idx_friend_pair,priority:2"`
	Status   FriendStatus `gorm:"size:16;not null;default:pending"`
}
