package domain

import "fmt"

type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeRemoved  ChangeType = "removed"
)

func ParseChangeType(s string) (ChangeType, error) {
	switch ChangeType(s) {
	case ChangeAdded, ChangeModified, ChangeRemoved:
		return ChangeType(s), nil
	default:
		return "", fmt.Errorf("unknown change type %q", s)
	}
}

// ChangeEvent is one notification of the document store change feed.
// Seq is monotonic per collection; Document is the snapshot after the change,
// or the last known snapshot for a removal.
type ChangeEvent struct {
	Seq        uint64
	Type       ChangeType
	Collection string
	Document   Document
}

func (e ChangeEvent) DocumentID() string {
	return e.Document.ID
}

// ConversationKey returns the chat the event belongs to, used to keep
// the events of one conversation on the same consumer.
func (e ChangeEvent) ConversationKey() (uint, bool) {
	id, err := UintField(e.Document.Fields, FieldChatID)
	if err != nil {
		return 0, false
	}
	return id, true
}
