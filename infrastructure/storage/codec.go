package storage

import (
	"chat-mirror/domain"
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	envelopeType = "type"
	envelopeID   = "id"
	envelopeDoc  = "doc"
)

// encodeFields serializes a document body as a protobuf Struct.
// Times are stored in their native {seconds, nanos} form.
func encodeFields(fields map[string]any) ([]byte, error) {
	s, err := toStruct(fields)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func decodeFields(b []byte) (map[string]any, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return s.AsMap(), nil
}

func encodeChange(changeType domain.ChangeType, doc domain.Document) ([]byte, error) {
	body, err := toStruct(doc.Fields)
	if err != nil {
		return nil, err
	}
	envelope := &structpb.Struct{Fields: map[string]*structpb.Value{
		envelopeType: structpb.NewStringValue(string(changeType)),
		envelopeID:   structpb.NewStringValue(doc.ID),
		envelopeDoc:  structpb.NewStructValue(body),
	}}
	return proto.Marshal(envelope)
}

func decodeChange(collection string, seq uint64, b []byte) (domain.ChangeEvent, error) {
	var envelope structpb.Struct
	if err := proto.Unmarshal(b, &envelope); err != nil {
		return domain.ChangeEvent{}, err
	}
	changeType, err := domain.ParseChangeType(envelope.Fields[envelopeType].GetStringValue())
	if err != nil {
		return domain.ChangeEvent{}, err
	}
	return domain.ChangeEvent{
		Seq:        seq,
		Type:       changeType,
		Collection: collection,
		Document: domain.Document{
			ID:     envelope.Fields[envelopeID].GetStringValue(),
			Fields: envelope.Fields[envelopeDoc].GetStructValue().AsMap(),
		},
	}, nil
}

func toStruct(fields map[string]any) (*structpb.Struct, error) {
	native := make(map[string]any, len(fields))
	for k, v := range fields {
		native[k] = toNative(v)
	}
	s, err := structpb.NewStruct(native)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return s, nil
}

func toNative(v any) any {
	switch t := v.(type) {
	case time.Time:
		return domain.TimestampValue(t)
	case *time.Time:
		if t == nil {
			return nil
		}
		return domain.TimestampValue(*t)
	case *string:
		if t == nil {
			return nil
		}
		return *t
	case domain.MessageStatus:
		return string(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = toNative(inner)
		}
		return out
	default:
		return v
	}
}
