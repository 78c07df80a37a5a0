package domain

import (
	"chat-mirror/errors"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Document is a schemaless snapshot of one record of the document store.
type Document struct {
	ID     string
	Fields map[string]any
}

type Operator string

const (
	OpEqual          Operator = "=="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
)

type Filter struct {
	Field string
	Op    Operator
	Value any
}

// Query selects documents of one collection.
// A zero Limit means no limit.
type Query struct {
	Where   []Filter
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

func Where(field string, op Operator, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// UintField reads a numeric identifier whatever its encoded form.
func UintField(fields map[string]any, name string) (uint, error) {
	v, ok := fields[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: missing %s", errors.ErrMalformedDocument, name)
	}
	id, err := ToUint(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", errors.ErrMalformedDocument, name, err)
	}
	return id, nil
}

func ToUint(v any) (uint, error) {
	switch n := v.(type) {
	case uint:
		return n, nil
	case uint32:
		return uint(n), nil
	case uint64:
		return uint(n), nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return uint(n), nil
	case int32:
		return ToUint(int(n))
	case int64:
		return ToUint(int(n))
	case float64:
		if n < 0 || n != math.Trunc(n) {
			return 0, fmt.Errorf("not an unsigned integer: %v", n)
		}
		return uint(n), nil
	case json.Number:
		return ToUint(string(n))
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
