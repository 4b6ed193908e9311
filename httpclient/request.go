package httpclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Request describes one API exchange. Path is resolved against the client's
// base URL.
type Request struct {
	Method string
	Path   string
	Query  *Query
	Body   any
}

type queryEntry struct {
	key   string
	value string
}

// Query keeps parameters in insertion order. Values that are nil, or nil
// pointers, are dropped.
type Query struct {
	entries []queryEntry
}

func NewQuery() *Query {
	return &Query{entries: nil}
}

// Add appends key=value when value is defined and returns q for chaining.
func (q *Query) Add(key string, value any) *Query {
	str, ok := formatQueryValue(value)
	if !ok {
		return q
	}

	q.entries = append(q.entries, queryEntry{key: key, value: str})

	return q
}

func (q *Query) Len() int {
	if q == nil {
		return 0
	}

	return len(q.entries)
}

func (q *Query) Get(key string) (string, bool) {
	if q == nil {
		return "", false
	}

	for _, entry := range q.entries {
		if entry.key == key {
			return entry.value, true
		}
	}

	return "", false
}

func (q *Query) Keys() []string {
	if q == nil {
		return nil
	}

	keys := make([]string, 0, len(q.entries))
	for _, entry := range q.entries {
		keys = append(keys, entry.key)
	}

	return keys
}

// Encode renders the query in insertion order using form encoding.
func (q *Query) Encode() string {
	if q.Len() == 0 {
		return ""
	}

	var builder strings.Builder

	for idx, entry := range q.entries {
		if idx > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(url.QueryEscape(entry.key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(entry.value))
	}

	return builder.String()
}

func formatQueryValue(value any) (string, bool) {
	if value == nil {
		return "", false
	}

	switch typed := value.(type) {
	case string:
		return typed, true
	case bool:
		return strconv.FormatBool(typed), true
	case int:
		return strconv.Itoa(typed), true
	case int32:
		return strconv.FormatInt(int64(typed), 10), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case uint:
		return strconv.FormatUint(uint64(typed), 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case time.Time:
		return typed.UTC().Format(time.RFC3339), true
	case fmt.Stringer:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false
		}

		return typed.String(), true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}

		return formatQueryValue(rv.Elem().Interface())
	}

	return fmt.Sprint(value), true
}
