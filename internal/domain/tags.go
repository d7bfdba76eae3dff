package domain

import (
	"fmt"
	"strings"
)

// Tag list caps per entity
const (
	MaxCardTags    = 50
	MaxBacklogTags = 20
	MaxConfigTags  = 50
)

// NormalizeTags bounds and cleans a free-form tag value coming from a
// client payload. Non-list input degrades to an empty list; list elements
// are stringified and trimmed, empties dropped, and the result truncated
// to limit. Order is preserved and duplicates are kept. Never errors.
func NormalizeTags(value interface{}, limit int) []string {
	out := []string{}

	var items []interface{}
	switch v := value.(type) {
	case nil:
		return out
	case []interface{}:
		items = v
	case []string:
		items = make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
	default:
		return out
	}

	for _, item := range items {
		if len(out) >= limit {
			break
		}
		s := strings.TrimSpace(stringify(item))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case float64:
		// JSON numbers decode as float64; render integers without a decimal point
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// TruncateRunes shortens s to at most max runes
func TruncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
