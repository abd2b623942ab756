package stocksync

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Item is one untyped object from the vendor feed. Only the two configured
// dot-paths are ever read from it.
type Item map[string]interface{}

// Path resolves a dot-path ("data.status") inside the item. A key
// containing literal dots is tried as a whole before splitting. Missing
// segments yield ok=false, never a panic.
func (it Item) Path(path string) (interface{}, bool) {
	if path == "" {
		return nil, false
	}
	if v, ok := it[path]; ok {
		return v, true
	}
	var node interface{} = map[string]interface{}(it)
	for _, seg := range strings.Split(path, ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		node, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// StringAt resolves a dot-path and renders scalar values as strings the
// way the feed config expects keys to compare: numbers without a trailing
// ".0", booleans as "1"/"". Non-scalar or absent values yield "".
func (it Item) StringAt(path string) string {
	v, ok := it.Path(path)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		if s {
			return "1"
		}
		return ""
	case json.Number:
		return s.String()
	}
	return ""
}

// ExtractItems decodes a feed body and pulls the item list out of one of
// the accepted envelope shapes: {"data":{"items":[...]}}, {"items":[...]}
// or a bare JSON array. A body that is not valid JSON is a FeedError; a
// valid body without items is a ConfigError because it means the feed
// shape and the configuration disagree.
func ExtractItems(body []byte) ([]interface{}, error) {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &FeedError{Reason: "invalid json: " + snippet(body, 200)}
	}

	var items []interface{}
	switch v := decoded.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		if data, ok := v["data"].(map[string]interface{}); ok {
			if list, ok := data["items"].([]interface{}); ok {
				items = list
			}
		}
		if items == nil {
			if list, ok := v["items"].([]interface{}); ok {
				items = list
			}
		}
	default:
		return nil, &FeedError{Reason: "invalid json: " + snippet(body, 200)}
	}

	if len(items) == 0 {
		return nil, &ConfigError{Reason: "no items in response"}
	}
	return items, nil
}

// snippet truncates a response body for error messages.
func snippet(body []byte, max int) string {
	s := string(body)
	if len(s) > max {
		return s[:max]
	}
	return s
}
