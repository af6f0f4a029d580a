// Package wire holds the small decoding helpers entity normalizers share when
// reading loosely typed API payloads.
package wire

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// First returns the first non-empty value.
func First(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// String reads a JSON string or number as a string. Anything else, including
// null, yields "".
func String(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		return n.String()
	}
	return ""
}

// Int reads a JSON number or numeric string; ok is false otherwise.
func Int(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	if s := String(raw); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Bool reads true/false or their string spellings; ok is false otherwise.
func Bool(raw json.RawMessage) (value bool, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, false
	}
	if err := json.Unmarshal(raw, &value); err == nil {
		return value, true
	}
	if b, err := strconv.ParseBool(String(raw)); err == nil {
		return b, true
	}
	return false, false
}

// StringList reads either a JSON array of strings or a comma separated string.
// Entries are trimmed and empty entries dropped.
func StringList(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return SplitList(String(raw))
	}
	return clean(items)
}

// SplitList splits a comma separated string the way StringList does.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return clean(strings.Split(s, ","))
}

func clean(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Items splits a payload that may be either one object or an array of objects.
func Items(raw json.RawMessage) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, false
		}
		return items, true
	}
	return []json.RawMessage{raw}, false
}
