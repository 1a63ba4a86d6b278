package threads

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"agentchat/internal/agentapi"
)

const (
	titleMaxRunes = 50
	idPrefixLen   = 12
	ellipsis      = "..."

	// UnknownDate is shown when a thread carries no usable timestamp
	UnknownDate = "unknown"

	dateLayout = "Jan 2, 15:04"
)

// Title is the first human message, cut to 50 characters, or a shortened
// thread id when nobody has written anything yet.
func Title(t agentapi.Thread) string {
	for _, m := range t.Messages() {
		if !m.IsHuman() {
			continue
		}
		text := ContentString(m.Content)
		runes := []rune(text)
		if len(runes) > titleMaxRunes {
			return string(runes[:titleMaxRunes]) + ellipsis
		}
		return text
	}
	return shortID(t.ThreadID) + ellipsis
}

func shortID(id string) string {
	runes := []rune(id)
	if len(runes) <= idPrefixLen {
		return id
	}
	return string(runes[:idPrefixLen])
}

// Date formats updated_at, falling back to created_at, in local time.
func Date(t agentapi.Thread) string {
	return DateIn(t, time.Local)
}

// DateIn is Date with an explicit location
func DateIn(t agentapi.Thread, loc *time.Location) string {
	raw := t.UpdatedAt
	if raw == "" {
		raw = t.CreatedAt
	}
	if raw == "" {
		return UnknownDate
	}
	ts, err := dateparse.ParseIn(raw, loc)
	if err != nil {
		return UnknownDate
	}
	return ts.In(loc).Format(dateLayout)
}

// ContentString flattens message content: plain strings pass through, a
// list of parts keeps only the text parts joined by a space.
func ContentString(content any) string {
	switch c := content.(type) {
	case string:
		return c
	case []any:
		var parts []string
		for _, item := range c {
			part, ok := item.(map[string]any)
			if !ok || part["type"] != "text" {
				continue
			}
			if text, ok := part["text"].(string); ok {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
