package youtube

import (
	"net/url"
	"strings"
)

// ParsePlaylistID turns user input into a playlist identifier.
// A link carrying a "list" query parameter yields that parameter;
// anything else is returned trimmed and otherwise untouched.
func ParsePlaylistID(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if strings.Contains(input, "list=") {
		raw := input
		if !strings.Contains(raw, "://") {
			raw = "https://" + raw
		}
		if u, err := url.Parse(raw); err == nil {
			if id := u.Query().Get("list"); id != "" {
				return id
			}
		}
	}

	return input
}
