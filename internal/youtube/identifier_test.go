package youtube

import "testing"

func TestParsePlaylistID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"PLBVGsLomF3V2Inm9oj01WYrG8xqhUBy7a", "PLBVGsLomF3V2Inm9oj01WYrG8xqhUBy7a"},
		{"  ABC123  ", "ABC123"},
		{"https://www.youtube.com/playlist?list=PLxyz", "PLxyz"},
		{"https://www.youtube.com/watch?v=abc&list=PLxyz&index=3", "PLxyz"},
		{"youtube.com/playlist?list=PLxyz", "PLxyz"},
		{"https://www.youtube.com/watch?v=abc", "https://www.youtube.com/watch?v=abc"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ParsePlaylistID(tt.input); got != tt.want {
			t.Errorf("ParsePlaylistID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
