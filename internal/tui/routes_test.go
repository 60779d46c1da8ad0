package tui

import "testing"

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", LandingRoute()},
		{"", LandingRoute()},
		{"/play/ABC123", PlayRoute("ABC123")},
		{"/play/ABC123/", PlayRoute("ABC123")},
		{"/play/", LandingRoute()},
		{"/play/a/b", LandingRoute()},
		{"/unknown", LandingRoute()},
		{"/play/PL%20x", PlayRoute("PL x")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ParseRoute(tt.path); got != tt.want {
				t.Errorf("ParseRoute(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRoute_StringRoundTrip(t *testing.T) {
	for _, r := range []Route{
		LandingRoute(),
		PlayRoute("PLBVGsLomF3V2Inm9oj01WYrG8xqhUBy7a"),
		PlayRoute("with space"),
	} {
		if got := ParseRoute(r.String()); got != r {
			t.Errorf("ParseRoute(%q) = %+v, want %+v", r.String(), got, r)
		}
	}

	if got := PlayRoute("ABC123").String(); got != "/play/ABC123" {
		t.Errorf("String() = %q, want /play/ABC123", got)
	}
	if got := LandingRoute().String(); got != "/" {
		t.Errorf("String() = %q, want /", got)
	}
}

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		arg  string
		want Route
	}{
		{"", LandingRoute()},
		{"/", LandingRoute()},
		{"/play/ABC123", PlayRoute("ABC123")},
		{"/play/", LandingRoute()},
		{"ABC123", PlayRoute("ABC123")},
		{"https://www.youtube.com/playlist?list=PLabc", PlayRoute("PLabc")},
		{"  PLspaced  ", PlayRoute("PLspaced")},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			if got := ResolveRoute(tt.arg); got != tt.want {
				t.Errorf("ResolveRoute(%q) = %+v, want %+v", tt.arg, got, tt.want)
			}
		})
	}
}
