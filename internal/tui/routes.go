package tui

import (
	"net/url"
	"strings"

	"github.com/mmcdole/soundqueue/internal/youtube"
)

// View identifies which screen a route renders
type View int

const (
	ViewLanding View = iota
	ViewPlay
)

const playPrefix = "/play/"

// Route is a parsed location: "/" or "/play/<identifier>"
type Route struct {
	View       View
	PlaylistID string
}

// LandingRoute is the route of the link input view
func LandingRoute() Route {
	return Route{View: ViewLanding}
}

// PlayRoute is the route of the play view for an identifier
func PlayRoute(playlistID string) Route {
	return Route{View: ViewPlay, PlaylistID: playlistID}
}

// ParseRoute parses a path. Unknown paths and "/play/" without an
// identifier resolve to the landing route.
func ParseRoute(path string) Route {
	rest, ok := strings.CutPrefix(path, playPrefix)
	if !ok {
		return LandingRoute()
	}
	rest = strings.TrimSuffix(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return LandingRoute()
	}
	id, err := url.PathUnescape(rest)
	if err != nil || id == "" {
		return LandingRoute()
	}
	return PlayRoute(id)
}

// ResolveRoute turns a command-line argument into a route. Paths starting
// with "/" are parsed as routes; anything else is treated as a playlist
// link or identifier, and empty input opens the landing view.
func ResolveRoute(arg string) Route {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "/") {
		return ParseRoute(arg)
	}
	if id := youtube.ParsePlaylistID(arg); id != "" {
		return PlayRoute(id)
	}
	return LandingRoute()
}

// String formats the route as a path
func (r Route) String() string {
	if r.View == ViewPlay && r.PlaylistID != "" {
		return playPrefix + url.PathEscape(r.PlaylistID)
	}
	return "/"
}
