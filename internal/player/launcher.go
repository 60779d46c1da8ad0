package player

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mmcdole/soundqueue/internal/domain"
)

// Launcher opens video URLs in an external player
type Launcher struct {
	command string   // configured player command, empty to auto-detect
	args    []string // additional arguments for the configured player
	goos    string
	logger  *slog.Logger

	lookPath func(string) (string, error)
	start    func(*exec.Cmd) error // async launch
	wait     func(*exec.Cmd) error // blocking launch, reports a missing macOS app
}

// launchPath defines a single way to launch a player
type launchPath struct {
	path      string   // command name, or "open-a:AppName" for macOS apps
	openFlags []string // flags for the macOS open command (e.g. ["-n"])
}

// players lists the players that can stream a YouTube watch URL directly,
// per platform, in the order their launch paths are tried.
var players = map[string]map[string][]launchPath{
	"mpv": {
		"darwin":  {{path: "mpv"}},
		"linux":   {{path: "mpv"}},
		"windows": {{path: "mpv"}},
	},
	"vlc": {
		"darwin":  {{path: "vlc"}, {path: "open-a:VLC"}},
		"linux":   {{path: "vlc"}},
		"windows": {{path: "vlc"}},
	},
	"iina": {
		"darwin": {{path: "open-a:IINA", openFlags: []string{"-n"}}},
	},
	"celluloid": {
		"linux": {{path: "celluloid"}},
	},
	"haruna": {
		"linux": {{path: "haruna"}},
	},
	"potplayer": {
		"windows": {{path: "PotPlayerMini64"}, {path: "PotPlayerMini"}},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "mpv", "vlc"},
	"linux":   {"mpv", "celluloid", "haruna", "vlc"},
	"windows": {"mpv", "potplayer", "vlc"},
}

// NewLauncher creates a launcher. An empty command auto-detects a player.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		goos:     runtime.GOOS,
		logger:   logger,
		lookPath: exec.LookPath,
		start:    func(cmd *exec.Cmd) error { return cmd.Start() },
		wait:     func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// Launch opens url in the configured player, a detected player, or the
// system default handler, in that order.
func (l *Launcher) Launch(url string) error {
	if l.command != "" {
		l.logger.Info("using configured player", "command", l.command)
		return l.run(l.configuredCommand(url))
	}

	if name, err := l.detectAndLaunch(url); err == nil {
		l.logger.Info("launched with detected player", "player", name)
		return nil
	}

	l.logger.Info("no candidate players found, using system default")
	return l.run(l.defaultCommand(url))
}

// configuredCommand builds the command for the user's player
func (l *Launcher) configuredCommand(url string) *exec.Cmd {
	args := append([]string{}, l.args...)

	// GUI apps on macOS are often not on PATH
	if l.goos == "darwin" {
		if _, err := l.lookPath(l.command); err != nil {
			openArgs := []string{"-a", l.command}
			if len(args) > 0 {
				openArgs = append(openArgs, "--args")
				openArgs = append(openArgs, args...)
			}
			openArgs = append(openArgs, url)
			return exec.Command("open", openArgs...)
		}
	}

	args = append(args, url)
	return exec.Command(l.command, args...)
}

// defaultCommand builds the system opener command
func (l *Launcher) defaultCommand(url string) *exec.Cmd {
	switch l.goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

// detectAndLaunch tries candidate players in order.
// Returns the name of the player that started.
func (l *Launcher) detectAndLaunch(url string) (string, error) {
	candidates, ok := candidatePlayers[l.goos]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		paths, ok := players[name][l.goos]
		if !ok {
			continue
		}

		for _, lp := range paths {
			if app, isApp := strings.CutPrefix(lp.path, "open-a:"); isApp {
				args := append(append([]string{}, lp.openFlags...), "-a", app, url)
				if err := l.wait(exec.Command("open", args...)); err == nil {
					return name, nil
				}
				l.logger.Debug("app not available", "player", name, "app", app)
				continue
			}

			if _, err := l.lookPath(lp.path); err != nil {
				l.logger.Debug("launch path not available", "player", name, "path", lp.path, "error", err)
				continue
			}
			if err := l.run(exec.Command(lp.path, url)); err == nil {
				return name, nil
			}
		}
	}

	return "", domain.ErrNoPlayer
}

func (l *Launcher) run(cmd *exec.Cmd) error {
	l.logger.Info("launching player", "command", cmd.Path, "args", cmd.Args[1:])
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to launch %s: %w", cmd.Args[0], err)
	}
	return nil
}
