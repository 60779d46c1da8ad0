package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/soundqueue/internal/config"
	"github.com/mmcdole/soundqueue/internal/log"
	"github.com/mmcdole/soundqueue/internal/player"
	"github.com/mmcdole/soundqueue/internal/service"
	"github.com/mmcdole/soundqueue/internal/store"
	"github.com/mmcdole/soundqueue/internal/tui"
	"github.com/mmcdole/soundqueue/internal/tui/styles"
	"github.com/mmcdole/soundqueue/internal/youtube"
	"golang.org/x/term"
	"google.golang.org/api/option"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var showVersion, clearCache bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&clearCache, "clear-history", false, "delete the playlist history and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: soundqueue [flags] [playlist-link-or-id | /play/<id>]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("soundqueue %s\n", Version)
		return
	}

	if err := run(flag.Arg(0), clearCache); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(link string, clearCache bool) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting soundqueue", "version", Version)

	if clearCache {
		if err := config.ClearCache(cfg); err != nil {
			return err
		}
		fmt.Println("✓ History cleared")
		return nil
	}

	// Ask for an API key on first run
	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
	}

	// Create the Data API client
	client, err := newClient(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create youtube client: %w", err)
	}

	// Open history (memory-only when the cache dir is empty)
	historyStore, err := store.NewHistoryStore(cfg.Cache.Dir)
	if err != nil {
		logger.Warn("history unavailable, using memory store", "error", err)
		historyStore, _ = store.NewHistoryStore("")
	}
	defer historyStore.Close()

	// Create launcher (uses configured player or auto-detects)
	launcher := player.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	// Create services
	playbackSvc := service.NewPlaybackService(launcher, logger)
	historySvc := service.NewHistoryService(historyStore, cfg.Cache.HistoryLimit, logger)

	route := tui.ResolveRoute(link)

	// Create TUI model
	model := tui.NewModel(client, playbackSvc, historySvc, tui.Options{
		PageSize:        cfg.YouTube.PageSize,
		DefaultPlaylist: cfg.UI.DefaultPlaylist,
		InitialRoute:    route,
		Logger:          logger,
	})

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI", "route", route.String())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func newClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*youtube.Client, error) {
	var opts []option.ClientOption
	if cfg.YouTube.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.YouTube.Endpoint))
	}
	return youtube.NewClient(ctx, cfg.YouTube.APIKey, logger, opts...)
}

// runSetupFlow prompts for a Data API key, checks it against the sample
// playlist and saves it
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to soundqueue!")
	fmt.Println()
	fmt.Println("A YouTube Data API v3 key is needed to read playlists.")
	fmt.Println("Create one at https://console.cloud.google.com/apis/credentials")
	fmt.Println()

	for {
		// Prompt for the key (hidden input)
		fmt.Print("API key: ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read api key: %w", err)
		}
		apiKey := strings.TrimSpace(string(keyBytes))

		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		cfg.YouTube.APIKey = apiKey
		client, err := newClient(context.Background(), cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create youtube client: %w", err)
		}

		fmt.Println()
		if err := checkKeyWithSpinner(client, cfg.UI.DefaultPlaylist); err != nil {
			fmt.Printf("\n✗ Could not read a playlist with this key: %v\n", err)
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// checkKeyWithSpinner requests one item of a playlist with a visual spinner
func checkKeyWithSpinner(client *youtube.Client, playlistID string) error {
	if playlistID == "" {
		playlistID = config.SamplePlaylistID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	errCh := make(chan error, 1)

	// Start the request in background
	go func() {
		_, err := client.FetchPage(ctx, playlistID, "", 1)
		errCh <- err
	}()

	// Spinner animation
	frame := 0

	fmt.Printf("\r%s Checking key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-errCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ Key works")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("check timed out")
		}
	}
}
