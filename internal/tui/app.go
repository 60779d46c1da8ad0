package tui

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/soundqueue/internal/domain"
	"github.com/mmcdole/soundqueue/internal/playlist"
	"github.com/mmcdole/soundqueue/internal/service"
	"github.com/mmcdole/soundqueue/internal/tui/components"
	"github.com/mmcdole/soundqueue/internal/tui/styles"
	"github.com/mmcdole/soundqueue/internal/youtube"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

const (
	// Vertical layout: single footer line
	ChromeHeight = 1

	tickInterval = 100 * time.Millisecond
)

// Options configures a new Model
type Options struct {
	PageSize        int
	DefaultPlaylist string     // pre-fills the landing input
	InitialRoute    Route      // "/" or "/play/<id>"
	Rand            *rand.Rand // shuffle source, nil seeds from the clock
	Logger          *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Route Route
	Ready bool

	// Services
	Pager       domain.PlaylistPager
	PlaybackSvc *service.PlaybackService
	HistorySvc  *service.HistoryService

	// UI Components
	Landing    components.Landing
	Column     *components.PlaylistColumn
	NowPlaying components.NowPlaying
	Help       help.Model

	// Data
	Session *playlist.Session
	seq     int // bumped on every opened playlist, tags fetch results
	resume  int // index to put the cursor on once loaded, -1 for none

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Loading      bool
	SpinnerFrame int
	ticking      bool

	initialRoute Route
	pageSize     int
	rng          *rand.Rand
	logger       *slog.Logger
}

// NewModel creates a new application model
func NewModel(
	pager domain.PlaylistPager,
	playbackSvc *service.PlaybackService,
	historySvc *service.HistoryService,
	opts Options,
) Model {
	if opts.PageSize <= 0 {
		opts.PageSize = playlist.DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.ShortSeparator = styles.HelpSepStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	h.Styles.FullSeparator = styles.HelpSepStyle

	landing := components.NewLanding(opts.DefaultPlaylist)
	if historySvc != nil {
		landing.SetHistory(historySvc.Recent())
	}

	return Model{
		State:        StateBrowsing,
		Route:        LandingRoute(),
		Pager:        pager,
		PlaybackSvc:  playbackSvc,
		HistorySvc:   historySvc,
		Landing:      landing,
		Column:       components.NewPlaylistColumn(""),
		NowPlaying:   components.NewNowPlaying(),
		Help:         h,
		resume:       -1,
		initialRoute: opts.InitialRoute,
		pageSize:     opts.PageSize,
		rng:          opts.Rand,
		logger:       opts.Logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	if m.initialRoute.View == ViewPlay {
		return NavigateCmd(m.initialRoute)
	}
	return m.Landing.Focus()
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case NavigateMsg:
		cmd := m.navigate(msg.Route)
		return m, cmd

	case PageLoadedMsg:
		if !m.isCurrent(msg.PlaylistID, msg.Seq) {
			m.logger.Debug("dropping stale playlist page", "playlistID", msg.PlaylistID)
			return m, nil
		}
		return m.handlePageLoaded(msg)

	case PageFailedMsg:
		if !m.isCurrent(msg.PlaylistID, msg.Seq) {
			m.logger.Debug("dropping stale playlist failure", "playlistID", msg.PlaylistID)
			return m, nil
		}
		m.Session.Fail(msg.Err)
		m.Loading = false
		m.Column.SetLoading(false)
		m.Column.SetFailed(true)
		return m, nil

	case PlaybackStartedMsg:
		m.StatusMsg = "Playing: " + msg.Item.Title
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case ErrMsg:
		m.logger.Error("command failed", "error", msg.Err, "context", msg.Context)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case TickMsg:
		m.SpinnerFrame++
		m.Column.SetSpinnerFrame(m.SpinnerFrame)
		if !m.Loading {
			m.ticking = false
			return m, nil
		}
		return m, TickCmd(tickInterval)
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	switch m.Route.View {
	case ViewLanding:
		m.Landing, cmd, _ = m.Landing.Update(msg)
	case ViewPlay:
		if m.Column.IsFilterTyping() {
			m.Column, cmd = m.Column.Update(msg)
		}
	}
	return m, cmd
}

// navigate switches to a route. Opening a play route starts a new session
// and requests its first page.
func (m *Model) navigate(route Route) tea.Cmd {
	m.Route = route
	m.State = StateBrowsing

	if route.View != ViewPlay {
		m.Session = nil
		m.Loading = false
		m.refreshHistory()
		return m.Landing.Focus()
	}

	m.seq++
	m.resume = -1
	if m.HistorySvc != nil {
		if entry, err := m.HistorySvc.Get(route.PlaylistID); err == nil {
			m.resume = entry.LastPosition
		}
		m.HistorySvc.Opened(route.PlaylistID)
	}

	m.Session = playlist.NewSession(m.Pager, route.PlaylistID, m.pageSize, m.rng, m.logger)
	m.Column.Reset()
	m.Column.SetLoading(true)
	m.refreshPlaylist(false)
	m.logger.Info("opening playlist", "playlistID", route.PlaylistID)

	m.Loading = true
	return tea.Batch(
		FetchPageCmd(m.Pager, m.seq, m.Session.NextRequest()),
		m.startTick(),
	)
}

// isCurrent reports whether a fetch result belongs to the open session
func (m Model) isCurrent(playlistID string, seq int) bool {
	return m.Session != nil && m.Route.View == ViewPlay &&
		m.Session.PlaylistID() == playlistID && seq == m.seq
}

func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	m.Session.Apply(msg.Page)
	m.Column.SetFailed(false)
	m.refreshPlaylist(false)

	if m.resume >= 0 && m.resume < m.Session.Len() && !m.Session.Nav.IsShuffled() {
		m.Column.FollowPosition(m.resume)
		m.resume = -1
	}

	if m.Session.Done() {
		m.Loading = false
		m.Column.SetLoading(false)
		if m.HistorySvc != nil {
			m.HistorySvc.Loaded(m.Session.PlaylistID(), m.Session.Len())
		}
		m.logger.Info("fetched playlist", "playlistID", m.Session.PlaylistID(),
			"items", m.Session.Len(), "pages", m.Session.Pages())
		return m, nil
	}

	m.Column.SetLoading(true)
	return m, FetchPageCmd(m.Pager, m.seq, m.Session.NextRequest())
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	if m.Route.View == ViewLanding {
		return m.handleLandingKey(msg)
	}
	return m.handlePlayKey(msg)
}

func (m Model) handleLandingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.Landing.Value()

	var cmd tea.Cmd
	var action components.LandingAction
	m.Landing, cmd, action = m.Landing.Update(msg)

	switch action {
	case components.LandingSubmit:
		id := youtube.ParsePlaylistID(m.Landing.Selection())
		if id == "" {
			m.StatusMsg = "Enter a playlist link or id"
			m.StatusIsErr = true
			return m, ClearStatusCmd(3 * time.Second)
		}
		return m, m.navigate(PlayRoute(id))

	case components.LandingForget:
		if entry, ok := m.Landing.SelectedEntry(); ok && m.HistorySvc != nil {
			m.HistorySvc.Forget(entry.PlaylistID)
			m.refreshHistory()
			return m, StatusCmd("Removed "+entry.PlaylistID+" from history", false)
		}
		return m, nil
	}

	if m.Landing.Value() != before {
		m.refreshHistory()
	}
	return m, cmd
}

func (m Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Input that moves the cursor or starts playback wins over the
	// position restored from history
	if m.Column.IsFilterTyping() || !key.Matches(msg, Keys.Help, Keys.Retry) {
		m.resume = -1
	}

	// Filter typing owns the keyboard
	if m.Column.IsFilterTyping() {
		var cmd tea.Cmd
		m.Column, cmd = m.Column.Update(msg)
		return m, cmd
	}

	nav := m.Session.Nav

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Back):
		if m.Column.IsFiltering() {
			m.Column.ClearFilter()
			return m, nil
		}
		return m, m.navigate(LandingRoute())

	case key.Matches(msg, Keys.Filter):
		m.Column.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Play):
		if !nav.Select(m.Column.SelectedPosition()) {
			return m, nil
		}
		return m, m.playCurrent()

	case key.Matches(msg, Keys.Next):
		return m, m.runControl(components.ControlNext)

	case key.Matches(msg, Keys.Prev):
		return m, m.runControl(components.ControlPrev)

	case key.Matches(msg, Keys.Shuffle):
		return m, m.runControl(components.ControlShuffle)

	case key.Matches(msg, Keys.Original):
		return m, m.runControl(components.ControlOriginal)

	case key.Matches(msg, Keys.Random):
		return m, m.runControl(components.ControlRandom)

	case key.Matches(msg, Keys.Retry):
		return m, m.retry()
	}

	var cmd tea.Cmd
	m.Column, cmd = m.Column.Update(msg)
	return m, cmd
}

// handleMouseMsg handles clicks on the control buttons and list rows and
// wheel scrolling in the play view
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.State != StateBrowsing || m.Route.View != ViewPlay || m.Session == nil {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.resume = -1
		m.Column.Scroll(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.resume = -1
		m.Column.Scroll(1)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	panel := m.NowPlaying.Height()
	if msg.Y < panel {
		return m, m.runControl(m.NowPlaying.ControlAt(msg.X, msg.Y))
	}

	pos, ok := m.Column.SelectRowAt(msg.Y - panel)
	if !ok || !m.Session.Nav.Select(pos) {
		return m, nil
	}
	return m, m.playCurrent()
}

// runControl applies a playback control and launches the resulting item
func (m *Model) runControl(control components.Control) tea.Cmd {
	nav := m.Session.Nav

	switch control {
	case components.ControlNext:
		if nav.Next() {
			return m.playCurrent()
		}
	case components.ControlPrev:
		if nav.Prev() {
			return m.playCurrent()
		}
	case components.ControlShuffle:
		nav.Shuffle()
		m.refreshPlaylist(true)
	case components.ControlOriginal:
		nav.Unshuffle()
		m.refreshPlaylist(true)
	case components.ControlRandom:
		if _, ok := nav.PlayRandom(); ok {
			return m.playCurrent()
		}
	}
	return nil
}

// playCurrent launches the navigator's current item
func (m *Model) playCurrent() tea.Cmd {
	item, ok := m.Session.Current()
	if !ok {
		return nil
	}
	m.resume = -1
	m.refreshPlaylist(true)
	if m.HistorySvc != nil {
		m.HistorySvc.Played(m.Session.PlaylistID(), m.Session.Nav.CurrentIndex(), item)
	}
	if m.PlaybackSvc == nil {
		return nil
	}
	return PlayItemCmd(m.PlaybackSvc, item)
}

// retry resumes fetching from the stored cursor after a failure
func (m *Model) retry() tea.Cmd {
	if m.Session == nil || m.Session.Err() == nil || m.Session.Done() {
		return nil
	}
	m.Session.Retry()
	m.Column.SetFailed(false)
	m.Column.SetLoading(true)
	m.Loading = true
	m.logger.Info("retrying playlist fetch", "playlistID", m.Session.PlaylistID(), "items", m.Session.Len())
	return tea.Batch(
		FetchPageCmd(m.Pager, m.seq, m.Session.NextRequest()),
		m.startTick(),
	)
}

// refreshPlaylist pushes session state into the column and the now-playing
// panel. follow moves the cursor onto the current item.
func (m *Model) refreshPlaylist(follow bool) {
	if m.Session == nil {
		return
	}
	nav := m.Session.Nav

	title := m.Session.PlaylistID()
	if nav.IsShuffled() {
		title += " · shuffled"
	}
	m.Column.SetTitle(title)
	m.Column.SetItems(m.Session.Active())
	m.Column.SetPlaying(nav.CurrentPosition())
	if follow && nav.HasCurrent() {
		m.Column.FollowPosition(nav.CurrentPosition())
	}

	item, ok := m.Session.Current()
	m.NowPlaying.Set(item, ok, nav.CurrentPosition(), m.Session.Len(), nav.IsShuffled())
}

// refreshHistory reloads the landing history list, filtered by the input
// once the user has typed something
func (m *Model) refreshHistory() {
	if m.HistorySvc == nil {
		return
	}
	if m.Landing.Edited() {
		m.Landing.SetHistory(m.HistorySvc.Filter(m.Landing.Value()))
		return
	}
	m.Landing.SetHistory(m.HistorySvc.Recent())
}

func (m *Model) startTick() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return TickCmd(tickInterval)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.Help.Width = m.Width
	m.Landing.SetWidth(m.Width)
	m.NowPlaying.SetWidth(m.Width)

	columnHeight := m.Height - ChromeHeight - m.NowPlaying.Height()
	m.Column.SetSize(m.Width, max(columnHeight, 5))
}

// sessionStatus describes the fetch progress for the footer
func (m Model) sessionStatus() string {
	if m.Session == nil {
		return ""
	}
	switch {
	case m.Session.Err() != nil:
		return fmt.Sprintf("Error fetching the playlist · %d items · r to retry", m.Session.Len())
	case m.Loading:
		return fmt.Sprintf("Loading... %d items", m.Session.Len())
	default:
		return fmt.Sprintf("%d items", m.Session.Len())
	}
}
