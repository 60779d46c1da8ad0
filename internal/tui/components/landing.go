package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/soundqueue/internal/domain"
	"github.com/mmcdole/soundqueue/internal/tui/styles"
)

// LandingAction reports what a key press on the landing view asked for
type LandingAction int

const (
	LandingNone LandingAction = iota
	LandingSubmit
	LandingForget
)

// Landing is the playlist link input plus the list of recently opened playlists
type Landing struct {
	input   textinput.Model
	initial string
	edited  bool

	history       []domain.HistoryEntry
	historyCursor int
	historyFocus  bool

	width int
	now   func() time.Time
}

// NewLanding creates the landing view with the input pre-filled
func NewLanding(initial string) Landing {
	ti := textinput.New()
	ti.Placeholder = "https://www.youtube.com/playlist?list=..."
	ti.CharLimit = 256
	ti.Width = 48
	ti.Prompt = "▸ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.SetValue(initial)
	ti.Focus()

	return Landing{
		input:   ti,
		initial: initial,
		now:     time.Now,
	}
}

// Value returns the current input text
func (l Landing) Value() string {
	return l.input.Value()
}

// Edited reports whether the input differs from the pre-filled value
func (l Landing) Edited() bool {
	return l.edited
}

// HistoryFocused reports whether the history list has focus
func (l Landing) HistoryFocused() bool {
	return l.historyFocus
}

// Selection returns the identifier to open: the highlighted history entry
// when the list is focused, otherwise the input text.
func (l Landing) Selection() string {
	if entry, ok := l.SelectedEntry(); ok && l.historyFocus {
		return entry.PlaylistID
	}
	return l.input.Value()
}

// SelectedEntry returns the highlighted history entry
func (l Landing) SelectedEntry() (domain.HistoryEntry, bool) {
	if l.historyCursor < 0 || l.historyCursor >= len(l.history) {
		return domain.HistoryEntry{}, false
	}
	return l.history[l.historyCursor], true
}

// SetHistory replaces the listed history entries
func (l *Landing) SetHistory(entries []domain.HistoryEntry) {
	l.history = entries
	if l.historyCursor >= len(entries) {
		l.historyCursor = len(entries) - 1
	}
	if l.historyCursor < 0 {
		l.historyCursor = 0
	}
	if len(entries) == 0 && l.historyFocus {
		l.focusInput()
	}
}

// History returns the listed entries
func (l Landing) History() []domain.HistoryEntry {
	return l.history
}

// SetWidth sets the available width
func (l *Landing) SetWidth(width int) {
	l.width = width
	l.input.Width = max(min(width-10, 64), 20)
}

// Focus gives the input keyboard focus again
func (l *Landing) Focus() tea.Cmd {
	l.focusInput()
	return textinput.Blink
}

func (l *Landing) focusInput() {
	l.historyFocus = false
	l.input.Focus()
}

// Update handles input events, returns (landing, cmd, action)
func (l Landing) Update(msg tea.Msg) (Landing, tea.Cmd, LandingAction) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, LandingKeys.Submit):
			return l, nil, LandingSubmit
		case key.Matches(keyMsg, LandingKeys.Focus):
			if l.historyFocus {
				l.focusInput()
				return l, textinput.Blink, LandingNone
			}
			if len(l.history) > 0 {
				l.historyFocus = true
				l.input.Blur()
			}
			return l, nil, LandingNone
		}

		if l.historyFocus {
			switch {
			case key.Matches(keyMsg, LandingKeys.Down):
				if l.historyCursor < len(l.history)-1 {
					l.historyCursor++
				}
			case key.Matches(keyMsg, LandingKeys.Up):
				if l.historyCursor > 0 {
					l.historyCursor--
				}
			case key.Matches(keyMsg, LandingKeys.Forget):
				return l, nil, LandingForget
			}
			return l, nil, LandingNone
		}
	}

	var cmd tea.Cmd
	before := l.input.Value()
	l.input, cmd = l.input.Update(msg)
	if l.input.Value() != before {
		l.edited = l.input.Value() != l.initial
		l.historyCursor = 0
	}
	return l, cmd, LandingNone
}

// View renders the landing view
func (l Landing) View() string {
	width := max(min(l.width-4, 72), 30)

	logo := styles.LogoStyle.Render("soundqueue")
	subtitle := styles.SubtitleStyle.Render("Paste a YouTube playlist link or id and press enter")

	box := styles.InputBoxStyle
	if l.historyFocus {
		box = box.BorderForeground(styles.DimGray)
	}
	input := box.Width(width).Render(l.input.View())

	sections := []string{logo, subtitle, "", input}

	if len(l.history) > 0 {
		sections = append(sections, "", l.renderHistory(width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (l Landing) renderHistory(width int) string {
	header := styles.DimStyle.Render("Recent")
	if l.historyFocus {
		header = styles.AccentStyle.Render("Recent")
	}

	lines := []string{header}
	for i, entry := range l.history {
		selected := l.historyFocus && i == l.historyCursor
		detail := fmt.Sprintf("%d items", entry.ItemCount)
		ago := formatAgo(l.now().Sub(entry.OpenedAt))
		lines = append(lines, renderHistoryRow(entry, detail, ago, selected, width))
	}
	return strings.Join(lines, "\n")
}

func renderHistoryRow(item domain.ListItem, detail, ago string, selected bool, width int) string {
	// Title keeps at least half the row; detail takes what is left
	title := styles.Truncate(item.GetTitle(), max((width-2-lipgloss.Width(ago)-4)/2, 8))
	if desc := item.GetDescription(); desc != "" {
		detail = desc + " · " + detail
	}

	dimFg := styles.DimGray
	avail := width - 2 - lipgloss.Width(title) - lipgloss.Width(ago) - 4
	parts := []styles.RowPart{
		{Text: title, Foreground: nil},
		{Text: "  " + styles.Truncate(detail, max(avail, 0)), Foreground: &dimFg},
		{Text: "  " + ago, Foreground: &dimFg},
	}
	return styles.RenderListRow(parts, selected, width)
}

func formatAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
