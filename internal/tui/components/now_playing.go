package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/soundqueue/internal/domain"
	"github.com/mmcdole/soundqueue/internal/tui/styles"
)

// NowPlaying shows the current item, its position and the playback controls
type NowPlaying struct {
	item     domain.PlaylistItem
	hasItem  bool
	position int // 1-based, 0 when nothing is current
	total    int
	shuffled bool
	width    int
}

// NewNowPlaying creates an empty panel
func NewNowPlaying() NowPlaying {
	return NowPlaying{}
}

// Set updates the displayed item. pos is the active-ordering position, -1 for none.
func (n *NowPlaying) Set(item domain.PlaylistItem, ok bool, pos, total int, shuffled bool) {
	n.item = item
	n.hasItem = ok
	n.position = 0
	if ok && pos >= 0 {
		n.position = pos + 1
	}
	n.total = total
	n.shuffled = shuffled
}

// SetWidth sets the outer width of the panel
func (n *NowPlaying) SetWidth(width int) {
	n.width = width
}

// Counter renders "n / total"
func (n NowPlaying) Counter() string {
	if n.position == 0 {
		return fmt.Sprintf("- / %d", n.total)
	}
	return fmt.Sprintf("%d / %d", n.position, n.total)
}

// Height is the number of terminal rows the panel takes
func (n NowPlaying) Height() int {
	// border, four text lines, bordered control buttons
	return 2 + 4 + 3
}

// View renders the panel
func (n NowPlaying) View() string {
	frameW, _ := styles.NowPlayingStyle.GetFrameSize()
	inner := max(n.width-frameW, 20)

	var title, url, thumb string
	if n.hasItem {
		title = styles.TitleStyle.Render(styles.Truncate(n.item.Title, inner-lipgloss.Width(n.Counter())-2))
		url = styles.AccentStyle.Render(styles.Truncate(n.item.EmbedURL(), inner))
		thumb = styles.DimStyle.Render(styles.Truncate(n.item.ThumbnailURL, inner))
	} else {
		title = styles.DimStyle.Render("Nothing playing")
		url = styles.DimStyle.Render("Select an item and press enter")
		thumb = " "
	}

	counter := styles.SubtitleStyle.Render(n.Counter())
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(counter), 1)
	header := title + lipgloss.NewStyle().Width(gap).Render("") + counter

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		url,
		thumb,
		"",
		n.renderControls(),
	)

	// Width covers padding but not the border
	return styles.NowPlayingStyle.Width(inner + styles.NowPlayingStyle.GetHorizontalPadding()).Render(content)
}

// Control is a playback button of the panel
type Control int

const (
	ControlNone Control = iota
	ControlPrev
	ControlNext
	ControlOriginal
	ControlShuffle
	ControlRandom
)

type controlButton struct {
	control Control
	label   string
	gap     string // spacing rendered before the button
}

var controlButtons = []controlButton{
	{ControlPrev, "◀ prev (p)", ""},
	{ControlNext, "next (n) ▶", " "},
	{ControlOriginal, "original (o)", "   "},
	{ControlShuffle, "shuffle (s)", " "},
	{ControlRandom, "random (x)", " "},
}

// controlsTop is the panel row where the buttons start: top border plus
// header, embed URL, thumbnail and a blank line
const controlsTop = 1 + 4

func (n NowPlaying) renderButton(b controlButton) string {
	active := (b.control == ControlOriginal && !n.shuffled) ||
		(b.control == ControlShuffle && n.shuffled)
	if active {
		return styles.ButtonActiveStyle.Render(b.label)
	}
	return styles.ButtonStyle.Render(b.label)
}

func (n NowPlaying) renderControls() string {
	parts := make([]string, 0, 2*len(controlButtons))
	for _, b := range controlButtons {
		if b.gap != "" {
			parts = append(parts, b.gap)
		}
		parts = append(parts, n.renderButton(b))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// ControlAt returns the button under a cell, x and y relative to the
// panel's top-left corner
func (n NowPlaying) ControlAt(x, y int) Control {
	if y < controlsTop {
		return ControlNone
	}

	left := styles.NowPlayingStyle.GetBorderLeftSize() + styles.NowPlayingStyle.GetPaddingLeft()
	for _, b := range controlButtons {
		left += lipgloss.Width(b.gap)
		button := n.renderButton(b)
		if y >= controlsTop+lipgloss.Height(button) {
			return ControlNone
		}
		width := lipgloss.Width(button)
		if x >= left && x < left+width {
			return b.control
		}
		left += width
	}
	return ControlNone
}
