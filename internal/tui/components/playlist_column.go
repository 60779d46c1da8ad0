package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/soundqueue/internal/domain"
	"github.com/mmcdole/soundqueue/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// PlaylistColumn is a scrollable list of playlist items in the active
// playback ordering, with an optional fuzzy filter over titles.
type PlaylistColumn struct {
	items   []domain.PlaylistItem
	playing int // position of the current item, -1 when none

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width  int
	height int

	title string

	// Loading state
	loading      bool
	spinnerFrame int
	failed       bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewPlaylistColumn creates an empty playlist column
func NewPlaylistColumn(title string) *PlaylistColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &PlaylistColumn{
		title:       title,
		playing:     -1,
		filterInput: ti,
	}
}

// Update handles cursor movement and filter typing
func (c *PlaylistColumn) Update(msg tea.Msg) (*PlaylistColumn, tea.Cmd) {
	// Typing into the filter
	if c.filterActive && c.filterInput.Focused() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, ListKeys.Escape):
				c.clearFilter()
				return c, nil
			case key.Matches(keyMsg, ListKeys.Enter):
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return c, nil
			case keyMsg.String() == "backspace" && c.filterInput.Value() == "":
				c.clearFilter()
				return c, nil
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return c, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	if c.filterActive {
		switch {
		case key.Matches(keyMsg, ListKeys.Escape):
			c.clearFilter()
			return c, nil
		case key.Matches(keyMsg, ListKeys.Filter):
			c.filterInput.Focus()
			return c, nil
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return c, nil
	}

	switch {
	case key.Matches(keyMsg, ListKeys.Down):
		c.moveCursor(1)
	case key.Matches(keyMsg, ListKeys.Up):
		c.moveCursor(-1)
	case key.Matches(keyMsg, ListKeys.Home):
		c.cursor = 0
		c.offset = 0
	case key.Matches(keyMsg, ListKeys.End):
		c.cursor = count - 1
		c.ensureVisible()
	case key.Matches(keyMsg, ListKeys.HalfDown):
		c.moveCursor(max(c.maxVisible/2, 1))
	case key.Matches(keyMsg, ListKeys.HalfUp):
		c.moveCursor(-max(c.maxVisible/2, 1))
	case key.Matches(keyMsg, ListKeys.PageDown):
		c.moveCursor(c.maxVisible)
	case key.Matches(keyMsg, ListKeys.PageUp):
		c.moveCursor(-c.maxVisible)
	}

	return c, nil
}

func (c *PlaylistColumn) moveCursor(delta int) {
	c.cursor += delta
	if c.cursor >= c.ItemCount() {
		c.cursor = c.ItemCount() - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	c.ensureVisible()
}

// View renders the column inside its border
func (c *PlaylistColumn) View() string {
	style := styles.ActiveBorder

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

// SetSize sets the outer dimensions of the column
func (c *PlaylistColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *PlaylistColumn) SetTitle(title string) {
	c.title = title
}

func (c *PlaylistColumn) Title() string {
	return c.title
}

// SetItems replaces the rows with items in active order. The cursor stays
// where it was so rows appended by a new page do not move the selection.
func (c *PlaylistColumn) SetItems(items []domain.PlaylistItem) {
	c.items = items
	c.loading = false
	if c.filterActive {
		c.refilter()
	}
	c.clampCursor()
}

// Reset clears all rows, the filter and the selection
func (c *PlaylistColumn) Reset() {
	c.items = nil
	c.playing = -1
	c.cursor = 0
	c.offset = 0
	c.failed = false
	c.clearFilter()
}

// SetPlaying marks the row at pos of the active ordering as playing
func (c *PlaylistColumn) SetPlaying(pos int) {
	c.playing = pos
}

func (c *PlaylistColumn) SetLoading(loading bool) {
	c.loading = loading
}

// SetFailed toggles the fetch error line
func (c *PlaylistColumn) SetFailed(failed bool) {
	c.failed = failed
}

// SetSpinnerFrame updates the spinner animation frame
func (c *PlaylistColumn) SetSpinnerFrame(frame int) {
	c.spinnerFrame = frame
}

// ItemCount returns the number of visible rows
func (c *PlaylistColumn) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.items)
}

// Cursor returns the cursor row
func (c *PlaylistColumn) Cursor() int {
	return c.cursor
}

// SelectedPosition returns the active-ordering position under the cursor,
// or -1 when no row is selectable.
func (c *PlaylistColumn) SelectedPosition() int {
	if c.cursor < 0 || c.cursor >= c.ItemCount() {
		return -1
	}
	return c.mapIndex(c.cursor)
}

// SelectedItem returns the item under the cursor
func (c *PlaylistColumn) SelectedItem() (domain.PlaylistItem, bool) {
	pos := c.SelectedPosition()
	if pos < 0 {
		return domain.PlaylistItem{}, false
	}
	return c.items[pos], true
}

// FollowPosition moves the cursor onto the row for active position pos,
// if that row is visible under the current filter.
func (c *PlaylistColumn) FollowPosition(pos int) {
	if pos < 0 || pos >= len(c.items) {
		return
	}
	if c.filteredIdx == nil {
		c.cursor = pos
		c.ensureVisible()
		return
	}
	for row, idx := range c.filteredIdx {
		if idx == pos {
			c.cursor = row
			c.ensureVisible()
			return
		}
	}
}

// rowsTop is the first item line: top border, title and the "↑ more" line
const rowsTop = 1 + 1 + 1

// SelectRowAt moves the cursor to the row drawn at line y of the column
// (0 is the top border) and returns its active-ordering position.
func (c *PlaylistColumn) SelectRowAt(y int) (int, bool) {
	row := y - rowsTop
	if row < 0 || row >= c.maxVisible {
		return -1, false
	}
	i := c.offset + row
	if i >= c.ItemCount() {
		return -1, false
	}
	c.cursor = i
	c.ensureVisible()
	return c.mapIndex(i), true
}

// Scroll moves the cursor by delta rows
func (c *PlaylistColumn) Scroll(delta int) {
	if c.ItemCount() == 0 {
		return
	}
	c.moveCursor(delta)
}

// ToggleFilter activates the filter input
func (c *PlaylistColumn) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *PlaylistColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *PlaylistColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *PlaylistColumn) ClearFilter() {
	c.clearFilter()
}

// Internal methods

func (c *PlaylistColumn) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *PlaylistColumn) ensureVisible() {
	// Size not known yet
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *PlaylistColumn) clampCursor() {
	count := c.ItemCount()
	if c.cursor >= count {
		c.cursor = count - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	if c.offset > c.cursor {
		c.offset = c.cursor
	}
	c.ensureVisible()
}

func (c *PlaylistColumn) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
	c.clampCursor()
}

func (c *PlaylistColumn) applyFilter() {
	c.refilter()
	// Reset cursor to first match
	c.cursor = 0
	c.offset = 0
}

func (c *PlaylistColumn) refilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	titles := make([]string, len(c.items))
	for i, item := range c.items {
		titles[i] = strings.ToLower(item.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)

	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}
}

func (c *PlaylistColumn) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c *PlaylistColumn) renderContent() string {
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	count := c.ItemCount()
	if count == 0 {
		var msg string
		switch {
		case c.failed:
			msg = styles.ErrorStyle.Render("Error fetching the playlist")
		case c.loading:
			spinner := styles.SpinnerFrames[c.spinnerFrame%len(styles.SpinnerFrames)]
			msg = styles.DimStyle.Render(spinner + " Loading...")
		case c.filterActive && c.filterQuery != "":
			msg = styles.DimStyle.Render("No matches")
		default:
			msg = styles.DimStyle.Render("No items")
		}
		content := titleLine + "\n" + " " + "\n" + msg + "\n" + " "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := min(c.offset+c.maxVisible, count)

	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		pos := c.mapIndex(i)
		lines = append(lines, c.renderItem(pos, c.items[pos], i == c.cursor, itemWidth))
	}

	// Header and footer lines are always reserved to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	footer := " "
	switch {
	case end < count:
		footer = styles.DimStyle.Render("↓ more")
	case c.failed:
		footer = styles.ErrorStyle.Render("Error fetching the playlist")
	case c.loading:
		spinner := styles.SpinnerFrames[c.spinnerFrame%len(styles.SpinnerFrames)]
		footer = styles.DimStyle.Render(spinner + " Loading more...")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer

	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}

	return content
}

func (c *PlaylistColumn) renderItem(pos int, item domain.PlaylistItem, selected bool, width int) string {
	indicator := " "
	indicatorFg := styles.Accent
	if pos == c.playing {
		indicator = styles.PlayingChar
	}

	number := fmt.Sprintf("%3d ", pos+1)
	numberFg := styles.DimGray

	// Title takes what is left after the indicator and the number (+2 margin)
	title := styles.Truncate(item.Title, width-2-len(number)-2)

	parts := []styles.RowPart{
		{Text: indicator, Foreground: &indicatorFg},
		{Text: " " + number, Foreground: &numberFg},
		{Text: title, Foreground: nil},
	}

	return styles.RenderListRow(parts, selected, width)
}

func (c *PlaylistColumn) renderFilterBar() string {
	input := c.filterInput.View()

	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.items)))
	}

	return input + countStr
}
