package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/soundqueue/internal/tui/styles"
)

// View renders the current route
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	contentHeight := m.Height - ChromeHeight

	var content string
	switch m.Route.View {
	case ViewPlay:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.NowPlaying.View(),
			m.Column.View(),
		)
	default:
		content = lipgloss.Place(m.Width, contentHeight,
			lipgloss.Center, lipgloss.Center,
			m.Landing.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())
}

// renderFooter renders the status line: spinner or status on the left,
// short help on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.DimStyle.Render(m.StatusMsg)
	case m.Session != nil && m.Session.Err() != nil:
		left = styles.ErrorStyle.Render(m.sessionStatus())
	case m.Loading:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render(m.sessionStatus())
	case m.Route.View == ViewPlay:
		left = styles.DimStyle.Render(m.sessionStatus())
	}

	var right string
	if m.Route.View == ViewPlay {
		h := m.Help
		h.Width = max(m.Width-lipgloss.Width(left)-2, 0)
		right = h.ShortHelpView(Keys.ShortHelp())
	} else {
		right = styles.DimStyle.Render("enter open · tab history · ctrl+c quit")
	}

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}

// renderHelp renders the full key map as a centered modal
func (m Model) renderHelp() string {
	h := m.Help
	h.ShowAll = true

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Keys"),
		"",
		h.View(Keys),
		"",
		styles.DimStyle.Render("Press any key to return..."),
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
