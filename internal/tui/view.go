package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/notepad/pkg/view"
)

// cardLines is the number of text lines shown on a card.
const cardLines = 3

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedStyle = cardStyle.
			BorderForeground(lipgloss.Color("205"))

	draggedStyle = cardStyle.
			BorderStyle(lipgloss.DoubleBorder()).
			Faint(true)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1).
			Align(lipgloss.Center)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading notes…"
	}

	switch m.mode {
	case modeEdit:
		return lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("editing "+m.editing+"  (esc done, ctrl+s save now)"),
			previewStyle.Render(m.editor.View()),
			m.footer(),
		)
	case modeConfirm:
		it, _ := m.selected()
		title := view.Title(it.Text, 40)
		if title == "" {
			title = "(empty note)"
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			dialogStyle.Render(fmt.Sprintf("Delete note?\n\n%s\n\n[y] yes   [any key] no", title)))
	}

	board := m.cards()
	if m.preview {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, m.previewPane())
	}

	header := mutedStyle.Render(m.header())
	if m.mode == modeSearch {
		header = m.search.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, board, m.footer())
}

func (m Model) header() string {
	v := len(m.visible())
	s := fmt.Sprintf("notepad  %d notes", len(m.items))
	if f := m.board.Filter(); f != "" {
		s += fmt.Sprintf("  %d matching %q", v, f)
	}
	return s
}

func (m Model) cards() string {
	visible := m.visible()
	if len(visible) == 0 {
		if len(m.items) == 0 {
			return mutedStyle.Render("\n  No notes yet. Press n to create one.\n")
		}
		return mutedStyle.Render("\n  No note matches the search.\n")
	}

	width := m.cardWidth()
	end := min(m.offset+m.cardsPerScreen(), len(visible))
	rendered := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rendered = append(rendered, m.card(visible[i], i == m.cursor, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func (m Model) card(it view.Item, selected bool, width int) string {
	style := cardStyle
	switch {
	case it.Dimmed:
		style = draggedStyle
	case selected:
		style = selectedStyle
	}

	lines := strings.Split(it.Text, "\n")
	if len(lines) > cardLines {
		lines = append(lines[:cardLines-1], "…")
	}
	for len(lines) < cardLines {
		lines = append(lines, "")
	}
	inner := width - 4
	for i, l := range lines {
		if r := []rune(l); len(r) > inner {
			lines[i] = string(r[:inner-1]) + "…"
		}
	}

	body := strings.Join(lines, "\n")
	stamp := mutedStyle.Render(it.CreatedAt.Format("Jan 02 15:04"))
	return style.Width(width).Render(body + "\n" + stamp)
}

func (m Model) previewPane() string {
	it, ok := m.selected()
	if !ok {
		return ""
	}
	width := max(m.width-m.cardWidth()-6, 20)
	if m.opts.WordWrap > 0 {
		width = min(width, m.opts.WordWrap)
	}
	out, err := RenderMarkdown(it.Text, m.opts.MarkdownStyle, width)
	if err != nil {
		out = it.Text
	}
	return previewStyle.Width(width + 2).Render(out)
}

func (m Model) footer() string {
	parts := make([]string, 0, 12)
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, fmt.Sprintf("%dpx", m.board.FontSize()))
	if m.mode == modeBrowse {
		for _, b := range m.keys.browseHelp() {
			h := b.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
	}
	return mutedStyle.Render(strings.Join(parts, " • "))
}

// cardWidth scales cards with the font size setting.
func (m Model) cardWidth() int {
	w := m.board.FontSize()*2 + 8
	limit := m.width - 2
	if m.preview {
		limit = m.width / 2
	}
	return max(min(w, limit), 20)
}

// cardsPerScreen is how many cards fit between the header and the footer.
func (m Model) cardsPerScreen() int {
	cardHeight := cardLines + 3 // border, stamp
	return max((m.height-2)/cardHeight, 1)
}

