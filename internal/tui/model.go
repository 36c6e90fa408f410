// Package tui is the interactive terminal board.
package tui

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/notepad/pkg/board"
	"github.com/aretw0/notepad/pkg/view"
)

// fontStep is the change applied by one press of +/-.
const fontStep = 2

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeSearch
	modeConfirm
)

// Options tunes the board UI.
type Options struct {
	MarkdownStyle string
	WordWrap      int
}

// Model is the bubbletea model of the board.
type Model struct {
	ctx      context.Context
	board    *board.Board
	renderer *Renderer
	keys     keyMap
	opts     Options

	items  []view.Item
	cursor int // index into the visible items
	offset int

	mode    mode
	editing string
	editor  textarea.Model
	search  textinput.Model
	preview bool
	status  string

	width  int
	height int
}

// New creates the model. r must be the Renderer the board was built with.
func New(ctx context.Context, b *board.Board, r *Renderer, opts Options) Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	ta.Placeholder = "Write something…"
	ta.KeyMap.CapitalizeWordForward = key.NewBinding(key.WithDisabled())
	ta.Blur()

	si := textinput.New()
	si.Placeholder = "search"
	si.Prompt = "/ "

	return Model{
		ctx:      ctx,
		board:    b,
		renderer: r,
		keys:     defaultKeyMap(),
		opts:     opts,
		items:    b.Render(),
		editor:   ta,
		search:   si,
	}
}

// Run starts the board UI and blocks until the user quits.
func Run(ctx context.Context, b *board.Board, r *Renderer, opts Options) error {
	defer r.Stop()
	p := tea.NewProgram(New(ctx, b, r, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.renderer.wait()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.SetWidth(max(msg.Width-4, 10))
		m.editor.SetHeight(max(msg.Height-6, 3))
		m.search.Width = max(msg.Width-6, 10)
		m.scroll()
		return m, nil

	case itemsMsg:
		m.items = msg
		m.clamp()
		return m, m.renderer.wait()

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.mode == modeEdit {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.scroll()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
			m.scroll()
		}

	case key.Matches(msg, m.keys.New):
		note, err := m.board.Create(m.ctx)
		m.refresh()
		if err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		}
		m.selectID(note.ID)
		return m, m.startEdit(note.ID, note.Text)

	case key.Matches(msg, m.keys.Edit):
		if it, ok := m.selected(); ok {
			return m, m.startEdit(it.ID, it.Text)
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.board.Filter())
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selected(); ok {
			m.mode = modeConfirm
		}

	case key.Matches(msg, m.keys.Copy):
		if it, ok := m.selected(); ok {
			if err := m.board.Copy(it.ID); err != nil {
				m.status = err.Error()
			} else {
				m.status = "copied to clipboard"
			}
		}

	case key.Matches(msg, m.keys.Drag):
		m.toggleDrag()

	case key.Matches(msg, m.keys.Cancel):
		if _, ok := m.board.Dragging(); ok {
			m.board.DragEnd()
		} else if m.board.Filter() != "" {
			m.board.Search("")
		}
		m.refresh()

	case key.Matches(msg, m.keys.FontUp):
		m.setFont(m.board.FontSize() + fontStep)

	case key.Matches(msg, m.keys.FontDown):
		m.setFont(m.board.FontSize() - fontStep)

	case key.Matches(msg, m.keys.Preview):
		m.preview = !m.preview
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopEdit()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		if err := m.board.Flush(m.ctx); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = "saved"
		}
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.board.Input(m.editing, after)
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		m.board.Search("")
		m.refresh()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.board.Filter() {
		m.board.Search(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	it, ok := m.selected()
	if !ok || (msg.String() != "y" && msg.String() != "Y") {
		m.status = "delete cancelled"
		return m, nil
	}
	if _, err := m.board.Delete(m.ctx, it.ID, nil); err != nil {
		m.status = fmt.Sprintf("delete failed: %v", err)
	} else {
		m.status = "note deleted"
	}
	m.refresh()
	return m, nil
}

func (m *Model) startEdit(id, text string) tea.Cmd {
	if id == "" {
		return nil
	}
	m.mode = modeEdit
	m.editing = id
	m.editor.SetValue(text)
	m.editor.CursorEnd()
	return m.editor.Focus()
}

func (m *Model) stopEdit() {
	m.mode = modeBrowse
	m.editing = ""
	m.editor.Blur()
	m.refresh()
}

func (m *Model) toggleDrag() {
	it, ok := m.selected()
	if !ok {
		return
	}
	if _, dragging := m.board.Dragging(); !dragging {
		m.board.DragStart(it.ID)
		m.status = "moving: select a target and press space, esc cancels"
		m.refresh()
		return
	}

	dragged, _ := m.board.Dragging()
	moved, err := m.board.Drop(m.ctx, it.ID)
	m.refresh()
	switch {
	case err != nil:
		m.status = fmt.Sprintf("save failed: %v", err)
	case moved:
		m.selectID(dragged)
		m.status = "note moved"
	}
}

func (m *Model) setFont(px int) {
	if err := m.board.SetFontSize(m.ctx, px); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("font size %dpx", px)
	m.refresh()
}

// refresh pulls the projection directly after a change made from Update.
func (m *Model) refresh() {
	m.items = m.board.Render()
	m.clamp()
}

func (m Model) visible() []view.Item {
	return view.Visible(m.items)
}

func (m Model) selected() (view.Item, bool) {
	v := m.visible()
	if m.cursor < 0 || m.cursor >= len(v) {
		return view.Item{}, false
	}
	return v[m.cursor], true
}

func (m *Model) selectID(id string) {
	if i := slices.IndexFunc(m.visible(), func(it view.Item) bool { return it.ID == id }); i >= 0 {
		m.cursor = i
		m.scroll()
	}
}

func (m *Model) clamp() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scroll()
}

// scroll keeps the cursor inside the window of cards that fit on screen.
func (m *Model) scroll() {
	fit := m.cardsPerScreen()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+fit {
		m.offset = m.cursor - fit + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
