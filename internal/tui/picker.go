package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/emo/internal/annotation"
	"github.com/f3rmion/emo/internal/clipboard"
	"github.com/f3rmion/emo/internal/emoji"
	"github.com/f3rmion/emo/internal/library"
	"github.com/f3rmion/emo/internal/search"
	"github.com/f3rmion/emo/internal/tui/preview"
	"github.com/mattn/go-runewidth"
)

// Message types
type searchResultMsg struct {
	search.Result
	seq int
}

type localeErrMsg struct {
	err error
}

// AnnotationsChangedMsg is delivered when the library merged a new locale.
type AnnotationsChangedMsg struct {
	Locale annotation.Locale
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

const (
	previewCols = 16
	previewRows = 8
)

// Model is the Bubble Tea model for the emoji picker.
type Model struct {
	lib      *library.Library
	input    textinput.Model
	renderer *preview.Renderer
	copy     func(string) error
	limit    int

	locale  annotation.Locale
	locales []annotation.Locale
	changes chan annotation.Locale

	results   []emoji.Entry
	selected  int
	searching bool
	seq       int // of the latest search
	err       error

	copied string
	chosen string

	width  int
	height int
}

// Option configures the picker.
type Option func(*Model)

// WithPreview draws the selected emoji as block art with r.
func WithPreview(r *preview.Renderer) Option {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithLimit caps the number of results shown.
func WithLimit(n int) Option {
	return func(m *Model) {
		m.limit = n
	}
}

// WithCopier replaces the system clipboard.
func WithCopier(fn func(string) error) Option {
	return func(m *Model) {
		m.copy = fn
	}
}

// New creates a picker over a loaded library.
func New(lib *library.Library, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a keyword..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	m := Model{
		lib:     lib,
		input:   ti,
		copy:    clipboard.Write,
		locale:  lib.Locale(),
		changes: make(chan annotation.Locale, 8),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.locales, _ = lib.Locales()

	changes := m.changes
	lib.OnAnnotationsChanged(func(l annotation.Locale) {
		select {
		case changes <- l:
		default:
		}
	})
	return m
}

// Chosen returns the emoji selected with enter, if any.
func (m Model) Chosen() string {
	return m.chosen
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchCmd(m.seq, ""), m.waitForAnnotations())
}

// search starts a search that supersedes every earlier one.
func (m *Model) search(keyword string) tea.Cmd {
	m.seq++
	return m.searchCmd(m.seq, keyword)
}

func (m Model) searchCmd(seq int, keyword string) tea.Cmd {
	var opts []search.Option
	if m.limit > 0 {
		opts = append(opts, search.WithLimit(m.limit))
	}
	ch := m.lib.SearchAsync(keyword, opts...)
	return func() tea.Msg {
		return searchResultMsg{Result: <-ch, seq: seq}
	}
}

func (m Model) waitForAnnotations() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		return AnnotationsChangedMsg{Locale: <-changes}
	}
}

func (m Model) setLocale(locale annotation.Locale) tea.Cmd {
	lib := m.lib
	return func() tea.Msg {
		if err := lib.SetLocale(context.Background(), locale.ID); err != nil {
			return localeErrMsg{err: err}
		}
		return nil
	}
}

// nextLocale returns the bundled locale after the active one.
func (m Model) nextLocale() (annotation.Locale, bool) {
	if len(m.locales) < 2 {
		return annotation.Locale{}, false
	}
	for i, l := range m.locales {
		if l == m.locale {
			return m.locales[(i+1)%len(m.locales)], true
		}
	}
	return m.locales[0], true
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.selected < len(m.results)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			if e, ok := m.current(); ok {
				m.chosen = e.Key
				m.err = m.copy(e.Key)
				return m, tea.Quit
			}
			return m, nil
		case "ctrl+y":
			if e, ok := m.current(); ok {
				if m.err = m.copy(e.Key); m.err == nil {
					m.copied = e.Key
					return m, clearCopiedAfter(2 * time.Second)
				}
			}
			return m, nil
		case "tab":
			if next, ok := m.nextLocale(); ok {
				return m, m.setLocale(next)
			}
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			m.searching = true
			searchCmd := m.search(after)
			return m, tea.Batch(cmd, searchCmd)
		}
		return m, cmd

	case searchResultMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.searching = false
		m.results = msg.Entries
		m.err = msg.Err
		if m.selected >= len(m.results) {
			m.selected = max(len(m.results)-1, 0)
		}
		return m, nil

	case AnnotationsChangedMsg:
		m.locale = msg.Locale
		m.searching = true
		searchCmd := m.search(m.input.Value())
		return m, tea.Batch(searchCmd, m.waitForAnnotations())

	case localeErrMsg:
		m.err = msg.err
		return m, nil

	case clearCopiedMsg:
		m.copied = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) current() (emoji.Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.results) {
		return emoji.Entry{}, false
	}
	return m.results[m.selected], true
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(" emo ") + "  " + LocaleStyle.Render(m.locale.String()))
	b.WriteString("\n\n  ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	list := m.renderResults()
	if e, ok := m.current(); ok {
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.renderDetail(e))
	}
	b.WriteString(list)
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(ErrorStyle.Render("  " + m.err.Error()))
	case m.copied != "":
		b.WriteString(CopiedStyle.Render("  Copied " + m.copied))
	case m.searching:
		b.WriteString(LoadingStyle.Render("  Searching..."))
	default:
		help := []string{"↑/↓: select", "enter: copy & quit", "ctrl+y: copy"}
		if len(m.locales) > 1 {
			help = append(help, "tab: locale")
		}
		help = append(help, "esc: quit")
		b.WriteString(HelpStyle.Render("  " + strings.Join(help, " • ")))
	}

	return b.String()
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return 12
	}
	return max(m.height-8, 3)
}

func (m Model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	return max(min(m.width/2, 60), 20)
}

// renderResults renders the window of results around the selection.
func (m Model) renderResults() string {
	if len(m.results) == 0 {
		if m.searching {
			return ""
		}
		return HelpStyle.Render("  No matches")
	}

	height := m.listHeight()
	start := 0
	if m.selected >= height {
		start = m.selected - height + 1
	}
	end := min(start+height, len(m.results))

	width := m.listWidth()
	var lines []string
	for i := start; i < end; i++ {
		e := m.results[i]
		name := runewidth.Truncate(strings.Join(e.Names(), ", "), width-6, "…")
		line := runewidth.FillRight(e.Key, 3) + " " + name
		if i == m.selected {
			lines = append(lines, ResultActiveStyle.Render(line))
		} else {
			lines = append(lines, ResultStyle.Render(line))
		}
	}
	lines = append(lines, CountStyle.Render(fmt.Sprintf("%d/%d", m.selected+1, len(m.results))))
	return strings.Join(lines, "\n")
}

// renderDetail renders the selected entry.
func (m Model) renderDetail(e emoji.Entry) string {
	var b strings.Builder

	if art := m.renderer.Render(e.Key, previewCols, previewRows); art != "" {
		b.WriteString(PreviewStyle.Render(art))
		b.WriteString("\n\n")
	}

	rows := []struct{ label, value string }{
		{"Emoji", e.Key},
		{"Spoken", e.SpokenText},
		{"Keywords", strings.Join(e.Names(), ", ")},
		{"Group", e.Label.String()},
		{"Code", e.CodepointString()},
		{"Status", e.Status.String()},
	}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		b.WriteString(LabelStyle.Render(r.label+":") + " " + ValueStyle.Render(r.value) + "\n")
	}

	return DetailStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}
