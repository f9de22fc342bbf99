// Package picker is an interactive selector for recently used tags.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-isatty"
)

var (
	// ErrCancelled is returned by Run when the user dismisses the picker.
	ErrCancelled = errors.New("picker: cancelled")
	// ErrNoInput is returned by Run when its input ends before a choice is
	// made, as with stdin that was already read to the end.
	ErrNoInput = errors.New("picker: input closed before a choice was made")
)

// inputClosedMsg reports that the input reader hit EOF.
type inputClosedMsg struct{}

type item struct {
	tag      string
	selected bool
}

// Model lists tags that can be toggled, modified in place and accepted.
type Model struct {
	items  []item
	cursor int

	editing bool
	input   textinput.Model

	done      bool
	cancelled bool
	closed    bool
	width     int
}

// New returns a picker over tags, none selected.
func New(tags []string) *Model {
	items := make([]item, 0, len(tags))
	for _, t := range tags {
		items = append(items, item{tag: t})
	}
	ti := textinput.New()
	ti.Placeholder = "Tag"
	ti.CharLimit = 256
	ti.Prompt = "> "
	return &Model{items: items, input: ti}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		return m, nil
	case inputClosedMsg:
		m.closed = true
		return m, tea.Quit
	case tea.KeyPressMsg:
		if m.editing {
			return m.updateEditing(v)
		}
		switch v.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "space", " ", "x":
			if len(m.items) > 0 {
				m.items[m.cursor].selected = !m.items[m.cursor].selected
			}
		case "m", "e":
			if len(m.items) > 0 {
				m.editing = true
				m.input.SetValue(m.items[m.cursor].tag)
				m.input.CursorEnd()
				return m, m.input.Focus()
			}
		case "a":
			all := true
			for _, it := range m.items {
				all = all && it.selected
			}
			for i := range m.items {
				m.items[i].selected = !all
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.finishEditing()
		return m, nil
	case "esc":
		m.editing = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}
	model, cmd := m.input.Update(msg)
	m.input = model
	return m, cmd
}

// finishEditing replaces the tag with the edited text. A modified tag is
// selected; a blank edit keeps the old tag as it was.
func (m *Model) finishEditing() {
	m.editing = false
	m.input.Blur()
	text := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if text == "" {
		return
	}
	m.items[m.cursor].tag = text
	m.items[m.cursor].selected = true
}

// Selected returns the selected tags in list order.
func (m *Model) Selected() []string {
	out := make([]string, 0, len(m.items))
	for _, it := range m.items {
		if it.selected {
			out = append(out, it.tag)
		}
	}
	return out
}

// Cancelled reports whether the picker was dismissed.
func (m *Model) Cancelled() bool { return m.cancelled }

// Done reports whether the selection was accepted.
func (m *Model) Done() bool { return m.done }

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

func (m *Model) View() string {
	lines := []string{headerStyle.Render("Select tags to add (space to toggle, m to modify):")}
	if len(m.items) == 0 {
		lines = append(lines, helpStyle.Render("  no recent tags"))
	}
	for i, it := range m.items {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("→ ")
		}
		box := "[ ]"
		label := it.tag
		if it.selected {
			box = "[x]"
			label = selectedStyle.Render(label)
		}
		if m.editing && i == m.cursor {
			label = m.input.View()
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", pointer, box, label))
	}
	help := "enter accept · esc cancel · a all · j/k move"
	if m.editing {
		help = "enter ok · esc discard edit"
	}
	lines = append(lines, "", helpStyle.Render(help))
	body := strings.Join(lines, "\n")
	if m.width > 0 {
		body = lipgloss.NewStyle().MaxWidth(m.width).Render(body)
	}
	return body + "\n"
}

// Run shows the picker on in/out and returns the selected tags. A nil in
// opens the controlling terminal, so the picker still works after stdin
// carried the note text.
func Run(ctx context.Context, tags []string, in io.Reader, out io.Writer) ([]string, error) {
	m := New(tags)
	var p *tea.Program
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out)}
	switch f, ok := in.(*os.File); {
	case in == nil:
		opts = append(opts, tea.WithInputTTY())
	case ok && isatty.IsTerminal(f.Fd()):
		opts = append(opts, tea.WithInput(in))
	default:
		opts = append(opts, tea.WithInput(&eofReader{r: in, eof: func() {
			go p.Send(inputClosedMsg{})
		}}))
	}
	p = tea.NewProgram(m, opts...)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}
	fm, ok := final.(*Model)
	switch {
	case ok && fm.closed:
		return nil, ErrNoInput
	case !ok || fm.cancelled || !fm.done:
		return nil, ErrCancelled
	}
	return fm.Selected(), nil
}

// eofReader calls eof once when r is exhausted.
type eofReader struct {
	r    io.Reader
	once sync.Once
	eof  func()
}

func (e *eofReader) Read(b []byte) (int, error) {
	n, err := e.r.Read(b)
	if errors.Is(err, io.EOF) {
		e.once.Do(e.eof)
	}
	return n, err
}
