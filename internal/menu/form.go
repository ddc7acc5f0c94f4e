package menu

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/atomicstack/tmux-stream-catalog/internal/catalog"
	"github.com/atomicstack/tmux-stream-catalog/internal/logging/events"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	channelFieldName = iota
	channelFieldURL
)

// ChannelForm collects a name and stream url for a new channel. Validation
// belongs to the catalog; the form only displays the error it is handed.
type ChannelForm struct {
	inputs []textinput.Model
	focus  int
	ctx    Context
	err    string
}

func NewChannelForm(prompt ChannelPrompt) *ChannelForm {
	name := textinput.New()
	name.Placeholder = "channel name"
	name.Prompt = "name › "
	name.CharLimit = 128
	name.Focus()

	url := textinput.New()
	url.Placeholder = "https://example.com/stream.m3u8"
	url.Prompt = "url  › "
	url.CharLimit = 2048

	return &ChannelForm{
		inputs: []textinput.Model{name, url},
		focus:  channelFieldName,
		ctx:    prompt.Context,
	}
}

func (f *ChannelForm) Context() Context { return f.ctx }
func (f *ChannelForm) Name() string     { return f.inputs[channelFieldName].Value() }
func (f *ChannelForm) URL() string      { return f.inputs[channelFieldURL].Value() }
func (f *ChannelForm) Error() string    { return f.err }
func (f *ChannelForm) Title() string    { return "Add Channel" }
func (f *ChannelForm) Help() string {
	return "Tab switches field. Enter to add. Esc to cancel."
}

// InputView renders both fields, one per line.
func (f *ChannelForm) InputView() string {
	return f.inputs[channelFieldName].View() + "\n" + f.inputs[channelFieldURL].View()
}

// PendingLabel is shown while the add is applied.
func (f *ChannelForm) PendingLabel() string {
	name := strings.TrimSpace(f.Name())
	if name == "" {
		return "add"
	}
	return name
}

// SetError displays a rejected submission without closing the form.
func (f *ChannelForm) SetError(err error) {
	if err == nil {
		f.err = ""
		return
	}
	msg := strings.TrimSuffix(err.Error(), ": "+catalog.ErrInvalidInput.Error())
	if errors.Is(err, catalog.ErrInvalidInput) {
		if strings.TrimSpace(f.Name()) == "" {
			f.setFocus(channelFieldName)
		} else {
			f.setFocus(channelFieldURL)
		}
	}
	f.err = upperFirst(msg)
}

// Update handles a message. It reports done when the user submits and
// cancel when the form should close without changes.
func (f *ChannelForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+u":
			input := &f.inputs[f.focus]
			if input.Value() != "" {
				input.SetValue("")
				input.CursorStart()
			}
			return nil, false, false
		case "tab", "down":
			return f.setFocus((f.focus + 1) % len(f.inputs)), false, false
		case "shift+tab", "up":
			return f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs)), false, false
		}
		switch m.Type {
		case tea.KeyEsc:
			events.Channel.CancelAdd(events.ChannelReasonEscape)
			return nil, false, true
		case tea.KeyEnter:
			events.Channel.SubmitAdd(f.Name(), f.URL())
			return nil, true, false
		}
	}

	updated, cmd := f.inputs[f.focus].Update(msg)
	f.inputs[f.focus] = updated
	return cmd, false, false
}

// SetCursorMode applies mode to both input cursors.
func (f *ChannelForm) SetCursorMode(mode cursor.Mode) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(f.inputs))
	for i := range f.inputs {
		cmds = append(cmds, f.inputs[i].Cursor.SetMode(mode))
	}
	return tea.Batch(cmds...)
}

func (f *ChannelForm) setFocus(field int) tea.Cmd {
	if field == f.focus {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = field
	return f.inputs[f.focus].Focus()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
