// Package ui implements the interactive lookup surface: a Bubble Tea
// program with a debounced search bar, a section list, clipboard copy
// actions, and the auto-pivot timers of the direction controller.
//
// Everything runs on the single Update goroutine. The debounce and
// pivot delays are tea.Tick commands tagged with a revision or session
// generation; a tick whose tag was superseded before it fired is
// ignored, which is the cancel-and-replace discipline of the timers.
package ui

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kunpehx/parrot/copymode"
	"github.com/kunpehx/parrot/i18n"
	"github.com/kunpehx/parrot/language"
	"github.com/kunpehx/parrot/prefs"
	"github.com/kunpehx/parrot/reformat"
	"github.com/kunpehx/parrot/session"
	"github.com/kunpehx/parrot/youdao"
)

// HelpURL documents the vendor error codes shown in the failure row.
const HelpURL = "https://github.com/Haojen/raycast-Parrot#error-code-information"

// statusTimeout clears transient status notices.
const statusTimeout = 4 * time.Second

// Messages processed by Update.
type (
	// debounceMsg fires after the input debounce delay; rev identifies
	// the keystroke revision it was scheduled for.
	debounceMsg struct{ rev int }

	// responseMsg carries a translation result (or transport error)
	// for the session generation the request was issued with.
	responseMsg struct {
		gen  int
		resp *youdao.Response
		err  error
	}

	// pivotMsg fires after the pivot delay to commit a target switch.
	pivotMsg struct {
		gen    int
		target language.Entry
	}

	// selectionMsg carries the selected text read at startup.
	selectionMsg struct{ text string }

	// statusClearMsg expires a transient status notice.
	statusClearMsg struct{ seq int }
)

// Model is the Bubble Tea model for one lookup session.
type Model struct {
	sess   *session.Session
	client *youdao.Client
	prefs  prefs.Preferences

	input    textinput.Model
	inputRev int // debounce revision, bumped on every keystroke

	cursor int // selected row in the flattened item list

	status    string
	statusSeq int

	confErr error // fatal configuration error: blocks everything

	width  int
	height int
}

// New builds the model. A preference validation error is not returned:
// it becomes the blocking conflict view, which must win over any other
// logic.
func New(p prefs.Preferences) Model {
	ti := textinput.New()
	ti.Placeholder = i18n.T("Type something to translate.")
	ti.Prompt = "> "
	ti.Focus()

	m := Model{
		prefs:  p,
		input:  ti,
		client: &youdao.Client{Credentials: youdao.Credentials{AppID: p.AppID, AppKey: p.AppKey}},
	}
	if err := p.Validate(); err != nil {
		m.confErr = err
		return m
	}
	m.sess = session.New(language.Lookup(p.Lang1), language.Lookup(p.Lang2))
	return m
}

func (m Model) Init() tea.Cmd {
	if m.confErr != nil {
		return nil
	}
	cmds := []tea.Cmd{textinput.Blink}
	if m.prefs.SelectionPaste {
		cmds = append(cmds, readSelection)
	}
	return tea.Batch(cmds...)
}

// readSelection fetches the environment's selected text (clipboard).
// Empty or unavailable selections yield no query, silently.
func readSelection() tea.Msg {
	text, err := clipboard.ReadAll()
	if err != nil {
		return selectionMsg{}
	}
	return selectionMsg{text: strings.TrimSpace(text)}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confErr != nil {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "ctrl+c", "esc", "q", "enter":
				return m, tea.Quit
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case selectionMsg:
		// Only when nothing has been typed yet.
		if msg.text == "" || m.input.Value() != "" {
			return m, nil
		}
		m.input.SetValue(msg.text)
		m.input.CursorEnd()
		cmd := m.issueQuery()
		return m, cmd

	case debounceMsg:
		if msg.rev != m.inputRev {
			return m, nil // superseded by a later keystroke
		}
		cmd := m.issueQuery()
		return m, cmd

	case responseMsg:
		return m.handleResponse(msg)

	case pivotMsg:
		gen, ok := m.sess.CompletePivot(msg.gen, msg.target)
		if !ok {
			return m, nil
		}
		return m, m.request(gen)

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m.copySelected()

	case "tab":
		return m.cycleTarget()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.inputRev++
	rev := m.inputRev
	debounce := tea.Tick(session.DebounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{rev: rev}
	})
	return m, tea.Batch(cmd, debounce)
}

// issueQuery feeds the current input to the session and requests a
// translation when there is something to look up.
func (m *Model) issueQuery() tea.Cmd {
	m.cursor = 0
	gen := m.sess.SetQuery(m.input.Value())
	if gen < 0 {
		return nil
	}
	return m.request(gen)
}

// request wraps one translation call as a command; the result message
// carries gen for the stale-response guard.
func (m *Model) request(gen int) tea.Cmd {
	client := m.client
	query := m.sess.Query
	target := m.sess.Target.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		resp, err := client.Translate(ctx, query, target)
		return responseMsg{gen: gen, resp: resp, err: err}
	}
}

func (m Model) handleResponse(msg responseMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.sess.HandleFailure(msg.gen) {
			return m.notify("Request failed: " + msg.err.Error())
		}
		return m, nil
	}

	d := m.sess.HandleResponse(msg.gen, msg.resp)
	switch d.Kind {
	case session.Pivot:
		gen := msg.gen
		target := d.NewTarget
		return m, tea.Tick(d.Delay, func(time.Time) tea.Msg {
			return pivotMsg{gen: gen, target: target}
		})

	case session.Commit:
		if m.sess.LastErrorCode == youdao.CodeWarning {
			// Success-with-warning: render, and surface the raw payload
			// for diagnostics in a non-blocking notice.
			raw, _ := json.Marshal(msg.resp)
			return m.notify("Warning " + youdao.CodeWarning + ": " + string(raw))
		}
	}
	return m, nil
}

// copySelected puts the selected row's text on the clipboard, passed
// through the query's casing transform.
func (m Model) copySelected() (tea.Model, tea.Cmd) {
	rows := m.rows()
	if m.cursor >= len(rows) {
		return m, nil
	}
	item := rows[m.cursor]
	text := item.Subtitle
	if text == "" {
		text = item.Title
	}
	if err := clipboard.WriteAll(copymode.Apply(text, m.sess.Mode)); err != nil {
		return m.notify("Clipboard error: " + err.Error())
	}
	return m.notify(i18n.T("Copied to clipboard"))
}

// cycleTarget pins the next catalog language as the translation target,
// superseding auto-pivot for the rest of the session.
func (m Model) cycleTarget() (tea.Model, tea.Cmd) {
	next := nextTarget(m.sess.Target)
	gen := m.sess.PinTarget(next)
	if gen < 0 {
		return m.notify("Target: " + next.Title)
	}
	model, cmd := m.notify("Target: " + next.Title)
	return model, tea.Batch(cmd, m.request(gen))
}

// nextTarget returns the catalog entry after current, skipping "auto"
// (a detection directive, not a translation target).
func nextTarget(current language.Entry) language.Entry {
	idx := -1
	for i, e := range language.Catalog {
		if e.ID == current.ID {
			idx = i
			break
		}
	}
	for step := 1; step <= len(language.Catalog); step++ {
		e := language.Catalog[(idx+step+len(language.Catalog))%len(language.Catalog)]
		if e.ID != "auto" {
			return e
		}
	}
	return current
}

func (m Model) notify(text string) (Model, tea.Cmd) {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// rows flattens the committed sections into the selectable item list.
func (m Model) rows() []reformat.Item {
	var out []reformat.Item
	for _, s := range m.sess.Sections {
		out = append(out, s.Items...)
	}
	return out
}
