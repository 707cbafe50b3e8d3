// Package teatest runs bubbletea models in tests without a terminal.
//
// A Driver stands in for tea.Program: each message goes straight to the
// model's Update, and every Cmd it returns is executed on the spot so that
// its message reaches the model before the next key is pressed. Tests then
// read the rendered frame with View or PlainView.
//
// A Cmd gets a bounded time to produce its message. Timer-based Cmds such
// as cursor blinks never finish within it and are dropped. Cmds that talk
// to a backend need a larger bound; see WithCmdTimeout.
package teatest

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many follow-up Cmds one message may trigger.
const MaxDrainDepth = 100

// DefaultCmdTimeout is long enough for Cmds that compute a message in
// memory and short enough to drop timers.
const DefaultCmdTimeout = 10 * time.Millisecond

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// Driver feeds messages to Model and tracks whether it asked to quit.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting reports that the model returned tea.Quit.
	Quitting bool

	timeout time.Duration
}

// Option adjusts a Driver before the first message is sent.
type Option func(*Driver)

// New wraps model. Options run in order; DrainInit runs the model's Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, timeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a window size of w columns by h rows.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout sets how long each Cmd may run before it is dropped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.timeout = timeout }
}

// DrainInit runs the model's Init Cmd.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send delivers msg and runs whatever it triggers. Nothing is delivered
// once the model has quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd, 0)
}

func (d *Driver) press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// PressKey types a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type presses each rune of s in turn.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) PressEnter() { d.T.Helper(); d.press(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.press(tea.KeyEsc) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.press(tea.KeyCtrlC) }
func (d *Driver) PressUp()    { d.T.Helper(); d.press(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.press(tea.KeyDown) }

// View is the current frame.
func (d *Driver) View() string {
	return d.Model.View()
}

// PlainView is the current frame without colour or style escapes.
func (d *Driver) PlainView() string {
	return ansiPattern.ReplaceAllString(d.Model.View(), "")
}

// run executes cmd and delivers its message, following batches and the
// Cmds each delivery returns.
func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: stopped after %d chained commands", MaxDrainDepth)
		return
	}

	msg := await(cmd, d.timeout)
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.run(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
		return
	}
	if isBlink(msg) {
		return
	}

	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.run(next, depth+1)
}

// await returns cmd's message, or nil when cmd is still running after
// timeout.
func await(cmd tea.Cmd, timeout time.Duration) tea.Msg {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case msg := <-out:
		return msg
	case <-timer.C:
		return nil
	}
}

// isBlink matches the bubbles cursor blink messages. Delivering them starts
// another blink timer, so they are dropped.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
