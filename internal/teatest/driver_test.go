package teatest

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type noteMsg string

// echoModel records the messages it receives as lines of its view.
type echoModel struct {
	lines []string
}

func (m echoModel) Init() tea.Cmd {
	return func() tea.Msg { return noteMsg("init") }
}

func (m echoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case noteMsg:
		m.lines = append(m.lines, string(msg))
	case tea.KeyMsg:
		switch msg.String() {
		case "b":
			return m, tea.Batch(
				func() tea.Msg { return noteMsg("one") },
				func() tea.Msg { return noteMsg("two") },
			)
		case "s":
			return m, func() tea.Msg {
				time.Sleep(time.Second)
				return noteMsg("slow")
			}
		case "q":
			return m, tea.Quit
		}
		m.lines = append(m.lines, "key "+msg.String())
	}
	return m, nil
}

func (m echoModel) View() string {
	return "\x1b[1m" + strings.Join(m.lines, "\n") + "\x1b[0m"
}

func TestDriver_RunsInitAndBatches(t *testing.T) {
	d := New(t, echoModel{})
	d.DrainInit()
	d.PressKey('b')
	d.Type("xy")

	assert.Equal(t, "init\none\ntwo\nkey x\nkey y", d.PlainView())
}

func TestDriver_DropsSlowCommands(t *testing.T) {
	d := New(t, echoModel{})
	d.PressKey('s')

	assert.NotContains(t, d.PlainView(), "slow")
}

func TestDriver_StopsAfterQuit(t *testing.T) {
	d := New(t, echoModel{})
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d.PressKey('x')
	assert.NotContains(t, d.PlainView(), "key x")
}
