package teatest

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg string

// counter counts key presses; "e" issues a Cmd whose message is recorded.
type counter struct {
	keys   int
	echoes []string
}

func (c *counter) Init() tea.Cmd {
	return func() tea.Msg { return echoMsg("init") }
}

func (c *counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case echoMsg:
		c.echoes = append(c.echoes, string(msg))
	case tea.KeyMsg:
		c.keys++
		switch msg.String() {
		case "e":
			return c, tea.Batch(
				func() tea.Msg { return echoMsg("a") },
				func() tea.Msg { return echoMsg("b") },
			)
		case "q":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c *counter) View() string {
	return fmt.Sprintf("\x1b[1mkeys=%d\x1b[0m", c.keys)
}

func TestDriver_DrainsInitAndBatches(t *testing.T) {
	m := &counter{}
	d := New(t, m)
	d.DrainInit()
	d.PressKey('e')

	assert.Equal(t, []string{"init", "a", "b"}, m.echoes)
	d.AssertViewContains("keys=1")
}

func TestDriver_QuitStopsInput(t *testing.T) {
	m := &counter{}
	d := New(t, m)
	d.Type("xq")
	assert.True(t, d.Quitting)

	d.PressKey('z')
	assert.Equal(t, 2, m.keys)
	assert.Equal(t, "keys=2", d.View())
}
