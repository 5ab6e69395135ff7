package terminal

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ err error }

type spinModel struct {
	spinner spinner.Model
	label   string
	done    bool
	err     error
}

func (m spinModel) Init() tea.Cmd { return m.spinner.Tick }

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + Muted(m.label) + "\n"
}

// Spin animates label on out until fn returns. fn runs on its own goroutine;
// the animation never touches caller state.
func Spin(out io.Writer, label string, fn func() error) error {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle

	p := tea.NewProgram(spinModel{spinner: s, label: label}, tea.WithInput(nil), tea.WithOutput(out))
	result := make(chan error, 1)
	go func() {
		err := fn()
		result <- err
		p.Send(doneMsg{err: err})
	}()
	// A broken animation does not fail the work.
	_, _ = p.Run()
	return <-result
}
