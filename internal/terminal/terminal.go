// Package terminal provides the line-oriented terminal the screens talk to.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Terminal is what a screen needs from the user's terminal.
type Terminal interface {
	io.Writer
	// Clear wipes the screen and homes the cursor.
	Clear()
	// ReadLine returns one line without its trailing newline.
	ReadLine() (string, error)
	// ReadKey returns a single keypress, e.g. "esc", "enter", "a".
	ReadKey() (string, error)
}

// Console is the process terminal: buffered line reads from in, raw keypresses
// through a one-shot bubbletea program.
type Console struct {
	raw io.Reader
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{raw: in, in: bufio.NewReader(in), out: out}
}

func (c *Console) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c *Console) Clear() { fmt.Fprint(c.out, "\033[H\033[2J") }

func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type keyModel struct {
	key string
}

func (m keyModel) Init() tea.Cmd { return nil }

func (m keyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		m.key = k.String()
		return m, tea.Quit
	}
	return m, nil
}

func (m keyModel) View() string { return "" }

func (c *Console) ReadKey() (string, error) {
	p := tea.NewProgram(keyModel{}, tea.WithInput(c.raw), tea.WithOutput(c.out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("read key: %w", err)
	}
	m, _ := final.(keyModel)
	if m.key == "" {
		return "", io.EOF
	}
	return m.key, nil
}
