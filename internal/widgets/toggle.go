package widgets

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jask/petrus/internal/terminal"
)

// ToggleSet is a multi-select over labels. Selecting an index twice
// deselects it; the committed result keeps the labels' original order.
type ToggleSet struct {
	Header func(w io.Writer)

	labels   []string
	selected map[int]bool
}

func NewToggleSet(labels []string) *ToggleSet {
	return &ToggleSet{labels: append([]string(nil), labels...), selected: map[int]bool{}}
}

// Toggle flips the 0-based index i. It reports false when i is out of range.
func (t *ToggleSet) Toggle(i int) bool {
	if i < 0 || i >= len(t.labels) {
		return false
	}
	if t.selected[i] {
		delete(t.selected, i)
	} else {
		t.selected[i] = true
	}
	return true
}

func (t *ToggleSet) IsSelected(i int) bool { return t.selected[i] }

// SelectedIndices returns the selected 0-based indices in ascending order.
func (t *ToggleSet) SelectedIndices() []int {
	out := []int{}
	for i := range t.labels {
		if t.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

// Selected returns the selected labels in original order.
func (t *ToggleSet) Selected() []string {
	out := []string{}
	for _, i := range t.SelectedIndices() {
		out = append(out, t.labels[i])
	}
	return out
}

type ToggleResult struct {
	Committed bool
	Message   string
}

// Handle applies one line: "ok" commits, a 1-based number toggles.
func (t *ToggleSet) Handle(input string) ToggleResult {
	in := strings.TrimSpace(input)
	if strings.EqualFold(in, "ok") {
		return ToggleResult{Committed: true}
	}
	n, err := strconv.Atoi(in)
	if err != nil || !t.Toggle(n-1) {
		return ToggleResult{Message: fmt.Sprintf("Invalid input %q: type a number between 1 and %d, or ok.", in, len(t.labels))}
	}
	return ToggleResult{}
}

// Render draws every label with its marker and restates the selection.
func (t *ToggleSet) Render(w io.Writer) {
	for i, l := range t.labels {
		mark := "[ ]"
		if t.selected[i] {
			mark = terminal.Success("[x]")
		}
		fmt.Fprintf(w, "%s %d. %s\n", mark, i+1, l)
	}
	sel := t.Selected()
	summary := "none"
	if len(sel) > 0 {
		summary = strings.Join(sel, ", ")
	}
	fmt.Fprintf(w, "\nSelected: %s\n", terminal.Accent(summary))
	fmt.Fprintln(w, terminal.Muted("Type a number to toggle it, ok to confirm."))
}

// Run loops until the user commits with ok.
func (t *ToggleSet) Run(term terminal.Terminal) ([]string, error) {
	message := ""
	for {
		term.Clear()
		if t.Header != nil {
			t.Header(term)
		}
		t.Render(term)
		if message != "" {
			fmt.Fprintln(term, terminal.Error(message))
		}
		line, err := term.ReadLine()
		if err != nil {
			return nil, err
		}
		res := t.Handle(line)
		if res.Committed {
			return t.Selected(), nil
		}
		message = res.Message
	}
}
