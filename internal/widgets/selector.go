package widgets

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jask/petrus/internal/terminal"
)

// ErrNoItems is returned by Run when there is nothing to page through.
var ErrNoItems = errors.New("no items to display")

type SelectorAction int

const (
	// SelectorStay means render the current page again, with Message if set.
	SelectorStay SelectorAction = iota
	SelectorSelected
	SelectorQuit
)

type SelectorResult struct {
	Action  SelectorAction
	Index   int // 1-based, set when Selected
	Message string
}

const (
	msgLastPage   = "Already on the last page."
	msgFirstPage  = "Already on the first page."
	msgNoQuit     = "Quitting is not available here, select a row."
	msgUnknownCmd = "Unknown input %q."
	msgRowRange   = "Enter a row number between %d and %d."
)

// Selector pages through Items. In selectable mode the user picks a row of
// the current page; otherwise q quits.
type Selector[T any] struct {
	Items      []T
	PageSize   int
	Render     func(w io.Writer, page []T, firstRow int) // firstRow is 1-based
	Header     func(w io.Writer)
	Selectable bool

	page int
}

// TotalPages is ceil(n/size).
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

func (s *Selector[T]) size() int {
	if s.PageSize <= 0 {
		return 10
	}
	return s.PageSize
}

// Page is the 0-based current page.
func (s *Selector[T]) Page() int { return s.page }

// Rows returns the 1-based first and last row of the current page.
func (s *Selector[T]) Rows() (first, last int) {
	lo := s.page * s.size()
	hi := min(lo+s.size(), len(s.Items))
	return lo + 1, hi
}

func (s *Selector[T]) current() []T {
	first, last := s.Rows()
	return s.Items[first-1 : last]
}

// Handle applies one trimmed line of input.
func (s *Selector[T]) Handle(input string) SelectorResult {
	in := strings.ToLower(strings.TrimSpace(input))
	total := TotalPages(len(s.Items), s.size())
	switch {
	case in == "":
		if s.page+1 >= total {
			return SelectorResult{Message: msgLastPage}
		}
		s.page++
		return SelectorResult{}
	case in == "p":
		if s.page == 0 {
			return SelectorResult{Message: msgFirstPage}
		}
		s.page--
		return SelectorResult{}
	case in == "q":
		if s.Selectable {
			return SelectorResult{Message: msgNoQuit}
		}
		return SelectorResult{Action: SelectorQuit}
	case !s.Selectable:
		return SelectorResult{Message: fmt.Sprintf(msgUnknownCmd, input)}
	}
	first, last := s.Rows()
	n, err := strconv.Atoi(in)
	if err != nil || n < first || n > last {
		return SelectorResult{Message: fmt.Sprintf(msgRowRange, first, last)}
	}
	return SelectorResult{Action: SelectorSelected, Index: n}
}

func (s *Selector[T]) draw(w io.Writer, message string) {
	if s.Header != nil {
		s.Header(w)
	}
	first, _ := s.Rows()
	if s.Render != nil {
		s.Render(w, s.current(), first)
	}
	if message != "" {
		fmt.Fprintln(w, terminal.Error(message))
	}
	hints := []string{
		fmt.Sprintf("Page %d/%d", s.page+1, TotalPages(len(s.Items), s.size())),
		"enter: next page",
		"p: previous page",
	}
	if s.Selectable {
		hints = append(hints, "or type a row number to select")
	} else {
		hints = append(hints, "q: quit")
	}
	fmt.Fprintln(w, terminal.Muted(strings.Join(hints, " · ")))
}

// Run loops until a row is selected or, when not selectable, q is entered.
// It returns the 1-based selected index, or 0 on quit.
func (s *Selector[T]) Run(term terminal.Terminal) (int, error) {
	if len(s.Items) == 0 {
		return 0, ErrNoItems
	}
	message := ""
	for {
		term.Clear()
		s.draw(term, message)
		line, err := term.ReadLine()
		if err != nil {
			return 0, err
		}
		res := s.Handle(line)
		switch res.Action {
		case SelectorSelected:
			return res.Index, nil
		case SelectorQuit:
			return 0, nil
		}
		message = res.Message
	}
}
