package widgets

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/petrus/internal/terminal"
)

// ParseNumber checks input against [lo, hi]. The message explains a rejection.
func ParseNumber(input string, lo, hi int) (int, string) {
	in := strings.TrimSpace(input)
	if in == "" {
		return 0, "Please enter a number."
	}
	n, err := strconv.Atoi(in)
	if err != nil {
		return 0, fmt.Sprintf("%q is not a number.", in)
	}
	if n < lo || n > hi {
		return 0, fmt.Sprintf("Enter a number between %d and %d.", lo, hi)
	}
	return n, ""
}

// ReadNumber reads lines until one is a number in [lo, hi].
func ReadNumber(term terminal.Terminal, lo, hi int) (int, error) {
	for {
		line, err := term.ReadLine()
		if err != nil {
			return 0, err
		}
		n, msg := ParseNumber(line, lo, hi)
		if msg == "" {
			return n, nil
		}
		fmt.Fprintln(term, terminal.Error(msg))
	}
}

// Pause waits for enter.
func Pause(term terminal.Terminal) error {
	fmt.Fprintln(term, terminal.Muted("\nPress enter to continue"))
	_, err := term.ReadLine()
	return err
}

// Suggest returns the token closest to input within an edit distance of 2.
func Suggest(input string, tokens []string) (string, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", false
	}
	sorted := append([]string(nil), tokens...)
	sort.Strings(sorted)
	best, bestDist := "", 3
	for _, tok := range sorted {
		if d := levenshtein.ComputeDistance(in, tok); d < bestDist {
			best, bestDist = tok, d
		}
	}
	return best, best != ""
}
