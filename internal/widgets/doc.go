// Package widgets contains the interactive building blocks screens compose:
// the paginated selector, the disclosure toggle set, confirmation prompts and
// numeric input.
//
// Every widget splits into a pure Handle step (input in, result out, no I/O)
// and a Run loop that renders to a terminal and feeds it lines. Malformed
// input never escapes a widget: it is reported inline and the prompt repeats.
package widgets
