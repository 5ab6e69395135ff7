package widgets

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/petrus/internal/terminal"
)

func TestToggleIsIdempotentPerIndex(t *testing.T) {
	ts := NewToggleSet([]string{"a", "b", "c", "d"})
	require.True(t, ts.Toggle(2))
	require.True(t, ts.IsSelected(2))
	require.True(t, ts.Toggle(2))
	require.False(t, ts.IsSelected(2))
	require.Empty(t, ts.SelectedIndices())

	require.False(t, ts.Toggle(4))
	require.False(t, ts.Toggle(-1))
}

func TestToggleCommitKeepsOriginalOrder(t *testing.T) {
	ts := NewToggleSet([]string{"name", "degree", "gpa", "year"})
	require.Empty(t, ts.Handle("3").Message)
	require.Empty(t, ts.Handle("1").Message)
	res := ts.Handle(" ok ")
	require.True(t, res.Committed)
	require.Equal(t, []int{0, 2}, ts.SelectedIndices())
	require.Equal(t, []string{"name", "gpa"}, ts.Selected())
}

func TestToggleRejectsInvalidInput(t *testing.T) {
	ts := NewToggleSet([]string{"a", "b"})
	for _, in := range []string{"", "0", "3", "yes", "1,2"} {
		res := ts.Handle(in)
		require.False(t, res.Committed, in)
		require.Contains(t, res.Message, "between 1 and 2", in)
	}
	require.Empty(t, ts.Selected())
}

func TestToggleRun(t *testing.T) {
	term := terminal.NewScripted("2", "bogus", "4", "2", "3", "OK")
	ts := NewToggleSet([]string{"a", "b", "c", "d"})
	got, err := ts.Run(term)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "d"}, got)
	require.Contains(t, term.Output(), "Selected: none")
	require.Contains(t, term.Output(), "Selected: b, d")
	require.Contains(t, term.Output(), `Invalid input "bogus"`)
	require.Equal(t, 6, term.Clears())

	_, err = NewToggleSet([]string{"a"}).Run(terminal.NewScripted("1"))
	require.ErrorIs(t, err, io.EOF)
}

func TestToggleEmptyLabelsCommitsNothing(t *testing.T) {
	got, err := NewToggleSet(nil).Run(terminal.NewScripted("ok"))
	require.NoError(t, err)
	require.Empty(t, got)
}
