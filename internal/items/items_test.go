package items

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/knapsack/internal/solver"
)

func TestParse(t *testing.T) {
	t.Parallel()

	input := "1 2 3\n\n2\t3   4\n 3 4 5 \n"
	got, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []solver.Item{
		{Index: 1, Cost: 2, Value: 3},
		{Index: 2, Cost: 3, Value: 4},
		{Index: 3, Cost: 4, Value: 5},
	}, got)
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	got, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestParseRejectsMalformedRecords(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		input string
		line  string
	}{
		"TooFewFields":  {input: "1 2 3\n4 5\n", line: "line 2"},
		"TooManyFields": {input: "1 2 3 4\n", line: "line 1"},
		"NotAnInteger":  {input: "1 2 3\n\n2 x 4\n", line: "line 3"},
		"NegativeCost":  {input: "1 -2 3\n", line: "line 1"},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(tc.input))
			require.ErrorIs(t, err, solver.ErrInvalidInput)
			require.Contains(t, err.Error(), tc.line)
		})
	}
}

func TestParseLongLine(t *testing.T) {
	t.Parallel()

	padded := "1 2 " + strings.Repeat("0", 100_000) + "3\n"
	got, err := Parse(strings.NewReader(padded))
	require.NoError(t, err)
	require.Equal(t, []solver.Item{{Index: 1, Cost: 2, Value: 3}}, got)

	oversized := "1 2 3\n" + strings.Repeat("9", maxLineBytes+1) + "\n"
	_, err = Parse(strings.NewReader(oversized))
	require.ErrorIs(t, err, solver.ErrInvalidInput)
	require.Contains(t, err.Error(), "line 2")
}

func TestParseYAMLEmpty(t *testing.T) {
	t.Parallel()

	got, err := ParseYAML(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	input := `
- index: 1
  cost: 10
  value: 60
- {index: 2, cost: 20, value: 100}
`
	got, err := ParseYAML(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []solver.Item{
		{Index: 1, Cost: 10, Value: 60},
		{Index: 2, Cost: 20, Value: 100},
	}, got)
}

func TestParseYAMLRejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"- {index: 1, cost: 2}\n",
		"- {index: 1, cost: -2, value: 3}\n",
		"- {index: 1, cost: two, value: 3}\n",
		"index: 1\n",
	} {
		_, err := ParseYAML(strings.NewReader(input))
		require.ErrorIs(t, err, solver.ErrInvalidInput, "input %q", input)
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	textPath := filepath.Join(dir, "items.txt")
	yamlPath := filepath.Join(dir, "items.yml")
	require.NoError(t, os.WriteFile(textPath, []byte("1 10 60\n2 20 100\n"), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte("- {index: 1, cost: 10, value: 60}\n- {index: 2, cost: 20, value: 100}\n"), 0o600))

	fromText, err := Load(textPath)
	require.NoError(t, err)
	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)
	require.Equal(t, fromText, fromYAML)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
