package main

import (
	"bytes"
	"github.com/go-andiamo/kkcard"
	"github.com/go-andiamo/kkcard/_test_data/cards"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

// runCLI executes the root command with an isolated (empty) config home
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

var testParameter = map[string]any{
	"lastname":   "Tanaka",
	"firstname":  "Yuki",
	"nickname":   "Yukki",
	"sex":        1,
	"birthMonth": 4,
	"birthDay":   12,
}

func testCard(extra ...cards.Block) []byte {
	blocks := append([]cards.Block{
		{Name: kkcard.BlockParameter, Version: "0.0.5", Data: testParameter},
	}, extra...)
	return cards.Card(cards.Options{Blocks: blocks})
}
