package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so commands can be executed
// repeatedly within one test binary.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

// writePattern writes a plain PGM where '#' is black and '.' is white.
func writePattern(t *testing.T, rows ...string) string {
	t.Helper()
	var sb strings.Builder
	fmt.Fprintf(&sb, "P2\n%d %d\n255\n", len(rows[0]), len(rows))
	for _, row := range rows {
		for i, ch := range row {
			if i > 0 {
				sb.WriteByte(' ')
			}
			if ch == '#' {
				sb.WriteString("0")
			} else {
				sb.WriteString("255")
			}
		}
		sb.WriteByte('\n')
	}
	return writeFile(t, "image.pgm", sb.String())
}

// writeGray writes a single-row plain PGM with the given gray levels.
func writeGray(t *testing.T, values ...int) string {
	t.Helper()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	content := fmt.Sprintf("P2\n%d 1\n255\n%s\n", len(values), strings.Join(parts, " "))
	return writeFile(t, "gray.pgm", content)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
