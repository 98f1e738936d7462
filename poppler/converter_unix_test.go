//go:build !windows

package poppler_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/forgeads/forgeads"
	"github.com/forgeads/forgeads/poppler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTool writes an executable shell script standing in for pdftotext.
// The script receives "-layout <input> <output>".
func fakeTool(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pdftotext")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary files should be removed")
}

func TestConverter_ConvertPDF(t *testing.T) {
	t.Parallel()

	t.Run("returns trimmed tool output", func(t *testing.T) {
		t.Parallel()

		tool := fakeTool(t, `[ "$1" = "-layout" ] || exit 2
cat "$2" > /dev/null || exit 3
printf '\n  Curso de Marketing\nAprenda hoje  \n\n' > "$3"`)
		work := t.TempDir()
		c := poppler.NewConverter(poppler.WithPath(tool), poppler.WithTempDir(work))

		text, err := c.ConvertPDF(context.Background(), []byte("%PDF-1.4"))
		require.NoError(t, err)

		assert.Equal(t, "Curso de Marketing\nAprenda hoje", text)
		assertEmptyDir(t, work)
	})

	t.Run("passes the document to the tool", func(t *testing.T) {
		t.Parallel()

		tool := fakeTool(t, `cp "$2" "$3"`)
		c := poppler.NewConverter(poppler.WithPath(tool), poppler.WithTempDir(t.TempDir()))

		text, err := c.ConvertPDF(context.Background(), []byte("conteúdo do pdf"))
		require.NoError(t, err)

		assert.Equal(t, "conteúdo do pdf", text)
	})

	t.Run("removes temporary files when the tool fails", func(t *testing.T) {
		t.Parallel()

		tool := fakeTool(t, `echo "Syntax Error: Couldn't find trailer dictionary" >&2
exit 1`)
		work := t.TempDir()
		c := poppler.NewConverter(poppler.WithPath(tool), poppler.WithTempDir(work))

		_, err := c.ConvertPDF(context.Background(), []byte("not a pdf"))

		require.Error(t, err)
		assert.Equal(t, forgeads.EUPSTREAM, forgeads.ErrorCode(err))
		assert.Contains(t, forgeads.ErrorMessage(err), "trailer dictionary")
		assertEmptyDir(t, work)
	})

	t.Run("removes temporary files when the tool times out", func(t *testing.T) {
		t.Parallel()

		tool := fakeTool(t, `exec sleep 5`)
		work := t.TempDir()
		c := poppler.NewConverter(
			poppler.WithPath(tool),
			poppler.WithTempDir(work),
			poppler.WithTimeout(50*time.Millisecond),
		)

		_, err := c.ConvertPDF(context.Background(), []byte("%PDF-1.4"))

		require.Error(t, err)
		assert.Equal(t, forgeads.EUPSTREAM, forgeads.ErrorCode(err))
		assertEmptyDir(t, work)
	})

	t.Run("returns caller cancellation unchanged", func(t *testing.T) {
		t.Parallel()

		tool := fakeTool(t, `exec sleep 5`)
		work := t.TempDir()
		c := poppler.NewConverter(
			poppler.WithPath(tool),
			poppler.WithTempDir(work),
			poppler.WithTimeout(time.Minute),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := c.ConvertPDF(ctx, []byte("%PDF-1.4"))

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.NotContains(t, err.Error(), "timed out after")
		assertEmptyDir(t, work)
	})

	t.Run("fails when the tool writes no output", func(t *testing.T) {
		t.Parallel()

		tool := fakeTool(t, `exit 0`)
		work := t.TempDir()
		c := poppler.NewConverter(poppler.WithPath(tool), poppler.WithTempDir(work))

		_, err := c.ConvertPDF(context.Background(), []byte("%PDF-1.4"))

		assert.Equal(t, forgeads.EUPSTREAM, forgeads.ErrorCode(err))
		assertEmptyDir(t, work)
	})

	t.Run("fails when the executable is missing", func(t *testing.T) {
		t.Parallel()

		c := poppler.NewConverter(poppler.WithPath(filepath.Join(t.TempDir(), "missing")))

		_, err := c.ConvertPDF(context.Background(), []byte("%PDF-1.4"))

		assert.Equal(t, forgeads.EUPSTREAM, forgeads.ErrorCode(err))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := poppler.NewConverter().ConvertPDF(context.Background(), nil)

		assert.Equal(t, forgeads.EINVALID, forgeads.ErrorCode(err))
	})
}
