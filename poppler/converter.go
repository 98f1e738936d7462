// Package poppler converts PDF documents to text with the pdftotext
// executable from poppler-utils.
package poppler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/forgeads/forgeads"
)

// Converter defaults.
const (
	DefaultPath    = "pdftotext"
	DefaultTimeout = 30 * time.Second
)

// Ensure Converter implements forgeads.PDFConverter at compile time.
var _ forgeads.PDFConverter = (*Converter)(nil)

// Converter runs pdftotext once per document. Input and output files live
// in a private temporary directory that is removed on every exit path.
type Converter struct {
	path    string
	tempDir string
	timeout time.Duration
}

// Option configures a Converter.
type Option func(*Converter)

// WithPath sets the pdftotext executable.
func WithPath(path string) Option {
	return func(c *Converter) {
		c.path = path
	}
}

// WithTempDir sets the parent directory of the per-document work
// directories. Defaults to os.TempDir().
func WithTempDir(dir string) Option {
	return func(c *Converter) {
		c.tempDir = dir
	}
}

// WithTimeout bounds a single conversion.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.timeout = d
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		path:    DefaultPath,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertPDF writes pdf to a temporary file, runs pdftotext with layout
// preservation and returns the trimmed text.
func (c *Converter) ConvertPDF(ctx context.Context, pdf []byte) (string, error) {
	if len(pdf) == 0 {
		return "", forgeads.Errorf(forgeads.EINVALID, "PDF vazio.")
	}

	dir, err := os.MkdirTemp(c.tempDir, "forgeads-pdf-")
	if err != nil {
		return "", forgeads.Errorf(forgeads.EINTERNAL, "creating work directory: %v", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "input.pdf")
	out := filepath.Join(dir, "output.txt")
	if err := os.WriteFile(in, pdf, 0o600); err != nil {
		return "", forgeads.Errorf(forgeads.EINTERNAL, "writing pdf: %v", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, c.path, "-layout", in, out)
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second
	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound):
			return "", forgeads.Errorf(forgeads.EUPSTREAM, "pdftotext not available: %v", err)
		case ctx.Err() != nil:
			return "", ctx.Err()
		case runCtx.Err() != nil:
			return "", forgeads.Errorf(forgeads.EUPSTREAM, "pdftotext timed out after %s", c.timeout)
		default:
			return "", forgeads.Errorf(forgeads.EUPSTREAM, "pdftotext failed: %v: %s", err, strings.TrimSpace(stderr.String()))
		}
	}

	text, err := os.ReadFile(out)
	if err != nil {
		return "", forgeads.Errorf(forgeads.EUPSTREAM, "reading pdftotext output: %v", err)
	}
	return strings.TrimSpace(string(text)), nil
}
