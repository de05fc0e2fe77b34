// Package extract converts uploaded documents to plain text using the
// poppler and tesseract command line tools.
package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// External tool names; must be on PATH.
const (
	pdfToTextBin = "pdftotext"
	tesseractBin = "tesseract"
)

// Extractor extracts text from PDFs and images by shelling out through
// a CommandRunner. The runner indirection keeps it testable without the
// binaries installed.
type Extractor struct {
	runner driven.CommandRunner
}

// New creates an extractor using the real command runner.
func New() *Extractor {
	return &Extractor{runner: ExecRunner{}}
}

// NewWithRunner creates an extractor with a custom runner.
func NewWithRunner(runner driven.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// ExtractPDF extracts the text layer of a PDF with pdftotext.
func (e *Extractor) ExtractPDF(ctx context.Context, data []byte) (string, error) {
	path, cleanup, err := writeTemp(data, "*.pdf")
	if err != nil {
		return "", err
	}
	defer cleanup()

	// "-" sends the extracted text to stdout.
	out, err := e.runner.Run(ctx, pdfToTextBin, path, "-")
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return string(out), nil
}

// RecognizeImage runs OCR over an image with tesseract. CPU-heavy;
// callers dispatch it through the worker pool.
func (e *Extractor) RecognizeImage(ctx context.Context, data []byte) (string, error) {
	path, cleanup, err := writeTemp(data, "*.img")
	if err != nil {
		return "", err
	}
	defer cleanup()

	// "stdout" makes tesseract print recognised text instead of writing
	// an output file.
	out, err := e.runner.Run(ctx, tesseractBin, path, "stdout")
	if err != nil {
		return "", fmt.Errorf("recognise image text: %w", err)
	}
	return strings.TrimRight(string(out), "\n") + "\n", nil
}

// writeTemp stages upload bytes as a temp file for the external tool.
func writeTemp(data []byte, pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", "deskhub-"+pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return path, cleanup, nil
}
