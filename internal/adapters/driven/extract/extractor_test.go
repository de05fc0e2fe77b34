package extract

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
	name   string
	args   []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

func TestExtractPDF(t *testing.T) {
	runner := &mockRunner{output: []byte("invoice text\n")}
	e := NewWithRunner(runner)

	text, err := e.ExtractPDF(context.Background(), []byte("%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.Equal(t, "invoice text\n", text)
	assert.Equal(t, "pdftotext", runner.name)
	require.Len(t, runner.args, 2)
	assert.Equal(t, "-", runner.args[1], "text must go to stdout")

	// The staged temp file is removed after the run.
	_, statErr := os.Stat(runner.args[0])
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractPDF_ToolFailure(t *testing.T) {
	e := NewWithRunner(&mockRunner{err: errors.New("not a pdf")})

	_, err := e.ExtractPDF(context.Background(), []byte("garbage"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract pdf text")
}

func TestRecognizeImage(t *testing.T) {
	runner := &mockRunner{output: []byte("RECEIPT\nTOTAL 12.50\n\n")}
	e := NewWithRunner(runner)

	text, err := e.RecognizeImage(context.Background(), []byte{0xFF, 0xD8})
	require.NoError(t, err)

	assert.Equal(t, "RECEIPT\nTOTAL 12.50\n", text)
	assert.Equal(t, "tesseract", runner.name)
	require.Len(t, runner.args, 2)
	assert.Equal(t, "stdout", runner.args[1])
	assert.True(t, strings.HasPrefix(runner.args[0], os.TempDir()))
}

func TestRecognizeImage_ToolFailure(t *testing.T) {
	e := NewWithRunner(&mockRunner{err: errors.New("boom")})

	_, err := e.RecognizeImage(context.Background(), []byte{0x00})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recognise image text")
}
