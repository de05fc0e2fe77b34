package driven

import "context"

// CommandRunner executes an external command and returns its combined
// output. Abstracted so extraction adapters are testable without the
// underlying binaries installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// TextExtractor turns uploaded document bytes into plain text.
type TextExtractor interface {
	// ExtractPDF extracts the text layer of a PDF.
	ExtractPDF(ctx context.Context, data []byte) (string, error)

	// RecognizeImage runs OCR over an image. CPU-heavy; callers must
	// dispatch it through the worker pool, never inline on a request.
	RecognizeImage(ctx context.Context, data []byte) (string, error)
}
