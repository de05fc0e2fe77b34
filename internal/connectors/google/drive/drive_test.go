package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMimeQuery(t *testing.T) {
	assert.Equal(t,
		"mimeType='application/vnd.google-apps.document'",
		mimeQuery(MimeTypeDocument))
	assert.Equal(t,
		"mimeType='application/vnd.google-apps.spreadsheet'",
		mimeQuery(MimeTypeSpreadsheet))
}
