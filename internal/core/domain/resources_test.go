package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCursor_MarshalsEmptyAsNull(t *testing.T) {
	page := EmailPage{Emails: []EmailSummary{}}

	data, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"emails":[],"nextPageToken":null}`, string(data))
}

func TestPageCursor_RoundTrip(t *testing.T) {
	page := EmailPage{
		Emails:        []EmailSummary{{ID: "m1", Subject: "Hello", Timestamp: 42}},
		NextPageToken: "cursor-2",
	}

	data, err := json.Marshal(page)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nextPageToken":"cursor-2"`)

	var decoded EmailPage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, page, decoded)
}

func TestPageCursor_UnmarshalsNull(t *testing.T) {
	var decoded EmailPage
	require.NoError(t, json.Unmarshal([]byte(`{"emails":[],"nextPageToken":null}`), &decoded))
	assert.Equal(t, PageCursor(""), decoded.NextPageToken)
}
