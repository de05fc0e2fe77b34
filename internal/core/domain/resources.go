package domain

import "encoding/json"

// PageCursor is an opaque listing cursor. The empty cursor means the
// listing has ended; it serialises as JSON null so clients can test
// the field directly.
type PageCursor string

// MarshalJSON emits null for the empty cursor.
func (c PageCursor) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON accepts null as the empty cursor.
func (c *PageCursor) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = PageCursor(s)
	return nil
}

// EmailSummary is the minimal shape of a listed Gmail message.
type EmailSummary struct {
	// ID is the Gmail message ID.
	ID string `json:"id"`
	// Subject is the Subject header, or "No Subject" when absent.
	Subject string `json:"subject"`
	// Timestamp is the message internal date in milliseconds since epoch.
	Timestamp int64 `json:"timestamp"`
}

// EmailPage is one page of listed emails.
type EmailPage struct {
	Emails []EmailSummary `json:"emails"`
	// NextPageToken is the cursor for the following page; null in
	// JSON when this is the last page.
	NextPageToken PageCursor `json:"nextPageToken"`
}

// FileSummary is the minimal shape of a listed Drive file
// (Google Doc or Sheet).
type FileSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// ModifiedTime is the RFC 3339 modification timestamp from Drive.
	ModifiedTime string `json:"modifiedTime"`
}

// FilePage is one page of listed Drive files.
type FilePage struct {
	Files         []FileSummary
	NextPageToken PageCursor
}

// Event is a calendar event in the shape the dashboard exposes.
type Event struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Status      string `json:"status,omitempty"`
	HTMLLink    string `json:"htmlLink,omitempty"`
}

// EventInput holds the fields required to create a calendar event.
// Start and End are RFC 3339 timestamps interpreted as UTC.
type EventInput struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// Attachment is a raw image attachment downloaded from a Gmail message.
type Attachment struct {
	Filename string
	Data     []byte
}

// AttachmentText is the extraction result for a single attachment.
type AttachmentText struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}
