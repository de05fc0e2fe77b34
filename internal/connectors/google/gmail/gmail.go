// Package gmail implements the mail source on the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/deskhub/internal/connectors/google"
	"github.com/custodia-labs/deskhub/internal/core/domain"
	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.MailSource = (*Source)(nil)

const (
	// userID addresses the authenticated mailbox.
	userID = "me"

	// noSubject is the placeholder for messages without a Subject header.
	noSubject = "No Subject"

	// metadataConcurrency bounds the per-page metadata fan-out.
	metadataConcurrency = 5
)

// Source lists messages and downloads image attachments from the
// authenticated user's mailbox.
type Source struct {
	svc     *gmailapi.Service
	limiter *google.RateLimiter
}

// NewSource creates a mail source on top of a Gmail API service.
func NewSource(svc *gmailapi.Service) *Source {
	return &Source{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceGmail),
	}
}

// ListMessages returns one page of message summaries. The list call
// only yields IDs, so each message's Subject and internal date are
// fetched concurrently with a bounded fan-out.
func (s *Source) ListMessages(ctx context.Context, pageToken string, pageSize int64) (*domain.EmailPage, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := s.svc.Users.Messages.List(userID).MaxResults(pageSize).Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	list, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", s.limiter.WrapError(err))
	}

	summaries := make([]domain.EmailSummary, len(list.Messages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metadataConcurrency)

	for i, ref := range list.Messages {
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}
			msg, err := s.svc.Users.Messages.Get(userID, ref.Id).
				Format("metadata").
				MetadataHeaders("Subject").
				Context(gctx).
				Do()
			if err != nil {
				return fmt.Errorf("fetching message %s: %w", ref.Id, s.limiter.WrapError(err))
			}
			summaries[i] = summarise(msg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.EmailPage{
		Emails:        summaries,
		NextPageToken: domain.PageCursor(list.NextPageToken),
	}, nil
}

// NextPage returns the cursor following the page at pageToken. It asks
// Gmail for the token alone, so cursor walks stay cheap.
func (s *Source) NextPage(ctx context.Context, pageToken string, pageSize int64) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	call := s.svc.Users.Messages.List(userID).
		MaxResults(pageSize).
		Fields("nextPageToken").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	list, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("walking message pages: %w", s.limiter.WrapError(err))
	}
	return list.NextPageToken, nil
}

// ImageAttachments downloads every image attachment of a message.
// Returns nil when the message carries none.
func (s *Source) ImageAttachments(ctx context.Context, messageID string) ([]domain.Attachment, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	msg, err := s.svc.Users.Messages.Get(userID, messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching message %s: %w", messageID, s.limiter.WrapError(err))
	}

	parts := imageParts(msg.Payload)
	if len(parts) == 0 {
		return nil, nil
	}

	attachments := make([]domain.Attachment, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metadataConcurrency)
	for i, part := range parts {
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}
			body, err := s.svc.Users.Messages.Attachments.Get(userID, messageID, part.Body.AttachmentId).
				Context(gctx).
				Do()
			if err != nil {
				return fmt.Errorf("downloading attachment %q: %w", part.Filename, s.limiter.WrapError(err))
			}
			data, err := decodeBody(body.Data)
			if err != nil {
				return fmt.Errorf("decoding attachment %q: %w", part.Filename, err)
			}
			attachments[i] = domain.Attachment{Filename: part.Filename, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return attachments, nil
}

// summarise maps a metadata-format message to its dashboard shape.
func summarise(msg *gmailapi.Message) domain.EmailSummary {
	return domain.EmailSummary{
		ID:        msg.Id,
		Subject:   subjectOf(msg),
		Timestamp: msg.InternalDate,
	}
}

// subjectOf extracts the Subject header, falling back to a placeholder.
func subjectOf(msg *gmailapi.Message) string {
	if msg.Payload == nil {
		return noSubject
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, "Subject") && h.Value != "" {
			return h.Value
		}
	}
	return noSubject
}

// imageParts collects the image attachment parts of a payload,
// descending into nested multiparts, ordered by part ID for stable
// output.
func imageParts(payload *gmailapi.MessagePart) []*gmailapi.MessagePart {
	if payload == nil {
		return nil
	}

	var out []*gmailapi.MessagePart
	var walk func(part *gmailapi.MessagePart)
	walk = func(part *gmailapi.MessagePart) {
		if isImageAttachment(part) {
			out = append(out, part)
		}
		for _, child := range part.Parts {
			walk(child)
		}
	}
	walk(payload)

	sort.SliceStable(out, func(i, j int) bool { return out[i].PartId < out[j].PartId })
	return out
}

func isImageAttachment(part *gmailapi.MessagePart) bool {
	return part.Filename != "" &&
		strings.HasPrefix(part.MimeType, "image/") &&
		part.Body != nil &&
		part.Body.AttachmentId != ""
}

// decodeBody decodes Gmail's web-safe base64 attachment data, which
// may arrive with or without padding.
func decodeBody(data string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
}
