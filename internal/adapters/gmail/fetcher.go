package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/mikey/email-persona/internal/core"
)

const (
	inboxAndSentQuery = "in:inbox OR in:sent"
	sentQuery         = "in:sent"

	// Bounded parallelism keeps message fetches fast without tripping the
	// Gmail API per-user rate limits.
	fetchWorkers = 5
)

func gmailServiceOptions(client *http.Client) []option.ClientOption {
	return []option.ClientOption{option.WithHTTPClient(client)}
}

// Fetcher implements the EmailSource interface on top of the Gmail API.
type Fetcher struct {
	service *gmailapi.Service
	logger  *zap.Logger
}

// NewFetcher creates a fetcher from an authorized token source.
func NewFetcher(ctx context.Context, ts oauth2.TokenSource, logger *zap.Logger) (*Fetcher, error) {
	client := oauth2.NewClient(ctx, ts)
	service, err := gmailapi.NewService(ctx, gmailServiceOptions(client)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &Fetcher{service: service, logger: logger}, nil
}

// UserEmail returns the authenticated mailbox owner's address.
func (f *Fetcher) UserEmail(ctx context.Context) (string, error) {
	profile, err := f.service.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get Gmail profile: %w", err)
	}
	return profile.EmailAddress, nil
}

// FetchRecent fetches up to max recent messages across inbox and sent mail.
func (f *Fetcher) FetchRecent(ctx context.Context, max int) ([]core.EmailRecord, error) {
	return f.fetchByQuery(ctx, inboxAndSentQuery, max)
}

// FetchSent fetches up to max recent sent messages.
func (f *Fetcher) FetchSent(ctx context.Context, max int) ([]core.EmailRecord, error) {
	return f.fetchByQuery(ctx, sentQuery, max)
}

func (f *Fetcher) fetchByQuery(ctx context.Context, query string, max int) ([]core.EmailRecord, error) {
	var ids []string
	pageToken := ""
	for len(ids) < max {
		req := f.service.Users.Messages.List("me").Q(query).MaxResults(int64(max - len(ids)))
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}
		resp, err := req.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
		}
		if resp.NextPageToken == "" || len(resp.Messages) == 0 {
			break
		}
		pageToken = resp.NextPageToken
	}

	records := f.fetchMetadata(ctx, ids)
	f.logger.Debug("Fetched messages",
		zap.String("query", query),
		zap.Int("requested", max),
		zap.Int("fetched", len(records)))
	return records, nil
}

// fetchMetadata fetches message metadata with bounded parallelism, preserving
// list order. Individual failures are logged and skipped.
func (f *Fetcher) fetchMetadata(ctx context.Context, ids []string) []core.EmailRecord {
	type result struct {
		index  int
		record *core.EmailRecord
	}

	results := make(chan result, len(ids))
	semaphore := make(chan struct{}, fetchWorkers)

	for i, id := range ids {
		go func(idx int, msgID string) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			msg, err := f.service.Users.Messages.Get("me", msgID).
				Format("metadata").
				MetadataHeaders("From", "To", "Subject", "Date", "List-Unsubscribe").
				Context(ctx).
				Do()
			if err != nil {
				f.logger.Warn("Failed to fetch message", zap.String("id", msgID), zap.Error(err))
				results <- result{index: idx}
				return
			}
			record := recordFromMessage(msg)
			results <- result{index: idx, record: &record}
		}(i, id)
	}

	ordered := make([]*core.EmailRecord, len(ids))
	for range ids {
		r := <-results
		ordered[r.index] = r.record
	}

	records := make([]core.EmailRecord, 0, len(ids))
	for _, r := range ordered {
		if r != nil {
			records = append(records, *r)
		}
	}
	return records
}

// FetchBodies fetches plain-text bodies for the given message IDs, preserving
// order. Messages without a text part yield empty strings.
func (f *Fetcher) FetchBodies(ctx context.Context, ids []string) ([]string, error) {
	type result struct {
		index int
		body  string
	}

	results := make(chan result, len(ids))
	semaphore := make(chan struct{}, fetchWorkers)

	for i, id := range ids {
		go func(idx int, msgID string) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			msg, err := f.service.Users.Messages.Get("me", msgID).
				Format("full").
				Context(ctx).
				Do()
			if err != nil {
				f.logger.Warn("Failed to fetch message body", zap.String("id", msgID), zap.Error(err))
				results <- result{index: idx}
				return
			}
			results <- result{index: idx, body: extractTextBody(msg.Payload)}
		}(i, id)
	}

	bodies := make([]string, len(ids))
	for range ids {
		r := <-results
		bodies[r.index] = r.body
	}
	return bodies, nil
}

func recordFromMessage(msg *gmailapi.Message) core.EmailRecord {
	record := core.EmailRecord{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
		Labels:   msg.LabelIds,
	}

	if msg.Payload == nil {
		return record
	}
	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "From":
			record.From = header.Value
		case "To":
			record.To = splitAddressList(header.Value)
		case "Subject":
			record.Subject = header.Value
		case "Date":
			record.Date = header.Value
		case "List-Unsubscribe":
			record.ListUnsubscribe = header.Value
		}
	}
	return record
}

func splitAddressList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	addrs := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			addrs = append(addrs, trimmed)
		}
	}
	return addrs
}

// extractTextBody walks the MIME tree for the first text/plain part.
func extractTextBody(payload *gmailapi.MessagePart) string {
	if payload == nil {
		return ""
	}
	if payload.MimeType == "text/plain" && payload.Body != nil && payload.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(payload.Body.Data)
		if err == nil {
			return string(data)
		}
	}
	for _, part := range payload.Parts {
		if body := extractTextBody(part); body != "" {
			return body
		}
	}
	return ""
}
