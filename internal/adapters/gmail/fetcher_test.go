package gmail

import (
	"encoding/base64"
	"reflect"
	"testing"

	gmailapi "google.golang.org/api/gmail/v1"
)

func TestRecordFromMessage(t *testing.T) {
	msg := &gmailapi.Message{
		Id:       "msg-1",
		ThreadId: "thread-1",
		Snippet:  "Quick update on the launch",
		LabelIds: []string{"INBOX", "IMPORTANT"},
		Payload: &gmailapi.MessagePart{
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "From", Value: "Alice Smith <alice@acmecorp.com>"},
				{Name: "To", Value: "bob@example.com, carol@example.com"},
				{Name: "Subject", Value: "Launch update"},
				{Name: "Date", Value: "Mon, 02 Jan 2006 15:04:05 -0700"},
				{Name: "List-Unsubscribe", Value: "<https://example.com/unsub>"},
			},
		},
	}

	record := recordFromMessage(msg)

	if record.ID != "msg-1" || record.ThreadID != "thread-1" {
		t.Errorf("ids = %q/%q", record.ID, record.ThreadID)
	}
	if record.From != "Alice Smith <alice@acmecorp.com>" {
		t.Errorf("From = %q", record.From)
	}
	if want := []string{"bob@example.com", "carol@example.com"}; !reflect.DeepEqual(record.To, want) {
		t.Errorf("To = %v, want %v", record.To, want)
	}
	if record.Subject != "Launch update" {
		t.Errorf("Subject = %q", record.Subject)
	}
	if record.ListUnsubscribe == "" {
		t.Error("ListUnsubscribe not captured")
	}
	if !reflect.DeepEqual(record.Labels, []string{"INBOX", "IMPORTANT"}) {
		t.Errorf("Labels = %v", record.Labels)
	}
}

func TestRecordFromMessageNoPayload(t *testing.T) {
	record := recordFromMessage(&gmailapi.Message{Id: "msg-2", Snippet: "hello"})
	if record.ID != "msg-2" || record.Snippet != "hello" || record.From != "" {
		t.Errorf("record = %+v", record)
	}
}

func TestSplitAddressList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a@example.com", []string{"a@example.com"}},
		{"a@example.com, b@example.com", []string{"a@example.com", "b@example.com"}},
		{" a@example.com ,, b@example.com ", []string{"a@example.com", "b@example.com"}},
	}
	for _, tt := range tests {
		if got := splitAddressList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitAddressList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtractTextBody(t *testing.T) {
	encode := func(s string) string {
		return base64.URLEncoding.EncodeToString([]byte(s))
	}

	nested := &gmailapi.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmailapi.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gmailapi.MessagePartBody{Data: encode("<p>hi</p>")},
			},
			{
				MimeType: "text/plain",
				Body:     &gmailapi.MessagePartBody{Data: encode("hi there")},
			},
		},
	}
	if got := extractTextBody(nested); got != "hi there" {
		t.Errorf("body = %q, want %q", got, "hi there")
	}

	flat := &gmailapi.MessagePart{
		MimeType: "text/plain",
		Body:     &gmailapi.MessagePartBody{Data: encode("flat body")},
	}
	if got := extractTextBody(flat); got != "flat body" {
		t.Errorf("body = %q", got)
	}

	if got := extractTextBody(nil); got != "" {
		t.Errorf("nil payload body = %q", got)
	}
	htmlOnly := &gmailapi.MessagePart{
		MimeType: "text/html",
		Body:     &gmailapi.MessagePartBody{Data: encode("<p>only html</p>")},
	}
	if got := extractTextBody(htmlOnly); got != "" {
		t.Errorf("html-only body = %q, want empty", got)
	}
}
