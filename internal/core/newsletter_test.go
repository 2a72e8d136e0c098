package core

import (
	"fmt"
	"testing"
)

func TestIsNewsletter(t *testing.T) {
	tests := []struct {
		name   string
		record EmailRecord
		want   bool
	}{
		{
			"unsubscribe header is definitive",
			EmailRecord{From: "friend@example.com", Subject: "hello", ListUnsubscribe: "<mailto:unsub@example.com>"},
			true,
		},
		{
			"subject keyword",
			EmailRecord{From: "editor@example.com", Subject: "Your Weekly Roundup"},
			true,
		},
		{
			"no-reply sender",
			EmailRecord{From: "noreply@shop.example.com", Subject: "Your order"},
			true,
		},
		{
			"newsletter platform domain",
			EmailRecord{From: "author@substack.com", Subject: "New post"},
			true,
		},
		{
			"plain personal mail",
			EmailRecord{From: "friend@example.com", Subject: "lunch tomorrow?"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNewsletter(&tt.record); got != tt.want {
				t.Errorf("IsNewsletter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractNewsletterSignals(t *testing.T) {
	// 10 emails: 4 newsletters from a technology domain, 6 personal.
	emails := make([]EmailRecord, 0, 10)
	for i := 0; i < 4; i++ {
		emails = append(emails, EmailRecord{
			ID:              fmt.Sprintf("n%d", i),
			From:            `"TechCrunch Daily" <digest@techcrunch.com>`,
			Subject:         "Today in tech",
			ListUnsubscribe: "<https://techcrunch.com/unsub>",
		})
	}
	for i := 0; i < 6; i++ {
		emails = append(emails, EmailRecord{
			ID:      fmt.Sprintf("p%d", i),
			From:    "friend@example.com",
			Subject: "catching up",
		})
	}

	signals := ExtractNewsletterSignals(emails)

	if signals.TotalNewsletters != 4 {
		t.Errorf("TotalNewsletters = %d, want 4", signals.TotalNewsletters)
	}
	if signals.NewsletterPercentage != 40.0 {
		t.Errorf("NewsletterPercentage = %f, want 40.0", signals.NewsletterPercentage)
	}
	if got := signals.NewsletterCategories["technology"]; got != 4 {
		t.Errorf("technology category count = %d, want 4", got)
	}
	if len(signals.NewsletterDomains) != 1 || signals.NewsletterDomains[0] != "techcrunch.com" {
		t.Errorf("NewsletterDomains = %v, want [techcrunch.com]", signals.NewsletterDomains)
	}
	if len(signals.TopNewsletters) != 1 || signals.TopNewsletters[0] != "TechCrunch Daily" {
		t.Errorf("TopNewsletters = %v, want [TechCrunch Daily]", signals.TopNewsletters)
	}
}

func TestExtractNewsletterSignalsUncategorizedBucket(t *testing.T) {
	emails := []EmailRecord{
		{From: "updates@unknown-sender.example", ListUnsubscribe: "<mailto:x@y>"},
	}
	signals := ExtractNewsletterSignals(emails)
	if got := signals.NewsletterCategories["other"]; got != 1 {
		t.Errorf("other bucket = %d, want 1", got)
	}
}

func TestExtractNewsletterSignalsEmptyBatch(t *testing.T) {
	signals := ExtractNewsletterSignals(nil)

	if signals.TotalNewsletters != 0 {
		t.Errorf("TotalNewsletters = %d, want 0", signals.TotalNewsletters)
	}
	if signals.NewsletterPercentage != 0.0 {
		t.Errorf("NewsletterPercentage = %f, want 0.0 on empty input", signals.NewsletterPercentage)
	}
	if signals.NewsletterDomains == nil || signals.NewsletterCategories == nil || signals.TopNewsletters == nil {
		t.Error("empty batch must still produce non-nil collections")
	}
}

func TestTopNewslettersCappedAndSorted(t *testing.T) {
	var emails []EmailRecord
	// Seven distinct senders, with sender 0 appearing most often.
	for sender := 0; sender < 7; sender++ {
		for n := 0; n <= 7-sender; n++ {
			emails = append(emails, EmailRecord{
				From:            fmt.Sprintf(`"Letter %d" <news%d@list.example>`, sender, sender),
				ListUnsubscribe: "<mailto:x@y>",
			})
		}
	}

	signals := ExtractNewsletterSignals(emails)
	if len(signals.TopNewsletters) > 5 {
		t.Errorf("TopNewsletters has %d entries, want <= 5", len(signals.TopNewsletters))
	}
	if signals.TopNewsletters[0] != "Letter 0" {
		t.Errorf("top newsletter = %q, want most frequent sender first", signals.TopNewsletters[0])
	}
}
