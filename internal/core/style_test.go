package core

import (
	"testing"
)

func TestExtractCommunicationStyleCasualEmoji(t *testing.T) {
	sent := []EmailRecord{
		{
			ID:      "s1",
			To:      []string{"friend@example.com"},
			Subject: "",
			Snippet: "Hey! Thanks so much!! 😀",
		},
	}

	signals := ExtractCommunicationStyle(sent)

	if signals.EmojiUsageRate != 100.0 {
		t.Errorf("EmojiUsageRate = %f, want 100.0", signals.EmojiUsageRate)
	}
	if signals.FormalityScore >= 0.3 {
		t.Errorf("FormalityScore = %f, want < 0.3 for casual text", signals.FormalityScore)
	}
	if len(signals.CommonSignoffs) != 1 || signals.CommonSignoffs[0] != "Thanks" {
		t.Errorf("CommonSignoffs = %v, want [Thanks]", signals.CommonSignoffs)
	}
	if len(signals.CommonGreetings) != 1 || signals.CommonGreetings[0] != "Hey" {
		t.Errorf("CommonGreetings = %v, want [Hey]", signals.CommonGreetings)
	}
	if signals.AvgRecipientsPerEmail != 1.0 {
		t.Errorf("AvgRecipientsPerEmail = %f, want 1.0", signals.AvgRecipientsPerEmail)
	}
	if signals.SentEmailCount != 1 {
		t.Errorf("SentEmailCount = %d, want 1", signals.SentEmailCount)
	}
	if signals.Enrichment.Available {
		t.Error("heuristic analyzer must never set Enrichment.Available")
	}
}

func TestExtractCommunicationStyleAverages(t *testing.T) {
	sent := []EmailRecord{
		{ID: "s1", To: []string{"a@x.com", "b@x.com"}, Subject: "one two", Snippet: "three four five"},
		{ID: "s2", To: []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}, Subject: "one", Snippet: "two"},
	}

	signals := ExtractCommunicationStyle(sent)

	// (5 + 2) words / 2 emails
	if signals.AvgEmailLength != 3 {
		t.Errorf("AvgEmailLength = %d, want 3", signals.AvgEmailLength)
	}
	if signals.AvgRecipientsPerEmail != 3.0 {
		t.Errorf("AvgRecipientsPerEmail = %f, want 3.0", signals.AvgRecipientsPerEmail)
	}
	if signals.EmojiUsageRate != 0.0 {
		t.Errorf("EmojiUsageRate = %f, want 0.0", signals.EmojiUsageRate)
	}
	if signals.FormalityScore < 0.0 || signals.FormalityScore > 1.0 {
		t.Errorf("FormalityScore = %f, out of [0,1]", signals.FormalityScore)
	}
}

func TestExtractCommunicationStyleEmptySubset(t *testing.T) {
	signals := ExtractCommunicationStyle(nil)

	if signals.SentEmailCount != 0 || signals.AvgEmailLength != 0 ||
		signals.FormalityScore != 0.0 || signals.EmojiUsageRate != 0.0 {
		t.Errorf("empty subset must produce zero values, got %+v", signals)
	}
	if signals.CommonGreetings == nil || signals.CommonSignoffs == nil {
		t.Error("empty subset must still produce non-nil lists")
	}
	if signals.Enrichment.Available || signals.Enrichment.Insights != nil {
		t.Error("empty subset must leave enrichment unavailable")
	}
}

func TestExtractCommunicationStyleAdversarialText(t *testing.T) {
	sent := []EmailRecord{
		{ID: "s1", Snippet: "😀😀😀😀😀😀😀😀😀😀😀😀😀😀😀😀"},
		{ID: "s2", Snippet: ""},
		{ID: "s3", Subject: "!!!!!!!!!!!!!!!!!!!!!!!!"},
	}

	signals := ExtractCommunicationStyle(sent)

	if signals.FormalityScore < 0.0 || signals.FormalityScore > 1.0 {
		t.Errorf("FormalityScore = %f, out of [0,1]", signals.FormalityScore)
	}
	if signals.EmojiUsageRate < 0.0 || signals.EmojiUsageRate > 100.0 {
		t.Errorf("EmojiUsageRate = %f, out of [0,100]", signals.EmojiUsageRate)
	}
}
