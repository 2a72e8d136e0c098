package core

import (
	"github.com/mikey/email-persona/internal/parser"
)

const topTokensLimit = 3

// ExtractCommunicationStyle derives writing-style statistics from the
// sent-email subset. Style is about authored content, so received mail never
// feeds this analyzer. Enrichment fields are left at their zero value; the
// aggregator merges LLM insights separately.
func ExtractCommunicationStyle(sentEmails []EmailRecord) CommunicationStyleSignals {
	signals := CommunicationStyleSignals{
		CommonGreetings: []string{},
		CommonSignoffs:  []string{},
		SentEmailCount:  len(sentEmails),
	}
	if len(sentEmails) == 0 {
		return signals
	}

	totalWords := 0
	totalFormality := 0.0
	emojiEmails := 0
	totalRecipients := 0
	var greetingHits, signoffHits []string

	for i := range sentEmails {
		record := &sentEmails[i]
		text := record.Subject + " " + record.Snippet

		totalWords += parser.CountWords(text)
		totalFormality += parser.FormalityScore(text)
		if parser.ContainsEmoji(text) {
			emojiEmails++
		}
		totalRecipients += len(record.To)

		if greeting := parser.ExtractGreeting(record.Snippet); greeting != "" {
			greetingHits = append(greetingHits, greeting)
		}
		if signoff := parser.ExtractSignoff(record.Snippet); signoff != "" {
			signoffHits = append(signoffHits, signoff)
		}
	}

	count := len(sentEmails)
	signals.AvgEmailLength = totalWords / count
	signals.FormalityScore = parser.Round2(totalFormality / float64(count))
	signals.EmojiUsageRate = parser.Percentage(emojiEmails, count)
	signals.AvgRecipientsPerEmail = parser.Round1(float64(totalRecipients) / float64(count))

	if top := parser.TopN(greetingHits, topTokensLimit); top != nil {
		signals.CommonGreetings = top
	}
	if top := parser.TopN(signoffHits, topTokensLimit); top != nil {
		signals.CommonSignoffs = top
	}

	return signals
}
