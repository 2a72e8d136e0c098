package core

import (
	"github.com/mikey/email-persona/internal/parser"
)

const topNewslettersLimit = 5

// IsNewsletter reports whether a record looks like bulk/automated mail. The
// checks run in descending reliability: unsubscribe header, subject
// keywords, no-reply sender, known newsletter platform domain.
func IsNewsletter(record *EmailRecord) bool {
	if record.ListUnsubscribe != "" {
		return true
	}
	if parser.IsNewsletterSubject(record.Subject) {
		return true
	}
	if parser.IsNoReplySender(record.From) {
		return true
	}
	if domain := parser.ExtractDomain(record.From); domain != "" && parser.IsNewsletterPlatform(domain) {
		return true
	}
	return false
}

// ExtractNewsletterSignals classifies every record in the batch and
// aggregates domains, categories and sender names of the newsletters found.
func ExtractNewsletterSignals(emails []EmailRecord) NewsletterSignals {
	signals := NewsletterSignals{
		NewsletterDomains:    []string{},
		NewsletterCategories: map[string]int{},
		TopNewsletters:       []string{},
	}

	seenDomains := map[string]struct{}{}
	var names []string

	for i := range emails {
		record := &emails[i]
		if !IsNewsletter(record) {
			continue
		}
		signals.TotalNewsletters++

		domain := parser.ExtractDomain(record.From)
		if domain != "" {
			if _, seen := seenDomains[domain]; !seen {
				seenDomains[domain] = struct{}{}
				signals.NewsletterDomains = append(signals.NewsletterDomains, domain)
			}
			category := parser.CategorizeDomain(domain)
			if category == "" {
				category = "other"
			}
			signals.NewsletterCategories[category]++
		}

		if name := parser.ExtractDisplayName(record.From); name != "" {
			names = append(names, name)
		}
	}

	if top := parser.TopN(names, topNewslettersLimit); top != nil {
		signals.TopNewsletters = top
	}
	signals.NewsletterPercentage = parser.Percentage(signals.TotalNewsletters, len(emails))

	return signals
}
