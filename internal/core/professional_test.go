package core

import (
	"fmt"
	"testing"
)

func TestExtractProfessionalContextExcludesWebmail(t *testing.T) {
	var emails []EmailRecord
	// 5 messages from 2 distinct gmail senders, 3 from one corporate sender.
	for i := 0; i < 5; i++ {
		emails = append(emails, EmailRecord{
			ID:   fmt.Sprintf("g%d", i),
			From: fmt.Sprintf("person%d@gmail.com", i%2),
		})
	}
	for i := 0; i < 3; i++ {
		emails = append(emails, EmailRecord{
			ID:   fmt.Sprintf("a%d", i),
			From: "jane.doe@acmecorp.com",
		})
	}

	signals := ExtractProfessionalContext(emails)

	// 2 gmail addresses + 1 corporate address
	if signals.TotalUniqueContacts != 3 {
		t.Errorf("TotalUniqueContacts = %d, want 3", signals.TotalUniqueContacts)
	}
	for _, domain := range signals.TopContactDomains {
		if domain == "gmail.com" {
			t.Error("personal webmail domain must not appear in top contact domains")
		}
	}
	if len(signals.TopContactDomains) == 0 || signals.TopContactDomains[0] != "acmecorp.com" {
		t.Errorf("TopContactDomains = %v, want acmecorp.com first", signals.TopContactDomains)
	}
	if len(signals.CompanyAffiliations) != 1 || signals.CompanyAffiliations[0] != "Acmecorp" {
		t.Errorf("CompanyAffiliations = %v, want [Acmecorp]", signals.CompanyAffiliations)
	}
}

func TestExtractProfessionalContextIndustry(t *testing.T) {
	emails := []EmailRecord{
		{ID: "1", From: "bot@github.com", Subject: "PR review requested"},
		{ID: "2", From: "team@gitlab.com", Subject: "pipeline report"},
		{ID: "3", From: "news@bloomberg.com", Subject: "markets update"},
	}

	signals := ExtractProfessionalContext(emails)

	if signals.InferredIndustry != "Technology" {
		t.Errorf("InferredIndustry = %q, want Technology", signals.InferredIndustry)
	}
	if got := signals.DomainCategories["technology"]; got != 2 {
		t.Errorf("technology count = %d, want 2", got)
	}
	if got := signals.DomainCategories["finance"]; got != 1 {
		t.Errorf("finance count = %d, want 1", got)
	}
}

func TestExtractProfessionalContextKeywords(t *testing.T) {
	emails := []EmailRecord{
		{ID: "1", From: "a@corp.example", Subject: "Project deadline moved"},
		{ID: "2", From: "b@corp.example", Subject: "Re: project proposal"},
		{ID: "3", From: "c@corp.example", Subject: "cat pictures"},
	}

	signals := ExtractProfessionalContext(emails)

	found := map[string]bool{}
	for _, kw := range signals.ProfessionalKeywords {
		found[kw] = true
	}
	if !found["project"] || !found["deadline"] || !found["proposal"] {
		t.Errorf("ProfessionalKeywords = %v, want project, deadline, proposal present", signals.ProfessionalKeywords)
	}
	if signals.ProfessionalKeywords[0] != "project" {
		t.Errorf("top keyword = %q, want project (2 hits)", signals.ProfessionalKeywords[0])
	}
}

func TestExtractProfessionalContextEmptyBatch(t *testing.T) {
	signals := ExtractProfessionalContext(nil)

	if signals.TotalUniqueContacts != 0 || signals.InferredIndustry != "" {
		t.Errorf("empty batch must produce zero values, got %+v", signals)
	}
	if signals.TopContactDomains == nil || signals.DomainCategories == nil ||
		signals.CompanyAffiliations == nil || signals.ProfessionalKeywords == nil {
		t.Error("empty batch must still produce non-nil collections")
	}
}

func TestTopContactDomainsCapped(t *testing.T) {
	var emails []EmailRecord
	for i := 0; i < 15; i++ {
		emails = append(emails, EmailRecord{
			ID:   fmt.Sprintf("%d", i),
			From: fmt.Sprintf("person@company%d.example", i),
		})
	}

	signals := ExtractProfessionalContext(emails)
	if len(signals.TopContactDomains) > 10 {
		t.Errorf("TopContactDomains has %d entries, want <= 10", len(signals.TopContactDomains))
	}
}
