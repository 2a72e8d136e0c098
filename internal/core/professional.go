package core

import (
	"strings"

	"github.com/mikey/email-persona/internal/parser"
)

const (
	topContactDomainsLimit    = 10
	companyAffiliationsLimit  = 5
	professionalKeywordsLimit = 10
)

// ExtractProfessionalContext builds contact-domain statistics over the full
// batch. Consumer-webmail domains stay out of the domain histogram, but
// every distinct sender counts toward total contacts.
func ExtractProfessionalContext(emails []EmailRecord) ProfessionalContextSignals {
	signals := ProfessionalContextSignals{
		TopContactDomains:    []string{},
		DomainCategories:     map[string]int{},
		CompanyAffiliations:  []string{},
		ProfessionalKeywords: []string{},
	}

	var contactDomains []string
	uniqueContacts := map[string]struct{}{}
	subjects := make([]string, 0, len(emails))

	for i := range emails {
		record := &emails[i]
		subjects = append(subjects, record.Subject)

		if address := parser.ExtractAddress(record.From); address != "" {
			uniqueContacts[address] = struct{}{}
		}

		domain := parser.ExtractDomain(record.From)
		if domain == "" || parser.IsPersonalDomain(domain) {
			continue
		}
		contactDomains = append(contactDomains, domain)
		if category := parser.CategorizeDomain(domain); category != "" {
			signals.DomainCategories[category]++
		}
	}

	if top := parser.TopN(contactDomains, topContactDomainsLimit); top != nil {
		signals.TopContactDomains = top
	}
	signals.InferredIndustry = inferIndustry(signals.DomainCategories)

	seenCompanies := map[string]struct{}{}
	for _, domain := range signals.TopContactDomains {
		company := parser.CompanyFromDomain(domain)
		if company == "" {
			continue
		}
		if _, seen := seenCompanies[company]; seen {
			continue
		}
		seenCompanies[company] = struct{}{}
		signals.CompanyAffiliations = append(signals.CompanyAffiliations, company)
		if len(signals.CompanyAffiliations) == companyAffiliationsLimit {
			break
		}
	}

	if keywords := parser.ProfessionalKeywords(subjects, professionalKeywordsLimit); keywords != nil {
		signals.ProfessionalKeywords = keywords
	}
	signals.TotalUniqueContacts = len(uniqueContacts)

	return signals
}

// inferIndustry picks the category with the highest aggregate count,
// Title-cased. Canonical category order breaks ties deterministically.
func inferIndustry(categories map[string]int) string {
	best := ""
	bestCount := 0
	for _, category := range parser.CategoryNames {
		if count := categories[category]; count > bestCount {
			best = category
			bestCount = count
		}
	}
	if best == "" {
		return ""
	}
	return strings.ToUpper(best[:1]) + best[1:]
}
