package core

import (
	"time"
)

// EmailRecord is one fetched message's metadata. Records are produced by the
// upstream fetcher and are read-only inside the analysis engine.
type EmailRecord struct {
	ID              string   `json:"id"`
	ThreadID        string   `json:"thread_id"`
	From            string   `json:"from"`
	To              []string `json:"to"`
	Subject         string   `json:"subject"`
	Snippet         string   `json:"snippet"`
	Date            string   `json:"date"`
	ListUnsubscribe string   `json:"list_unsubscribe,omitempty"`
	Labels          []string `json:"labels,omitempty"`
}

// NewsletterSignals summarizes bulk-mail subscriptions found in the batch.
type NewsletterSignals struct {
	NewsletterDomains    []string       `json:"newsletter_domains"`
	NewsletterCategories map[string]int `json:"newsletter_categories"`
	TopNewsletters       []string       `json:"top_newsletters"`
	TotalNewsletters     int            `json:"total_newsletters"`
	NewsletterPercentage float64        `json:"newsletter_percentage"`
}

// StyleInsights is the fixed schema returned by the optional LLM enrichment
// step. All fields come back from the model verbatim.
type StyleInsights struct {
	Tone                   string   `json:"tone"`
	WritingStyle           string   `json:"writing_style"`
	CommonTopics           []string `json:"common_topics"`
	RelationshipQuality    string   `json:"relationship_quality"`
	ProfessionalismLevel   int      `json:"professionalism_level"`
	PersonalityTraits      []string `json:"personality_traits"`
	CommunicationStrengths []string `json:"communication_strengths"`
}

// Enrichment is a tagged value: Insights is only meaningful when Available
// is true. When enrichment did not run or failed, Available is false and
// Insights is nil.
type Enrichment struct {
	Available bool           `json:"llm_analysis_available"`
	Insights  *StyleInsights `json:"llm_insights,omitempty"`
}

// CommunicationStyleSignals describes how the user writes, derived from the
// sent-email subset only.
type CommunicationStyleSignals struct {
	AvgEmailLength        int      `json:"avg_email_length"`
	FormalityScore        float64  `json:"formality_score"`
	EmojiUsageRate        float64  `json:"emoji_usage_rate"`
	CommonGreetings       []string `json:"common_greetings"`
	CommonSignoffs        []string `json:"common_signoffs"`
	SentEmailCount        int      `json:"sent_email_count"`
	AvgRecipientsPerEmail float64  `json:"avg_recipients_per_email"`

	Enrichment Enrichment `json:"enrichment"`
}

// ProfessionalContextSignals describes the user's work sphere inferred from
// contact domains and subject vocabulary.
type ProfessionalContextSignals struct {
	TopContactDomains    []string       `json:"top_contact_domains"`
	DomainCategories     map[string]int `json:"domain_categories"`
	InferredIndustry     string         `json:"inferred_industry,omitempty"`
	CompanyAffiliations  []string       `json:"company_affiliations"`
	ProfessionalKeywords []string       `json:"professional_keywords"`
	TotalUniqueContacts  int            `json:"total_unique_contacts"`
}

// ActivityPatternSignals describes when and how intensively the user emails.
// ResponseRate is a heuristic proxy based on subject prefixes and thread
// order, not a guarantee.
type ActivityPatternSignals struct {
	EmailsPerDay      float64  `json:"emails_per_day"`
	PeakActivityHours []int    `json:"peak_activity_hours"`
	PeakActivityDays  []string `json:"peak_activity_days"`
	ThreadDepthAvg    float64  `json:"thread_depth_avg"`
	ResponseRate      float64  `json:"response_rate"`
	DateRangeDays     int      `json:"date_range_days"`
	TotalThreads      int      `json:"total_threads"`
}

// EmailSignals is the complete signal bundle for one analysis run. All
// nested structures are always populated; empty input degrades to zero
// values, never to nil branches.
type EmailSignals struct {
	UserEmail  string    `json:"user_email"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	NewsletterSignals   NewsletterSignals          `json:"newsletter_signals"`
	CommunicationStyle  CommunicationStyleSignals  `json:"communication_style"`
	ProfessionalContext ProfessionalContextSignals `json:"professional_context"`
	ActivityPatterns    ActivityPatternSignals     `json:"activity_patterns"`

	TotalEmailsAnalyzed  int     `json:"total_emails_analyzed"`
	SentEmailsAnalyzed   int     `json:"sent_emails_analyzed"`
	AnalysisQualityScore float64 `json:"analysis_quality_score"`
}

// TokenUsage tracks LLM token consumption for cost accounting.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
}
