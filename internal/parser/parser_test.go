package parser

import (
	"testing"
)

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{"bare address", "jane@acmecorp.com", "acmecorp.com"},
		{"display name format", "Jane Doe <jane@acmecorp.com>", "acmecorp.com"},
		{"uppercase normalized", "JANE@ACMECORP.COM", "acmecorp.com"},
		{"missing at sign", "not-an-address", ""},
		{"empty string", "", ""},
		{"trailing at sign", "jane@", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractDomain(tt.address); got != tt.want {
				t.Errorf("ExtractDomain(%q) = %q, want %q", tt.address, got, tt.want)
			}
		})
	}
}

func TestExtractDisplayName(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{`"TechCrunch Daily" <digest@techcrunch.com>`, "TechCrunch Daily"},
		{"Jane Doe <jane@acmecorp.com>", "Jane Doe"},
		{"jane@acmecorp.com", ""},
		{"<jane@acmecorp.com>", ""},
	}

	for _, tt := range tests {
		if got := ExtractDisplayName(tt.from); got != tt.want {
			t.Errorf("ExtractDisplayName(%q) = %q, want %q", tt.from, got, tt.want)
		}
	}
}

func TestNameFromLocalPart(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"jane.doe@acmecorp.com", "Jane Doe"},
		{"jane_doe@acmecorp.com", "Jane Doe"},
		{"jane-doe@acmecorp.com", "Jane Doe"},
		{"jdoe@acmecorp.com", ""},
		{"jane.42@acmecorp.com", ""},
		{"no-at-sign", ""},
	}

	for _, tt := range tests {
		if got := NameFromLocalPart(tt.address); got != tt.want {
			t.Errorf("NameFromLocalPart(%q) = %q, want %q", tt.address, got, tt.want)
		}
	}
}

func TestCategorizeDomain(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"github.com", "technology"},
		{"bloomberg.com", "finance"},
		{"linkedin.com", "business"},
		{"nytimes.com", "news"},
		{"notion.so", "productivity"},
		{"cs.stanford.edu", "education"},
		{"unknown-company.example", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CategorizeDomain(tt.domain); got != tt.want {
			t.Errorf("CategorizeDomain(%q) = %q, want %q", tt.domain, got, tt.want)
		}
	}
}

func TestCompanyFromDomain(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"acmecorp.com", "Acmecorp"},
		{"mail.acmecorp.com", "Acmecorp"},
		{"gmail.com", ""},
		{"outlook.com", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CompanyFromDomain(tt.domain); got != tt.want {
			t.Errorf("CompanyFromDomain(%q) = %q, want %q", tt.domain, got, tt.want)
		}
	}
}

func TestIsPersonalDomain(t *testing.T) {
	for _, domain := range []string{"gmail.com", "yahoo.com", "outlook.com", "icloud.com"} {
		if !IsPersonalDomain(domain) {
			t.Errorf("IsPersonalDomain(%q) = false, want true", domain)
		}
	}
	if IsPersonalDomain("acmecorp.com") {
		t.Error("IsPersonalDomain(acmecorp.com) = true, want false")
	}
}

func TestFormalityScoreBounds(t *testing.T) {
	// Any input must stay in [0,1]
	inputs := []string{
		"",
		"Hey! Thanks so much!! 😀",
		"Dear Sir, pursuant to our agreement, yours sincerely",
		"!!!!!!!!!!!!!!!!!!!!",
		"😀😀😀😀😀😀😀😀",
		"lol btw gonna wanna yep nope asap",
	}
	for _, text := range inputs {
		score := FormalityScore(text)
		if score < 0.0 || score > 1.0 {
			t.Errorf("FormalityScore(%q) = %f, out of [0,1]", text, score)
		}
	}
}

func TestFormalityScoreDirection(t *testing.T) {
	casual := FormalityScore("Hey! Thanks so much!! 😀")
	if casual >= 0.3 {
		t.Errorf("casual text scored %f, want < 0.3", casual)
	}

	formal := FormalityScore("Dear Sir, I am writing to follow up pursuant to our contract. Yours sincerely.")
	if formal <= 0.5 {
		t.Errorf("formal text scored %f, want > 0.5", formal)
	}

	if FormalityScore("the quick brown fox") != 0.5 {
		t.Error("text without indicators should score a neutral 0.5")
	}
}

func TestEmojiDetection(t *testing.T) {
	if !ContainsEmoji("great job 😀") {
		t.Error("expected emoji to be detected")
	}
	if ContainsEmoji("plain ascii text, no emoji.") {
		t.Error("false positive emoji detection")
	}
	if got := CountEmojis("😀🚀✅"); got != 3 {
		t.Errorf("CountEmojis = %d, want 3", got)
	}
	if got := CountEmojis(""); got != 0 {
		t.Errorf("CountEmojis(empty) = %d, want 0", got)
	}
}

func TestExtractGreetingAndSignoff(t *testing.T) {
	text := "Hi team,\n\nQuick update on the launch.\n\nThanks,\nJane"

	if got := ExtractGreeting(text); got != "Hi" {
		t.Errorf("ExtractGreeting = %q, want %q", got, "Hi")
	}
	if got := ExtractSignoff(text); got != "Thanks" {
		t.Errorf("ExtractSignoff = %q, want %q", got, "Thanks")
	}

	if got := ExtractGreeting("no greeting here"); got != "" {
		t.Errorf("ExtractGreeting = %q, want empty", got)
	}
	if got := ExtractSignoff(""); got != "" {
		t.Errorf("ExtractSignoff(empty) = %q, want empty", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, ok := ParseTimestamp("Mon, 02 Jan 2006 15:04:05 -0700")
	if !ok {
		t.Fatal("expected RFC 5322 date to parse")
	}
	if ts.Hour() != 15 {
		t.Errorf("hour = %d, want 15", ts.Hour())
	}

	if _, ok := ParseTimestamp("not a date"); ok {
		t.Error("expected garbage date to fail")
	}
	if _, ok := ParseTimestamp(""); ok {
		t.Error("expected empty date to fail")
	}
}

func TestIsReplySubject(t *testing.T) {
	for subject, want := range map[string]bool{
		"Re: quarterly review": true,
		"RE: quarterly review": true,
		"Fwd: agenda":          true,
		"Fw: agenda":           true,
		"quarterly review":     false,
		"":                     false,
	} {
		if got := IsReplySubject(subject); got != want {
			t.Errorf("IsReplySubject(%q) = %v, want %v", subject, got, want)
		}
	}
}

func TestTopN(t *testing.T) {
	items := []string{"b", "a", "b", "c", "a", "b"}
	got := TopN(items, 2)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("TopN = %v, want [b a]", got)
	}

	// Ties keep first-encounter order
	tied := TopN([]string{"x", "y", "x", "y"}, 2)
	if tied[0] != "x" || tied[1] != "y" {
		t.Errorf("tie-break order = %v, want [x y]", tied)
	}

	if TopN([]string{}, 3) != nil {
		t.Error("TopN of empty slice should be nil")
	}

	// Never longer than n
	if got := TopN([]int{1, 2, 3, 4, 5}, 3); len(got) > 3 {
		t.Errorf("TopN returned %d items, want <= 3", len(got))
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(4, 10); got != 40.0 {
		t.Errorf("Percentage(4, 10) = %f, want 40.0", got)
	}
	if got := Percentage(1, 3); got != 33.33 {
		t.Errorf("Percentage(1, 3) = %f, want 33.33", got)
	}
	if got := Percentage(5, 0); got != 0.0 {
		t.Errorf("Percentage(5, 0) = %f, want 0.0", got)
	}
}

func TestProfessionalKeywords(t *testing.T) {
	subjects := []string{
		"Project kickoff meeting",
		"Re: project deadline",
		"Meeting notes",
		"lunch?",
	}
	got := ProfessionalKeywords(subjects, 10)
	if len(got) == 0 {
		t.Fatal("expected keyword hits")
	}
	// "project" and "meeting" both hit twice; first encounter wins the tie
	if got[0] != "project" && got[0] != "meeting" {
		t.Errorf("top keyword = %q, want project or meeting", got[0])
	}

	if hits := ProfessionalKeywords([]string{"lunch?"}, 10); len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}
