// Package parser provides pure, stateless helpers for extracting signals
// from email metadata: address parsing, domain classification, formality
// scoring and frequency counting. No I/O, no side effects.
package parser

import (
	"math"
	"net/mail"
	"regexp"
	"sort"
	"strings"
	"time"
)

// emojiPattern covers the common Unicode emoji blocks.
var emojiPattern = regexp.MustCompile("[" +
	"\U0001F300-\U0001F5FF" + // symbols & pictographs
	"\U0001F600-\U0001F64F" + // emoticons
	"\U0001F680-\U0001F6FF" + // transport & map symbols
	"\U0001F900-\U0001F9FF" + // supplemental symbols
	"\U0001F1E6-\U0001F1FF" + // regional indicators (flags)
	"☀-⛿" + // miscellaneous symbols
	"✀-➿" + // dingbats
	"]")

var localPartSeparators = regexp.MustCompile(`[._\-+]`)

var contractionPattern = regexp.MustCompile(`\w+n't|\w+'ll|\w+'re|\w+'ve|\w+'d`)

// ExtractDomain returns the lowercased domain of an email address. It
// accepts both bare addresses and "Display Name <addr>" form and returns ""
// for anything without an "@".
func ExtractDomain(address string) string {
	if address == "" || !strings.Contains(address, "@") {
		return ""
	}

	// Handle "Name <email@domain.com>" format
	if open := strings.Index(address, "<"); open >= 0 {
		if end := strings.Index(address[open:], ">"); end > 0 {
			address = address[open+1 : open+end]
		}
	}

	at := strings.LastIndex(address, "@")
	if at < 0 || at == len(address)-1 {
		return ""
	}

	domain := strings.ToLower(strings.TrimSpace(address[at+1:]))
	// Drop anything after whitespace left over from a sloppy header
	if fields := strings.Fields(domain); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// ExtractAddress returns the bare lowercased address from a From/To header
// value, or "" when none is present.
func ExtractAddress(field string) string {
	field = strings.TrimSpace(field)
	if field == "" {
		return ""
	}
	if addr, err := mail.ParseAddress(field); err == nil {
		return strings.ToLower(addr.Address)
	}
	if strings.Contains(field, "@") {
		return strings.ToLower(strings.Trim(field, "<> "))
	}
	return ""
}

// ExtractDisplayName parses the display name out of a "Name <addr>" header
// value. Returns "" when no display name segment is present.
func ExtractDisplayName(from string) string {
	if !strings.Contains(from, "<") || !strings.Contains(from, ">") {
		return ""
	}
	name := strings.TrimSpace(from[:strings.Index(from, "<")])
	name = strings.Trim(name, `"'`)
	if len(name) < 2 {
		return ""
	}
	return name
}

// NameFromLocalPart heuristically converts an address local part such as
// "jane.doe@example.com" into "Jane Doe". Returns "" when the local part has
// no recognizable separator or fewer than two usable tokens.
func NameFromLocalPart(address string) string {
	address = ExtractAddress(address)
	if address == "" {
		return ""
	}

	local := address[:strings.Index(address, "@")]
	parts := localPartSeparators.Split(local, -1)

	var tokens []string
	for _, p := range parts {
		if len(p) > 1 && !isAllDigits(p) {
			tokens = append(tokens, capitalize(p))
		}
	}
	if len(tokens) < 2 {
		return ""
	}
	return tokens[0] + " " + tokens[1]
}

// CategorizeDomain maps a domain to a topic category (technology, finance,
// business, news, productivity, education). Returns "" for unrecognized
// domains.
func CategorizeDomain(domain string) string {
	if domain == "" {
		return ""
	}
	domain = strings.ToLower(domain)
	for _, category := range CategoryNames {
		for _, pattern := range domainCategories[category] {
			if strings.Contains(domain, pattern) {
				return category
			}
		}
	}
	return ""
}

// IsPersonalDomain reports whether the domain belongs to a consumer webmail
// provider.
func IsPersonalDomain(domain string) bool {
	_, ok := personalDomains[strings.ToLower(domain)]
	return ok
}

// CompanyFromDomain derives a likely company name from a domain, e.g.
// "mail.acmecorp.com" -> "Acmecorp". Returns "" for consumer webmail domains
// and domains without a usable label.
func CompanyFromDomain(domain string) string {
	if domain == "" || IsPersonalDomain(domain) {
		return ""
	}

	name := strings.ToLower(domain)
	for _, tld := range strippedTLDs {
		name = strings.ReplaceAll(name, tld, "")
	}

	// Keep the registrable label, dropping subdomains
	if parts := strings.Split(name, "."); len(parts) > 1 {
		name = parts[len(parts)-1]
	}
	if name == "" {
		return ""
	}
	if _, generic := genericMailLabels[name]; generic {
		return ""
	}
	return capitalize(name)
}

// IsNewsletterSubject reports whether a subject line contains a bulk-mail
// keyword.
func IsNewsletterSubject(subject string) bool {
	subject = strings.ToLower(subject)
	for _, kw := range newsletterSubjectKeywords {
		if strings.Contains(subject, kw) {
			return true
		}
	}
	return false
}

// IsNewsletterPlatform reports whether the domain belongs to a known
// newsletter or mailing-list platform.
func IsNewsletterPlatform(domain string) bool {
	domain = strings.ToLower(domain)
	for _, platform := range newsletterPlatformDomains {
		if strings.Contains(domain, platform) {
			return true
		}
	}
	return false
}

// IsNoReplySender reports whether the From header looks like an automated
// no-reply sender.
func IsNoReplySender(from string) bool {
	from = strings.ToLower(from)
	return strings.Contains(from, "noreply") || strings.Contains(from, "no-reply") ||
		strings.Contains(from, "donotreply") || strings.Contains(from, "do-not-reply")
}

// FormalityScore scores text on a [0,1] scale where 0 is casual and 1 is
// formal. Texts with no indicators either way score a neutral 0.5. The exact
// weights are heuristic; only the bounds and direction are contractual.
func FormalityScore(text string) float64 {
	if text == "" {
		return 0.5
	}
	lower := strings.ToLower(text)

	formal := 0
	for _, phrase := range formalPhrases {
		if strings.Contains(lower, phrase) {
			formal++
		}
	}
	if strings.Contains(lower, "pursuant") || strings.Contains(lower, "herewith") ||
		strings.Contains(lower, "aforementioned") {
		formal += 2
	}

	casual := 0
	for _, phrase := range casualPhrases {
		if strings.Contains(lower, phrase) {
			casual++
		}
	}
	casual += len(contractionPattern.FindAllString(text, -1))
	casual += strings.Count(text, "!")
	if strings.Count(text, "?") > 2 {
		casual++
	}

	total := formal + casual
	if total == 0 {
		return 0.5
	}
	return clamp01(float64(formal) / float64(total))
}

// ContainsEmoji reports whether the text contains at least one emoji.
func ContainsEmoji(text string) bool {
	return text != "" && emojiPattern.MatchString(text)
}

// CountEmojis counts emoji characters in the text.
func CountEmojis(text string) int {
	if text == "" {
		return 0
	}
	return len(emojiPattern.FindAllString(text, -1))
}

// CountWords counts whitespace-separated tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ExtractGreeting returns the greeting token that opens the message, or ""
// when the first lines start with none of the known greetings.
func ExtractGreeting(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.SplitN(text, "\n", 4)
	if len(lines) > 3 {
		lines = lines[:3]
	}
	opening := strings.ToLower(strings.TrimSpace(strings.Join(lines, " ")))
	for _, greeting := range greetings {
		if strings.HasPrefix(opening, greeting) {
			return titleCase(greeting)
		}
	}
	return ""
}

// ExtractSignoff returns the signoff token found in the closing lines of the
// message, or "" when none matched.
func ExtractSignoff(text string) string {
	if text == "" {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	if len(lines) > 4 {
		lines = lines[len(lines)-4:]
	}
	closing := strings.ToLower(strings.Join(lines, " "))
	for _, signoff := range signoffs {
		if strings.Contains(closing, signoff) {
			return titleCase(signoff)
		}
	}
	return ""
}

// ProfessionalKeywords tallies known work-related terms across subject
// lines, returning up to max keywords ordered by match frequency. Only
// keywords with at least one hit are returned.
func ProfessionalKeywords(subjects []string, max int) []string {
	var hits []string
	for _, subject := range subjects {
		lower := strings.ToLower(subject)
		for _, term := range professionalKeywords {
			if strings.Contains(lower, term) {
				hits = append(hits, term)
			}
		}
	}
	return TopN(hits, max)
}

// ParseTimestamp parses an RFC 5322 Date header value. The second return
// value is false when the header is missing or unparseable.
func ParseTimestamp(dateStr string) (time.Time, bool) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, false
	}
	t, err := mail.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsReplySubject reports whether the subject carries a reply or forward
// prefix.
func IsReplySubject(subject string) bool {
	lower := strings.ToLower(strings.TrimSpace(subject))
	return strings.HasPrefix(lower, "re:") ||
		strings.HasPrefix(lower, "fwd:") ||
		strings.HasPrefix(lower, "fw:")
}

// TopN returns the n most frequent items, most frequent first. Ties keep
// first-encounter order so output is deterministic for a given input order.
func TopN[T comparable](items []T, n int) []T {
	if len(items) == 0 || n <= 0 {
		return nil
	}

	counts := make(map[T]int, len(items))
	var order []T
	for _, item := range items {
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// Percentage computes part/total*100 rounded to two decimals, returning 0
// when total is zero.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return Round2(float64(part) / float64(total) * 100)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
