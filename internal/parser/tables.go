package parser

// Static lookup tables for the heuristic classifiers. Kept as package-level
// data so the matching logic can be tested independently of the tables.

// newsletterSubjectKeywords flag a subject line as bulk mail when present.
var newsletterSubjectKeywords = []string{
	"newsletter", "digest", "weekly", "daily", "roundup", "briefing",
	"bulletin", "dispatch", "subscription", "unsubscribe",
}

// newsletterPlatformDomains are known mailing-list and newsletter SaaS
// providers. Matched by substring against the sender domain.
var newsletterPlatformDomains = []string{
	"substack.com", "substackcdn.com", "beehiiv.com", "mailchimp.com",
	"convertkit.com", "ghost.io", "buttondown.email", "revue.co",
	"sendgrid.net", "mailgun.org", "campaign-archive.com",
}

// domainCategories maps known domains (or suffixes such as ".edu") to a
// topic category. Matched by substring against the sender domain.
var domainCategories = map[string][]string{
	"technology": {
		"techcrunch.com", "theverge.com", "wired.com", "arstechnica.com",
		"hackernews", "github.com", "gitlab.com", "stackoverflow.com",
		"dev.to", "medium.com", "substack.com", "twitter.com",
		"atlassian.com", "digitalocean.com", "vercel.com", "jetbrains.com",
	},
	"finance": {
		"bloomberg.com", "reuters.com", "wsj.com", "ft.com",
		"morningbrew.com", "finimize.com", "robinhood.com", "stripe.com",
		"paypal.com", "coinbase.com", "fidelity.com",
	},
	"business": {
		"linkedin.com", "forbes.com", "inc.com", "entrepreneur.com",
		"fastcompany.com", "hbr.org", "mckinsey.com",
	},
	"news": {
		"nytimes.com", "washingtonpost.com", "cnn.com", "bbc.com",
		"theguardian.com", "npr.org", "axios.com", "economist.com",
	},
	"productivity": {
		"notion.so", "todoist.com", "trello.com", "asana.com",
		"slack.com", "zoom.us", "calendly.com", "airtable.com",
		"figma.com", "dropbox.com",
	},
	"education": {
		".edu", "coursera.org", "udemy.com", "edx.org",
		"khanacademy.org", "codecademy.com", "duolingo.com",
	},
}

// CategoryNames is the canonical category order, used for deterministic
// tie-breaking when aggregating category counts.
var CategoryNames = []string{
	"technology", "finance", "business", "news", "productivity", "education",
}

// personalDomains are consumer webmail providers excluded from professional
// contact analysis.
var personalDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"yahoo.com":      {},
	"hotmail.com":    {},
	"outlook.com":    {},
	"icloud.com":     {},
	"aol.com":        {},
	"protonmail.com": {},
	"proton.me":      {},
	"mail.com":       {},
	"live.com":       {},
	"msn.com":        {},
	"gmx.com":        {},
	"zoho.com":       {},
	"yandex.com":     {},
}

// formalPhrases raise the formality score when found in a message.
var formalPhrases = []string{
	"dear sir", "dear madam", "to whom it may concern", "sincerely",
	"respectfully", "pursuant to", "please find attached", "i am writing to",
	"i would like to", "thank you for your", "looking forward to",
	"kind regards", "yours faithfully", "yours sincerely",
}

// casualPhrases lower the formality score when found in a message.
var casualPhrases = []string{
	"hey", "hi there", "what's up", "cheers", "thanks!", "thx",
	"gonna", "wanna", "yeah", "yep", "nope", "btw", "fyi",
	"lol", "lmk", "asap", "cool", "awesome", "sounds good",
}

// greetings are opening tokens tested against the first lines of a message.
// Longer entries first so "good morning" wins over "good".
var greetings = []string{
	"good morning", "good afternoon", "good evening",
	"hope you're well", "hope this finds you well",
	"greetings", "hello", "dear", "hey", "hi",
}

// signoffs are closing tokens tested against the last lines of a message.
var signoffs = []string{
	"best regards", "kind regards", "warm regards", "yours truly",
	"best", "thanks", "regards", "cheers", "sincerely", "thank you",
	"talk soon", "see you", "yours", "respectfully",
}

// professionalKeywords are scanned against subject lines to surface
// work-related vocabulary.
var professionalKeywords = []string{
	"meeting", "project", "proposal", "contract", "invoice",
	"report", "update", "review", "deadline", "schedule",
	"presentation", "call", "conference", "quarterly", "budget",
	"strategy", "planning", "analysis", "development", "launch",
	"client", "team", "manager", "director", "executive", "deliverable",
}

// strippedTLDs are removed from a domain before deriving a company name.
var strippedTLDs = []string{
	".com", ".org", ".net", ".io", ".co", ".ai", ".dev", ".app", ".edu",
}

// genericMailLabels never become company names.
var genericMailLabels = map[string]struct{}{
	"gmail": {}, "yahoo": {}, "hotmail": {}, "outlook": {},
	"icloud": {}, "mail": {}, "email": {}, "proton": {}, "protonmail": {},
}
