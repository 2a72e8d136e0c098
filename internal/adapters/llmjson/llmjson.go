// Package llmjson holds the style-analysis prompt and the tolerant JSON
// parsing shared by every LLM adapter. Models frequently wrap JSON in prose
// or markdown fences; ParseInsights digs the object out before giving up.
package llmjson

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikey/email-persona/internal/core"
)

// SystemInstruction primes the model for the analysis task.
const SystemInstruction = "You are an expert at analyzing communication styles from email content. Respond only with JSON."

const promptHeader = `Analyze these sent emails to understand the sender's communication style and characteristics.

EMAILS:
%s

Extract the following insights in JSON format:

1. tone: overall tone (professional, friendly, casual, formal, enthusiastic, etc.)
2. writing_style: key characteristics of writing style
3. common_topics: main topics discussed (list of 3-5)
4. relationship_quality: how they build relationships (warm, transactional, collaborative, etc.)
5. professionalism_level: 1-10 scale (1=very casual, 10=very formal)
6. personality_traits: 2-3 personality traits evident from writing
7. communication_strengths: 2-3 strengths in their communication

Be specific and evidence-based. Focus on patterns across multiple emails.

Respond ONLY with valid JSON. No other text.`

// BuildPrompt assembles the analysis prompt from up to maxEmails bodies.
func BuildPrompt(bodies []string, maxEmails int) string {
	if maxEmails > 0 && len(bodies) > maxEmails {
		bodies = bodies[:maxEmails]
	}

	var sb strings.Builder
	for i, body := range bodies {
		fmt.Fprintf(&sb, "Email %d:\n%s\n", i+1, body)
		if i < len(bodies)-1 {
			sb.WriteString("\n---\n")
		}
	}
	return fmt.Sprintf(promptHeader, sb.String())
}

// ParseInsights parses a model response into StyleInsights, tolerating
// markdown fences and surrounding prose.
func ParseInsights(responseText string) (*core.StyleInsights, error) {
	text := strings.TrimSpace(responseText)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var insights core.StyleInsights
	if err := json.Unmarshal([]byte(text), &insights); err == nil {
		return &insights, nil
	}

	// Fall back to the outermost JSON object embedded in the text.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in LLM response")
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &insights); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}
	return &insights, nil
}

// EstimateTokens is a rough 4-characters-per-token estimate for providers
// that do not report usage.
func EstimateTokens(text string) int {
	return len(text) / 4
}
