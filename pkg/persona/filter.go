package persona

import (
	"log"
	"regexp"
	"strings"

	"github.com/scambait/scambait/pkg/patterns"
)

// The persona must never emit realistic sensitive data, even invented. Every
// reply passes through these redactors before it leaves the service; matches
// become phrases that still sound like a confused elderly person.
//
// Order matters: OTP-length codes are caught before the longer digit runs so
// "482916" reads as "[some numbers]", not as a truncated account number.
var redactors = []struct {
	name        string
	re          *regexp.Regexp
	placeholder string
}{
	{"otp", regexp.MustCompile(`\b\d{4,6}\b`), "[some numbers]"},
	{"phone", regexp.MustCompile(`\+91[\s\-]?\d{10}|\b\d{10}\b|\b\d{5}[\s\-]\d{5}\b`), "[a phone number]"},
	{"bank_account", regexp.MustCompile(`\b\d{9,18}\b`), "[some digits]"},
	{"upi_id", regexp.MustCompile(`\b[\w.\-]+@[\w.\-]+\b`), "[an ID]"},
	{"url", regexp.MustCompile(`https?://[^\s]+`), "[a link]"},
}

// FilterReply scrubs hallucinated sensitive data from a persona reply.
// Returns the safe text and whether anything was replaced.
func FilterReply(reply string) (string, bool) {
	cleaned := reply
	filtered := false

	for _, r := range redactors {
		if !r.re.MatchString(cleaned) {
			continue
		}
		filtered = true
		cleaned = r.re.ReplaceAllString(cleaned, r.placeholder)
	}

	if filtered {
		log.Printf("[WARN] reply filter triggered: %q -> %q", reply, cleaned)
	}
	return cleaned, filtered
}

// leakFallback replaces a reply that mentions internals the character could
// not possibly know about.
const leakFallback = "I'm sorry, I didn't quite understand that. Could you explain again?"

// sanitizeLeaks swaps the whole reply for a safe line when it references the
// system's own machinery (prompts, providers, detection state).
func sanitizeLeaks(reply string) string {
	if p := patterns.Get().MatchAny(strings.ToLower(reply), patterns.CategoryOutputLeak); p != nil {
		log.Printf("[WARN] reply leak detected (%s), substituting safe fallback", p.Name)
		return leakFallback
	}
	return reply
}

// cleanReply strips model artifacts: wrapping quotes, a leading transcript
// prefix, then the leak check.
func cleanReply(text string) string {
	text = strings.TrimSpace(text)

	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	if len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
		text = text[1 : len(text)-1]
	}
	text = strings.TrimPrefix(text, "You: ")

	return strings.TrimSpace(sanitizeLeaks(text))
}
