package detect

import (
	"strings"

	"github.com/scambait/scambait/pkg/patterns"
)

// legitSenders holds substrings that identify routine commercial traffic:
// known merchants, order notifications, transactional phrasings. Checked
// after the critical combinators so a spoofed brand name cannot shield a
// phishing link.
var legitSenders = []string{
	"amazon.com", "amzn.to", "amazon", "flipkart", "swiggy", "zomato",
	"hdfc bank", "sbi bank", "icici bank", "axis bank",
	"irctc", "makemytrip", "ola", "uber",
	"order #", "order id", "delivery", "shipped",
	"otp for", "your otp is",
	"sent you", "paid you", "credited", "debited",
}

// scamKeywords is the bilingual (English + Hindi/Hinglish) keyword list that
// drives the density score. Two hits, or one bare payment handle, push the
// score to 0.8; a single hit scores 0.4.
var scamKeywords = []string{
	"account blocked", "verify", "urgent", "otp",
	"upi", "send money", "click link", "bank",
	"suspension", "immediately", "click here",
	"reset password", "security alert",
	"kyc", "frozen", "legal action", "arrest",
	"congratulations", "winner", "prize", "lottery",
	// Hindi / Hinglish
	"band", "block", "paisa", "paise", "account band",
	"karo", "karein", "turant", "bhai", "sir",
	"खाता", "बंद", "पुलिस", "केवाईसी", "संपर्क", "लिंक", "अपडेट",
	"बिजली", "बिल", "लॉटरी", "पुरस्कार", "जीत", "वेरिफिकेशन",
	"electricity", "cut off", "disconnect", "bill not paid",
	"apk", "download app", "quicksupport", "anydesk",
	"job offer", "part-time", "daily income",
	"sexual", "video", "leak", "exposure",
}

// RuleResult is the outcome of the rule evaluator.
type RuleResult struct {
	Score       float64  // 0.0, 0.4, 0.8 or 1.0
	Whitelisted bool     // trusted sender or legit merchant - skip the rest of the cascade
	Critical    bool     // a combinator fired - certain scam
	Matched     []string // matched keywords, for logging
}

// Suspicious reports whether the score clears the suspicion floor.
func (r RuleResult) Suspicious() bool {
	return r.Score >= 0.4
}

// EvaluateRules scores a message with the ordered rule pipeline. The order is
// load-bearing: trusted-sender regexes run first so genuine OTP and bank
// alerts exit early, critical combinators run before the merchant whitelist
// so "amazon" in a KYC phishing text cannot whitelist it, and the keyword
// density score runs last.
func EvaluateRules(text string) RuleResult {
	lower := strings.ToLower(text)
	reg := patterns.Get()

	// 1. Trusted transactional phrasing -> safe, done.
	if reg.MatchAny(lower, patterns.CategoryTrustedSender) != nil {
		return RuleResult{Score: 0.0, Whitelisted: true}
	}

	// 2. Critical combinators override everything below.
	hasLink := strings.Contains(lower, "http") || strings.Contains(lower, ".com") ||
		strings.Contains(lower, ".in") || strings.Contains(lower, "bit.ly")
	hasKYC := strings.Contains(lower, "kyc")
	hasRBI := strings.Contains(lower, "rbi")

	if hasLink && (hasKYC || hasRBI) {
		return RuleResult{
			Score:    1.0,
			Critical: true,
			Matched:  []string{"KYC/RBI + Link Combo"},
		}
	}

	if strings.Contains(lower, "electricity") &&
		(strings.Contains(lower, "disconnect") || strings.Contains(lower, "bill")) {
		return RuleResult{
			Score:    1.0,
			Critical: true,
			Matched:  []string{"Electricity Scam Pattern"},
		}
	}

	// 3. Known merchant traffic -> safe.
	for _, sender := range legitSenders {
		if strings.Contains(lower, sender) {
			return RuleResult{Score: 0.0, Whitelisted: true}
		}
	}

	// 4. Keyword density + bare payment handle.
	var matched []string
	for _, kw := range scamKeywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}

	hasHandle := reg.MatchAny(lower, patterns.CategoryPaymentHandle) != nil

	var score float64
	switch {
	case hasHandle || len(matched) >= 2:
		score = 0.8
	case len(matched) == 1:
		score = 0.4
	}

	return RuleResult{Score: score, Matched: matched}
}
