// Package intel extracts actionable evidence from conversation transcripts:
// payment handles, phone numbers, phishing links, bank accounts, and the
// supporting categories used for reporting. Extraction is pure and
// deterministic - the same transcript always yields the same intelligence,
// so re-running it per turn is free of side effects.
package intel

import (
	"regexp"
	"sort"
	"strings"

	"github.com/scambait/scambait/pkg/textnorm"
)

// Per-category caps keep a chatty scammer from flooding the report.
const (
	maxPerCategory = 5
	maxIFSCCodes   = 3
	maxKeywords    = 10
)

// Intelligence holds everything extracted from a conversation. The four core
// categories (phones, UPI handles, links, bank accounts) drive strategy and
// termination; the rest enrich the final report.
type Intelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	Emails             []string `json:"emails"`
	APKLinks           []string `json:"apkLinks"`
	CryptoWallets      []string `json:"cryptoWallets"`
	SocialHandles      []string `json:"socialHandles"`
	IFSCCodes          []string `json:"ifscCodes"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// FilledCategories returns which of the four core evidence categories have at
// least one item. Presence counts, not volume: five phone numbers and one
// phone number are the same single category.
func (in Intelligence) FilledCategories() []string {
	var filled []string
	if len(in.PhoneNumbers) > 0 {
		filled = append(filled, "phoneNumbers")
	}
	if len(in.UPIIDs) > 0 {
		filled = append(filled, "upiIds")
	}
	if len(in.PhishingLinks) > 0 {
		filled = append(filled, "phishingLinks")
	}
	if len(in.BankAccounts) > 0 {
		filled = append(filled, "bankAccounts")
	}
	return filled
}

// CategoryCount returns the number of filled core categories (0-4).
func (in Intelligence) CategoryCount() int {
	return len(in.FilledCategories())
}

// TotalItems counts every extracted item across all categories.
func (in Intelligence) TotalItems() int {
	return len(in.BankAccounts) + len(in.UPIIDs) + len(in.PhishingLinks) +
		len(in.PhoneNumbers) + len(in.Emails) + len(in.APKLinks) +
		len(in.CryptoWallets) + len(in.SocialHandles) + len(in.IFSCCodes) +
		len(in.SuspiciousKeywords)
}

var (
	bankAccountRe = regexp.MustCompile(`\b\d{9,18}\b`)
	upiStdRe      = regexp.MustCompile(`\b[\w.\-]+@[\w.\-]+\b`)
	upiSpelledRe  = regexp.MustCompile(`(?i)\b[\w.\-]+\s+(?:at|@)\s+[\w.\-]+\s+(?:dot|\.)\s+(?:com|in)\b`)
	linkRe        = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:bit\.ly|tinyurl\.com|goo\.gl|[a-zA-Z0-9-]+\.[a-zA-Z]{2,})/[^\s]*`)
	emailRe       = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	apkLinkRe     = regexp.MustCompile(`(?i)https?://[^\s]+?\.apk\b`)
	ifscRe        = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)

	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+91[\s\-]?\d{10}`),    // +91-1234567890
		regexp.MustCompile(`\b\d{10}\b`),           // 9876543210
		regexp.MustCompile(`\b\d{5}[\s\-]\d{5}\b`), // 12345-67890
	}

	cryptoRes = []*regexp.Regexp{
		regexp.MustCompile(`\b(0x[a-fA-F0-9]{40})\b`),           // Ethereum/BSC/Polygon
		regexp.MustCompile(`\b(T[A-Za-z1-9]{33})\b`),            // TRON
		regexp.MustCompile(`\b(1[a-km-zA-HJ-NP-Z1-9]{25,34})\b`), // Bitcoin (legacy)
		regexp.MustCompile(`\b(bc1[a-zA-HJ-NP-Z0-9]{39,59})\b`), // Bitcoin (bech32)
	}

	// RE2 has no lookbehind; the leading group rejects email-like contexts
	// and the handle itself is the second capture.
	socialHandleRe = regexp.MustCompile(`(^|[^\w.\-])@([a-zA-Z0-9_]{3,25})\b`)

	suspiciousKeywords = []string{
		"urgent", "immediately", "blocked", "suspend", "verify",
		"otp", "upi", "bank account", "account", "kyc", "refund",
		"winner", "prize", "lottery", "congratulations",
		"click here", "link", "expire", "confirm",
		"apk", "download", "install", "cbi", "police", "arrest",
	}
)

// Extract runs every extractor over the combined transcript. The obfuscation-
// sensitive categories run on both the raw text and its normalized form
// ("nine eight seven" -> "987") and the results are merged, deduplicated,
// sorted, and capped.
func Extract(texts []string) Intelligence {
	all := strings.Join(texts, " ")
	normalized := textnorm.ForExtraction(all)

	return Intelligence{
		BankAccounts:       capped(dedupe(append(extractBankAccounts(all), extractBankAccounts(normalized)...)), maxPerCategory),
		UPIIDs:             capped(dedupe(append(extractUPIIDs(all), extractUPIIDs(normalized)...)), maxPerCategory),
		PhishingLinks:      capped(dedupe(append(linkRe.FindAllString(all, -1), linkRe.FindAllString(normalized, -1)...)), maxPerCategory),
		PhoneNumbers:       capped(dedupe(append(extractPhones(all), extractPhones(normalized)...)), maxPerCategory),
		Emails:             capped(dedupe(append(emailRe.FindAllString(all, -1), emailRe.FindAllString(normalized, -1)...)), maxPerCategory),
		APKLinks:           capped(dedupe(append(apkLinkRe.FindAllString(all, -1), apkLinkRe.FindAllString(normalized, -1)...)), maxPerCategory),
		CryptoWallets:      capped(dedupe(extractCryptoWallets(all)), maxPerCategory),
		SocialHandles:      capped(dedupe(extractSocialHandles(all)), maxPerCategory),
		IFSCCodes:          capped(dedupe(ifscRe.FindAllString(all, -1)), maxIFSCCodes),
		SuspiciousKeywords: capped(extractKeywords(all), maxKeywords),
	}
}

func extractBankAccounts(text string) []string {
	return bankAccountRe.FindAllString(text, -1)
}

func extractUPIIDs(text string) []string {
	found := upiStdRe.FindAllString(text, -1)

	for _, spelled := range upiSpelledRe.FindAllString(text, -1) {
		s := strings.ToLower(spelled)
		s = strings.ReplaceAll(s, " at ", "@")
		s = strings.ReplaceAll(s, " dot ", ".")
		s = strings.ReplaceAll(s, " ", "")
		found = append(found, s)
	}

	// The standard pattern also matches plain words around a stray @; keep
	// only results that still look like handle@provider.
	var upis []string
	for _, u := range found {
		if strings.Contains(u, "@") {
			upis = append(upis, u)
		}
	}
	return upis
}

func extractPhones(text string) []string {
	var phones []string
	for _, re := range phoneRes {
		phones = append(phones, re.FindAllString(text, -1)...)
	}
	return phones
}

func extractCryptoWallets(text string) []string {
	var wallets []string
	for _, re := range cryptoRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			wallets = append(wallets, m[1])
		}
	}
	return wallets
}

func extractSocialHandles(text string) []string {
	var handles []string
	for _, m := range socialHandleRe.FindAllStringSubmatch(text, -1) {
		handles = append(handles, "@"+m[2])
	}
	return handles
}

func extractKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range suspiciousKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// dedupe removes duplicates and sorts, so extraction output is stable across
// runs regardless of match order.
func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}

func capped(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
