// Package textnorm provides text normalization for the detection cascade and
// the intelligence extractor. Detection normalization undoes spacing evasion
// ("U R G E N T" -> "URGENT"); extraction normalization undoes spelled-out
// contact details ("nine eight seven" -> "987", "scammer at paytm" -> "scammer@paytm").
//
// All functions are pure. The original text is never modified in the stored
// transcript - normalized forms feed detection and extraction only.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Minimum length before the spacing collapse is considered. Short strings
// ("h i") carry too little signal to judge.
const minCollapseLen = 5

// Collapse must shrink the text below this fraction of its original length
// to be applied. Normal prose loses only the odd space; spaced-out words
// lose nearly half their characters.
const collapseShrinkRatio = 0.8

var (
	spacedDigits = regexp.MustCompile(`(\d)\s+(\d)`)
	spelledAt    = regexp.MustCompile(`(?i)\s+at\s+`)
	spelledDot   = regexp.MustCompile(`(?i)\s+dot\s+`)

	digitWords = []struct {
		re    *regexp.Regexp
		digit string
	}{
		{regexp.MustCompile(`(?i)\bzero\b`), "0"},
		{regexp.MustCompile(`(?i)\bone\b`), "1"},
		{regexp.MustCompile(`(?i)\btwo\b`), "2"},
		{regexp.MustCompile(`(?i)\bthree\b`), "3"},
		{regexp.MustCompile(`(?i)\bfour\b`), "4"},
		{regexp.MustCompile(`(?i)\bfive\b`), "5"},
		{regexp.MustCompile(`(?i)\bsix\b`), "6"},
		{regexp.MustCompile(`(?i)\bseven\b`), "7"},
		{regexp.MustCompile(`(?i)\beight\b`), "8"},
		{regexp.MustCompile(`(?i)\bnine\b`), "9"},
	}
)

// CollapseSpacing undoes letter-spacing evasion: "U R G E N T" -> "URGENT".
// The collapse is only applied when it shrinks the text by more than 20%,
// so ordinary sentences pass through untouched.
func CollapseSpacing(text string) string {
	if len(text) <= minCollapseLen {
		return text
	}

	collapsed := collapseLetterGaps(text)
	if float64(len(collapsed)) < float64(len(text))*collapseShrinkRatio {
		return collapsed
	}
	return text
}

// collapseLetterGaps removes every single space that sits between two ASCII
// letters. Runs of multiple spaces are kept - they separate real words.
func collapseLetterGaps(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range runes {
		if r == ' ' && i > 0 && i < len(runes)-1 &&
			isASCIILetter(runes[i-1]) && isASCIILetter(runes[i+1]) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// latinDiacritics covers the Combining Diacritical Marks block, which is
// where NFKD parks the accents split off Latin letters. Restricting the
// strip to this block leaves Devanagari matras (U+093E..U+094D) alone.
var latinDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036F, Stride: 1}},
}

var foldTransformer = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(latinDiacritics)),
	norm.NFKC,
)

// Fold canonicalizes Unicode, strips Latin diacritics and lowercases the
// text for keyword and pattern matching: "Ｖérify" -> "verify". Devanagari
// text passes through intact.
func Fold(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// ForExtraction pre-processes obfuscated contact details before the
// extraction regexes run:
//
//	"scammer at paytm"  -> "scammer@paytm"
//	"evil dot com"      -> "evil.com"
//	"nine eight seven"  -> "987"
//	"9 8 7 6"           -> "9876"
//
// Digit words are replaced before the spacing collapse so "nine eight seven"
// joins into one run; the collapse itself iterates to a fixpoint because a
// single pass only merges digit pairs.
func ForExtraction(text string) string {
	text = spelledAt.ReplaceAllString(text, "@")
	text = spelledDot.ReplaceAllString(text, ".")
	for _, w := range digitWords {
		text = w.re.ReplaceAllString(text, w.digit)
	}
	for {
		merged := spacedDigits.ReplaceAllString(text, "$1$2")
		if merged == text {
			return merged
		}
		text = merged
	}
}
