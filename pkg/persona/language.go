package persona

import "strings"

// Detected reply languages. The persona mirrors the scammer: Devanagari
// script gets Hindi back, Roman-script Hindi gets Hinglish, everything
// else gets plain English.
const (
	LangEnglish    = "ENGLISH"
	LangHinglish   = "HINGLISH"
	LangHindi      = "HINDI"
	LangDevanagari = "HINDI (Devanagari)"
)

// Common Roman-script Hindi words that mark a Hinglish message. Matched as
// whole words so English text like "their" doesn't trip "hai".
var hinglishWords = []string{
	"bhai", "nahi", "haan", "kya", "karo", "jaldi", "bhejo", "mera", "mujhe", "tum",
}

// DetectLanguage classifies the last scammer message. metaLanguage is the
// channel hint from session metadata, consulted only when the message is
// empty.
func DetectLanguage(lastMsg, metaLanguage string) string {
	for _, r := range lastMsg {
		if r > 2300 {
			return LangDevanagari
		}
	}

	words := strings.Fields(strings.ToLower(lastMsg))
	for _, w := range words {
		for _, h := range hinglishWords {
			if w == h {
				return LangHinglish
			}
		}
	}

	if lastMsg == "" && metaLanguage == "Hindi" {
		return LangHindi
	}
	return LangEnglish
}
