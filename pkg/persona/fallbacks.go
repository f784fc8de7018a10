package persona

import (
	"math/rand/v2"
	"strings"
)

// Canned lines for paths where no model output is available or allowed.
const (
	// JailbreakDeflection answers prompt-injection attempts in character.
	JailbreakDeflection = "I'm sorry, I don't understand what you mean. My grandson usually helps me with this computer."
	// ConfusedFallback covers persona pipeline failures mid-session.
	ConfusedFallback = "I'm sorry, I'm getting confused. Can you explain more slowly?"
	// TimeoutReply buys time when a turn exceeds its deadline.
	TimeoutReply = "I'm sorry, let me just get a pen and write this down... what was that again?"
	// PanicReply is the last-resort line when turn handling fails outright.
	PanicReply = "Oh dear, I'm having trouble with my phone... can you say that again?"
)

// Openers for the very first turn, before any detection verdict exists. A
// wary stranger's reply, served without an LLM round trip.
var openers = []string{
	"Who is this?",
	"I don't verify numbers I don't know.",
	"Hello? Who are you?",
	"What is this about? I am busy.",
	"I don't understand message.",
}

// Opener returns a random first-turn reply.
func Opener() string {
	return openers[rand.IntN(len(openers))]
}

// Context-keyed reply pools for when every model fails. Keyed on what the
// scammer's last message asked for, so even the dead-engine fallback stays
// plausible.
var (
	otpFallbacks = []string{
		"What code? I don't see any code.",
		"My screen is very small, I can't find the number.",
		"Is the code in the message? I don't understand.",
		"My grandson usually does this. I am confused.",
		"Wait, let me put on my glasses... where do I look?",
	}

	upiFallbacks = []string{
		"U-P-I? Is that a new bank?",
		"I don't have that app. I only have a bank book.",
		"Can I just go to the branch and give cash?",
		"I don't know how to use these digital things.",
		"Is it safe? My son said not to use apps.",
	}

	linkFallbacks = []string{
		"I clicked it but nothing happened.",
		"My phone says 'Safety Warning'. What do I do?",
		"I can't see the link. The text is too small.",
		"Do I click the blue text? It's not opening.",
		"I don't want to click anything. Can you just tell me?",
	}

	accountFallbacks = []string{
		"Let me find my cheque book... one moment.",
		"I can't read the number on my card, it's rubbed off.",
		"Can you say it again? I write very slowly.",
		"Is it the long number or the short one?",
		"Hold on, I need to get my reading glasses.",
	}

	genericFallbacks = []string{
		"I'm sorry, I'm typing very slowly.",
		"Who is this again? I forgot.",
		"My phone is acting up. The screen keeps flickering.",
		"I don't understand what you mean.",
		"Can you explain simply? I am not good with technology.",
		"Are you from the bank? Which branch?",
		"One moment, someone is at the door.",
		"I think I received the wrong message.",
	}
)

// FallbackReply picks a canned response matched to the scammer's last
// message. Randomized so a dead LLM doesn't make the persona repeat itself.
func FallbackReply(lastScammerMsg string) string {
	msg := strings.ToLower(lastScammerMsg)

	pick := func(pool []string) string {
		return pool[rand.IntN(len(pool))]
	}

	switch {
	case strings.Contains(msg, "otp") || strings.Contains(msg, "code"):
		return pick(otpFallbacks)
	case strings.Contains(msg, "upi") || strings.Contains(msg, "paytm") || strings.Contains(msg, "google pay"):
		return pick(upiFallbacks)
	case strings.Contains(msg, "click") || strings.Contains(msg, "link") || strings.Contains(msg, "http"):
		return pick(linkFallbacks)
	case strings.Contains(msg, "account") || strings.Contains(msg, "number"):
		return pick(accountFallbacks)
	}
	return pick(genericFallbacks)
}
