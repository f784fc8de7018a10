// Package persona generates the decoy side of the conversation: a confused
// elderly customer who keeps scammers talking long enough for the extractor
// to harvest their payment details. Replies come from an LLM behind a strict
// character prompt, with canned failsafes when every model is down, and an
// output filter that scrubs anything sensitive the model invents.
package persona

import (
	"strings"

	"github.com/scambait/scambait/pkg/intel"
)

// Mode selects the persona's conversational posture for the next turn.
type Mode string

const (
	// ModeStall plays dumb to prolong the conversation and force the
	// scammer to volunteer details.
	ModeStall Mode = "stall"
	// ModeExtract actively angles for one missing piece of evidence.
	ModeExtract Mode = "focused_extraction"
	// ModeProbe asks open worried questions when no clear target exists.
	ModeProbe Mode = "probe"
)

// Extraction focus targets.
const (
	FocusPhone        = "phone"
	FocusUPI          = "upi"
	FocusLink         = "link"
	FocusAccount      = "account"
	FocusVerification = "verification"
)

// Strategy is the per-turn plan fed into the prompt builder.
type Strategy struct {
	Mode  Mode
	Focus string
	Hints []string
}

var (
	phoneCues   = []string{"call", "phone", "number", "dial", "contact"}
	upiCues     = []string{"upi", "paytm", "phonepe", "gpay", "payment", "@"}
	linkCues    = []string{"link", "click", "website", "http", "www"}
	accountCues = []string{"account", "transfer", "send money"}
)

// SelectStrategy picks the posture from what we hold versus what the scammer
// just dangled. With nothing in hand the persona stalls; with two or more
// core categories it shifts to read-back verification so termination can
// close the session; with exactly one it chases whichever category the last
// message mentioned but extraction hasn't captured.
func SelectStrategy(in intel.Intelligence, lastScammerMsg string) Strategy {
	evidence := in.CategoryCount()

	if evidence < 1 {
		return Strategy{
			Mode: ModeStall,
			Hints: []string{
				"Act very confused about technology",
				"Ask them to explain 'slowly' because you are old",
				"Mention your grandson usually handles this",
				"Do NOT give any info, make THEM talk",
				"Keep the conversation going!",
			},
		}
	}

	if evidence >= 2 {
		return Strategy{
			Mode:  ModeExtract,
			Focus: FocusVerification,
			Hints: []string{
				"Repeat the details (Phone/UPI) back to them to 'verify'",
				"Act submissive and ready to pay",
				"Ask 'Is that all I need to do?'",
				"Keep it short",
			},
		}
	}

	if lastScammerMsg == "" {
		return Strategy{Mode: ModeStall, Hints: []string{"No scammer message yet"}}
	}

	msg := strings.ToLower(lastScammerMsg)
	mentions := func(cues []string) bool {
		for _, cue := range cues {
			if strings.Contains(msg, cue) {
				return true
			}
		}
		return false
	}

	switch {
	case mentions(phoneCues) && len(in.PhoneNumbers) == 0:
		return Strategy{
			Mode:  ModeExtract,
			Focus: FocusPhone,
			Hints: []string{
				"Scammer mentioned a phone number",
				"We don't have it yet - need to extract it!",
				"Pretend you're writing it down slowly",
				"Ask them to repeat digits",
				"Make mistakes so they correct you",
			},
		}
	case mentions(upiCues) && len(in.UPIIDs) == 0:
		return Strategy{
			Mode:  ModeExtract,
			Focus: FocusUPI,
			Hints: []string{
				"Scammer mentioned UPI/payment ID",
				"We don't have it yet - need to extract it!",
				"Act confused about what UPI means",
				"Ask them to spell it out",
				"Repeat it back wrongly so they correct you",
			},
		}
	case mentions(linkCues) && len(in.PhishingLinks) == 0:
		return Strategy{
			Mode:  ModeExtract,
			Focus: FocusLink,
			Hints: []string{
				"Scammer sent a link",
				"We don't have it yet - need to extract it!",
				"Say you can't click links",
				"Ask them to read the website name",
				"Claim your phone won't open it",
			},
		}
	case mentions(accountCues) && len(in.BankAccounts) == 0:
		return Strategy{
			Mode:  ModeExtract,
			Focus: FocusAccount,
			Hints: []string{
				"Scammer mentioned account number",
				"We don't have it yet - need to extract it!",
				"Pretend to write it down slowly",
				"Ask how many digits it should be",
				"Mix up the numbers to get confirmation",
			},
		}
	}

	return Strategy{
		Mode: ModeProbe,
		Hints: []string{
			"No specific intelligence opportunity detected",
			"Ask open-ended worried questions",
			"Show fear and confusion",
			"Try to get them to reveal more",
		},
	}
}
