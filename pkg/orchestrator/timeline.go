package orchestrator

import (
	"fmt"
	"strings"

	"github.com/scambait/scambait/pkg/intel"
	"github.com/scambait/scambait/pkg/session"
)

// Retrospective timeline analysis: once a session closes, the scammer-side
// transcript is scanned for classic social-engineering phases and summarized
// for the final report.

type phaseDef struct {
	name        string
	display     string
	description string
	keywords    []string
}

// Checked in this order; first message containing a keyword sets the phase's
// first-seen position.
var phaseDefs = []phaseDef{
	{"urgency", "Urgency Tactics", "Creates time pressure",
		[]string{"urgent", "immediately", "today", "now", "expire", "deadline", "soon", "quickly"}},
	{"authority", "Authority Impersonation", "Impersonates authority",
		[]string{"bank", "government", "police", "official", "department", "manager", "headquarters", "officer"}},
	{"fear", "Fear & Threats", "Threatens consequences",
		[]string{"blocked", "suspended", "legal action", "arrest", "fine", "penalty", "closed", "terminate"}},
	{"credential_request", "Credential Theft", "Requests credentials",
		[]string{"otp", "password", "pin", "cvv", "verify", "confirm", "code", "authentication"}},
	{"payment_redirection", "Payment Fraud", "Demands payment",
		[]string{"send money", "transfer", "pay", "payment", "amount", "rupees", "deposit", "upi"}},
	{"impersonation", "Identity Fraud", "Identity fraud",
		[]string{"i am from", "calling from", "representative", "agent", "this is", "my name is"}},
}

// Phase is one detected scam stage with its first appearance in the
// transcript (1-based message position).
type Phase struct {
	Name        string
	Display     string
	Description string
	FirstSeen   int
}

// DetectPhases scans scammer messages for phase keywords and returns the
// phases ordered by first appearance.
func DetectPhases(history []session.Message) []Phase {
	seen := make(map[string]bool, len(phaseDefs))
	var phases []Phase

	for i, m := range history {
		if m.Sender != session.SenderCounterpart {
			continue
		}
		text := strings.ToLower(m.Text)

		for _, def := range phaseDefs {
			if seen[def.name] {
				continue
			}
			for _, kw := range def.keywords {
				if strings.Contains(text, kw) {
					seen[def.name] = true
					phases = append(phases, Phase{
						Name:        def.name,
						Display:     def.display,
						Description: def.description,
						FirstSeen:   i + 1,
					})
					break
				}
			}
		}
	}

	// Transcript order already sorts by first appearance.
	return phases
}

// TimelineSummary renders the detected phases as a one-line attack summary.
func TimelineSummary(history []session.Message) string {
	phases := DetectPhases(history)
	if len(phases) == 0 {
		return "No clear scam pattern detected in conversation."
	}

	parts := make([]string, 0, len(phases))
	for i, p := range phases {
		parts = append(parts, fmt.Sprintf("(%d) %s - %s", i+1, p.Display, p.Description))
	}

	summary := fmt.Sprintf("Scam executed in %d-phase attack: %s", len(phases), strings.Join(parts, " | "))
	if pattern := classifyPattern(phases); pattern != "" {
		summary += " | Pattern: " + pattern
	}
	return summary
}

func classifyPattern(phases []Phase) string {
	has := make(map[string]bool, len(phases))
	for _, p := range phases {
		has[p.Name] = true
	}

	switch {
	case has["urgency"] && has["authority"] && has["credential_request"]:
		return "Classic Bank Fraud"
	case has["urgency"] && has["payment_redirection"]:
		return "Payment Fraud"
	case has["fear"] && has["credential_request"]:
		return "Intimidation Fraud"
	case has["authority"] && has["payment_redirection"]:
		return "Impersonation Fraud"
	case len(phases) >= 4:
		return "Multi-Stage Scam"
	}
	return "Standard Scam"
}

// ConversationSummary builds the full report narrative: detection result,
// attack timeline, and an intelligence tally.
func ConversationSummary(history []session.Message, in intel.Intelligence, confidence float64, scamDetected bool) string {
	status := "LEGITIMATE"
	if scamDetected {
		status = "SCAM"
	}
	parts := []string{fmt.Sprintf("Detection: %s (confidence: %.2f)", status, confidence)}

	if scamDetected && len(history) >= 3 {
		parts = append(parts, TimelineSummary(history))
	}

	var tally []string
	if n := len(in.PhoneNumbers); n > 0 {
		tally = append(tally, fmt.Sprintf("%d phone(s)", n))
	}
	if n := len(in.UPIIDs); n > 0 {
		tally = append(tally, fmt.Sprintf("%d UPI(s)", n))
	}
	if n := len(in.PhishingLinks); n > 0 {
		tally = append(tally, fmt.Sprintf("%d link(s)", n))
	}
	if n := len(in.BankAccounts); n > 0 {
		tally = append(tally, fmt.Sprintf("%d account(s)", n))
	}
	if n := len(in.SuspiciousKeywords); n > 0 {
		tally = append(tally, fmt.Sprintf("%d keywords", n))
	}

	if len(tally) > 0 {
		parts = append(parts, "Intelligence: "+strings.Join(tally, ", "))
	} else if scamDetected {
		parts = append(parts, "Intelligence: none extracted")
	}

	return strings.Join(parts, " | ")
}

// ConfidenceLevel grades the overall verdict for the caller-facing response.
func ConfidenceLevel(detectionConfidence float64, intelligenceCount, messageCount int) string {
	score := detectionConfidence

	if intelligenceCount >= 3 {
		score += 0.1
	} else if intelligenceCount >= 1 {
		score += 0.05
	}
	if messageCount >= 10 {
		score += 0.05
	}

	switch {
	case score >= 0.85:
		return "high"
	case score >= 0.65:
		return "medium"
	}
	return "low"
}
