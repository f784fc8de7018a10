package orchestrator

import (
	"strings"
	"testing"

	"github.com/scambait/scambait/pkg/intel"
	"github.com/scambait/scambait/pkg/session"
)

func scammerMsg(text string) session.Message {
	return session.Message{Sender: session.SenderCounterpart, Text: text}
}

func personaMsg(text string) session.Message {
	return session.Message{Sender: session.SenderPersona, Text: text}
}

func TestDetectPhasesOrderedByFirstAppearance(t *testing.T) {
	history := []session.Message{
		scammerMsg("Bank manager here on official business"),
		personaMsg("Who is this?"),
		scammerMsg("Your account will be blocked, act urgently"),
		personaMsg("Oh no, what should I do?"),
		scammerMsg("Share the OTP to verify"),
	}

	phases := DetectPhases(history)
	want := []string{"authority", "urgency", "fear", "credential_request"}

	if len(phases) != len(want) {
		t.Fatalf("got %d phases %v, want %d", len(phases), phases, len(want))
	}
	for i, name := range want {
		if phases[i].Name != name {
			t.Errorf("phase[%d] = %s, want %s", i, phases[i].Name, name)
		}
	}
	if phases[0].FirstSeen != 1 || phases[3].FirstSeen != 5 {
		t.Errorf("first-seen positions wrong: %+v", phases)
	}
}

func TestDetectPhasesIgnoresPersonaMessages(t *testing.T) {
	history := []session.Message{
		scammerMsg("hello there"),
		personaMsg("Is this the bank? Should I verify my OTP urgently?"),
	}
	if phases := DetectPhases(history); len(phases) != 0 {
		t.Errorf("persona messages must not count as scam phases: %v", phases)
	}
}

func TestClassifyPattern(t *testing.T) {
	tests := []struct {
		name   string
		phases []string
		want   string
	}{
		{"classic bank fraud", []string{"urgency", "authority", "credential_request"}, "Classic Bank Fraud"},
		{"payment fraud", []string{"urgency", "payment_redirection"}, "Payment Fraud"},
		{"intimidation fraud", []string{"fear", "credential_request"}, "Intimidation Fraud"},
		{"impersonation fraud", []string{"authority", "payment_redirection"}, "Impersonation Fraud"},
		{"pair rules beat phase count", []string{"fear", "impersonation", "credential_request", "authority"}, "Intimidation Fraud"},
		{"multi stage", []string{"urgency", "authority", "fear", "impersonation"}, "Multi-Stage Scam"},
		{"standard", []string{"impersonation"}, "Standard Scam"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			phases := make([]Phase, 0, len(tc.phases))
			for _, n := range tc.phases {
				phases = append(phases, Phase{Name: n})
			}
			if got := classifyPattern(phases); got != tc.want {
				t.Errorf("classifyPattern(%v) = %q, want %q", tc.phases, got, tc.want)
			}
		})
	}
}

func TestTimelineSummaryFormat(t *testing.T) {
	history := []session.Message{
		scammerMsg("Pay urgently via upi"),
	}

	got := TimelineSummary(history)
	for _, want := range []string{"2-phase attack", "(1) Urgency Tactics", "(2) Payment Fraud", "Pattern: Payment Fraud"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}
}

func TestTimelineSummaryNoPattern(t *testing.T) {
	history := []session.Message{scammerMsg("hello good morning")}
	if got := TimelineSummary(history); got != "No clear scam pattern detected in conversation." {
		t.Errorf("TimelineSummary = %q", got)
	}
}

func TestConversationSummary(t *testing.T) {
	history := []session.Message{
		scammerMsg("Bank officer here, your account is blocked"),
		personaMsg("Who is this?"),
		scammerMsg("Pay to fraud@ybl urgently"),
	}
	in := intel.Intelligence{
		UPIIDs:             []string{"fraud@ybl"},
		SuspiciousKeywords: []string{"urgent", "blocked"},
	}

	got := ConversationSummary(history, in, 0.95, true)
	for _, want := range []string{"Detection: SCAM (confidence: 0.95)", "phase attack", "1 UPI(s)", "2 keywords"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}

	empty := ConversationSummary(history, intel.Intelligence{}, 0.95, true)
	if !strings.Contains(empty, "Intelligence: none extracted") {
		t.Errorf("empty-intel summary = %q", empty)
	}
}

func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		name      string
		detection float64
		items     int
		messages  int
		want      string
	}{
		{"strong detection with intel", 0.95, 5, 12, "high"},
		{"strong detection alone", 0.85, 0, 2, "high"},
		{"boosts push medium to high", 0.7, 3, 10, "high"},
		{"medium", 0.65, 0, 2, "medium"},
		{"low", 0.4, 1, 2, "low"},
		{"fallback confidence is low", 0.5, 0, 2, "low"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConfidenceLevel(tc.detection, tc.items, tc.messages); got != tc.want {
				t.Errorf("ConfidenceLevel(%.2f, %d, %d) = %q, want %q",
					tc.detection, tc.items, tc.messages, got, tc.want)
			}
		})
	}
}
