// Package session defines the conversation state and its durable stores.
// A Session is the unit of persistence: one scammer conversation, its
// transcript, the latched detection flag, and the accumulated intelligence.
package session

import (
	"time"

	"github.com/scambait/scambait/pkg/intel"
)

// Message senders. The counterpart is the (suspected) scammer; the persona
// is our generated side of the conversation.
const (
	SenderCounterpart = "scammer"
	SenderPersona     = "user"
)

// Status of a session.
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Message is one turn of the transcript. Text is stored verbatim - detection
// and extraction normalize their own copies.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Metadata carries channel hints from the caller plus the trusted-sender
// marker set by detection.
type Metadata struct {
	Channel   string `json:"channel,omitempty"`
	Language  string `json:"language,omitempty"`
	Locale    string `json:"locale,omitempty"`
	IsTrusted bool   `json:"isTrusted,omitempty"`
}

// Session is the durable conversation state.
type Session struct {
	ID            string             `json:"sessionId"`
	History       []Message          `json:"conversationHistory"`
	Metadata      Metadata           `json:"metadata"`
	ScamDetected  bool               `json:"scamDetected"`
	ScamType      string             `json:"scamType,omitempty"`
	Confidence    float64            `json:"detectionConfidence,omitempty"`
	Intelligence  intel.Intelligence `json:"extractedIntelligence"`
	TotalMessages int                `json:"totalMessages"`
	StartTime     string             `json:"startTime"`
	LastUpdated   string             `json:"lastUpdated"`
	AgentNotes    string             `json:"agentNotes"`
	ReportNotes   string             `json:"reportNotes,omitempty"`
	Status        Status             `json:"sessionStatus"`
	ReportSent    bool               `json:"reportSent"`
}

// New creates a fresh session seeded with the first inbound message.
func New(id string, first Message, meta Metadata) *Session {
	return &Session{
		ID:            id,
		History:       []Message{first},
		Metadata:      meta,
		TotalMessages: 1,
		StartTime:     first.Timestamp,
		LastUpdated:   first.Timestamp,
		Status:        StatusActive,
	}
}

// Append adds a message to the transcript and bumps the counter.
func (s *Session) Append(m Message) {
	s.History = append(s.History, m)
	s.TotalMessages++
}

// AppendReply records a persona utterance with the current timestamp.
func (s *Session) AppendReply(text string) {
	s.Append(Message{
		Sender:    SenderPersona,
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// MarkScam latches the scam flag. Once set it never clears - one decisive
// detection outlives any number of later innocuous messages.
func (s *Session) MarkScam(scamType string) {
	s.ScamDetected = true
	s.ScamType = scamType
}

// LastCounterpartText returns the most recent scammer message, or "".
func (s *Session) LastCounterpartText() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Sender == SenderCounterpart {
			return s.History[i].Text
		}
	}
	return ""
}

// CounterpartTexts returns all scammer-side texts in transcript order.
func (s *Session) CounterpartTexts() []string {
	var out []string
	for _, m := range s.History {
		if m.Sender == SenderCounterpart {
			out = append(out, m.Text)
		}
	}
	return out
}

// AllTexts returns every message text in transcript order.
func (s *Session) AllTexts() []string {
	out := make([]string, 0, len(s.History))
	for _, m := range s.History {
		out = append(out, m.Text)
	}
	return out
}

// Closed reports whether the session has terminated.
func (s *Session) Closed() bool {
	return s.Status == StatusClosed
}
