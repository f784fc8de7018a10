package session

import (
	"context"
	"testing"

	"github.com/scambait/scambait/pkg/intel"
)

func TestNewSession(t *testing.T) {
	first := Message{Sender: SenderCounterpart, Text: "hello", Timestamp: "2026-01-01T00:00:00Z"}
	s := New("abc", first, Metadata{Channel: "SMS", Language: "English"})

	if s.TotalMessages != 1 {
		t.Errorf("TotalMessages = %d, want 1", s.TotalMessages)
	}
	if s.Status != StatusActive {
		t.Errorf("Status = %q, want active", s.Status)
	}
	if s.StartTime != first.Timestamp {
		t.Errorf("StartTime = %q, want %q", s.StartTime, first.Timestamp)
	}
	if s.ScamDetected {
		t.Error("new session must not start scam-flagged")
	}
}

func TestScamFlagLatches(t *testing.T) {
	s := New("abc", Message{Sender: SenderCounterpart, Text: "your account is blocked"}, Metadata{})

	s.MarkScam("PHISHING")
	if !s.ScamDetected || s.ScamType != "PHISHING" {
		t.Fatalf("MarkScam did not take: %+v", s)
	}

	// Later innocuous turns never clear the flag; callers only ever latch.
	s.Append(Message{Sender: SenderCounterpart, Text: "ok thanks bye"})
	if !s.ScamDetected {
		t.Error("scam flag cleared by a later message")
	}
}

func TestLastCounterpartText(t *testing.T) {
	s := New("abc", Message{Sender: SenderCounterpart, Text: "first"}, Metadata{})
	s.AppendReply("who is this?")
	s.Append(Message{Sender: SenderCounterpart, Text: "share your OTP"})

	if got := s.LastCounterpartText(); got != "share your OTP" {
		t.Errorf("LastCounterpartText = %q", got)
	}
	if got := len(s.CounterpartTexts()); got != 2 {
		t.Errorf("CounterpartTexts length = %d, want 2", got)
	}
	if s.TotalMessages != 3 {
		t.Errorf("TotalMessages = %d, want 3", s.TotalMessages)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}

	s := New("s1", Message{Sender: SenderCounterpart, Text: "pay now"}, Metadata{})
	s.MarkScam("UPI_FRAUD")
	s.Intelligence = intel.Intelligence{UPIIDs: []string{"fraud@ybl"}}
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ScamType != "UPI_FRAUD" || len(got.Intelligence.UPIIDs) != 1 {
		t.Errorf("round trip lost state: %+v", got)
	}

	// The store must hold a snapshot, not share memory with the caller.
	s.AgentNotes = "mutated after save"
	again, _ := store.Get(ctx, "s1")
	if again.AgentNotes == "mutated after save" {
		t.Error("store shares memory with caller")
	}
}

func TestMemoryStoreStats(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	a := New("a", Message{Sender: SenderCounterpart, Text: "hi"}, Metadata{})
	b := New("b", Message{Sender: SenderCounterpart, Text: "pay"}, Metadata{})
	b.MarkScam("PHISHING")
	b.Status = StatusClosed
	b.Intelligence = intel.Intelligence{PhoneNumbers: []string{"9876543210"}}

	for _, s := range []*Session{a, b} {
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	st, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalSessions != 2 || st.ActiveSessions != 1 || st.ScamsDetected != 1 || st.IntelItems != 1 {
		t.Errorf("Stats = %+v", st)
	}
}
