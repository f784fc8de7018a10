package orchestrator

import (
	"log"

	"github.com/scambait/scambait/pkg/session"
)

// Termination thresholds. Presence of evidence categories drives the exit,
// not raw item counts: five phone numbers are still one category.
const (
	// HardMaxMessages is the absolute conversation cap.
	HardMaxMessages = 20
	// GraceMessages is the engagement floor; no session ends before it.
	GraceMessages = 5
	// strongCategories ends the session immediately once reached.
	strongCategories = 3
	// decentMessages ends a two-category session.
	decentMessages = 6
	// weakMessages ends a one-category session.
	weakMessages = 12
	// noIntelMessages gives up on an empty-handed session.
	noIntelMessages = 12
)

// ShouldClose decides whether this turn terminates the session. Non-scam
// conversations close as soon as the grace period ends; scam conversations
// close on an evidence/persistence tradeoff, bounded by the hard cap.
func ShouldClose(s *session.Session) bool {
	if !s.ScamDetected {
		return s.TotalMessages >= GraceMessages
	}

	categories := s.Intelligence.CategoryCount()
	log.Printf("[TERMINATE] session=%s messages=%d categories=%d/4 filled=%v",
		s.ID, s.TotalMessages, categories, s.Intelligence.FilledCategories())

	switch {
	case s.TotalMessages < GraceMessages:
		return false
	case s.TotalMessages >= HardMaxMessages:
		return true
	case categories >= strongCategories:
		return true
	case categories == 2 && s.TotalMessages >= decentMessages:
		return true
	case categories == 1 && s.TotalMessages >= weakMessages:
		return true
	case categories == 0 && s.TotalMessages >= noIntelMessages:
		return true
	}
	return false
}
