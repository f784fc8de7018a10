// Package orchestrator runs the per-turn state machine: load session, detect,
// engage or exit, extract, decide termination, report, save. It is the only
// package that mutates session state; everything below it is pure or
// side-effect free against the conversation.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/scambait/scambait/pkg/detect"
	"github.com/scambait/scambait/pkg/intel"
	"github.com/scambait/scambait/pkg/persona"
	"github.com/scambait/scambait/pkg/session"
)

// DefaultTurnTimeout bounds one full turn. The persona chain alone can take
// two model attempts, so this sits above twice the per-attempt timeout.
const DefaultTurnTimeout = 35 * time.Second

// politeExit closes conversations that turned out to be legitimate.
const politeExit = "Thank you for your message. Have a great day!"

// safeFallbacks cover the should-never-happen case of an empty reply
// escaping the pipeline.
var safeFallbacks = []string{
	"I can't read this message, it is too small.",
	"Who is this? My grandson usually helps me.",
	"I am pressing the buttons but nothing is happening.",
	"Is this the bank? I am very confused.",
	"Wait, let me find my glasses...",
}

// TurnRequest is one inbound scammer message routed to a session.
type TurnRequest struct {
	SessionID string
	Message   session.Message
	Metadata  session.Metadata
}

// TurnResult is what the transport layer renders back to the caller.
type TurnResult struct {
	Reply         string
	AgentState    string
	SessionStatus session.Status
	Persona       string
	Turn          int
	Confidence    string
	ScamType      string
	AgentNotes    string
}

// Engine wires the agents together and drives one turn at a time.
type Engine struct {
	store       session.Store
	detector    *detect.Detector
	gen         *persona.Generator
	reporter    *Reporter
	limiter     *Limiter
	turnTimeout time.Duration
}

// NewEngine assembles the turn engine.
func NewEngine(store session.Store, detector *detect.Detector, gen *persona.Generator, reporter *Reporter, limiter *Limiter) *Engine {
	return &Engine{
		store:       store,
		detector:    detector,
		gen:         gen,
		reporter:    reporter,
		limiter:     limiter,
		turnTimeout: DefaultTurnTimeout,
	}
}

// Limiter exposes the engine's concurrency limiter for stats reporting.
func (e *Engine) Limiter() *Limiter { return e.limiter }

// Store exposes the engine's session store for stats reporting.
func (e *Engine) Store() session.Store { return e.store }

// HandleTurn processes one inbound message and always produces an
// in-character result: deadline overruns and panics degrade to canned
// replies rather than surfacing as errors to the scammer.
func (e *Engine) HandleTurn(ctx context.Context, req TurnRequest) *TurnResult {
	release, err := e.limiter.Acquire(ctx, req.SessionID)
	if err != nil {
		log.Printf("[WARN] turn admission failed: session=%s err=%v", req.SessionID, err)
		return degradedResult(persona.TimeoutReply)
	}
	defer release()

	tctx, cancel := context.WithTimeout(ctx, e.turnTimeout)
	defer cancel()

	results := make(chan *TurnResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[WARN] turn panicked: session=%s panic=%v", req.SessionID, r)
				results <- degradedResult(persona.PanicReply)
			}
		}()
		results <- e.processTurn(tctx, req)
	}()

	select {
	case res := <-results:
		return res
	case <-tctx.Done():
		log.Printf("[WARN] turn deadline exceeded: session=%s", req.SessionID)
		return degradedResult(persona.TimeoutReply)
	}
}

func degradedResult(reply string) *TurnResult {
	return &TurnResult{
		Reply:         reply,
		AgentState:    "engaging",
		SessionStatus: session.StatusActive,
		Persona:       "confused_customer",
	}
}

func (e *Engine) processTurn(ctx context.Context, req TurnRequest) *TurnResult {
	s := e.loadSession(ctx, req)

	engage := true
	if !s.ScamDetected {
		engage = e.runDetection(ctx, s, req.Message.Text)
	}

	if engage {
		// Extract before generating so the persona strategy sees what we
		// already hold, and again after so the stored state is current.
		s.Intelligence = intel.Extract(s.AllTexts())
		reply, _ := e.gen.Reply(ctx, s)
		s.AppendReply(reply)
		s.Intelligence = intel.Extract(s.AllTexts())
	} else {
		s.AppendReply(politeExit)
	}

	e.finalizeTurn(ctx, s)
	return e.buildResult(s)
}

// loadSession merges the new message into the stored transcript, or starts a
// fresh session when the store has nothing usable. A read failure degrades
// to a new session rather than dropping the turn.
func (e *Engine) loadSession(ctx context.Context, req TurnRequest) *session.Session {
	s, err := e.store.Get(ctx, req.SessionID)
	if err == nil {
		s.Append(req.Message)
		return s
	}
	if !errors.Is(err, session.ErrNotFound) {
		log.Printf("[WARN] session load failed, starting fresh: session=%s err=%v", req.SessionID, err)
	}
	return session.New(req.SessionID, req.Message, req.Metadata)
}

// runDetection classifies the latest message and reports whether to keep
// engaging. Safe verdicts still engage during the probe window so slow-boil
// scams that open with small talk get caught on a later turn; a trusted
// sender exits immediately, and a session already marked trusted stays on
// the polite-exit path for every later non-scam message.
func (e *Engine) runDetection(ctx context.Context, s *session.Session, text string) bool {
	v := e.detector.Detect(ctx, text)
	s.Confidence = v.Confidence

	if v.IsScam {
		s.MarkScam(v.ScamType)
		s.AgentNotes = fmt.Sprintf("Detection: SCAM (%s) (confidence: %.2f)", v.ScamType, v.Confidence)
		log.Printf("[DETECT] scam detected: session=%s type=%s confidence=%.2f", s.ID, v.ScamType, v.Confidence)
		return true
	}

	s.AgentNotes = fmt.Sprintf("Detection: SUSPICIOUS/SAFE (confidence: %.2f)", v.Confidence)
	if v.Trusted() || s.Metadata.IsTrusted {
		s.Metadata.IsTrusted = true
		log.Printf("[DETECT] trusted sender, exiting politely: session=%s", s.ID)
		return false
	}
	return s.TotalMessages <= 3
}

// finalizeTurn decides termination, sends the final report once, and saves.
func (e *Engine) finalizeTurn(ctx context.Context, s *session.Session) {
	s.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	if ShouldClose(s) {
		if !s.ReportSent {
			if s.ScamDetected && s.TotalMessages >= 3 {
				s.ReportNotes = ConversationSummary(s.History, s.Intelligence, s.Confidence, s.ScamDetected)
			}
			if e.reporter.Send(ctx, s) {
				s.ReportSent = true
			}
		}
		s.Status = session.StatusClosed
	} else {
		s.Status = session.StatusActive
	}

	if err := e.store.Save(ctx, s); err != nil {
		log.Printf("[WARN] session save failed: session=%s err=%v", s.ID, err)
	}
}

// buildResult renders the caller-facing view. Agent notes are reduced to the
// detection verdict; extracted intelligence travels only in the final report.
func (e *Engine) buildResult(s *session.Session) *TurnResult {
	reply := s.History[len(s.History)-1].Text
	if strings.TrimSpace(reply) == "" {
		reply = safeFallbacks[rand.IntN(len(safeFallbacks))]
		log.Printf("[WARN] empty reply escaped the pipeline, substituted failsafe: session=%s", s.ID)
	}

	complete := s.Closed()

	confidence := ""
	if complete {
		conf := s.Confidence
		if conf == 0 {
			conf = 0.5
		}
		confidence = ConfidenceLevel(conf, s.Intelligence.TotalItems(), s.TotalMessages)
	}

	personaName := "polite_responder"
	if s.ScamDetected {
		personaName = "confused_customer"
	}

	notes := "Detection: LEGITIMATE"
	if s.ScamDetected {
		notes = fmt.Sprintf("Detection: SCAM (confidence: %.2f)", s.Confidence)
	}

	state := "engaging"
	if complete {
		state = "completed"
	}

	return &TurnResult{
		Reply:         reply,
		AgentState:    state,
		SessionStatus: s.Status,
		Persona:       personaName,
		Turn:          s.TotalMessages,
		Confidence:    confidence,
		ScamType:      s.ScamType,
		AgentNotes:    notes,
	}
}
