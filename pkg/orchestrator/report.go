package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/scambait/scambait/pkg/httputil"
	"github.com/scambait/scambait/pkg/intel"
	"github.com/scambait/scambait/pkg/session"
)

// reportTimeout bounds the final report delivery; the session closes either
// way, a slow collector must not hold the turn open.
const reportTimeout = 10 * time.Second

// Report is the payload delivered to the collector when a session closes.
type Report struct {
	SessionID              string             `json:"sessionId"`
	ScamDetected           bool               `json:"scamDetected"`
	TotalMessagesExchanged int                `json:"totalMessagesExchanged"`
	ExtractedIntelligence  intel.Intelligence `json:"extractedIntelligence"`
	AgentNotes             string             `json:"agentNotes"`
}

// Reporter delivers final intelligence reports. Delivery only fires in prod
// mode; dev mode logs what would have been sent and claims success so the
// session still closes cleanly.
type Reporter struct {
	url    string
	mode   string
	client *http.Client
}

// NewReporter builds a reporter. An empty url disables delivery.
func NewReporter(url, mode string) *Reporter {
	return &Reporter{url: url, mode: mode, client: httputil.ReportClient()}
}

// Send delivers the final report for a closing session. Returns true when
// the report was delivered or deliberately suppressed; false only on a
// delivery failure, so the caller leaves ReportSent unset and retries on the
// next closing turn.
func (r *Reporter) Send(ctx context.Context, s *session.Session) bool {
	notes := s.ReportNotes
	if notes == "" {
		notes = s.AgentNotes
	}

	if r.mode != "prod" {
		log.Printf("[REPORT] dev mode, delivery skipped: session=%s scam=%v messages=%d categories=%d/4",
			s.ID, s.ScamDetected, s.TotalMessages, s.Intelligence.CategoryCount())
		return true
	}
	if r.url == "" {
		log.Printf("[REPORT] no report URL configured, delivery skipped: session=%s", s.ID)
		return true
	}

	payload := Report{
		SessionID:              s.ID,
		ScamDetected:           s.ScamDetected,
		TotalMessagesExchanged: s.TotalMessages,
		ExtractedIntelligence:  s.Intelligence,
		AgentNotes:             notes,
	}

	if err := r.post(ctx, payload); err != nil {
		log.Printf("[WARN] report delivery failed: session=%s err=%v", s.ID, err)
		return false
	}

	log.Printf("[REPORT] delivered: session=%s scam=%v messages=%d", s.ID, s.ScamDetected, s.TotalMessages)
	return true
}

func (r *Reporter) post(ctx context.Context, payload Report) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	rctx, cancel := context.WithTimeout(ctx, reportTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(rctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer httputil.DrainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		errBody, _ := httputil.ReadErrorBody(resp.Body)
		return fmt.Errorf("report endpoint returned %d: %s", resp.StatusCode, string(errBody))
	}
	return nil
}
