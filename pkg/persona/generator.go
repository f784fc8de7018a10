package persona

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/scambait/scambait/pkg/llm"
	"github.com/scambait/scambait/pkg/patterns"
	"github.com/scambait/scambait/pkg/session"
)

// DefaultGenTimeout bounds each model attempt. Two attempts plus the canned
// fallback stay inside the turn deadline.
const DefaultGenTimeout = 12 * time.Second

// Generator produces persona replies with a primary model, a secondary
// model, and canned failsafes. Either chatter may be nil; the chain just
// skips to the next rung.
type Generator struct {
	primary   llm.Chatter
	secondary llm.Chatter
	timeout   time.Duration
}

// NewGenerator builds a reply generator over the given model clients.
func NewGenerator(primary, secondary llm.Chatter) *Generator {
	return &Generator{primary: primary, secondary: secondary, timeout: DefaultGenTimeout}
}

// Reply generates the next persona utterance for the session. It never
// returns an empty string and never surfaces an error: a conversation turn
// must always produce something in character. The bool reports whether the
// output filter had to redact the reply.
func (g *Generator) Reply(ctx context.Context, s *session.Session) (string, bool) {
	last := s.LastCounterpartText()

	// Injection attempts never reach a model through the persona path.
	if p := patterns.Get().MatchAny(strings.ToLower(last), patterns.CategoryJailbreak); p != nil {
		log.Printf("[WARN] persona jailbreak blocked (%s): %.50s", p.Name, last)
		return JailbreakDeflection, false
	}

	// First turn: answer like a wary stranger, no model round trip.
	if len(s.History) <= 1 && !s.ScamDetected {
		return FilterReply(Opener())
	}

	st := SelectStrategy(s.Intelligence, last)
	lang := DetectLanguage(last, s.Metadata.Language)
	log.Printf("[PERSONA] strategy=%s focus=%s lang=%s session=%s", st.Mode, st.Focus, lang, s.ID)

	msgs := []llm.Message{
		{Role: "system", Content: BuildSystemPrompt(st)},
		{Role: "user", Content: BuildUserPrompt(s.History, lang)},
	}

	text := g.ask(ctx, g.primary, msgs, "primary")
	if text == "" {
		text = g.ask(ctx, g.secondary, msgs, "secondary")
	}
	if text == "" {
		log.Printf("[WARN] all models failed for session %s, using canned fallback", s.ID)
		text = FallbackReply(last)
	}

	return FilterReply(text)
}

// ask runs one model attempt under the per-attempt timeout. Failures and
// empty outputs both come back as "" so the caller falls through the chain.
func (g *Generator) ask(ctx context.Context, c llm.Chatter, msgs []llm.Message, tier string) string {
	if c == nil {
		return ""
	}

	cctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := c.Chat(cctx, msgs)
	if err != nil {
		log.Printf("[WARN] %s model failed: %v", tier, err)
		return ""
	}
	return cleanReply(out)
}
