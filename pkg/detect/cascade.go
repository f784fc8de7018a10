package detect

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/scambait/scambait/pkg/llm"
	"github.com/scambait/scambait/pkg/patterns"
	"github.com/scambait/scambait/pkg/textnorm"
)

// DefaultFallbackTimeout bounds the generative fallback call. The turn budget
// is 35s; one slow classification call must not eat it.
const DefaultFallbackTimeout = 12 * time.Second

// Detector runs the cascading detection pipeline. Stages execute in a fixed
// order and the first decisive stage short-circuits the rest:
//
//	0. jailbreak guard     (raw text, beats every whitelist)
//	1. unicode fold + spacing normalizer
//	2. rule evaluator      (whitelist safe-exit, score >= 0.15 -> scam)
//	3. statistical model   (scam at >= 0.7, safe at >= 0.8)
//	4. generative fallback (the vibe check)
type Detector struct {
	classifier      *Classifier
	chatter         llm.Chatter
	fallbackTimeout time.Duration
}

// NewDetector builds a detector sharing the default classifier. chatter may
// be nil; the fallback stage then degrades to a safe verdict.
func NewDetector(chatter llm.Chatter) *Detector {
	return &Detector{
		classifier:      DefaultClassifier(),
		chatter:         chatter,
		fallbackTimeout: DefaultFallbackTimeout,
	}
}

// Detect classifies one message. It never returns an error: every failure
// path degrades to a non-scam verdict so a broken provider cannot block the
// conversation.
func (d *Detector) Detect(ctx context.Context, text string) Verdict {
	// Step 0: jailbreak guard. Runs before normalization and whitelisting -
	// a manipulation attempt wrapped in trusted-sender phrasing is still a
	// manipulation attempt.
	if p := patterns.Get().MatchAny(strings.ToLower(text), patterns.CategoryJailbreak); p != nil {
		log.Printf("[WARN] jailbreak attempt (%s): %.80s", p.Name, text)
		return Verdict{IsScam: true, Confidence: 0.99, ScamType: TypeJailbreak}
	}

	// Step 1: undo Unicode evasion (fullwidth letters, Latin diacritics)
	// and spacing evasion. Detection works on the normalized form; the
	// transcript keeps the original.
	normalized := textnorm.CollapseSpacing(textnorm.Fold(text))

	// Step 2: rules.
	rules := EvaluateRules(normalized)

	if rules.Whitelisted {
		return Verdict{IsScam: false, Confidence: 0.0, ScamType: TypeNone}
	}

	if rules.Score >= 0.15 {
		log.Printf("[DETECT] rules decisive (score=%.2f, matched=%v)", rules.Score, rules.Matched)
		return Verdict{IsScam: true, Confidence: 0.95, ScamType: ClassifyScamType(normalized)}
	}

	// Step 3: statistical model on the normalized text.
	ml := d.classifier.Classify(normalized)

	if ml.IsScam && ml.Confidence >= 0.7 {
		return Verdict{IsScam: true, Confidence: ml.Confidence, ScamType: ClassifyScamType(normalized)}
	}
	if !ml.IsScam && ml.Confidence >= 0.8 {
		return Verdict{IsScam: false, Confidence: 0.1, ScamType: TypeNone}
	}

	// Step 4: generative fallback. Only reached when both cheap stages are
	// unsure.
	if d.chatter == nil {
		return Verdict{IsScam: false, Confidence: 0.0, ScamType: TypeNone}
	}

	fctx, cancel := context.WithTimeout(ctx, d.fallbackTimeout)
	defer cancel()

	isScam, confidence := FallbackClassify(fctx, d.chatter, normalized)

	scamType := TypeNone
	if isScam {
		scamType = ClassifyScamType(normalized)
	}
	return Verdict{IsScam: isScam, Confidence: confidence, ScamType: scamType}
}
