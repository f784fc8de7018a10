// Package detect implements the cascading scam detection pipeline: jailbreak
// guard, rule evaluator, statistical classifier, and generative fallback.
// Stages run in order and the first decisive stage wins.
package detect

// Scam type labels produced by the keyword taxonomy.
const (
	TypeDigitalArrest = "DIGITAL_ARREST"
	TypeUPIScam       = "UPI_SCAM"
	TypeJobScam       = "JOB_SCAM"
	TypeSextortion    = "SEXTORTION"
	TypeLotteryScam   = "LOTTERY_SCAM"
	TypeJailbreak     = "JAILBREAK_ATTEMPT"
	TypeUnknown       = "UNKNOWN"
	TypeNone          = "NONE"
)

// Verdict is the per-turn detection result. It is ephemeral: the orchestrator
// folds it into the session via the latch rule and never persists it directly.
type Verdict struct {
	IsScam     bool
	Confidence float64 // 0.0 - 1.0
	ScamType   string
}

// Trusted reports whether this verdict marks a genuine transactional sender.
// Only the whitelist and the hard-failure paths produce exactly zero
// confidence, so zero doubles as the trusted-sender marker.
func (v Verdict) Trusted() bool {
	return !v.IsScam && v.Confidence == 0.0
}
