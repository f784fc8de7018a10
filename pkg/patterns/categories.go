package patterns

// =============================================================================
// PATTERN DEFINITIONS BY CATEGORY
// All patterns are registered here and compiled once at package init.
// This provides a single source of truth for detection and safety patterns.
// =============================================================================

// --- JAILBREAK PATTERNS (PRE-DETECTION) ---
// Manipulation triggers that try to make the persona break character or reveal
// internals. These run on the raw text before any normalization and override
// every whitelist.
func (r *Registry) registerJailbreakPatterns() {
	cat := CategoryJailbreak

	r.register("ignore_instructions", `(?i)ignore.*instructions`, cat, 99, "Direct instruction override attempt")
	r.register("ignore_rules", `(?i)ignore.*rules`, cat, 99, "Rule override attempt")
	r.register("persona_override", `(?i)you.*are.*now.*(dan|evil|unrestricted)`, cat, 99, "Alternate persona injection")
	r.register("forget_everything", `(?i)forget.*everything`, cat, 95, "Memory wipe attempt")
	r.register("system_prompt_probe", `(?i)system prompt`, cat, 95, "System prompt extraction")
	r.register("api_key_probe", `(?i)api key`, cat, 95, "Credential extraction")
	r.register("debug_mode", `(?i)debug mode`, cat, 90, "Debug mode request")
	r.register("act_as_unrestricted", `(?i)act as.*(unrestricted|developer)`, cat, 95, "Role escalation request")
	r.register("override_security", `(?i)override.*security`, cat, 95, "Security override request")
	r.register("simulated_mode", `(?i)simulated.*mode`, cat, 90, "Simulation framing")
	r.register("previous_instructions", `(?i)previous.*instructions`, cat, 95, "Reference to hidden instructions")
}

// --- TRUSTED SENDER PATTERNS (WHITELIST) ---
// Phrasings that only appear in genuine transactional messages: OTP delivery,
// bank debit alerts, telecom receipts. Matched against lowercased text; a hit
// short-circuits the cascade as safe.
func (r *Registry) registerTrustedSenderPatterns() {
	cat := CategoryTrustedSender

	r.register("otp_do_not_share", `do not share`, cat, 0, "Genuine OTP advisory")
	r.register("bank_callback_advice", `if not you.*call\s+\d`, cat, 0, "Genuine bank dispute hotline")
	r.register("otp_validity_window", `valid for \d+ min`, cat, 0, "OTP validity window")
	r.register("recharge_receipt", `your recharge.*successful`, cat, 0, "Telecom recharge receipt")
	r.register("official_domains", `jio\.com|airtel\.in|hdfc\.com|sbi\.in`, cat, 0, "Official Indian service domains")
	r.register("delivery_confirmation", `amazon.*delivered`, cat, 0, "Delivery confirmation")
	r.register("txn_debit_alert", `txn.*of.*debited`, cat, 0, "Bank debit alert")
	r.register("txn_credit_alert", `txn.*of.*credited`, cat, 0, "Bank credit alert")
}

// --- PAYMENT HANDLE PATTERNS ---
// A naked payment handle with no transactional context is a strong scam
// signal on its own.
func (r *Registry) registerPaymentHandlePatterns() {
	cat := CategoryPaymentHandle

	r.register("upi_handle", `\b[\w.\-]+@(paytm|okaxis|okhdfcbank|oksbi|okicici|ybl|upi)\b`, cat, 80, "Bare UPI payment handle")
}

// --- OUTPUT LEAK PATTERNS (POST-GENERATION) ---
// Vocabulary that must never appear in a generated persona reply. Matched
// against lowercased output; a hit replaces the whole reply with a canned line.
func (r *Registry) registerOutputLeakPatterns() {
	cat := CategoryOutputLeak

	r.register("leak_system_prompt", `system prompt`, cat, 100, "System prompt mention")
	r.register("leak_api_key", `api key`, cat, 100, "API key mention")
	r.register("leak_provider_groq", `groq`, cat, 100, "Provider name leak")
	r.register("leak_provider_cerebras", `cerebras`, cat, 100, "Provider name leak")
	r.register("leak_honeypot", `honeypot`, cat, 100, "Honeypot self-reference")
	r.register("leak_detection", `scam detection`, cat, 100, "Detection system reference")
	r.register("leak_session_id", `sessionid`, cat, 100, "Session identifier leak")
	r.register("leak_database", `database`, cat, 100, "Storage layer reference")
	r.register("leak_confidence", `detection confidence`, cat, 100, "Internal score leak")
	r.register("leak_workflow", `workflow`, cat, 100, "Pipeline internals leak")
}
