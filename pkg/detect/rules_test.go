package detect

import "testing"

func TestEvaluateRules(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		wantScore       float64
		wantWhitelisted bool
		wantCritical    bool
	}{
		{
			name:            "genuine OTP advisory whitelisted",
			text:            "Your OTP is 4821. Do not share it with anyone. Valid for 10 min.",
			wantScore:       0.0,
			wantWhitelisted: true,
		},
		{
			name:            "bank debit alert whitelisted",
			text:            "Txn of Rs 500 debited from your account at POS",
			wantScore:       0.0,
			wantWhitelisted: true,
		},
		{
			name:         "kyc plus link is critical",
			text:         "Your KYC expired. Update at http://kyc-update.xyz/verify",
			wantScore:    1.0,
			wantCritical: true,
		},
		{
			name:         "rbi plus link is critical",
			text:         "RBI notice issued. Visit secure-rbi.com immediately",
			wantScore:    1.0,
			wantCritical: true,
		},
		{
			name:         "electricity disconnect is critical",
			text:         "Your electricity will be disconnect tonight, pay now",
			wantScore:    1.0,
			wantCritical: true,
		},
		{
			name:            "known merchant whitelisted",
			text:            "Your Swiggy order is on the way",
			wantScore:       0.0,
			wantWhitelisted: true,
		},
		{
			name:      "bare payment handle scores high",
			text:      "Pay now: criminal@paytm to settle this",
			wantScore: 0.8,
		},
		{
			name:      "two keywords score high",
			text:      "Urgent: verify your identity before noon",
			wantScore: 0.8,
		},
		{
			name:      "hinglish pressure scores high",
			text:      "Bhai tera paisa problem hai, turant call kar",
			wantScore: 0.8,
		},
		{
			name:      "single keyword scores low",
			text:      "That video was hilarious",
			wantScore: 0.4,
		},
		{
			name:      "benign chat scores zero",
			text:      "Let's meet at the cafe at 3pm",
			wantScore: 0.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateRules(tc.text)
			if got.Score != tc.wantScore {
				t.Errorf("Score = %v, want %v (matched=%v)", got.Score, tc.wantScore, got.Matched)
			}
			if got.Whitelisted != tc.wantWhitelisted {
				t.Errorf("Whitelisted = %v, want %v", got.Whitelisted, tc.wantWhitelisted)
			}
			if got.Critical != tc.wantCritical {
				t.Errorf("Critical = %v, want %v", got.Critical, tc.wantCritical)
			}
		})
	}
}

func TestCriticalComboBeatsMerchantWhitelist(t *testing.T) {
	// A spoofed merchant name must not shield a KYC phishing link.
	got := EvaluateRules("Amazon alert: complete KYC at http://amaz0n-kyc.in now")
	if !got.Critical || got.Score != 1.0 {
		t.Errorf("expected critical verdict, got %+v", got)
	}
}

func TestTrustedPatternBeatsCriticalCombo(t *testing.T) {
	// Trusted-sender regexes run first. A genuine bank alert mentioning a
	// transaction link phrase stays whitelisted.
	got := EvaluateRules("Txn of Rs 200 debited. Dispute? Visit hdfc.com")
	if !got.Whitelisted {
		t.Errorf("expected whitelisted verdict, got %+v", got)
	}
}

func TestClassifyScamType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"digital arrest", "This is CBI crime branch. You are under arrest for illegal parcels.", TypeDigitalArrest},
		{"upi scam", "Your payment failed. Scan this QR code for cashback refund.", TypeUPIScam},
		{"job scam", "Part time work from home, daily income guaranteed via telegram task", TypeJobScam},
		{"sextortion", "I have a recording of your video call. Pay or it goes viral.", TypeSextortion},
		{"lottery", "You are the lucky draw winner of an iPhone prize!", TypeLotteryScam},
		{"no signal", "Hello, how are you?", TypeUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyScamType(tc.text); got != tc.want {
				t.Errorf("ClassifyScamType(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}
