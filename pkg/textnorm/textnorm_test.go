package textnorm

import "testing"

func TestCollapseSpacing(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "spaced out word collapses",
			in:   "U R G E N T",
			want: "URGENT",
		},
		{
			name: "spaced out sentence collapses",
			in:   "U r g e n t   A l e r t.  P a y   N o w.",
			want: "Urgent   Alert.  Pay   Now.",
		},
		{
			name: "normal prose untouched",
			in:   "Your package has been delivered today",
			want: "Your package has been delivered today",
		},
		{
			name: "short text untouched",
			in:   "h i",
			want: "h i",
		},
		{
			name: "mild spacing below threshold untouched",
			in:   "I am happy today honestly",
			want: "I am happy today honestly",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CollapseSpacing(tc.in)
			if got != tc.want {
				t.Errorf("CollapseSpacing(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCollapseSpacingIdempotent(t *testing.T) {
	inputs := []string{
		"U R G E N T",
		"Your account will be blocked today",
		"P a y   N o w   O r   E l s e",
	}

	for _, in := range inputs {
		once := CollapseSpacing(in)
		twice := CollapseSpacing(once)
		if once != twice {
			t.Errorf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "VERIFY NOW", "verify now"},
		{"fullwidth folds", "ＵＲＧＥＮＴ", "urgent"},
		{"latin diacritics strip", "vérify your àccount", "verify your account"},
		{"precomposed and combining agree", "café café", "cafe cafe"},
		{"devanagari matras survive", "खाता बंद", "खाता बंद"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fold(tc.in); got != tc.want {
				t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestForExtraction(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "spelled at and dot",
			in:   "send to scammer at paytm dot com now",
			want: "send to scammer@paytm.com now",
		},
		{
			name: "digit words join into one run",
			in:   "call nine eight seven six",
			want: "call 9876",
		},
		{
			name: "spaced digits fully collapse",
			in:   "code 9 8 7 6 5 4 3 2 1 0",
			want: "code 9876543210",
		},
		{
			name: "plain text untouched",
			in:   "see you at the library",
			want: "see you@the library",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ForExtraction(tc.in); got != tc.want {
				t.Errorf("ForExtraction(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
