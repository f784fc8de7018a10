package detect

import "strings"

// scamTypeKeywords maps each scam family to its telltale vocabulary. The type
// with the most hits wins; zero hits is UNKNOWN.
var scamTypeKeywords = map[string][]string{
	TypeDigitalArrest: {"cbi", "police", "arrest", "drugs", "customs", "illegal", "fedex", "parcels", "dcp", "crime branch"},
	TypeUPIScam:       {"cashback", "refund", "pin", "qr code", "scan", "payment failed", "receive money"},
	TypeJobScam:       {"part time", "work from home", "daily income", "youtube likes", "telegram task", "recruitment"},
	TypeSextortion:    {"video call", "recording", "viral", "nude", "leak", "exposure", "delete video"},
	TypeLotteryScam:   {"winner", "prize", "lottery", "lucky draw", "gift", "iphone"},
}

// typeOrder fixes the tie-break between equal scores so classification is
// deterministic regardless of map iteration order.
var typeOrder = []string{TypeDigitalArrest, TypeUPIScam, TypeJobScam, TypeSextortion, TypeLotteryScam}

// ClassifyScamType buckets a detected scam into its family by keyword count.
func ClassifyScamType(text string) string {
	lower := strings.ToLower(text)

	best := TypeUnknown
	bestHits := 0
	for _, category := range typeOrder {
		hits := 0
		for _, kw := range scamTypeKeywords[category] {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best = category
			bestHits = hits
		}
	}
	return best
}
