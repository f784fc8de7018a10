package detect

import (
	"log"
	"math"
	"strings"
	"sync"
	"unicode"
)

// Classifier is a multinomial naive Bayes model over unigram and bigram
// tokens, trained at first use from the embedded corpus. Training takes a few
// milliseconds; doing it lazily keeps process startup instant.
type Classifier struct {
	once sync.Once

	scamLogPrior  float64
	legitLogPrior float64
	scamCounts    map[string]int
	legitCounts   map[string]int
	scamTotal     int
	legitTotal    int
	vocabSize     int
}

// MLResult is the statistical stage's output.
type MLResult struct {
	IsScam     bool
	Confidence float64 // clipped decision margin, 0.0 - 1.0
}

var defaultClassifier = &Classifier{}

// DefaultClassifier returns the shared lazily-trained classifier.
func DefaultClassifier() *Classifier {
	return defaultClassifier
}

func (c *Classifier) train() {
	c.scamCounts = make(map[string]int)
	c.legitCounts = make(map[string]int)

	vocab := make(map[string]struct{})

	for _, s := range scamSamples {
		for _, tok := range tokenize(s) {
			c.scamCounts[tok]++
			c.scamTotal++
			vocab[tok] = struct{}{}
		}
	}
	for _, s := range legitSamples {
		for _, tok := range tokenize(s) {
			c.legitCounts[tok]++
			c.legitTotal++
			vocab[tok] = struct{}{}
		}
	}

	c.vocabSize = len(vocab)

	total := float64(len(scamSamples) + len(legitSamples))
	c.scamLogPrior = math.Log(float64(len(scamSamples)) / total)
	c.legitLogPrior = math.Log(float64(len(legitSamples)) / total)

	log.Printf("[STARTUP] statistical classifier trained: %d samples, %d vocab terms",
		len(scamSamples)+len(legitSamples), c.vocabSize)
}

// Classify scores the text against both classes and returns the winner with
// a confidence derived from the posterior margin: 0.0 when the classes are
// indistinguishable, 1.0 when one dominates.
func (c *Classifier) Classify(text string) MLResult {
	c.once.Do(c.train)

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return MLResult{IsScam: false, Confidence: 0.0}
	}

	scamScore := c.scamLogPrior
	legitScore := c.legitLogPrior

	// Laplace smoothing keeps unseen tokens from zeroing a class.
	scamDenom := float64(c.scamTotal + c.vocabSize)
	legitDenom := float64(c.legitTotal + c.vocabSize)

	for _, tok := range tokens {
		scamScore += math.Log(float64(c.scamCounts[tok]+1) / scamDenom)
		legitScore += math.Log(float64(c.legitCounts[tok]+1) / legitDenom)
	}

	// Posterior via the log-sum-exp trick.
	maxScore := math.Max(scamScore, legitScore)
	pScam := math.Exp(scamScore-maxScore) /
		(math.Exp(scamScore-maxScore) + math.Exp(legitScore-maxScore))

	margin := math.Abs(2*pScam - 1)
	return MLResult{
		IsScam:     pScam > 0.5,
		Confidence: math.Min(margin, 1.0),
	}
}

// tokenize lowercases the text, splits it into letter/digit runs (Devanagari
// included), and appends bigrams so short phrases like "account blocked"
// carry weight beyond their individual words.
func tokenize(text string) []string {
	lower := strings.ToLower(text)

	var words []string
	var cur strings.Builder
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
			continue
		}
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}

	tokens := make([]string, 0, len(words)*2)
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+" "+words[i+1])
	}
	return tokens
}
