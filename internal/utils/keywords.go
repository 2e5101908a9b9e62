package utils

import (
	"regexp"
	"sort"
	"strings"
)

var stopwords = map[string]bool{
	"i": true, "me": true, "my": true, "we": true, "our": true, "you": true,
	"your": true, "he": true, "she": true, "it": true, "they": true,
	"them": true, "what": true, "which": true, "who": true, "this": true,
	"that": true, "these": true, "those": true, "am": true, "is": true,
	"are": true, "was": true, "were": true, "be": true, "been": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "a": true, "an": true, "the": true, "and": true,
	"but": true, "if": true, "or": true, "because": true, "as": true,
	"of": true, "at": true, "by": true, "for": true, "with": true,
	"about": true, "into": true, "through": true, "before": true,
	"after": true, "to": true, "from": true, "up": true, "down": true,
	"in": true, "out": true, "on": true, "off": true, "then": true,
	"once": true, "here": true, "there": true, "when": true, "where": true,
	"why": true, "how": true, "all": true, "any": true, "some": true,
	"no": true, "nor": true, "not": true, "only": true, "same": true,
	"so": true, "than": true, "too": true, "very": true, "can": true,
	"will": true, "just": true, "should": true, "now": true, "want": true,
	"need": true, "would": true, "could": true, "get": true, "got": true,
	"please": true, "help": true,
	// Hinglish filler common in donor messages
	"hai": true, "hain": true, "ka": true, "ki": true, "ke": true,
	"ko": true, "se": true, "mera": true, "meri": true,
	"aap": true, "aapka": true, "kya": true, "kab": true, "ji": true,
}

// donationKeywords is the local donate-intent signal. The dispatcher ORs
// this with the classifier's Interested_To_Donate flag.
var donationKeywords = []string{
	"donate", "donation", "daan", "dakshina", "seva rashi",
	"contribute", "contribution", "upi", "bank transfer", "neft",
}

// ContainsDonationIntent reports whether the raw message text carries a
// donation keyword.
func ContainsDonationIntent(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range donationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

type keywordScore struct {
	word  string
	score float64
}

// ExtractKeywords extracts the top N keywords from a message using
// stopword filtering and frequency-based scoring
func ExtractKeywords(message string, topN int) []string {
	if message == "" {
		return []string{}
	}

	words := tokenize(message)
	if len(words) == 0 {
		return []string{}
	}

	wordFreq := make(map[string]int)
	wordFirstPos := make(map[string]int)

	for i, word := range words {
		word = strings.ToLower(word)

		if stopwords[word] || len(word) < 3 {
			continue
		}

		wordFreq[word]++
		if _, exists := wordFirstPos[word]; !exists {
			wordFirstPos[word] = i
		}
	}

	if len(wordFreq) == 0 {
		return []string{}
	}

	scores := make([]keywordScore, 0, len(wordFreq))
	totalWords := float64(len(words))

	for word, freq := range wordFreq {
		// Frequency, length bonus, and a slight preference for words that
		// appear early in the message.
		freqScore := float64(freq) / totalWords
		lengthBonus := float64(len(word)) / 10.0
		positionWeight := 1.0 - (float64(wordFirstPos[word]) / totalWords * 0.3)

		scores = append(scores, keywordScore{
			word:  word,
			score: (freqScore * 3.0) + lengthBonus + positionWeight,
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	result := make([]string, 0, topN)
	for i := 0; i < topN && i < len(scores); i++ {
		result = append(result, scores[i].word)
	}

	return result
}

var tokenRe = regexp.MustCompile(`[^\w]+`)

// tokenize splits text into words
func tokenize(text string) []string {
	words := tokenRe.Split(text, -1)

	result := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			result = append(result, w)
		}
	}
	return result
}
