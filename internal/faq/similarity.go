package faq

import (
	"sort"
	"strings"
)

// Keyword prefilter: before asking the LLM to pick an entry, rank the index
// by lexical similarity between the query keywords and each entry's keyword
// summary, and present only the best candidates. Keeps the selector prompt
// small when the side-loaded database grows.

const maxCandidates = 20

type rankedEntry struct {
	entry Entry
	score float64
}

// rankEntries orders entries by similarity to the query keywords, best first.
// With no usable keywords it returns the index unchanged.
func rankEntries(keywords []string, entries []Entry) []Entry {
	if len(keywords) == 0 || len(entries) <= 1 {
		return entries
	}

	ranked := make([]rankedEntry, 0, len(entries))
	for _, e := range entries {
		ranked = append(ranked, rankedEntry{
			entry: e,
			score: entryScore(keywords, e.Keywords),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	n := len(ranked)
	if n > maxCandidates {
		n = maxCandidates
	}
	out := make([]Entry, 0, n)
	for _, r := range ranked[:n] {
		out = append(out, r.entry)
	}
	return out
}

// entryScore scores one entry's keyword summary against the query keywords.
func entryScore(keywords []string, summary string) float64 {
	summaryWords := strings.Fields(strings.ToLower(summary))
	if len(summaryWords) == 0 {
		return 0.0
	}

	totalScore := 0.0
	matchCount := 0

	for _, keyword := range keywords {
		keywordLower := strings.ToLower(keyword)
		bestWordScore := 0.0

		for _, word := range summaryWords {
			similarity := wordSimilarity(keywordLower, word)
			if similarity > bestWordScore {
				bestWordScore = similarity
			}
		}

		if bestWordScore > 0 {
			totalScore += bestWordScore
			matchCount++
		}
	}

	if matchCount == 0 {
		return 0.0
	}

	avgScore := totalScore / float64(len(keywords))
	matchRatio := float64(matchCount) / float64(len(keywords))

	return avgScore * (0.7 + 0.3*matchRatio)
}

// wordSimilarity returns a score between 0.0 and 1.0
func wordSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	// One containing the other scores high
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		shorter, longer := len(s2), len(s1)
		if len(s1) < len(s2) {
			shorter, longer = len(s1), len(s2)
		}
		return 0.8 * (float64(shorter) / float64(longer))
	}

	return jaccardSimilarity(s1, s2, 2)
}

// jaccardSimilarity calculates Jaccard similarity using character n-grams
func jaccardSimilarity(s1, s2 string, n int) float64 {
	if len(s1) < n || len(s2) < n {
		return charOverlap(s1, s2)
	}

	ngrams1 := extractNGrams(s1, n)
	ngrams2 := extractNGrams(s2, n)

	if len(ngrams1) == 0 || len(ngrams2) == 0 {
		return 0.0
	}

	intersection := 0
	for ng := range ngrams1 {
		if ngrams2[ng] {
			intersection++
		}
	}

	union := len(ngrams1) + len(ngrams2) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

func extractNGrams(s string, n int) map[string]bool {
	ngrams := make(map[string]bool)
	for i := 0; i+n <= len(s); i++ {
		ngrams[s[i:i+n]] = true
	}
	return ngrams
}

// charOverlap handles strings too short for n-grams
func charOverlap(s1, s2 string) float64 {
	chars1 := make(map[rune]bool)
	chars2 := make(map[rune]bool)

	for _, c := range s1 {
		chars1[c] = true
	}
	for _, c := range s2 {
		chars2[c] = true
	}

	overlap := 0
	for c := range chars1 {
		if chars2[c] {
			overlap++
		}
	}

	maxLen := len(chars1)
	if len(chars2) > maxLen {
		maxLen = len(chars2)
	}
	if maxLen == 0 {
		return 0.0
	}

	return float64(overlap) / float64(maxLen)
}
