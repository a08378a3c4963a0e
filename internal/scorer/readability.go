package scorer

import (
	"strings"
)

// readabilityScore approximates Flesch reading ease from sentence, word
// and syllable counts and maps it into discrete score bands.
func readabilityScore(text string) int {
	sentences := countSentences(text)
	words := strings.Fields(text)
	if sentences == 0 || len(words) == 0 {
		return midpointScore
	}

	var syllables int
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))
	ease := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord

	switch {
	case ease >= 70:
		return 100
	case ease >= 60:
		return 85
	case ease >= 50:
		return 70
	case ease >= 40:
		return 55
	case ease >= 30:
		return 40
	default:
		return 30
	}
}

func countSentences(text string) int {
	count := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			count++
		}
	}
	return count
}

// countSyllables uses the vowel-group heuristic: consecutive vowels count
// as one syllable, a trailing silent "e" is dropped, minimum of one.
func countSyllables(word string) int {
	word = strings.ToLower(strings.Trim(word, ".,!?;:\"'()"))
	if word == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}
