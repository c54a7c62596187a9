package validate

import (
	"strings"
	"unicode"
)

// splitSentences breaks text on terminal punctuation followed by whitespace
// or end of text.
func splitSentences(text string) []string {
	var (
		sentences []string
		start     int
	)
	runes := []rune(text)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// normalizeSentence lowercases, collapses whitespace and drops terminal punctuation.
func normalizeSentence(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	return strings.TrimRight(s, ".!?")
}

// firstWord returns the lowercased first word of a sentence without punctuation.
func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}))
}

// countSyllables estimates English syllables by counting vowel groups,
// discounting a silent trailing "e". Every word has at least one.
func countSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }))
	if word == "" {
		return 0
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'á', 'é', 'í', 'ó', 'ú':
		return true
	}
	return false
}

// fleschReadingEase scores text on the 0-100 Flesch scale; higher is easier.
// Empty text scores 100.
func fleschReadingEase(text string) float64 {
	words := strings.Fields(text)
	sentences := len(splitSentences(text))
	if len(words) == 0 || sentences == 0 {
		return 100
	}
	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}
	wps := float64(len(words)) / float64(sentences)
	spw := float64(syllables) / float64(len(words))
	return 206.835 - 1.015*wps - 84.6*spw
}
