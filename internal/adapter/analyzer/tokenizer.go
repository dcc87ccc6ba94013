package analyzer

import (
	"strings"

	"natkey/internal/domain"
)

// NaturalTokenizer splits text into alternating runs of ASCII digits and
// non-digits. It holds no state and is safe for concurrent use.
type NaturalTokenizer struct{}

// NewTokenizer creates a new NaturalTokenizer.
func NewTokenizer() NaturalTokenizer {
	return NaturalTokenizer{}
}

// Tokenize implements port.Tokenizer.
func (NaturalTokenizer) Tokenize(text string) []domain.Token {
	return Tokenize(text)
}

// Tokenize splits text into maximal runs of the same class, left to right.
// Only '0'..'9' count as digits. The empty string yields no tokens.
func Tokenize(text string) []domain.Token {
	if text == "" {
		return nil
	}

	tokens := make([]domain.Token, 0, estimateRuns(text))
	start := 0
	kind := classify(text[0])

	// Work on bytes: bytes of a multi-byte UTF-8 sequence are all >= 0x80,
	// so a rune is never split across tokens.
	for i := 1; i < len(text); i++ {
		if k := classify(text[i]); k != kind {
			tokens = append(tokens, domain.Token{Text: text[start:i], Kind: kind})
			start, kind = i, k
		}
	}
	tokens = append(tokens, domain.Token{Text: text[start:], Kind: kind})

	return tokens
}

// Join concatenates token texts, reversing Tokenize.
func Join(tokens []domain.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

func classify(c byte) domain.TokenKind {
	if c >= '0' && c <= '9' {
		return domain.KindDigits
	}
	return domain.KindOther
}

// estimateRuns counts class boundaries so the result slice is allocated once.
func estimateRuns(text string) int {
	n := 1
	for i := 1; i < len(text); i++ {
		if classify(text[i]) != classify(text[i-1]) {
			n++
		}
	}
	return n
}
